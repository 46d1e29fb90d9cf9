// Package sforce talks to the Salesforce REST surface: the OAuth
// web-server flow, the identity endpoint and SOQL queries. It produces
// the AuthContext the streaming side runs on.
package sforce

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dyncan/data-bi-directional-sync/types"
	"github.com/dyncan/data-bi-directional-sync/validate"
)

const DefaultTimeout = 15 * time.Second

type Config struct {
	LoginURL       string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	APIVersion     string
	Timeout        time.Duration
}

type Client struct {
	cfg        *Config
	httpClient *http.Client
	log        *logrus.Entry
}

// Token is the raw result of the OAuth code exchange. The identity call
// completes it into a full AuthContext.
type Token struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	ID          string `json:"id"`
	TokenType   string `json:"token_type"`
}

// QueryResult is a SOQL query response
type QueryResult struct {
	TotalSize int                      `json:"totalSize"`
	Done      bool                     `json:"done"`
	Records   []map[string]interface{} `json:"records"`
}

func New(cfg *Config) (*Client, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to validate sforce config")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logrus.WithField("pkg", "sforce"),
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return validate.ErrMissingOptions
	}

	if cfg.LoginURL == "" {
		return validate.ErrMissingLoginURL
	}

	if cfg.ConsumerKey == "" {
		return validate.ErrMissingConsumerKey
	}

	if cfg.ConsumerSecret == "" {
		return validate.ErrMissingConsumerSec
	}

	if cfg.CallbackURL == "" {
		return validate.ErrMissingCallbackURL
	}

	if cfg.APIVersion == "" {
		return validate.ErrMissingAPIVersion
	}

	return nil
}

// AuthorizeURL is where the browser gets sent to start the OAuth flow
func (c *Client) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.cfg.ConsumerKey)
	params.Set("redirect_uri", c.cfg.CallbackURL)
	params.Set("scope", "api openid")

	if state != "" {
		params.Set("state", state)
	}

	return c.cfg.LoginURL + "/services/oauth2/authorize?" + params.Encode()
}

// ExchangeCode swaps an authorization code for an access token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	if code == "" {
		return nil, errors.New("authorization code cannot be empty")
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ConsumerKey)
	form.Set("client_secret", c.cfg.ConsumerSecret)
	form.Set("redirect_uri", c.cfg.CallbackURL)

	token := &Token{}
	if err := c.postForm(ctx, c.cfg.LoginURL+"/services/oauth2/token", form, token); err != nil {
		return nil, errors.Wrap(err, "unable to exchange authorization code")
	}

	if token.AccessToken == "" || token.InstanceURL == "" {
		return nil, errors.New("token response missing access token or instance URL")
	}

	return token, nil
}

// Identity resolves who the token belongs to
func (c *Client) Identity(ctx context.Context, token *Token) (*types.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		token.InstanceURL+"/services/oauth2/userinfo", nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build identity request")
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	identity := &types.Identity{}
	if err := c.do(req, identity); err != nil {
		return nil, errors.Wrap(err, "unable to fetch identity")
	}

	return identity, nil
}

// Revoke invalidates the access token upstream
func (c *Client) Revoke(ctx context.Context, auth *types.AuthContext) error {
	form := url.Values{}
	form.Set("token", auth.AccessToken)

	if err := c.postForm(ctx, c.cfg.LoginURL+"/services/oauth2/revoke", form, nil); err != nil {
		return errors.Wrap(err, "unable to revoke token")
	}

	return nil
}

// QueryContact looks up a single contact row by id
func (c *Client) QueryContact(ctx context.Context, auth *types.AuthContext, contactID string) (*QueryResult, error) {
	// Single quotes cannot appear in an 18-char id; strip them rather
	// than interpolate them into the SOQL literal
	contactID = strings.ReplaceAll(contactID, "'", "")

	soql := fmt.Sprintf("SELECT Id, Name, FirstName, LastName, Phone, Email, Title, Status__c "+
		"FROM Contact WHERE Id='%s'", contactID)

	queryURL := fmt.Sprintf("%s/services/data/v%s/query?q=%s",
		auth.InstanceURL, c.cfg.APIVersion, url.QueryEscape(soql))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build query request")
	}

	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)

	result := &QueryResult{}
	if err := c.do(req, result); err != nil {
		return nil, errors.Wrap(err, "Salesforce data API error")
	}

	return result, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "unable to build request")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}

	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "unable to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("unexpected status code '%d': %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "unable to decode response body")
	}

	return nil
}
