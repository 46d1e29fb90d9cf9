// Package options handles environment-based configuration. The relay has
// no CLI surface; everything is supplied via env vars, matching the .env
// convention of the Salesforce app it fronts.
package options

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/dyncan/data-bi-directional-sync/validate"
)

const (
	DefaultListenAddress  = ":3002"
	DefaultPubSubAddress  = "api.pubsub.salesforce.com:7443"
	DefaultCDCTopic       = "/data/ContactChangeEvent"
	DefaultPublishTopic   = "/event/Contact_Event__e"
	DefaultGRPCTimeout    = 10 * time.Second
	DefaultFetchBatchSize = 5
	DefaultStatsInterval  = 10 * time.Second
)

type Options struct {
	Debug         bool
	ListenAddress string

	// OAuth / REST API
	LoginURL       string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	APIVersion     string

	// Pub/Sub API
	PubSubAddress  string
	CDCTopic       string
	PublishTopic   string
	GRPCTimeout    time.Duration
	FetchBatchSize int32

	StatsInterval time.Duration
}

// New assembles Options from the environment or returns a validation error
// listing the first missing mandatory setting.
func New() (*Options, error) {
	opts := &Options{
		Debug:          os.Getenv("DEBUG") == "true",
		ListenAddress:  envOrDefault("LISTEN_ADDRESS", DefaultListenAddress),
		LoginURL:       os.Getenv("LOGIN_URL"),
		ConsumerKey:    os.Getenv("CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("CONSUMER_SECRET"),
		CallbackURL:    os.Getenv("CALLBACK_URL"),
		APIVersion:     os.Getenv("API_VERSION"),
		PubSubAddress:  envOrDefault("PUBSUB_ADDRESS", DefaultPubSubAddress),
		CDCTopic:       envOrDefault("CDC_TOPIC", DefaultCDCTopic),
		PublishTopic:   envOrDefault("PUBLISH_TOPIC", DefaultPublishTopic),
		GRPCTimeout:    DefaultGRPCTimeout,
		FetchBatchSize: DefaultFetchBatchSize,
		StatsInterval:  DefaultStatsInterval,
	}

	if timeout := os.Getenv("GRPC_TIMEOUT_SECONDS"); timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse GRPC_TIMEOUT_SECONDS")
		}
		opts.GRPCTimeout = time.Duration(seconds) * time.Second
	}

	if err := validateOptions(opts); err != nil {
		return nil, errors.Wrap(err, "unable to validate options")
	}

	return opts, nil
}

func validateOptions(opts *Options) error {
	if opts == nil {
		return validate.ErrMissingOptions
	}

	if opts.ListenAddress == "" {
		return validate.ErrMissingListenAddress
	}

	if opts.LoginURL == "" {
		return validate.ErrMissingLoginURL
	}

	if opts.ConsumerKey == "" {
		return validate.ErrMissingConsumerKey
	}

	if opts.ConsumerSecret == "" {
		return validate.ErrMissingConsumerSec
	}

	if opts.CallbackURL == "" {
		return validate.ErrMissingCallbackURL
	}

	if opts.APIVersion == "" {
		return validate.ErrMissingAPIVersion
	}

	if opts.GRPCTimeout <= 0 {
		return validate.ErrInvalidGRPCTimeout
	}

	return nil
}

func envOrDefault(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return defaultValue
}
