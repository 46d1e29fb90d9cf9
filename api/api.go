// Package api exposes the HTTP surface: OAuth login/callback, identity,
// the per-contact lookup proxy, the WebSocket upgrade endpoint and the
// usual operational endpoints.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/dyncan/data-bi-directional-sync/hub"
	"github.com/dyncan/data-bi-directional-sync/session"
	"github.com/dyncan/data-bi-directional-sync/sforce"
	"github.com/dyncan/data-bi-directional-sync/types"
)

type Config struct {
	Version       string
	ListenAddress string

	SForce   *sforce.Client
	Sessions *session.Store
	Hub      *hub.Hub

	// StartRelay is invoked on every authenticated whoami with that
	// session's context. The relay side keeps the freshest context and
	// ensures only one instance runs.
	StartRelay func(auth *types.AuthContext, identity *types.Identity)
}

type API struct {
	*Config

	log *logrus.Entry
}

type ResponseJSON struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Values  map[string]string `json:"values,omitempty"`
	Errors  string            `json:"errors,omitempty"`
}

func Start(cfg *Config) (*http.Server, error) {
	if cfg == nil || cfg.SForce == nil || cfg.Sessions == nil || cfg.Hub == nil {
		return nil, errors.New("api config, sforce client, session store and hub cannot be nil")
	}

	a := &API{
		Config: cfg,
		log:    logrus.WithField("pkg", "api"),
	}

	a.log.Debugf("starting API server on %s", cfg.ListenAddress)

	router := httprouter.New()

	router.HandlerFunc("GET", "/health-check", a.healthCheckHandler)
	router.HandlerFunc("GET", "/version", a.versionHandler)

	router.HandlerFunc("GET", "/auth/login", a.loginHandler)
	router.HandlerFunc("GET", "/auth/callback", a.callbackHandler)
	router.HandlerFunc("GET", "/auth/whoami", a.whoamiHandler)
	router.HandlerFunc("GET", "/auth/logout", a.logoutHandler)

	router.Handle("GET", "/api/contacts/:contactId", a.contactHandler)

	router.HandlerFunc("GET", "/ws", a.wsHandler)

	router.Handler("GET", "/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			if err != http.ErrServerClosed {
				a.log.Errorf("unable to srv.ListenAndServe: %s", err)
			}
		}
	}()

	return srv, nil
}

func (a *API) healthCheckHandler(rw http.ResponseWriter, r *http.Request) {
	WriteJSON(http.StatusOK, map[string]string{"status": "ok"}, rw)
}

func (a *API) versionHandler(rw http.ResponseWriter, r *http.Request) {
	WriteJSON(http.StatusOK, map[string]string{"version": a.Version}, rw)
}

// WriteJSON writes a payload as a JSON response
func WriteJSON(statusCode int, data interface{}, rw http.ResponseWriter) {
	rw.Header().Set("Content-Type", "application/json; charset=UTF-8")
	rw.WriteHeader(statusCode)

	if err := json.NewEncoder(rw).Encode(data); err != nil {
		logrus.WithField("pkg", "api").Errorf("unable to write response: %s", err)
	}
}

func writeErrorJSON(statusCode int, message string, err error, rw http.ResponseWriter) {
	resp := &ResponseJSON{
		Status:  statusCode,
		Message: message,
	}

	if err != nil {
		resp.Errors = err.Error()
	}

	WriteJSON(statusCode, resp, rw)
}
