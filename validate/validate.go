// Package validate contains shared validation errors and helpers
package validate

import "github.com/pkg/errors"

var (

	// Options

	ErrMissingOptions       = errors.New("options cannot be nil")
	ErrMissingLoginURL      = errors.New("login URL cannot be empty")
	ErrMissingConsumerKey   = errors.New("consumer key cannot be empty")
	ErrMissingConsumerSec   = errors.New("consumer secret cannot be empty")
	ErrMissingCallbackURL   = errors.New("callback URL cannot be empty")
	ErrMissingAPIVersion    = errors.New("API version cannot be empty")
	ErrMissingListenAddress = errors.New("listen address cannot be empty")

	// Pub/Sub client

	ErrMissingAuthContext = errors.New("auth context cannot be nil")
	ErrMissingAccessToken = errors.New("access token cannot be empty")
	ErrMissingInstanceURL = errors.New("instance URL cannot be empty")
	ErrMissingTenantID    = errors.New("organization id cannot be empty")
	ErrMissingTopic       = errors.New("topic cannot be empty")
	ErrInvalidGRPCTimeout = errors.New("grpc timeout must be greater than zero")

	// Relay

	ErrMissingPubSubClient = errors.New("pub/sub client factory cannot be nil")
	ErrMissingAuthProvider = errors.New("auth provider cannot be nil")
	ErrMissingHub          = errors.New("hub cannot be nil")

	// Hub

	ErrMissingHubConfig = errors.New("hub config cannot be nil")
)
