// Package relay joins the upstream CDC subscription to the connection
// hub. It owns no long-lived state beyond the two streams it consumes and
// the lifecycle of the upstream client.
package relay

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dyncan/data-bi-directional-sync/types"
	"github.com/dyncan/data-bi-directional-sync/validate"
)

const (
	MessageKindStatusEvent = "statusEvent"

	DefaultTrackedField = "Status__c"
)

// State tracks the relay instance lifecycle
type State int32

const (
	StateUnconnected State = iota
	StateAuthenticating
	StateSubscribed
	StateReconnecting
	StateTerminated
)

var stateNames = map[State]string{
	StateUnconnected:    "UNCONNECTED",
	StateAuthenticating: "AUTHENTICATING",
	StateSubscribed:     "SUBSCRIBED",
	StateReconnecting:   "RECONNECTING",
	StateTerminated:     "TERMINATED",
}

func (s State) String() string {
	return stateNames[s]
}

// PubSubClient is the upstream surface the relay consumes; implemented by
// sfpubsub.SFPubSub.
type PubSubClient interface {
	Subscribe(ctx context.Context, topic string, replay *types.ReplayPreference) (<-chan *types.ChangeEvent, <-chan error, error)
	Publish(ctx context.Context, topic string, record map[string]interface{}) error
	Close() error
}

// Broadcaster is the downstream surface; implemented by hub.Hub
type Broadcaster interface {
	Broadcast(msg *types.RelayMessage)
	Inbound() <-chan *types.RelayMessage
}

// AuthProvider supplies a fresh AuthContext whenever the relay needs to
// (re)connect. The relay never reuses a stale context after a stream
// failure.
type AuthProvider interface {
	AuthContext(ctx context.Context) (*types.AuthContext, error)
}

// ClientFactory builds a connected upstream client from an auth context
type ClientFactory func(authCtx *types.AuthContext) (PubSubClient, error)

type Config struct {
	Hub          Broadcaster
	AuthProvider AuthProvider
	NewPubSub    ClientFactory

	CDCTopic     string
	PublishTopic string

	// TrackedField is the CDC payload field whose updates get broadcast
	TrackedField string

	Backoff BackoffPolicy
}

type Relay struct {
	Config *Config

	state int32

	pubsubMutex *sync.RWMutex
	pubsubConn  PubSubClient

	log *logrus.Entry
}

func New(cfg *Config) (*Relay, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to validate relay config")
	}

	return &Relay{
		Config:      cfg,
		state:       int32(StateUnconnected),
		pubsubMutex: &sync.RWMutex{},
		log:         logrus.WithField("pkg", "relay"),
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("relay config cannot be nil")
	}

	if cfg.Hub == nil {
		return validate.ErrMissingHub
	}

	if cfg.AuthProvider == nil {
		return validate.ErrMissingAuthProvider
	}

	if cfg.NewPubSub == nil {
		return validate.ErrMissingPubSubClient
	}

	if cfg.CDCTopic == "" || cfg.PublishTopic == "" {
		return validate.ErrMissingTopic
	}

	if cfg.TrackedField == "" {
		cfg.TrackedField = DefaultTrackedField
	}

	if len(cfg.Backoff.Steps) == 0 {
		cfg.Backoff = ReconnectPolicy
	}

	return nil
}

func (r *Relay) State() State {
	return State(atomic.LoadInt32(&r.state))
}

func (r *Relay) setState(s State) {
	old := State(atomic.SwapInt32(&r.state, int32(s)))
	if old != s {
		r.log.Infof("state %s -> %s", old, s)
	}
}

// Run drives the relay instance until ctx is cancelled. The inbound loop
// and the upstream loop run concurrently; they meet nowhere except the
// hub and the upstream client, both internally synchronized.
func (r *Relay) Run(ctx context.Context) error {
	go r.runInbound(ctx)

	attempt := 0

	for {
		if ctx.Err() != nil {
			r.setState(StateTerminated)
			return nil
		}

		r.setState(StateAuthenticating)

		client, err := r.connect(ctx)
		if err != nil {
			r.log.Errorf("unable to establish upstream session: %s", err)

			attempt++
			if !r.sleep(ctx, attempt) {
				r.setState(StateTerminated)
				return nil
			}

			continue
		}

		events, streamErrs, err := client.Subscribe(ctx, r.Config.CDCTopic, &types.ReplayPreference{
			Preset: types.ReplayLatest,
		})
		if err != nil {
			r.log.Errorf("unable to subscribe to '%s': %s", r.Config.CDCTopic, err)
			client.Close()

			attempt++
			if !r.sleep(ctx, attempt) {
				r.setState(StateTerminated)
				return nil
			}

			continue
		}

		attempt = 0
		r.setClient(client)
		r.setState(StateSubscribed)

		for event := range events {
			r.handleChangeEvent(event)
		}

		// Event channel closed: the subscription died structurally.
		// Events published while we are down are lost - we always
		// resubscribe at LATEST, never at a stored replay id.
		r.setClient(nil)
		client.Close()

		select {
		case err := <-streamErrs:
			if errors.Is(err, types.ErrAuth) {
				r.log.Errorf("upstream session revoked: %s", err)
			} else {
				r.log.Errorf("upstream stream died: %s", err)
			}
		default:
		}

		if ctx.Err() != nil {
			r.setState(StateTerminated)
			return nil
		}

		r.setState(StateReconnecting)

		attempt++
		if !r.sleep(ctx, attempt) {
			r.setState(StateTerminated)
			return nil
		}
	}
}

// connect obtains a fresh auth context and builds a connected client from
// it. A stale context is never retried.
func (r *Relay) connect(ctx context.Context) (PubSubClient, error) {
	authCtx, err := r.Config.AuthProvider.AuthContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to obtain auth context")
	}

	client, err := r.Config.NewPubSub(authCtx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build pub/sub client")
	}

	return client, nil
}

func (r *Relay) sleep(ctx context.Context, attempt int) bool {
	wait := r.Config.Backoff.Duration(attempt - 1)

	r.log.Infof("waiting %s before reconnect attempt %d", wait, attempt)

	select {
	case <-time.After(wait):
		return true
	case <-ctx.Done():
		return false
	}
}

func (r *Relay) setClient(client PubSubClient) {
	r.pubsubMutex.Lock()
	defer r.pubsubMutex.Unlock()

	r.pubsubConn = client
}

func (r *Relay) pubsub() PubSubClient {
	r.pubsubMutex.RLock()
	defer r.pubsubMutex.RUnlock()

	return r.pubsubConn
}
