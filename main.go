package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/dyncan/data-bi-directional-sync/api"
	"github.com/dyncan/data-bi-directional-sync/hub"
	"github.com/dyncan/data-bi-directional-sync/options"
	"github.com/dyncan/data-bi-directional-sync/relay"
	"github.com/dyncan/data-bi-directional-sync/session"
	"github.com/dyncan/data-bi-directional-sync/sforce"
	"github.com/dyncan/data-bi-directional-sync/sfpubsub"
	"github.com/dyncan/data-bi-directional-sync/stats"
	"github.com/dyncan/data-bi-directional-sync/types"
)

var version = "0.1.0"

func main() {
	opts, err := options.New()
	if err != nil {
		logrus.Fatalf("Unable to load configuration: %s", err)
	}

	if opts.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// JSON formatter for log output if not running in a TTY
	if !terminal.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	stats.InitMetrics()
	stats.Start(opts.StatsInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := run(ctx, opts)
	if err != nil {
		logrus.Fatalf("Unable to start: %s", err)
	}

	logrus.Infof("Server started: http://localhost%s/", opts.ListenAddress)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signalCh

	logrus.Infof("Received '%s', shutting down", sig)

	cancel()
	srv.Shutdown(context.Background())
}

func run(ctx context.Context, opts *options.Options) (shutdowner, error) {
	sfClient, err := sforce.New(&sforce.Config{
		LoginURL:       opts.LoginURL,
		ConsumerKey:    opts.ConsumerKey,
		ConsumerSecret: opts.ConsumerSecret,
		CallbackURL:    opts.CallbackURL,
		APIVersion:     opts.APIVersion,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create Salesforce REST client")
	}

	connHub := hub.New(nil)
	authProvider := &latestAuthProvider{mutex: &sync.RWMutex{}}

	r, err := relay.New(&relay.Config{
		Hub:          connHub,
		AuthProvider: authProvider,
		NewPubSub: func(authCtx *types.AuthContext) (relay.PubSubClient, error) {
			return sfpubsub.New(authCtx, &sfpubsub.Config{
				GRPCAddress:    opts.PubSubAddress,
				Timeout:        opts.GRPCTimeout,
				FetchBatchSize: opts.FetchBatchSize,
			})
		},
		CDCTopic:     opts.CDCTopic,
		PublishTopic: opts.PublishTopic,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create relay")
	}

	var relayOnce sync.Once

	srv, err := api.Start(&api.Config{
		Version:       version,
		ListenAddress: opts.ListenAddress,
		SForce:        sfClient,
		Sessions:      session.NewStore(),
		Hub:           connHub,
		StartRelay: func(auth *types.AuthContext, _ *types.Identity) {
			authProvider.Set(auth)

			relayOnce.Do(func() {
				logrus.Infof("Relaying '%s' -> WebSocket clients, inbound -> '%s'",
					opts.CDCTopic, opts.PublishTopic)

				go func() {
					if err := r.Run(ctx); err != nil {
						logrus.Errorf("relay exited: %s", err)
					}
				}()
			})
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to start API server")
	}

	return srv, nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// latestAuthProvider hands the relay the most recently authenticated
// context. Re-login refreshes it, so a reconnect never reuses a context
// the platform already revoked.
type latestAuthProvider struct {
	mutex *sync.RWMutex
	auth  *types.AuthContext
}

func (p *latestAuthProvider) Set(auth *types.AuthContext) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.auth = auth
}

func (p *latestAuthProvider) AuthContext(_ context.Context) (*types.AuthContext, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.auth == nil {
		return nil, errors.New("no authenticated session available")
	}

	return p.auth, nil
}
