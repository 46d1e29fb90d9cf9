// Package sfpubsub is a thin client for the Salesforce Pub/Sub API. It
// owns the gRPC channel, the Avro schema cache and the auth metadata; the
// read side lives in read.go, the write side in write.go.
package sfpubsub

import (
	"context"
	"crypto/tls"
	"sync"
	"time"

	"github.com/linkedin/goavro/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dyncan/data-bi-directional-sync/pb/eventbus"
	"github.com/dyncan/data-bi-directional-sync/types"
	"github.com/dyncan/data-bi-directional-sync/validate"
)

const (
	DefaultGRPCAddress    = "api.pubsub.salesforce.com:7443"
	DefaultTimeout        = 10 * time.Second
	DefaultFetchBatchSize = 5
)

type Config struct {
	GRPCAddress    string
	Timeout        time.Duration
	FetchBatchSize int32

	// DisableTLS exists for tests against a local in-process server
	DisableTLS bool
}

type SFPubSub struct {
	cfg    *Config
	auth   *types.AuthContext
	conn   *grpc.ClientConn
	client eventbus.PubSubClient

	codecs      map[string]*goavro.Codec
	codecsMutex *sync.RWMutex

	topics      map[string]*eventbus.TopicInfo
	topicsMutex *sync.RWMutex

	log *logrus.Entry
}

// New dials the Pub/Sub API endpoint and returns a connected client. The
// auth context is attached as gRPC metadata on every call; it is never
// refreshed here - an expired context surfaces as types.ErrAuth and the
// caller must construct a new client with a fresh one.
func New(authCtx *types.AuthContext, cfg *Config) (*SFPubSub, error) {
	if err := validateAuthContext(authCtx); err != nil {
		return nil, errors.Wrap(err, "unable to validate auth context")
	}

	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.GRPCAddress == "" {
		cfg.GRPCAddress = DefaultGRPCAddress
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.FetchBatchSize <= 0 {
		cfg.FetchBatchSize = DefaultFetchBatchSize
	}

	opts := []grpc.DialOption{
		grpc.WithBlock(),
	}

	if cfg.DisableTLS {
		opts = append(opts, grpc.WithInsecure())
	} else {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})))
	}

	dialCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	conn, err := grpc.DialContext(dialCtx, cfg.GRPCAddress, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to pub/sub address '%s'", cfg.GRPCAddress)
	}

	return &SFPubSub{
		cfg:         cfg,
		auth:        authCtx,
		conn:        conn,
		client:      eventbus.NewPubSubClient(conn),
		codecs:      make(map[string]*goavro.Codec),
		codecsMutex: &sync.RWMutex{},
		topics:      make(map[string]*eventbus.TopicInfo),
		topicsMutex: &sync.RWMutex{},
		log:         logrus.WithField("pkg", "sfpubsub"),
	}, nil
}

func (s *SFPubSub) Close() error {
	return s.conn.Close()
}

func validateAuthContext(authCtx *types.AuthContext) error {
	if authCtx == nil {
		return validate.ErrMissingAuthContext
	}

	if authCtx.AccessToken == "" {
		return validate.ErrMissingAccessToken
	}

	if authCtx.InstanceURL == "" {
		return validate.ErrMissingInstanceURL
	}

	if authCtx.OrganizationID == "" {
		return validate.ErrMissingTenantID
	}

	return nil
}

// outgoingContext attaches the session headers the Pub/Sub API expects
func (s *SFPubSub) outgoingContext(ctx context.Context) context.Context {
	md := metadata.Pairs(
		"accesstoken", s.auth.AccessToken,
		"instanceurl", s.auth.InstanceURL,
		"tenantid", s.auth.OrganizationID,
	)

	return metadata.NewOutgoingContext(ctx, md)
}

// topicInfo fetches (and caches) topic metadata
func (s *SFPubSub) topicInfo(ctx context.Context, topic string) (*eventbus.TopicInfo, error) {
	s.topicsMutex.RLock()
	cached, ok := s.topics[topic]
	s.topicsMutex.RUnlock()

	if ok {
		return cached, nil
	}

	callCtx, cancel := context.WithTimeout(s.outgoingContext(ctx), s.cfg.Timeout)
	defer cancel()

	info, err := s.client.GetTopic(callCtx, &eventbus.TopicRequest{TopicName: topic})
	if err != nil {
		return nil, classifyRPCError(err, "unable to fetch topic info")
	}

	s.topicsMutex.Lock()
	s.topics[topic] = info
	s.topicsMutex.Unlock()

	return info, nil
}

// codec fetches (and caches) the Avro codec for a schema id. Events on one
// topic can carry different schema ids over time, so the cache is keyed by
// id rather than topic.
func (s *SFPubSub) codec(ctx context.Context, schemaID string) (*goavro.Codec, error) {
	s.codecsMutex.RLock()
	cached, ok := s.codecs[schemaID]
	s.codecsMutex.RUnlock()

	if ok {
		return cached, nil
	}

	callCtx, cancel := context.WithTimeout(s.outgoingContext(ctx), s.cfg.Timeout)
	defer cancel()

	info, err := s.client.GetSchema(callCtx, &eventbus.SchemaRequest{SchemaId: schemaID})
	if err != nil {
		return nil, classifyRPCError(err, "unable to fetch schema")
	}

	codec, err := goavro.NewCodec(info.GetSchemaJson())
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse AVRO schema")
	}

	s.codecsMutex.Lock()
	s.codecs[schemaID] = codec
	s.codecsMutex.Unlock()

	return codec, nil
}

// classifyRPCError maps gRPC auth failures onto types.ErrAuth so the
// relay's state machine can tell a revoked session apart from a dead
// stream.
func classifyRPCError(err error, msg string) error {
	if code := status.Code(err); code == codes.Unauthenticated || code == codes.PermissionDenied {
		return errors.Wrapf(types.ErrAuth, "%s: %s", msg, err)
	}

	return errors.Wrap(err, msg)
}
