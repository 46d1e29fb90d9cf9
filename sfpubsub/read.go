package sfpubsub

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dyncan/data-bi-directional-sync/pb/eventbus"
	"github.com/dyncan/data-bi-directional-sync/stats"
	"github.com/dyncan/data-bi-directional-sync/types"
	"github.com/dyncan/data-bi-directional-sync/validate"
)

// Subscribe opens one durable subscription to topic and returns a channel
// of decoded change events plus an error channel. The event channel is
// infinite until the stream dies structurally, at which point it is closed
// and exactly one terminal error (types.ErrStream or types.ErrAuth) is
// delivered on the error channel. A subscription is not restartable once
// cancelled - callers re-subscribe instead.
//
// Single-event decode failures are logged, counted and skipped; they never
// terminate the stream.
func (s *SFPubSub) Subscribe(ctx context.Context, topic string, replay *types.ReplayPreference) (<-chan *types.ChangeEvent, <-chan error, error) {
	if topic == "" {
		return nil, nil, validate.ErrMissingTopic
	}

	if replay == nil {
		replay = &types.ReplayPreference{Preset: types.ReplayLatest}
	}

	stream, err := s.client.Subscribe(s.outgoingContext(ctx))
	if err != nil {
		return nil, nil, classifyRPCError(err, "unable to open subscribe stream")
	}

	initial := &eventbus.FetchRequest{
		TopicName:    topic,
		ReplayPreset: replayPreset(replay.Preset),
		NumRequested: s.cfg.FetchBatchSize,
	}

	if replay.Preset == types.ReplayCustom {
		initial.ReplayId = replay.ReplayID
	}

	if err := stream.Send(initial); err != nil {
		return nil, nil, classifyRPCError(err, "unable to send initial fetch request")
	}

	s.log.Infof("Subscribed to '%s' (replay preset %d)", topic, replay.Preset)

	eventCh := make(chan *types.ChangeEvent, s.cfg.FetchBatchSize)
	errCh := make(chan error, 1)

	go s.consume(ctx, stream, topic, eventCh, errCh)

	return eventCh, errCh, nil
}

func (s *SFPubSub) consume(ctx context.Context, stream eventbus.PubSub_SubscribeClient,
	topic string, eventCh chan *types.ChangeEvent, errCh chan error) {

	defer close(eventCh)

	for {
		resp, err := stream.Recv()
		if err != nil {
			errCh <- classifyStreamError(err)
			return
		}

		for _, consumerEvent := range resp.GetEvents() {
			event, err := s.decodeEvent(ctx, consumerEvent)
			if err != nil {
				s.log.Errorf("skipping undecodable event on '%s': %s", topic, err)
				stats.Incr(stats.RelayDecodeErrors, 1)
				continue
			}

			select {
			case eventCh <- event:
			case <-ctx.Done():
				errCh <- errors.Wrap(types.ErrStream, "subscription cancelled")
				return
			}
		}

		// Keep the server's pending window topped up. Empty responses are
		// keepalives and carry the current pending count too.
		if pending := resp.GetPendingNumRequested(); pending < s.cfg.FetchBatchSize {
			topUp := &eventbus.FetchRequest{
				TopicName:    topic,
				NumRequested: s.cfg.FetchBatchSize - pending,
			}

			if err := stream.Send(topUp); err != nil {
				errCh <- classifyStreamError(err)
				return
			}
		}
	}
}

func (s *SFPubSub) decodeEvent(ctx context.Context, consumerEvent *eventbus.ConsumerEvent) (*types.ChangeEvent, error) {
	producerEvent := consumerEvent.GetEvent()
	if producerEvent == nil {
		return nil, errors.Wrap(types.ErrDecode, "consumer event carries no payload")
	}

	codec, err := s.codec(ctx, producerEvent.GetSchemaId())
	if err != nil {
		return nil, errors.Wrapf(types.ErrDecode, "unable to resolve schema '%s': %s",
			producerEvent.GetSchemaId(), err)
	}

	native, _, err := codec.NativeFromBinary(producerEvent.GetPayload())
	if err != nil {
		return nil, errors.Wrapf(types.ErrDecode, "unable to decode AVRO payload: %s", err)
	}

	fields, ok := native.(map[string]interface{})
	if !ok {
		return nil, errors.Wrap(types.ErrDecode, "decoded payload is not a record")
	}

	headerRaw, ok := fields["ChangeEventHeader"].(map[string]interface{})
	if !ok {
		return nil, errors.Wrap(types.ErrDecode, "payload missing ChangeEventHeader")
	}

	changeType, _ := headerRaw["changeType"].(string)

	var recordIDs []string
	if rawIDs, ok := headerRaw["recordIds"].([]interface{}); ok {
		for _, rawID := range rawIDs {
			if id, ok := rawID.(string); ok {
				recordIDs = append(recordIDs, id)
			}
		}
	}

	// The header is consumed here; hand the relay only the record fields
	delete(fields, "ChangeEventHeader")

	return &types.ChangeEvent{
		ChangeType: changeType,
		RecordIDs:  recordIDs,
		ReplayID:   consumerEvent.GetReplayId(),
		Fields:     fields,
		ReceivedAt: time.Now().UTC(),
	}, nil
}

func classifyStreamError(err error) error {
	if errors.Is(err, io.EOF) {
		return errors.Wrap(types.ErrStream, "stream closed by server")
	}

	if code := status.Code(err); code == codes.Unauthenticated || code == codes.PermissionDenied {
		return errors.Wrapf(types.ErrAuth, "stream rejected: %s", err)
	}

	return errors.Wrapf(types.ErrStream, "stream receive failed: %s", err)
}

func replayPreset(preset types.ReplayPreset) eventbus.ReplayPreset {
	switch preset {
	case types.ReplayEarliest:
		return eventbus.ReplayPreset_EARLIEST
	case types.ReplayCustom:
		return eventbus.ReplayPreset_CUSTOM
	default:
		return eventbus.ReplayPreset_LATEST
	}
}
