package sfpubsub

import (
	"context"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/dyncan/data-bi-directional-sync/pb/eventbus"
	"github.com/dyncan/data-bi-directional-sync/types"
	"github.com/dyncan/data-bi-directional-sync/validate"
)

// Publish encodes record against the topic's schema and publishes it as a
// single platform event. Optional schema fields must be union-tagged by
// the caller (e.g. {"string": v}) or explicitly nil - the wire convention
// is tagged optionals, never omitted keys.
//
// Any failure (schema mismatch, authorization, transport, per-event
// result error) is terminal for this attempt; retry policy belongs to the
// caller.
func (s *SFPubSub) Publish(ctx context.Context, topic string, record map[string]interface{}) error {
	if topic == "" {
		return validate.ErrMissingTopic
	}

	if len(record) == 0 {
		return errors.Wrap(types.ErrPublish, "record cannot be empty")
	}

	info, err := s.topicInfo(ctx, topic)
	if err != nil {
		return errors.Wrap(err, "unable to resolve publish topic")
	}

	if !info.GetCanPublish() {
		return errors.Wrapf(types.ErrPublish, "not allowed to publish to '%s'", topic)
	}

	codec, err := s.codec(ctx, info.GetSchemaId())
	if err != nil {
		return errors.Wrap(err, "unable to resolve publish schema")
	}

	payload, err := codec.BinaryFromNative(nil, record)
	if err != nil {
		return errors.Wrapf(types.ErrPublish, "record does not match schema '%s': %s",
			info.GetSchemaId(), err)
	}

	req := &eventbus.PublishRequest{
		TopicName: topic,
		Events: []*eventbus.ProducerEvent{
			{
				Id:       uuid.NewV4().String(),
				SchemaId: info.GetSchemaId(),
				Payload:  payload,
			},
		},
	}

	callCtx, cancel := context.WithTimeout(s.outgoingContext(ctx), s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.Publish(callCtx, req)
	if err != nil {
		if classified := classifyRPCError(err, "publish call failed"); errors.Is(classified, types.ErrAuth) {
			return classified
		}

		return errors.Wrapf(types.ErrPublish, "publish call failed: %s", err)
	}

	for _, result := range resp.GetResults() {
		if resultErr := result.GetError(); resultErr != nil {
			return errors.Wrapf(types.ErrPublish, "event rejected by platform: %s", resultErr.GetMsg())
		}
	}

	s.log.Debugf("published 1 event to '%s'", topic)

	return nil
}
