package relay

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/dyncan/data-bi-directional-sync/stats"
	"github.com/dyncan/data-bi-directional-sync/types"
)

// requiredInboundFields must all be present and non-empty on an inbound
// statusEvent frame before it is forwarded upstream
var requiredInboundFields = []string{
	"data.firstName",
	"data.lastName",
	"data.status__c",
}

// handleChangeEvent broadcasts one statusEvent per affected record id.
// One upstream event with N record ids fans out into N broadcasts -
// downstream clients consume one contact at a time.
func (r *Relay) handleChangeEvent(event *types.ChangeEvent) {
	if event.ChangeType != types.ChangeTypeUpdate {
		return
	}

	status, ok := event.StringField(r.Config.TrackedField)
	if !ok {
		return
	}

	for _, recordID := range event.RecordIDs {
		r.Config.Hub.Broadcast(&types.RelayMessage{
			Kind: MessageKindStatusEvent,
			Data: map[string]interface{}{
				"contactId": recordID,
				"status":    status,
			},
		})

		stats.Incr(stats.RelayBroadcastTotal, 1)
	}
}

func (r *Relay) runInbound(ctx context.Context) {
	for {
		select {
		case msg := <-r.Config.Hub.Inbound():
			r.handleInbound(ctx, msg)
		case <-ctx.Done():
			r.log.Debug("inbound loop exiting")
			return
		}
	}
}

// handleInbound validates a client-submitted message and publishes it
// upstream. Rejections and publish failures are logged, never propagated
// back to the submitting connection.
func (r *Relay) handleInbound(ctx context.Context, msg *types.RelayMessage) {
	if msg.Kind != MessageKindStatusEvent {
		r.log.Debugf("ignoring inbound message of kind '%s' from '%s'", msg.Kind, msg.ConnectionID)
		stats.Incr(stats.RelayInboundRejected, 1)
		return
	}

	record, err := r.buildEventRecord(msg)
	if err != nil {
		r.log.Errorf("rejecting inbound message from '%s': %s", msg.ConnectionID, err)
		stats.Incr(stats.RelayInboundRejected, 1)
		return
	}

	client := r.pubsub()
	if client == nil {
		r.log.Warning("no upstream session - dropping inbound message")
		stats.Incr(stats.RelayPublishErrors, 1)
		return
	}

	if err := client.Publish(ctx, r.Config.PublishTopic, record); err != nil {
		// Fire-and-forget: the submitter gets no error frame
		r.log.Errorf("unable to publish inbound message from '%s': %s", msg.ConnectionID, err)
		stats.Incr(stats.RelayPublishErrors, 1)
		return
	}

	stats.Incr(stats.RelayPublishTotal, 1)
}

// buildEventRecord maps an inbound frame onto the Contact_Event__e schema.
// Optional text fields are union-tagged; the submitter identity comes from
// the frame itself or, failing that, from the authenticated connection.
func (r *Relay) buildEventRecord(msg *types.RelayMessage) (map[string]interface{}, error) {
	for _, field := range requiredInboundFields {
		if gjson.GetBytes(msg.Raw, field).String() == "" {
			return nil, errors.Errorf("required field '%s' is missing", field)
		}
	}

	userID := gjson.GetBytes(msg.Raw, "data.userId").String()
	if userID == "" {
		userID = msg.UserID
	}

	if userID == "" {
		return nil, errors.New("unable to determine submitter identity")
	}

	return map[string]interface{}{
		"CreatedDate": time.Now().UTC().UnixMilli(),
		"CreatedById": userID,
		"FirstName__c": map[string]interface{}{
			"string": gjson.GetBytes(msg.Raw, "data.firstName").String(),
		},
		"LastName__c": map[string]interface{}{
			"string": gjson.GetBytes(msg.Raw, "data.lastName").String(),
		},
		"Status__c": map[string]interface{}{
			"string": gjson.GetBytes(msg.Raw, "data.status__c").String(),
		},
	}, nil
}
