package relay

import (
	"context"
	"encoding/json"
	"fmt"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/dyncan/data-bi-directional-sync/types"
)

func newTestRelay(h *fakeHub, ps *fakePubSub) *Relay {
	r, err := New(&Config{
		Hub:          h,
		AuthProvider: &fakeAuthProvider{},
		NewPubSub: func(_ *types.AuthContext) (PubSubClient, error) {
			return ps, nil
		},
		CDCTopic:     "/data/ContactChangeEvent",
		PublishTopic: "/event/Contact_Event__e",
	})
	Expect(err).ToNot(HaveOccurred())

	if ps != nil {
		r.setClient(ps)
	}

	return r
}

func inboundFrame(data map[string]interface{}) *types.RelayMessage {
	frame := map[string]interface{}{
		"kind": MessageKindStatusEvent,
		"data": data,
	}

	raw, err := json.Marshal(frame)
	Expect(err).ToNot(HaveOccurred())

	return &types.RelayMessage{
		Kind:         MessageKindStatusEvent,
		Data:         data,
		Raw:          raw,
		ConnectionID: "conn-1",
	}
}

var _ = Describe("Relay", func() {
	Context("handleChangeEvent", func() {
		It("fans one event out into one broadcast per record id", func() {
			h := newFakeHub()
			r := newTestRelay(h, nil)

			for n := 0; n < 3; n++ {
				r.handleChangeEvent(&types.ChangeEvent{
					ChangeType: types.ChangeTypeUpdate,
					RecordIDs:  []string{fmt.Sprintf("003a%d", n), fmt.Sprintf("003b%d", n)},
					Fields: map[string]interface{}{
						"Status__c": map[string]interface{}{"string": "Closed"},
					},
				})
			}

			broadcasts := h.Broadcasts()
			Expect(broadcasts).To(HaveLen(6))

			for _, msg := range broadcasts {
				Expect(msg.Kind).To(Equal("statusEvent"))
				Expect(msg.Data["status"]).To(Equal("Closed"))
			}

			Expect(broadcasts[0].Data["contactId"]).To(Equal("003a0"))
			Expect(broadcasts[1].Data["contactId"]).To(Equal("003b0"))
		})

		It("ignores non-UPDATE change types", func() {
			h := newFakeHub()
			r := newTestRelay(h, nil)

			for _, changeType := range []string{types.ChangeTypeCreate, types.ChangeTypeDelete, types.ChangeTypeUndelete} {
				r.handleChangeEvent(&types.ChangeEvent{
					ChangeType: changeType,
					RecordIDs:  []string{"003a"},
					Fields: map[string]interface{}{
						"Status__c": map[string]interface{}{"string": "New"},
					},
				})
			}

			Expect(h.Broadcasts()).To(BeEmpty())
		})

		It("ignores updates that do not touch the tracked field", func() {
			h := newFakeHub()
			r := newTestRelay(h, nil)

			r.handleChangeEvent(&types.ChangeEvent{
				ChangeType: types.ChangeTypeUpdate,
				RecordIDs:  []string{"003a"},
				Fields: map[string]interface{}{
					"Phone": map[string]interface{}{"string": "555-0100"},
				},
			})

			r.handleChangeEvent(&types.ChangeEvent{
				ChangeType: types.ChangeTypeUpdate,
				RecordIDs:  []string{"003b"},
				Fields: map[string]interface{}{
					"Status__c": nil,
				},
			})

			Expect(h.Broadcasts()).To(BeEmpty())
		})

		It("broadcasts the expected wire message for a status update", func() {
			h := newFakeHub()
			r := newTestRelay(h, nil)

			r.handleChangeEvent(&types.ChangeEvent{
				ChangeType: types.ChangeTypeUpdate,
				RecordIDs:  []string{"003a"},
				Fields: map[string]interface{}{
					"Status__c": map[string]interface{}{"string": "Closed"},
				},
			})

			broadcasts := h.Broadcasts()
			Expect(broadcasts).To(HaveLen(1))

			wire, err := json.Marshal(broadcasts[0])
			Expect(err).ToNot(HaveOccurred())
			Expect(wire).To(MatchJSON(`{"kind":"statusEvent","data":{"contactId":"003a","status":"Closed"}}`))
		})
	})

	Context("handleInbound", func() {
		It("publishes a fully tagged event record", func() {
			h := newFakeHub()
			ps := newFakePubSub()
			r := newTestRelay(h, ps)

			r.handleInbound(context.Background(), inboundFrame(map[string]interface{}{
				"firstName": "A",
				"lastName":  "B",
				"status__c": "New",
				"userId":    "u1",
			}))

			published := ps.Published()
			Expect(published).To(HaveLen(1))
			Expect(published[0].Topic).To(Equal("/event/Contact_Event__e"))

			record := published[0].Record
			Expect(record["FirstName__c"]).To(Equal(map[string]interface{}{"string": "A"}))
			Expect(record["LastName__c"]).To(Equal(map[string]interface{}{"string": "B"}))
			Expect(record["Status__c"]).To(Equal(map[string]interface{}{"string": "New"}))
			Expect(record["CreatedById"]).To(Equal("u1"))
			Expect(record["CreatedDate"]).To(BeNumerically(">", 0))
		})

		It("never publishes when a required field is missing", func() {
			h := newFakeHub()
			ps := newFakePubSub()
			r := newTestRelay(h, ps)

			incomplete := []map[string]interface{}{
				{"lastName": "B", "status__c": "New", "userId": "u1"},
				{"firstName": "A", "status__c": "New", "userId": "u1"},
				{"firstName": "A", "lastName": "B", "userId": "u1"},
				{"firstName": "A", "lastName": "B", "status__c": ""},
			}

			for _, data := range incomplete {
				r.handleInbound(context.Background(), inboundFrame(data))
			}

			Expect(ps.Published()).To(BeEmpty())
		})

		It("falls back to the connection identity for the submitter", func() {
			h := newFakeHub()
			ps := newFakePubSub()
			r := newTestRelay(h, ps)

			msg := inboundFrame(map[string]interface{}{
				"firstName": "A",
				"lastName":  "B",
				"status__c": "New",
			})
			msg.UserID = "u-session"

			r.handleInbound(context.Background(), msg)

			published := ps.Published()
			Expect(published).To(HaveLen(1))
			Expect(published[0].Record["CreatedById"]).To(Equal("u-session"))
		})

		It("ignores messages of an unknown kind", func() {
			h := newFakeHub()
			ps := newFakePubSub()
			r := newTestRelay(h, ps)

			msg := inboundFrame(map[string]interface{}{
				"firstName": "A",
				"lastName":  "B",
				"status__c": "New",
				"userId":    "u1",
			})
			msg.Kind = "ping"

			r.handleInbound(context.Background(), msg)

			Expect(ps.Published()).To(BeEmpty())
		})

		It("swallows publish failures", func() {
			h := newFakeHub()
			ps := newFakePubSub()
			ps.publishErr = types.ErrPublish
			r := newTestRelay(h, ps)

			r.handleInbound(context.Background(), inboundFrame(map[string]interface{}{
				"firstName": "A",
				"lastName":  "B",
				"status__c": "New",
				"userId":    "u1",
			}))

			// Nothing reaches the hub; the failure is log-only
			Expect(h.Broadcasts()).To(BeEmpty())
		})
	})
})
