package sfpubsub

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dyncan/data-bi-directional-sync/pb/eventbus"
	"github.com/dyncan/data-bi-directional-sync/types"
)

func consumerEvent(payload []byte) *eventbus.ConsumerEvent {
	return &eventbus.ConsumerEvent{
		Event: &eventbus.ProducerEvent{
			SchemaId: "cdc-schema",
			Payload:  payload,
		},
		ReplayId: []byte{0x01},
	}
}

var _ = Describe("Subscribe", func() {
	var (
		stub   *fakeStub
		client *SFPubSub
	)

	BeforeEach(func() {
		stub = newFakeStub()
		client = newTestClient(stub)
	})

	It("sends the initial fetch request with the replay preset", func() {
		_, _, err := client.Subscribe(context.Background(), "/data/ContactChangeEvent", nil)
		Expect(err).ToNot(HaveOccurred())

		sent := stub.stream.Sent()
		Expect(sent).To(HaveLen(1))
		Expect(sent[0].GetTopicName()).To(Equal("/data/ContactChangeEvent"))
		Expect(sent[0].GetReplayPreset()).To(Equal(eventbus.ReplayPreset_LATEST))
		Expect(sent[0].GetNumRequested()).To(Equal(int32(5)))
	})

	It("passes a custom replay id through", func() {
		_, _, err := client.Subscribe(context.Background(), "/data/ContactChangeEvent", &types.ReplayPreference{
			Preset:   types.ReplayCustom,
			ReplayID: []byte{0xca, 0xfe},
		})
		Expect(err).ToNot(HaveOccurred())

		sent := stub.stream.Sent()
		Expect(sent[0].GetReplayPreset()).To(Equal(eventbus.ReplayPreset_CUSTOM))
		Expect(sent[0].GetReplayId()).To(Equal([]byte{0xca, 0xfe}))
	})

	It("decodes events into ChangeEvents with the header lifted out", func() {
		events, _, err := client.Subscribe(context.Background(), "/data/ContactChangeEvent", nil)
		Expect(err).ToNot(HaveOccurred())

		payload := encodeCDCEvent("UPDATE", []string{"003a", "003b"},
			map[string]interface{}{"string": "Closed"})

		stub.stream.recvCh <- &eventbus.FetchResponse{
			Events:              []*eventbus.ConsumerEvent{consumerEvent(payload)},
			PendingNumRequested: 5,
		}

		var event *types.ChangeEvent
		Eventually(events).Should(Receive(&event))

		Expect(event.ChangeType).To(Equal("UPDATE"))
		Expect(event.RecordIDs).To(Equal([]string{"003a", "003b"}))
		Expect(event.Fields).ToNot(HaveKey("ChangeEventHeader"))

		statusValue, ok := event.StringField("Status__c")
		Expect(ok).To(BeTrue())
		Expect(statusValue).To(Equal("Closed"))
	})

	It("skips an undecodable event and keeps the stream alive", func() {
		events, _, err := client.Subscribe(context.Background(), "/data/ContactChangeEvent", nil)
		Expect(err).ToNot(HaveOccurred())

		good := encodeCDCEvent("UPDATE", []string{"003a"}, map[string]interface{}{"string": "New"})

		stub.stream.recvCh <- &eventbus.FetchResponse{
			Events: []*eventbus.ConsumerEvent{
				consumerEvent([]byte{0xde, 0xad, 0xbe, 0xef}),
				consumerEvent(good),
			},
			PendingNumRequested: 5,
		}

		var event *types.ChangeEvent
		Eventually(events).Should(Receive(&event))
		Expect(event.RecordIDs).To(Equal([]string{"003a"}))
		Consistently(events).ShouldNot(Receive())
	})

	It("tops up the fetch window when the pending count drops", func() {
		_, _, err := client.Subscribe(context.Background(), "/data/ContactChangeEvent", nil)
		Expect(err).ToNot(HaveOccurred())

		stub.stream.recvCh <- &eventbus.FetchResponse{PendingNumRequested: 2}

		Eventually(func() int { return len(stub.stream.Sent()) }).Should(Equal(2))
		Expect(stub.stream.Sent()[1].GetNumRequested()).To(Equal(int32(3)))
	})

	It("terminates with a stream error when the server closes the stream", func() {
		events, streamErrs, err := client.Subscribe(context.Background(), "/data/ContactChangeEvent", nil)
		Expect(err).ToNot(HaveOccurred())

		close(stub.stream.recvCh)

		var streamErr error
		Eventually(streamErrs).Should(Receive(&streamErr))
		Expect(errors.Is(streamErr, types.ErrStream)).To(BeTrue())
		Eventually(events).Should(BeClosed())
	})

	It("classifies a revoked session as an auth error", func() {
		stub.stream.recvErr = status.Error(codes.Unauthenticated, "session expired")

		_, streamErrs, err := client.Subscribe(context.Background(), "/data/ContactChangeEvent", nil)
		Expect(err).ToNot(HaveOccurred())

		close(stub.stream.recvCh)

		var streamErr error
		Eventually(streamErrs).Should(Receive(&streamErr))
		Expect(errors.Is(streamErr, types.ErrAuth)).To(BeTrue())
	})
})
