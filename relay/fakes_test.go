package relay

import (
	"context"
	"sync"

	"github.com/dyncan/data-bi-directional-sync/types"
)

type fakeHub struct {
	mutex      sync.Mutex
	broadcasts []*types.RelayMessage
	inboundCh  chan *types.RelayMessage
}

func newFakeHub() *fakeHub {
	return &fakeHub{
		inboundCh: make(chan *types.RelayMessage, 16),
	}
}

func (f *fakeHub) Broadcast(msg *types.RelayMessage) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.broadcasts = append(f.broadcasts, msg)
}

func (f *fakeHub) Inbound() <-chan *types.RelayMessage {
	return f.inboundCh
}

func (f *fakeHub) Broadcasts() []*types.RelayMessage {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	out := make([]*types.RelayMessage, len(f.broadcasts))
	copy(out, f.broadcasts)
	return out
}

type publishCall struct {
	Topic  string
	Record map[string]interface{}
}

type fakePubSub struct {
	mutex      sync.Mutex
	published  []publishCall
	publishErr error

	events chan *types.ChangeEvent
	errs   chan error

	subscribeErr error
	closed       bool
}

func newFakePubSub() *fakePubSub {
	return &fakePubSub{
		events: make(chan *types.ChangeEvent, 16),
		errs:   make(chan error, 1),
	}
}

func (f *fakePubSub) Subscribe(_ context.Context, _ string, _ *types.ReplayPreference) (<-chan *types.ChangeEvent, <-chan error, error) {
	if f.subscribeErr != nil {
		return nil, nil, f.subscribeErr
	}

	return f.events, f.errs, nil
}

func (f *fakePubSub) Publish(_ context.Context, topic string, record map[string]interface{}) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.publishErr != nil {
		return f.publishErr
	}

	f.published = append(f.published, publishCall{Topic: topic, Record: record})
	return nil
}

func (f *fakePubSub) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.closed = true
	return nil
}

func (f *fakePubSub) Published() []publishCall {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	out := make([]publishCall, len(f.published))
	copy(out, f.published)
	return out
}

// fail the subscription: the relay sees a closed event channel followed
// by one terminal error
func (f *fakePubSub) die(err error) {
	f.errs <- err
	close(f.events)
}

type fakeAuthProvider struct {
	mutex sync.Mutex
	calls int
	err   error
}

func (f *fakeAuthProvider) AuthContext(_ context.Context) (*types.AuthContext, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	return &types.AuthContext{
		AccessToken:    "00Dtoken",
		InstanceURL:    "https://test.my.salesforce.com",
		OrganizationID: "00D000000000001",
		Username:       "relay@example.com",
	}, nil
}

func (f *fakeAuthProvider) Calls() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.calls
}
