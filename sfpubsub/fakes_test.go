package sfpubsub

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/linkedin/goavro/v2"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/dyncan/data-bi-directional-sync/pb/eventbus"
	"github.com/dyncan/data-bi-directional-sync/types"
)

const cdcSchemaJSON = `{
  "type": "record",
  "name": "ContactChangeEvent",
  "namespace": "com.sforce.eventbus",
  "fields": [
    {"name": "ChangeEventHeader", "type": {
      "type": "record",
      "name": "ChangeEventHeader",
      "fields": [
        {"name": "changeType", "type": "string"},
        {"name": "recordIds", "type": {"type": "array", "items": "string"}}
      ]
    }},
    {"name": "Status__c", "type": ["null", "string"], "default": null},
    {"name": "FirstName", "type": ["null", "string"], "default": null}
  ]
}`

const eventSchemaJSON = `{
  "type": "record",
  "name": "Contact_Event__e",
  "namespace": "com.sforce.eventbus",
  "fields": [
    {"name": "CreatedDate", "type": "long"},
    {"name": "CreatedById", "type": "string"},
    {"name": "FirstName__c", "type": ["null", "string"], "default": null},
    {"name": "LastName__c", "type": ["null", "string"], "default": null},
    {"name": "Status__c", "type": ["null", "string"], "default": null}
  ]
}`

type fakeStream struct {
	grpc.ClientStream

	mutex   sync.Mutex
	sent    []*eventbus.FetchRequest
	recvCh  chan *eventbus.FetchResponse
	recvErr error
}

func newFakeStream() *fakeStream {
	return &fakeStream{
		recvCh:  make(chan *eventbus.FetchResponse, 16),
		recvErr: io.EOF,
	}
}

func (s *fakeStream) Send(m *eventbus.FetchRequest) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.sent = append(s.sent, m)
	return nil
}

func (s *fakeStream) Recv() (*eventbus.FetchResponse, error) {
	resp, ok := <-s.recvCh
	if !ok {
		return nil, s.recvErr
	}

	return resp, nil
}

func (s *fakeStream) Sent() []*eventbus.FetchRequest {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]*eventbus.FetchRequest, len(s.sent))
	copy(out, s.sent)
	return out
}

type fakeStub struct {
	mutex sync.Mutex

	topics  map[string]*eventbus.TopicInfo
	schemas map[string]string

	stream *fakeStream

	publishReqs []*eventbus.PublishRequest
	publishResp *eventbus.PublishResponse
	publishErr  error
}

func newFakeStub() *fakeStub {
	return &fakeStub{
		topics: map[string]*eventbus.TopicInfo{
			"/data/ContactChangeEvent": {
				TopicName:    "/data/ContactChangeEvent",
				CanSubscribe: true,
				SchemaId:     "cdc-schema",
			},
			"/event/Contact_Event__e": {
				TopicName:  "/event/Contact_Event__e",
				CanPublish: true,
				SchemaId:   "event-schema",
			},
		},
		schemas: map[string]string{
			"cdc-schema":   cdcSchemaJSON,
			"event-schema": eventSchemaJSON,
		},
		stream:      newFakeStream(),
		publishResp: &eventbus.PublishResponse{Results: []*eventbus.PublishResult{{}}},
	}
}

func (f *fakeStub) Subscribe(_ context.Context, _ ...grpc.CallOption) (eventbus.PubSub_SubscribeClient, error) {
	return f.stream, nil
}

func (f *fakeStub) GetTopic(_ context.Context, in *eventbus.TopicRequest, _ ...grpc.CallOption) (*eventbus.TopicInfo, error) {
	info, ok := f.topics[in.GetTopicName()]
	if !ok {
		return nil, io.EOF
	}

	return info, nil
}

func (f *fakeStub) GetSchema(_ context.Context, in *eventbus.SchemaRequest, _ ...grpc.CallOption) (*eventbus.SchemaInfo, error) {
	schemaJSON, ok := f.schemas[in.GetSchemaId()]
	if !ok {
		return nil, io.EOF
	}

	return &eventbus.SchemaInfo{SchemaId: in.GetSchemaId(), SchemaJson: schemaJSON}, nil
}

func (f *fakeStub) Publish(_ context.Context, in *eventbus.PublishRequest, _ ...grpc.CallOption) (*eventbus.PublishResponse, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.publishErr != nil {
		return nil, f.publishErr
	}

	f.publishReqs = append(f.publishReqs, in)
	return f.publishResp, nil
}

func (f *fakeStub) PublishRequests() []*eventbus.PublishRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	out := make([]*eventbus.PublishRequest, len(f.publishReqs))
	copy(out, f.publishReqs)
	return out
}

func newTestClient(stub eventbus.PubSubClient) *SFPubSub {
	return &SFPubSub{
		cfg: &Config{
			GRPCAddress:    "localhost:0",
			Timeout:        time.Second,
			FetchBatchSize: 5,
		},
		auth: &types.AuthContext{
			AccessToken:    "00Dtoken",
			InstanceURL:    "https://test.my.salesforce.com",
			OrganizationID: "00D000000000001",
			Username:       "relay@example.com",
		},
		client:      stub,
		codecs:      make(map[string]*goavro.Codec),
		codecsMutex: &sync.RWMutex{},
		topics:      make(map[string]*eventbus.TopicInfo),
		topicsMutex: &sync.RWMutex{},
		log:         logrus.WithField("pkg", "sfpubsub"),
	}
}

// encodeCDCEvent builds a binary CDC payload the way the platform would
func encodeCDCEvent(changeType string, recordIDs []string, status interface{}) []byte {
	codec, err := goavro.NewCodec(cdcSchemaJSON)
	if err != nil {
		panic(err)
	}

	ids := make([]interface{}, len(recordIDs))
	for n, id := range recordIDs {
		ids[n] = id
	}

	native := map[string]interface{}{
		"ChangeEventHeader": map[string]interface{}{
			"changeType": changeType,
			"recordIds":  ids,
		},
		"Status__c": status,
		"FirstName": nil,
	}

	binary, err := codec.BinaryFromNative(nil, native)
	if err != nil {
		panic(err)
	}

	return binary
}
