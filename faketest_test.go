package kadmin

import (
	"context"
	"sync"
)

// fakeBrokerClient is a scriptable BrokerClient used across this package's
// tests, grounded on the teacher's own in-memory mockBroker helpers (see
// the teacher's *_test.go files for the same "record calls, hand back a
// canned response" shape). It never touches a socket.
type fakeBrokerClient struct {
	mu sync.Mutex

	brokers           []Node
	partitionsByTopic map[string][]PartitionMetadata

	// apiVersions maps an API key to the maximum version this fake broker
	// advertises. A missing entry means "not supported" (APIVersion returns
	// -1), matching a real broker that never registered the key.
	apiVersions map[int16]int16

	// handler produces the response (or error) for a request sent to a
	// given node. Most tests set this directly; DescribeConfigs/DeleteRecords
	// routing tests also inspect the nodeID argument.
	handler func(nodeID int32, req ProtocolBody) (ProtocolBody, error)

	leastLoaded int32
	awaitErr    map[int32]error

	calls []fakeCall
}

type fakeCall struct {
	NodeID int32
	Req    ProtocolBody
}

func newFakeBrokerClient() *fakeBrokerClient {
	return &fakeBrokerClient{
		partitionsByTopic: make(map[string][]PartitionMetadata),
		apiVersions:       make(map[int16]int16),
		awaitErr:          make(map[int32]error),
	}
}

func (f *fakeBrokerClient) AwaitReady(ctx context.Context, nodeID int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.awaitErr[nodeID]
}

func (f *fakeBrokerClient) Send(ctx context.Context, nodeID int32, request ProtocolBody) (Future, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{NodeID: nodeID, Req: request})
	handler := f.handler
	f.mu.Unlock()

	fut, complete := newChannelFuture()
	if handler == nil {
		complete(nil, errNoHandlerConfigured)
		return fut, nil
	}
	resp, err := handler(nodeID, request)
	complete(resp, err)
	return fut, nil
}

var errNoHandlerConfigured = &ProtocolDecodeError{Info: "fakeBrokerClient: no handler configured"}

func (f *fakeBrokerClient) Poll(ctx context.Context, future Future) error {
	if cf, ok := future.(*channelFuture); ok {
		cf.Await()
	}
	return nil
}

func (f *fakeBrokerClient) LeastLoadedNode() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leastLoaded
}

func (f *fakeBrokerClient) APIVersion(apiKey int16, maxVersion int16) int16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.apiVersions[apiKey]
	if !ok {
		return -1
	}
	if v > maxVersion {
		return maxVersion
	}
	return v
}

func (f *fakeBrokerClient) CheckVersion(ctx context.Context, nodeID int32) (int, int, int, error) {
	return 2, 8, 0, nil
}

func (f *fakeBrokerClient) Cluster() ClusterView { return f }

func (f *fakeBrokerClient) Brokers() []Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.brokers
}

func (f *fakeBrokerClient) PartitionsForTopic(topic string) []PartitionMetadata {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.partitionsByTopic[topic]
}

func (f *fakeBrokerClient) callsFor(nodeID int32) []ProtocolBody {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ProtocolBody
	for _, c := range f.calls {
		if c.NodeID == nodeID {
			out = append(out, c.Req)
		}
	}
	return out
}
