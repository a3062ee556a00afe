package kadmin

import "context"

// Node identifies a broker in the cluster, per SPEC_FULL.md §3. The core
// only ever holds ids; host/port are owned by the broker-client
// collaborator (C3) and surfaced here purely for display.
type Node struct {
	ID   int32
	Host string
	Port int32
}

// TopicPartition is a value type identifying one partition of one topic.
// Equality and map-keying are by both fields, which Go gives us for free
// since the struct holds only comparable fields.
type TopicPartition struct {
	Topic     string
	Partition int32
}

// PartitionMetadata is the subset of Metadata response fields the router
// needs to bucket DeleteRecords by leader.
type PartitionMetadata struct {
	Partition int32
	Leader    int32
	Replicas  []int32
	Err       KError
}

// TopicMetadata groups a topic's partitions as returned by a single
// Metadata call.
type TopicMetadata struct {
	Topic      string
	Partitions []PartitionMetadata
	Err        KError
}

// ClusterView is the read side of the broker-client's cluster state, per
// spec.md §1's collaborator contract (`cluster.brokers()`,
// `cluster.partitionsForTopic(t)`).
type ClusterView interface {
	Brokers() []Node
	PartitionsForTopic(topic string) []PartitionMetadata
}

// Future is the broker-client's handle for an in-flight request, per
// spec.md §1 (`send(nodeId, request) -> Future<Response>`) and the §9
// design note that futures are expressed with the target language's native
// concurrency primitive — here a channel-backed struct (see future.go).
type Future interface {
	// Done reports whether the future has a result (success or failure)
	// available without blocking.
	Done() bool
	// Result returns the decoded response and/or error once Done is true.
	// Calling it before Done is true is a programming error; the fan-out
	// executor never does so — it always routes through BrokerClient.Poll.
	Result() (ProtocolBody, error)
}

// BrokerClient is the external network-client contract this core consumes,
// per spec.md §1. The core never dials a socket, negotiates TLS/SASL, or
// retries a dead connection — all of that is this collaborator's job.
type BrokerClient interface {
	// AwaitReady blocks until nodeId is connected and its handshake
	// (including ApiVersions) has completed, or ctx is done.
	AwaitReady(ctx context.Context, nodeID int32) error
	// Send submits request to nodeId and returns a Future for its response.
	// It must not block waiting for the response; that happens in Poll.
	Send(ctx context.Context, nodeID int32, request ProtocolBody) (Future, error)
	// Poll drives I/O until future has a result, or ctx is done.
	Poll(ctx context.Context, future Future) error
	// LeastLoadedNode returns the connected broker with the fewest
	// in-flight requests, or -1 if none are connected.
	LeastLoadedNode() int32
	// APIVersion returns the highest version of apiKey the broker side of
	// an already-ready connection supports, capped at maxVersion, or -1 if
	// the broker does not support apiKey at all.
	APIVersion(apiKey int16, maxVersion int16) int16
	// CheckVersion returns the broker's own release version as
	// (major, minor, patch). Nothing in this package calls it: controller
	// discovery does not check the controller's release version.
	CheckVersion(ctx context.Context, nodeID int32) (major, minor, patch int, err error)
	// Cluster returns the current cluster view.
	Cluster() ClusterView
}
