package kadmin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-multierror"
)

func newTestAdmin(t *testing.T, fb *fakeBrokerClient) *ClusterAdmin {
	t.Helper()
	ca, err := NewClusterAdmin(fb, nil)
	if err != nil {
		t.Fatalf("NewClusterAdmin: %v", err)
	}
	return ca
}

func TestDeleteRecordsRoutesByPartitionLeader(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIDeleteRecords)] = 1
	fb.brokers = []Node{{ID: 1}, {ID: 2}}
	fb.partitionsByTopic["widgets"] = []PartitionMetadata{
		{Partition: 0, Leader: 1},
		{Partition: 1, Leader: 2},
	}

	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		r := req.(*DeleteRecordsRequest)
		results := make(map[TopicPartition]DeleteRecordsResult)
		for tp := range r.Offsets {
			results[tp] = DeleteRecordsResult{LowWatermark: 100, Err: ErrNoError}
		}
		return &DeleteRecordsResponse{Results: results}, nil
	}

	ca := newTestAdmin(t, fb)
	out, err := ca.DeleteRecords(context.Background(), map[TopicPartition]int64{
		{Topic: "widgets", Partition: 0}: 10,
		{Topic: "widgets", Partition: 1}: 20,
	}, time.Second)
	if err != nil {
		t.Fatalf("DeleteRecords: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}

	calls1 := fb.callsFor(1)
	calls2 := fb.callsFor(2)
	if len(calls1) != 1 || len(calls2) != 1 {
		t.Fatalf("expected one call per leader broker, got %d to node1 and %d to node2", len(calls1), len(calls2))
	}
	req1 := calls1[0].(*DeleteRecordsRequest)
	if _, ok := req1.Offsets[TopicPartition{Topic: "widgets", Partition: 0}]; !ok {
		t.Fatal("expected partition 0's request routed to its leader, node 1")
	}
	req2 := calls2[0].(*DeleteRecordsRequest)
	if _, ok := req2.Offsets[TopicPartition{Topic: "widgets", Partition: 1}]; !ok {
		t.Fatal("expected partition 1's request routed to its leader, node 2")
	}
}

func TestDescribeConfigsSplitsBrokerAndTopicResources(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIDescribeConfigs)] = 2
	fb.leastLoaded = 0
	fb.brokers = []Node{{ID: 0}, {ID: 5}}

	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		r := req.(*DescribeConfigsRequest)
		var results []DescribeConfigsResult
		for _, res := range r.Resources {
			results = append(results, DescribeConfigsResult{Resource: res.Resource, Err: ErrNoError})
		}
		return &DescribeConfigsResponse{Results: results}, nil
	}

	ca := newTestAdmin(t, fb)
	_, err := ca.DescribeConfigs(context.Background(), []DescribeConfigsResource{
		{Resource: ConfigResource{Type: ResourceTopic, Name: "widgets"}},
		{Resource: ConfigResource{Type: ResourceBroker, Name: "5"}},
	}, false)
	if err != nil {
		t.Fatalf("DescribeConfigs: %v", err)
	}

	brokerCalls := fb.callsFor(5)
	leastLoadedCalls := fb.callsFor(0)
	if len(brokerCalls) != 1 {
		t.Fatalf("expected exactly one call to broker 5, got %d", len(brokerCalls))
	}
	brokerReq := brokerCalls[0].(*DescribeConfigsRequest)
	if len(brokerReq.Resources) != 1 || brokerReq.Resources[0].Resource.Type != ResourceBroker {
		t.Fatalf("expected broker-resource request isolated to the named broker: %+v", brokerReq.Resources)
	}
	if len(leastLoadedCalls) != 1 {
		t.Fatalf("expected exactly one least-loaded call for the topic resource, got %d", len(leastLoadedCalls))
	}
	topicReq := leastLoadedCalls[0].(*DescribeConfigsRequest)
	if len(topicReq.Resources) != 1 || topicReq.Resources[0].Resource.Type != ResourceTopic {
		t.Fatalf("expected topic-resource request routed least-loaded: %+v", topicReq.Resources)
	}
}

func TestPerformLeaderElectionTreatsElectionNotNeededAsSuccess(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIElectLeaders)] = 2
	fb.apiVersions[int16(APIMetadata)] = 4
	fb.brokers = []Node{{ID: 0}}

	tp := TopicPartition{Topic: "widgets", Partition: 0}
	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		switch req.(type) {
		case *MetadataRequest:
			return &MetadataResponse{ControllerID: 0}, nil
		case *ElectLeadersRequest:
			return &ElectLeadersResponse{
				Err:     ErrNoError,
				Results: map[TopicPartition]KError{tp: ErrElectionNotNeeded},
			}, nil
		}
		return nil, nil
	}

	ca := newTestAdmin(t, fb)
	result, err := ca.PerformLeaderElection(context.Background(), ElectionPreferred, []TopicPartition{tp}, time.Second)
	if err != nil {
		t.Fatalf("expected ErrElectionNotNeeded to be treated as success, got: %v", err)
	}
	if result[tp] != ErrElectionNotNeeded {
		t.Fatalf("unexpected result code: %v", result[tp])
	}
}

func TestListConsumerGroupOffsetsRequiresFeatureForAllPartitions(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIFindCoordinator)] = 2
	fb.apiVersions[int16(APIOffsetFetch)] = 1 // below FeatureOffsetFetchAllPartitions.MinVersion (2)

	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		if _, ok := req.(*FindCoordinatorRequest); ok {
			return &FindCoordinatorResponse{NodeID: 0, ErrorCode: ErrNoError}, nil
		}
		return &OffsetFetchResponse{}, nil
	}

	ca := newTestAdmin(t, fb)
	_, err := ca.ListConsumerGroupOffsets(context.Background(), "mygroup", nil)
	if err == nil {
		t.Fatal("expected IncompatibleBrokerVersionError when requesting all partitions below the minimum version")
	}
	if _, ok := err.(*IncompatibleBrokerVersionError); !ok {
		t.Fatalf("expected *IncompatibleBrokerVersionError, got %T: %v", err, err)
	}
}

func TestDescribeConsumerGroupsForwardsIncludeAuthorizedOperations(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIFindCoordinator)] = 2
	fb.apiVersions[int16(APIDescribeGroups)] = 2 // below FeatureIncludeAuthorizedOperations.MinVersion (3)

	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		if _, ok := req.(*FindCoordinatorRequest); ok {
			return &FindCoordinatorResponse{NodeID: 0, ErrorCode: ErrNoError}, nil
		}
		return &DescribeGroupsResponse{}, nil
	}

	ca := newTestAdmin(t, fb)
	_, err := ca.DescribeConsumerGroups(context.Background(), []string{"mygroup"}, true)
	if err == nil {
		t.Fatal("expected an error requesting authorized operations from a broker version that does not support it")
	}
}

// TestCreateTopicsResendsOnceOnNotController covers scenario S1/property 3:
// a single ErrNotController triggers exactly one controller refresh and one
// resend, and the façade still returns success once the resend lands on the
// (now correct) controller.
func TestCreateTopicsResendsOnceOnNotController(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIMetadata)] = 4
	fb.apiVersions[int16(APICreateTopics)] = 4
	fb.brokers = []Node{{ID: 0}}

	var createCalls int
	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		switch req.(type) {
		case *MetadataRequest:
			return &MetadataResponse{ControllerID: 0}, nil
		case *CreateTopicsRequest:
			createCalls++
			if createCalls == 1 {
				return &CreateTopicsResponse{Topics: map[string]TopicCreationResult{
					"widgets": {Err: ErrNotController},
				}}, nil
			}
			return &CreateTopicsResponse{Topics: map[string]TopicCreationResult{
				"widgets": {Err: ErrNoError},
			}}, nil
		}
		return nil, nil
	}

	ca := newTestAdmin(t, fb)
	// Warm the controller cache so the NotController round below starts
	// from a known-good cache rather than an empty one.
	if _, err := ca.router.controllerTarget(context.Background()); err != nil {
		t.Fatalf("warm controllerTarget: %v", err)
	}
	fb.mu.Lock()
	fb.calls = nil
	fb.mu.Unlock()

	result, err := ca.CreateTopics(context.Background(), []NewTopic{{Name: "widgets", NumPartitions: 1}}, time.Second, false)
	if err != nil {
		t.Fatalf("expected the resend to succeed, got: %v", err)
	}
	if result["widgets"].Err != ErrNoError {
		t.Fatalf("expected widgets to report ErrNoError after the resend, got %v", result["widgets"].Err)
	}
	if createCalls != 2 {
		t.Fatalf("expected exactly 1 resend (2 CreateTopics calls total), got %d", createCalls)
	}
	var metadataCalls int
	for _, c := range fb.calls {
		if _, ok := c.Req.(*MetadataRequest); ok {
			metadataCalls++
		}
	}
	if metadataCalls != 1 {
		t.Fatalf("expected exactly 1 Metadata call to rediscover the controller, got %d", metadataCalls)
	}
}

// TestCreateTopicsPropagatesOnRepeatedNotController covers property 3's
// other half: once every allowed retry is spent on ErrNotController the
// façade must propagate the failure rather than retry indefinitely.
func TestCreateTopicsPropagatesOnRepeatedNotController(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIMetadata)] = 4
	fb.apiVersions[int16(APICreateTopics)] = 4
	fb.brokers = []Node{{ID: 0}}

	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		switch req.(type) {
		case *MetadataRequest:
			return &MetadataResponse{ControllerID: 0}, nil
		case *CreateTopicsRequest:
			return &CreateTopicsResponse{Topics: map[string]TopicCreationResult{
				"widgets": {Err: ErrNotController},
			}}, nil
		}
		return nil, nil
	}

	ca := newTestAdmin(t, fb)
	_, err := ca.CreateTopics(context.Background(), []NewTopic{{Name: "widgets", NumPartitions: 1}}, time.Second, false)
	if err == nil {
		t.Fatal("expected an error once every retry is exhausted on ErrNotController")
	}
	if !errors.Is(err, ErrNotController) {
		t.Fatalf("expected the propagated error to match ErrNotController, got %T: %v", err, err)
	}
}

// TestListTopicsExtractsTopicNames covers scenario S2: ListTopics fetches
// cluster Metadata and returns just the topic names.
func TestListTopicsExtractsTopicNames(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIMetadata)] = 4
	fb.leastLoaded = 0
	fb.brokers = []Node{{ID: 0}}

	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		return &MetadataResponse{
			ControllerID: 0,
			Topics: []TopicMetadata{
				{Topic: "widgets"},
				{Topic: "gadgets"},
			},
		}, nil
	}

	ca := newTestAdmin(t, fb)
	names, err := ca.ListTopics(context.Background())
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(names) != 2 || names[0] != "widgets" || names[1] != "gadgets" {
		t.Fatalf("expected [widgets gadgets], got %v", names)
	}
}

// TestCoordinatorCacheSharedAcrossFacadeMethods covers scenario S3: once one
// façade method has resolved a group's coordinator, a second façade method
// operating on the same group reuses the cached coordinator instead of
// issuing another FindCoordinator lookup.
func TestCoordinatorCacheSharedAcrossFacadeMethods(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIFindCoordinator)] = 2
	fb.apiVersions[int16(APIOffsetFetch)] = 2
	fb.apiVersions[int16(APIDeleteGroups)] = 2
	fb.brokers = []Node{{ID: 0}}

	var findCoordinatorCalls int
	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		switch req.(type) {
		case *FindCoordinatorRequest:
			findCoordinatorCalls++
			return &FindCoordinatorResponse{NodeID: 0, ErrorCode: ErrNoError}, nil
		case *OffsetFetchRequest:
			return &OffsetFetchResponse{Offsets: map[TopicPartition]OffsetFetchPartition{}}, nil
		case *DeleteGroupsRequest:
			return &DeleteGroupsResponse{Results: map[string]KError{"mygroup": ErrNoError}}, nil
		}
		return nil, nil
	}

	ca := newTestAdmin(t, fb)
	if _, err := ca.ListConsumerGroupOffsets(context.Background(), "mygroup", []TopicPartition{{Topic: "widgets", Partition: 0}}); err != nil {
		t.Fatalf("ListConsumerGroupOffsets: %v", err)
	}
	if _, err := ca.DeleteConsumerGroups(context.Background(), []string{"mygroup"}); err != nil {
		t.Fatalf("DeleteConsumerGroups: %v", err)
	}
	if findCoordinatorCalls != 1 {
		t.Fatalf("expected the coordinator cache to be reused across façade calls, got %d FindCoordinator calls", findCoordinatorCalls)
	}
}

// TestDeleteConsumerGroupsPreservesPerGroupAttribution covers property 5:
// Dispatch's submit-all-then-poll-all concurrency must not mix up which
// result belongs to which group, even when groups land on different
// coordinators and resolve out of order.
func TestDeleteConsumerGroupsPreservesPerGroupAttribution(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIFindCoordinator)] = 2
	fb.apiVersions[int16(APIDeleteGroups)] = 2
	fb.brokers = []Node{{ID: 0}, {ID: 1}}

	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		switch r := req.(type) {
		case *FindCoordinatorRequest:
			node := int32(0)
			if r.Key == "group-b" {
				node = 1
			}
			return &FindCoordinatorResponse{NodeID: node, ErrorCode: ErrNoError}, nil
		case *DeleteGroupsRequest:
			results := make(map[string]KError, len(r.Groups))
			for _, g := range r.Groups {
				if g == "group-b" {
					results[g] = ErrGroupIDNotFound
				} else {
					results[g] = ErrNoError
				}
			}
			return &DeleteGroupsResponse{Results: results}, nil
		}
		return nil, nil
	}

	ca := newTestAdmin(t, fb)
	results, err := ca.DeleteConsumerGroups(context.Background(), []string{"group-a", "group-b"})
	if err == nil {
		t.Fatal("expected an aggregate error for group-b's failure")
	}
	if results["group-a"] != ErrNoError {
		t.Fatalf("expected group-a (coordinator 0) to report ErrNoError, got %v", results["group-a"])
	}
	if results["group-b"] != ErrGroupIDNotFound {
		t.Fatalf("expected group-b (coordinator 1) to report its own failure untouched by group-a's result, got %v", results["group-b"])
	}
}

func TestDeleteTopicsAggregatesPerTopicErrors(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIMetadata)] = 4
	fb.apiVersions[int16(APIDeleteTopics)] = 4
	fb.brokers = []Node{{ID: 0}}

	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		switch req.(type) {
		case *MetadataRequest:
			return &MetadataResponse{ControllerID: 0}, nil
		case *DeleteTopicsRequest:
			return &DeleteTopicsResponse{TopicErrorCodes: map[string]KError{
				"ok-topic":  ErrNoError,
				"bad-topic": ErrUnknownTopicOrPartition,
			}}, nil
		}
		return nil, nil
	}

	ca := newTestAdmin(t, fb)
	_, err := ca.DeleteTopics(context.Background(), []string{"ok-topic", "bad-topic"}, time.Second)
	if err == nil {
		t.Fatal("expected an aggregate error for the failed topic")
	}
	var topicErr *TopicError
	found := false
	switch e := err.(type) {
	case *TopicError:
		topicErr, found = e, true
	case *multierror.Error:
		for _, sub := range e.Errors {
			if te, ok := sub.(*TopicError); ok {
				topicErr, found = te, true
				break
			}
		}
	}
	if !found || topicErr.Topic != "bad-topic" || topicErr.Err != ErrUnknownTopicOrPartition {
		t.Fatalf("expected a *TopicError for bad-topic in the aggregate, got:\n%s", spew.Sdump(err))
	}
}
