package kadmin

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newMetadataHandler(controllerID int32, apiVersion int16) func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
	return func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		_, ok := req.(*MetadataRequest)
		if !ok {
			return nil, errors.New("unexpected request type")
		}
		return &MetadataResponse{
			Version:      apiVersion,
			Brokers:      []Node{{ID: nodeID, Host: "localhost", Port: 9092}},
			ControllerID: controllerID,
		}, nil
	}
}

func TestControllerCacheGetWithinTTLDoesNotHitNetwork(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIMetadata)] = 4
	calls := 0
	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		calls++
		return newMetadataHandler(7, 4)(nodeID, req)
	}

	cc := newControllerCache(fb, time.Minute)
	id, err := cc.Refresh(context.Background(), 2, time.Millisecond)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected controller id 7, got %d", id)
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 network call, got %d", calls)
	}

	got, ok := cc.Get()
	if !ok || got != 7 {
		t.Fatalf("Get() = %d, %v", got, ok)
	}
	if calls != 1 {
		t.Fatalf("Get() within TTL should not hit the network, calls = %d", calls)
	}
}

func TestControllerCacheRefreshRetriesBoundedNumberOfTimes(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIMetadata)] = 4
	attempts := 0
	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		attempts++
		return nil, errors.New("broker unreachable")
	}

	cc := newControllerCache(fb, time.Minute)
	maxRetries := 3
	_, err := cc.Refresh(context.Background(), maxRetries, time.Millisecond)
	if err == nil {
		t.Fatal("expected Refresh to fail when the broker never responds")
	}
	if attempts != maxRetries {
		t.Fatalf("expected exactly %d attempts, got %d", maxRetries, attempts)
	}
}

func TestControllerCacheRefreshSucceedsAfterTransientFailures(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIMetadata)] = 4
	attempts := 0
	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient failure")
		}
		return newMetadataHandler(9, 4)(nodeID, req)
	}

	cc := newControllerCache(fb, time.Minute)
	id, err := cc.Refresh(context.Background(), 5, time.Millisecond)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if id != 9 {
		t.Fatalf("expected controller id 9, got %d", id)
	}
	if attempts != 3 {
		t.Fatalf("expected Refresh to stop retrying once it succeeds, attempts = %d", attempts)
	}
}

func TestControllerCacheInvalidateForcesRefresh(t *testing.T) {
	fb := newFakeBrokerClient()
	fb.apiVersions[int16(APIMetadata)] = 4
	calls := 0
	fb.handler = func(nodeID int32, req ProtocolBody) (ProtocolBody, error) {
		calls++
		return newMetadataHandler(int32(calls), 4)(nodeID, req)
	}

	cc := newControllerCache(fb, time.Minute)
	if _, err := cc.Refresh(context.Background(), 1, time.Millisecond); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	cc.Invalidate()

	if _, ok := cc.Get(); ok {
		t.Fatal("expected Get() to report no cached controller after Invalidate")
	}
	if _, err := cc.Refresh(context.Background(), 1, time.Millisecond); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected Invalidate to force a second network call, calls = %d", calls)
	}
}
