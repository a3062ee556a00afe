package kadmin

import (
	"errors"
	"testing"
)

func TestWrapReturnsNilWhenAllInnerErrorsAreNil(t *testing.T) {
	if err := Wrap(ErrDeleteRecords); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrapIsMatchesSentinelThroughTheAggregate(t *testing.T) {
	inner := &TopicError{Topic: "widgets", Err: ErrUnknownTopicOrPartition}
	wrapped := Wrap(ErrDeleteRecords, inner)
	if wrapped == nil {
		t.Fatal("expected a non-nil aggregate error")
	}
	if !errors.Is(wrapped, ErrDeleteRecords) {
		t.Fatalf("expected errors.Is to match the sentinel through the wrapping, got %v", wrapped)
	}
	if errors.Is(wrapped, ErrLeaderElection) {
		t.Fatal("did not expect the aggregate to match an unrelated sentinel")
	}
}

func TestMultiErrorNilWhenNoErrors(t *testing.T) {
	if err := multiError(); err != nil {
		t.Fatalf("expected nil from multiError() with no arguments, got %v", err)
	}
	if err := multiError(nil, nil); err != nil {
		t.Fatalf("expected nil from multiError(nil, nil), got %v", err)
	}
}

func TestKErrorIsMatchesItself(t *testing.T) {
	var err error = ErrUnknownTopicOrPartition
	if !errors.Is(err, ErrUnknownTopicOrPartition) {
		t.Fatal("expected a KError to match itself via errors.Is")
	}
	if errors.Is(err, ErrNoError) {
		t.Fatal("did not expect distinct KError codes to match")
	}
}

func TestIsRetriableController(t *testing.T) {
	if !IsRetriableController(ErrNotController) {
		t.Fatal("expected ErrNotController to be retriable against the controller")
	}
	if IsRetriableController(ErrUnknownTopicOrPartition) {
		t.Fatal("did not expect an unrelated error to be retriable against the controller")
	}
}

func TestIsRetriableCoordinator(t *testing.T) {
	if !IsRetriableCoordinator(ErrConsumerCoordinatorNotAvailable) {
		t.Fatal("expected ErrConsumerCoordinatorNotAvailable to be retriable against the coordinator")
	}
	if !IsRetriableCoordinator(ErrNotCoordinatorForConsumer) {
		t.Fatal("expected ErrNotCoordinatorForConsumer to be retriable against the coordinator")
	}
	if IsRetriableCoordinator(ErrUnknownTopicOrPartition) {
		t.Fatal("did not expect an unrelated error to be retriable against the coordinator")
	}
}

func TestTopicErrorAndGroupErrorUnwrapToTheirCode(t *testing.T) {
	te := &TopicError{Topic: "widgets", Err: ErrUnknownTopicOrPartition}
	if !errors.Is(te, ErrUnknownTopicOrPartition) {
		t.Fatal("expected TopicError to unwrap to its KError code")
	}
	ge := &GroupError{Group: "mygroup", Err: ErrConsumerCoordinatorNotAvailable}
	if !errors.Is(ge, ErrConsumerCoordinatorNotAvailable) {
		t.Fatal("expected GroupError to unwrap to its KError code")
	}
}
