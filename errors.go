package kadmin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// KError is the type of error that can be returned directly by the Kafka
// broker. See https://kafka.apache.org/protocol#protocol_error_codes
type KError int16

// Numeric error codes returned by the broker. Only the codes this core
// inspects directly (controller/coordinator drift, election, and the most
// common request-level failures) get dedicated handling; the rest still
// decode and stringify correctly.
const (
	ErrNoError                         KError = 0
	ErrUnknown                         KError = -1
	ErrOffsetOutOfRange                KError = 1
	ErrUnknownTopicOrPartition         KError = 3
	ErrLeaderNotAvailable              KError = 5
	ErrNotLeaderForPartition           KError = 6
	ErrRequestTimedOut                 KError = 7
	ErrReplicaNotAvailable             KError = 9
	ErrOffsetsLoadInProgress           KError = 14
	ErrConsumerCoordinatorNotAvailable KError = 15
	ErrNotCoordinatorForConsumer       KError = 16
	ErrInvalidTopic                    KError = 17
	ErrInvalidGroupId                  KError = 24
	ErrRebalanceInProgress             KError = 27
	ErrTopicAuthorizationFailed        KError = 29
	ErrGroupAuthorizationFailed        KError = 30
	ErrClusterAuthorizationFailed      KError = 31
	ErrUnsupportedVersion              KError = 35
	ErrTopicAlreadyExists              KError = 36
	ErrInvalidPartitions               KError = 37
	ErrInvalidReplicationFactor        KError = 38
	ErrInvalidReplicaAssignment        KError = 39
	ErrInvalidConfig                   KError = 40
	ErrNotController                   KError = 41
	ErrInvalidRequest                  KError = 42
	ErrPolicyViolation                 KError = 44
	ErrGroupIDNotFound                 KError = 69
	ErrPreferredLeaderNotAvailable     KError = 80
	ErrElectionNotNeeded               KError = 84
	ErrGroupSubscribedToTopic          KError = 86
)

var errCodeNames = map[KError]string{
	ErrNoError:                         "NONE",
	ErrUnknown:                         "UNKNOWN_SERVER_ERROR",
	ErrOffsetOutOfRange:                "OFFSET_OUT_OF_RANGE",
	ErrUnknownTopicOrPartition:         "UNKNOWN_TOPIC_OR_PARTITION",
	ErrLeaderNotAvailable:              "LEADER_NOT_AVAILABLE",
	ErrNotLeaderForPartition:           "NOT_LEADER_OR_FOLLOWER",
	ErrRequestTimedOut:                 "REQUEST_TIMED_OUT",
	ErrReplicaNotAvailable:             "REPLICA_NOT_AVAILABLE",
	ErrOffsetsLoadInProgress:           "COORDINATOR_LOAD_IN_PROGRESS",
	ErrConsumerCoordinatorNotAvailable: "COORDINATOR_NOT_AVAILABLE",
	ErrNotCoordinatorForConsumer:       "NOT_COORDINATOR",
	ErrInvalidTopic:                    "INVALID_TOPIC_EXCEPTION",
	ErrInvalidGroupId:                  "INVALID_GROUP_ID",
	ErrRebalanceInProgress:             "REBALANCE_IN_PROGRESS",
	ErrTopicAuthorizationFailed:        "TOPIC_AUTHORIZATION_FAILED",
	ErrGroupAuthorizationFailed:        "GROUP_AUTHORIZATION_FAILED",
	ErrClusterAuthorizationFailed:      "CLUSTER_AUTHORIZATION_FAILED",
	ErrUnsupportedVersion:              "UNSUPPORTED_VERSION",
	ErrTopicAlreadyExists:              "TOPIC_ALREADY_EXISTS",
	ErrInvalidPartitions:               "INVALID_PARTITIONS",
	ErrInvalidReplicationFactor:        "INVALID_REPLICATION_FACTOR",
	ErrInvalidReplicaAssignment:        "INVALID_REPLICA_ASSIGNMENT",
	ErrInvalidConfig:                   "INVALID_CONFIG",
	ErrNotController:                   "NOT_CONTROLLER",
	ErrInvalidRequest:                  "INVALID_REQUEST",
	ErrPolicyViolation:                 "POLICY_VIOLATION",
	ErrGroupIDNotFound:                 "GROUP_ID_NOT_FOUND",
	ErrPreferredLeaderNotAvailable:     "PREFERRED_LEADER_NOT_AVAILABLE",
	ErrElectionNotNeeded:               "ELECTION_NOT_NEEDED",
	ErrGroupSubscribedToTopic:          "GROUP_SUBSCRIBED_TO_TOPIC",
}

// Name returns the protocol-level symbolic name for the error code, falling
// back to a generic label for codes this core does not special-case.
func (e KError) Name() string {
	if n, ok := errCodeNames[e]; ok {
		return n
	}
	return fmt.Sprintf("ERROR_%d", int16(e))
}

func (e KError) Error() string {
	return fmt.Sprintf("kafka server: %s (code %d)", e.Name(), int16(e))
}

// Is lets errors.Is(err, ErrNoError) and friends work without a type
// assertion, matching how the façade checks broker-reported codes.
func (e KError) Is(target error) bool {
	var other KError
	if errors.As(target, &other) {
		return e == other
	}
	return false
}

// IsRetriableController reports whether err unwraps to ErrNotController —
// the only broker-reported code that triggers the bounded controller-refresh
// retry described in SPEC_FULL.md §4.2.
func IsRetriableController(err error) bool {
	return errors.Is(err, ErrNotController)
}

// IsRetriableCoordinator reports whether err unwraps to a coordinator-drift
// code. Per SPEC_FULL.md §4.2 such a code never triggers an automatic retry.
// The façade does not call it: ListConsumerGroupOffsets evicts the cached
// coordinator on any error in its response.
func IsRetriableCoordinator(err error) bool {
	return errors.Is(err, ErrNotCoordinatorForConsumer) || errors.Is(err, ErrConsumerCoordinatorNotAvailable)
}

// ConfigurationError is returned from NewConfig when the caller supplies an
// unrecognized option key, or from a façade call given an invalid argument
// combination.
type ConfigurationError string

func (e ConfigurationError) Error() string {
	return "kadmin: invalid configuration (" + string(e) + ")"
}

// IncompatibleBrokerVersionError is raised when a call site needs a feature
// gated to a protocol version higher than the negotiated version.
type IncompatibleBrokerVersionError struct {
	Feature       string
	Negotiated    int16
	RequiredAtLeast int16
}

func (e *IncompatibleBrokerVersionError) Error() string {
	return fmt.Sprintf("kadmin: %s requires protocol version >= %d, but negotiated version is %d",
		e.Feature, e.RequiredAtLeast, e.Negotiated)
}

// UnrecognizedBrokerVersionError is raised when the controller cannot be
// discovered because only Metadata v0 is mutually supported.
type UnrecognizedBrokerVersionError struct {
	APIKey  int16
	Version int16
}

func (e *UnrecognizedBrokerVersionError) Error() string {
	return fmt.Sprintf("kadmin: cannot use apiKey %d at negotiated version %d for this operation", e.APIKey, e.Version)
}

// ProtocolDecodeError is returned when a response is malformed or truncated.
type ProtocolDecodeError struct {
	Info string
}

func (e *ProtocolDecodeError) Error() string {
	return fmt.Sprintf("kadmin: error decoding packet: %s", e.Info)
}

// ProtocolEncodeError is returned when a request cannot legally be encoded
// (e.g. a string exceeds the protocol's length limits).
type ProtocolEncodeError struct {
	Info string
}

func (e *ProtocolEncodeError) Error() string {
	return fmt.Sprintf("kadmin: error encoding packet: %s", e.Info)
}

// ErrIncompleteResponse is returned when a syntactically valid response omits
// an entity the request asked about.
var ErrIncompleteResponse = errors.New("kadmin: response did not contain all the expected entries")

// ErrClosed is returned by any façade call made after Close.
var ErrClosed = errors.New("kadmin: admin client is closed")

// ErrNoBrokersAvailable is returned when the broker-client collaborator has
// no live broker to route a request to.
var ErrNoBrokersAvailable = errors.New("kadmin: no broker available")

// MultiErrorFormat controls how aggregate errors built with Wrap render.
// The default is a condensed version of hashicorp/go-multierror's own
// formatter.
var MultiErrorFormat multierror.ErrorFormatFunc = func(es []error) string {
	if len(es) == 1 {
		return es[0].Error()
	}
	points := make([]string, len(es))
	for i, err := range es {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(es), strings.Join(points, "\n\t"))
}

// sentinelError pairs a stable sentinel (for errors.Is) with the concrete
// aggregate that explains it — the same shape the teacher's own
// Wrap/ErrReassignPartitions/ErrDeleteRecords convention uses.
type sentinelError struct {
	sentinel error
	wrapped  error
}

func (e sentinelError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.sentinel, e.wrapped)
	}
	return e.sentinel.Error()
}

func (e sentinelError) Is(target error) bool {
	return errors.Is(e.sentinel, target) || errors.Is(e.wrapped, target)
}

func (e sentinelError) Unwrap() error {
	return e.wrapped
}

// Wrap builds an aggregate error rooted at sentinel from the non-nil errors
// in errs. Used by DeleteRecords and PerformLeaderElection to satisfy the
// "aggregate vs. specific" rule
// in SPEC_FULL.md §7.
func Wrap(sentinel error, errs ...error) error {
	merged := multiError(errs...)
	if merged == nil {
		return nil
	}
	return sentinelError{sentinel: sentinel, wrapped: merged}
}

func multiError(errs ...error) error {
	merr := multierror.Append(nil, errs...)
	if MultiErrorFormat != nil {
		merr.ErrorFormat = MultiErrorFormat
	}
	return merr.ErrorOrNil()
}

// ErrReassignPartitions is the sentinel for AlterPartitionReassignments
// aggregate failures.
var ErrReassignPartitions = errors.New("kadmin: failed to reassign partitions for topic")

// ErrDeleteRecords is the sentinel for DeleteRecords aggregate failures.
var ErrDeleteRecords = errors.New("kadmin: failed to delete records")

// ErrLeaderElection is the sentinel for PerformLeaderElection aggregate
// failures.
var ErrLeaderElection = errors.New("kadmin: leader election failed for one or more partitions")

// BrokerResponseError names every failed (topic:partition, errorName) pair
// surfaced by an operation that must aggregate across a response, per
// SPEC_FULL.md §7 and the "Aggregate-error attribution" testable property.
type BrokerResponseError struct {
	Failures []PartitionFailure
}

// PartitionFailure is one failed entity inside an aggregate broker response.
type PartitionFailure struct {
	Topic     string
	Partition int32
	Err       KError
}

func (e *BrokerResponseError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s:%d %s", f.Topic, f.Partition, f.Err.Name())
	}
	return fmt.Sprintf("kadmin: %d partitions failed: %s", len(e.Failures), strings.Join(parts, ", "))
}

// TopicError reports a single named-topic failure, e.g. from CreateTopics.
type TopicError struct {
	Topic string
	Err   KError
}

func (e *TopicError) Error() string {
	return fmt.Sprintf("kadmin: topic %q: %s", e.Topic, e.Err.Name())
}

func (e *TopicError) Unwrap() error { return e.Err }

// GroupError reports a single named-group failure, e.g. from DeleteGroups.
type GroupError struct {
	Group string
	Err   KError
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("kadmin: group %q: %s", e.Group, e.Err.Name())
}

func (e *GroupError) Unwrap() error { return e.Err }
