package kadmin

import "fmt"

// APIKey enumerates the Kafka request types this core issues. Values match
// the wire protocol's numeric API keys.
type APIKey int16

const (
	APIMetadata                     APIKey = 3
	APIOffsetFetch                  APIKey = 9
	APIFindCoordinator              APIKey = 10
	APICreateTopics                 APIKey = 19
	APIDeleteTopics                 APIKey = 20
	APIDeleteRecords                APIKey = 21
	APIDescribeAcls                 APIKey = 29
	APICreateAcls                   APIKey = 30
	APIDeleteAcls                   APIKey = 31
	APIDescribeConfigs              APIKey = 32
	APIAlterConfigs                 APIKey = 33
	APICreatePartitions             APIKey = 37
	APIDeleteGroups                 APIKey = 42
	APIElectLeaders                 APIKey = 43
	APIAlterPartitionReassignments  APIKey = 45
	APIListPartitionReassignments   APIKey = 46
	APIDescribeClientQuotas         APIKey = 48
	APIDescribeGroups               APIKey = 15
	APIListGroups                   APIKey = 16
	APIDescribeLogDirs              APIKey = 35
)

// routeKind classifies how the router (router.go) picks a destination
// broker for a request of this API, per SPEC_FULL.md §4.2's routing table.
type routeKind int

const (
	routeControllerOnly routeKind = iota
	routeLeastLoaded
	routeCoordinatorOfGroup
	routeAnyBrokerFanout
	routeExactBrokerByID
	routeLeaderOfPartitionGrouped
)

// apiDescriptor is this core's replacement for the original client's
// duck-typed response introspection: instead of probing a decoded response
// object for whichever of several plausibly-named attributes happens to be
// present, every API key declares up front which ErrorLayout its response
// carries and how it routes, per spec.md §9 / SPEC_FULL.md §9.
type apiDescriptor struct {
	key          APIKey
	minVersion   int16
	maxVersion   int16
	flexibleFrom int16 // -1 if never flexible
	route        routeKind
	errorLayout  ErrorLayout
}

var apiRegistry = map[APIKey]apiDescriptor{
	APIMetadata:                    {key: APIMetadata, minVersion: 0, maxVersion: 9, flexibleFrom: 9, route: routeLeastLoaded, errorLayout: LayoutTopicLevel},
	APIOffsetFetch:                 {key: APIOffsetFetch, minVersion: 0, maxVersion: 7, flexibleFrom: 6, route: routeCoordinatorOfGroup, errorLayout: LayoutTopicPartition},
	APIFindCoordinator:             {key: APIFindCoordinator, minVersion: 0, maxVersion: 3, flexibleFrom: 3, route: routeLeastLoaded, errorLayout: LayoutNone},
	APICreateTopics:                {key: APICreateTopics, minVersion: 0, maxVersion: 6, flexibleFrom: 5, route: routeControllerOnly, errorLayout: LayoutTopicLevel},
	APIDeleteTopics:                {key: APIDeleteTopics, minVersion: 0, maxVersion: 5, flexibleFrom: 4, route: routeControllerOnly, errorLayout: LayoutTopicLevel},
	APIDeleteRecords:               {key: APIDeleteRecords, minVersion: 0, maxVersion: 2, flexibleFrom: 2, route: routeLeaderOfPartitionGrouped, errorLayout: LayoutTopicPartition},
	APIDescribeAcls:                {key: APIDescribeAcls, minVersion: 0, maxVersion: 3, flexibleFrom: 2, route: routeLeastLoaded, errorLayout: LayoutNone},
	APICreateAcls:                  {key: APICreateAcls, minVersion: 0, maxVersion: 3, flexibleFrom: 2, route: routeLeastLoaded, errorLayout: LayoutFilterMatchingACLs},
	APIDeleteAcls:                  {key: APIDeleteAcls, minVersion: 0, maxVersion: 3, flexibleFrom: 2, route: routeLeastLoaded, errorLayout: LayoutFilterMatchingACLs},
	APIDescribeConfigs:             {key: APIDescribeConfigs, minVersion: 0, maxVersion: 4, flexibleFrom: 4, route: routeLeastLoaded, errorLayout: LayoutTopicLevel},
	APIAlterConfigs:                {key: APIAlterConfigs, minVersion: 0, maxVersion: 2, flexibleFrom: -1, route: routeLeastLoaded, errorLayout: LayoutTopicLevel},
	APICreatePartitions:            {key: APICreatePartitions, minVersion: 0, maxVersion: 3, flexibleFrom: 2, route: routeControllerOnly, errorLayout: LayoutTopicLevel},
	APIDeleteGroups:                {key: APIDeleteGroups, minVersion: 0, maxVersion: 2, flexibleFrom: 2, route: routeCoordinatorOfGroup, errorLayout: LayoutPerGroup},
	APIElectLeaders:                {key: APIElectLeaders, minVersion: 0, maxVersion: 2, flexibleFrom: 2, route: routeControllerOnly, errorLayout: LayoutTopicPartition},
	APIAlterPartitionReassignments: {key: APIAlterPartitionReassignments, minVersion: 0, maxVersion: 0, flexibleFrom: 0, route: routeControllerOnly, errorLayout: LayoutTopicPartition},
	APIListPartitionReassignments:  {key: APIListPartitionReassignments, minVersion: 0, maxVersion: 0, flexibleFrom: 0, route: routeControllerOnly, errorLayout: LayoutNone},
	APIDescribeClientQuotas:        {key: APIDescribeClientQuotas, minVersion: 0, maxVersion: 1, flexibleFrom: 1, route: routeLeastLoaded, errorLayout: LayoutNone},
	APIDescribeGroups:              {key: APIDescribeGroups, minVersion: 0, maxVersion: 5, flexibleFrom: 5, route: routeCoordinatorOfGroup, errorLayout: LayoutPerGroup},
	APIListGroups:                  {key: APIListGroups, minVersion: 0, maxVersion: 4, flexibleFrom: 3, route: routeAnyBrokerFanout, errorLayout: LayoutNone},
	APIDescribeLogDirs:             {key: APIDescribeLogDirs, minVersion: 0, maxVersion: 4, flexibleFrom: 2, route: routeExactBrokerByID, errorLayout: LayoutNone},
}

// descriptorFor looks up the registered descriptor for key, panicking only
// for a programming error (an API key this core never issues) rather than
// a runtime condition.
func descriptorFor(key APIKey) apiDescriptor {
	d, ok := apiRegistry[key]
	if !ok {
		panic(fmt.Sprintf("kadmin: no descriptor registered for api key %d", key))
	}
	return d
}

// isFlexibleAt reports whether version uses the compact/tagged-fields wire
// form for this API.
func (d apiDescriptor) isFlexibleAt(version int16) bool {
	return d.flexibleFrom >= 0 && version >= d.flexibleFrom
}

// highestSupported returns the highest version this core can speak for key
// that is also <= brokerMax, or -1 if brokerMax is below our minimum.
func (d apiDescriptor) highestSupported(brokerMax int16) int16 {
	v := d.maxVersion
	if brokerMax < v {
		v = brokerMax
	}
	if v < d.minVersion {
		return -1
	}
	return v
}
