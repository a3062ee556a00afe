package kadmin

import "time"

// GroupMember is one member of a consumer group, as returned by
// DescribeGroups.
type GroupMember struct {
	MemberID        string
	GroupInstanceID *string
	ClientID        string
	ClientHost      string
	Metadata        []byte
	Assignment      []byte

	// ConsumerMetadata/ConsumerAssignment hold Metadata/Assignment decoded
	// as the standard consumer embedded protocol, populated only when the
	// group's ProtocolType is "consumer" or empty (the default assumed by
	// clients that never set it).
	ConsumerMetadata   *ConsumerProtocolMemberMetadataV0
	ConsumerAssignment *ConsumerProtocolMemberAssignmentV0
}

// ConsumerProtocolMemberMetadataV0 is the embedded protocol body carried in
// a consumer group member's Metadata bytes, grounded on
// original_source/kafka/coordinator/assignors/roundrobin.py's use of
// ConsumerProtocolMemberMetadata_v0(version, topics, user_data).
type ConsumerProtocolMemberMetadataV0 struct {
	Version  int16
	Topics   []string
	UserData []byte
}

func decodeConsumerProtocolMemberMetadataV0(raw []byte) (*ConsumerProtocolMemberMetadataV0, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	pd := newRealDecoder(raw)
	version, err := pd.getInt16()
	if err != nil {
		return nil, err
	}
	topics, err := getStringArray(pd, false)
	if err != nil {
		return nil, err
	}
	userData, err := pd.getBytes()
	if err != nil {
		return nil, err
	}
	return &ConsumerProtocolMemberMetadataV0{Version: version, Topics: topics, UserData: userData}, nil
}

// ConsumerProtocolMemberAssignmentV0 is the embedded protocol body carried
// in a consumer group member's Assignment bytes, grounded on the same
// ConsumerProtocolMemberAssignment_v0(version, assignment, user_data) shape
// referenced by original_source/kafka/admin/client.py's DescribeGroups
// handling.
type ConsumerProtocolMemberAssignmentV0 struct {
	Version    int16
	Assignment map[string][]int32
	UserData   []byte
}

func decodeConsumerProtocolMemberAssignmentV0(raw []byte) (*ConsumerProtocolMemberAssignmentV0, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	pd := newRealDecoder(raw)
	version, err := pd.getInt16()
	if err != nil {
		return nil, err
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return nil, err
	}
	assignment := make(map[string][]int32, n)
	for i := 0; i < n; i++ {
		topic, err := pd.getString()
		if err != nil {
			return nil, err
		}
		pn, err := pd.getArrayLength()
		if err != nil {
			return nil, err
		}
		partitions := make([]int32, pn)
		for j := 0; j < pn; j++ {
			p, err := pd.getInt32()
			if err != nil {
				return nil, err
			}
			partitions[j] = p
		}
		assignment[topic] = partitions
	}
	userData, err := pd.getBytes()
	if err != nil {
		return nil, err
	}
	return &ConsumerProtocolMemberAssignmentV0{Version: version, Assignment: assignment, UserData: userData}, nil
}

// GroupDescription is one consumer group's full state.
type GroupDescription struct {
	Err                  KError
	GroupID              string
	State                string
	ProtocolType         string
	Protocol             string
	Members              []GroupMember
	AuthorizedOperations []string // non-nil only when requested, see FeatureIncludeAuthorizedOperations
}

// DescribeGroupsRequest asks the groups' coordinator(s) for full group
// state. Per REDESIGN FLAG in spec.md §9, IncludeAuthorizedOperations is an
// explicit field the façade always forwards when the caller asks for it,
// rather than silently depending on whichever version happens to be
// negotiated.
type DescribeGroupsRequest struct {
	Version                     int16
	Groups                      []string
	IncludeAuthorizedOperations bool
}

func (r *DescribeGroupsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := encodeStringArray(pe, r.Groups, flexible); err != nil {
		return err
	}
	if r.Version >= 3 {
		pe.putBool(r.IncludeAuthorizedOperations)
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *DescribeGroupsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	groups, err := decodeStringArray(pd, r.isFlexible())
	if err != nil {
		return err
	}
	r.Groups = groups
	if version >= 3 {
		if r.IncludeAuthorizedOperations, err = pd.getBool(); err != nil {
			return err
		}
	}
	return nil
}

func (r *DescribeGroupsRequest) key() int16         { return int16(APIDescribeGroups) }
func (r *DescribeGroupsRequest) version() int16     { return r.Version }
func (r *DescribeGroupsRequest) setVersion(v int16) { r.Version = v }
func (r *DescribeGroupsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *DescribeGroupsRequest) isFlexible() bool {
	return descriptorFor(APIDescribeGroups).isFlexibleAt(r.Version)
}

// DescribeGroupsResponse carries one GroupDescription per requested group,
// per the LayoutPerGroup error layout.
type DescribeGroupsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Groups       []GroupDescription
}

func (r *DescribeGroupsResponse) encode(pe packetEncoder) error { return nil }

func (r *DescribeGroupsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	if version >= 1 {
		throttle, err := pd.getInt32()
		if err != nil {
			return err
		}
		r.ThrottleTime = time.Duration(throttle) * time.Millisecond
	}

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Groups = make([]GroupDescription, 0, n)
	for i := 0; i < n; i++ {
		var g GroupDescription
		code, err := pd.getInt16()
		if err != nil {
			return err
		}
		g.Err = KError(code)
		if g.GroupID, err = getStr(pd, flexible); err != nil {
			return err
		}
		if g.State, err = getStr(pd, flexible); err != nil {
			return err
		}
		if g.ProtocolType, err = getStr(pd, flexible); err != nil {
			return err
		}
		if g.Protocol, err = getStr(pd, flexible); err != nil {
			return err
		}
		mn, err := getArrayLen(pd, flexible)
		if err != nil {
			return err
		}
		for j := 0; j < mn; j++ {
			var m GroupMember
			if m.MemberID, err = getStr(pd, flexible); err != nil {
				return err
			}
			if version >= 4 {
				if m.GroupInstanceID, err = getNullableStr(pd, flexible); err != nil {
					return err
				}
			}
			if m.ClientID, err = getStr(pd, flexible); err != nil {
				return err
			}
			if m.ClientHost, err = getStr(pd, flexible); err != nil {
				return err
			}
			if flexible {
				m.Metadata, err = pd.getCompactBytes()
			} else {
				m.Metadata, err = pd.getBytes()
			}
			if err != nil {
				return err
			}
			if flexible {
				m.Assignment, err = pd.getCompactBytes()
			} else {
				m.Assignment, err = pd.getBytes()
			}
			if err != nil {
				return err
			}
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			if g.ProtocolType == "" || g.ProtocolType == "consumer" {
				if m.ConsumerMetadata, err = decodeConsumerProtocolMemberMetadataV0(m.Metadata); err != nil {
					return err
				}
				if m.ConsumerAssignment, err = decodeConsumerProtocolMemberAssignmentV0(m.Assignment); err != nil {
					return err
				}
			}
			g.Members = append(g.Members, m)
		}
		if version >= 3 {
			bits, err := pd.getInt32()
			if err != nil {
				return err
			}
			g.AuthorizedOperations = decodeAclOperationBits(bits)
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		r.Groups = append(r.Groups, g)
	}
	return nil
}

// aclOperationVocab is the bit-vocabulary AuthorizedOperations bitfields
// decode against, matching the enum order of AclOperation.
var aclOperationVocab = []string{
	"UNKNOWN", "ANY", "ALL", "READ", "WRITE", "CREATE", "DELETE", "ALTER",
	"DESCRIBE", "CLUSTER_ACTION", "DESCRIBE_CONFIGS", "ALTER_CONFIGS", "IDEMPOTENT_WRITE",
}

func decodeAclOperationBits(bits int32) []string {
	var out []string
	for i, name := range aclOperationVocab {
		if bits&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}
	return out
}

func (r *DescribeGroupsResponse) key() int16         { return int16(APIDescribeGroups) }
func (r *DescribeGroupsResponse) version() int16     { return r.Version }
func (r *DescribeGroupsResponse) setVersion(v int16) { r.Version = v }
func (r *DescribeGroupsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *DescribeGroupsResponse) isFlexible() bool {
	return descriptorFor(APIDescribeGroups).isFlexibleAt(r.Version)
}

// ListGroupsRequest asks one broker for every group it coordinates. Routed
// per-broker fan-out: the façade issues this against every broker in the
// cluster and merges the results, since there is no single "list all
// groups" broker-side call.
type ListGroupsRequest struct {
	Version                     int16
	StatesFilter                []string // gated to version >= 4
	IncludeAuthorizedOperations bool     // set by the façade from version 3 (FeatureListGroupsAuthorizedOps); encode does not write it
}

func (r *ListGroupsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if r.Version >= 4 {
		if err := encodeStringArray(pe, r.StatesFilter, flexible); err != nil {
			return err
		}
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *ListGroupsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	if version >= 4 {
		states, err := decodeStringArray(pd, r.isFlexible())
		if err != nil {
			return err
		}
		r.StatesFilter = states
	}
	return nil
}

func (r *ListGroupsRequest) key() int16         { return int16(APIListGroups) }
func (r *ListGroupsRequest) version() int16     { return r.Version }
func (r *ListGroupsRequest) setVersion(v int16) { r.Version = v }
func (r *ListGroupsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *ListGroupsRequest) isFlexible() bool {
	return descriptorFor(APIListGroups).isFlexibleAt(r.Version)
}

// GroupListing is one group summary within a ListGroupsResponse.
type GroupListing struct {
	GroupID      string
	ProtocolType string
	GroupState   string // gated to version >= 4
}

// ListGroupsResponse carries a top-level error plus every group the queried
// broker coordinates.
type ListGroupsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Err          KError
	Groups       []GroupListing
}

func (r *ListGroupsResponse) encode(pe packetEncoder) error { return nil }

func (r *ListGroupsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	if version >= 1 {
		throttle, err := pd.getInt32()
		if err != nil {
			return err
		}
		r.ThrottleTime = time.Duration(throttle) * time.Millisecond
	}
	code, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(code)

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Groups = make([]GroupListing, 0, n)
	for i := 0; i < n; i++ {
		var g GroupListing
		if g.GroupID, err = getStr(pd, flexible); err != nil {
			return err
		}
		if g.ProtocolType, err = getStr(pd, flexible); err != nil {
			return err
		}
		if version >= 4 {
			if g.GroupState, err = getStr(pd, flexible); err != nil {
				return err
			}
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		r.Groups = append(r.Groups, g)
	}
	return nil
}

func (r *ListGroupsResponse) key() int16         { return int16(APIListGroups) }
func (r *ListGroupsResponse) version() int16     { return r.Version }
func (r *ListGroupsResponse) setVersion(v int16) { r.Version = v }
func (r *ListGroupsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *ListGroupsResponse) isFlexible() bool {
	return descriptorFor(APIListGroups).isFlexibleAt(r.Version)
}

// DeleteGroupsRequest deletes one or more empty consumer groups, routed to
// each group's coordinator.
type DeleteGroupsRequest struct {
	Version int16
	Groups  []string
}

func (r *DeleteGroupsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := encodeStringArray(pe, r.Groups, flexible); err != nil {
		return err
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *DeleteGroupsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	groups, err := decodeStringArray(pd, r.isFlexible())
	if err != nil {
		return err
	}
	r.Groups = groups
	return nil
}

func (r *DeleteGroupsRequest) key() int16         { return int16(APIDeleteGroups) }
func (r *DeleteGroupsRequest) version() int16     { return r.Version }
func (r *DeleteGroupsRequest) setVersion(v int16) { r.Version = v }
func (r *DeleteGroupsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *DeleteGroupsRequest) isFlexible() bool {
	return descriptorFor(APIDeleteGroups).isFlexibleAt(r.Version)
}

// DeleteGroupsResponse carries one error per requested group.
type DeleteGroupsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Results      map[string]KError
}

func (r *DeleteGroupsResponse) encode(pe packetEncoder) error { return nil }

func (r *DeleteGroupsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	throttle, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.ThrottleTime = time.Duration(throttle) * time.Millisecond

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Results = make(map[string]KError, n)
	for i := 0; i < n; i++ {
		group, err := getStr(pd, flexible)
		if err != nil {
			return err
		}
		code, err := pd.getInt16()
		if err != nil {
			return err
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		r.Results[group] = KError(code)
	}
	return nil
}

func (r *DeleteGroupsResponse) key() int16         { return int16(APIDeleteGroups) }
func (r *DeleteGroupsResponse) version() int16     { return r.Version }
func (r *DeleteGroupsResponse) setVersion(v int16) { r.Version = v }
func (r *DeleteGroupsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *DeleteGroupsResponse) isFlexible() bool {
	return descriptorFor(APIDeleteGroups).isFlexibleAt(r.Version)
}
