package kadmin

import "time"

// AclResourceType mirrors the broker's ResourceType enum for ACL resources
// (a superset of ConfigResourceType, since ACLs also cover GROUP,
// TRANSACTIONAL_ID, and the wildcard CLUSTER resource).
type AclResourceType int8

const (
	AclResourceAny             AclResourceType = 1
	AclResourceTopic           AclResourceType = 2
	AclResourceGroup           AclResourceType = 3
	AclResourceCluster         AclResourceType = 4
	AclResourceTransactionalID AclResourceType = 5
)

// AclPatternType selects exact-match vs. prefix-match resource patterns.
type AclPatternType int8

const (
	PatternAny     AclPatternType = 1
	PatternMatch   AclPatternType = 2
	PatternLiteral AclPatternType = 3
	PatternPrefixed AclPatternType = 4
)

// AclOperation enumerates the operation an ACL binding grants or denies.
type AclOperation int8

const (
	OpAny             AclOperation = 1
	OpAll             AclOperation = 2
	OpRead            AclOperation = 3
	OpWrite           AclOperation = 4
	OpCreate          AclOperation = 5
	OpDelete          AclOperation = 6
	OpAlter           AclOperation = 7
	OpDescribe        AclOperation = 8
	OpClusterAction   AclOperation = 9
	OpDescribeConfigs AclOperation = 10
	OpAlterConfigs    AclOperation = 11
	OpIdempotentWrite AclOperation = 12
)

// AclPermissionType is ALLOW or DENY.
type AclPermissionType int8

const (
	PermissionAny   AclPermissionType = 1
	PermissionDeny  AclPermissionType = 2
	PermissionAllow AclPermissionType = 3
)

// AclFilter selects a set of ACL bindings, used both to describe/delete
// existing bindings and (with PatternLiteral/PatternPrefixed and a concrete
// Permission) to create a new one.
type AclFilter struct {
	ResourceType   AclResourceType
	ResourceName   *string
	PatternType    AclPatternType
	Principal      *string
	Host           *string
	Operation      AclOperation
	PermissionType AclPermissionType
}

func (f AclFilter) encode(pe packetEncoder, flexible bool) error {
	pe.putInt8(int8(f.ResourceType))
	if err := putNullableStr(pe, f.ResourceName, flexible); err != nil {
		return err
	}
	pe.putInt8(int8(f.PatternType))
	if err := putNullableStr(pe, f.Principal, flexible); err != nil {
		return err
	}
	if err := putNullableStr(pe, f.Host, flexible); err != nil {
		return err
	}
	pe.putInt8(int8(f.Operation))
	pe.putInt8(int8(f.PermissionType))
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func decodeAclFilter(pd packetDecoder, flexible bool) (AclFilter, error) {
	var f AclFilter
	t, err := pd.getInt8()
	if err != nil {
		return f, err
	}
	f.ResourceType = AclResourceType(t)
	if f.ResourceName, err = getNullableStr(pd, flexible); err != nil {
		return f, err
	}
	pt, err := pd.getInt8()
	if err != nil {
		return f, err
	}
	f.PatternType = AclPatternType(pt)
	if f.Principal, err = getNullableStr(pd, flexible); err != nil {
		return f, err
	}
	if f.Host, err = getNullableStr(pd, flexible); err != nil {
		return f, err
	}
	op, err := pd.getInt8()
	if err != nil {
		return f, err
	}
	f.Operation = AclOperation(op)
	perm, err := pd.getInt8()
	if err != nil {
		return f, err
	}
	f.PermissionType = AclPermissionType(perm)
	if flexible {
		if _, err := decodeTaggedFields(pd); err != nil {
			return f, err
		}
	}
	return f, nil
}

// DescribeAclsRequest asks for every binding matching Filter.
type DescribeAclsRequest struct {
	Version int16
	Filter  AclFilter
}

func (r *DescribeAclsRequest) encode(pe packetEncoder) error {
	if err := r.Filter.encode(pe, r.isFlexible()); err != nil {
		return err
	}
	if r.isFlexible() {
		pe.putUVarint(0)
	}
	return nil
}

func (r *DescribeAclsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	f, err := decodeAclFilter(pd, r.isFlexible())
	if err != nil {
		return err
	}
	r.Filter = f
	return nil
}

func (r *DescribeAclsRequest) key() int16         { return int16(APIDescribeAcls) }
func (r *DescribeAclsRequest) version() int16     { return r.Version }
func (r *DescribeAclsRequest) setVersion(v int16) { r.Version = v }
func (r *DescribeAclsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *DescribeAclsRequest) isFlexible() bool {
	return descriptorFor(APIDescribeAcls).isFlexibleAt(r.Version)
}

// AclBinding is one concrete ACL on the broker, returned by DescribeAcls.
type AclBinding struct {
	ResourceType AclResourceType
	ResourceName string
	PatternType  AclPatternType
	Principal    string
	Host         string
	Operation    AclOperation
	Permission   AclPermissionType
}

// DescribeAclsResponse carries a top-level error plus the matching
// bindings.
type DescribeAclsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Err          KError
	ErrorMessage *string
	Resources    []AclBinding
}

func (r *DescribeAclsResponse) encode(pe packetEncoder) error { return nil }

func (r *DescribeAclsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	throttle, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.ThrottleTime = time.Duration(throttle) * time.Millisecond
	code, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(code)
	if r.ErrorMessage, err = getNullableStr(pd, flexible); err != nil {
		return err
	}

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		rt, err := pd.getInt8()
		if err != nil {
			return err
		}
		name, err := getStr(pd, flexible)
		if err != nil {
			return err
		}
		// v0 lacks resourcePatternType on the wire; it is always LITERAL.
		pt := int8(PatternLiteral)
		if version >= 1 {
			if pt, err = pd.getInt8(); err != nil {
				return err
			}
		}
		an, err := getArrayLen(pd, flexible)
		if err != nil {
			return err
		}
		for j := 0; j < an; j++ {
			principal, err := getStr(pd, flexible)
			if err != nil {
				return err
			}
			host, err := getStr(pd, flexible)
			if err != nil {
				return err
			}
			op, err := pd.getInt8()
			if err != nil {
				return err
			}
			perm, err := pd.getInt8()
			if err != nil {
				return err
			}
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			r.Resources = append(r.Resources, AclBinding{
				ResourceType: AclResourceType(rt),
				ResourceName: name,
				PatternType:  AclPatternType(pt),
				Principal:    principal,
				Host:         host,
				Operation:    AclOperation(op),
				Permission:   AclPermissionType(perm),
			})
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *DescribeAclsResponse) key() int16         { return int16(APIDescribeAcls) }
func (r *DescribeAclsResponse) version() int16     { return r.Version }
func (r *DescribeAclsResponse) setVersion(v int16) { r.Version = v }
func (r *DescribeAclsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *DescribeAclsResponse) isFlexible() bool {
	return descriptorFor(APIDescribeAcls).isFlexibleAt(r.Version)
}

// CreateAclsRequest creates one or more concrete ACL bindings. Each entry
// of Creations must use a concrete pattern (Literal/Prefixed) and
// permission (Allow/Deny), never the Any wildcards DescribeAcls allows.
type CreateAclsRequest struct {
	Version   int16
	Creations []AclFilter
}

func (r *CreateAclsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := putArrayLen(pe, len(r.Creations), flexible); err != nil {
		return err
	}
	for _, c := range r.Creations {
		if err := c.encode(pe, flexible); err != nil {
			return err
		}
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *CreateAclsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		f, err := decodeAclFilter(pd, flexible)
		if err != nil {
			return err
		}
		r.Creations = append(r.Creations, f)
	}
	return nil
}

func (r *CreateAclsRequest) key() int16         { return int16(APICreateAcls) }
func (r *CreateAclsRequest) version() int16     { return r.Version }
func (r *CreateAclsRequest) setVersion(v int16) { r.Version = v }
func (r *CreateAclsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *CreateAclsRequest) isFlexible() bool {
	return descriptorFor(APICreateAcls).isFlexibleAt(r.Version)
}

// CreateAclsResponse carries one error per requested creation, in the same
// order as the request's Creations.
type CreateAclsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Results      []TopicCreationResult
}

func (r *CreateAclsResponse) encode(pe packetEncoder) error { return nil }

func (r *CreateAclsResponse) decode(pd packetDecoder, version int16) error {
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
	for i := 0; i < n; i++ {
		code, err := pd.getInt16()
		if err != nil {
			return err
		}
		msg, err := getNullableStr(pd, flexible)
		if err != nil {
			return err
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		r.Results = append(r.Results, TopicCreationResult{Err: KError(code), ErrorMessage: msg})
	}
	return nil
}

func (r *CreateAclsResponse) key() int16         { return int16(APICreateAcls) }
func (r *CreateAclsResponse) version() int16     { return r.Version }
func (r *CreateAclsResponse) setVersion(v int16) { r.Version = v }
func (r *CreateAclsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *CreateAclsResponse) isFlexible() bool {
	return descriptorFor(APICreateAcls).isFlexibleAt(r.Version)
}

// DeleteAclsRequest deletes every binding matching each of Filters.
type DeleteAclsRequest struct {
	Version int16
	Filters []AclFilter
}

func (r *DeleteAclsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := putArrayLen(pe, len(r.Filters), flexible); err != nil {
		return err
	}
	for _, f := range r.Filters {
		if err := f.encode(pe, flexible); err != nil {
			return err
		}
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *DeleteAclsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		f, err := decodeAclFilter(pd, flexible)
		if err != nil {
			return err
		}
		r.Filters = append(r.Filters, f)
	}
	return nil
}

func (r *DeleteAclsRequest) key() int16         { return int16(APIDeleteAcls) }
func (r *DeleteAclsRequest) version() int16     { return r.Version }
func (r *DeleteAclsRequest) setVersion(v int16) { r.Version = v }
func (r *DeleteAclsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *DeleteAclsRequest) isFlexible() bool {
	return descriptorFor(APIDeleteAcls).isFlexibleAt(r.Version)
}

// DeleteAclsFilterResult is one filter's outcome: a top-level error plus
// every individual binding it matched and deleted (or failed to), per the
// LayoutFilterMatchingACLs error layout.
type DeleteAclsFilterResult struct {
	Err          KError
	ErrorMessage *string
	MatchingAcls []DeleteAclsMatchingAcl
}

// DeleteAclsMatchingAcl is one binding matched by a delete filter.
type DeleteAclsMatchingAcl struct {
	Err          KError
	ErrorMessage *string
	Binding      AclBinding
}

// DeleteAclsResponse carries one DeleteAclsFilterResult per requested
// filter, in request order.
type DeleteAclsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Results      []DeleteAclsFilterResult
}

func (r *DeleteAclsResponse) encode(pe packetEncoder) error { return nil }

func (r *DeleteAclsResponse) decode(pd packetDecoder, version int16) error {
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
	for i := 0; i < n; i++ {
		var fr DeleteAclsFilterResult
		code, err := pd.getInt16()
		if err != nil {
			return err
		}
		fr.Err = KError(code)
		if fr.ErrorMessage, err = getNullableStr(pd, flexible); err != nil {
			return err
		}
		mn, err := getArrayLen(pd, flexible)
		if err != nil {
			return err
		}
		for j := 0; j < mn; j++ {
			var m DeleteAclsMatchingAcl
			mcode, err := pd.getInt16()
			if err != nil {
				return err
			}
			m.Err = KError(mcode)
			if m.ErrorMessage, err = getNullableStr(pd, flexible); err != nil {
				return err
			}
			rt, err := pd.getInt8()
			if err != nil {
				return err
			}
			m.Binding.ResourceType = AclResourceType(rt)
			if m.Binding.ResourceName, err = getStr(pd, flexible); err != nil {
				return err
			}
			// v0 lacks resourcePatternType on the wire; it is always LITERAL.
			pt := int8(PatternLiteral)
			if version >= 1 {
				if pt, err = pd.getInt8(); err != nil {
					return err
				}
			}
			m.Binding.PatternType = AclPatternType(pt)
			if m.Binding.Principal, err = getStr(pd, flexible); err != nil {
				return err
			}
			if m.Binding.Host, err = getStr(pd, flexible); err != nil {
				return err
			}
			op, err := pd.getInt8()
			if err != nil {
				return err
			}
			m.Binding.Operation = AclOperation(op)
			perm, err := pd.getInt8()
			if err != nil {
				return err
			}
			m.Binding.Permission = AclPermissionType(perm)
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			fr.MatchingAcls = append(fr.MatchingAcls, m)
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		r.Results = append(r.Results, fr)
	}
	return nil
}

func (r *DeleteAclsResponse) key() int16         { return int16(APIDeleteAcls) }
func (r *DeleteAclsResponse) version() int16     { return r.Version }
func (r *DeleteAclsResponse) setVersion(v int16) { r.Version = v }
func (r *DeleteAclsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *DeleteAclsResponse) isFlexible() bool {
	return descriptorFor(APIDeleteAcls).isFlexibleAt(r.Version)
}
