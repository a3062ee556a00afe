package kadmin

// schemaProtocolBody adapts the SchemaNode/Value machinery to the
// ProtocolBody interface, for RPCs with no teacher precedent
// (AlterPartitionReassignments, ListPartitionReassignments,
// DescribeClientQuotas) per SPEC_FULL.md §3/§9.
type schemaProtocolBody struct {
	apiKey    APIKey
	ver       int16
	flexFrom  int16
	hdrVer    int16
	schema    SchemaNode
	value     *StructValue
}

func (b *schemaProtocolBody) encode(pe packetEncoder) error {
	return EncodeSchema(pe, b.schema, b.value)
}

func (b *schemaProtocolBody) decode(pd packetDecoder, version int16) error {
	b.ver = version
	v, err := DecodeSchema(pd, b.schema)
	if err != nil {
		return err
	}
	sv, ok := v.(*StructValue)
	if !ok {
		return &ProtocolDecodeError{Info: "schema root did not decode to a struct"}
	}
	b.value = sv
	return nil
}

func (b *schemaProtocolBody) key() int16          { return int16(b.apiKey) }
func (b *schemaProtocolBody) version() int16      { return b.ver }
func (b *schemaProtocolBody) setVersion(v int16)  { b.ver = v }
func (b *schemaProtocolBody) headerVersion() int16 { return b.hdrVer }
func (b *schemaProtocolBody) isFlexible() bool    { return b.flexFrom >= 0 && b.ver >= b.flexFrom }

// alterPartitionReassignmentsSchema is the request/response schema for
// AlterPartitionReassignments v0, built from the SchemaNode sum type rather
// than a hand-written struct, per the "brand-new flexible RPC" design note.
var alterPartitionReassignmentsRequestSchema = StructNode(
	Field{Name: "timeout_ms", Node: Int32Node()},
	Field{Name: "topics", Node: ArrayNode(StructNode(
		Field{Name: "name", Node: CompactStringNode()},
		Field{Name: "partitions", Node: ArrayNode(StructNode(
			Field{Name: "partition_index", Node: Int32Node()},
			Field{Name: "replicas", Node: ArrayNode(Int32Node(), true)}, // empty array cancels a pending reassignment
			Field{Name: "tags", Node: TaggedFieldsNode()},
		), true)},
		Field{Name: "tags", Node: TaggedFieldsNode()},
	), true)},
	Field{Name: "tags", Node: TaggedFieldsNode()},
)

var alterPartitionReassignmentsResponseSchema = StructNode(
	Field{Name: "throttle_time_ms", Node: Int32Node()},
	Field{Name: "error_code", Node: Int16Node()},
	Field{Name: "error_message", Node: CompactStringNode()},
	Field{Name: "responses", Node: ArrayNode(StructNode(
		Field{Name: "name", Node: CompactStringNode()},
		Field{Name: "partitions", Node: ArrayNode(StructNode(
			Field{Name: "partition_index", Node: Int32Node()},
			Field{Name: "error_code", Node: Int16Node()},
			Field{Name: "error_message", Node: CompactStringNode()},
			Field{Name: "tags", Node: TaggedFieldsNode()},
		), true)},
		Field{Name: "tags", Node: TaggedFieldsNode()},
	), true)},
	Field{Name: "tags", Node: TaggedFieldsNode()},
)

// NewAlterPartitionReassignmentsRequest builds the request body for
// reassigning (or, with an empty replica list, cancelling) the given
// partitions' replica sets.
func NewAlterPartitionReassignmentsRequest(timeoutMs int32, assignments map[TopicPartition][]int32) *schemaProtocolBody {
	byTopic := make(map[string][]Value)
	for tp, replicas := range assignments {
		part := NewStructValue()
		part.Set("partition_index", tp.Partition)
		elems := make([]Value, len(replicas))
		for i, r := range replicas {
			elems[i] = int32(r)
		}
		part.Set("replicas", elems)
		part.Set("tags", TaggedFieldSet{})
		byTopic[tp.Topic] = append(byTopic[tp.Topic], part)
	}
	var topics []Value
	for name, parts := range byTopic {
		t := NewStructValue()
		t.Set("name", name)
		t.Set("partitions", parts)
		t.Set("tags", TaggedFieldSet{})
		topics = append(topics, t)
	}
	root := NewStructValue()
	root.Set("timeout_ms", timeoutMs)
	root.Set("topics", topics)
	root.Set("tags", TaggedFieldSet{})
	return &schemaProtocolBody{
		apiKey: APIAlterPartitionReassignments, ver: 0, flexFrom: 0, hdrVer: 2,
		schema: alterPartitionReassignmentsRequestSchema, value: root,
	}
}

// NewAlterPartitionReassignmentsResponse returns an empty response body
// ready to decode.
func NewAlterPartitionReassignmentsResponse() *schemaProtocolBody {
	return &schemaProtocolBody{
		apiKey: APIAlterPartitionReassignments, flexFrom: 0, hdrVer: 1,
		schema: alterPartitionReassignmentsResponseSchema,
	}
}

var listPartitionReassignmentsRequestSchema = StructNode(
	Field{Name: "timeout_ms", Node: Int32Node()},
	Field{Name: "topics", Node: ArrayNode(StructNode(
		Field{Name: "name", Node: CompactStringNode()},
		Field{Name: "partition_index", Node: ArrayNode(Int32Node(), true)},
		Field{Name: "tags", Node: TaggedFieldsNode()},
	), true)},
	Field{Name: "tags", Node: TaggedFieldsNode()},
)

var listPartitionReassignmentsResponseSchema = StructNode(
	Field{Name: "throttle_time_ms", Node: Int32Node()},
	Field{Name: "error_code", Node: Int16Node()},
	Field{Name: "error_message", Node: CompactStringNode()},
	Field{Name: "topics", Node: ArrayNode(StructNode(
		Field{Name: "name", Node: CompactStringNode()},
		Field{Name: "partitions", Node: ArrayNode(StructNode(
			Field{Name: "partition_index", Node: Int32Node()},
			Field{Name: "replicas", Node: ArrayNode(Int32Node(), true)},
			Field{Name: "adding_replicas", Node: ArrayNode(Int32Node(), true)},
			Field{Name: "removing_replicas", Node: ArrayNode(Int32Node(), true)},
			Field{Name: "tags", Node: TaggedFieldsNode()},
		), true)},
		Field{Name: "tags", Node: TaggedFieldsNode()},
	), true)},
	Field{Name: "tags", Node: TaggedFieldsNode()},
)

// NewListPartitionReassignmentsRequest asks for the in-progress
// reassignment state of topics (nil means "every topic with a pending
// reassignment").
func NewListPartitionReassignmentsRequest(timeoutMs int32, topics []string) *schemaProtocolBody {
	root := NewStructValue()
	root.Set("timeout_ms", timeoutMs)
	if topics == nil {
		root.Set("topics", nil)
	} else {
		var ts []Value
		for _, name := range topics {
			t := NewStructValue()
			t.Set("name", name)
			t.Set("partition_index", []Value{})
			t.Set("tags", TaggedFieldSet{})
			ts = append(ts, t)
		}
		root.Set("topics", ts)
	}
	root.Set("tags", TaggedFieldSet{})
	return &schemaProtocolBody{
		apiKey: APIListPartitionReassignments, ver: 0, flexFrom: 0, hdrVer: 2,
		schema: listPartitionReassignmentsRequestSchema, value: root,
	}
}

// NewListPartitionReassignmentsResponse returns an empty response body
// ready to decode.
func NewListPartitionReassignmentsResponse() *schemaProtocolBody {
	return &schemaProtocolBody{
		apiKey: APIListPartitionReassignments, flexFrom: 0, hdrVer: 1,
		schema: listPartitionReassignmentsResponseSchema,
	}
}

var describeClientQuotasRequestSchema = StructNode(
	Field{Name: "components", Node: ArrayNode(StructNode(
		Field{Name: "entity_type", Node: CompactStringNode()},
		Field{Name: "match_type", Node: Int8Node()},
		Field{Name: "match", Node: CompactStringNode()},
		Field{Name: "tags", Node: TaggedFieldsNode()},
	), true)},
	Field{Name: "strict", Node: BoolNode()},
	Field{Name: "tags", Node: TaggedFieldsNode()},
)

var describeClientQuotasResponseSchema = StructNode(
	Field{Name: "throttle_time_ms", Node: Int32Node()},
	Field{Name: "error_code", Node: Int16Node()},
	Field{Name: "error_message", Node: CompactStringNode()},
	Field{Name: "entries", Node: ArrayNode(StructNode(
		Field{Name: "entity", Node: ArrayNode(StructNode(
			Field{Name: "entity_type", Node: CompactStringNode()},
			Field{Name: "entity_name", Node: CompactStringNode()},
			Field{Name: "tags", Node: TaggedFieldsNode()},
		), true)},
		Field{Name: "values", Node: ArrayNode(StructNode(
			Field{Name: "key", Node: CompactStringNode()},
			Field{Name: "value", Node: Float64Node()},
			Field{Name: "tags", Node: TaggedFieldsNode()},
		), true)},
		Field{Name: "tags", Node: TaggedFieldsNode()},
	), true)},
	Field{Name: "tags", Node: TaggedFieldsNode()},
)

// ClientQuotaFilterComponent matches client-quota entities by entity type
// (user, client-id, ip) and an optional exact/default match value.
type ClientQuotaFilterComponent struct {
	EntityType string
	MatchType  int8 // 0 = exact, 1 = default, 2 = any
	Match      string
}

// NewDescribeClientQuotasRequest asks for client-side quota configs
// matching the given filter components.
func NewDescribeClientQuotasRequest(components []ClientQuotaFilterComponent, strict bool) *schemaProtocolBody {
	var comps []Value
	for _, c := range components {
		cv := NewStructValue()
		cv.Set("entity_type", c.EntityType)
		cv.Set("match_type", int8(c.MatchType))
		cv.Set("match", c.Match)
		cv.Set("tags", TaggedFieldSet{})
		comps = append(comps, cv)
	}
	root := NewStructValue()
	root.Set("components", comps)
	root.Set("strict", strict)
	root.Set("tags", TaggedFieldSet{})
	return &schemaProtocolBody{
		apiKey: APIDescribeClientQuotas, ver: 1, flexFrom: 1, hdrVer: 2,
		schema: describeClientQuotasRequestSchema, value: root,
	}
}

// NewDescribeClientQuotasResponse returns an empty response body ready to
// decode.
func NewDescribeClientQuotasResponse() *schemaProtocolBody {
	return &schemaProtocolBody{
		apiKey: APIDescribeClientQuotas, flexFrom: 1, hdrVer: 1,
		schema: describeClientQuotasResponseSchema,
	}
}
