package kadmin

import "fmt"

// SchemaKind identifies which variant of the SchemaNode sum type a node is.
// This realizes SPEC_FULL.md §4.1's "sum types for schema nodes" design
// note: a tagged enum in place of the dynamic class hierarchy the original
// Python protocol module used (kafka.protocol.types.Schema/Array/...).
type SchemaKind int

const (
	KindInt8 SchemaKind = iota
	KindInt16
	KindInt32
	KindInt64
	KindFloat64
	KindBool
	KindNullableString
	KindString
	KindBytes
	KindCompactString
	KindCompactBytes
	KindVarint
	KindUnsignedVarint
	KindTaggedFields
	KindBitField
	KindArray
	KindStruct
)

// SchemaNode is a node in a versioned request/response schema tree, per
// SPEC_FULL.md §3's SchemaNode sum type. Primitive nodes carry no children;
// Array wraps one Element; Struct carries an ordered field list whose order
// is the wire order. A TaggedFields field, if present, must be last.
type SchemaNode struct {
	Kind SchemaNode_
}

// SchemaNode_ is kept as an internal alias to avoid stuttering while still
// giving each variant its own constructor below.
type SchemaNode_ = schemaNodeImpl

type schemaNodeImpl struct {
	kind    SchemaKind
	element *SchemaNode // Array
	fields  []Field     // Struct
	vocab   []string    // BitField enum member names, in bit order
	width   int         // BitField width in bytes (1, 2, or 4)
	compact bool        // Array: true selects CompactArray wire form
}

// Field is one named member of a Struct SchemaNode, in wire order.
type Field struct {
	Name string
	Node SchemaNode
}

func primitive(k SchemaKind) SchemaNode { return SchemaNode{Kind: schemaNodeImpl{kind: k}} }

func Int8Node() SchemaNode           { return primitive(KindInt8) }
func Int16Node() SchemaNode          { return primitive(KindInt16) }
func Int32Node() SchemaNode          { return primitive(KindInt32) }
func Int64Node() SchemaNode          { return primitive(KindInt64) }
func Float64Node() SchemaNode        { return primitive(KindFloat64) }
func BoolNode() SchemaNode           { return primitive(KindBool) }
func NullableStringNode() SchemaNode { return primitive(KindNullableString) }
func StringNode() SchemaNode         { return primitive(KindString) }
func BytesNode() SchemaNode          { return primitive(KindBytes) }
func CompactStringNode() SchemaNode  { return primitive(KindCompactString) }
func CompactBytesNode() SchemaNode   { return primitive(KindCompactBytes) }
func VarintNode() SchemaNode         { return primitive(KindVarint) }
func UnsignedVarintNode() SchemaNode { return primitive(KindUnsignedVarint) }
func TaggedFieldsNode() SchemaNode   { return SchemaNode{Kind: schemaNodeImpl{kind: KindTaggedFields}} }

// BitFieldNode declares a fixed-width bit-vector whose set bits index into
// vocab, in the order given (bit 0 = vocab[0]).
func BitFieldNode(widthBytes int, vocab ...string) SchemaNode {
	return SchemaNode{Kind: schemaNodeImpl{kind: KindBitField, width: widthBytes, vocab: vocab}}
}

// ArrayNode wraps element as a length-prefixed array. compact selects the
// unsigned-varint-biased CompactArray wire form.
func ArrayNode(element SchemaNode, compact bool) SchemaNode {
	return SchemaNode{Kind: schemaNodeImpl{kind: KindArray, element: &element, compact: compact}}
}

// StructNode declares an ordered field list; field order is wire order.
func StructNode(fields ...Field) SchemaNode {
	return SchemaNode{Kind: schemaNodeImpl{kind: KindStruct, fields: fields}}
}

// Value is a decoded instance of a SchemaNode tree: primitives map to Go
// scalars, Array to []Value, Struct to StructValue, TaggedFields to
// TaggedFieldSet, and BitField to a []string of set member names.
type Value interface{}

// StructValue is the decoded form of a Struct node: an ordered map keyed by
// field name, preserving the schema's field order for re-encoding.
type StructValue struct {
	order  []string
	values map[string]Value
}

func NewStructValue() *StructValue {
	return &StructValue{values: make(map[string]Value)}
}

func (s *StructValue) Set(name string, v Value) {
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = v
}

func (s *StructValue) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// TaggedFieldSet is a sparse tagId -> raw bytes map, per SPEC_FULL.md §3/§4.1.
type TaggedFieldSet map[uint64][]byte

// EncodeSchema walks node and writes v into pe. It is the generic encode
// path used by the round-trip property test and by the flexible-version
// RPCs that have no hand-written struct (AlterPartitionReassignments,
// ListPartitionReassignments, DescribeClientQuotas).
func EncodeSchema(pe packetEncoder, node SchemaNode, v Value) error {
	impl := node.Kind
	switch impl.kind {
	case KindInt8:
		pe.putInt8(v.(int8))
	case KindInt16:
		pe.putInt16(v.(int16))
	case KindInt32:
		pe.putInt32(v.(int32))
	case KindInt64:
		pe.putInt64(v.(int64))
	case KindFloat64:
		pe.putFloat64(v.(float64))
	case KindBool:
		pe.putBool(v.(bool))
	case KindNullableString:
		s, _ := v.(*string)
		return pe.putNullableString(s)
	case KindString:
		return pe.putString(v.(string))
	case KindBytes:
		b, _ := v.([]byte)
		return pe.putBytes(b)
	case KindCompactString:
		return pe.putCompactString(v.(string))
	case KindCompactBytes:
		b, _ := v.([]byte)
		return pe.putCompactBytes(b)
	case KindVarint:
		pe.putVarint(v.(int64))
	case KindUnsignedVarint:
		pe.putUVarint(v.(uint64))
	case KindTaggedFields:
		return encodeTaggedFields(pe, v.(TaggedFieldSet))
	case KindBitField:
		return encodeBitField(pe, impl, v.([]string))
	case KindArray:
		return encodeArray(pe, impl, v)
	case KindStruct:
		return encodeStruct(pe, impl, v.(*StructValue))
	default:
		return &ProtocolEncodeError{Info: fmt.Sprintf("unknown schema kind %d", impl.kind)}
	}
	return nil
}

func encodeArray(pe packetEncoder, impl schemaNodeImpl, v Value) error {
	if v == nil {
		// A nil Value is a null array, distinct from an empty one.
		if impl.compact {
			pe.putUVarint(0)
		} else {
			pe.putInt32(-1)
		}
		return nil
	}
	elems, _ := v.([]Value)
	if impl.compact {
		pe.putCompactArrayLength(len(elems))
	} else if err := pe.putArrayLength(len(elems)); err != nil {
		return err
	}
	for _, e := range elems {
		if err := EncodeSchema(pe, *impl.element, e); err != nil {
			return err
		}
	}
	return nil
}

func encodeStruct(pe packetEncoder, impl schemaNodeImpl, sv *StructValue) error {
	for _, f := range impl.fields {
		fv, ok := sv.Get(f.Name)
		if !ok {
			return &ProtocolEncodeError{Info: fmt.Sprintf("missing field %q", f.Name)}
		}
		if err := EncodeSchema(pe, f.Node, fv); err != nil {
			return err
		}
	}
	return nil
}

func encodeTaggedFields(pe packetEncoder, tags TaggedFieldSet) error {
	pe.putUVarint(uint64(len(tags)))
	for tag, data := range tags {
		pe.putUVarint(tag)
		pe.putUVarint(uint64(len(data)))
		if err := pe.putRawBytes(data); err != nil {
			return err
		}
	}
	return nil
}

func encodeBitField(pe packetEncoder, impl schemaNodeImpl, members []string) error {
	var bits uint32
	for _, m := range members {
		idx := indexOf(impl.vocab, m)
		if idx < 0 {
			return &ProtocolEncodeError{Info: fmt.Sprintf("unknown bitfield member %q", m)}
		}
		bits |= 1 << uint(idx)
	}
	switch impl.width {
	case 1:
		pe.putInt8(int8(bits))
	case 2:
		pe.putInt16(int16(bits))
	default:
		pe.putInt32(int32(bits))
	}
	return nil
}

func indexOf(vocab []string, m string) int {
	for i, v := range vocab {
		if v == m {
			return i
		}
	}
	return -1
}

// DecodeSchema is the inverse of EncodeSchema.
func DecodeSchema(pd packetDecoder, node SchemaNode) (Value, error) {
	impl := node.Kind
	switch impl.kind {
	case KindInt8:
		return pd.getInt8()
	case KindInt16:
		return pd.getInt16()
	case KindInt32:
		return pd.getInt32()
	case KindInt64:
		return pd.getInt64()
	case KindFloat64:
		return pd.getFloat64()
	case KindBool:
		return pd.getBool()
	case KindNullableString:
		return pd.getNullableString()
	case KindString:
		return pd.getString()
	case KindBytes:
		return pd.getBytes()
	case KindCompactString:
		return pd.getCompactString()
	case KindCompactBytes:
		return pd.getCompactBytes()
	case KindVarint:
		return pd.getVarint()
	case KindUnsignedVarint:
		return pd.getUVarint()
	case KindTaggedFields:
		return decodeTaggedFields(pd)
	case KindBitField:
		return decodeBitField(pd, impl)
	case KindArray:
		return decodeArray(pd, impl)
	case KindStruct:
		return decodeStruct(pd, impl)
	default:
		return nil, &ProtocolDecodeError{Info: fmt.Sprintf("unknown schema kind %d", impl.kind)}
	}
}

func decodeArray(pd packetDecoder, impl schemaNodeImpl) (Value, error) {
	var n int
	var err error
	if impl.compact {
		n, err = pd.getCompactArrayLength()
	} else {
		n, err = pd.getArrayLength()
	}
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := DecodeSchema(pd, *impl.element)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeStruct(pd packetDecoder, impl schemaNodeImpl) (Value, error) {
	sv := NewStructValue()
	for _, f := range impl.fields {
		v, err := DecodeSchema(pd, f.Node)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		sv.Set(f.Name, v)
	}
	return sv, nil
}

func decodeTaggedFields(pd packetDecoder) (Value, error) {
	n, err := pd.getUVarint()
	if err != nil {
		return nil, err
	}
	tags := make(TaggedFieldSet, n)
	for i := uint64(0); i < n; i++ {
		tag, err := pd.getUVarint()
		if err != nil {
			return nil, err
		}
		length, err := pd.getUVarint()
		if err != nil {
			return nil, err
		}
		data, err := pd.getRawBytes(int(length))
		if err != nil {
			return nil, err
		}
		tags[tag] = data
	}
	return tags, nil
}

func decodeBitField(pd packetDecoder, impl schemaNodeImpl) (Value, error) {
	var bits uint32
	switch impl.width {
	case 1:
		v, err := pd.getInt8()
		if err != nil {
			return nil, err
		}
		bits = uint32(uint8(v))
	case 2:
		v, err := pd.getInt16()
		if err != nil {
			return nil, err
		}
		bits = uint32(uint16(v))
	default:
		v, err := pd.getInt32()
		if err != nil {
			return nil, err
		}
		bits = uint32(v)
	}
	var members []string
	for i, name := range impl.vocab {
		if bits&(1<<uint(i)) != 0 {
			members = append(members, name)
		}
	}
	return members, nil
}
