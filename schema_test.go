package kadmin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSchemaStructRoundTrip(t *testing.T) {
	node := StructNode(
		Field{Name: "name", Node: CompactStringNode()},
		Field{Name: "count", Node: Int32Node()},
		Field{Name: "replicas", Node: ArrayNode(Int32Node(), true)},
		Field{Name: "tags", Node: TaggedFieldsNode()},
	)

	sv := NewStructValue()
	sv.Set("name", "widgets")
	sv.Set("count", int32(7))
	sv.Set("replicas", []Value{int32(1), int32(2), int32(3)})
	sv.Set("tags", TaggedFieldSet{})

	pe := newRealEncoder()
	if err := EncodeSchema(pe, node, sv); err != nil {
		t.Fatalf("EncodeSchema: %v", err)
	}

	pd := newRealDecoder(pe.bytes())
	decoded, err := DecodeSchema(pd, node)
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}

	out, ok := decoded.(*StructValue)
	if !ok {
		t.Fatalf("expected *StructValue, got %T", decoded)
	}
	name, _ := out.Get("name")
	if name != "widgets" {
		t.Fatalf("name = %v", name)
	}
	count, _ := out.Get("count")
	if count != int32(7) {
		t.Fatalf("count = %v", count)
	}
	replicas, _ := out.Get("replicas")
	rs := replicas.([]Value)
	want := []Value{int32(1), int32(2), int32(3)}
	if diff := cmp.Diff(want, rs); diff != "" {
		t.Fatalf("replicas mismatch (-want +got):\n%s", diff)
	}
	if pd.remaining() != 0 {
		t.Fatalf("expected no remaining bytes, got %d", pd.remaining())
	}
}

func TestSchemaBitFieldRoundTrip(t *testing.T) {
	node := BitFieldNode(4, "READ", "WRITE", "DELETE")
	pe := newRealEncoder()
	if err := EncodeSchema(pe, node, []string{"WRITE", "DELETE"}); err != nil {
		t.Fatalf("EncodeSchema: %v", err)
	}
	pd := newRealDecoder(pe.bytes())
	v, err := DecodeSchema(pd, node)
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}
	members := v.([]string)
	if len(members) != 2 || members[0] != "WRITE" || members[1] != "DELETE" {
		t.Fatalf("unexpected members: %v", members)
	}
}

func TestAlterPartitionReassignmentsRequestEncodesWithoutError(t *testing.T) {
	req := NewAlterPartitionReassignmentsRequest(5000, map[TopicPartition][]int32{
		{Topic: "t", Partition: 0}: {1, 2, 3},
	})
	pe := newRealEncoder()
	if err := req.encode(pe); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(pe.bytes()) == 0 {
		t.Fatal("expected non-empty encoding")
	}
}
