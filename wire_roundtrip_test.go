package kadmin

import "testing"

// TestDecodeResponseFlexibleDoesNotDoubleDecodeTaggedFields is the
// regression test for a bug class where a response's own decode() read a
// trailing top-level tagged-fields block in addition to DecodeResponse
// reading one after it, leaving either a spurious decode error or
// misaligned trailing bytes. It hand-builds a raw flexible-version
// DeleteTopics response frame (header + body + exactly one top-level
// tagged-fields block) and decodes it through the full DecodeResponse
// path rather than calling decode() directly.
func TestDecodeResponseFlexibleDoesNotDoubleDecodeTaggedFields(t *testing.T) {
	const version int16 = 4 // DeleteTopics is flexible from version 4

	pe := newRealEncoder()
	// ResponseHeader (headerVersion >= 1 is flexible for this response)
	pe.putInt32(42) // correlation id
	if err := encodeTaggedFields(pe, TaggedFieldSet{}); err != nil {
		t.Fatalf("encode header tagged fields: %v", err)
	}

	// Body: throttle_time_ms, then a compact array of one (topic, error) entry
	pe.putInt32(0)
	pe.putCompactArrayLength(1)
	if err := pe.putCompactString("widgets"); err != nil {
		t.Fatalf("putCompactString: %v", err)
	}
	pe.putInt16(int16(ErrNoError))
	if err := encodeTaggedFields(pe, TaggedFieldSet{}); err != nil {
		t.Fatalf("encode per-topic tagged fields: %v", err)
	}

	// Single top-level tagged-fields block, owned by DecodeResponse.
	if err := encodeTaggedFields(pe, TaggedFieldSet{}); err != nil {
		t.Fatalf("encode top-level tagged fields: %v", err)
	}

	resp := &DeleteTopicsResponse{}
	if err := DecodeResponse(pe.bytes(), resp, version); err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(resp.TopicErrorCodes) != 1 || resp.TopicErrorCodes["widgets"] != ErrNoError {
		t.Fatalf("unexpected TopicErrorCodes: %v", resp.TopicErrorCodes)
	}
}

// TestDecodeResponseNonFlexibleRejectsTrailingBytes confirms the
// complementary case: a non-flexible response must not have any bytes
// left over after decode.
func TestDecodeResponseNonFlexibleRejectsTrailingBytes(t *testing.T) {
	const version int16 = 1 // DeleteTopics v1 is not flexible

	pe := newRealEncoder()
	pe.putInt32(7) // correlation id, non-flexible header

	pe.putInt32(0) // throttle_time_ms
	if err := pe.putArrayLength(1); err != nil {
		t.Fatalf("putArrayLength: %v", err)
	}
	if err := pe.putString("widgets"); err != nil {
		t.Fatalf("putString: %v", err)
	}
	pe.putInt16(int16(ErrNoError))
	pe.putInt8(0) // one stray extra byte that does not belong to this response

	resp := &DeleteTopicsResponse{}
	if err := DecodeResponse(pe.bytes(), resp, version); err == nil {
		t.Fatal("expected an error for trailing bytes on a non-flexible response")
	}
}
