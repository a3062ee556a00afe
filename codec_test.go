package kadmin

import (
	"bytes"
	"testing"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	pe := newRealEncoder()
	pe.putInt8(-7)
	pe.putInt16(-1000)
	pe.putInt32(123456789)
	pe.putInt64(-9012345678901)
	pe.putFloat64(3.14159)
	pe.putBool(true)
	pe.putBool(false)
	pe.putVarint(-150)
	pe.putUVarint(150)
	if err := pe.putString("hello"); err != nil {
		t.Fatalf("putString: %v", err)
	}
	if err := pe.putNullableString(nil); err != nil {
		t.Fatalf("putNullableString(nil): %v", err)
	}
	name := "world"
	if err := pe.putNullableString(&name); err != nil {
		t.Fatalf("putNullableString: %v", err)
	}
	if err := pe.putCompactString("compact"); err != nil {
		t.Fatalf("putCompactString: %v", err)
	}
	if err := pe.putBytes([]byte{1, 2, 3}); err != nil {
		t.Fatalf("putBytes: %v", err)
	}
	if err := pe.putBytes(nil); err != nil {
		t.Fatalf("putBytes(nil): %v", err)
	}
	if err := pe.putCompactBytes([]byte{4, 5}); err != nil {
		t.Fatalf("putCompactBytes: %v", err)
	}
	if err := pe.putCompactBytes(nil); err != nil {
		t.Fatalf("putCompactBytes(nil): %v", err)
	}
	if err := pe.putArrayLength(3); err != nil {
		t.Fatalf("putArrayLength: %v", err)
	}
	pe.putCompactArrayLength(0)

	pd := newRealDecoder(pe.bytes())

	if v, err := pd.getInt8(); err != nil || v != -7 {
		t.Fatalf("getInt8 = %d, %v", v, err)
	}
	if v, err := pd.getInt16(); err != nil || v != -1000 {
		t.Fatalf("getInt16 = %d, %v", v, err)
	}
	if v, err := pd.getInt32(); err != nil || v != 123456789 {
		t.Fatalf("getInt32 = %d, %v", v, err)
	}
	if v, err := pd.getInt64(); err != nil || v != -9012345678901 {
		t.Fatalf("getInt64 = %d, %v", v, err)
	}
	if v, err := pd.getFloat64(); err != nil || v != 3.14159 {
		t.Fatalf("getFloat64 = %v, %v", v, err)
	}
	if v, err := pd.getBool(); err != nil || v != true {
		t.Fatalf("getBool = %v, %v", v, err)
	}
	if v, err := pd.getBool(); err != nil || v != false {
		t.Fatalf("getBool = %v, %v", v, err)
	}
	if v, err := pd.getVarint(); err != nil || v != -150 {
		t.Fatalf("getVarint = %d, %v", v, err)
	}
	if v, err := pd.getUVarint(); err != nil || v != 150 {
		t.Fatalf("getUVarint = %d, %v", v, err)
	}
	if v, err := pd.getString(); err != nil || v != "hello" {
		t.Fatalf("getString = %q, %v", v, err)
	}
	if v, err := pd.getNullableString(); err != nil || v != nil {
		t.Fatalf("getNullableString(nil) = %v, %v", v, err)
	}
	if v, err := pd.getNullableString(); err != nil || v == nil || *v != "world" {
		t.Fatalf("getNullableString = %v, %v", v, err)
	}
	if v, err := pd.getCompactString(); err != nil || v != "compact" {
		t.Fatalf("getCompactString = %q, %v", v, err)
	}
	if v, err := pd.getBytes(); err != nil || !bytes.Equal(v, []byte{1, 2, 3}) {
		t.Fatalf("getBytes = %v, %v", v, err)
	}
	if v, err := pd.getBytes(); err != nil || v != nil {
		t.Fatalf("getBytes(nil) = %v, %v", v, err)
	}
	if v, err := pd.getCompactBytes(); err != nil || !bytes.Equal(v, []byte{4, 5}) {
		t.Fatalf("getCompactBytes = %v, %v", v, err)
	}
	if v, err := pd.getCompactBytes(); err != nil || v != nil {
		t.Fatalf("getCompactBytes(nil) = %v, %v", v, err)
	}
	if n, err := pd.getArrayLength(); err != nil || n != 3 {
		t.Fatalf("getArrayLength = %d, %v", n, err)
	}
	if n, err := pd.getCompactArrayLength(); err != nil || n != 0 {
		t.Fatalf("getCompactArrayLength = %d, %v", n, err)
	}
	if pd.remaining() != 0 {
		t.Fatalf("expected no remaining bytes, got %d", pd.remaining())
	}
}

func TestDecoderFailsFastOnTruncatedInput(t *testing.T) {
	pd := newRealDecoder([]byte{0, 1})
	if _, err := pd.getInt32(); err == nil {
		t.Fatal("expected error decoding int32 from a 2-byte buffer")
	}
}

func TestCompactArrayLengthIsBiasedByOne(t *testing.T) {
	pe := newRealEncoder()
	pe.putCompactArrayLength(5)
	pd := newRealDecoder(pe.bytes())
	n, err := pd.getCompactArrayLength()
	if err != nil {
		t.Fatalf("getCompactArrayLength: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5, got %d", n)
	}
}

func TestTaggedFieldsRoundTrip(t *testing.T) {
	pe := newRealEncoder()
	tags := TaggedFieldSet{1: []byte("a"), 2: []byte("bb")}
	if err := encodeTaggedFields(pe, tags); err != nil {
		t.Fatalf("encodeTaggedFields: %v", err)
	}
	pd := newRealDecoder(pe.bytes())
	v, err := decodeTaggedFields(pd)
	if err != nil {
		t.Fatalf("decodeTaggedFields: %v", err)
	}
	got := v.(TaggedFieldSet)
	if len(got) != 2 || string(got[1]) != "a" || string(got[2]) != "bb" {
		t.Fatalf("unexpected tagged fields: %v", got)
	}
}
