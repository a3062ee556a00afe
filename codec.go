package kadmin

import (
	"encoding/binary"
	"math"
)

// packetEncoder is the write-side half of the primitive codec described in
// SPEC_FULL.md §4.1. Concrete request types call these methods from their
// encode(pe) method, exactly the way the teacher's delete_topics_response.go
// and end_txn_request.go do.
type packetEncoder interface {
	putInt8(in int8)
	putInt16(in int16)
	putInt32(in int32)
	putInt64(in int64)
	putFloat64(in float64)
	putBool(in bool)
	putVarint(in int64)
	putUVarint(in uint64)
	putString(in string) error
	putNullableString(in *string) error
	putCompactString(in string) error
	putBytes(in []byte) error
	putCompactBytes(in []byte) error
	putArrayLength(n int) error
	putCompactArrayLength(n int)
	putRawBytes(in []byte) error
}

// packetDecoder is the read-side half. Every method fails with
// ProtocolDecodeError the moment a declared length would exceed the
// remaining buffer, per SPEC_FULL.md §4.1.
type packetDecoder interface {
	getInt8() (int8, error)
	getInt16() (int16, error)
	getInt32() (int32, error)
	getInt64() (int64, error)
	getFloat64() (float64, error)
	getBool() (bool, error)
	getVarint() (int64, error)
	getUVarint() (uint64, error)
	getString() (string, error)
	getNullableString() (*string, error)
	getCompactString() (string, error)
	getBytes() ([]byte, error)
	getCompactBytes() ([]byte, error)
	getArrayLength() (int, error)
	getCompactArrayLength() (int, error)
	getRawBytes(n int) ([]byte, error)
	remaining() int
}

// realEncoder writes directly into a growable byte slice.
type realEncoder struct {
	raw []byte
}

func newRealEncoder() *realEncoder { return &realEncoder{} }

func (e *realEncoder) bytes() []byte { return e.raw }

func (e *realEncoder) putInt8(in int8) { e.raw = append(e.raw, byte(in)) }

func (e *realEncoder) putInt16(in int16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(in))
	e.raw = append(e.raw, buf[:]...)
}

func (e *realEncoder) putInt32(in int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(in))
	e.raw = append(e.raw, buf[:]...)
}

func (e *realEncoder) putInt64(in int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(in))
	e.raw = append(e.raw, buf[:]...)
}

func (e *realEncoder) putFloat64(in float64) {
	e.putInt64(int64(math.Float64bits(in)))
}

func (e *realEncoder) putBool(in bool) {
	if in {
		e.putInt8(1)
	} else {
		e.putInt8(0)
	}
}

func (e *realEncoder) putVarint(in int64) {
	e.putUVarint(uint64(in<<1) ^ uint64(in>>63))
}

func (e *realEncoder) putUVarint(in uint64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], in)
	e.raw = append(e.raw, buf[:n]...)
}

func (e *realEncoder) putString(in string) error {
	if len(in) > math.MaxInt16 {
		return &ProtocolEncodeError{Info: "string too long"}
	}
	e.putInt16(int16(len(in)))
	e.raw = append(e.raw, in...)
	return nil
}

func (e *realEncoder) putNullableString(in *string) error {
	if in == nil {
		e.putInt16(-1)
		return nil
	}
	return e.putString(*in)
}

func (e *realEncoder) putCompactString(in string) error {
	if len(in) > math.MaxInt32-1 {
		return &ProtocolEncodeError{Info: "compact string too long"}
	}
	e.putUVarint(uint64(len(in)) + 1)
	e.raw = append(e.raw, in...)
	return nil
}

func (e *realEncoder) putBytes(in []byte) error {
	if in == nil {
		e.putInt32(-1)
		return nil
	}
	if len(in) > math.MaxInt32 {
		return &ProtocolEncodeError{Info: "byte slice too long"}
	}
	e.putInt32(int32(len(in)))
	e.raw = append(e.raw, in...)
	return nil
}

func (e *realEncoder) putCompactBytes(in []byte) error {
	if in == nil {
		e.putUVarint(0)
		return nil
	}
	e.putUVarint(uint64(len(in)) + 1)
	e.raw = append(e.raw, in...)
	return nil
}

func (e *realEncoder) putArrayLength(n int) error {
	if n > math.MaxInt32 {
		return &ProtocolEncodeError{Info: "array too long"}
	}
	e.putInt32(int32(n))
	return nil
}

func (e *realEncoder) putCompactArrayLength(n int) {
	e.putUVarint(uint64(n) + 1)
}

func (e *realEncoder) putRawBytes(in []byte) error {
	e.raw = append(e.raw, in...)
	return nil
}

// realDecoder reads positionally from a fixed buffer, failing fast on any
// length that would overrun the remaining bytes.
type realDecoder struct {
	raw []byte
	off int
}

func newRealDecoder(raw []byte) *realDecoder { return &realDecoder{raw: raw} }

func (d *realDecoder) remaining() int { return len(d.raw) - d.off }

func (d *realDecoder) need(n int) error {
	if n < 0 || d.remaining() < n {
		return &ProtocolDecodeError{Info: "insufficient data to decode packet, more bytes expected"}
	}
	return nil
}

func (d *realDecoder) getInt8() (int8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := int8(d.raw[d.off])
	d.off++
	return v, nil
}

func (d *realDecoder) getInt16() (int16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := int16(binary.BigEndian.Uint16(d.raw[d.off:]))
	d.off += 2
	return v, nil
}

func (d *realDecoder) getInt32() (int32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.BigEndian.Uint32(d.raw[d.off:]))
	d.off += 4
	return v, nil
}

func (d *realDecoder) getInt64() (int64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := int64(binary.BigEndian.Uint64(d.raw[d.off:]))
	d.off += 8
	return v, nil
}

func (d *realDecoder) getFloat64() (float64, error) {
	v, err := d.getInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

func (d *realDecoder) getBool() (bool, error) {
	v, err := d.getInt8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (d *realDecoder) getVarint() (int64, error) {
	u, err := d.getUVarint()
	if err != nil {
		return 0, err
	}
	return int64(u>>1) ^ -int64(u&1), nil
}

func (d *realDecoder) getUVarint() (uint64, error) {
	v, n := binary.Uvarint(d.raw[d.off:])
	if n <= 0 {
		return 0, &ProtocolDecodeError{Info: "malformed varint"}
	}
	d.off += n
	return v, nil
}

func (d *realDecoder) getString() (string, error) {
	n, err := d.getInt16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", &ProtocolDecodeError{Info: "negative length for non-nullable string"}
	}
	return d.getFixedString(int(n))
}

func (d *realDecoder) getNullableString() (*string, error) {
	n, err := d.getInt16()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	s, err := d.getFixedString(int(n))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (d *realDecoder) getFixedString(n int) (string, error) {
	if err := d.need(n); err != nil {
		return "", err
	}
	s := string(d.raw[d.off : d.off+n])
	d.off += n
	return s, nil
}

func (d *realDecoder) getCompactString() (string, error) {
	u, err := d.getUVarint()
	if err != nil {
		return "", err
	}
	if u == 0 {
		return "", nil
	}
	return d.getFixedString(int(u) - 1)
}

func (d *realDecoder) getBytes() ([]byte, error) {
	n, err := d.getInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	return d.getRawBytes(int(n))
}

func (d *realDecoder) getCompactBytes() ([]byte, error) {
	u, err := d.getUVarint()
	if err != nil {
		return nil, err
	}
	if u == 0 {
		return nil, nil
	}
	return d.getRawBytes(int(u) - 1)
}

func (d *realDecoder) getArrayLength() (int, error) {
	n, err := d.getInt32()
	if err != nil {
		return 0, err
	}
	if n < -1 {
		return 0, &ProtocolDecodeError{Info: "invalid array length"}
	}
	if n == -1 {
		return 0, nil
	}
	return int(n), nil
}

func (d *realDecoder) getCompactArrayLength() (int, error) {
	u, err := d.getUVarint()
	if err != nil {
		return 0, err
	}
	if u == 0 {
		return 0, nil
	}
	return int(u) - 1, nil
}

func (d *realDecoder) getRawBytes(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, d.raw[d.off:d.off+n])
	d.off += n
	return out, nil
}
