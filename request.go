package kadmin

// ProtocolBody is implemented by every versioned request and response
// struct in this module, following the teacher's own calling convention
// (see delete_topics_response.go, end_txn_request.go): encode/decode walk
// the exact field set for one wire version, not a reflective "latest"
// shape.
type ProtocolBody interface {
	encode(pe packetEncoder) error
	decode(pd packetDecoder, version int16) error
	key() int16
	version() int16
	setVersion(v int16)
	headerVersion() int16
	isFlexible() bool
}

// RequestHeader is the common preamble in front of every request body, per
// SPEC_FULL.md §4.1.
type RequestHeader struct {
	APIKey        int16
	APIVersion    int16
	CorrelationID int32
	ClientID      *string
}

func (h *RequestHeader) encode(pe packetEncoder, flexible bool) error {
	pe.putInt16(h.APIKey)
	pe.putInt16(h.APIVersion)
	pe.putInt32(h.CorrelationID)
	if err := pe.putNullableString(h.ClientID); err != nil {
		return err
	}
	if flexible {
		pe.putUVarint(0) // no request-level tagged fields emitted by this core
	}
	return nil
}

// ResponseHeader is the common preamble in front of every response body.
type ResponseHeader struct {
	CorrelationID int32
}

func (h *ResponseHeader) decode(pd packetDecoder, flexible bool) error {
	v, err := pd.getInt32()
	if err != nil {
		return err
	}
	h.CorrelationID = v
	if flexible {
		if _, err := decodeTaggedFields(pd); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRequest serializes the full wire frame (size prefix + header +
// body) for req at the given correlation id and client id.
func EncodeRequest(req ProtocolBody, correlationID int32, clientID string) ([]byte, error) {
	pe := newRealEncoder()
	header := RequestHeader{
		APIKey:        req.key(),
		APIVersion:    req.version(),
		CorrelationID: correlationID,
		ClientID:      &clientID,
	}
	if err := header.encode(pe, req.headerVersion() >= 2); err != nil {
		return nil, err
	}
	if err := req.encode(pe); err != nil {
		return nil, err
	}
	body := pe.bytes()

	framed := newRealEncoder()
	framed.putInt32(int32(len(body)))
	if err := framed.putRawBytes(body); err != nil {
		return nil, err
	}
	return framed.bytes(), nil
}

// DecodeResponse parses a response frame's body (size prefix already
// stripped by the transport) into resp at the given version. Trailing
// bytes after a FLEXIBLE_VERSION response are consumed as tagged fields;
// for non-flexible versions, trailing bytes are a decode error per
// SPEC_FULL.md §4.1.
func DecodeResponse(raw []byte, resp ProtocolBody, version int16) error {
	pd := newRealDecoder(raw)
	var header ResponseHeader
	if err := header.decode(pd, resp.headerVersion() >= 1); err != nil {
		return err
	}
	resp.setVersion(version)
	if err := resp.decode(pd, version); err != nil {
		return err
	}
	if resp.isFlexible() {
		if _, err := decodeTaggedFields(pd); err != nil {
			return err
		}
	}
	if pd.remaining() != 0 {
		return &ProtocolDecodeError{Info: "trailing bytes after decoding non-flexible response"}
	}
	return nil
}

// ErrorLayout names which shape of per-entity error array a response
// carries, replacing the duck-typed attribute probing
// (`getattr(response, 'topic_errors', getattr(response, 'topic_error_codes', None))`)
// the Python original used, per SPEC_FULL.md §9 / spec.md §9.
type ErrorLayout int

const (
	// LayoutNone means the response has only a single top-level error
	// code (or none at all).
	LayoutNone ErrorLayout = iota
	// LayoutTopicLevel means per-topic (topic -> error) entries.
	LayoutTopicLevel
	// LayoutTopicPartition means per-(topic,partition) entries.
	LayoutTopicPartition
	// LayoutFilterMatchingACLs means per-filter entries each containing
	// nested matching-ACL entries (DeleteAcls).
	LayoutFilterMatchingACLs
	// LayoutPerGroup means per-group-id entries (DeleteGroups).
	LayoutPerGroup
)
