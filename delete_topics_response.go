package kadmin

import "time"

// DeleteTopicsRequest asks the controller to delete the named topics.
type DeleteTopicsRequest struct {
	Version      int16
	Topics       []string
	TimeoutMs    int32
}

func (r *DeleteTopicsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := encodeStringArray(pe, r.Topics, flexible); err != nil {
		return err
	}
	pe.putInt32(r.TimeoutMs)
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *DeleteTopicsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	topics, err := decodeStringArray(pd, r.isFlexible())
	if err != nil {
		return err
	}
	r.Topics = topics
	timeout, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.TimeoutMs = timeout
	return nil
}

func (r *DeleteTopicsRequest) key() int16         { return int16(APIDeleteTopics) }
func (r *DeleteTopicsRequest) version() int16     { return r.Version }
func (r *DeleteTopicsRequest) setVersion(v int16) { r.Version = v }
func (r *DeleteTopicsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *DeleteTopicsRequest) isFlexible() bool {
	return descriptorFor(APIDeleteTopics).isFlexibleAt(r.Version)
}

// DeleteTopicsResponse carries one error code per requested topic, kept as
// a map the way the teacher's own DeleteTopicsResponse does — the façade
// turns this into a TopicError per failed entry, per SPEC_FULL.md §7.
type DeleteTopicsResponse struct {
	Version         int16
	ThrottleTime    time.Duration
	TopicErrorCodes map[string]KError
}

func (d *DeleteTopicsResponse) encode(pe packetEncoder) error { return nil }

func (d *DeleteTopicsResponse) decode(pd packetDecoder, version int16) error {
	d.Version = version
	flexible := d.isFlexible()

	if version >= 1 {
		throttleTime, err := pd.getInt32()
		if err != nil {
			return err
		}
		d.ThrottleTime = time.Duration(throttleTime) * time.Millisecond
	}

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	d.TopicErrorCodes = make(map[string]KError, n)
	for i := 0; i < n; i++ {
		topic, err := getStr(pd, flexible)
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
		d.TopicErrorCodes[topic] = KError(code)
	}
	return nil
}

func (d *DeleteTopicsResponse) key() int16         { return int16(APIDeleteTopics) }
func (d *DeleteTopicsResponse) version() int16     { return d.Version }
func (d *DeleteTopicsResponse) setVersion(v int16) { d.Version = v }
func (d *DeleteTopicsResponse) headerVersion() int16 {
	if d.isFlexible() {
		return 1
	}
	return 0
}
func (d *DeleteTopicsResponse) isFlexible() bool {
	return descriptorFor(APIDeleteTopics).isFlexibleAt(d.Version)
}

func (d *DeleteTopicsResponse) throttleTime() time.Duration { return d.ThrottleTime }
