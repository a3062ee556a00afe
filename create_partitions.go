package kadmin

import "time"

// NewPartitions describes how many partitions a topic should grow to, and
// optionally pins replica assignments for the new partitions.
type NewPartitions struct {
	Topic              string
	TotalCount         int32
	NewAssignments     [][]int32 // one slice of replica ids per new partition, in order
}

// CreatePartitionsRequest asks the controller to grow one or more topics'
// partition counts.
type CreatePartitionsRequest struct {
	Version      int16
	Topics       []NewPartitions
	TimeoutMs    int32
	ValidateOnly bool
}

func (r *CreatePartitionsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := putArrayLen(pe, len(r.Topics), flexible); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := putStr(pe, t.Topic, flexible); err != nil {
			return err
		}
		pe.putInt32(t.TotalCount)
		if err := putArrayLen(pe, len(t.NewAssignments), flexible); err != nil {
			return err
		}
		for _, a := range t.NewAssignments {
			if err := putInt32Array(pe, a, flexible); err != nil {
				return err
			}
		}
		if flexible {
			pe.putUVarint(0)
		}
	}
	pe.putInt32(r.TimeoutMs)
	pe.putBool(r.ValidateOnly)
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *CreatePartitionsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Topics = make([]NewPartitions, 0, n)
	for i := 0; i < n; i++ {
		var t NewPartitions
		if t.Topic, err = getStr(pd, flexible); err != nil {
			return err
		}
		if t.TotalCount, err = pd.getInt32(); err != nil {
			return err
		}
		an, err := getArrayLen(pd, flexible)
		if err != nil {
			return err
		}
		for j := 0; j < an; j++ {
			replicas, err := getInt32Array(pd, flexible)
			if err != nil {
				return err
			}
			t.NewAssignments = append(t.NewAssignments, replicas)
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		r.Topics = append(r.Topics, t)
	}
	if r.TimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	if r.ValidateOnly, err = pd.getBool(); err != nil {
		return err
	}
	return nil
}

func (r *CreatePartitionsRequest) key() int16         { return int16(APICreatePartitions) }
func (r *CreatePartitionsRequest) version() int16     { return r.Version }
func (r *CreatePartitionsRequest) setVersion(v int16) { r.Version = v }
func (r *CreatePartitionsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *CreatePartitionsRequest) isFlexible() bool {
	return descriptorFor(APICreatePartitions).isFlexibleAt(r.Version)
}

// CreatePartitionsResponse carries one error per requested topic.
type CreatePartitionsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Results      map[string]TopicCreationResult
}

func (r *CreatePartitionsResponse) encode(pe packetEncoder) error { return nil }

func (r *CreatePartitionsResponse) decode(pd packetDecoder, version int16) error {
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
	r.Results = make(map[string]TopicCreationResult, n)
	for i := 0; i < n; i++ {
		name, err := getStr(pd, flexible)
		if err != nil {
			return err
		}
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
		r.Results[name] = TopicCreationResult{Err: KError(code), ErrorMessage: msg}
	}
	return nil
}

func (r *CreatePartitionsResponse) key() int16         { return int16(APICreatePartitions) }
func (r *CreatePartitionsResponse) version() int16     { return r.Version }
func (r *CreatePartitionsResponse) setVersion(v int16) { r.Version = v }
func (r *CreatePartitionsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *CreatePartitionsResponse) isFlexible() bool {
	return descriptorFor(APICreatePartitions).isFlexibleAt(r.Version)
}
