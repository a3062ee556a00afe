package kadmin

import "time"

// TopicReplicaAssignment pins specific broker ids to a partition instead of
// letting the controller choose, per SPEC_FULL.md §3.
type TopicReplicaAssignment struct {
	Partition int32
	Replicas  []int32
}

// ConfigEntry is one resource config key/value pair, shared by
// CreateTopics, DescribeConfigs, and AlterConfigs.
type ConfigEntry struct {
	Name  string
	Value *string
}

// NewTopic describes one topic to create.
type NewTopic struct {
	Name              string
	NumPartitions     int32 // -1 if ReplicaAssignments is set
	ReplicationFactor int16 // -1 if ReplicaAssignments is set
	ReplicaAssignments []TopicReplicaAssignment
	ConfigEntries      []ConfigEntry
}

// CreateTopicsRequest creates one or more topics via the controller.
type CreateTopicsRequest struct {
	Version      int16
	Topics       []NewTopic
	TimeoutMs    int32
	ValidateOnly bool // gated to version >= 1, see FeatureValidateOnly
}

func (r *CreateTopicsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := putArrayLen(pe, len(r.Topics), flexible); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := putStr(pe, t.Name, flexible); err != nil {
			return err
		}
		pe.putInt32(t.NumPartitions)
		pe.putInt16(t.ReplicationFactor)
		if err := putArrayLen(pe, len(t.ReplicaAssignments), flexible); err != nil {
			return err
		}
		for _, a := range t.ReplicaAssignments {
			pe.putInt32(a.Partition)
			if err := putInt32Array(pe, a.Replicas, flexible); err != nil {
				return err
			}
			if flexible {
				pe.putUVarint(0)
			}
		}
		if err := putArrayLen(pe, len(t.ConfigEntries), flexible); err != nil {
			return err
		}
		for _, c := range t.ConfigEntries {
			if err := putStr(pe, c.Name, flexible); err != nil {
				return err
			}
			if err := putNullableStr(pe, c.Value, flexible); err != nil {
				return err
			}
			if flexible {
				pe.putUVarint(0)
			}
		}
		if flexible {
			pe.putUVarint(0)
		}
	}
	pe.putInt32(r.TimeoutMs)
	if r.Version >= 1 {
		pe.putBool(r.ValidateOnly)
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *CreateTopicsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Topics = make([]NewTopic, 0, n)
	for i := 0; i < n; i++ {
		var t NewTopic
		if t.Name, err = getStr(pd, flexible); err != nil {
			return err
		}
		if t.NumPartitions, err = pd.getInt32(); err != nil {
			return err
		}
		if t.ReplicationFactor, err = pd.getInt16(); err != nil {
			return err
		}
		an, err := getArrayLen(pd, flexible)
		if err != nil {
			return err
		}
		for j := 0; j < an; j++ {
			var a TopicReplicaAssignment
			if a.Partition, err = pd.getInt32(); err != nil {
				return err
			}
			if a.Replicas, err = getInt32Array(pd, flexible); err != nil {
				return err
			}
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			t.ReplicaAssignments = append(t.ReplicaAssignments, a)
		}
		cn, err := getArrayLen(pd, flexible)
		if err != nil {
			return err
		}
		for j := 0; j < cn; j++ {
			var c ConfigEntry
			if c.Name, err = getStr(pd, flexible); err != nil {
				return err
			}
			if c.Value, err = getNullableStr(pd, flexible); err != nil {
				return err
			}
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			t.ConfigEntries = append(t.ConfigEntries, c)
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
	if version >= 1 {
		if r.ValidateOnly, err = pd.getBool(); err != nil {
			return err
		}
	}
	return nil
}

func (r *CreateTopicsRequest) key() int16         { return int16(APICreateTopics) }
func (r *CreateTopicsRequest) version() int16     { return r.Version }
func (r *CreateTopicsRequest) setVersion(v int16) { r.Version = v }
func (r *CreateTopicsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *CreateTopicsRequest) isFlexible() bool {
	return descriptorFor(APICreateTopics).isFlexibleAt(r.Version)
}

// CreateTopicsResponse carries one error (plus message) per requested
// topic.
type CreateTopicsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Topics       map[string]TopicCreationResult
}

// TopicCreationResult is one topic's outcome within CreateTopicsResponse.
type TopicCreationResult struct {
	Err          KError
	ErrorMessage *string
}

func (r *CreateTopicsResponse) encode(pe packetEncoder) error { return nil }

func (r *CreateTopicsResponse) decode(pd packetDecoder, version int16) error {
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
	r.Topics = make(map[string]TopicCreationResult, n)
	for i := 0; i < n; i++ {
		name, err := getStr(pd, flexible)
		if err != nil {
			return err
		}
		code, err := pd.getInt16()
		if err != nil {
			return err
		}
		var res TopicCreationResult
		res.Err = KError(code)
		if version >= 1 {
			msg, err := getNullableStr(pd, flexible)
			if err != nil {
				return err
			}
			res.ErrorMessage = msg
		}
		if version >= 5 {
			// num_partitions, replication_factor, configs echoed back; this
			// core has no use for them beyond the error outcome.
			if _, err := pd.getInt32(); err != nil {
				return err
			}
			if _, err := pd.getInt16(); err != nil {
				return err
			}
			cn, err := getArrayLen(pd, flexible)
			if err != nil {
				return err
			}
			for j := 0; j < cn; j++ {
				if _, err := getStr(pd, flexible); err != nil {
					return err
				}
				if _, err := getNullableStr(pd, flexible); err != nil {
					return err
				}
				if _, err := pd.getBool(); err != nil {
					return err
				}
				if _, err := pd.getInt8(); err != nil {
					return err
				}
				if flexible {
					if _, err := decodeTaggedFields(pd); err != nil {
						return err
					}
				}
			}
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		r.Topics[name] = res
	}
	return nil
}

func (r *CreateTopicsResponse) key() int16         { return int16(APICreateTopics) }
func (r *CreateTopicsResponse) version() int16     { return r.Version }
func (r *CreateTopicsResponse) setVersion(v int16) { r.Version = v }
func (r *CreateTopicsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *CreateTopicsResponse) isFlexible() bool {
	return descriptorFor(APICreateTopics).isFlexibleAt(r.Version)
}
