package kadmin

// OffsetFetchRequest asks a group's coordinator for its committed offsets.
// Per SPEC_FULL.md §4.2, Partitions == nil means "all partitions the group
// has committed offsets for", but that form is only valid at version >= 2
// (FeatureOffsetFetchAllPartitions); at lower versions the caller must
// enumerate partitions explicitly.
type OffsetFetchRequest struct {
	Version    int16
	Group      string
	Partitions []TopicPartition // nil means "all", gated to version >= 2
}

func (r *OffsetFetchRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := putStr(pe, r.Group, flexible); err != nil {
		return err
	}
	byTopic := groupPartitionsByTopic(r.Partitions)
	if r.Partitions == nil && r.Version >= 2 {
		if flexible {
			pe.putUVarint(0)
		} else {
			pe.putInt32(-1)
		}
	} else {
		if err := putArrayLen(pe, len(byTopic), flexible); err != nil {
			return err
		}
		for topic, parts := range byTopic {
			if err := putStr(pe, topic, flexible); err != nil {
				return err
			}
			if err := putInt32Array(pe, parts, flexible); err != nil {
				return err
			}
			if flexible {
				pe.putUVarint(0)
			}
		}
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func groupPartitionsByTopic(tps []TopicPartition) map[string][]int32 {
	out := make(map[string][]int32)
	for _, tp := range tps {
		out[tp.Topic] = append(out[tp.Topic], tp.Partition)
	}
	return out
}

func (r *OffsetFetchRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	group, err := getStr(pd, flexible)
	if err != nil {
		return err
	}
	r.Group = group

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	if n == 0 && version >= 2 {
		r.Partitions = nil
		return nil
	}
	for i := 0; i < n; i++ {
		topic, err := getStr(pd, flexible)
		if err != nil {
			return err
		}
		parts, err := getInt32Array(pd, flexible)
		if err != nil {
			return err
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		for _, p := range parts {
			r.Partitions = append(r.Partitions, TopicPartition{Topic: topic, Partition: p})
		}
	}
	return nil
}

func (r *OffsetFetchRequest) key() int16         { return int16(APIOffsetFetch) }
func (r *OffsetFetchRequest) version() int16     { return r.Version }
func (r *OffsetFetchRequest) setVersion(v int16) { r.Version = v }
func (r *OffsetFetchRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *OffsetFetchRequest) isFlexible() bool {
	return descriptorFor(APIOffsetFetch).isFlexibleAt(r.Version)
}

// OffsetFetchPartition is one partition's committed offset.
type OffsetFetchPartition struct {
	Offset      int64
	LeaderEpoch int32 // -1 if unset, gated to version >= 5
	Metadata    *string
	Err         KError
}

// OffsetFetchResponse carries each requested partition's committed offset.
type OffsetFetchResponse struct {
	Version int16
	Offsets map[TopicPartition]OffsetFetchPartition
	Err     KError // top-level error, gated to version >= 2
}

func (r *OffsetFetchResponse) encode(pe packetEncoder) error { return nil }

func (r *OffsetFetchResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	if version >= 3 {
		if _, err := pd.getInt32(); err != nil { // throttle_time_ms, unused
			return err
		}
	}

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Offsets = make(map[TopicPartition]OffsetFetchPartition)
	for i := 0; i < n; i++ {
		topic, err := getStr(pd, flexible)
		if err != nil {
			return err
		}
		pn, err := getArrayLen(pd, flexible)
		if err != nil {
			return err
		}
		for j := 0; j < pn; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			var entry OffsetFetchPartition
			if entry.Offset, err = pd.getInt64(); err != nil {
				return err
			}
			if version >= 5 {
				if entry.LeaderEpoch, err = pd.getInt32(); err != nil {
					return err
				}
			} else {
				entry.LeaderEpoch = -1
			}
			if entry.Metadata, err = getNullableStr(pd, flexible); err != nil {
				return err
			}
			code, err := pd.getInt16()
			if err != nil {
				return err
			}
			entry.Err = KError(code)
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			r.Offsets[TopicPartition{Topic: topic, Partition: partition}] = entry
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
	}
	if version >= 2 {
		code, err := pd.getInt16()
		if err != nil {
			return err
		}
		r.Err = KError(code)
	}
	return nil
}

func (r *OffsetFetchResponse) key() int16         { return int16(APIOffsetFetch) }
func (r *OffsetFetchResponse) version() int16     { return r.Version }
func (r *OffsetFetchResponse) setVersion(v int16) { r.Version = v }
func (r *OffsetFetchResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *OffsetFetchResponse) isFlexible() bool {
	return descriptorFor(APIOffsetFetch).isFlexibleAt(r.Version)
}
