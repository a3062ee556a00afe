package kadmin

import "time"

// ElectionType selects preferred-replica election vs. unclean election.
type ElectionType int8

const (
	ElectionPreferred ElectionType = 0
	ElectionUnclean   ElectionType = 1
)

// ElectLeadersRequest triggers leader election for the given partitions
// (nil TopicPartitions means "every partition in the cluster").
type ElectLeadersRequest struct {
	Version         int16
	Type            ElectionType // gated to version >= 1
	TopicPartitions []TopicPartition
	TimeoutMs       int32
}

func (r *ElectLeadersRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if r.Version >= 1 {
		pe.putInt8(int8(r.Type))
	}
	byTopic := groupPartitionsByTopic(r.TopicPartitions)
	if r.TopicPartitions == nil {
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
	pe.putInt32(r.TimeoutMs)
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *ElectLeadersRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	if version >= 1 {
		t, err := pd.getInt8()
		if err != nil {
			return err
		}
		r.Type = ElectionType(t)
	}
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	if n == 0 {
		r.TopicPartitions = nil
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
			r.TopicPartitions = append(r.TopicPartitions, TopicPartition{Topic: topic, Partition: p})
		}
	}
	if r.TimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	return nil
}

func (r *ElectLeadersRequest) key() int16         { return int16(APIElectLeaders) }
func (r *ElectLeadersRequest) version() int16     { return r.Version }
func (r *ElectLeadersRequest) setVersion(v int16) { r.Version = v }
func (r *ElectLeadersRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *ElectLeadersRequest) isFlexible() bool {
	return descriptorFor(APIElectLeaders).isFlexibleAt(r.Version)
}

// ElectLeadersResponse carries one error per partition the election was
// attempted for. Per original_source/kafka/admin/client.py's
// _parse_topic_partition_request_response, ErrElectionNotNeeded is treated
// as a successful outcome by the façade, not a failure.
type ElectLeadersResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Err          KError // top-level, gated to version >= 1
	Results      map[TopicPartition]KError
}

func (r *ElectLeadersResponse) encode(pe packetEncoder) error { return nil }

func (r *ElectLeadersResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	throttle, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.ThrottleTime = time.Duration(throttle) * time.Millisecond
	if version >= 1 {
		code, err := pd.getInt16()
		if err != nil {
			return err
		}
		r.Err = KError(code)
	}

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Results = make(map[TopicPartition]KError, n)
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
			code, err := pd.getInt16()
			if err != nil {
				return err
			}
			if version >= 1 {
				if _, err := getNullableStr(pd, flexible); err != nil { // error_message, unused
					return err
				}
			}
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			r.Results[TopicPartition{Topic: topic, Partition: partition}] = KError(code)
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *ElectLeadersResponse) key() int16         { return int16(APIElectLeaders) }
func (r *ElectLeadersResponse) version() int16     { return r.Version }
func (r *ElectLeadersResponse) setVersion(v int16) { r.Version = v }
func (r *ElectLeadersResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *ElectLeadersResponse) isFlexible() bool {
	return descriptorFor(APIElectLeaders).isFlexibleAt(r.Version)
}
