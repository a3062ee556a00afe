package kadmin

import "time"

// DeleteRecordsRequest deletes all records up to (but excluding) Offset for
// each named partition. Requests are routed leader-by-leader; see
// router.leadersForPartitions.
type DeleteRecordsRequest struct {
	Version   int16
	Offsets   map[TopicPartition]int64
	TimeoutMs int32
}

func (r *DeleteRecordsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	byTopic := groupOffsetsByTopic(r.Offsets)
	if err := putArrayLen(pe, len(byTopic), flexible); err != nil {
		return err
	}
	for topic, parts := range byTopic {
		if err := putStr(pe, topic, flexible); err != nil {
			return err
		}
		if err := putArrayLen(pe, len(parts), flexible); err != nil {
			return err
		}
		for _, p := range parts {
			pe.putInt32(p.Partition)
			pe.putInt64(p.Offset)
			if flexible {
				pe.putUVarint(0)
			}
		}
		if flexible {
			pe.putUVarint(0)
		}
	}
	pe.putInt32(r.TimeoutMs)
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

type partitionOffset struct {
	Partition int32
	Offset    int64
}

func groupOffsetsByTopic(offsets map[TopicPartition]int64) map[string][]partitionOffset {
	out := make(map[string][]partitionOffset)
	for tp, off := range offsets {
		out[tp.Topic] = append(out[tp.Topic], partitionOffset{Partition: tp.Partition, Offset: off})
	}
	return out
}

func (r *DeleteRecordsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	r.Offsets = make(map[TopicPartition]int64)
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
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
			offset, err := pd.getInt64()
			if err != nil {
				return err
			}
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			r.Offsets[TopicPartition{Topic: topic, Partition: partition}] = offset
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
	}
	if r.TimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	return nil
}

func (r *DeleteRecordsRequest) key() int16         { return int16(APIDeleteRecords) }
func (r *DeleteRecordsRequest) version() int16     { return r.Version }
func (r *DeleteRecordsRequest) setVersion(v int16) { r.Version = v }
func (r *DeleteRecordsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *DeleteRecordsRequest) isFlexible() bool {
	return descriptorFor(APIDeleteRecords).isFlexibleAt(r.Version)
}

// DeleteRecordsResponse carries one (low watermark, error) result per
// requested partition.
type DeleteRecordsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	Results      map[TopicPartition]DeleteRecordsResult
}

// DeleteRecordsResult is one partition's outcome within
// DeleteRecordsResponse.
type DeleteRecordsResult struct {
	LowWatermark int64
	Err          KError
}

func (r *DeleteRecordsResponse) encode(pe packetEncoder) error { return nil }

func (r *DeleteRecordsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	throttle, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.ThrottleTime = time.Duration(throttle) * time.Millisecond

	r.Results = make(map[TopicPartition]DeleteRecordsResult)
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
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
			low, err := pd.getInt64()
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
			r.Results[TopicPartition{Topic: topic, Partition: partition}] = DeleteRecordsResult{
				LowWatermark: low,
				Err:          KError(code),
			}
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *DeleteRecordsResponse) key() int16         { return int16(APIDeleteRecords) }
func (r *DeleteRecordsResponse) version() int16     { return r.Version }
func (r *DeleteRecordsResponse) setVersion(v int16) { r.Version = v }
func (r *DeleteRecordsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *DeleteRecordsResponse) isFlexible() bool {
	return descriptorFor(APIDeleteRecords).isFlexibleAt(r.Version)
}
