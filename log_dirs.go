package kadmin

// DescribeLogDirsRequest asks one specific broker about its log
// directories. Routed exact-broker-by-id: the caller names the broker, and
// the router confirms it is known to the cluster before sending.
type DescribeLogDirsRequest struct {
	Version int16
	Topics  []TopicPartition // nil means "all partitions on this broker"
}

func (r *DescribeLogDirsRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	byTopic := groupPartitionsByTopic(r.Topics)
	if r.Topics == nil {
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

func (r *DescribeLogDirsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
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
			r.Topics = append(r.Topics, TopicPartition{Topic: topic, Partition: p})
		}
	}
	return nil
}

func (r *DescribeLogDirsRequest) key() int16         { return int16(APIDescribeLogDirs) }
func (r *DescribeLogDirsRequest) version() int16     { return r.Version }
func (r *DescribeLogDirsRequest) setVersion(v int16) { r.Version = v }
func (r *DescribeLogDirsRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *DescribeLogDirsRequest) isFlexible() bool {
	return descriptorFor(APIDescribeLogDirs).isFlexibleAt(r.Version)
}

// LogDirPartitionInfo is one partition's on-disk size within a log
// directory.
type LogDirPartitionInfo struct {
	Partition int32
	Size      int64
	OffsetLag int64
	IsFuture  bool
}

// LogDirDescription is one log directory's error status and the partitions
// it holds.
type LogDirDescription struct {
	Err        KError
	Path       string
	Topics     map[string][]LogDirPartitionInfo
}

// DescribeLogDirsResponse carries the queried broker's log directories.
type DescribeLogDirsResponse struct {
	Version      int16
	ThrottleTime int32
	Results      []LogDirDescription
}

func (r *DescribeLogDirsResponse) encode(pe packetEncoder) error { return nil }

func (r *DescribeLogDirsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	throttle, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.ThrottleTime = throttle

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Results = make([]LogDirDescription, 0, n)
	for i := 0; i < n; i++ {
		var d LogDirDescription
		code, err := pd.getInt16()
		if err != nil {
			return err
		}
		d.Err = KError(code)
		if d.Path, err = getStr(pd, flexible); err != nil {
			return err
		}
		d.Topics = make(map[string][]LogDirPartitionInfo)

		tn, err := getArrayLen(pd, flexible)
		if err != nil {
			return err
		}
		for j := 0; j < tn; j++ {
			topic, err := getStr(pd, flexible)
			if err != nil {
				return err
			}
			pn, err := getArrayLen(pd, flexible)
			if err != nil {
				return err
			}
			var infos []LogDirPartitionInfo
			for k := 0; k < pn; k++ {
				var info LogDirPartitionInfo
				if info.Partition, err = pd.getInt32(); err != nil {
					return err
				}
				if info.Size, err = pd.getInt64(); err != nil {
					return err
				}
				if info.OffsetLag, err = pd.getInt64(); err != nil {
					return err
				}
				if info.IsFuture, err = pd.getBool(); err != nil {
					return err
				}
				if flexible {
					if _, err := decodeTaggedFields(pd); err != nil {
						return err
					}
				}
				infos = append(infos, info)
			}
			if flexible {
				if _, err := decodeTaggedFields(pd); err != nil {
					return err
				}
			}
			d.Topics[topic] = infos
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		}
		r.Results = append(r.Results, d)
	}
	return nil
}

func (r *DescribeLogDirsResponse) key() int16         { return int16(APIDescribeLogDirs) }
func (r *DescribeLogDirsResponse) version() int16     { return r.Version }
func (r *DescribeLogDirsResponse) setVersion(v int16) { r.Version = v }
func (r *DescribeLogDirsResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *DescribeLogDirsResponse) isFlexible() bool {
	return descriptorFor(APIDescribeLogDirs).isFlexibleAt(r.Version)
}
