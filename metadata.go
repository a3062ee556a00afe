package kadmin

// MetadataRequest asks for cluster/topic metadata and, incidentally, the
// current controller id — the only way this core discovers the controller,
// per SPEC_FULL.md §4.2.
type MetadataRequest struct {
	Version                int16
	Topics                 []string // nil means "all topics"
	AllowAutoTopicCreation bool
}

func (r *MetadataRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := encodeStringArray(pe, r.Topics, flexible); err != nil {
		return err
	}
	if r.version() >= 4 {
		pe.putBool(r.AllowAutoTopicCreation)
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *MetadataRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	topics, err := decodeStringArray(pd, r.isFlexible())
	if err != nil {
		return err
	}
	r.Topics = topics
	if version >= 4 {
		v, err := pd.getBool()
		if err != nil {
			return err
		}
		r.AllowAutoTopicCreation = v
	}
	return nil
}

func (r *MetadataRequest) key() int16          { return int16(APIMetadata) }
func (r *MetadataRequest) version() int16      { return r.Version }
func (r *MetadataRequest) setVersion(v int16)  { r.Version = v }
func (r *MetadataRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *MetadataRequest) isFlexible() bool { return descriptorFor(APIMetadata).isFlexibleAt(r.Version) }

// MetadataResponse carries broker/topic metadata and the controller id.
type MetadataResponse struct {
	Version      int16
	Brokers      []Node
	ControllerID int32
	Topics       []TopicMetadata
}

func (r *MetadataResponse) encode(pe packetEncoder) error { return nil } // responses are never re-encoded by this core

func (r *MetadataResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()

	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Brokers = make([]Node, 0, n)
	for i := 0; i < n; i++ {
		var node Node
		if node.ID, err = pd.getInt32(); err != nil {
			return err
		}
		if node.Host, err = getStr(pd, flexible); err != nil {
			return err
		}
		if node.Port, err = pd.getInt32(); err != nil {
			return err
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return err
			}
		} else if version >= 1 {
			if _, err := getNullableStr(pd, false); err != nil { // rack, unused
				return err
			}
		}
		r.Brokers = append(r.Brokers, node)
	}

	if version >= 2 {
		if _, err := getNullableStr(pd, flexible); err != nil { // cluster id, unused
			return err
		}
	}
	if r.ControllerID, err = pd.getInt32(); err != nil {
		return err
	}

	tn, err := getArrayLen(pd, flexible)
	if err != nil {
		return err
	}
	r.Topics = make([]TopicMetadata, 0, tn)
	for i := 0; i < tn; i++ {
		tm, err := decodeTopicMetadata(pd, version, flexible)
		if err != nil {
			return err
		}
		r.Topics = append(r.Topics, tm)
	}
	return nil
}

func decodeTopicMetadata(pd packetDecoder, version int16, flexible bool) (TopicMetadata, error) {
	var tm TopicMetadata
	code, err := pd.getInt16()
	if err != nil {
		return tm, err
	}
	tm.Err = KError(code)

	topic, err := getStr(pd, flexible)
	if err != nil {
		return tm, err
	}
	tm.Topic = topic

	if version >= 1 {
		if _, err := pd.getBool(); err != nil { // is_internal, unused
			return tm, err
		}
	}

	pn, err := getArrayLen(pd, flexible)
	if err != nil {
		return tm, err
	}
	tm.Partitions = make([]PartitionMetadata, 0, pn)
	for i := 0; i < pn; i++ {
		pcode, err := pd.getInt16()
		if err != nil {
			return tm, err
		}
		partition, err := pd.getInt32()
		if err != nil {
			return tm, err
		}
		leader, err := pd.getInt32()
		if err != nil {
			return tm, err
		}
		if version >= 7 {
			if _, err := pd.getInt32(); err != nil { // leader_epoch, unused
				return tm, err
			}
		}
		replicas, err := getInt32Array(pd, flexible)
		if err != nil {
			return tm, err
		}
		if _, err := getInt32Array(pd, flexible); err != nil { // isr, unused
			return tm, err
		}
		if version >= 5 {
			if _, err := getInt32Array(pd, flexible); err != nil { // offline_replicas, unused
				return tm, err
			}
		}
		if flexible {
			if _, err := decodeTaggedFields(pd); err != nil {
				return tm, err
			}
		}
		tm.Partitions = append(tm.Partitions, PartitionMetadata{
			Partition: partition,
			Leader:    leader,
			Replicas:  replicas,
			Err:       KError(pcode),
		})
	}
	if flexible {
		if _, err := decodeTaggedFields(pd); err != nil {
			return tm, err
		}
	}
	return tm, nil
}

func (r *MetadataResponse) key() int16         { return int16(APIMetadata) }
func (r *MetadataResponse) version() int16     { return r.Version }
func (r *MetadataResponse) setVersion(v int16) { r.Version = v }
func (r *MetadataResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *MetadataResponse) isFlexible() bool { return descriptorFor(APIMetadata).isFlexibleAt(r.Version) }
