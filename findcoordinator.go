package kadmin

// FindCoordinatorRequest resolves the coordinator broker for a consumer
// group (KeyType 0) or transactional id (KeyType 1). This core only ever
// asks about consumer groups.
type FindCoordinatorRequest struct {
	Version int16
	Key     string
	KeyType int8
}

func (r *FindCoordinatorRequest) encode(pe packetEncoder) error {
	flexible := r.isFlexible()
	if err := putStr(pe, r.Key, flexible); err != nil {
		return err
	}
	if r.Version >= 1 {
		pe.putInt8(r.KeyType)
	}
	if flexible {
		pe.putUVarint(0)
	}
	return nil
}

func (r *FindCoordinatorRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()
	key, err := getStr(pd, flexible)
	if err != nil {
		return err
	}
	r.Key = key
	if version >= 1 {
		kt, err := pd.getInt8()
		if err != nil {
			return err
		}
		r.KeyType = kt
	}
	return nil
}

func (r *FindCoordinatorRequest) key() int16          { return int16(APIFindCoordinator) }
func (r *FindCoordinatorRequest) version() int16      { return r.Version }
func (r *FindCoordinatorRequest) setVersion(v int16)  { r.Version = v }
func (r *FindCoordinatorRequest) headerVersion() int16 {
	if r.isFlexible() {
		return 2
	}
	return 1
}
func (r *FindCoordinatorRequest) isFlexible() bool {
	return descriptorFor(APIFindCoordinator).isFlexibleAt(r.Version)
}

// FindCoordinatorResponse names the resolved coordinator broker.
type FindCoordinatorResponse struct {
	Version      int16
	ErrorCode    KError
	ErrorMessage *string
	NodeID       int32
	Host         string
	Port         int32
}

func (r *FindCoordinatorResponse) encode(pe packetEncoder) error { return nil }

func (r *FindCoordinatorResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	flexible := r.isFlexible()

	if version >= 1 {
		if _, err := pd.getInt32(); err != nil { // throttle_time_ms, unused
			return err
		}
	}
	code, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.ErrorCode = KError(code)

	if version >= 1 {
		msg, err := getNullableStr(pd, flexible)
		if err != nil {
			return err
		}
		r.ErrorMessage = msg
	}

	nodeID, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.NodeID = nodeID

	host, err := getStr(pd, flexible)
	if err != nil {
		return err
	}
	r.Host = host

	port, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.Port = port

	return nil
}

func (r *FindCoordinatorResponse) key() int16         { return int16(APIFindCoordinator) }
func (r *FindCoordinatorResponse) version() int16     { return r.Version }
func (r *FindCoordinatorResponse) setVersion(v int16) { r.Version = v }
func (r *FindCoordinatorResponse) headerVersion() int16 {
	if r.isFlexible() {
		return 1
	}
	return 0
}
func (r *FindCoordinatorResponse) isFlexible() bool {
	return descriptorFor(APIFindCoordinator).isFlexibleAt(r.Version)
}
