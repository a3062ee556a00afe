package kadmin

// Helpers in this file dispatch to the compact or non-compact wire form
// based on a flexible flag, so each per-RPC file (metadata.go and friends)
// reads like the teacher's own request/response files instead of
// reimplementing the compact/non-compact choice at every call site.

func getStr(pd packetDecoder, flexible bool) (string, error) {
	if flexible {
		return pd.getCompactString()
	}
	return pd.getString()
}

func putStr(pe packetEncoder, s string, flexible bool) error {
	if flexible {
		return pe.putCompactString(s)
	}
	return pe.putString(s)
}

func getNullableStr(pd packetDecoder, flexible bool) (*string, error) {
	if flexible {
		s, err := pd.getCompactString()
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return &s, nil
	}
	return pd.getNullableString()
}

func putNullableStr(pe packetEncoder, s *string, flexible bool) error {
	if flexible {
		if s == nil {
			return pe.putCompactString("")
		}
		return pe.putCompactString(*s)
	}
	return pe.putNullableString(s)
}

func getArrayLen(pd packetDecoder, flexible bool) (int, error) {
	if flexible {
		return pd.getCompactArrayLength()
	}
	return pd.getArrayLength()
}

func putArrayLen(pe packetEncoder, n int, flexible bool) error {
	if flexible {
		pe.putCompactArrayLength(n)
		return nil
	}
	return pe.putArrayLength(n)
}

func getStringArray(pd packetDecoder, flexible bool) ([]string, error) {
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := getStr(pd, flexible)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// decodeStringArray treats a -1/absent length as "all" (nil), distinct from
// a present-but-empty array, matching Metadata's "nil topics means all
// topics" and OffsetFetch's "nil partitions means all partitions" forms.
func decodeStringArray(pd packetDecoder, flexible bool) ([]string, error) {
	if flexible {
		n, err := pd.getUVarint()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
		out := make([]string, 0, n-1)
		for i := uint64(0); i < n-1; i++ {
			s, err := pd.getCompactString()
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	n, err := pd.getInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	out := make([]string, 0, n)
	for i := int32(0); i < n; i++ {
		s, err := pd.getString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func encodeStringArray(pe packetEncoder, topics []string, flexible bool) error {
	if flexible {
		if topics == nil {
			pe.putUVarint(0)
			return nil
		}
		pe.putCompactArrayLength(len(topics))
		for _, t := range topics {
			if err := pe.putCompactString(t); err != nil {
				return err
			}
		}
		return nil
	}
	if topics == nil {
		pe.putInt32(-1)
		return nil
	}
	if err := pe.putArrayLength(len(topics)); err != nil {
		return err
	}
	for _, t := range topics {
		if err := pe.putString(t); err != nil {
			return err
		}
	}
	return nil
}

func getInt32Array(pd packetDecoder, flexible bool) ([]int32, error) {
	n, err := getArrayLen(pd, flexible)
	if err != nil {
		return nil, err
	}
	out := make([]int32, 0, n)
	for i := 0; i < n; i++ {
		v, err := pd.getInt32()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func putInt32Array(pe packetEncoder, vals []int32, flexible bool) error {
	if err := putArrayLen(pe, len(vals), flexible); err != nil {
		return err
	}
	for _, v := range vals {
		pe.putInt32(v)
	}
	return nil
}
