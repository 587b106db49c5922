package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// TimeValueKind discriminates what the provider actually sent for a time field.
type TimeValueKind int

const (
	// TimeEmpty means the field was absent, null, or an empty string.
	TimeEmpty TimeValueKind = iota
	// TimeUnix means the field was a JSON integer, interpreted as a unix timestamp.
	TimeUnix
	// TimeText means the field was anything else; it passes through unmodified.
	TimeText
)

// TimeValue is one departure or arrival time as delivered by the provider:
// a unix timestamp, an already formatted string, or nothing at all. The
// decision is made once here at the decoding boundary; only a JSON integer
// counts as a timestamp, a numeric-looking string stays a string.
type TimeValue struct {
	Kind TimeValueKind
	Unix int64
	Text string
}

// NewUnixTime builds a timestamp value.
func NewUnixTime(ts int64) TimeValue {
	return TimeValue{Kind: TimeUnix, Unix: ts}
}

// NewTextTime builds a pass-through string value.
func NewTextTime(s string) TimeValue {
	if s == "" {
		return TimeValue{}
	}
	return TimeValue{Kind: TimeText, Text: s}
}

// IsZero reports whether no usable value was provided.
func (v TimeValue) IsZero() bool {
	return v.Kind == TimeEmpty
}

// UnmarshalJSON decodes the heterogeneous provider representation.
func (v *TimeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = TimeValue{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewTextTime(s)
		return nil
	}

	if ts, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*v = NewUnixTime(ts)
		return nil
	}

	// Non-integer number or any other token: keep the literal text.
	*v = NewTextTime(string(data))
	return nil
}

// MarshalJSON mirrors the provider representation.
func (v TimeValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case TimeUnix:
		return []byte(strconv.FormatInt(v.Unix, 10)), nil
	case TimeText:
		return json.Marshal(v.Text)
	default:
		return []byte(`""`), nil
	}
}
