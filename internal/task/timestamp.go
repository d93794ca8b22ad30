package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the timestamp layout written to the task file.
const Layout = "2006-01-02T15:04:05.000000"

// localLayout parses Layout with any number of fractional digits, or none.
const localLayout = "2006-01-02T15:04:05"

// Timestamp is a point in time stored with microsecond precision.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the precision the task file keeps.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Round(0).Truncate(time.Microsecond)}
}

// ParseTimestamp parses s as RFC 3339 or as a zone-less local time.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewTimestamp(t), nil
	}
	t, err := time.ParseInLocation(localLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return NewTimestamp(t), nil
}

// String formats the timestamp in Layout.
func (ts Timestamp) String() string {
	return ts.Local().Format(Layout)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
