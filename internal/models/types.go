package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// JsonNullString wraps sql.NullString so that NULL marshals as JSON null.
type JsonNullString struct {
	sql.NullString
}

// MarshalJSON implements json.Marshaler.
func (jns JsonNullString) MarshalJSON() ([]byte, error) {
	if !jns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(jns.String)
}

// UnmarshalJSON implements json.Unmarshaler.
func (jns *JsonNullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		jns.String, jns.Valid = "", false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		jns.String, jns.Valid = "", false
		return fmt.Errorf("JsonNullString: expected JSON string or null, got '%s': %w", string(data), err)
	}
	jns.String, jns.Valid = s, true
	return nil
}

// JsonNullFloat64 wraps sql.NullFloat64 so that NULL marshals as JSON null.
type JsonNullFloat64 struct {
	sql.NullFloat64
}

func (jnf JsonNullFloat64) MarshalJSON() ([]byte, error) {
	if !jnf.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(jnf.Float64)
}

func (jnf *JsonNullFloat64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		jnf.Float64, jnf.Valid = 0, false
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		jnf.Float64, jnf.Valid = 0, false
		return fmt.Errorf("JsonNullFloat64: expected JSON number or null, got '%s': %w", string(data), err)
	}
	jnf.Float64, jnf.Valid = f, true
	return nil
}

// JsonNullInt64 wraps sql.NullInt64 so that NULL marshals as JSON null.
type JsonNullInt64 struct {
	sql.NullInt64
}

func (jni JsonNullInt64) MarshalJSON() ([]byte, error) {
	if !jni.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(jni.Int64)
}

// JsonNullTime wraps sql.NullTime so that NULL marshals as JSON null and
// valid values as RFC 3339.
type JsonNullTime struct {
	sql.NullTime
}

func (jnt JsonNullTime) MarshalJSON() ([]byte, error) {
	if !jnt.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(jnt.Time.Format(time.RFC3339Nano))
}

// NullString, NullFloat and friends build valid values; used by tests and fixtures.
func NullString(s string) JsonNullString {
	return JsonNullString{sql.NullString{String: s, Valid: true}}
}

func NullFloat(f float64) JsonNullFloat64 {
	return JsonNullFloat64{sql.NullFloat64{Float64: f, Valid: true}}
}

func NullInt(i int64) JsonNullInt64 {
	return JsonNullInt64{sql.NullInt64{Int64: i, Valid: true}}
}

func NullTime(t time.Time) JsonNullTime {
	return JsonNullTime{sql.NullTime{Time: t, Valid: true}}
}
