package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Layouts accepted when a timestamp arrives as a raw string.
var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FlexTime is a timestamp field that may arrive as a native datetime, an
// RFC3339/date string, or an epoch-milliseconds number. Malformed values decode
// to the invalid state instead of failing the whole document.
type FlexTime struct {
	Time  time.Time
	Valid bool
}

// UnmarshalBSONValue decodes the stored representation into a canonical UTC instant.
func (t *FlexTime) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	*t = FlexTime{}
	rv := bson.RawValue{Type: bt, Value: data}

	switch bt {
	case bsontype.DateTime:
		if v, ok := rv.TimeOK(); ok {
			t.Time, t.Valid = v.UTC(), true
		}
	case bsontype.String:
		if s, ok := rv.StringValueOK(); ok {
			t.setFromString(s)
		}
	case bsontype.Int64:
		if v, ok := rv.Int64OK(); ok {
			t.setFromMillis(v)
		}
	case bsontype.Int32:
		if v, ok := rv.Int32OK(); ok {
			t.setFromMillis(int64(v))
		}
	case bsontype.Double:
		if v, ok := rv.DoubleOK(); ok {
			t.setFromMillis(int64(v))
		}
	}
	return nil
}

// UnmarshalJSON mirrors the BSON behaviour for JSON payloads.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	*t = FlexTime{}
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err == nil {
			t.setFromString(str)
		}
		return nil
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		t.setFromMillis(int64(ms))
	}
	return nil
}

// MarshalJSON renders a valid instant as RFC3339 and an invalid one as null.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

func (t *FlexTime) setFromString(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	for _, layout := range flexTimeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = v.UTC(), true
			return
		}
	}
	// Some clients store the epoch millis as a string.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.setFromMillis(ms)
	}
}

func (t *FlexTime) setFromMillis(ms int64) {
	if ms <= 0 {
		return
	}
	t.Time, t.Valid = time.UnixMilli(ms).UTC(), true
}

// FlexInt is an integer field that may arrive as an int, a double, or a numeric
// string. Malformed values decode to the invalid state.
type FlexInt struct {
	Value int
	Valid bool
}

// UnmarshalBSONValue decodes any numeric-ish representation into an int.
func (i *FlexInt) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	*i = FlexInt{}
	rv := bson.RawValue{Type: bt, Value: data}

	switch bt {
	case bsontype.Int32:
		if v, ok := rv.Int32OK(); ok {
			i.Value, i.Valid = int(v), true
		}
	case bsontype.Int64:
		if v, ok := rv.Int64OK(); ok {
			i.Value, i.Valid = int(v), true
		}
	case bsontype.Double:
		if v, ok := rv.DoubleOK(); ok {
			i.Value, i.Valid = int(v), true
		}
	case bsontype.String:
		if s, ok := rv.StringValueOK(); ok {
			i.setFromString(s)
		}
	}
	return nil
}

// UnmarshalJSON mirrors the BSON behaviour for JSON payloads.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	*i = FlexInt{}
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err == nil {
			i.setFromString(str)
		}
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		i.Value, i.Valid = int(v), true
	}
	return nil
}

// MarshalJSON renders an invalid value as null.
func (i FlexInt) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

func (i *FlexInt) setFromString(s string) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		i.Value, i.Valid = v, true
	}
}

// OrDefault returns the parsed value, falling back to def when the field was
// missing, malformed, or negative.
func (i FlexInt) OrDefault(def int) int {
	if !i.Valid || i.Value < 0 {
		return def
	}
	return i.Value
}
