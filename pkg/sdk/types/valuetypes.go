package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// HashType holds free form JSON objects as map[string]any
type HashType struct{}

func (HashType) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case map[string]string:
		m := make(map[string]any, len(v))
		for key, val := range v {
			m[key] = val
		}
		return m, nil
	case string:
		m := map[string]any{}
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, NewCoercionError(value, Hash).because(err.Error())
		}
		if m == nil {
			return nil, nil
		}
		return m, nil
	default:
		return nil, NewCoercionError(value, Hash)
	}
}

func (HashType) Serialize(value any) (any, error) {
	return value, nil
}

// UnixTimestampType is transmitted as epoch seconds and held as a UTC time.Time
type UnixTimestampType struct{}

func (UnixTimestampType) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v, nil
	case string:
		seconds, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, NewCoercionError(value, UnixTimestamp).because("not a number of seconds")
		}
		return time.Unix(seconds, 0).UTC(), nil
	}

	if seconds, ok := asFloat(value); ok {
		if !fitsInt64(seconds) {
			return nil, NewCoercionError(value, UnixTimestamp).because("out of range")
		}
		return time.Unix(int64(seconds), 0).UTC(), nil
	}

	return nil, NewCoercionError(value, UnixTimestamp)
}

func (UnixTimestampType) Serialize(value any) (any, error) {
	if t, ok := value.(time.Time); ok {
		return t.Unix(), nil
	}
	return value, nil
}

const DateLayout string = "2006-01-02"

// DateType is transmitted as an ISO-8601 date and held as a time.Time at UTC midnight
type DateType struct{}

func (DateType) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return midnight(v), nil
	case string:
		if t, err := time.Parse(DateLayout, v); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return midnight(t), nil
		}
		return nil, NewCoercionError(value, Date).because("not an ISO-8601 date")
	default:
		return nil, NewCoercionError(value, Date)
	}
}

func (DateType) Serialize(value any) (any, error) {
	if t, ok := value.(time.Time); ok {
		return t.Format(DateLayout), nil
	}
	return value, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StringType formats scalars as strings and rejects structured values
type StringType struct{}

func (StringType) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return nil, NewCoercionError(value, String)
	}
}

func (StringType) Serialize(value any) (any, error) {
	return value, nil
}

// IntegerType holds whole numbers as int64
type IntegerType struct{}

func (IntegerType) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int64:
		return v, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, NewCoercionError(value, Integer).because("not an integer")
		}
		return i, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, NewCoercionError(value, Integer).because("out of range")
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, NewCoercionError(value, Integer).because("out of range")
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	}

	f, ok := asFloat(value)
	if !ok {
		return nil, NewCoercionError(value, Integer)
	}

	if !fitsInt64(f) {
		return nil, NewCoercionError(value, Integer).because("out of range")
	}

	if f != math.Trunc(f) {
		return nil, NewCoercionError(value, Integer).because("not a whole number")
	}

	return int64(f), nil
}

func (IntegerType) Serialize(value any) (any, error) {
	return value, nil
}

// FloatType holds numbers as float64
type FloatType struct{}

func (FloatType) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, NewCoercionError(value, Float).because("not a number")
		}
		return finite(value, f)
	}

	if f, ok := asFloat(value); ok {
		return finite(value, f)
	}

	return nil, NewCoercionError(value, Float)
}

func finite(value any, f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, NewCoercionError(value, Float).because("not a finite number")
	}
	return f, nil
}

func (FloatType) Serialize(value any) (any, error) {
	return value, nil
}

// BooleanType only accepts literal true and false
type BooleanType struct{}

func (BooleanType) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	default:
		return nil, NewCoercionError(value, Boolean).because("must be either true or false")
	}
}

func (BooleanType) Serialize(value any) (any, error) {
	return value, nil
}

// fitsInt64 reports whether f is finite and within the range of an int64.
// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
func fitsInt64(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f < math.MaxInt64 && f >= math.MinInt64
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
