package align

import (
	"encoding/json"
	"math"
	"strconv"
)

// CoerceStep converts a logged scalar into an integer step id. Floats must
// be whole numbers; numeric strings are accepted because cached tables read
// values back as text.
func CoerceStep(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, false
		}
		return int64(x), true
	case float32:
		return CoerceStep(float64(x))
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		if f, err := x.Float64(); err == nil {
			return CoerceStep(f)
		}
		return 0, false
	case string:
		if i, err := strconv.ParseInt(x, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return CoerceStep(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

// CoerceFloat converts a logged scalar into a float64 metric value.
func CoerceFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f, true
		}
		return 0, false
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
