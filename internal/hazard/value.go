// Package hazard normalizes raw hazard measurements onto a common [0,1]
// scale and combines them into composite risk scores.
package hazard

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NoDataSentinel is the string raster services return for cells without a
// measurement.
const NoDataSentinel = "NoData"

// Value is an optional hazard measurement or score. The zero value is Missing.
type Value struct {
	v  float64
	ok bool
}

// Present wraps a measured value. NaN and infinities are treated as Missing.
func Present(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// Missing returns the no-data value.
func Missing() Value {
	return Value{}
}

// Get returns the value and whether it is present.
func (v Value) Get() (float64, bool) {
	return v.v, v.ok
}

// IsMissing reports whether no measurement is available.
func (v Value) IsMissing() bool {
	return !v.ok
}

// Or returns the value, or def when missing.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.v
}

// Ptr returns a pointer to the value or nil when missing.
func (v Value) Ptr() *float64 {
	if !v.ok {
		return nil
	}
	f := v.v
	return &f
}

func (v Value) String() string {
	if !v.ok {
		return "missing"
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes a present value as a number and a missing one as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON accepts anything ParseRaw accepts.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ParseRaw(raw)
	return nil
}

// ParseRaw converts a decoded upstream scalar into a Value. nil, the NoData
// sentinel, non-numeric strings and non-finite numbers become Missing.
func ParseRaw(raw any) Value {
	switch r := raw.(type) {
	case nil:
		return Missing()
	case float64:
		return Present(r)
	case float32:
		return Present(float64(r))
	case int:
		return Present(float64(r))
	case int64:
		return Present(float64(r))
	case json.Number:
		f, err := r.Float64()
		if err != nil {
			return Missing()
		}
		return Present(f)
	case string:
		s := strings.TrimSpace(r)
		if s == "" || s == NoDataSentinel {
			return Missing()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Missing()
		}
		return Present(f)
	case Value:
		return r
	default:
		return Missing()
	}
}

// ParseRawList converts a sequence of upstream scalars element by element.
func ParseRawList(raw []any) []Value {
	values := make([]Value, 0, len(raw))
	for _, r := range raw {
		values = append(values, ParseRaw(r))
	}
	return values
}

// FirstPresent returns the first present value, or Missing.
func FirstPresent(values []Value) Value {
	for _, v := range values {
		if !v.IsMissing() {
			return v
		}
	}
	return Missing()
}

// MaxPresent returns the largest present value, or Missing if none.
func MaxPresent(values []Value) Value {
	best := Missing()
	for _, v := range values {
		f, ok := v.Get()
		if !ok {
			continue
		}
		if b, has := best.Get(); !has || f > b {
			best = Present(f)
		}
	}
	return best
}
