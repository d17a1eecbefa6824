// Package stats provides the sampled read statistics of an alignment file and
// the insert-size models derived from them.
package stats

import (
	"encoding/json"
	"math"
	"strconv"
)

type fraction float64

// decimals is the number of decimal places kept when reporting a fraction.
const decimals = 4

func (m fraction) rounded() float64 {
	scale := math.Pow10(decimals)
	return math.Round(float64(m)*scale) / scale
}

func (m fraction) String() string {
	return strconv.FormatFloat(m.rounded(), 'f', -1, 64)
}

// MarshalJSON encodes undefined fractions as null.
func (m fraction) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(m)) || math.IsInf(float64(m), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(m.rounded())
}

// UnmarshalJSON decodes null as an undefined fraction.
func (m *fraction) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = fraction(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = fraction(v)
	return nil
}
