package stats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// OrientationTally counts sampled reads by orientation.
type OrientationTally map[Orientation]int

// Update updates all counts from another OrientationTally instance.
func (tm OrientationTally) Update(other OrientationTally) {
	for k, v := range other {
		tm[k] += v
	}
}

// Total returns the total number of reads in the OrientationTally
func (tm OrientationTally) Total() (sum int) {
	for _, v := range tm {
		sum += v
	}
	return
}

// Paired returns the number of paired reads in the OrientationTally
func (tm OrientationTally) Paired() int {
	return tm.Total() - tm[Unpaired]
}

// MarshalJSON returns a JSON representation of an OrientationTally, listing all orientations in order.
func (tm OrientationTally) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write([]byte{'{', '\n'})
	l := len(orientations)
	for i, o := range orientations {
		fmt.Fprintf(buf, "\t\"%s\": %v", o, tm[o])
		if i < l-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.Write([]byte{'}', '\n'})
	return buf.Bytes(), nil
}

// UnmarshalJSON parse a JSON representation of an OrientationTally.
func (tm *OrientationTally) UnmarshalJSON(b []byte) (err error) {
	smap, omap := make(map[string]int), OrientationTally{}
	if err = json.Unmarshal(b, &smap); err != nil {
		return
	}
	for key, value := range smap {
		o, ok := ParseOrientation(key)
		if !ok {
			return errors.Errorf("unknown orientation %q", key)
		}
		omap[o] = value
	}
	*tm = omap
	return
}
