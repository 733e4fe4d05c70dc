package linkquality

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrThresholdOutOfRange is returned when a requested RSSI threshold does not
// fit in a signed byte.
var ErrThresholdOutOfRange = errors.New("rssi threshold out of range")

// Sentinel bounds of every ThresholdSet.
const (
	ThresholdMin int8 = math.MinInt8
	ThresholdMax int8 = math.MaxInt8
)

// ThresholdSet is a strictly ascending list of RSSI boundaries whose first
// element is ThresholdMin and last is ThresholdMax.
type ThresholdSet []int8

// DeriveThresholds builds a ThresholdSet from a requester's raw list. Values
// outside the signed byte range abort the derivation; they are never
// clamped.
func DeriveThresholds(raw []int) (ThresholdSet, error) {
	out := make([]int8, 0, len(raw)+2)
	for _, v := range raw {
		if v < math.MinInt8 || v > math.MaxInt8 {
			return nil, fmt.Errorf("%w: %d", ErrThresholdOutOfRange, v)
		}
		out = append(out, int8(v))
	}
	out = append(out, ThresholdMax, ThresholdMin)
	slices.Sort(out)
	return ThresholdSet(slices.Compact(out)), nil
}

// Bracket returns the range [lo, hi) of the set that contains rssi.
// It reports false if rssi is at or above the top sentinel or the set is
// empty.
func (s ThresholdSet) Bracket(rssi int) (lo, hi int8, ok bool) {
	for i := 1; i < len(s); i++ {
		if rssi < int(s[i]) {
			return s[i-1], s[i], true
		}
	}
	return 0, 0, false
}

// Ints returns the set as plain ints.
func (s ThresholdSet) Ints() []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}
