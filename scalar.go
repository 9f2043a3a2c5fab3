package jsondiff

import (
	"math"
	"time"
)

func (c *comparator) scalar(kind ScalarKind, source, target interface{}) Difference {
	if c.stats != nil {
		c.stats.Changes++
	}
	return &ScalarDifference{Kind: kind, Source: source, Target: target}
}

// numbers compares integers exactly. once either side is a float both are
// compared as floats within the configured epsilon
func (c *comparator) numbers(source, target interface{}) Difference {
	sn, _ := toNumber(source)
	tn, _ := toNumber(target)

	var equal bool
	if sn.class != numFloat && tn.class != numFloat {
		equal = integersEqual(sn, tn)
	} else {
		equal = approxEqual(sn.float(), tn.float(), c.cfg.FloatEpsilon)
	}

	if equal {
		return nil
	}
	return c.scalar(ScalarNumber, source, target)
}

func integersEqual(a, b number) bool {
	switch {
	case a.class == numUint && b.class == numUint:
		return a.u == b.u
	case a.class == numInt && b.class == numInt:
		return a.i == b.i
	case a.class == numInt:
		return a.i >= 0 && uint64(a.i) == b.u
	default:
		return b.i >= 0 && uint64(b.i) == a.u
	}
}

// approxEqual is a relative comparison: the allowed difference grows with the
// magnitude of the larger operand, so one epsilon fits values of any scale.
// infinities only equal themselves and NaN equals nothing
func approxEqual(a, b, epsilon float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= largest*epsilon
}

// strings compares timestamps within the configured tolerance when both
// strings are RFC 3339 timestamps, and literally otherwise
func (c *comparator) strings(source, target string) Difference {
	if tol := c.cfg.TimeTolerance; tol > 0 {
		if st, ok := parseTimestamp(source); ok {
			if tt, ok := parseTimestamp(target); ok {
				if delta := st.Sub(tt); delta <= tol && delta >= -tol {
					return nil
				}
				return c.scalar(ScalarString, source, target)
			}
		}
	}

	if source == target {
		return nil
	}
	return c.scalar(ScalarString, source, target)
}

// parseTimestamp accepts RFC3339 with optional fractional seconds
func parseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, true
		}
		return time.Time{}, false
	}
	return t, true
}
