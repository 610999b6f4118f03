package util

import "strconv"

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Number is the result of ParseNumeric. Exactly one of IsInt and IsFloat is
// set when parsing succeeds.
type Number struct {
	Int        int64
	Float      float64
	IsInt      bool
	IsFloat    bool
	IsNegative bool
}

// Float64 returns the number as a float regardless of how it was written.
func (n Number) Float64() float64 {
	if n.IsInt {
		return float64(n.Int)
	}

	return n.Float
}

// ParseNumeric parses s as an integer (with base prefix) or else as a float.
func ParseNumeric(s string) (n Number, ok bool) {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		n.Int = i
		n.IsInt = true
		n.IsNegative = i < 0
		return n, true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n.Float = f
		n.IsFloat = true
		n.IsNegative = f < 0
		return n, true
	}

	return n, false
}

func Min[T Numeric](x, y T) T {
	if x < y {
		return x
	}
	return y
}
