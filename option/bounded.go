package option

import (
	"math"
	"unicode/utf8"

	"github.com/napalu/slashopt/errs"
)

// IntRange is an inclusive integer range.
type IntRange struct {
	Min, Max int64
}

// NewIntRange rejects inverted ranges and ranges outside the platform's safe
// integer range.
func NewIntRange(min, max int64) (IntRange, error) {
	if min > max || min < MinInteger || max > MaxInteger {
		return IntRange{}, errs.ErrInvalidBounds.WithArgs(min, max)
	}

	return IntRange{Min: min, Max: max}, nil
}

func (r IntRange) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// FloatRange is an inclusive floating point range.
type FloatRange struct {
	Min, Max float64
}

func NewFloatRange(min, max float64) (FloatRange, error) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min > max {
		return FloatRange{}, errs.ErrInvalidBounds.WithArgs(min, max)
	}

	return FloatRange{Min: min, Max: max}, nil
}

func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// LengthRange is an inclusive range of string lengths counted in runes.
type LengthRange struct {
	Min, Max int
}

func NewLengthRange(min, max int) (LengthRange, error) {
	if min < 0 || max > MaxStringLength || min > max {
		return LengthRange{}, errs.ErrInvalidBounds.WithArgs(min, max)
	}

	return LengthRange{Min: min, Max: max}, nil
}

func (r LengthRange) Contains(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= r.Min && n <= r.Max
}

// BoundedInt is an integer known to lie within its range. The zero value is
// not valid; use NewBoundedInt.
type BoundedInt struct {
	value int64
	rng   IntRange
}

// NewBoundedInt is the only place the range check for bounded integers is
// made.
func NewBoundedInt(v, min, max int64) (BoundedInt, error) {
	rng, err := NewIntRange(min, max)
	if err != nil {
		return BoundedInt{}, err
	}
	if !rng.Contains(v) {
		return BoundedInt{}, errs.ErrOutOfBounds.WithArgs(v, min, max)
	}

	return BoundedInt{value: v, rng: rng}, nil
}

func (b BoundedInt) Value() int64    { return b.value }
func (b BoundedInt) Range() IntRange { return b.rng }

// BoundedFloat is a number known to lie within its range.
type BoundedFloat struct {
	value float64
	rng   FloatRange
}

// NewBoundedFloat rejects NaN along with every value outside [min, max].
func NewBoundedFloat(v, min, max float64) (BoundedFloat, error) {
	rng, err := NewFloatRange(min, max)
	if err != nil {
		return BoundedFloat{}, err
	}
	if !rng.Contains(v) {
		return BoundedFloat{}, errs.ErrOutOfBounds.WithArgs(v, min, max)
	}

	return BoundedFloat{value: v, rng: rng}, nil
}

func (b BoundedFloat) Value() float64    { return b.value }
func (b BoundedFloat) Range() FloatRange { return b.rng }

// BoundedString is a string whose rune count lies within its range.
type BoundedString struct {
	value string
	rng   LengthRange
}

func NewBoundedString(v string, minLen, maxLen int) (BoundedString, error) {
	rng, err := NewLengthRange(minLen, maxLen)
	if err != nil {
		return BoundedString{}, err
	}
	if !rng.Contains(v) {
		return BoundedString{}, errs.ErrLengthOutOfBounds.WithArgs(utf8.RuneCountInString(v), minLen, maxLen)
	}

	return BoundedString{value: v, rng: rng}, nil
}

func (b BoundedString) Value() string      { return b.value }
func (b BoundedString) Range() LengthRange { return b.rng }
func (b BoundedString) String() string     { return b.value }
