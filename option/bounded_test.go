package option

import (
	"errors"
	"math"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napalu/slashopt/errs"
)

func TestBoundedInt_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	ordered := func(a, b int64) (int64, int64) {
		if a > b {
			return b, a
		}
		return a, b
	}

	properties.Property("inclusive boundaries are accepted", prop.ForAll(
		func(a, b int64) bool {
			min, max := ordered(a, b)
			lo, errLo := NewBoundedInt(min, min, max)
			hi, errHi := NewBoundedInt(max, min, max)
			return errLo == nil && errHi == nil && lo.Value() == min && hi.Value() == max
		},
		gen.Int64Range(MinInteger, MaxInteger),
		gen.Int64Range(MinInteger, MaxInteger),
	))

	properties.Property("values outside the range are rejected", prop.ForAll(
		func(a, b int64, below bool) bool {
			min, max := ordered(a, b)
			v := max + 1
			if below {
				v = min - 1
			}
			_, err := NewBoundedInt(v, min, max)
			return errors.Is(err, errs.ErrOutOfBounds)
		},
		gen.Int64Range(MinInteger, MaxInteger),
		gen.Int64Range(MinInteger, MaxInteger),
		gen.Bool(),
	))

	properties.Property("the resolved value equals the wire value", prop.ForAll(
		func(v int64) bool {
			got, err := MustBoundedInteger(-1000, 1000).Resolve(Present(IntegerValue(v)))
			inRange := v >= -1000 && v <= 1000
			if !inRange {
				return err != nil
			}
			return err == nil && got.(BoundedInt).Value() == v
		},
		gen.Int64Range(-2000, 2000),
	))

	properties.TestingRun(t)
}

func TestBoundedFloat_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("contains exactly [min, max]", prop.ForAll(
		func(a, b, v float64) bool {
			min, max := math.Min(a, b), math.Max(a, b)
			_, err := NewBoundedFloat(v, min, max)
			return (err == nil) == (v >= min && v <= max)
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-2e6, 2e6),
	))

	properties.TestingRun(t)
}

func TestBoundedString_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("length is counted in runes", prop.ForAll(
		func(s string, minLen, span int) bool {
			maxLen := minLen + span
			n := len([]rune(s))
			_, err := NewBoundedString(s, minLen, maxLen)
			return (err == nil) == (n >= minLen && n <= maxLen)
		},
		gen.UnicodeString(unicode.Han),
		gen.IntRange(0, 20),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

func TestBoundedConstructors(t *testing.T) {
	tests := []struct {
		name    string
		build   func() error
		wantErr error
	}{
		{"int inverted", func() error { _, err := NewBoundedInt(0, 5, 1); return err }, errs.ErrInvalidBounds},
		{"int above safe range", func() error { _, err := NewBoundedInt(0, 0, MaxInteger+1); return err }, errs.ErrInvalidBounds},
		{"int below safe range", func() error { _, err := NewBoundedInt(0, MinInteger-1, 0); return err }, errs.ErrInvalidBounds},
		{"float NaN value", func() error { _, err := NewBoundedFloat(math.NaN(), 0, 1); return err }, errs.ErrOutOfBounds},
		{"float NaN bound", func() error { _, err := NewBoundedFloat(0, math.NaN(), 1); return err }, errs.ErrInvalidBounds},
		{"float infinite bound", func() error { _, err := NewBoundedFloat(0, 0, math.Inf(1)); return err }, errs.ErrInvalidBounds},
		{"string negative", func() error { _, err := NewBoundedString("", -1, 3); return err }, errs.ErrInvalidBounds},
		{"string too long limit", func() error { _, err := NewBoundedString("", 0, MaxStringLength+1); return err }, errs.ErrInvalidBounds},
		{"string short", func() error { _, err := NewBoundedString("a", 2, 3); return err }, errs.ErrLengthOutOfBounds},
		{"type inverted", func() error { _, err := NewBoundedInteger(10, 1); return err }, errs.ErrInvalidBounds},
		{"number type inverted", func() error { _, err := NewBoundedNumber(1, 0); return err }, errs.ErrInvalidBounds},
		{"string type limit", func() error { _, err := NewBoundedLength(0, 6001); return err }, errs.ErrInvalidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.build(), tt.wantErr)
		})
	}

	assert.Panics(t, func() { MustBoundedInteger(2, 1) })

	b, err := NewBoundedInt(MaxInteger, MinInteger, MaxInteger)
	require.NoError(t, err)
	assert.Equal(t, IntRange{Min: MinInteger, Max: MaxInteger}, b.Range())

	s, err := NewBoundedString("日本語", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, "日本語", s.String())
	assert.Equal(t, LengthRange{Min: 3, Max: 3}, s.Range())

	_, err = NewBoundedInt(11, 1, 10)
	require.Error(t, err)
	assert.Equal(t, "11 is not between 1 and 10", err.Error())
}
