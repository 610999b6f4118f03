package token

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napalu/slashopt/errs"
)

type page struct {
	Query  string
	Offset int
}

type vote struct {
	Poll    string
	Choice  int64
	Anon    bool
	Payload []byte
	Tags    []string
}

type settings struct {
	Limit  *int32
	Flags  map[string]bool
	Pair   [2]uint16
	Ratio  float32
	Delta  int8
	cached string
	Note   string `token:"-"`
}

// le64 is n as eight little-endian bytes.
func le64(n byte) []byte {
	return []byte{n, 0, 0, 0, 0, 0, 0, 0}
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func TestEncode(t *testing.T) {
	tok, err := Encode(page{Query: "go", Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, "CAAAAAAA#T.JFAAAAAAAA", tok)

	data, err := DecodeBase91(tok)
	require.NoError(t, err)
	assert.Equal(t, concat(le64(2), []byte("go"), le64(20)), data)

	again, err := Encode(page{Query: "go", Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, tok, again)

	var got page
	require.NoError(t, Decode(tok, &got))
	assert.Equal(t, page{Query: "go", Offset: 20}, got)

	_, err = Encode(make(chan int))
	assert.ErrorIs(t, err, errs.ErrInternal)
	_, err = Encode(nil)
	assert.ErrorIs(t, err, errs.ErrInternal)
	_, err = Encode(struct{ Any any }{Any: 1})
	assert.ErrorIs(t, err, errs.ErrInternal)
	assert.Panics(t, func() { MustEncode(func() {}) })
}

func TestEncode_Layout(t *testing.T) {
	limit := int32(-2)
	tok := MustEncode(settings{
		Limit:  &limit,
		Flags:  map[string]bool{"b": false, "a": true},
		Pair:   [2]uint16{1, 0x0102},
		Ratio:  1,
		Delta:  -1,
		cached: "skipped",
		Note:   "skipped",
	})

	data, err := DecodeBase91(tok)
	require.NoError(t, err)
	assert.Equal(t, concat(
		[]byte{1, 0xfe, 0xff, 0xff, 0xff},
		le64(2), le64(1), []byte("a"), []byte{1}, le64(1), []byte("b"), []byte{0},
		[]byte{1, 0, 2, 1},
		[]byte{0, 0, 0x80, 0x3f},
		[]byte{0xff},
	), data)

	var got settings
	require.NoError(t, Decode(tok, &got))
	require.NotNil(t, got.Limit)
	assert.Equal(t, int32(-2), *got.Limit)
	assert.Equal(t, map[string]bool{"a": true, "b": false}, got.Flags)
	assert.Equal(t, [2]uint16{1, 0x0102}, got.Pair)
	assert.Equal(t, float32(1), got.Ratio)
	assert.Equal(t, int8(-1), got.Delta)
	assert.Empty(t, got.cached)
	assert.Empty(t, got.Note)

	var empty settings
	require.NoError(t, Decode(MustEncode(settings{}), &empty))
	assert.Nil(t, empty.Limit)
	assert.Nil(t, empty.Flags)
}

func TestEncode_Deterministic(t *testing.T) {
	a := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}
	b := map[string]int{"mid": 3, "zeta": 1, "alpha": 2}

	assert.Equal(t, MustEncode(a), MustEncode(b))
}

func TestDecode_Strict(t *testing.T) {
	valid := concat(le64(2), []byte("go"), le64(20))

	type flag struct{ On bool }
	type ref struct{ P *int }
	type small map[uint8]int8

	tests := []struct {
		name string
		tok  string
		dst  any
	}{
		{"empty", "", &page{}},
		{"outside alphabet", "FH3 hOA", &page{}},
		{"backslash", `FH3\hOA`, &page{}},
		{"trailing bytes", EncodeBase91(append(valid, 0)), &page{}},
		{"ends early", EncodeBase91(valid[:len(valid)-1]), &page{}},
		{"length beyond input", EncodeBase91([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}), &page{}},
		{"extra fields", MustEncode(struct {
			A string
			B int
			C bool
		}{A: "go", B: 1, C: true}), &page{}},
		{"missing fields", MustEncode(page{Query: "go"}), &vote{}},
		{"invalid boolean", EncodeBase91([]byte{2}), &flag{}},
		{"invalid presence marker", EncodeBase91([]byte{2}), &ref{}},
		{"invalid utf-8", EncodeBase91(concat(le64(1), []byte{0xff}, le64(0))), &page{}},
		{"map keys out of order", EncodeBase91(concat(le64(2), []byte{2, 0, 1, 0})), &small{}},
		{"duplicate map key", EncodeBase91(concat(le64(2), []byte{1, 0, 1, 0})), &small{}},
		{"wrong shape", MustEncode("text"), &page{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(tt.tok, tt.dst)
			assert.ErrorIs(t, err, errs.ErrMalformedToken)
			assert.Equal(t, errs.ClassUser, errs.ClassOf(err))
		})
	}

	var p page
	tok := EncodeBase91(valid)
	assert.ErrorIs(t, Decode(tok, p), errs.ErrNilDestination)
	assert.ErrorIs(t, Decode(tok, (*page)(nil)), errs.ErrNilDestination)

	var anything any
	assert.ErrorIs(t, Decode(tok, &anything), errs.ErrInternal)
}

func TestDecode_BinaryMarshaler(t *testing.T) {
	type reminder struct {
		At time.Time
	}

	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	var got reminder
	require.NoError(t, Decode(MustEncode(reminder{At: at}), &got))
	assert.True(t, at.Equal(got.At))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(MustEncode(page{Query: "q", Offset: 1})))
	assert.True(t, Valid(""))
	assert.False(t, Valid("B"))
	assert.False(t, Valid("no spaces"))
}

func TestRoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(v)) == v", prop.ForAll(
		func(poll string, choice int64, anon bool, payload []byte, tags []string) bool {
			in := vote{Poll: poll, Choice: choice, Anon: anon, Payload: payload, Tags: tags}
			tok, err := Encode(in)
			if err != nil {
				return false
			}

			var out vote
			if err := Decode(tok, &out); err != nil {
				return false
			}

			return out.Poll == in.Poll && out.Choice == in.Choice && out.Anon == in.Anon &&
				bytes.Equal(out.Payload, in.Payload) && len(out.Tags) == len(in.Tags) &&
				strings.Join(out.Tags, "\x00") == strings.Join(in.Tags, "\x00")
		},
		gen.AlphaString(),
		gen.Int64(),
		gen.Bool(),
		gen.SliceOf(gen.UInt8()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("narrow integers keep their sign", prop.ForAll(
		func(a int8, b int16, c int32) bool {
			type narrow struct {
				A int8
				B int16
				C int32
			}
			var out narrow
			err := Decode(MustEncode(narrow{A: a, B: b, C: c}), &out)
			return err == nil && out == narrow{A: a, B: b, C: c}
		},
		gen.Int8(),
		gen.Int16(),
		gen.Int32(),
	))

	properties.Property("tokens use only the basE91 alphabet", prop.ForAll(
		func(poll string, choice int64) bool {
			tok := MustEncode(vote{Poll: poll, Choice: choice})
			for i := 0; i < len(tok); i++ {
				if !strings.ContainsRune(base91Alphabet, rune(tok[i])) {
					return false
				}
			}
			return !strings.ContainsAny(tok, " -\\'")
		},
		gen.AlphaString(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
