// Package token turns small values into opaque, printable tokens and back.
//
// A token is the positional binary encoding of a value, written in basE91.
// The encoding carries no field names or type markers: the declaration order
// of a payload's fields is the contract between encoder and decoder.
// Integers are little-endian at their fixed width (int and uint take eight
// bytes), strings, slices and maps carry a u64 length, pointers a one-byte
// presence marker, and types implementing encoding.BinaryMarshaler, such as
// time.Time, travel as their binary form. Map pairs are ordered by key, so
// equal values always produce equal tokens. Tokens carry no server-side
// state; whatever a token needs to be acted upon travels in it.
//
//	type page struct {
//		Query  string
//		Offset int
//	}
//
//	tok, err := token.Encode(page{Query: "go", Offset: 20})
//	err = token.Decode(tok, &p)
//
// Decoding is strict: a token that ends early, leaves bytes over, or holds an
// invalid boolean, presence marker, UTF-8 string or map key order is
// errs.ErrMalformedToken.
package token

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/napalu/slashopt/errs"
)

// Encode returns the token for v. It fails only for values the encoding
// cannot represent, such as channels, functions or interfaces.
func Encode(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "", errs.ErrInternal.Wrap(fmt.Errorf("%w <nil>", errUnsupportedType))
	}

	var e encoder
	if err := e.value(rv); err != nil {
		return "", errs.ErrInternal.Wrap(err)
	}

	return EncodeBase91(e.buf), nil
}

// MustEncode is like Encode but panics on error.
func MustEncode(v any) string {
	tok, err := Encode(v)
	if err != nil {
		panic(err)
	}

	return tok
}

// Decode stores the value carried by tok in v, which must be a non-nil
// pointer.
func Decode(tok string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errs.ErrNilDestination
	}

	data, err := DecodeBase91(tok)
	if err != nil {
		return err
	}

	d := decoder{data: data}
	if err := d.value(rv.Elem()); err != nil {
		if errors.Is(err, errUnsupportedType) {
			return errs.ErrInternal.Wrap(err)
		}
		return errs.ErrMalformedToken.Wrap(err)
	}
	if len(d.data) > 0 {
		return errs.ErrMalformedToken.Wrap(errTrailingBytes)
	}

	return nil
}

// Valid reports whether tok is canonical basE91 text. Whether its bytes fit a
// payload type is only known once Decode runs.
func Valid(tok string) bool {
	_, err := DecodeBase91(tok)

	return err == nil
}
