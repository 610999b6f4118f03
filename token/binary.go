package token

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"unicode/utf8"
)

// TagName is the struct tag read by the codec. Fields tagged `token:"-"` are
// left out of the encoding.
const TagName = "token"

// maxZeroWidthLen bounds the length of sequences whose elements encode to no
// bytes at all, so a short token cannot ask for a huge allocation.
const maxZeroWidthLen = 1 << 16

var (
	errUnsupportedType = errors.New("unsupported type")
	errShortInput      = errors.New("unexpected end of input")
	errTrailingBytes   = errors.New("trailing bytes")
	errInvalidBool     = errors.New("invalid boolean")
	errInvalidPresence = errors.New("invalid presence marker")
	errInvalidUTF8     = errors.New("invalid UTF-8 in string")
	errLengthTooLarge  = errors.New("length exceeds input")
	errMapKeyOrder     = errors.New("map keys not in ascending order")
)

var (
	binaryMarshalerType   = reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem()
	binaryUnmarshalerType = reflect.TypeOf((*encoding.BinaryUnmarshaler)(nil)).Elem()
)

// usesBinaryForm reports whether t travels as the byte string of its
// MarshalBinary method, as time.Time does.
func usesBinaryForm(t reflect.Type) bool {
	return t.Kind() != reflect.Ptr && t.Implements(binaryMarshalerType) &&
		reflect.PointerTo(t).Implements(binaryUnmarshalerType)
}

type encoder struct {
	buf []byte
}

func (e *encoder) uint(n uint64, width int) {
	switch width {
	case 1:
		e.buf = append(e.buf, byte(n))
	case 2:
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(n))
	case 4:
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(n))
	default:
		e.buf = binary.LittleEndian.AppendUint64(e.buf, n)
	}
}

func (e *encoder) bytes(b []byte) {
	e.uint(uint64(len(b)), 8)
	e.buf = append(e.buf, b...)
}

func (e *encoder) value(v reflect.Value) error {
	t := v.Type()
	if usesBinaryForm(t) {
		data, err := v.Interface().(encoding.BinaryMarshaler).MarshalBinary()
		if err != nil {
			return err
		}
		e.bytes(data)
		return nil
	}

	switch t.Kind() {
	case reflect.Bool:
		if v.Bool() {
			e.uint(1, 1)
		} else {
			e.uint(0, 1)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.uint(uint64(v.Int()), width(t))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.uint(v.Uint(), width(t))
	case reflect.Float32:
		e.uint(uint64(math.Float32bits(float32(v.Float()))), 4)
	case reflect.Float64:
		e.uint(math.Float64bits(v.Float()), 8)
	case reflect.String:
		e.bytes([]byte(v.String()))
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			e.bytes(v.Bytes())
			return nil
		}
		e.uint(uint64(v.Len()), 8)
		return e.elements(v)
	case reflect.Array:
		return e.elements(v)
	case reflect.Map:
		return e.mapping(v)
	case reflect.Ptr:
		if v.IsNil() {
			e.uint(0, 1)
			return nil
		}
		e.uint(1, 1)
		return e.value(v.Elem())
	case reflect.Struct:
		for _, i := range fieldsOf(t) {
			if err := e.value(v.Field(i)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w %s", errUnsupportedType, t)
	}

	return nil
}

func (e *encoder) elements(v reflect.Value) error {
	for i := 0; i < v.Len(); i++ {
		if err := e.value(v.Index(i)); err != nil {
			return err
		}
	}

	return nil
}

// mapping writes the pairs of v ordered by the encoded bytes of their keys.
func (e *encoder) mapping(v reflect.Value) error {
	type pair struct {
		key   []byte
		value reflect.Value
	}

	pairs := make([]pair, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		var k encoder
		if err := k.value(iter.Key()); err != nil {
			return err
		}
		pairs = append(pairs, pair{key: k.buf, value: iter.Value()})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].key, pairs[j].key) < 0
	})

	e.uint(uint64(len(pairs)), 8)
	for _, p := range pairs {
		e.buf = append(e.buf, p.key...)
		if err := e.value(p.value); err != nil {
			return err
		}
	}

	return nil
}

type decoder struct {
	data []byte
}

func (d *decoder) take(n int) ([]byte, error) {
	if len(d.data) < n {
		return nil, errShortInput
	}
	b := d.data[:n]
	d.data = d.data[n:]

	return b, nil
}

func (d *decoder) uint(width int) (uint64, error) {
	b, err := d.take(width)
	if err != nil {
		return 0, err
	}

	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

// length reads a sequence length and checks that the rest of the input can
// hold that many items of at least size bytes each.
func (d *decoder) length(size int) (int, error) {
	n, err := d.uint(8)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		if n > maxZeroWidthLen {
			return 0, errLengthTooLarge
		}
	} else if n > uint64(len(d.data)/size) {
		return 0, errLengthTooLarge
	}

	return int(n), nil
}

func (d *decoder) bytes() ([]byte, error) {
	n, err := d.length(1)
	if err != nil {
		return nil, err
	}

	return d.take(n)
}

func (d *decoder) marker() (bool, error) {
	b, err := d.uint(1)
	if err != nil {
		return false, err
	}
	if b > 1 {
		return false, errInvalidBool
	}

	return b == 1, nil
}

func (d *decoder) value(v reflect.Value) error {
	t := v.Type()
	if usesBinaryForm(t) {
		data, err := d.bytes()
		if err != nil {
			return err
		}
		return v.Addr().Interface().(encoding.BinaryUnmarshaler).UnmarshalBinary(data)
	}

	switch t.Kind() {
	case reflect.Bool:
		b, err := d.marker()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := d.uint(width(t))
		if err != nil {
			return err
		}
		v.SetInt(signExtend(n, width(t)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := d.uint(width(t))
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32:
		n, err := d.uint(4)
		if err != nil {
			return err
		}
		v.SetFloat(float64(math.Float32frombits(uint32(n))))
	case reflect.Float64:
		n, err := d.uint(8)
		if err != nil {
			return err
		}
		v.SetFloat(math.Float64frombits(n))
	case reflect.String:
		b, err := d.bytes()
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return errInvalidUTF8
		}
		v.SetString(string(b))
	case reflect.Slice:
		return d.slice(v)
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := d.value(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		return d.mapping(v)
	case reflect.Ptr:
		b, err := d.uint(1)
		if err != nil {
			return err
		}
		switch b {
		case 0:
			v.SetZero()
			return nil
		case 1:
			elem := reflect.New(t.Elem())
			if err := d.value(elem.Elem()); err != nil {
				return err
			}
			v.Set(elem)
		default:
			return errInvalidPresence
		}
	case reflect.Struct:
		for _, i := range fieldsOf(t) {
			if err := d.value(v.Field(i)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w %s", errUnsupportedType, t)
	}

	return nil
}

// slice decodes a length-prefixed sequence. An empty sequence decodes as a
// nil slice.
func (d *decoder) slice(v reflect.Value) error {
	t := v.Type()
	if t.Elem().Kind() == reflect.Uint8 {
		b, err := d.bytes()
		if err != nil {
			return err
		}
		if len(b) == 0 {
			v.SetZero()
			return nil
		}
		out := reflect.MakeSlice(t, len(b), len(b))
		for i, c := range b {
			out.Index(i).SetUint(uint64(c))
		}
		v.Set(out)
		return nil
	}

	n, err := d.length(minSize(t.Elem()))
	if err != nil {
		return err
	}
	if n == 0 {
		v.SetZero()
		return nil
	}

	out := reflect.MakeSlice(t, n, n)
	for i := 0; i < n; i++ {
		if err := d.value(out.Index(i)); err != nil {
			return err
		}
	}
	v.Set(out)

	return nil
}

// mapping decodes pairs whose encoded keys must be strictly ascending, the
// order the encoder writes them in.
func (d *decoder) mapping(v reflect.Value) error {
	t := v.Type()
	n, err := d.length(minSize(t.Key()) + minSize(t.Elem()))
	if err != nil {
		return err
	}
	if n == 0 {
		v.SetZero()
		return nil
	}

	out := reflect.MakeMapWithSize(t, n)
	var previous []byte
	for i := 0; i < n; i++ {
		start := d.data
		key := reflect.New(t.Key()).Elem()
		if err := d.value(key); err != nil {
			return err
		}
		encoded := start[:len(start)-len(d.data)]
		if i > 0 && bytes.Compare(previous, encoded) >= 0 {
			return errMapKeyOrder
		}
		previous = encoded

		elem := reflect.New(t.Elem()).Elem()
		if err := d.value(elem); err != nil {
			return err
		}
		out.SetMapIndex(key, elem)
	}
	v.Set(out)

	return nil
}

// fieldsOf lists the indexes of the exported fields of t that take part in
// the encoding, in declaration order.
func fieldsOf(t reflect.Type) []int {
	var out []int
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get(TagName) == "-" {
			continue
		}
		out = append(out, i)
	}

	return out
}

// width is the number of bytes of an integer kind; int and uint always take
// eight.
func width(t reflect.Type) int {
	switch t.Kind() {
	case reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32:
		return 4
	default:
		return 8
	}
}

func signExtend(n uint64, width int) int64 {
	switch width {
	case 1:
		return int64(int8(n))
	case 2:
		return int64(int16(n))
	case 4:
		return int64(int32(n))
	default:
		return int64(n)
	}
}

// minSize is the fewest bytes any value of t encodes to.
func minSize(t reflect.Type) int {
	if usesBinaryForm(t) {
		return 8
	}

	switch t.Kind() {
	case reflect.Bool, reflect.Ptr:
		return 1
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return width(t)
	case reflect.Float32:
		return 4
	case reflect.Float64, reflect.String, reflect.Slice, reflect.Map:
		return 8
	case reflect.Array:
		return t.Len() * minSize(t.Elem())
	case reflect.Struct:
		n := 0
		for _, i := range fieldsOf(t) {
			n += minSize(t.Field(i).Type)
		}
		return n
	default:
		return 0
	}
}
