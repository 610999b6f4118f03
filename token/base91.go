package token

import (
	"strings"

	"github.com/napalu/slashopt/errs"
)

// Encoding is a basE91 encoding. Every 13 or 14 input bits become two output
// characters, so tokens grow by roughly 23% over the binary payload.
type Encoding struct {
	encode    [91]byte
	decodeMap [256]int16
}

const base91Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	"!#$%&()*+,./:;<=>?@[]^_`{|}~\""

// StdEncoding uses the printable ASCII alphabet without space, hyphen, backslash
// and apostrophe.
var StdEncoding = NewEncoding(base91Alphabet)

// NewEncoding returns an Encoding for a 91 character alphabet of distinct
// single-byte characters. It panics otherwise.
func NewEncoding(alphabet string) *Encoding {
	if len(alphabet) != 91 {
		panic("token: basE91 alphabet must be 91 bytes long")
	}

	e := &Encoding{}
	for i := range e.decodeMap {
		e.decodeMap[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if e.decodeMap[c] != -1 {
			panic("token: basE91 alphabet contains a repeated character")
		}
		e.encode[i] = c
		e.decodeMap[c] = int16(i)
	}

	return e
}

// EncodeToString returns the basE91 encoding of src.
func (e *Encoding) EncodeToString(src []byte) string {
	var sb strings.Builder
	sb.Grow(len(src)*16/13 + 2)

	var queue uint32
	var bits uint
	for _, b := range src {
		queue |= uint32(b) << bits
		bits += 8
		if bits > 13 {
			v := queue & 8191
			if v > 88 {
				queue >>= 13
				bits -= 13
			} else {
				v = queue & 16383
				queue >>= 14
				bits -= 14
			}
			sb.WriteByte(e.encode[v%91])
			sb.WriteByte(e.encode[v/91])
		}
	}

	if bits > 0 {
		sb.WriteByte(e.encode[queue%91])
		if bits > 7 || queue > 90 {
			sb.WriteByte(e.encode[queue/91])
		}
	}

	return sb.String()
}

// DecodeString returns the bytes encoded by s. Characters outside the alphabet
// and encodings this package would never produce are rejected with
// errs.ErrMalformedToken.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*14/16+1)

	var queue uint32
	var bits uint
	pending := -1
	for i := 0; i < len(s); i++ {
		d := e.decodeMap[s[i]]
		if d < 0 {
			return nil, errs.ErrMalformedToken
		}
		if pending < 0 {
			pending = int(d)
			continue
		}

		v := uint32(pending) + uint32(d)*91
		pending = -1
		queue |= v << bits
		if v&8191 > 88 {
			bits += 13
		} else {
			bits += 14
		}
		for bits > 7 {
			out = append(out, byte(queue))
			queue >>= 8
			bits -= 8
		}
	}

	if pending >= 0 {
		out = append(out, byte(queue|uint32(pending)<<bits))
	}

	// distinct strings may decode to the same bytes; only the canonical
	// one is a valid token
	if e.EncodeToString(out) != s {
		return nil, errs.ErrMalformedToken
	}

	return out, nil
}

// EncodeBase91 encodes src with StdEncoding.
func EncodeBase91(src []byte) string {
	return StdEncoding.EncodeToString(src)
}

// DecodeBase91 decodes s with StdEncoding.
func DecodeBase91(s string) ([]byte, error) {
	return StdEncoding.DecodeString(s)
}
