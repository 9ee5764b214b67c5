package value

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the defined encodings spec §3 requires for String<->bytes
// conversions ("a defined encoding used for byte conversions").
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
	Latin1  Encoding = "latin1"
)

func encodingFor(e Encoding) encoding.Encoding {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case Latin1:
		return charmap.ISO8859_1
	default:
		return encoding.Nop
	}
}

// Bytes renders a String value's contents in the given encoding. Non-String
// values are first coerced via AsString.
func (v Value) Bytes(e Encoding) ([]byte, error) {
	s := v.AsString()
	if e == UTF8 || e == "" {
		return []byte(s), nil
	}
	return encodingFor(e).NewEncoder().Bytes([]byte(s))
}

// NewStringFromBytes decodes b under the given encoding into a String
// value.
func NewStringFromBytes(b []byte, e Encoding) (Value, error) {
	if e == UTF8 || e == "" {
		return NewString(string(b)), nil
	}
	decoded, err := encodingFor(e).NewDecoder().Bytes(b)
	if err != nil {
		return NewNull(), err
	}
	return NewString(string(decoded)), nil
}
