// Package encode implements Twic's canonical serializer: it renders a
// twic.Value back to Twic source text that decodes to an equal Value.
// Two shapes are the exception, because the decoder does not read map
// entries inside a vector and leaves a nested empty map's ';' for the
// enclosing container: a map held as a vector element, and an empty map
// held as a map entry's value, encode to text that decoding rejects.
//
// The encoder writes directly into a buffer rather than concatenating
// intermediate strings, the same buffer-accumulation discipline the
// teacher's lexer uses for string literals (see twic/decode's
// readQuotedString). It never returns an error for a well-formed Value;
// EncodeTo can only fail on the destination io.Writer's own I/O error.
package encode

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/kralicky/twic"
)

// Encode renders v as canonical Twic source text.
func Encode(v twic.Value) []byte {
	var buf bytes.Buffer
	writeValue(&buf, v)
	return buf.Bytes()
}

// EncodeString is Encode returning a string.
func EncodeString(v twic.Value) string {
	return string(Encode(v))
}

// EncodeTo writes v's canonical Twic encoding to w. The only error it can
// return is one propagated from w.Write.
func EncodeTo(w io.Writer, v twic.Value) error {
	buf := Encode(v)
	_, err := w.Write(buf)
	return err
}

func writeValue(buf *bytes.Buffer, v twic.Value) {
	switch v.Kind() {
	case twic.KindNull:
		buf.WriteString("null")
	case twic.KindBool:
		b, _ := v.AsBool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case twic.KindNumber:
		n, _ := v.AsNumber()
		writeNumber(buf, n)
	case twic.KindString:
		s, _ := v.AsString()
		writeString(buf, s)
	case twic.KindVector:
		writeVector(buf, v)
	case twic.KindMap:
		writeMap(buf, v)
	}
}

func writeNumber(buf *bytes.Buffer, n twic.Number) {
	if i, ok := n.Int(); ok {
		buf.Write(strconv.AppendInt(nil, i, 10))
		return
	}
	f, _ := n.Float()
	switch {
	case math.IsNaN(f):
		buf.WriteString("nan")
		return
	case math.IsInf(f, 1):
		buf.WriteString("inf")
		return
	case math.IsInf(f, -1):
		buf.WriteString("-inf")
		return
	}
	out := strconv.AppendFloat(nil, f, 'g', -1, 64)
	out = ensureFloatShape(out)
	buf.Write(out)
}

// ensureFloatShape guarantees the %g-formatted bytes contain a '.' or an
// 'e', so the atom reparses as Number::Float rather than Number::Integer
// (strconv's 'g' format omits the point for values like 1e+20 and may
// also omit it for small integral floats such as 5, rendering "5").
func ensureFloatShape(b []byte) []byte {
	for _, c := range b {
		if c == '.' || c == 'e' || c == 'E' || c == 'n' || c == 'N' { // nan/inf already handled above
			return b
		}
	}
	return append(b, '.', '0')
}

func writeVector(buf *bytes.Buffer, v twic.Value) {
	buf.WriteByte(':')
	xs, _ := v.AsVector()
	for i, elem := range xs {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeValue(buf, elem)
	}
	buf.WriteByte(';')
}

func writeMap(buf *bytes.Buffer, v twic.Value) {
	first := true
	v.MapIterate(func(key string, val twic.Value) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeString(buf, key)
		buf.WriteByte(':')
		writeValue(buf, val)
		return true
	})
	buf.WriteByte(';')
}

var reservedWords = map[string]bool{
	"null":  true,
	"true":  true,
	"false": true,
	"nan":   true,
	"inf":   true,
}

// canUnquote reports whether s may be emitted as an unquoted string per
// §4.E: non-empty, free of whitespace and structural characters, not
// starting with a digit/sign/quote, and not a reserved keyword.
func canUnquote(s string) bool {
	if s == "" || reservedWords[s] {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if (first >= '0' && first <= '9') || first == '+' || first == '-' || first == '"' {
		return false
	}
	for _, c := range s {
		if unicode.IsSpace(c) || c == ':' || c == ';' || c == ',' || c == '"' {
			return false
		}
	}
	return true
}

func writeString(buf *bytes.Buffer, s string) {
	if canUnquote(s) {
		buf.WriteString(s)
		return
	}
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			buf.WriteString(`\"`)
			i++
		case c == '\\':
			buf.WriteString(`\\`)
			i++
		case c == '\n':
			buf.WriteString(`\n`)
			i++
		case c == '\r':
			buf.WriteString(`\r`)
			i++
		case c == '\t':
			buf.WriteString(`\t`)
			i++
		case c == 0x08:
			buf.WriteString(`\b`)
			i++
		case c == 0x0C:
			buf.WriteString(`\f`)
			i++
		case c < 0x20:
			buf.WriteString(`\x`)
			buf.WriteString(hexByte(c))
			i++
		case c < 0x80:
			buf.WriteByte(c)
			i++
		default:
			r, sz := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && sz <= 1 {
				// Not a valid UTF-8 lead byte at this position: the
				// string contains a raw byte introduced by a \xXX
				// escape during decode. Emit it the same way.
				buf.WriteString(`\x`)
				buf.WriteString(hexByte(c))
				i++
				continue
			}
			buf.WriteString(s[i : i+sz])
			i += sz
		}
	}
	buf.WriteByte('"')
}

const hexDigits = "0123456789abcdef"

func hexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0xF]})
}
