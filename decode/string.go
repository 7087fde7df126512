package decode

import "unicode/utf8"

// readQuotedString consumes a quoted string starting at the current '"'
// and returns its decoded payload. The accumulator is a []byte, not a
// strings.Builder, because a \xXX escape can append a byte with no valid
// rune interpretation: the resulting Go string is used purely as an
// opaque byte container past that point, per the data model's chosen
// byte-sequence-with-UTF-8-origin representation.
//
// Grounded on the teacher's readStringLiteral: a tight loop that reads one
// rune (or the start of an escape) at a time and accumulates into a
// buffer, generalized from protobuf's escape set (octal/hex/short-unicode/
// long-unicode) to Twic's JSON-flavored set plus the byte-oriented \xXX.
func (d *decoder) readQuotedString() (string, error) {
	r := d.r
	r.advance(1) // opening quote
	var buf []byte
	for {
		if r.eof() {
			return "", newError(r.pos, UnexpectedEnd{At: r.pos})
		}
		c, sz := r.peekRune()
		switch {
		case c == '"':
			r.advance(1)
			return string(buf), nil
		case c == '\\':
			escAt := r.pos
			r.advance(1)
			if r.eof() {
				return "", newError(r.pos, UnexpectedEnd{At: r.pos})
			}
			b, err := d.readEscape(escAt)
			if err != nil {
				return "", err
			}
			buf = append(buf, b...)
		case c < 0x20:
			return "", newError(r.pos, UnexpectedChar{Found: c, At: r.pos})
		default:
			buf = append(buf, r.data[r.pos:r.pos+sz]...)
			r.advance(sz)
		}
	}
}

// readEscape consumes the character(s) after a '\' (the backslash itself
// has already been consumed) and returns the bytes it contributes to the
// string being built. escAt is the offset of the '\' itself, used to
// locate errors at the start of the offending escape.
func (d *decoder) readEscape(escAt int) ([]byte, error) {
	r := d.r
	c, sz := r.peekRune()
	switch c {
	case '"':
		r.advance(sz)
		return []byte{'"'}, nil
	case '\\':
		r.advance(sz)
		return []byte{'\\'}, nil
	case '/':
		r.advance(sz)
		return []byte{'/'}, nil
	case 'b':
		r.advance(sz)
		return []byte{0x08}, nil
	case 'f':
		r.advance(sz)
		return []byte{0x0C}, nil
	case 'n':
		r.advance(sz)
		return []byte{'\n'}, nil
	case 'r':
		r.advance(sz)
		return []byte{'\r'}, nil
	case 't':
		r.advance(sz)
		return []byte{'\t'}, nil
	case 'u':
		r.advance(sz)
		return d.readUnicodeEscape(escAt)
	case 'x':
		r.advance(sz)
		return d.readByteEscape(escAt)
	default:
		return nil, newError(escAt, InvalidEscape{At: escAt})
	}
}

// readByteEscape consumes the two hex digits of a \xXX escape and returns
// the single raw byte they encode. The byte is appended directly to the
// accumulator without any UTF-8 validation, which is precisely how a Twic
// string can stop being valid UTF-8.
func (d *decoder) readByteEscape(escAt int) ([]byte, error) {
	v, ok := d.r.readFixedHex(2)
	if !ok {
		return nil, newError(escAt, InvalidHex{At: escAt})
	}
	return []byte{byte(v)}, nil
}

// readUnicodeEscape consumes either a short \uXXXX escape (with surrogate
// pairing) or a \u{X...} escape and returns the resulting scalar's UTF-8
// encoding.
func (d *decoder) readUnicodeEscape(escAt int) ([]byte, error) {
	r := d.r
	if !r.eof() {
		if c, sz := r.peekRune(); c == '{' {
			r.advance(sz)
			return d.readBracedUnicodeEscape(escAt)
		}
	}

	hi, ok := r.readFixedHex(4)
	if !ok {
		return nil, newError(escAt, InvalidHex{At: escAt})
	}
	if hi >= 0xDC00 && hi <= 0xDFFF {
		// unpaired low surrogate
		return nil, newError(escAt, InvalidHex{At: escAt})
	}
	if hi < 0xD800 || hi > 0xDBFF {
		return utf8.AppendRune(nil, rune(hi)), nil
	}
	// high surrogate: a \uXXXX low surrogate must immediately follow
	if !r.hasPrefix("\\u") {
		return nil, newError(escAt, InvalidHex{At: escAt})
	}
	r.advance(2)
	lo, ok := r.readFixedHex(4)
	if !ok || lo < 0xDC00 || lo > 0xDFFF {
		return nil, newError(escAt, InvalidHex{At: escAt})
	}
	combined := 0x10000 + (hi-0xD800)<<10 + (lo - 0xDC00)
	return utf8.AppendRune(nil, rune(combined)), nil
}

func (d *decoder) readBracedUnicodeEscape(escAt int) ([]byte, error) {
	r := d.r
	start := r.pos
	for {
		if r.eof() {
			return nil, newError(escAt, InvalidHex{At: escAt})
		}
		c, sz := r.peekRune()
		if c == '}' {
			break
		}
		if !isHexDigit(c) {
			return nil, newError(escAt, InvalidHex{At: escAt})
		}
		r.advance(sz)
	}
	digits := string(r.data[start:r.pos])
	if len(digits) < 1 || len(digits) > 8 {
		return nil, newError(escAt, InvalidHex{At: escAt})
	}
	r.advance(1) // consume '}'

	var val uint32
	for i := 0; i < len(digits); i++ {
		val = val*16 + uint32(hexVal(rune(digits[i])))
	}
	if val > 0x10FFFF || (val >= 0xD800 && val <= 0xDFFF) {
		return nil, newError(escAt, InvalidHex{At: escAt})
	}
	return utf8.AppendRune(nil, rune(val)), nil
}

func hexVal(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}
