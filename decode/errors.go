package decode

import "fmt"

// DecodeError wraps every error the decoder can return with the byte
// offset into the input at which it occurred, following the same
// position-carrying-wrapper shape as reporter.ErrorWithPos in the
// teacher's error model: callers that only want a human-readable message
// and an offset can use Error()/Offset directly, and callers that want to
// switch on the specific cause can errors.As the Unwrap()'d value into one
// of the concrete types below.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("twic: decode error at offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newError(at int, err error) *DecodeError {
	return &DecodeError{Offset: at, Err: err}
}

// UnexpectedChar indicates a character appeared where the grammar did not
// allow it.
type UnexpectedChar struct {
	Found rune
	At    int
}

func (e UnexpectedChar) Error() string {
	return fmt.Sprintf("unexpected character %q", e.Found)
}

// UnexpectedEnd indicates the input ended where a value, or more of a
// value, was still expected.
type UnexpectedEnd struct {
	At int
}

func (e UnexpectedEnd) Error() string {
	return "unexpected end of input"
}

// InvalidEscape indicates an unrecognized or malformed escape sequence
// inside a quoted string.
type InvalidEscape struct {
	At int
}

func (e InvalidEscape) Error() string {
	return "invalid escape sequence"
}

// InvalidHex indicates a \x or \u escape did not have the required number
// of valid hex digits, a \u{...} escape's braces were malformed or its
// value was above U+10FFFF or a surrogate, or a \uXXXX surrogate was not
// part of a high/low pair.
type InvalidHex struct {
	At int
}

func (e InvalidHex) Error() string {
	return "invalid hex digits in escape"
}

// InvalidNumber indicates an atom matched the decimal or hex number
// grammar's opening shape but strconv rejected it as malformed (this
// should not normally occur given the grammar's own character classes,
// but strconv is the final authority on what it will parse).
type InvalidNumber struct {
	Atom string
	At   int
}

func (e InvalidNumber) Error() string {
	return fmt.Sprintf("invalid number literal %q", e.Atom)
}

// InvalidAtom indicates an atom began with a digit, '+', or '-' (so it was
// required to parse as a number) but did not match the number grammar, and
// so cannot be accepted as an unquoted string either.
type InvalidAtom struct {
	Atom string
	At   int
}

func (e InvalidAtom) Error() string {
	return fmt.Sprintf("invalid atom %q", e.Atom)
}

// TrailingInput indicates non-whitespace characters followed the one
// top-level value the decoder accepted.
type TrailingInput struct {
	At int
}

func (e TrailingInput) Error() string {
	return "trailing input after value"
}

// IntegerOverflow indicates a decimal or hex integer atom's magnitude does
// not fit in 64 bits.
type IntegerOverflow struct {
	Atom string
	At   int
}

func (e IntegerOverflow) Error() string {
	return fmt.Sprintf("integer literal %q overflows 64 bits", e.Atom)
}

// ReservedWordAsString indicates a reserved keyword (null, true, false,
// nan, inf) was used where only a map key string was syntactically valid,
// without being quoted.
type ReservedWordAsString struct {
	Word string
	At   int
}

func (e ReservedWordAsString) Error() string {
	return fmt.Sprintf("reserved word %q must be quoted to use as a string", e.Word)
}

// NestingTooDeep indicates the input's vector/map nesting exceeded the
// decoder's configured maximum depth.
type NestingTooDeep struct {
	At    int
	Limit int
}

func (e NestingTooDeep) Error() string {
	return fmt.Sprintf("container nesting exceeds limit of %d", e.Limit)
}
