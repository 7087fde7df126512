// Package decode implements the Twic lexer and recursive-descent parser:
// it turns Twic source bytes into a twic.Value, or a located DecodeError.
//
// Twic's grammar omits an opening delimiter for maps and reuses ';' to
// close both vectors and maps, so disambiguation depends on lookahead
// (peeking past whitespace for a following ':') and on the value's
// position in the grammar (top-level and map-entry positions allow map
// recognition; vector-element positions do not). That state is threaded
// through parseValue as two booleans rather than a context object,
// following the teacher's practice of passing small enum/bool parameters
// into lexer methods instead of allocating a parser-state struct per call.
package decode

import (
	"context"

	"github.com/kralicky/twic"
)

const defaultMaxDepth = 256

type config struct {
	maxDepth int
}

func defaultConfig() config {
	return config{maxDepth: defaultMaxDepth}
}

// Option configures a Decode/DecodeString/DecodeContext call.
type Option func(*config)

// WithMaxDepth overrides the default maximum container-nesting depth
// (256). Exceeding it produces a NestingTooDeep error instead of
// recursing the Go call stack without bound.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

type decoder struct {
	r        *reader
	ctx      context.Context
	maxDepth int
	depth    int
}

// Decode parses src as a single Twic value. Trailing whitespace after the
// value is permitted; anything else is a TrailingInput error.
func Decode(src []byte, opts ...Option) (twic.Value, error) {
	return DecodeContext(context.Background(), src, opts...)
}

// DecodeString is Decode for a string input.
func DecodeString(s string, opts ...Option) (twic.Value, error) {
	return DecodeContext(context.Background(), []byte(s), opts...)
}

// DecodeContext is Decode with a context checked cooperatively once per
// container entry (vector or map), not per byte, matching the library's
// otherwise-synchronous, non-blocking decode loop: there is nothing to
// block on, so cancellation is a courtesy for callers decoding untrusted,
// possibly very deeply nested input on a goroutine they want to abandon.
func DecodeContext(ctx context.Context, src []byte, opts ...Option) (twic.Value, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	d := &decoder{r: &reader{data: src}, ctx: ctx, maxDepth: cfg.maxDepth}

	d.r.skipWhitespace()
	if d.r.eof() {
		return twic.Value{}, newError(d.r.pos, UnexpectedEnd{At: d.r.pos})
	}
	val, err := d.parseValue(true, true)
	if err != nil {
		return twic.Value{}, err
	}
	d.r.skipWhitespace()
	if !d.r.eof() {
		return twic.Value{}, newError(d.r.pos, TrailingInput{At: d.r.pos})
	}
	return val, nil
}

// parseValue implements the central disambiguation of §4.D: it decides,
// from one character of lookahead (after skipping whitespace), whether
// the value at this site is an empty map, a vector, a quoted string, or
// an atom that must then be classified (and, if mapAllowed and a ':'
// follows it, reinterpreted as the first key of a map instead of a bare
// value).
//
// topLevel is true only for the single call made directly by
// DecodeContext. It controls one narrow case: a value site that begins
// with ';' denotes the empty map and, in every nested position, that ';'
// is left unconsumed for the enclosing vector/map loop to consume as its
// own closing delimiter (the same character is doing double duty as both
// "here is an empty map" and "the container around it is done"). At the
// top level there is no enclosing loop, so DecodeContext needs that one
// character consumed before it checks for trailing input; topLevel=true
// is what causes parseValue to consume it in that case.
func (d *decoder) parseValue(mapAllowed, topLevel bool) (twic.Value, error) {
	d.r.skipWhitespace()
	if d.r.eof() {
		return twic.Value{}, newError(d.r.pos, UnexpectedEnd{At: d.r.pos})
	}
	c, _ := d.r.peekRune()

	switch {
	case c == ';':
		if topLevel {
			d.r.advance(1)
		}
		return twic.NewMap(), nil

	case c == ':':
		return d.parseVector()

	case c == '"':
		s, err := d.readQuotedString()
		if err != nil {
			return twic.Value{}, err
		}
		if mapAllowed && d.peekColonAfterValue() {
			return d.parseMapFromFirstKey(s)
		}
		return twic.NewString(s), nil

	default:
		atomAt := d.r.pos
		atom := d.r.readAtom()
		if len(atom) == 0 {
			return twic.Value{}, newError(d.r.pos, UnexpectedChar{Found: c, At: d.r.pos})
		}
		if mapAllowed && d.peekColonAfterValue() {
			if isReservedWord(atom) {
				return twic.Value{}, newError(atomAt, ReservedWordAsString{Word: atom, At: atomAt})
			}
			return d.parseMapFromFirstKey(atom)
		}
		return classifyAtom(atom, atomAt)
	}
}

// peekColonAfterValue skips whitespace and reports whether the next
// character is ':' (and, if so, consumes it — the caller is always about
// to start building a map entry in that case). It never reports an error
// for running out of input; end-of-input simply means "not a key".
func (d *decoder) peekColonAfterValue() bool {
	d.r.skipWhitespace()
	if d.r.eof() {
		return false
	}
	c, _ := d.r.peekRune()
	if c != ':' {
		return false
	}
	d.r.advance(1)
	return true
}

func (d *decoder) enterContainer() error {
	select {
	case <-d.ctx.Done():
		return newError(d.r.pos, d.ctx.Err())
	default:
	}
	d.depth++
	if d.depth > d.maxDepth {
		return newError(d.r.pos, NestingTooDeep{At: d.r.pos, Limit: d.maxDepth})
	}
	return nil
}

func (d *decoder) leaveContainer() {
	d.depth--
}

// parseVector parses ':' elem (',' elem)* ';' | ':' ';' . The leading ':'
// is consumed here; parseValue only peeked it.
func (d *decoder) parseVector() (twic.Value, error) {
	if err := d.enterContainer(); err != nil {
		return twic.Value{}, err
	}
	defer d.leaveContainer()

	d.r.advance(1) // ':'
	d.r.skipWhitespace()
	if d.r.eof() {
		return twic.Value{}, newError(d.r.pos, UnexpectedEnd{At: d.r.pos})
	}
	if c, _ := d.r.peekRune(); c == ';' {
		d.r.advance(1)
		return twic.NewVector(), nil
	}

	var elems []twic.Value
	for {
		val, err := d.parseValue(false, false)
		if err != nil {
			return twic.Value{}, err
		}
		elems = append(elems, val)

		d.r.skipWhitespace()
		if d.r.eof() {
			return twic.Value{}, newError(d.r.pos, UnexpectedEnd{At: d.r.pos})
		}
		c, _ := d.r.peekRune()
		switch c {
		case ',':
			d.r.advance(1)
			continue
		case ';':
			d.r.advance(1)
			return twic.NewVector(elems...), nil
		default:
			return twic.Value{}, newError(d.r.pos, UnexpectedChar{Found: c, At: d.r.pos})
		}
	}
}

// parseMapFromFirstKey builds a Map whose first key has already been read
// (as either an atom or a quoted string) and whose following ':' has
// already been consumed by the caller. It then parses that key's value
// and loops over further ','-separated "key:value" entries until ';'.
func (d *decoder) parseMapFromFirstKey(firstKey string) (twic.Value, error) {
	if err := d.enterContainer(); err != nil {
		return twic.Value{}, err
	}
	defer d.leaveContainer()

	m := twic.NewMap()
	key := firstKey
	for {
		val, err := d.parseValue(true, false)
		if err != nil {
			return twic.Value{}, err
		}
		_ = m.MapSet(key, val)

		d.r.skipWhitespace()
		if d.r.eof() {
			return twic.Value{}, newError(d.r.pos, UnexpectedEnd{At: d.r.pos})
		}
		c, _ := d.r.peekRune()
		switch c {
		case ';':
			d.r.advance(1)
			return m, nil
		case ',':
			d.r.advance(1)
			nextKey, err := d.readKey()
			if err != nil {
				return twic.Value{}, err
			}
			d.r.skipWhitespace()
			if d.r.eof() {
				return twic.Value{}, newError(d.r.pos, UnexpectedEnd{At: d.r.pos})
			}
			c2, _ := d.r.peekRune()
			if c2 != ':' {
				return twic.Value{}, newError(d.r.pos, UnexpectedChar{Found: c2, At: d.r.pos})
			}
			d.r.advance(1)
			key = nextKey
		default:
			return twic.Value{}, newError(d.r.pos, UnexpectedChar{Found: c, At: d.r.pos})
		}
	}
}

// readKey reads one map key: a quoted string, or an atom that is not one
// of the reserved keywords (those must be quoted to be used as a key, per
// §8's boundary behaviors).
func (d *decoder) readKey() (string, error) {
	d.r.skipWhitespace()
	if d.r.eof() {
		return "", newError(d.r.pos, UnexpectedEnd{At: d.r.pos})
	}
	c, _ := d.r.peekRune()
	if c == '"' {
		return d.readQuotedString()
	}
	if isStructural(c) {
		return "", newError(d.r.pos, UnexpectedChar{Found: c, At: d.r.pos})
	}
	at := d.r.pos
	atom := d.r.readAtom()
	if isReservedWord(atom) {
		return "", newError(at, ReservedWordAsString{Word: atom, At: at})
	}
	return atom, nil
}
