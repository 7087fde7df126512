package decode

import (
	"errors"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/kralicky/twic"
)

var reservedWords = map[string]bool{
	"null":  true,
	"true":  true,
	"false": true,
	"nan":   true,
	"inf":   true,
}

func isReservedWord(atom string) bool {
	return reservedWords[atom]
}

// classifyAtom applies the §Atoms priority order to a maximal atom already
// read by the lexer: exact keywords, then hex integer, then decimal
// number, then (failing all of those) unquoted string — with the
// first-character exclusion that rejects a digit/sign-led atom that did
// not parse as a number, rather than silently accepting it as a string.
func classifyAtom(atom string, at int) (twic.Value, error) {
	switch atom {
	case "null":
		return twic.Null(), nil
	case "true":
		return twic.NewBool(true), nil
	case "false":
		return twic.NewBool(false), nil
	case "nan":
		return twic.NewNumber(twic.NewFloat(math.NaN())), nil
	case "inf", "+inf":
		return twic.NewNumber(twic.NewFloat(math.Inf(1))), nil
	case "-inf":
		return twic.NewNumber(twic.NewFloat(math.Inf(-1))), nil
	}

	if looksLikeHexInt(atom) {
		return classifyHexInt(atom, at)
	}
	if looksLikeDecimalNumber(atom) {
		return classifyDecimalNumber(atom, at)
	}

	first, _ := utf8.DecodeRuneInString(atom)
	if isASCIIDigit(first) || first == '+' || first == '-' {
		return twic.Value{}, newError(at, InvalidAtom{Atom: atom, At: at})
	}
	return twic.NewString(atom), nil
}

// looksLikeHexInt matches [+-]?0x[0-9a-fA-F]+ exactly.
func looksLikeHexInt(atom string) bool {
	i := 0
	if i < len(atom) && (atom[i] == '+' || atom[i] == '-') {
		i++
	}
	if i+1 >= len(atom) || atom[i] != '0' || atom[i+1] != 'x' {
		return false
	}
	i += 2
	if i >= len(atom) {
		return false
	}
	for ; i < len(atom); i++ {
		if !isHexDigit(rune(atom[i])) {
			return false
		}
	}
	return true
}

func classifyHexInt(atom string, at int) (twic.Value, error) {
	neg := false
	i := 0
	if atom[0] == '+' || atom[0] == '-' {
		neg = atom[0] == '-'
		i = 1
	}
	digits := atom[i+2:] // past "0x"
	mag, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && errors.Is(numErr.Err, strconv.ErrRange) {
			return twic.Value{}, newError(at, IntegerOverflow{Atom: atom, At: at})
		}
		return twic.Value{}, newError(at, InvalidNumber{Atom: atom, At: at})
	}
	if neg {
		if mag > 1<<63 {
			return twic.Value{}, newError(at, IntegerOverflow{Atom: atom, At: at})
		}
		return twic.NewInt(-int64(mag)), nil
	}
	if mag > math.MaxInt64 {
		return twic.Value{}, newError(at, IntegerOverflow{Atom: atom, At: at})
	}
	return twic.NewInt(int64(mag)), nil
}

// looksLikeDecimalNumber matches [+-]?digit+(.digit+)?([eE][+-]?digit+)?
// with at least one digit before the dot and, if a dot is present, at
// least one digit after it.
func looksLikeDecimalNumber(atom string) bool {
	i := 0
	n := len(atom)
	if i < n && (atom[i] == '+' || atom[i] == '-') {
		i++
	}
	start := i
	for i < n && isASCIIDigit(rune(atom[i])) {
		i++
	}
	if i == start {
		return false
	}
	if i < n && atom[i] == '.' {
		i++
		fracStart := i
		for i < n && isASCIIDigit(rune(atom[i])) {
			i++
		}
		if i == fracStart {
			return false
		}
	}
	if i < n && (atom[i] == 'e' || atom[i] == 'E') {
		i++
		if i < n && (atom[i] == '+' || atom[i] == '-') {
			i++
		}
		expStart := i
		for i < n && isASCIIDigit(rune(atom[i])) {
			i++
		}
		if i == expStart {
			return false
		}
	}
	return i == n
}

func classifyDecimalNumber(atom string, at int) (twic.Value, error) {
	isFloat := false
	for _, c := range atom {
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
			break
		}
	}
	if isFloat {
		f, err := strconv.ParseFloat(atom, 64)
		if err != nil {
			return twic.Value{}, newError(at, InvalidNumber{Atom: atom, At: at})
		}
		return twic.NewNumber(twic.NewFloat(f)), nil
	}
	i, err := strconv.ParseInt(atom, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && errors.Is(numErr.Err, strconv.ErrRange) {
			return twic.Value{}, newError(at, IntegerOverflow{Atom: atom, At: at})
		}
		return twic.Value{}, newError(at, InvalidNumber{Atom: atom, At: at})
	}
	return twic.NewInt(i), nil
}
