package decode

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/twic"
)

func TestDecodeScenarios(t *testing.T) {
	t.Parallel()

	msgMap := twic.NewMap()
	_ = msgMap.MapSet("msg", twic.NewString("hello!"))
	_ = msgMap.MapSet("from", twic.NewString("twic"))

	profile := twic.NewMap()
	_ = profile.MapSet("name", twic.NewString("twic"))
	_ = profile.MapSet("version", twic.NewNumber(twic.NewFloat(0.1)))
	nested := twic.NewMap()
	_ = nested.MapSet("profile", profile)
	_ = nested.MapSet("users", twic.NewVector(twic.NewString("alice"), twic.NewString("bob")))

	emptyStringMap := twic.NewMap()
	_ = emptyStringMap.MapSet("", twic.Null())

	hexMap := twic.NewMap()
	_ = hexMap.MapSet("a", twic.NewInt(31))

	escMap := twic.NewMap()
	_ = escMap.MapSet("k", twic.NewString("aA\n"))

	cases := []struct {
		name  string
		input string
		want  twic.Value
	}{
		{"simple map", "msg:hello!,from:twic;", msgMap},
		{"nested map and vector", "profile:name:twic,version:0.1;,users::alice,bob;;", nested},
		{"empty vector", ":;", twic.NewVector()},
		{"empty map", ";", twic.NewMap()},
		{"empty string key", `"":null;`, emptyStringMap},
		{"integer vector", ":1,2,3;", twic.NewVector(twic.NewInt(1), twic.NewInt(2), twic.NewInt(3))},
		{"hex integer", "a:0x1F;", hexMap},
		{"escaped string", `k:"aA\n";`, escMap},
		{"bare integer", "42", twic.NewInt(42)},
		{"bare float", "1.0", twic.NewNumber(twic.NewFloat(1.0))},
		{"negative zero integer", "-0", twic.NewInt(0)},
		{"negative zero float", "-0.0", twic.NewNumber(twic.NewFloat(math.Copysign(0, -1)))},
		{"nan atom", "nan", twic.NewNumber(twic.NewFloat(math.NaN()))},
		{"inf atom", "inf", twic.NewNumber(twic.NewFloat(math.Inf(1)))},
		{"negative inf atom", "-inf", twic.NewNumber(twic.NewFloat(math.Inf(-1)))},
		{"null", "null", twic.Null()},
		{"bool true", "true", twic.NewBool(true)},
		{"bool false", "false", twic.NewBool(false)},
		{"whitespace insensitivity", "  msg : hello! , from : twic ; ", msgMap},
		{"vector of strings split at comma", ":a,b;", twic.NewVector(twic.NewString("a"), twic.NewString("b"))},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeString(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "decode(%q) = %#v, want %#v", tc.input, got, tc.want)
		})
	}
}

func TestDecodeDuplicateKeysLastWinsFirstPositionKept(t *testing.T) {
	t.Parallel()

	got, err := DecodeString("a:1,b:2,a:3;")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.MapKeys())
	v, ok := got.MapGet("a")
	require.True(t, ok)
	assert.True(t, v.Equal(twic.NewInt(3)))
}

func TestDecodeReservedWordsMustBeQuotedAsKeys(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"null", "true", "false", "nan", "inf"} {
		_, err := DecodeString(word + ":1;")
		require.Error(t, err, "word %q", word)
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		var rw ReservedWordAsString
		require.ErrorAs(t, err, &rw)
	}

	got, err := DecodeString(`"null":1;`)
	require.NoError(t, err)
	v, ok := got.MapGet("null")
	require.True(t, ok)
	assert.True(t, v.Equal(twic.NewInt(1)))
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		wantErr interface{}
		at      int
	}{
		{"invalid atom leading digit", "1abc", InvalidAtom{}, 0},
		{"trailing input", "a:1;extra", TrailingInput{}, 4},
		{"unexpected end", "a:", UnexpectedEnd{}, 2},
		{"unterminated vector", ":1,2", UnexpectedEnd{}, 4},
		{"bad escape", `"\q"`, InvalidEscape{}, 1},
		{"unpaired high surrogate", `"\uD800"`, InvalidHex{}, 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeString(tc.input)
			require.Error(t, err)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.GreaterOrEqual(t, de.Offset, 0)
			assert.LessOrEqual(t, de.Offset, len(tc.input))
			assert.Equal(t, tc.at, de.Offset)
			assert.IsType(t, tc.wantErr, de.Err)
		})
	}
}

func TestDecodeIntegerOverflow(t *testing.T) {
	t.Parallel()

	_, err := DecodeString("99999999999999999999999999")
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	var overflow IntegerOverflow
	require.ErrorAs(t, err, &overflow)
}

func TestDecodeNestingTooDeep(t *testing.T) {
	t.Parallel()

	// 10 nested vectors exceeds a maxDepth of 5.
	input := strings.Repeat(":", 10) + "1" + strings.Repeat(";", 10)
	_, err := Decode([]byte(input), WithMaxDepth(5))
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	var tooDeep NestingTooDeep
	require.ErrorAs(t, err, &tooDeep)
	assert.Equal(t, 5, tooDeep.Limit)
}

func TestDecodeUnicodeEscapes(t *testing.T) {
	t.Parallel()

	got, err := DecodeString(`"\u0041"`)
	require.NoError(t, err)
	s, _ := got.AsString()
	assert.Equal(t, "A", s)

	got, err = DecodeString(`"\u{1F600}"`)
	require.NoError(t, err)
	s, _ = got.AsString()
	assert.Equal(t, "\U0001F600", s)

	// surrogate pair for a supplementary-plane scalar.
	got, err = DecodeString("\"\\uD83D\\uDE00\"")
	require.NoError(t, err)
	s, _ = got.AsString()
	assert.Equal(t, "\U0001F600", s)
}

func TestDecodeByteEscapeProducesNonUTF8(t *testing.T) {
	t.Parallel()

	got, err := DecodeString(`"\xFF"`)
	require.NoError(t, err)
	s, _ := got.AsString()
	require.Len(t, s, 1)
	assert.Equal(t, byte(0xFF), s[0])
}

func TestDecodeVectorElementsCannotBeMapKeys(t *testing.T) {
	t.Parallel()

	// Inside a vector, "a:1" is not a map entry: ':' is not legal after a
	// vector element's atom, so this is a parse error rather than a
	// single-entry map inside the vector.
	_, err := DecodeString(":a:1;")
	require.Error(t, err)
}

func TestDecodeMaxDepthDefault(t *testing.T) {
	t.Parallel()

	// Well within the default 256 depth limit.
	input := strings.Repeat(":", 10) + "1" + strings.Repeat(";", 10)
	_, err := DecodeString(input)
	require.NoError(t, err)
}
