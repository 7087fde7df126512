package twic_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/twic"
	"github.com/kralicky/twic/decode"
	"github.com/kralicky/twic/encode"
)

// sampleValues exercises every Value kind, grounded directly on the
// end-to-end scenarios table in the format's specification.
func sampleValues() []twic.Value {
	profile := twic.NewMap()
	_ = profile.MapSet("name", twic.NewString("twic"))
	_ = profile.MapSet("version", twic.NewNumber(twic.NewFloat(0.1)))

	nested := twic.NewMap()
	_ = nested.MapSet("profile", profile)
	_ = nested.MapSet("users", twic.NewVector(twic.NewString("alice"), twic.NewString("bob")))

	reservedKeyMap := twic.NewMap()
	_ = reservedKeyMap.MapSet("null", twic.NewBool(true))

	return []twic.Value{
		twic.Null(),
		twic.NewBool(true),
		twic.NewBool(false),
		twic.NewInt(0),
		twic.NewInt(-7),
		twic.NewInt(math.MaxInt64),
		twic.NewInt(math.MinInt64),
		twic.NewNumber(twic.NewFloat(0.1)),
		twic.NewNumber(twic.NewFloat(math.Copysign(0, -1))),
		twic.NewNumber(twic.NewFloat(math.NaN())),
		twic.NewNumber(twic.NewFloat(math.Inf(1))),
		twic.NewNumber(twic.NewFloat(math.Inf(-1))),
		twic.NewString(""),
		twic.NewString("plain"),
		twic.NewString("needs quotes: a,b"),
		twic.NewString("null"),
		twic.NewVector(),
		twic.NewVector(twic.NewInt(1), twic.NewString("x")),
		twic.NewMap(),
		nested,
		reservedKeyMap,
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range sampleValues() {
		v := v
		enc := encode.Encode(v)
		t.Run(string(enc), func(t *testing.T) {
			t.Parallel()
			got, err := decode.Decode(enc)
			require.NoError(t, err)
			assert.True(t, v.Equal(got), "decode(encode(v)) != v for %q", enc)
		})
	}
}

func TestEncodeIsIdempotentAfterOneRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range sampleValues() {
		enc1 := encode.Encode(v)
		got, err := decode.Decode(enc1)
		require.NoError(t, err)
		enc2 := encode.Encode(got)
		assert.Equal(t, enc1, enc2)
	}
}

// padStructural inserts whitespace around every structural character
// (':', ';', ',') — the only positions the grammar guarantees are
// whitespace-insensitive. Padding inside an atom or quoted string would
// change its meaning (whitespace terminates atoms), so those bytes are
// left untouched.
func padStructural(s string) string {
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuotes = !inQuotes
		}
		if !inQuotes && (c == ':' || c == ';' || c == ',') {
			b.WriteString("  ")
			b.WriteByte(c)
			b.WriteString("  ")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// TestWhitespaceInsensitivity checks that inserting whitespace at every
// grammar-permitted boundary of a decodable input does not change the
// decoded Value.
func TestWhitespaceInsensitivity(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"msg:hello!,from:twic;",
		":1,2,3;",
		"profile:name:twic,version:0.1;,users::alice,bob;;",
		`k:"aA\n";`,
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			base, err := decode.DecodeString(in)
			require.NoError(t, err)

			spaced := "  " + padStructural(in) + "  "
			got, err := decode.DecodeString(spaced)
			require.NoError(t, err)
			assert.True(t, base.Equal(got), "whitespace-padded decode differs for %q", spaced)
		})
	}
}

func TestPathSoundnessAfterRoundTrip(t *testing.T) {
	t.Parallel()

	src := "profile:name:twic,version:0.1;,users::alice,bob;;"
	v, err := decode.DecodeString(src)
	require.NoError(t, err)

	path := twic.Path{twic.Key("users"), twic.Index(0)}
	sub, err := v.At(path)
	require.NoError(t, err)

	ptr, err := v.AtMut(path)
	require.NoError(t, err)
	*ptr = sub

	after, err := v.At(path)
	require.NoError(t, err)
	assert.True(t, after.Equal(sub))
}
