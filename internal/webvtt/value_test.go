package webvtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePercent(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantOK  bool
		wantVal float64
	}{
		{"simple", "40%", true, 0.4},
		{"fraction", "12.5%", true, 0.125},
		{"zero", "0%", true, 0},
		{"hundred", "100%", true, 1},
		{"over-hundred", "101%", false, 0},
		{"negative", "-1%", false, 0},
		{"missing-percent", "40", false, 0},
		{"trailing-junk", "40%x", true, 0.4},
		{"no-digits", "%", false, 0},
		{"empty", "", false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, ok := ParsePercent(c.in)
			require.Equal(t, c.wantOK, ok)
			if ok {
				assert.InDelta(t, c.wantVal, v, 1e-9)
			}
		})
	}
}

func TestParsePercentPair(t *testing.T) {
	x, y, ok := ParsePercentPair("10%,20%")
	require.True(t, ok)
	assert.InDelta(t, 0.1, x, 1e-9)
	assert.InDelta(t, 0.2, y, 1e-9)

	_, _, ok = ParsePercentPair("10%")
	assert.False(t, ok)

	_, _, ok = ParsePercentPair("10%,")
	assert.False(t, ok)

	_, _, ok = ParsePercentPair("10,20%")
	assert.False(t, ok)
}

func TestParsePercentRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.01, 0.5, 0.999, 1} {
		formatted := formatPercent(v)
		got, ok := ParsePercent(formatted)
		require.True(t, ok)
		assert.InDelta(t, v, got, 1e-6)
	}
}

func formatPercent(v float64) string {
	pct := v * 100
	return trimTrailingZeros(pct) + "%"
}

func trimTrailingZeros(f float64) string {
	s := fmtFloat(f)
	return s
}

func fmtFloat(f float64) string {
	// minimal, locale-independent formatter mirroring the one the
	// decoder itself must parse
	neg := f < 0
	if neg {
		f = -f
	}
	whole := int64(f)
	frac := f - float64(whole)
	out := itoa(whole)
	if frac > 1e-9 {
		out += "." + fracDigits(frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func fracDigits(f float64) string {
	s := ""
	for i := 0; i < 6 && f > 1e-9; i++ {
		f *= 10
		d := int64(f)
		s += string(rune('0' + d))
		f -= float64(d)
	}
	return s
}

func TestTupleStream(t *testing.T) {
	got := TupleStream("id:fred width:40% empty: :novalue nokv", ' ', ':')
	require.Len(t, got, 2)
	assert.Equal(t, KV{"id", "fred"}, got[0])
	assert.Equal(t, KV{"width", "40%"}, got[1])
}
