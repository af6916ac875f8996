package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) FixedPoint {
	f, err := FromString(s)
	require.NoError(t, err, "parse %q", s)
	return f
}

func TestFromString(t *testing.T) {
	cases := []struct {
		in  string
		raw int64
	}{
		{"0", 0},
		{"1", 100000000},
		{"-1", -100000000},
		{"+1.5", 150000000},
		{"1.5", 150000000},
		{"0.00000001", 1},
		{"-0.00000001", -1},
		{"123.456", 12345600000},
		{".5", 50000000},
		{"2.", 200000000},
		// longer fractions truncate, not round
		{"0.123456789", 12345678},
		{"0.999999999", 99999999},
	}
	for _, c := range cases {
		f, err := FromString(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.raw, f.Raw(), c.in)
	}
}

func TestFromStringInvalid(t *testing.T) {
	for _, s := range []string{"", "-", "+", ".", "-.", "1,5", "1.2.3", "abc", "1e5", " 1"} {
		_, err := FromString(s)
		assert.Error(t, err, "%q should not parse", s)
	}
}

func TestStringRendering(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"-1", "-1"},
		{"1.50", "1.5"},
		{"1.500000000", "1.5"},
		{"0.00000001", "0.00000001"},
		{"-0.25", "-0.25"},
		{"123.456", "123.456"},
		{"2.", "2"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, mustParse(t, c.in).String(), c.in)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "0.5", "-0.00000001", "12345.6789", "99999999.99999999"} {
		assert.Equal(t, s, mustParse(t, s).String())
	}
}

func TestFromInteger(t *testing.T) {
	f, err := FromInteger(42)
	require.NoError(t, err)
	assert.Equal(t, "42", f.String())

	_, err = FromInteger(math.MaxInt64 / 10)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFromCents(t *testing.T) {
	f, err := FromCents(12345)
	require.NoError(t, err)
	assert.Equal(t, "123.45", f.String())

	f, err = FromCents(-50)
	require.NoError(t, err)
	assert.Equal(t, "-0.5", f.String())
}

func TestAddSub(t *testing.T) {
	a := mustParse(t, "1.1")
	b := mustParse(t, "2.2")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "3.3", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "-1.1", diff.String())

	_, err = FromRaw(math.MaxInt64).Add(FromRaw(1))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = FromRaw(math.MinInt64).Sub(FromRaw(1))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = FromRaw(1).Sub(FromRaw(math.MinInt64))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMul(t *testing.T) {
	a := mustParse(t, "1.5")
	b := mustParse(t, "2")
	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, "3", prod.String())

	// truncation toward zero
	c := mustParse(t, "0.00000001")
	prod, err = c.Mul(c)
	require.NoError(t, err)
	assert.True(t, prod.IsZero())

	neg := mustParse(t, "-0.00000001")
	prod, err = neg.Mul(c)
	require.NoError(t, err)
	assert.True(t, prod.IsZero())

	_, err = FromRaw(math.MaxInt64).Mul(FromRaw(math.MaxInt64))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestDiv(t *testing.T) {
	a := mustParse(t, "1")
	b := mustParse(t, "3")
	quo, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, "0.33333333", quo.String())

	neg := mustParse(t, "-1")
	quo, err = neg.Div(b)
	require.NoError(t, err)
	assert.Equal(t, "-0.33333333", quo.String())

	_, err = a.Div(FixedPoint{})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestRound(t *testing.T) {
	cases := []struct {
		in     string
		places int
		want   string
	}{
		{"1.23456789", 8, "1.23456789"},
		{"1.23456789", 9, "1.23456789"},
		{"1.235", 2, "1.24"},
		{"1.234", 2, "1.23"},
		{"-1.235", 2, "-1.24"},
		{"-1.234", 2, "-1.23"},
		{"1.5", 0, "2"},
		{"-1.5", 0, "-2"},
		{"0.4999", 0, "0"},
	}
	for _, c := range cases {
		got := mustParse(t, c.in).Round(c.places)
		assert.Equal(t, c.want, got.String(), "%s @ %d", c.in, c.places)
	}
}

func TestAbsNeg(t *testing.T) {
	a := mustParse(t, "-2.5")
	abs, err := a.Abs()
	require.NoError(t, err)
	assert.Equal(t, "2.5", abs.String())

	neg, err := abs.Neg()
	require.NoError(t, err)
	assert.Equal(t, "-2.5", neg.String())

	_, err = FromRaw(math.MinInt64).Abs()
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = FromRaw(math.MinInt64).Neg()
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1234.56", FormatAmount(123456, 2))
	assert.Equal(t, "0.00000001", FormatAmount(1, 8))
	assert.Equal(t, "-0.5", FormatAmount(-50, 2))
	assert.Equal(t, "42", FormatAmount(42, 0))
	assert.Equal(t, "0.00000001", FormatAmount(1, 9)) // decimals clamp to the scale
}

func TestCmp(t *testing.T) {
	a := mustParse(t, "1")
	b := mustParse(t, "2")
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))
	assert.True(t, mustParse(t, "-1").IsNegative())
}
