package asset

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	r := NewRegistry()
	usd, err := New("USD", "$", "US Dollar", KindNative, 2)
	require.NoError(t, err)
	require.NoError(t, r.Register(usd))
	btc, err := New("BTC", "BTC", "Bitcoin", KindToken, 8)
	require.NoError(t, err)
	require.NoError(t, r.Register(btc))
	return r
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry(t)
	dup, err := New("USD", "$", "US Dollar", KindNative, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Register(dup), ErrAssetAlreadyExists)
}

func TestRegisterClones(t *testing.T) {
	r := NewRegistry()
	a, err := New("EUR", "€", "Euro", KindNative, 2)
	require.NoError(t, err)
	require.NoError(t, r.Register(a))

	// mutating the caller's copy must not touch the registry
	a.Frozen = true
	got, err := r.Get("EUR")
	require.NoError(t, err)
	assert.False(t, got.Frozen)
}

func TestInvalidDecimals(t *testing.T) {
	_, err := New("XXX", "X", "X", KindToken, 19)
	assert.ErrorIs(t, err, ErrInvalidDecimals)
}

func TestLookup(t *testing.T) {
	r := newTestRegistry(t)
	a, err := r.Get("USD")
	require.NoError(t, err)
	assert.Equal(t, "US Dollar", a.Name)

	_, err = r.Get("DOGE")
	assert.ErrorIs(t, err, ErrAssetNotFound)
	assert.True(t, r.Has("BTC"))
	assert.False(t, r.Has("DOGE"))
	assert.Equal(t, []string{"BTC", "USD"}, r.IDs())
}

func TestFreezeUnfreeze(t *testing.T) {
	r := newTestRegistry(t)

	assert.ErrorIs(t, r.Freeze("DOGE"), ErrAssetNotFound)
	assert.ErrorIs(t, r.Unfreeze("DOGE"), ErrAssetNotFound)

	require.NoError(t, r.Freeze("BTC"))
	assert.ErrorIs(t, r.ValidateTransaction("BTC", 1), ErrAssetFrozen)

	require.NoError(t, r.Unfreeze("BTC"))
	assert.NoError(t, r.ValidateTransaction("BTC", 1))
}

func TestValidateTransaction(t *testing.T) {
	r := newTestRegistry(t)

	assert.ErrorIs(t, r.ValidateTransaction("DOGE", 1), ErrAssetNotFound)
	assert.NoError(t, r.ValidateTransaction("BTC", 2000000))

	require.NoError(t, r.SetTxLimit("BTC", 1000000))
	assert.NoError(t, r.ValidateTransaction("BTC", 1000000))
	assert.ErrorIs(t, r.ValidateTransaction("BTC", 1000001), ErrTransactionAmountTooLarge)

	assert.ErrorIs(t, r.SetTxLimit("DOGE", 1), ErrAssetNotFound)
}

func TestFrozenTakesPriorityOverLimit(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.SetTxLimit("BTC", 10))
	require.NoError(t, r.Freeze("BTC"))
	assert.ErrorIs(t, r.ValidateTransaction("BTC", 100), ErrAssetFrozen)
}

func TestParseKind(t *testing.T) {
	for _, tag := range []string{"native", "token", "non-fungible", "synthetic", "stable"} {
		k, ok := ParseKind(tag)
		assert.True(t, ok, tag)
		assert.Equal(t, tag, k.String())
	}
	_, ok := ParseKind("bogus")
	assert.False(t, ok)
}

func TestRateTable(t *testing.T) {
	tbl := NewRateTable()

	_, err := tbl.GetRate("USD", "EUR")
	assert.ErrorIs(t, err, ErrRateNotFound)

	err = tbl.SetRate("USD", "EUR", decimal.RequireFromString("0.9"))
	require.NoError(t, err)

	got, err := tbl.Convert("USD", "EUR", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(900), got)

	// conversion floors
	require.NoError(t, tbl.SetRate("USD", "JPY", decimal.RequireFromString("0.333")))
	got, err = tbl.Convert("USD", "JPY", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(33), got)

	assert.ErrorIs(t, tbl.SetRate("USD", "EUR", decimal.Zero), ErrInvalidRate)
	assert.ErrorIs(t, tbl.SetRate("USD", "EUR", decimal.RequireFromString("-1")), ErrInvalidRate)

	_, err = tbl.Convert("EUR", "USD", 10)
	assert.ErrorIs(t, err, ErrRateNotFound)
}
