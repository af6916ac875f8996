package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func TestNewTransaction(t *testing.T) {
	memo := "Payment"
	tx := NewTransaction(50000, "USD", "alice", "bob", &memo)

	assert.Len(t, tx.ID, IDSize*2)
	assert.Len(t, tx.Nonce, NonceSize*2)
	assert.Equal(t, int64(50000), tx.Amount)
	assert.Equal(t, "USD", tx.Currency)
	assert.Equal(t, tx.ID, tx.DeriveID())
	assert.Nil(t, tx.Signature)
	assert.Nil(t, tx.IntegrityHMAC)
	assert.Nil(t, tx.DependsOn)
}

func TestNonceUniqueness(t *testing.T) {
	a := NewTransaction(1, "USD", "x", "y", nil)
	b := NewTransaction(1, "USD", "x", "y", nil)
	assert.NotEqual(t, a.Nonce, b.Nonce)
}

func TestSigningPreimage(t *testing.T) {
	tx := &Transaction{
		Timestamp:   1700000000,
		Amount:      42,
		Currency:    "BTC",
		FromAccount: "a",
		ToAccount:   "b",
		Memo:        strptr("hi"),
		Nonce:       "0011223344556677889900aa",
	}
	want := "1700000000|42|BTC|a|b|hi|0011223344556677889900aa"
	assert.Equal(t, want, string(tx.SigningPreimage()))

	tx.Memo = nil
	want = "1700000000|42|BTC|a|b||0011223344556677889900aa"
	assert.Equal(t, want, string(tx.SigningPreimage()))
}

func TestCanonicalJSONRoundTrip(t *testing.T) {
	tx := NewTransaction(100, "USD", "alice", "bob", strptr("memo"))
	tx.DependsOn = strptr("deadbeefdeadbeef")

	data, err := tx.CanonicalJSON()
	require.NoError(t, err)

	parsed, err := ParseTransaction(data)
	require.NoError(t, err)
	assert.Equal(t, tx, parsed)

	// two encodings of the same transaction hash identically
	h1, err := tx.Hash()
	require.NoError(t, err)
	h2, err := parsed.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestCanonicalJSONFieldNames(t *testing.T) {
	tx := NewTransaction(1, "USD", "a", "b", nil)
	data, err := tx.CanonicalJSON()
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	for _, field := range []string{
		"id", "timestamp", "amount", "currency", "from_account",
		"to_account", "memo", "nonce", "signature", "integrity_hmac", "depends_on",
	} {
		_, ok := m[field]
		assert.True(t, ok, "missing field %q", field)
	}
}

func TestParseTransactionMalformed(t *testing.T) {
	_, err := ParseTransaction([]byte("{not json"))
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, err = ParseTransaction([]byte(`{"id":"x"}`))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestSignAndVerify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	tx := NewTransaction(10, "USD", "alice", "bob", nil)
	assert.ErrorIs(t, tx.VerifySignature(pub), ErrNotSigned)

	require.NoError(t, tx.Sign(priv))
	require.NotNil(t, tx.Signature)
	assert.Len(t, *tx.Signature, 128)
	assert.NoError(t, tx.VerifySignature(pub))

	// wrong key fails
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.VerifySignature(otherPub), ErrSignatureInvalid)

	// mutation after signing fails
	tx.Amount++
	assert.ErrorIs(t, tx.VerifySignature(pub), ErrSignatureInvalid)

	assert.ErrorIs(t, tx.Sign(priv[:10]), ErrInvalidKeyFormat)
	assert.ErrorIs(t, tx.VerifySignature(pub[:10]), ErrInvalidKeyFormat)
}

func TestHMAC(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	tx := NewTransaction(10, "USD", "alice", "bob", nil)

	assert.ErrorIs(t, tx.VerifyHMAC(key), ErrNoHmac)

	tx.AttachHMAC(key)
	require.NotNil(t, tx.IntegrityHMAC)
	assert.Len(t, *tx.IntegrityHMAC, 64)
	assert.NoError(t, tx.VerifyHMAC(key))

	assert.ErrorIs(t, tx.VerifyHMAC([]byte("another-key")), ErrHmacInvalid)

	tx.Amount++
	assert.ErrorIs(t, tx.VerifyHMAC(key), ErrHmacInvalid)
}

func TestClone(t *testing.T) {
	tx := NewTransaction(10, "USD", "alice", "bob", strptr("memo"))
	tx.DependsOn = strptr("dep")
	cp := tx.Clone()
	assert.Equal(t, tx, cp)

	*cp.Memo = "changed"
	assert.Equal(t, "memo", *tx.Memo)
}

func TestDeriveIDStable(t *testing.T) {
	tx := &Transaction{Timestamp: 1, FromAccount: "a", ToAccount: "b", Amount: 7}
	id1 := tx.DeriveID()
	id2 := tx.DeriveID()
	assert.Equal(t, id1, id2)
	assert.Equal(t, fmt.Sprintf("%x", mustIDPrefix(t, tx)), id1)
}

func mustIDPrefix(t *testing.T, tx *Transaction) []byte {
	t.Helper()
	// derived ids must stay stable, they are persisted
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s%s%d", tx.Timestamp, tx.FromAccount, tx.ToAccount, tx.Amount)))
	return sum[:IDSize]
}
