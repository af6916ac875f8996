package common

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSha256Hash(t *testing.T) {
	want := sha256.Sum256([]byte("hello world"))
	got := Sha256Hash([]byte("hello "), []byte("world"))
	assert.Equal(t, want[:], got.Bytes())
	assert.Equal(t, ToHex(want[:]), got.Hex())
}

func TestHashSetBytes(t *testing.T) {
	h := BytesToHash([]byte{1, 2, 3})
	assert.Equal(t, byte(3), h[HashLength-1])
	assert.Equal(t, byte(0), h[0])
	assert.False(t, h.IsZero())
	assert.True(t, (Hash{}).IsZero())
}

func TestHexRoundTrip(t *testing.T) {
	b := RandomBytes(32)
	s := ToHex(b)
	got, err := FromHex(s)
	assert.NoError(t, err)
	assert.Equal(t, b, got)

	got, err = FromHex("0x" + s)
	assert.NoError(t, err)
	assert.Equal(t, b, got)

	h := HexToHash(s)
	assert.Equal(t, b, h.Bytes())
}

func TestRandomBytesUnique(t *testing.T) {
	a := RandomBytes(12)
	b := RandomBytes(12)
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestLittleEndian(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, Uint64ToLittleEndian(1))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, Int64ToLittleEndian(-1))
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual([]byte("abc"), []byte("abc")))
	assert.False(t, ConstantTimeEqual([]byte("abc"), []byte("abd")))
	assert.False(t, ConstantTimeEqual([]byte("abc"), []byte("ab")))
}
