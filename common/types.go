package common

import (
	"encoding/hex"
)

// HashLength is the expected length of a hash in bytes
const HashLength = 32

// Hash represents a 32 byte sha256 digest
type Hash [HashLength]byte

// BytesToHash sets b to hash, left padded when b is short
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash parse hex string to hash
func HexToHash(s string) Hash {
	b, _ := hex.DecodeString(stripHexPrefix(s))
	return BytesToHash(b)
}

// SetBytes sets the hash to the value of b, keeping the rightmost bytes when
// b is longer than the hash
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes gets the byte representation of the underlying hash
func (h Hash) Bytes() []byte {
	return h[:]
}

// Hex gets the lowercase hex representation without prefix
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements the stringer interface
func (h Hash) String() string {
	return h.Hex()
}

// IsZero returns true if the hash is all zero bytes
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func stripHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
