package common

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"os"
	"strconv"
	"time"
)

// Sha256Hash calculate sha256 digest of concatenated data parts
func Sha256Hash(data ...[]byte) (h Hash) {
	d := sha256.New()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// Sha256Sum calculate sha256 digest and return raw bytes
func Sha256Sum(data ...[]byte) []byte {
	h := Sha256Hash(data...)
	return h.Bytes()
}

// RandomBytes generate cryptographically secure random bytes
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("random source unavailable: " + err.Error())
	}
	return b
}

// ConstantTimeEqual compare two byte slices without leaking timing
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Uint64ToLittleEndian encode n as 8 little endian bytes
func Uint64ToLittleEndian(n uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, n)
	return buf
}

// Int64ToLittleEndian encode n as 8 little endian bytes
func Int64ToLittleEndian(n int64) []byte {
	return Uint64ToLittleEndian(uint64(n))
}

// ToHex encode bytes to lowercase hex without prefix
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// FromHex decode hex string, with or without 0x prefix
func FromHex(s string) ([]byte, error) {
	return hex.DecodeString(stripHexPrefix(s))
}

// Now returns the current unix timestamp in seconds
func Now() int64 {
	return time.Now().Unix()
}

// NowStr returns the current unix timestamp as decimal string
func NowStr() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// NowMilli returns the current unix timestamp in milliseconds
func NowMilli() int64 {
	return time.Now().UnixNano() / 1e6
}

// FileExist checks if a file exists at filePath
func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
