// Package storage implements the authenticated encryption envelope used
// for journal persistence: chacha20poly1305 over the plaintext, keys either
// supplied directly or derived from a password with argon2id.
package storage

import (
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/chainledger/ChainLedger/common"
)

// envelope layout constants
const (
	// KeySize is the symmetric key length in bytes
	KeySize = chacha20poly1305.KeySize
	// SaltSize is the kdf salt length prepended in password mode
	SaltSize = 16
)

// argon2id cost parameters, fixed and part of the on disk format.
// Tuned for roughly 100ms on a developer workstation.
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
)

// storage errors
var (
	ErrAuthenticationFailed = errors.New("decryption authentication failed")
	ErrInvalidKeySize       = errors.New("encryption key must be 32 bytes")
	ErrMalformedEnvelope    = errors.New("malformed encrypted envelope")
)

// EncryptedData is the parsed envelope: optional kdf salt plus aead
// ciphertext (nonce prepended inside the ciphertext)
type EncryptedData struct {
	Salt       []byte
	Ciphertext []byte
}

// DeriveKey run argon2id over password and salt, yielding a KeySize key
func DeriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, kdfTime, kdfMemory, kdfThreads, KeySize)
}

func sealWithKey(plaintext, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := common.RandomBytes(aead.NonceSize())
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func openWithKey(ciphertext, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, ErrMalformedEnvelope
	}
	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// EncryptWithKey seal plaintext under a directly supplied key, no salt
func EncryptWithKey(plaintext, key []byte) (*EncryptedData, error) {
	ct, err := sealWithKey(plaintext, key)
	if err != nil {
		return nil, err
	}
	return &EncryptedData{Ciphertext: ct}, nil
}

// DecryptWithKey open a direct key envelope
func DecryptWithKey(ed *EncryptedData, key []byte) ([]byte, error) {
	return openWithKey(ed.Ciphertext, key)
}

// EncryptWithPassword derive a fresh key from password with a random salt
// and seal plaintext. The salt rides in the envelope.
func EncryptWithPassword(plaintext []byte, password string) (*EncryptedData, error) {
	salt := common.RandomBytes(SaltSize)
	key := DeriveKey(password, salt)
	defer Zeroize(key)
	ct, err := sealWithKey(plaintext, key)
	if err != nil {
		return nil, err
	}
	return &EncryptedData{Salt: salt, Ciphertext: ct}, nil
}

// DecryptWithPassword re-derive the key from the envelope salt and open
func DecryptWithPassword(ed *EncryptedData, password string) ([]byte, error) {
	if len(ed.Salt) != SaltSize {
		return nil, ErrMalformedEnvelope
	}
	key := DeriveKey(password, ed.Salt)
	defer Zeroize(key)
	return openWithKey(ed.Ciphertext, key)
}

// Encode render the envelope as base64 of salt-then-ciphertext
func (ed *EncryptedData) Encode() string {
	raw := make([]byte, 0, len(ed.Salt)+len(ed.Ciphertext))
	raw = append(raw, ed.Salt...)
	raw = append(raw, ed.Ciphertext...)
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode parse a base64 envelope. withSalt selects password mode; an
// envelope shorter than the salt is treated as direct key material.
func Decode(encoded string, withSalt bool) (*EncryptedData, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrMalformedEnvelope
	}
	if withSalt && len(raw) >= SaltSize {
		return &EncryptedData{Salt: raw[:SaltSize], Ciphertext: raw[SaltSize:]}, nil
	}
	return &EncryptedData{Ciphertext: raw}, nil
}
