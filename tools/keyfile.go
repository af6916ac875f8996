// Package tools holds operator facing helpers: key file handling and
// audit alert mail.
package tools

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/chainledger/ChainLedger/common"
	"github.com/chainledger/ChainLedger/storage"
)

// GenerateKeypair create a fresh ed25519 keypair
func GenerateKeypair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate keypair fail %w", err)
	}
	return pub, priv, nil
}

// SaveKeypair write hex encoded private and public key files.
// The private key file gets the ".pub" suffix stripped sibling.
func SaveKeypair(privPath string, pub ed25519.PublicKey, priv ed25519.PrivateKey) error {
	if err := ioutil.WriteFile(privPath, []byte(common.ToHex(priv)+"\n"), 0600); err != nil {
		return fmt.Errorf("write private key fail %w", err)
	}
	if err := ioutil.WriteFile(privPath+".pub", []byte(common.ToHex(pub)+"\n"), 0644); err != nil {
		return fmt.Errorf("write public key fail %w", err)
	}
	return nil
}

// LoadPrivateKey read a hex encoded ed25519 private key file
func LoadPrivateKey(keyfile string) (ed25519.PrivateKey, error) {
	raw, err := loadHexFile(keyfile)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PrivateKeySize {
		storage.Zeroize(raw)
		return nil, fmt.Errorf("private key file %v has wrong length %d", keyfile, len(raw))
	}
	return ed25519.PrivateKey(raw), nil
}

// LoadPublicKey read a hex encoded ed25519 public key file
func LoadPublicKey(keyfile string) (ed25519.PublicKey, error) {
	raw, err := loadHexFile(keyfile)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key file %v has wrong length %d", keyfile, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// LoadSecretFile read raw secret bytes (eg. the audit hmac key) wrapped
// so the caller can wipe them
func LoadSecretFile(path string) (*storage.Secret, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret file fail %w", err)
	}
	trimmed := []byte(strings.TrimSpace(string(data)))
	storage.Zeroize(data)
	return storage.NewSecret(trimmed), nil
}

func loadHexFile(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file fail %w", err)
	}
	raw, err := common.FromHex(strings.TrimSpace(string(data)))
	storage.Zeroize(data)
	if err != nil {
		return nil, fmt.Errorf("decode key file fail %w", err)
	}
	return raw, nil
}
