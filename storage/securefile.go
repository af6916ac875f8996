package storage

import (
	"fmt"
	"io/ioutil"
	"strings"
)

// SaveEncrypted seal plaintext under password and write the base64
// envelope to path
func SaveEncrypted(path string, plaintext []byte, password string) error {
	ed, err := EncryptWithPassword(plaintext, password)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, []byte(ed.Encode()), 0600); err != nil {
		return fmt.Errorf("write encrypted file: %w", err)
	}
	return nil
}

// LoadEncrypted read a base64 envelope from path and open it with password
func LoadEncrypted(path string, password string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encrypted file: %w", err)
	}
	ed, err := Decode(strings.TrimSpace(string(data)), true)
	if err != nil {
		return nil, err
	}
	return DecryptWithPassword(ed, password)
}

// SaveEncryptedWithKey seal plaintext under a direct 32 byte key
func SaveEncryptedWithKey(path string, plaintext, key []byte) error {
	ed, err := EncryptWithKey(plaintext, key)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, []byte(ed.Encode()), 0600); err != nil {
		return fmt.Errorf("write encrypted file: %w", err)
	}
	return nil
}

// LoadEncryptedWithKey read an unsalted envelope and open it with key
func LoadEncryptedWithKey(path string, key []byte) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encrypted file: %w", err)
	}
	ed, err := Decode(strings.TrimSpace(string(data)), false)
	if err != nil {
		return nil, err
	}
	return DecryptWithKey(ed, key)
}
