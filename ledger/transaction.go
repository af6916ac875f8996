package ledger

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/chainledger/ChainLedger/common"
)

const (
	// NonceSize is the number of random bytes carried by every transaction
	NonceSize = 12
	// IDSize is the number of digest bytes used for the short transaction id
	IDSize = 8
)

// Transaction is an immutable record of one value movement. The json tags
// define the canonical persisted encoding, whose bytes Hash and the journal
// chain cover; signatures and the per-transaction hmac cover the canonical
// signing preimage instead.
type Transaction struct {
	ID            string  `json:"id"`
	Timestamp     int64   `json:"timestamp"`
	Amount        int64   `json:"amount"`
	Currency      string  `json:"currency"`
	FromAccount   string  `json:"from_account"`
	ToAccount     string  `json:"to_account"`
	Memo          *string `json:"memo"`
	Nonce         string  `json:"nonce"`
	Signature     *string `json:"signature"`
	IntegrityHMAC *string `json:"integrity_hmac"`
	DependsOn     *string `json:"depends_on"`
}

// NewTransaction build a transaction stamped now with a fresh random nonce
// and a derived short id
func NewTransaction(amount int64, currency, from, to string, memo *string) *Transaction {
	tx := &Transaction{
		Timestamp:   common.Now(),
		Amount:      amount,
		Currency:    currency,
		FromAccount: from,
		ToAccount:   to,
		Memo:        memo,
		Nonce:       common.ToHex(common.RandomBytes(NonceSize)),
	}
	tx.ID = tx.DeriveID()
	return tx
}

// DeriveID compute the short hex id over (timestamp, source, sink, amount)
func (tx *Transaction) DeriveID() string {
	preimage := fmt.Sprintf("%d%s%s%d", tx.Timestamp, tx.FromAccount, tx.ToAccount, tx.Amount)
	digest := common.Sha256Sum([]byte(preimage))
	return common.ToHex(digest[:IDSize])
}

// SigningPreimage is the stable byte string covered by signature and hmac:
// "{timestamp}|{amount}|{currency}|{from}|{to}|{memo_or_empty}|{nonce_hex}"
func (tx *Transaction) SigningPreimage() []byte {
	memo := ""
	if tx.Memo != nil {
		memo = *tx.Memo
	}
	return []byte(fmt.Sprintf("%d|%d|%s|%s|%s|%s|%s",
		tx.Timestamp, tx.Amount, tx.Currency, tx.FromAccount, tx.ToAccount, memo, tx.Nonce))
}

// CanonicalJSON encode the transaction in its canonical persisted form
func (tx *Transaction) CanonicalJSON() ([]byte, error) {
	return json.Marshal(tx)
}

// Hash is sha256 over the canonical json encoding
func (tx *Transaction) Hash() (common.Hash, error) {
	data, err := tx.CanonicalJSON()
	if err != nil {
		return common.Hash{}, err
	}
	return common.Sha256Hash(data), nil
}

// Sign attach an ed25519 signature over the signing preimage
func (tx *Transaction) Sign(priv ed25519.PrivateKey) error {
	if len(priv) != ed25519.PrivateKeySize {
		return ErrInvalidKeyFormat
	}
	sig := ed25519.Sign(priv, tx.SigningPreimage())
	encoded := common.ToHex(sig)
	tx.Signature = &encoded
	return nil
}

// VerifySignature check the attached signature against pub
func (tx *Transaction) VerifySignature(pub ed25519.PublicKey) error {
	if tx.Signature == nil {
		return ErrNotSigned
	}
	if len(pub) != ed25519.PublicKeySize {
		return ErrInvalidKeyFormat
	}
	sig, err := common.FromHex(*tx.Signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return ErrSignatureInvalid
	}
	if !ed25519.Verify(pub, tx.SigningPreimage(), sig) {
		return ErrSignatureInvalid
	}
	return nil
}

// AttachHMAC compute and attach hmac-sha256 of the signing preimage under key
func (tx *Transaction) AttachHMAC(key []byte) {
	mac := hmac.New(sha256.New, key)
	mac.Write(tx.SigningPreimage())
	encoded := common.ToHex(mac.Sum(nil))
	tx.IntegrityHMAC = &encoded
}

// VerifyHMAC recompute the hmac under key and compare in constant time
func (tx *Transaction) VerifyHMAC(key []byte) error {
	if tx.IntegrityHMAC == nil {
		return ErrNoHmac
	}
	stored, err := common.FromHex(*tx.IntegrityHMAC)
	if err != nil {
		return ErrHmacInvalid
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(tx.SigningPreimage())
	if !hmac.Equal(mac.Sum(nil), stored) {
		return ErrHmacInvalid
	}
	return nil
}

// Clone returns a deep copy of the transaction
func (tx *Transaction) Clone() *Transaction {
	cp := *tx
	cp.Memo = cloneStringPtr(tx.Memo)
	cp.Signature = cloneStringPtr(tx.Signature)
	cp.IntegrityHMAC = cloneStringPtr(tx.IntegrityHMAC)
	cp.DependsOn = cloneStringPtr(tx.DependsOn)
	return &cp
}

// ParseTransaction decode one canonical json record
func ParseTransaction(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if tx.Currency == "" || tx.FromAccount == "" || tx.ToAccount == "" {
		return nil, ErrMalformedRecord
	}
	return &tx, nil
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
