// Package journal implements the append only, hash chained transaction log.
// Every entry's hash covers the canonical transaction encoding, its sequence
// number and the predecessor's hash, so modifying any entry invalidates the
// whole suffix.
package journal

import (
	"errors"
	"fmt"
	"os"

	"github.com/chainledger/ChainLedger/common"
	"github.com/chainledger/ChainLedger/ledger"
	"github.com/chainledger/ChainLedger/log"
)

// journal errors
var (
	ErrIntegrityBroken = errors.New("journal integrity broken")
	ErrEntryNotFound   = errors.New("journal entry not found")
)

// Entry is one journaled transaction with its chain linkage
type Entry struct {
	Transaction *ledger.Transaction `json:"transaction"`
	PrevHash    *common.Hash        `json:"prev_hash,omitempty"`
	Hash        common.Hash         `json:"hash"`
	Sequence    uint64              `json:"sequence"`
}

// Journal is the ordered hash chained entry sequence. Optionally backed by
// a plaintext file that every append streams to.
type Journal struct {
	entries  []*Entry
	filePath string
}

// New create an in memory journal
func New() *Journal {
	return &Journal{}
}

// NewWithFile create a journal that appends canonical json lines to path
func NewWithFile(path string) *Journal {
	return &Journal{filePath: path}
}

// Len returns the number of entries
func (j *Journal) Len() int {
	return len(j.entries)
}

// SetFilePath configure the plaintext append stream target
func (j *Journal) SetFilePath(path string) {
	j.filePath = path
}

// entryHash computes sha256(canonical_json ‖ le64(sequence) ‖ prev-or-empty)
func entryHash(tx *ledger.Transaction, sequence uint64, prev *common.Hash) (common.Hash, error) {
	data, err := tx.CanonicalJSON()
	if err != nil {
		return common.Hash{}, err
	}
	parts := [][]byte{data, common.Uint64ToLittleEndian(sequence)}
	if prev != nil {
		parts = append(parts, prev.Bytes())
	}
	return common.Sha256Hash(parts...), nil
}

// Append clone tx, link it to the chain tip and store the entry. When a
// file path is configured the canonical json line is streamed to the file.
func (j *Journal) Append(tx *ledger.Transaction) (*Entry, error) {
	owned := tx.Clone()
	sequence := uint64(len(j.entries))
	var prev *common.Hash
	if sequence > 0 {
		tip := j.entries[sequence-1].Hash
		prev = &tip
	}
	hash, err := entryHash(owned, sequence, prev)
	if err != nil {
		return nil, err
	}
	entry := &Entry{
		Transaction: owned,
		PrevHash:    prev,
		Hash:        hash,
		Sequence:    sequence,
	}
	j.entries = append(j.entries, entry)

	if j.filePath != "" {
		if err := j.streamToFile(owned); err != nil {
			// in memory state stays intact, the file may need recovery
			log.Error("journal file append failed", "path", j.filePath, "err", err)
			return entry, err
		}
	}
	return entry, nil
}

func (j *Journal) streamToFile(tx *ledger.Transaction) error {
	data, err := tx.CanonicalJSON()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(j.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append journal file: %w", err)
	}
	return nil
}

// Get returns the entry at sequence position
func (j *Journal) Get(sequence uint64) (*Entry, error) {
	if sequence >= uint64(len(j.entries)) {
		return nil, ErrEntryNotFound
	}
	return j.entries[sequence], nil
}

// GetByID returns the first entry whose transaction id matches
func (j *Journal) GetByID(txid string) (*Entry, error) {
	for _, e := range j.entries {
		if e.Transaction.ID == txid {
			return e, nil
		}
	}
	return nil, ErrEntryNotFound
}

// ByAccount returns all entries touching the named account
func (j *Journal) ByAccount(name string) []*Entry {
	var out []*Entry
	for _, e := range j.entries {
		if e.Transaction.FromAccount == name || e.Transaction.ToAccount == name {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns the underlying entry slice; callers must not mutate it
func (j *Journal) Entries() []*Entry {
	return j.entries
}

// Transactions returns the journaled transactions in order
func (j *Journal) Transactions() []*ledger.Transaction {
	out := make([]*ledger.Transaction, len(j.entries))
	for i, e := range j.entries {
		out[i] = e.Transaction
	}
	return out
}

// VerifyIntegrity recompute every entry hash and check sequence numbering
// and chain linkage. Hash comparisons are constant time.
func (j *Journal) VerifyIntegrity() error {
	for i, e := range j.entries {
		if e.Sequence != uint64(i) {
			return fmt.Errorf("%w: sequence mismatch at %d", ErrIntegrityBroken, i)
		}
		if i == 0 {
			if e.PrevHash != nil {
				return fmt.Errorf("%w: first entry has predecessor", ErrIntegrityBroken)
			}
		} else {
			if e.PrevHash == nil || !common.ConstantTimeEqual(e.PrevHash.Bytes(), j.entries[i-1].Hash.Bytes()) {
				return fmt.Errorf("%w: chain link broken at %d", ErrIntegrityBroken, i)
			}
		}
		want, err := entryHash(e.Transaction, e.Sequence, e.PrevHash)
		if err != nil {
			return err
		}
		if !common.ConstantTimeEqual(want.Bytes(), e.Hash.Bytes()) {
			return fmt.Errorf("%w: entry hash mismatch at %d", ErrIntegrityBroken, i)
		}
	}
	return nil
}

// MerkleLeaves returns the sha256 of every transaction's canonical json,
// the leaf set for batch attestation
func (j *Journal) MerkleLeaves() ([]common.Hash, error) {
	leaves := make([]common.Hash, len(j.entries))
	for i, e := range j.entries {
		h, err := e.Transaction.Hash()
		if err != nil {
			return nil, err
		}
		leaves[i] = h
	}
	return leaves, nil
}
