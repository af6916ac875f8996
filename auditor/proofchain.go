// Package auditor recomputes ledger state from the journal, validates the
// hash chain and the whole trail hmac, and keeps an independent proof chain
// of operational events.
package auditor

import (
	"errors"

	"github.com/chainledger/ChainLedger/common"
)

// ErrProofChainBroken is returned when the event chain fails verification
var ErrProofChainBroken = errors.New("audit proof chain broken")

// ProofEntry is one operational event linked into the proof chain
type ProofEntry struct {
	Timestamp    int64        `json:"timestamp"`
	EventType    string       `json:"event_type"`
	Data         []byte       `json:"data"`
	PreviousHash *common.Hash `json:"previous_hash,omitempty"`
	Hash         common.Hash  `json:"hash"`
}

// ProofChain is an append only log of ledger lifecycle events, each entry
// hash covering its predecessor. It implements ledger.EventRecorder.
type ProofChain struct {
	entries []*ProofEntry
}

// NewProofChain create an empty proof chain
func NewProofChain() *ProofChain {
	return &ProofChain{}
}

func proofEntryHash(timestamp int64, eventType string, data []byte, prev *common.Hash) common.Hash {
	parts := [][]byte{
		common.Int64ToLittleEndian(timestamp),
		[]byte(eventType),
		data,
	}
	if prev != nil {
		parts = append(parts, prev.Bytes())
	}
	return common.Sha256Hash(parts...)
}

// RecordEvent append an event stamped now
func (c *ProofChain) RecordEvent(eventType string, data []byte) {
	c.append(common.Now(), eventType, data)
}

func (c *ProofChain) append(timestamp int64, eventType string, data []byte) {
	var prev *common.Hash
	if len(c.entries) > 0 {
		tip := c.entries[len(c.entries)-1].Hash
		prev = &tip
	}
	entry := &ProofEntry{
		Timestamp:    timestamp,
		EventType:    eventType,
		Data:         append([]byte(nil), data...),
		PreviousHash: prev,
	}
	entry.Hash = proofEntryHash(entry.Timestamp, entry.EventType, entry.Data, entry.PreviousHash)
	c.entries = append(c.entries, entry)
}

// Len returns the number of chained events
func (c *ProofChain) Len() int {
	return len(c.entries)
}

// Entries returns the chained events; callers must not mutate them
func (c *ProofChain) Entries() []*ProofEntry {
	return c.entries
}

// TipHash returns the hash of the latest entry, the cryptographic summary
// of the whole history. Zero for an empty chain.
func (c *ProofChain) TipHash() common.Hash {
	if len(c.entries) == 0 {
		return common.Hash{}
	}
	return c.entries[len(c.entries)-1].Hash
}

// VerifyChain walk the chain and fail fast on the first broken link
func (c *ProofChain) VerifyChain() error {
	for i, e := range c.entries {
		if i == 0 {
			if e.PreviousHash != nil {
				return ErrProofChainBroken
			}
		} else {
			if e.PreviousHash == nil || *e.PreviousHash != c.entries[i-1].Hash {
				return ErrProofChainBroken
			}
		}
		want := proofEntryHash(e.Timestamp, e.EventType, e.Data, e.PreviousHash)
		if want != e.Hash {
			return ErrProofChainBroken
		}
	}
	return nil
}
