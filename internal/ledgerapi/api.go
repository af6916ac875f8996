// Package ledgerapi is the serialized facade over the engine state shared
// by the api server and the background jobs. The ledger core is single
// threaded; every entry point here takes the engine lock.
package ledgerapi

import (
	"errors"
	"sync"

	"github.com/chainledger/ChainLedger/asset"
	"github.com/chainledger/ChainLedger/auditor"
	"github.com/chainledger/ChainLedger/common"
	"github.com/chainledger/ChainLedger/journal"
	"github.com/chainledger/ChainLedger/ledger"
	"github.com/chainledger/ChainLedger/merkle"
	"github.com/chainledger/ChainLedger/params"
)

// ErrNotInitialized is returned before SetEngine has run
var ErrNotInitialized = errors.New("ledger engine not initialized")

var (
	engineMutex sync.Mutex

	engLedger  *ledger.Ledger
	engJournal *journal.Journal
	engAuditor *auditor.Auditor
	engChain   *auditor.ProofChain
)

// SetEngine install the shared engine instances
func SetEngine(l *ledger.Ledger, j *journal.Journal, a *auditor.Auditor, c *auditor.ProofChain) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	engLedger, engJournal, engAuditor, engChain = l, j, a, c
}

func ready() error {
	if engLedger == nil || engJournal == nil {
		return ErrNotInitialized
	}
	return nil
}

// GetServerInfo api
func GetServerInfo() (*ServerInfo, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	identifier := ""
	if params.GetConfig() != nil {
		identifier = params.GetConfig().Identifier
	}
	info := &ServerInfo{
		Identifier: identifier,
		Version:    params.VersionWithMeta,
		Accounts:   len(engLedger.AccountNames()),
		Entries:    engJournal.Len(),
		Processed:  engLedger.ProcessedCount(),
	}
	if engChain != nil {
		info.ChainTip = engChain.TipHash().Hex()
	}
	return info, nil
}

// GetVersionInfo api
func GetVersionInfo() (*VersionInfo, error) {
	return &VersionInfo{Version: params.VersionWithMeta}, nil
}

// GetAccounts api
func GetAccounts() ([]ledger.TrialBalanceRecord, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	return engLedger.TrialBalance(), nil
}

// GetBalance api
func GetBalance(account string) (*BalanceResult, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	acc, err := engLedger.GetAccount(account)
	if err != nil {
		return nil, err
	}
	return &BalanceResult{
		Account:  acc.Name,
		Balance:  acc.Balance,
		Currency: acc.Currency,
		Type:     acc.Type.String(),
	}, nil
}

// GetJournalEntry api
func GetJournalEntry(sequence uint64) (*journal.Entry, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	return engJournal.Get(sequence)
}

// GetTransaction api
func GetTransaction(txid string) (*journal.Entry, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	return engJournal.GetByID(txid)
}

// GetJournalEntries api, returns up to limit entries starting at offset
func GetJournalEntries(offset uint64, limit int) ([]*journal.Entry, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	entries := engJournal.Entries()
	if offset >= uint64(len(entries)) {
		return []*journal.Entry{}, nil
	}
	end := offset + uint64(limit)
	if limit <= 0 || end > uint64(len(entries)) {
		end = uint64(len(entries))
	}
	return entries[offset:end], nil
}

// SubmitTransaction api: build, apply with rollback protection, commit
// and journal one transaction
func SubmitTransaction(args *SubmitTxArgs) (*SubmitTxResult, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	tx := ledger.NewTransaction(args.Amount, args.Currency, args.From, args.To, args.Memo)
	tx.DependsOn = args.DependsOn

	if err := engLedger.ProcessWithRollback(tx); err != nil {
		return nil, err
	}
	entry, err := engJournal.Append(tx)
	if err != nil {
		// the journal could not take the entry, undo the application
		_ = engLedger.Rollback(tx.ID)
		return nil, err
	}
	if err := engLedger.Commit(tx.ID); err != nil {
		return nil, err
	}
	return &SubmitTxResult{
		TxID:     tx.ID,
		Sequence: entry.Sequence,
		Hash:     entry.Hash.Hex(),
	}, nil
}

// RegisterAsset api: add one asset definition to the registry
func RegisterAsset(a *asset.Asset) error {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return err
	}
	return engLedger.RegisterAsset(a)
}

// RunAudit api: run a full audit pass over the shared engine
func RunAudit() (*auditor.Report, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	if engAuditor == nil {
		return nil, ErrNotInitialized
	}
	return engAuditor.Audit(engLedger, engJournal)
}

// BuildCheckpoint api: build the merkle attestation over the whole journal
func BuildCheckpoint() (*CheckpointResult, error) {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return nil, err
	}
	leaves, err := engJournal.MerkleLeaves()
	if err != nil {
		return nil, err
	}
	tree := merkle.NewTree(leaves)
	result := &CheckpointResult{
		Root:      tree.Root().Hex(),
		LeafCount: tree.LeafCount(),
		Timestamp: common.Now(),
	}
	if n := engJournal.Len(); n > 0 {
		result.TipSeq = uint64(n - 1)
	}
	return result, nil
}

// Checkpoint api: record a system checkpoint event on the proof chain
func Checkpoint(note string) error {
	engineMutex.Lock()
	defer engineMutex.Unlock()
	if err := ready(); err != nil {
		return err
	}
	engLedger.Checkpoint(note)
	return nil
}
