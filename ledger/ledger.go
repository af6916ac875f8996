// Package ledger implements the double entry accounting kernel: typed
// accounts, transaction application with dependency ordering, rollback
// snapshots and the conservation of value invariant.
//
// A Ledger instance is single threaded. Callers that share one instance
// across goroutines must serialize access externally.
package ledger

import (
	"encoding/json"
	"sort"

	mapset "github.com/deckarep/golang-set"

	"github.com/chainledger/ChainLedger/asset"
	"github.com/chainledger/ChainLedger/log"
)

// audit event tags, stable across releases
const (
	EventTransactionProcessed  = "transaction_processed"
	EventTransactionRolledBack = "transaction_rolled_back"
	EventAccountCreated        = "account_created"
	EventAssetRegistered       = "asset_registered"
	EventBalanceUpdated        = "balance_updated"
	EventSystemCheckpoint      = "system_checkpoint"
	EventStateChanged          = "state_changed"
	EventContractExecuted      = "contract_executed"
)

// EventRecorder receives ledger lifecycle events. The auditor's proof chain
// implements this interface.
type EventRecorder interface {
	RecordEvent(eventType string, data []byte)
}

// TrialBalanceRecord is one row of the trial balance enumeration
type TrialBalanceRecord struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// Ledger owns the account records, the asset registry, the processed
// transaction set and the pending rollback snapshots.
type Ledger struct {
	accounts  map[string]*Account
	assets    *asset.Registry
	rates     *asset.RateTable
	processed mapset.Set
	snapshots map[string]map[string]int64

	recorder EventRecorder

	// contract gas billing accounts, unset until configured
	gasPayerAccount string
	gasPoolAccount  string
}

// New create an empty ledger with a fresh asset registry
func New() *Ledger {
	return &Ledger{
		accounts:  make(map[string]*Account),
		assets:    asset.NewRegistry(),
		rates:     asset.NewRateTable(),
		processed: mapset.NewThreadUnsafeSet(),
		snapshots: make(map[string]map[string]int64),
	}
}

// SetEventRecorder attach the audit event sink
func (l *Ledger) SetEventRecorder(r EventRecorder) {
	l.recorder = r
}

func (l *Ledger) emit(eventType string, data interface{}) {
	if l.recorder == nil {
		return
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		log.Error("encode audit event failed", "event", eventType, "err", err)
		return
	}
	l.recorder.RecordEvent(eventType, encoded)
}

// Assets returns the asset registry
func (l *Ledger) Assets() *asset.Registry {
	return l.assets
}

// Rates returns the advisory exchange rate table
func (l *Ledger) Rates() *asset.RateTable {
	return l.rates
}

// RegisterAsset register an asset and emit the audit event
func (l *Ledger) RegisterAsset(a *asset.Asset) error {
	if err := l.assets.Register(a); err != nil {
		return err
	}
	l.emit(EventAssetRegistered, map[string]interface{}{
		"asset_id": a.ID,
		"kind":     a.Kind.String(),
		"decimals": a.Decimals,
	})
	return nil
}

// CreateAccount create a zero balance account, failing if the name is taken
func (l *Ledger) CreateAccount(name string, accType AccountType, currency string) (*Account, error) {
	if _, exist := l.accounts[name]; exist {
		return nil, ErrAccountExists
	}
	acc := NewAccount(name, accType, currency)
	l.accounts[name] = acc
	l.emit(EventAccountCreated, map[string]interface{}{
		"name":     name,
		"type":     accType.String(),
		"currency": currency,
	})
	log.Info("created account", "name", name, "type", accType.String(), "currency", currency)
	return acc, nil
}

// GetAccount lookup an account by name
func (l *Ledger) GetAccount(name string) (*Account, error) {
	acc, exist := l.accounts[name]
	if !exist {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

// GetBalance returns the account balance in smallest units
func (l *Ledger) GetBalance(name string) (int64, error) {
	acc, err := l.GetAccount(name)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// AccountNames list all account names in sorted order
func (l *Ledger) AccountNames() []string {
	names := make([]string, 0, len(l.accounts))
	for name := range l.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DebitAccount apply a direct debit outside transaction processing,
// used for opening balances and adjustments
func (l *Ledger) DebitAccount(name string, x int64) error {
	acc, err := l.GetAccount(name)
	if err != nil {
		return err
	}
	acc.Debit(x)
	l.emit(EventBalanceUpdated, map[string]interface{}{
		"account": name,
		"op":      "debit",
		"amount":  x,
		"balance": acc.Balance,
	})
	return nil
}

// CreditAccount apply a direct credit outside transaction processing
func (l *Ledger) CreditAccount(name string, x int64) error {
	acc, err := l.GetAccount(name)
	if err != nil {
		return err
	}
	acc.Credit(x)
	l.emit(EventBalanceUpdated, map[string]interface{}{
		"account": name,
		"op":      "credit",
		"amount":  x,
		"balance": acc.Balance,
	})
	return nil
}

// IsProcessed returns true if the transaction id has been applied
func (l *Ledger) IsProcessed(txid string) bool {
	return l.processed.Contains(txid)
}

// ProcessedCount returns the number of applied transactions
func (l *Ledger) ProcessedCount() int {
	return l.processed.Cardinality()
}

// ProcessTransaction validate and apply one transaction:
// dependency check, asset policy, account and currency checks, then
// credit the source and debit the destination.
func (l *Ledger) ProcessTransaction(tx *Transaction) error {
	if tx.DependsOn != nil && !l.processed.Contains(*tx.DependsOn) {
		return ErrDependencyNotFound
	}
	if err := l.assets.ValidateTransaction(tx.Currency, tx.Amount); err != nil {
		return err
	}
	from, exist := l.accounts[tx.FromAccount]
	if !exist {
		return ErrFromAccountNotFound
	}
	if from.Currency != tx.Currency {
		return ErrCurrencyMismatch
	}
	to, exist := l.accounts[tx.ToAccount]
	if !exist {
		return ErrToAccountNotFound
	}
	if to.Currency != tx.Currency {
		return ErrCurrencyMismatch
	}

	from.Credit(tx.Amount)
	to.Debit(tx.Amount)
	l.processed.Add(tx.ID)

	l.emit(EventTransactionProcessed, map[string]interface{}{
		"txid":   tx.ID,
		"from":   tx.FromAccount,
		"to":     tx.ToAccount,
		"amount": tx.Amount,
	})
	return nil
}

// ProcessWithRollback snapshot the affected balances, then apply.
// On failure the snapshot is restored and the original error returned.
// On success the snapshot stays until Commit or Rollback.
func (l *Ledger) ProcessWithRollback(tx *Transaction) error {
	snapshot := make(map[string]int64, 2)
	if from, exist := l.accounts[tx.FromAccount]; exist {
		snapshot[tx.FromAccount] = from.Balance
	}
	if to, exist := l.accounts[tx.ToAccount]; exist {
		snapshot[tx.ToAccount] = to.Balance
	}
	l.snapshots[tx.ID] = snapshot

	if err := l.ProcessTransaction(tx); err != nil {
		l.restoreSnapshot(snapshot)
		delete(l.snapshots, tx.ID)
		return err
	}
	return nil
}

// Commit drop the rollback snapshot of a successfully applied transaction
func (l *Ledger) Commit(txid string) error {
	if _, exist := l.snapshots[txid]; !exist {
		return ErrSnapshotNotFound
	}
	delete(l.snapshots, txid)
	return nil
}

// Rollback restore the snapshotted balances and forget the transaction
func (l *Ledger) Rollback(txid string) error {
	snapshot, exist := l.snapshots[txid]
	if !exist {
		return ErrSnapshotNotFound
	}
	l.restoreSnapshot(snapshot)
	l.processed.Remove(txid)
	delete(l.snapshots, txid)

	l.emit(EventTransactionRolledBack, map[string]interface{}{
		"txid": txid,
	})
	log.Info("rolled back transaction", "txid", txid)
	return nil
}

func (l *Ledger) restoreSnapshot(snapshot map[string]int64) {
	for name, balance := range snapshot {
		if acc, exist := l.accounts[name]; exist {
			acc.Balance = balance
		}
	}
}

// VerifyDoubleEntry check the conservation of value equation:
// sum(asset) = sum(liability) + sum(equity) + sum(revenue) - sum(expense)
func (l *Ledger) VerifyDoubleEntry() bool {
	var sums [5]int64
	for _, acc := range l.accounts {
		sums[acc.Type] += acc.Balance
	}
	lhs := sums[AccountAsset]
	rhs := sums[AccountLiability] + sums[AccountEquity] + sums[AccountRevenue] - sums[AccountExpense]
	return lhs == rhs
}

// TrialBalance enumerate all accounts as trial balance rows sorted by name
func (l *Ledger) TrialBalance() []TrialBalanceRecord {
	records := make([]TrialBalanceRecord, 0, len(l.accounts))
	for _, name := range l.AccountNames() {
		acc := l.accounts[name]
		records = append(records, TrialBalanceRecord{
			Name:     acc.Name,
			Type:     acc.Type.String(),
			Balance:  acc.Balance,
			Currency: acc.Currency,
		})
	}
	return records
}

// Checkpoint emit a system checkpoint audit event with a free form note
func (l *Ledger) Checkpoint(note string) {
	l.emit(EventSystemCheckpoint, map[string]interface{}{
		"note":      note,
		"accounts":  len(l.accounts),
		"processed": l.processed.Cardinality(),
	})
}
