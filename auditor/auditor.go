package auditor

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"

	"github.com/chainledger/ChainLedger/common"
	"github.com/chainledger/ChainLedger/journal"
	"github.com/chainledger/ChainLedger/ledger"
	"github.com/chainledger/ChainLedger/log"
)

// BalanceDiscrepancy records a mismatch between the live ledger balance
// and the journal replay. Replay uses the raw signed convention, so
// discrepancies on non asset account types may be expected; consumers
// filter on AccountType.
type BalanceDiscrepancy struct {
	Account     string `json:"account"`
	AccountType string `json:"account_type"`
	Expected    int64  `json:"expected"`
	Actual      int64  `json:"actual"`
	Diff        int64  `json:"diff"`
}

// Report is the outcome of one full audit pass
type Report struct {
	Timestamp            int64                `json:"timestamp"`
	TotalTransactions    int                  `json:"total_transactions"`
	IntegrityValid       bool                 `json:"integrity_valid"`
	DoubleEntryValid     bool                 `json:"double_entry_valid"`
	HmacValid            bool                 `json:"hmac_valid"`
	BalanceDiscrepancies []BalanceDiscrepancy `json:"balance_discrepancies"`
	DuplicateIDs         []string             `json:"duplicate_ids"`
	OrphanIDs            []string             `json:"orphan_ids"`
	AuditTrailHMAC       string               `json:"audit_trail_hmac"`
}

// IsValid requires every boolean true and every finding list empty
func (r *Report) IsValid() bool {
	return r.IntegrityValid && r.DoubleEntryValid && r.HmacValid &&
		len(r.BalanceDiscrepancies) == 0 &&
		len(r.DuplicateIDs) == 0 &&
		len(r.OrphanIDs) == 0
}

// Auditor runs replay based audits keyed by the trail hmac secret
type Auditor struct {
	key []byte
}

// New create an auditor with the given trail hmac key
func New(key []byte) *Auditor {
	return &Auditor{key: append([]byte(nil), key...)}
}

// trailHMAC computes hmac-sha256 over the canonical transaction encodings
// joined with '|'
func (a *Auditor) trailHMAC(j *journal.Journal) (string, error) {
	parts := make([]string, 0, j.Len())
	for _, tx := range j.Transactions() {
		data, err := tx.CanonicalJSON()
		if err != nil {
			return "", err
		}
		parts = append(parts, string(data))
	}
	mac := hmac.New(sha256.New, a.key)
	mac.Write([]byte(strings.Join(parts, "|")))
	return common.ToHex(mac.Sum(nil)), nil
}

// Audit run every check against the ledger and journal pair
func (a *Auditor) Audit(l *ledger.Ledger, j *journal.Journal) (*Report, error) {
	report := &Report{
		Timestamp:            common.Now(),
		TotalTransactions:    j.Len(),
		BalanceDiscrepancies: []BalanceDiscrepancy{},
		DuplicateIDs:         []string{},
		OrphanIDs:            []string{},
	}

	if err := j.VerifyIntegrity(); err != nil {
		log.Warn("audit found broken journal", "err", err)
	} else {
		report.IntegrityValid = true
	}

	report.DoubleEntryValid = l.VerifyDoubleEntry()

	// whole trail hmac: valid iff a recomputation is stable under the key
	mac1, err := a.trailHMAC(j)
	if err != nil {
		return nil, err
	}
	mac2, err := a.trailHMAC(j)
	if err != nil {
		return nil, err
	}
	report.AuditTrailHMAC = mac1
	report.HmacValid = common.ConstantTimeEqual([]byte(mac1), []byte(mac2))

	a.findDuplicates(j, report)
	a.findOrphans(l, j, report)
	a.recomputeBalances(l, j, report)
	return report, nil
}

func (a *Auditor) findDuplicates(j *journal.Journal, report *Report) {
	seen := make(map[string]bool)
	for _, tx := range j.Transactions() {
		if seen[tx.ID] {
			report.DuplicateIDs = append(report.DuplicateIDs, tx.ID)
			continue
		}
		seen[tx.ID] = true
	}
}

func (a *Auditor) findOrphans(l *ledger.Ledger, j *journal.Journal, report *Report) {
	for _, tx := range j.Transactions() {
		if _, err := l.GetAccount(tx.FromAccount); err != nil {
			report.OrphanIDs = append(report.OrphanIDs, tx.ID)
			continue
		}
		if _, err := l.GetAccount(tx.ToAccount); err != nil {
			report.OrphanIDs = append(report.OrphanIDs, tx.ID)
		}
	}
}

// recomputeBalances replay every journaled transaction from zero with the
// signed double entry neutral convention: from -= amount, to += amount
func (a *Auditor) recomputeBalances(l *ledger.Ledger, j *journal.Journal, report *Report) {
	replayed := make(map[string]int64)
	for _, tx := range j.Transactions() {
		replayed[tx.FromAccount] -= tx.Amount
		replayed[tx.ToAccount] += tx.Amount
	}
	for _, name := range l.AccountNames() {
		acc, err := l.GetAccount(name)
		if err != nil {
			continue
		}
		expected := replayed[name]
		if expected != acc.Balance {
			report.BalanceDiscrepancies = append(report.BalanceDiscrepancies, BalanceDiscrepancy{
				Account:     name,
				AccountType: acc.Type.String(),
				Expected:    expected,
				Actual:      acc.Balance,
				Diff:        acc.Balance - expected,
			})
		}
	}
}
