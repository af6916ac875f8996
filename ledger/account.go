package ledger

import (
	"github.com/chainledger/ChainLedger/common"
)

// AccountType enumerates the five double entry account classes
type AccountType uint8

// account types
const (
	AccountAsset AccountType = iota
	AccountLiability
	AccountEquity
	AccountRevenue
	AccountExpense
)

// String implements the stringer interface
func (t AccountType) String() string {
	switch t {
	case AccountAsset:
		return "asset"
	case AccountLiability:
		return "liability"
	case AccountEquity:
		return "equity"
	case AccountRevenue:
		return "revenue"
	case AccountExpense:
		return "expense"
	default:
		return "unknown"
	}
}

// ParseAccountType parse an account type tag
func ParseAccountType(s string) (AccountType, bool) {
	switch s {
	case "asset":
		return AccountAsset, true
	case "liability":
		return AccountLiability, true
	case "equity":
		return AccountEquity, true
	case "revenue":
		return AccountRevenue, true
	case "expense":
		return AccountExpense, true
	default:
		return 0, false
	}
}

// Account is a named typed balance holder for one asset.
// Balances are integers in the asset's smallest unit.
type Account struct {
	Name      string      `json:"name"`
	Currency  string      `json:"currency"`
	Type      AccountType `json:"type"`
	Balance   int64       `json:"balance"`
	CreatedAt int64       `json:"created_at"`
}

// NewAccount create a zero balance account stamped now
func NewAccount(name string, accType AccountType, currency string) *Account {
	return &Account{
		Name:      name,
		Currency:  currency,
		Type:      accType,
		CreatedAt: common.Now(),
	}
}

// debitIncreases reports whether a debit raises the balance for this type
func (a *Account) debitIncreases() bool {
	return a.Type == AccountAsset || a.Type == AccountExpense
}

// Debit apply a debit of x smallest units following the sign convention
// of the account type
func (a *Account) Debit(x int64) {
	if a.debitIncreases() {
		a.Balance += x
	} else {
		a.Balance -= x
	}
}

// Credit apply a credit of x smallest units, the inverse of Debit
func (a *Account) Credit(x int64) {
	if a.debitIncreases() {
		a.Balance -= x
	} else {
		a.Balance += x
	}
}

// Clone returns a copy of the account record
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}
