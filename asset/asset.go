// Package asset defines the currencies and tokens a ledger can account for,
// the per asset transfer policy, and an advisory exchange rate table.
package asset

import (
	"github.com/chainledger/ChainLedger/common"
)

// Kind enumerates the supported asset categories
type Kind uint8

// asset kinds
const (
	KindNative Kind = iota
	KindToken
	KindNonFungible
	KindSynthetic
	KindStable
)

// String implements the stringer interface
func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindToken:
		return "token"
	case KindNonFungible:
		return "non-fungible"
	case KindSynthetic:
		return "synthetic"
	case KindStable:
		return "stable"
	default:
		return "unknown"
	}
}

// ParseKind parse an asset kind tag
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "native":
		return KindNative, true
	case "token":
		return KindToken, true
	case "non-fungible":
		return KindNonFungible, true
	case "synthetic":
		return KindSynthetic, true
	case "stable":
		return KindStable, true
	default:
		return 0, false
	}
}

// MaxDecimals is the largest supported smallest-unit precision
const MaxDecimals = 18

// Asset describes one currency or token known to the ledger
type Asset struct {
	ID       string `toml:"id" json:"id"`
	Kind     Kind   `toml:"-" json:"kind"`
	KindTag  string `toml:"kind,omitempty" json:"-"`
	Symbol   string `toml:"symbol" json:"symbol"`
	Name     string `toml:"name" json:"name"`
	Decimals uint8  `toml:"decimals" json:"decimals"`

	TotalSupply *int64 `toml:"total_supply,omitempty" json:"total_supply,omitempty"`
	Issuer      string `toml:"issuer,omitempty" json:"issuer,omitempty"`
	CreatedAt   int64  `toml:"-" json:"created_at"`

	// policy
	MaxTransactionAmount *int64 `toml:"max_transaction_amount,omitempty" json:"max_transaction_amount,omitempty"`
	DailyLimit           *int64 `toml:"daily_limit,omitempty" json:"daily_limit,omitempty"`
	Frozen               bool   `toml:"frozen,omitempty" json:"frozen"`
	RequiresApproval     bool   `toml:"requires_approval,omitempty" json:"requires_approval"`
	WhitelistOnly        bool   `toml:"whitelist_only,omitempty" json:"whitelist_only"`
}

// New create an asset with defaulted metadata
func New(id, symbol, name string, kind Kind, decimals uint8) (*Asset, error) {
	if decimals > MaxDecimals {
		return nil, ErrInvalidDecimals
	}
	return &Asset{
		ID:        id,
		Kind:      kind,
		Symbol:    symbol,
		Name:      name,
		Decimals:  decimals,
		CreatedAt: common.Now(),
	}, nil
}

// Clone returns a deep copy of the asset
func (a *Asset) Clone() *Asset {
	cp := *a
	if a.TotalSupply != nil {
		v := *a.TotalSupply
		cp.TotalSupply = &v
	}
	if a.MaxTransactionAmount != nil {
		v := *a.MaxTransactionAmount
		cp.MaxTransactionAmount = &v
	}
	if a.DailyLimit != nil {
		v := *a.DailyLimit
		cp.DailyLimit = &v
	}
	return &cp
}
