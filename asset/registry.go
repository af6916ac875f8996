package asset

import (
	"sort"

	"github.com/chainledger/ChainLedger/log"
)

// Registry maps asset ids to their definitions and policy.
// Not safe for concurrent mutation, callers serialize access.
type Registry struct {
	assets map[string]*Asset
}

// NewRegistry create an empty asset registry
func NewRegistry() *Registry {
	return &Registry{assets: make(map[string]*Asset)}
}

// Register insert a clone of the asset, failing if the id is taken
func (r *Registry) Register(a *Asset) error {
	if _, exist := r.assets[a.ID]; exist {
		return ErrAssetAlreadyExists
	}
	if a.Decimals > MaxDecimals {
		return ErrInvalidDecimals
	}
	r.assets[a.ID] = a.Clone()
	log.Info("registered asset", "id", a.ID, "kind", a.Kind.String(), "decimals", a.Decimals)
	return nil
}

// Get lookup an asset by id
func (r *Registry) Get(id string) (*Asset, error) {
	a, exist := r.assets[id]
	if !exist {
		return nil, ErrAssetNotFound
	}
	return a, nil
}

// Has returns true if an asset with the id is registered
func (r *Registry) Has(id string) bool {
	_, exist := r.assets[id]
	return exist
}

// IDs list the registered asset ids in sorted order
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.assets))
	for id := range r.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Freeze stop all transfers of the asset
func (r *Registry) Freeze(id string) error {
	a, exist := r.assets[id]
	if !exist {
		return ErrAssetNotFound
	}
	a.Frozen = true
	log.Warn("asset frozen", "id", id)
	return nil
}

// Unfreeze resume transfers of the asset
func (r *Registry) Unfreeze(id string) error {
	a, exist := r.assets[id]
	if !exist {
		return ErrAssetNotFound
	}
	a.Frozen = false
	log.Info("asset unfrozen", "id", id)
	return nil
}

// SetTxLimit set the per transaction amount cap
func (r *Registry) SetTxLimit(id string, max int64) error {
	a, exist := r.assets[id]
	if !exist {
		return ErrAssetNotFound
	}
	a.MaxTransactionAmount = &max
	return nil
}

// ValidateTransaction check asset policy for a transfer of amount
// smallest units. Check order: existence, frozen flag, amount cap.
func (r *Registry) ValidateTransaction(id string, amount int64) error {
	a, exist := r.assets[id]
	if !exist {
		return ErrAssetNotFound
	}
	if a.Frozen {
		return ErrAssetFrozen
	}
	if a.MaxTransactionAmount != nil && amount > *a.MaxTransactionAmount {
		return ErrTransactionAmountTooLarge
	}
	return nil
}
