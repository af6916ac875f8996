package asset

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/chainledger/ChainLedger/common"
)

// LoadFromFile decode one asset definition from a toml file
func LoadFromFile(path string) (*Asset, error) {
	a := &Asset{}
	if _, err := toml.DecodeFile(path, a); err != nil {
		return nil, err
	}
	if a.ID == "" {
		return nil, fmt.Errorf("asset file %v has no id", path)
	}
	if a.KindTag != "" {
		kind, ok := ParseKind(a.KindTag)
		if !ok {
			return nil, fmt.Errorf("asset file %v has unknown kind %q", path, a.KindTag)
		}
		a.Kind = kind
	}
	if a.Decimals > MaxDecimals {
		return nil, ErrInvalidDecimals
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = common.Now()
	}
	return a, nil
}
