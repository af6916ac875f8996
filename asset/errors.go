package asset

import (
	"errors"
)

// asset validation errors
var (
	ErrAssetAlreadyExists        = errors.New("asset already exists")
	ErrAssetNotFound             = errors.New("asset not found")
	ErrAssetFrozen               = errors.New("asset is frozen")
	ErrTransactionAmountTooLarge = errors.New("transaction amount exceeds asset limit")
	ErrInvalidDecimals           = errors.New("asset decimals out of range")
	ErrRateNotFound              = errors.New("exchange rate not found")
	ErrInvalidRate               = errors.New("exchange rate must be positive")
)
