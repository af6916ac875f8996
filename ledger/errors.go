package ledger

import (
	"errors"
)

// kernel errors
var (
	ErrAccountExists       = errors.New("account already exists")
	ErrAccountNotFound     = errors.New("account not found")
	ErrFromAccountNotFound = errors.New("from account not found")
	ErrToAccountNotFound   = errors.New("to account not found")
	ErrCurrencyMismatch    = errors.New("account currency mismatch")
	ErrDependencyNotFound  = errors.New("dependency transaction not processed")
	ErrSnapshotNotFound    = errors.New("rollback snapshot not found")
	ErrUnknownAccountType  = errors.New("unknown account type")
	ErrGasAccountsNotSet   = errors.New("gas billing accounts not configured")
)

// transaction errors
var (
	ErrSignatureInvalid  = errors.New("transaction signature invalid")
	ErrHmacInvalid       = errors.New("transaction hmac invalid")
	ErrNotSigned         = errors.New("transaction is not signed")
	ErrNoHmac            = errors.New("transaction has no integrity hmac")
	ErrInvalidKeyFormat  = errors.New("invalid key format")
	ErrMalformedRecord   = errors.New("malformed transaction record")
	ErrInvalidFieldValue = errors.New("invalid transaction field value")
)
