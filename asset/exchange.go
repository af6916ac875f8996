package asset

import (
	"github.com/shopspring/decimal"

	"github.com/chainledger/ChainLedger/common"
)

// ExchangeRate is an advisory conversion rate between two assets.
// Conversion never crosses assets inside a transaction, it only answers
// "what is this amount worth over there" questions.
type ExchangeRate struct {
	From      string
	To        string
	Rate      decimal.Decimal
	Timestamp int64
}

type ratePair struct {
	from string
	to   string
}

// RateTable holds the advisory exchange rates
type RateTable struct {
	rates map[ratePair]*ExchangeRate
}

// NewRateTable create an empty rate table
func NewRateTable() *RateTable {
	return &RateTable{rates: make(map[ratePair]*ExchangeRate)}
}

// SetRate record the rate from -> to, stamped now
func (t *RateTable) SetRate(from, to string, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return ErrInvalidRate
	}
	t.rates[ratePair{from, to}] = &ExchangeRate{
		From:      from,
		To:        to,
		Rate:      rate,
		Timestamp: common.Now(),
	}
	return nil
}

// GetRate lookup the rate from -> to
func (t *RateTable) GetRate(from, to string) (*ExchangeRate, error) {
	r, exist := t.rates[ratePair{from, to}]
	if !exist {
		return nil, ErrRateNotFound
	}
	return r, nil
}

// Convert returns floor(amount * rate) in the target asset's smallest unit
func (t *RateTable) Convert(from, to string, amount int64) (int64, error) {
	r, err := t.GetRate(from, to)
	if err != nil {
		return 0, err
	}
	converted := decimal.New(amount, 0).Mul(r.Rate).Floor()
	return converted.IntPart(), nil
}
