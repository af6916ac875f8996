package ledger

// Contract hook surface. The ledger records value opaque execution
// outcomes reported by an external engine; it never interprets contract
// code, keeps no contract storage and schedules nothing.

// ContractEvent summarizes one reported contract execution
type ContractEvent struct {
	Address string `json:"address"`
	GasUsed uint64 `json:"gas_used"`
	Success bool   `json:"success"`
}

// SetGasAccounts configure gas billing: every reported execution that
// consumed gas is settled by a transaction from payer to pool. Both must
// exist in the ledger.
func (l *Ledger) SetGasAccounts(payer, pool string) error {
	if _, err := l.GetAccount(payer); err != nil {
		return ErrFromAccountNotFound
	}
	if _, err := l.GetAccount(pool); err != nil {
		return ErrToAccountNotFound
	}
	l.gasPayerAccount = payer
	l.gasPoolAccount = pool
	return nil
}

// RecordContractExecution report a contract run. Emits an audit event and,
// when gas billing accounts are configured and gas was consumed, applies a
// gas settlement transaction from the payer to the pool account.
func (l *Ledger) RecordContractExecution(address string, gasUsed uint64, success bool) (*Transaction, error) {
	l.emit(EventContractExecuted, &ContractEvent{
		Address: address,
		GasUsed: gasUsed,
		Success: success,
	})
	if l.gasPayerAccount == "" || l.gasPoolAccount == "" || gasUsed == 0 {
		return nil, nil
	}
	payer, err := l.GetAccount(l.gasPayerAccount)
	if err != nil {
		return nil, ErrGasAccountsNotSet
	}
	memo := "gas: " + address
	tx := NewTransaction(int64(gasUsed), payer.Currency, l.gasPayerAccount, l.gasPoolAccount, &memo)
	if err := l.ProcessTransaction(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// RecordStateChange report a contract state root change; it lands on the
// audit proof chain as a state_changed event
func (l *Ledger) RecordStateChange(address, stateHash string) {
	l.emit(EventStateChanged, map[string]interface{}{
		"address":    address,
		"state_hash": stateHash,
	})
}
