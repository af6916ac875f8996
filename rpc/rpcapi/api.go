// Package rpcapi provides the json-rpc counterpart of the rest endpoints;
// the journal listing and by-sequence lookup have no json-rpc method.
package rpcapi

import (
	"net/http"

	"github.com/chainledger/ChainLedger/auditor"
	"github.com/chainledger/ChainLedger/internal/ledgerapi"
	"github.com/chainledger/ChainLedger/journal"
	"github.com/chainledger/ChainLedger/ledger"
)

// RPCAPI rpc api handler
type RPCAPI struct{}

// RPCNullArgs null args
type RPCNullArgs struct{}

// GetServerInfo api
func (s *RPCAPI) GetServerInfo(r *http.Request, args *RPCNullArgs, result *ledgerapi.ServerInfo) error {
	res, err := ledgerapi.GetServerInfo()
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetVersionInfo api
func (s *RPCAPI) GetVersionInfo(r *http.Request, args *RPCNullArgs, result *string) error {
	res, err := ledgerapi.GetVersionInfo()
	if err == nil && res != nil {
		*result = res.Version
	}
	return err
}

// GetAccounts api
func (s *RPCAPI) GetAccounts(r *http.Request, args *RPCNullArgs, result *[]ledger.TrialBalanceRecord) error {
	res, err := ledgerapi.GetAccounts()
	if err == nil {
		*result = res
	}
	return err
}

// GetBalance api
func (s *RPCAPI) GetBalance(r *http.Request, account *string, result *ledgerapi.BalanceResult) error {
	res, err := ledgerapi.GetBalance(*account)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetTransaction api
func (s *RPCAPI) GetTransaction(r *http.Request, txid *string, result *journal.Entry) error {
	res, err := ledgerapi.GetTransaction(*txid)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// SubmitTransaction api
func (s *RPCAPI) SubmitTransaction(r *http.Request, args *ledgerapi.SubmitTxArgs, result *ledgerapi.SubmitTxResult) error {
	res, err := ledgerapi.SubmitTransaction(args)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// RunAudit api
func (s *RPCAPI) RunAudit(r *http.Request, args *RPCNullArgs, result *auditor.Report) error {
	res, err := ledgerapi.RunAudit()
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// BuildCheckpoint api
func (s *RPCAPI) BuildCheckpoint(r *http.Request, args *RPCNullArgs, result *ledgerapi.CheckpointResult) error {
	res, err := ledgerapi.BuildCheckpoint()
	if err == nil && res != nil {
		*result = *res
	}
	return err
}
