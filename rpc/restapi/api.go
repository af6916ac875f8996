// Package restapi exposes the read endpoints and transaction submission
// over plain http.
package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/chainledger/ChainLedger/internal/ledgerapi"
)

func writeResponse(w http.ResponseWriter, resp interface{}, err error) {
	if err == nil {
		jsonData, _ := json.Marshal(resp)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(jsonData)
	} else {
		fmt.Fprintln(w, err.Error())
	}
}

// ServerInfoHandler handler
func ServerInfoHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	res, err := ledgerapi.GetServerInfo()
	writeResponse(w, res, err)
}

// VersionInfoHandler handler
func VersionInfoHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	res, err := ledgerapi.GetVersionInfo()
	writeResponse(w, res, err)
}

// AccountsHandler handler
func AccountsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	res, err := ledgerapi.GetAccounts()
	writeResponse(w, res, err)
}

// BalanceHandler handler
func BalanceHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.WriteHeader(http.StatusOK)
	res, err := ledgerapi.GetBalance(vars["account"])
	writeResponse(w, res, err)
}

// JournalEntryHandler handler
func JournalEntryHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.WriteHeader(http.StatusOK)
	seq, err := strconv.ParseUint(vars["seq"], 10, 64)
	if err != nil {
		writeResponse(w, nil, fmt.Errorf("invalid sequence '%v'", vars["seq"]))
		return
	}
	res, err := ledgerapi.GetJournalEntry(seq)
	writeResponse(w, res, err)
}

// JournalHandler handler, supports offset and limit query params
func JournalHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	offset, _ := strconv.ParseUint(r.URL.Query().Get("offset"), 10, 64)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	res, err := ledgerapi.GetJournalEntries(offset, limit)
	writeResponse(w, res, err)
}

// TransactionHandler handler
func TransactionHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.WriteHeader(http.StatusOK)
	res, err := ledgerapi.GetTransaction(vars["txid"])
	writeResponse(w, res, err)
}

// AuditReportHandler handler, runs a fresh audit pass
func AuditReportHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	res, err := ledgerapi.RunAudit()
	writeResponse(w, res, err)
}

// CheckpointHandler handler, builds the current merkle attestation
func CheckpointHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	res, err := ledgerapi.BuildCheckpoint()
	writeResponse(w, res, err)
}

// SubmitTxHandler handler, accepts a json SubmitTxArgs body
func SubmitTxHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	var args ledgerapi.SubmitTxArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		writeResponse(w, nil, fmt.Errorf("invalid request body: %v", err))
		return
	}
	res, err := ledgerapi.SubmitTransaction(&args)
	writeResponse(w, res, err)
}
