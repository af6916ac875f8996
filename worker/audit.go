package worker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pborman/uuid"

	"github.com/chainledger/ChainLedger/internal/ledgerapi"
	"github.com/chainledger/ChainLedger/mongodb"
	"github.com/chainledger/ChainLedger/params"
	"github.com/chainledger/ChainLedger/tools"
)

// StartAuditJob run a full audit pass on the configured interval,
// archive the report and raise alerts on failures
func StartAuditJob() {
	logWorker("audit", "start audit job")
	auditInterval := time.Duration(params.GetAuditInterval()) * time.Second
	for {
		runAuditOnce()
		time.Sleep(auditInterval)
	}
}

func runAuditOnce() {
	report, err := ledgerapi.RunAudit()
	if err != nil {
		logWorkerError("audit", "audit pass failed", err)
		return
	}
	if report.IsValid() {
		logWorker("audit", "audit pass clean", "totalTxs", report.TotalTransactions)
	} else {
		logWorkerWarn("audit", "audit pass found problems",
			"integrity", report.IntegrityValid,
			"doubleEntry", report.DoubleEntryValid,
			"hmac", report.HmacValid,
			"discrepancies", len(report.BalanceDiscrepancies),
			"duplicates", len(report.DuplicateIDs),
			"orphans", len(report.OrphanIDs))
		alertAuditFailure(report)
	}

	_ = ledgerapi.Checkpoint("periodic audit")

	if mongodb.HasSession() {
		if err := mongodb.AddAuditReport(uuid.NewRandom().String(), report); err != nil {
			logWorkerError("audit", "archive report failed", err)
		}
	}
}

func alertAuditFailure(report interface{}) {
	if !params.HasEmailAlert() || !tools.EmailEnabled() {
		return
	}
	content, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logWorkerError("audit", "encode alert content failed", err)
		return
	}
	recipients := params.GetConfig().Audit.AlertRecipients
	subject := fmt.Sprintf("[%v] audit failure", params.GetConfig().Identifier)
	if err := tools.SendEmail(recipients, subject, string(content)); err != nil {
		logWorkerError("audit", "send alert email failed", err)
	} else {
		logWorker("audit", "sent alert email", "recipients", recipients)
	}
}
