package mongodb

import (
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/chainledger/ChainLedger/auditor"
	"github.com/chainledger/ChainLedger/journal"
)

var (
	collTransactions *mgo.Collection
	collAuditReports *mgo.Collection
	collCheckpoints  *mgo.Collection
)

const maxCountOfResults = 5000

func initCollections() {
	collTransactions = database.C(tbTransactions)
	collTransactions.EnsureIndexKey("timestamp", "from", "to")
	collAuditReports = database.C(tbAuditReports)
	collAuditReports.EnsureIndexKey("timestamp")
	collCheckpoints = database.C(tbCheckpoints)
	collCheckpoints.EnsureIndexKey("timestamp")
}

// AddJournalEntry archive one journal entry
func AddJournalEntry(e *journal.Entry) error {
	tx := e.Transaction
	mt := &MgoTransaction{
		Key:         tx.ID,
		Timestamp:   tx.Timestamp,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		FromAccount: tx.FromAccount,
		ToAccount:   tx.ToAccount,
		Nonce:       tx.Nonce,
		Sequence:    e.Sequence,
		EntryHash:   e.Hash.Hex(),
	}
	if tx.Memo != nil {
		mt.Memo = *tx.Memo
	}
	if tx.DependsOn != nil {
		mt.DependsOn = *tx.DependsOn
	}
	return mgoError(collTransactions.Insert(mt))
}

// FindTransaction lookup one archived transaction by id
func FindTransaction(txid string) (*MgoTransaction, error) {
	var result MgoTransaction
	err := collTransactions.FindId(txid).One(&result)
	if err != nil {
		return nil, mgoError(err)
	}
	return &result, nil
}

// FindTransactionsByAccount list archived transactions touching account
func FindTransactionsByAccount(account string, limit int) ([]*MgoTransaction, error) {
	if limit <= 0 || limit > maxCountOfResults {
		limit = maxCountOfResults
	}
	query := bson.M{"$or": []bson.M{{"from": account}, {"to": account}}}
	result := make([]*MgoTransaction, 0, 20)
	err := collTransactions.Find(query).Sort("timestamp").Limit(limit).All(&result)
	if err != nil {
		return nil, mgoError(err)
	}
	return result, nil
}

// AddAuditReport archive one audit report under the given key
func AddAuditReport(key string, report *auditor.Report) error {
	mr := &MgoAuditReport{
		Key:               key,
		Timestamp:         report.Timestamp,
		TotalTransactions: report.TotalTransactions,
		IntegrityValid:    report.IntegrityValid,
		DoubleEntryValid:  report.DoubleEntryValid,
		HmacValid:         report.HmacValid,
		DiscrepancyCount:  len(report.BalanceDiscrepancies),
		DuplicateCount:    len(report.DuplicateIDs),
		OrphanCount:       len(report.OrphanIDs),
		AuditTrailHMAC:    report.AuditTrailHMAC,
		IsValid:           report.IsValid(),
	}
	return mgoError(collAuditReports.Insert(mr))
}

// FindLatestAuditReport returns the newest archived report
func FindLatestAuditReport() (*MgoAuditReport, error) {
	var result MgoAuditReport
	err := collAuditReports.Find(nil).Sort("-timestamp").One(&result)
	if err != nil {
		return nil, mgoError(err)
	}
	return &result, nil
}

// AddCheckpoint archive one merkle checkpoint
func AddCheckpoint(cp *MgoCheckpoint) error {
	return mgoError(collCheckpoints.Insert(cp))
}

// FindCheckpoints list archived checkpoints newest first
func FindCheckpoints(limit int) ([]*MgoCheckpoint, error) {
	if limit <= 0 || limit > maxCountOfResults {
		limit = maxCountOfResults
	}
	result := make([]*MgoCheckpoint, 0, 20)
	err := collCheckpoints.Find(nil).Sort("-timestamp").Limit(limit).All(&result)
	if err != nil {
		return nil, mgoError(err)
	}
	return result, nil
}
