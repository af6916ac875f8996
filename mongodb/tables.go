package mongodb

const (
	tbTransactions string = "Transactions"
	tbAuditReports string = "AuditReports"
	tbCheckpoints  string = "MerkleCheckpoints"
)

// MgoTransaction is the archived form of one journaled transaction
type MgoTransaction struct {
	Key         string `bson:"_id"` // transaction id
	Timestamp   int64  `bson:"timestamp"`
	Amount      int64  `bson:"amount"`
	Currency    string `bson:"currency"`
	FromAccount string `bson:"from"`
	ToAccount   string `bson:"to"`
	Memo        string `bson:"memo"`
	Nonce       string `bson:"nonce"`
	DependsOn   string `bson:"dependson,omitempty"`
	Sequence    uint64 `bson:"sequence"`
	EntryHash   string `bson:"entryhash"`
}

// MgoAuditReport is the archived form of one audit pass
type MgoAuditReport struct {
	Key               string `bson:"_id"` // report uuid
	Timestamp         int64  `bson:"timestamp"`
	TotalTransactions int    `bson:"totaltxs"`
	IntegrityValid    bool   `bson:"integrityvalid"`
	DoubleEntryValid  bool   `bson:"doubleentryvalid"`
	HmacValid         bool   `bson:"hmacvalid"`
	DiscrepancyCount  int    `bson:"discrepancies"`
	DuplicateCount    int    `bson:"duplicates"`
	OrphanCount       int    `bson:"orphans"`
	AuditTrailHMAC    string `bson:"trailhmac"`
	IsValid           bool   `bson:"isvalid"`
}

// MgoCheckpoint is the archived form of one merkle batch attestation
type MgoCheckpoint struct {
	Key       string `bson:"_id"` // checkpoint uuid
	Timestamp int64  `bson:"timestamp"`
	Root      string `bson:"root"`
	LeafCount int    `bson:"leafcount"`
	TipSeq    uint64 `bson:"tipseq"`
}
