package ledgerapi

// ServerInfo is the /serverinfo payload
type ServerInfo struct {
	Identifier string `json:"identifier"`
	Version    string `json:"version"`
	Accounts   int    `json:"accounts"`
	Entries    int    `json:"journal_entries"`
	Processed  int    `json:"processed_transactions"`
	ChainTip   string `json:"proof_chain_tip"`
}

// VersionInfo is the /versioninfo payload
type VersionInfo struct {
	Version string `json:"version"`
}

// BalanceResult is the /balance payload
type BalanceResult struct {
	Account  string `json:"account"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
}

// SubmitTxArgs are the parameters accepted for transaction submission
type SubmitTxArgs struct {
	Amount    int64   `json:"amount"`
	Currency  string  `json:"currency"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Memo      *string `json:"memo,omitempty"`
	DependsOn *string `json:"depends_on,omitempty"`
}

// SubmitTxResult reports the journaled position of an accepted transaction
type SubmitTxResult struct {
	TxID     string `json:"txid"`
	Sequence uint64 `json:"sequence"`
	Hash     string `json:"hash"`
}

// CheckpointResult reports one merkle batch attestation
type CheckpointResult struct {
	Root      string `json:"root"`
	LeafCount int    `json:"leaf_count"`
	TipSeq    uint64 `json:"tip_sequence"`
	Timestamp int64  `json:"timestamp"`
}
