package worker

import (
	"encoding/json"
	"fmt"

	"github.com/chainledger/ChainLedger/internal/ledgerapi"
	"github.com/chainledger/ChainLedger/leveldb"
)

const checkpointKeyPrefix = "checkpoint:"

var lvldbHandle *leveldb.Database

// InitCheckpointDB open the local checkpoint store
func InitCheckpointDB(path string) error {
	db, err := leveldb.Open(path)
	if err != nil {
		return err
	}
	lvldbHandle = db
	return nil
}

// CloseCheckpointDB close the local checkpoint store
func CloseCheckpointDB() {
	if lvldbHandle != nil {
		_ = lvldbHandle.Close()
		lvldbHandle = nil
	}
}

func checkpointKey(tipSeq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", checkpointKeyPrefix, tipSeq))
}

// AddCheckpointRecord persist one merkle attestation locally
func AddCheckpointRecord(cp *ledgerapi.CheckpointResult) error {
	if lvldbHandle == nil {
		return nil
	}
	value, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return lvldbHandle.Put(checkpointKey(cp.TipSeq), value)
}

// GetCheckpointRecord load the attestation stored for tipSeq
func GetCheckpointRecord(tipSeq uint64) (*ledgerapi.CheckpointResult, error) {
	if lvldbHandle == nil {
		return nil, nil
	}
	value, err := lvldbHandle.Get(checkpointKey(tipSeq))
	if err != nil {
		return nil, err
	}
	var cp ledgerapi.CheckpointResult
	if err := json.Unmarshal(value, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// FindCheckpointRecords load every stored attestation in key order
func FindCheckpointRecords() ([]*ledgerapi.CheckpointResult, error) {
	if lvldbHandle == nil {
		return nil, nil
	}
	var result []*ledgerapi.CheckpointResult
	iter := lvldbHandle.NewIterator([]byte(checkpointKeyPrefix), nil)
	for iter.Next() {
		var cp ledgerapi.CheckpointResult
		if err := json.Unmarshal(iter.Value(), &cp); err != nil {
			continue
		}
		result = append(result, &cp)
	}
	iter.Release()
	return result, iter.Error()
}
