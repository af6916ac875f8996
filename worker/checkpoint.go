package worker

import (
	"time"

	"github.com/pborman/uuid"

	"github.com/chainledger/ChainLedger/internal/ledgerapi"
	"github.com/chainledger/ChainLedger/mongodb"
)

const checkpointInterval = 5 * time.Minute

// StartCheckpointJob periodically attest the journal with a merkle root
// and persist the attestation locally and, when configured, to the archive
func StartCheckpointJob() {
	logWorker("checkpoint", "start checkpoint job")
	var lastTip uint64
	var attested bool
	for {
		cp, err := ledgerapi.BuildCheckpoint()
		if err != nil {
			logWorkerError("checkpoint", "build checkpoint failed", err)
			time.Sleep(checkpointInterval)
			continue
		}
		if cp.LeafCount == 0 || (attested && cp.TipSeq == lastTip) {
			time.Sleep(checkpointInterval)
			continue
		}

		if err := AddCheckpointRecord(cp); err != nil {
			logWorkerError("checkpoint", "persist checkpoint failed", err)
		} else {
			logWorker("checkpoint", "attested journal batch",
				"root", cp.Root, "leafCount", cp.LeafCount, "tipSeq", cp.TipSeq)
		}

		if mongodb.HasSession() {
			err := mongodb.AddCheckpoint(&mongodb.MgoCheckpoint{
				Key:       uuid.NewRandom().String(),
				Timestamp: cp.Timestamp,
				Root:      cp.Root,
				LeafCount: cp.LeafCount,
				TipSeq:    cp.TipSeq,
			})
			if err != nil {
				logWorkerError("checkpoint", "archive checkpoint failed", err)
			}
		}

		lastTip = cp.TipSeq
		attested = true
		time.Sleep(checkpointInterval)
	}
}
