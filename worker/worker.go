// Package worker runs the daemon's background jobs: the periodic audit,
// merkle checkpointing and the asset definition watcher.
package worker

import (
	"time"

	"github.com/chainledger/ChainLedger/params"
)

const interval = 10 * time.Millisecond

// StartWork start the background jobs
func StartWork() {
	logWorker("worker", "start ledger worker")

	go StartAuditJob()
	time.Sleep(interval)

	go StartCheckpointJob()
	time.Sleep(interval)

	if params.GetConfig().AssetDir != "" {
		go WatchAssetDir(params.GetConfig().AssetDir)
	}
}
