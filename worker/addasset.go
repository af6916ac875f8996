package worker

import (
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/chainledger/ChainLedger/asset"
	"github.com/chainledger/ChainLedger/internal/ledgerapi"
	"github.com/chainledger/ChainLedger/log"
)

// WatchAssetDir watch the asset definition directory and register new
// assets dynamically from dropped toml files
func WatchAssetDir(assetDir string) {
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("fsnotify.NewWatcher failed", "err", err)
		return
	}

	if err := watch.Add(assetDir); err != nil {
		log.Error("watch.Add asset dir failed", "dir", assetDir, "err", err)
		return
	}

	startAssetWatcher(watch)
}

func startAssetWatcher(watch *fsnotify.Watcher) {
	logWorker("assetwatch", "start fsnotify watch")
	defer func() {
		logWorker("assetwatch", "stop fsnotify watch")
		_ = watch.Close()
	}()

	ops := []fsnotify.Op{
		fsnotify.Create,
		fsnotify.Write,
	}

	for {
		select {
		case ev, ok := <-watch.Events:
			if !ok {
				return
			}
			log.Trace("fsnotify watch event", "event", ev)
			for _, op := range ops {
				if ev.Op&op == op {
					if err := addAssetFromFile(ev.Name); err != nil {
						logWorkerWarn("assetwatch", "add asset failed", "configFile", ev.Name, "err", err)
					}
					break
				}
			}
		case werr, ok := <-watch.Errors:
			if !ok {
				return
			}
			logWorkerWarn("assetwatch", "fsnotify watch error", "err", werr)
		}
	}
}

func addAssetFromFile(fileName string) error {
	if !strings.HasSuffix(fileName, ".toml") {
		return nil
	}
	fileStat, _ := os.Stat(fileName)
	// ignore if file is not exist, or is directory, or is empty file
	if fileStat == nil || fileStat.IsDir() || fileStat.Size() == 0 {
		return nil
	}
	a, err := asset.LoadFromFile(fileName)
	if err != nil {
		return err
	}
	if err := ledgerapi.RegisterAsset(a); err != nil {
		return err
	}
	logWorker("assetwatch", "registered asset", "configFile", fileName, "assetID", a.ID)
	return nil
}
