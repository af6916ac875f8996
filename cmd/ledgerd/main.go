package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/chainledger/ChainLedger/asset"
	"github.com/chainledger/ChainLedger/auditor"
	"github.com/chainledger/ChainLedger/cmd/utils"
	"github.com/chainledger/ChainLedger/common"
	"github.com/chainledger/ChainLedger/internal/ledgerapi"
	"github.com/chainledger/ChainLedger/journal"
	"github.com/chainledger/ChainLedger/ledger"
	"github.com/chainledger/ChainLedger/log"
	"github.com/chainledger/ChainLedger/mongodb"
	"github.com/chainledger/ChainLedger/params"
	rpcserver "github.com/chainledger/ChainLedger/rpc/server"
	"github.com/chainledger/ChainLedger/tools"
	"github.com/chainledger/ChainLedger/worker"
)

var (
	clientIdentifier = "ledgerd"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the ledger daemon command line interface")
)

func initApp() {
	app.Action = ledgerd
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.ConfigFileFlag,
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func ledgerd(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() > 0 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}
	exitCh := make(chan struct{})
	configFile := utils.GetConfigFilePath(ctx)
	config := params.LoadConfig(configFile)

	auditKey, err := tools.LoadSecretFile(config.Audit.KeyFile)
	if err != nil {
		log.Fatal("load audit key failed", "keyFile", config.Audit.KeyFile, "err", err)
	}

	eng := ledger.New()
	chain := auditor.NewProofChain()
	eng.SetEventRecorder(chain)

	if config.AssetDir != "" {
		loadAssets(eng, config.AssetDir)
	}

	jnl := restoreJournal(config)
	replayJournal(eng, jnl)

	if config.Gas != nil {
		if err := eng.SetGasAccounts(config.Gas.PayerAccount, config.Gas.PoolAccount); err != nil {
			log.Warn("gas accounts not bound yet", "payer", config.Gas.PayerAccount, "pool", config.Gas.PoolAccount, "err", err)
		}
	}

	aud := auditor.New(auditKey.Bytes())
	ledgerapi.SetEngine(eng, jnl, aud, chain)

	if config.Audit.CheckpointDBPath != "" {
		if err := worker.InitCheckpointDB(config.Audit.CheckpointDBPath); err != nil {
			log.Fatal("open checkpoint db failed", "path", config.Audit.CheckpointDBPath, "err", err)
		}
	}
	if params.HasMongoDB() {
		dbConfig := config.MongoDB
		mongodb.MongoServerInit([]string{dbConfig.DBURL}, dbConfig.DBName, dbConfig.UserName, dbConfig.Password)
	}
	if config.Email != nil && config.Email.Server != "" {
		tools.InitEmailConfig(config.Email.Server, config.Email.Port,
			config.Email.From, config.Email.FromName, config.Email.Password)
	}

	worker.StartWork()
	time.Sleep(100 * time.Millisecond)
	rpcserver.StartAPIServer()

	<-exitCh
	return nil
}

func restoreJournal(config *params.LedgerConfig) *journal.Journal {
	path := config.Journal.FilePath
	if !common.FileExist(path) {
		log.Info("starting with empty journal", "path", path)
		if config.Journal.Encrypted {
			return journal.New()
		}
		log.Warn("journal persistence is plaintext, the file is not an attested artifact", "path", path)
		return journal.NewWithFile(path)
	}
	if config.Journal.Encrypted {
		password, err := tools.LoadSecretFile(config.Journal.PasswordFile)
		if err != nil {
			log.Fatal("load journal password failed", "err", err)
		}
		defer password.Destroy()
		jnl, err := journal.LoadEncrypted(path, string(password.Bytes()))
		if err != nil {
			log.Fatal("load encrypted journal failed", "path", path, "err", err)
		}
		log.Info("restored encrypted journal", "path", path, "entries", jnl.Len())
		return jnl
	}
	// the plaintext format is not tamper evident on its own
	log.Warn("journal persistence is plaintext, the file is not an attested artifact", "path", path)
	jnl, err := journal.LoadPlain(path)
	if err != nil {
		log.Fatal("load journal failed", "path", path, "err", err)
	}
	if err := jnl.VerifyIntegrity(); err != nil {
		log.Fatal("restored journal fails verification", "err", err)
	}
	jnl.SetFilePath(path)
	log.Info("restored journal", "path", path, "entries", jnl.Len())
	return jnl
}

func loadAssets(eng *ledger.Ledger, dir string) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		log.Warn("read asset dir failed", "dir", dir, "err", err)
		return
	}
	for _, fi := range files {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ".toml") {
			continue
		}
		a, err := asset.LoadFromFile(filepath.Join(dir, fi.Name()))
		if err != nil {
			log.Warn("load asset file failed", "file", fi.Name(), "err", err)
			continue
		}
		if err := eng.RegisterAsset(a); err != nil {
			log.Warn("register asset failed", "assetID", a.ID, "err", err)
		}
	}
}

func replayJournal(eng *ledger.Ledger, jnl *journal.Journal) {
	var failed int
	for _, tx := range jnl.Transactions() {
		if err := eng.ProcessTransaction(tx); err != nil {
			failed++
		}
	}
	if failed > 0 {
		log.Warn("some journaled transactions did not replay, the audit job will flag them", "failed", failed)
	}
}
