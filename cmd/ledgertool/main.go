package main

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/chainledger/ChainLedger/asset"
	"github.com/chainledger/ChainLedger/auditor"
	"github.com/chainledger/ChainLedger/cmd/utils"
	"github.com/chainledger/ChainLedger/common"
	"github.com/chainledger/ChainLedger/fixedpoint"
	"github.com/chainledger/ChainLedger/ledger"
	"github.com/chainledger/ChainLedger/log"
	"github.com/chainledger/ChainLedger/storage"
	"github.com/chainledger/ChainLedger/tools"
)

var (
	clientIdentifier = "ledgertool"
	gitCommit        = ""
	gitDate          = ""
	app              = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the ledger operator command line interface")
)

// exit codes: 0 success, 1 usage error, 2 domain error
const (
	exitUsage  = 1
	exitDomain = 2
)

func initApp() {
	app.HideVersion = true
	app.Commands = []*cli.Command{
		utils.VersionCommand,
		accountCommand,
		assetCommand,
		txCommand,
		balanceCommand,
		auditCommand,
		journalCommand,
		keygenCommand,
		signCommand,
		verifyCommand,
	}
	app.Flags = []cli.Flag{
		utils.DataDirFlag,
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

func domainErr(err error) error {
	return cli.Exit(err.Error(), exitDomain)
}

func usageErr(msg string) error {
	return cli.Exit(msg, exitUsage)
}

func open(ctx *cli.Context) (*engine, error) {
	utils.SetLogger(ctx)
	eng, err := openEngine(utils.GetDataDir(ctx))
	if err != nil {
		return nil, domainErr(err)
	}
	return eng, nil
}

var accountCommand = &cli.Command{
	Name:  "account",
	Usage: "Manage ledger accounts",
	Subcommands: []*cli.Command{
		{
			Name:      "create",
			Usage:     "Create a new account",
			ArgsUsage: "<name> <type> <currency>",
			Action:    accountCreate,
		},
		{
			Name:   "list",
			Usage:  "List all accounts",
			Action: accountList,
		},
	},
}

func accountCreate(ctx *cli.Context) error {
	if ctx.NArg() != 3 {
		return usageErr("usage: account create <name> <type> <currency>")
	}
	name := ctx.Args().Get(0)
	accType, ok := ledger.ParseAccountType(ctx.Args().Get(1))
	if !ok {
		return usageErr(fmt.Sprintf("unknown account type %q (want asset|liability|equity|revenue|expense)", ctx.Args().Get(1)))
	}
	eng, err := open(ctx)
	if err != nil {
		return err
	}
	if _, err := eng.ledger.CreateAccount(name, accType, ctx.Args().Get(2)); err != nil {
		return domainErr(err)
	}
	if err := eng.saveState(); err != nil {
		return domainErr(err)
	}
	fmt.Printf("created account %v\n", name)
	return nil
}

func accountList(ctx *cli.Context) error {
	eng, err := open(ctx)
	if err != nil {
		return err
	}
	for _, rec := range eng.ledger.TrialBalance() {
		human := ""
		if a, err := eng.ledger.Assets().Get(rec.Currency); err == nil {
			human = fixedpoint.FormatAmount(rec.Balance, a.Decimals)
		}
		fmt.Printf("%-20s %-10s %12d %-6s %s\n", rec.Name, rec.Type, rec.Balance, rec.Currency, human)
	}
	return nil
}

var assetCommand = &cli.Command{
	Name:  "asset",
	Usage: "Manage the asset registry",
	Subcommands: []*cli.Command{
		{
			Name:      "register",
			Usage:     "Register a new asset",
			ArgsUsage: "<id> <kind> <decimals>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "symbol", Usage: "display symbol"},
				&cli.StringFlag{Name: "name", Usage: "display name"},
				&cli.Int64Flag{Name: "max-tx", Usage: "per transaction amount cap"},
			},
			Action: assetRegister,
		},
		{
			Name:      "freeze",
			Usage:     "Stop all transfers of an asset",
			ArgsUsage: "<id>",
			Action:    assetFreeze,
		},
		{
			Name:      "unfreeze",
			Usage:     "Resume transfers of an asset",
			ArgsUsage: "<id>",
			Action:    assetUnfreeze,
		},
	},
}

func assetRegister(ctx *cli.Context) error {
	if ctx.NArg() != 3 {
		return usageErr("usage: asset register <id> <kind> <decimals>")
	}
	id := ctx.Args().Get(0)
	kind, ok := asset.ParseKind(ctx.Args().Get(1))
	if !ok {
		return usageErr(fmt.Sprintf("unknown asset kind %q", ctx.Args().Get(1)))
	}
	decimals, err := strconv.ParseUint(ctx.Args().Get(2), 10, 8)
	if err != nil {
		return usageErr("decimals must be a small integer")
	}
	symbol := ctx.String("symbol")
	if symbol == "" {
		symbol = id
	}
	name := ctx.String("name")
	if name == "" {
		name = id
	}
	a, err := asset.New(id, symbol, name, kind, uint8(decimals))
	if err != nil {
		return domainErr(err)
	}
	if ctx.IsSet("max-tx") {
		max := ctx.Int64("max-tx")
		a.MaxTransactionAmount = &max
	}
	eng, err := open(ctx)
	if err != nil {
		return err
	}
	if err := eng.ledger.RegisterAsset(a); err != nil {
		return domainErr(err)
	}
	if err := eng.saveState(); err != nil {
		return domainErr(err)
	}
	fmt.Printf("registered asset %v\n", id)
	return nil
}

func assetFreeze(ctx *cli.Context) error {
	return setAssetFrozen(ctx, true)
}

func assetUnfreeze(ctx *cli.Context) error {
	return setAssetFrozen(ctx, false)
}

func setAssetFrozen(ctx *cli.Context, frozen bool) error {
	if ctx.NArg() != 1 {
		return usageErr("usage: asset freeze|unfreeze <id>")
	}
	eng, err := open(ctx)
	if err != nil {
		return err
	}
	id := ctx.Args().Get(0)
	if frozen {
		err = eng.ledger.Assets().Freeze(id)
	} else {
		err = eng.ledger.Assets().Unfreeze(id)
	}
	if err != nil {
		return domainErr(err)
	}
	if err := eng.saveState(); err != nil {
		return domainErr(err)
	}
	return nil
}

var txCommand = &cli.Command{
	Name:  "tx",
	Usage: "Work with transactions",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "Apply and journal a transaction",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "from", Required: true, Usage: "source account"},
				&cli.StringFlag{Name: "to", Required: true, Usage: "destination account"},
				&cli.Int64Flag{Name: "amount", Required: true, Usage: "amount in smallest units"},
				&cli.StringFlag{Name: "currency", Required: true, Usage: "asset id"},
				&cli.StringFlag{Name: "memo", Usage: "free text memo"},
				&cli.StringFlag{Name: "depends-on", Usage: "transaction id that must be processed first"},
			},
			Action: txAdd,
		},
	},
}

func txAdd(ctx *cli.Context) error {
	eng, err := open(ctx)
	if err != nil {
		return err
	}
	var memo *string
	if m := ctx.String("memo"); m != "" {
		memo = &m
	}
	tx := ledger.NewTransaction(ctx.Int64("amount"), ctx.String("currency"),
		ctx.String("from"), ctx.String("to"), memo)
	if dep := ctx.String("depends-on"); dep != "" {
		tx.DependsOn = &dep
	}
	if err := eng.ledger.ProcessTransaction(tx); err != nil {
		return domainErr(err)
	}
	entry, err := eng.journal.Append(tx)
	if err != nil {
		return domainErr(err)
	}
	fmt.Printf("journaled transaction %v at sequence %d\n", tx.ID, entry.Sequence)
	return nil
}

var balanceCommand = &cli.Command{
	Name:      "balance",
	Usage:     "Print an account balance",
	ArgsUsage: "<name>",
	Action:    balance,
}

func balance(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return usageErr("usage: balance <name>")
	}
	eng, err := open(ctx)
	if err != nil {
		return err
	}
	bal, err := eng.ledger.GetBalance(ctx.Args().Get(0))
	if err != nil {
		return domainErr(err)
	}
	fmt.Println(bal)
	return nil
}

var auditCommand = &cli.Command{
	Name:  "audit",
	Usage: "Audit the ledger against the journal",
	Subcommands: []*cli.Command{
		{
			Name:   "verify",
			Usage:  "Print a summary of the audit booleans and counts",
			Action: auditVerify,
		},
		{
			Name:   "report",
			Usage:  "Print the full json audit report",
			Action: auditReport,
		},
	},
}

func runAudit(ctx *cli.Context) (*auditor.Report, error) {
	eng, err := open(ctx)
	if err != nil {
		return nil, err
	}
	report, err := auditor.New(eng.auditKey()).Audit(eng.ledger, eng.journal)
	if err != nil {
		return nil, domainErr(err)
	}
	return report, nil
}

func auditVerify(ctx *cli.Context) error {
	report, err := runAudit(ctx)
	if err != nil {
		return err
	}
	printBool := func(label string, ok bool) {
		if ok {
			color.Green("%-14s ok", label)
		} else {
			color.Red("%-14s FAILED", label)
		}
	}
	printBool("integrity", report.IntegrityValid)
	printBool("double-entry", report.DoubleEntryValid)
	printBool("trail-hmac", report.HmacValid)
	fmt.Printf("transactions   %d\n", report.TotalTransactions)
	fmt.Printf("discrepancies  %d\n", len(report.BalanceDiscrepancies))
	fmt.Printf("duplicates     %d\n", len(report.DuplicateIDs))
	fmt.Printf("orphans        %d\n", len(report.OrphanIDs))
	if !report.IsValid() {
		return cli.Exit("audit failed", exitDomain)
	}
	color.Green("audit passed")
	return nil
}

func auditReport(ctx *cli.Context) error {
	report, err := runAudit(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return domainErr(err)
	}
	fmt.Println(string(data))
	return nil
}

var journalCommand = &cli.Command{
	Name:  "journal",
	Usage: "Inspect and export the journal",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "Enumerate journal entries",
			Action: journalList,
		},
		{
			Name:      "export",
			Usage:     "Write the plaintext journal to a file",
			ArgsUsage: "<file>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "password", Usage: "export authenticated-encrypted under this password"},
			},
			Action: journalExport,
		},
	},
}

func journalList(ctx *cli.Context) error {
	eng, err := open(ctx)
	if err != nil {
		return err
	}
	for _, e := range eng.journal.Entries() {
		tx := e.Transaction
		memo := ""
		if tx.Memo != nil {
			memo = *tx.Memo
		}
		fmt.Printf("%5d %s %12d %-6s %s -> %s %s\n",
			e.Sequence, tx.ID, tx.Amount, tx.Currency, tx.FromAccount, tx.ToAccount, memo)
	}
	return nil
}

func journalExport(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return usageErr("usage: journal export <file>")
	}
	eng, err := open(ctx)
	if err != nil {
		return err
	}
	target := ctx.Args().Get(0)
	if password := ctx.String("password"); password != "" {
		if err := eng.journal.SaveEncrypted(target, password); err != nil {
			return domainErr(err)
		}
	} else if err := eng.journal.SavePlain(target); err != nil {
		return domainErr(err)
	}
	fmt.Printf("exported %d entries to %v\n", eng.journal.Len(), target)
	return nil
}

var keygenCommand = &cli.Command{
	Name:  "keygen",
	Usage: "Generate an ed25519 keypair",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "out", Value: "id_ed25519", Usage: "private key output file"},
	},
	Action: keygen,
}

func keygen(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	pub, priv, err := tools.GenerateKeypair()
	if err != nil {
		return domainErr(err)
	}
	defer storage.Zeroize(priv)
	out := ctx.String("out")
	if err := tools.SaveKeypair(out, pub, priv); err != nil {
		return domainErr(err)
	}
	fmt.Printf("wrote %v and %v.pub\n", out, out)
	return nil
}

var signCommand = &cli.Command{
	Name:  "sign",
	Usage: "Create a detached signature over a file",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "in", Required: true, Usage: "input file"},
		&cli.StringFlag{Name: "key", Required: true, Usage: "private key file"},
		&cli.StringFlag{Name: "out", Usage: "signature output file (default <in>.sig)"},
	},
	Action: sign,
}

func sign(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	data, err := ioutil.ReadFile(ctx.String("in"))
	if err != nil {
		return domainErr(err)
	}
	priv, err := tools.LoadPrivateKey(ctx.String("key"))
	if err != nil {
		return domainErr(err)
	}
	defer storage.Zeroize(priv)
	sig := ed25519.Sign(priv, data)
	out := ctx.String("out")
	if out == "" {
		out = ctx.String("in") + ".sig"
	}
	if err := ioutil.WriteFile(out, []byte(common.ToHex(sig)+"\n"), 0644); err != nil {
		return domainErr(err)
	}
	fmt.Printf("wrote signature to %v\n", out)
	return nil
}

var verifyCommand = &cli.Command{
	Name:  "verify",
	Usage: "Verify a detached signature over a file",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "in", Required: true, Usage: "input file"},
		&cli.StringFlag{Name: "sig", Required: true, Usage: "signature file"},
		&cli.StringFlag{Name: "key", Required: true, Usage: "public key file"},
	},
	Action: verify,
}

func verify(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	data, err := ioutil.ReadFile(ctx.String("in"))
	if err != nil {
		return domainErr(err)
	}
	sigHex, err := ioutil.ReadFile(ctx.String("sig"))
	if err != nil {
		return domainErr(err)
	}
	sig, err := common.FromHex(strings.TrimSpace(string(sigHex)))
	if err != nil {
		return domainErr(err)
	}
	pub, err := tools.LoadPublicKey(ctx.String("key"))
	if err != nil {
		return domainErr(err)
	}
	if !ed25519.Verify(pub, data, sig) {
		return cli.Exit("signature INVALID", exitDomain)
	}
	color.Green("signature valid")
	return nil
}
