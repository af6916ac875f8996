package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/chainledger/ChainLedger/asset"
	"github.com/chainledger/ChainLedger/common"
	"github.com/chainledger/ChainLedger/journal"
	"github.com/chainledger/ChainLedger/ledger"
	"github.com/chainledger/ChainLedger/log"
	"github.com/chainledger/ChainLedger/tools"
)

const (
	stateFileName   = "state.json"
	journalFileName = "journal.jsonl"
	auditKeyName    = "audit.key"
)

// stateAccount is the persisted account definition; balances are always
// rebuilt by replaying the journal
type stateAccount struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Currency  string `json:"currency"`
	CreatedAt int64  `json:"created_at"`
}

type toolState struct {
	Accounts []*stateAccount `json:"accounts"`
	Assets   []*asset.Asset  `json:"assets"`
}

type engine struct {
	dataDir string
	ledger  *ledger.Ledger
	journal *journal.Journal
}

// openEngine rebuild the ledger from the persisted definitions and the
// journal replay
func openEngine(dataDir string) (*engine, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create datadir: %w", err)
	}

	state, err := loadState(dataDir)
	if err != nil {
		return nil, err
	}

	l := ledger.New()
	for _, a := range state.Assets {
		if err := l.RegisterAsset(a); err != nil {
			return nil, err
		}
	}
	for _, acc := range state.Accounts {
		accType, ok := ledger.ParseAccountType(acc.Type)
		if !ok {
			return nil, fmt.Errorf("state has unknown account type %q", acc.Type)
		}
		created, err := l.CreateAccount(acc.Name, accType, acc.Currency)
		if err != nil {
			return nil, err
		}
		created.CreatedAt = acc.CreatedAt
	}

	journalPath := filepath.Join(dataDir, journalFileName)
	var jnl *journal.Journal
	if common.FileExist(journalPath) {
		jnl, err = journal.LoadPlain(journalPath)
		if err != nil {
			return nil, err
		}
		for _, tx := range jnl.Transactions() {
			if err := l.ProcessTransaction(tx); err != nil {
				log.Warn("journaled transaction did not replay", "txid", tx.ID, "err", err)
			}
		}
	} else {
		jnl = journal.New()
	}
	jnl.SetFilePath(journalPath)

	return &engine{dataDir: dataDir, ledger: l, journal: jnl}, nil
}

func loadState(dataDir string) (*toolState, error) {
	statePath := filepath.Join(dataDir, stateFileName)
	state := &toolState{}
	if !common.FileExist(statePath) {
		return state, nil
	}
	data, err := ioutil.ReadFile(statePath)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	return state, nil
}

// saveState persist the account and asset definitions
func (e *engine) saveState() error {
	state := &toolState{}
	for _, name := range e.ledger.AccountNames() {
		acc, err := e.ledger.GetAccount(name)
		if err != nil {
			return err
		}
		state.Accounts = append(state.Accounts, &stateAccount{
			Name:      acc.Name,
			Type:      acc.Type.String(),
			Currency:  acc.Currency,
			CreatedAt: acc.CreatedAt,
		})
	}
	for _, id := range e.ledger.Assets().IDs() {
		a, err := e.ledger.Assets().Get(id)
		if err != nil {
			return err
		}
		state.Assets = append(state.Assets, a)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	statePath := filepath.Join(e.dataDir, stateFileName)
	if err := ioutil.WriteFile(statePath, data, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// auditKey load the datadir audit key when present, else an empty key
func (e *engine) auditKey() []byte {
	keyPath := filepath.Join(e.dataDir, auditKeyName)
	if !common.FileExist(keyPath) {
		return []byte{}
	}
	secret, err := tools.LoadSecretFile(keyPath)
	if err != nil {
		log.Warn("load audit key failed, using empty key", "err", err)
		return []byte{}
	}
	return secret.Bytes()
}
