package worker

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainledger/ChainLedger/auditor"
	"github.com/chainledger/ChainLedger/internal/ledgerapi"
	"github.com/chainledger/ChainLedger/journal"
	"github.com/chainledger/ChainLedger/ledger"
)

func TestAddAssetFromFile(t *testing.T) {
	l := ledger.New()
	ledgerapi.SetEngine(l, journal.New(), auditor.New(nil), auditor.NewProofChain())

	dir := t.TempDir()
	path := filepath.Join(dir, "doge.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
id = "DOGE"
kind = "token"
symbol = "Ð"
name = "Dogecoin"
decimals = 8
`), 0600))

	require.NoError(t, addAssetFromFile(path))
	assert.True(t, l.Assets().Has("DOGE"))

	// re-registering the same file is rejected by the registry
	assert.Error(t, addAssetFromFile(path))
}

func TestAddAssetFromFileIgnoresNonToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("not an asset"), 0600))
	assert.NoError(t, addAssetFromFile(path))

	// empty toml files are skipped too
	empty := filepath.Join(dir, "empty.toml")
	require.NoError(t, ioutil.WriteFile(empty, nil, 0600))
	assert.NoError(t, addAssetFromFile(empty))
}
