package params

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigToml = `
Identifier = "chainledger-test"
DataDir = "/tmp/ledger"

[Journal]
FilePath = "journal.jsonl"

[Audit]
IntervalSeconds = 30
KeyFile = "audit.key"
CheckpointDBPath = "checkpoints"

[Server]
Port = 12345
AllowedOrigins = ["https://example.org"]
MaxRequestsPerSecond = 10.0

[Gas]
PayerAccount = "payer"
PoolAccount = "gaspool"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(testConfigToml), 0600))

	config := LoadConfig(path)
	require.NotNil(t, config)
	assert.Equal(t, "chainledger-test", config.Identifier)
	assert.Equal(t, "journal.jsonl", config.Journal.FilePath)
	assert.Equal(t, uint64(30), GetAuditInterval())
	assert.Equal(t, 12345, GetAPIPort())
	assert.False(t, HasMongoDB())
	assert.False(t, HasEmailAlert())
	assert.Equal(t, "payer", config.Gas.PayerAccount)
}

func TestCheckConfigRejectsIncomplete(t *testing.T) {
	cases := []struct {
		name   string
		config *LedgerConfig
	}{
		{"no identifier", &LedgerConfig{}},
		{"no journal", &LedgerConfig{Identifier: "x"}},
		{"no journal path", &LedgerConfig{Identifier: "x", Journal: &JournalConfig{}}},
		{"encrypted without password file", &LedgerConfig{
			Identifier: "x",
			Journal:    &JournalConfig{FilePath: "j", Encrypted: true},
		}},
		{"no audit", &LedgerConfig{
			Identifier: "x",
			Journal:    &JournalConfig{FilePath: "j"},
		}},
		{"no audit key", &LedgerConfig{
			Identifier: "x",
			Journal:    &JournalConfig{FilePath: "j"},
			Audit:      &AuditConfig{},
		}},
		{"half gas config", &LedgerConfig{
			Identifier: "x",
			Journal:    &JournalConfig{FilePath: "j"},
			Audit:      &AuditConfig{KeyFile: "k"},
			Gas:        &GasConfig{PayerAccount: "p"},
		}},
		{"alerts without email", &LedgerConfig{
			Identifier: "x",
			Journal:    &JournalConfig{FilePath: "j"},
			Audit:      &AuditConfig{KeyFile: "k", AlertRecipients: []string{"ops@example.org"}},
		}},
	}
	defer SetConfig(nil)
	for _, c := range cases {
		SetConfig(c.config)
		assert.Error(t, CheckConfig(), c.name)
	}
}

func TestCheckConfigAcceptsComplete(t *testing.T) {
	defer SetConfig(nil)
	SetConfig(&LedgerConfig{
		Identifier: "x",
		Journal:    &JournalConfig{FilePath: "j"},
		Audit:      &AuditConfig{KeyFile: "k"},
	})
	assert.NoError(t, CheckConfig())
}
