// Package params loads and validates the ledger daemon configuration
// from a toml file.
package params

import (
	"encoding/json"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/chainledger/ChainLedger/common"
	"github.com/chainledger/ChainLedger/log"
)

const (
	defaultAPIPort       = 11580
	defaultAuditInterval = 60
)

var (
	ledgerConfig      *LedgerConfig
	loadConfigStarter sync.Once
)

// LedgerConfig config items (decode from toml file)
type LedgerConfig struct {
	Identifier string
	DataDir    string
	AssetDir   string `toml:",omitempty" json:",omitempty"`

	Journal *JournalConfig
	Audit   *AuditConfig
	Gas     *GasConfig     `toml:",omitempty" json:",omitempty"`
	Server  *ServerConfig  `toml:",omitempty" json:",omitempty"`
	MongoDB *MongoDBConfig `toml:",omitempty" json:",omitempty"`
	Email   *EmailConfig   `toml:",omitempty" json:",omitempty"`
}

// JournalConfig journal persistence config
type JournalConfig struct {
	FilePath     string
	Encrypted    bool
	PasswordFile string `toml:",omitempty" json:"-"`
}

// AuditConfig periodic audit job config
type AuditConfig struct {
	IntervalSeconds  uint64
	KeyFile          string `json:"-"`
	CheckpointDBPath string
	AlertRecipients  []string `toml:",omitempty" json:",omitempty"`
}

// GasConfig contract gas billing accounts
type GasConfig struct {
	PayerAccount string
	PoolAccount  string
}

// ServerConfig api server config
type ServerConfig struct {
	Port                 int
	AllowedOrigins       []string `toml:",omitempty" json:",omitempty"`
	MaxRequestsPerSecond float64  `toml:",omitempty" json:",omitempty"`
}

// MongoDBConfig optional archive database config
type MongoDBConfig struct {
	DBURL    string
	DBName   string
	UserName string `json:"-"`
	Password string `json:"-"`
}

// EmailConfig audit alert mail config
type EmailConfig struct {
	Server   string
	Port     int
	From     string
	FromName string `toml:",omitempty" json:",omitempty"`
	Password string `json:"-"`
}

// GetConfig returns the loaded config
func GetConfig() *LedgerConfig {
	return ledgerConfig
}

// SetConfig set ledger config
func SetConfig(config *LedgerConfig) {
	ledgerConfig = config
}

// GetAPIPort returns the configured api port or the default
func GetAPIPort() int {
	server := GetConfig().Server
	if server == nil || server.Port == 0 {
		return defaultAPIPort
	}
	return server.Port
}

// GetAuditInterval returns the audit job interval in seconds
func GetAuditInterval() uint64 {
	audit := GetConfig().Audit
	if audit == nil || audit.IntervalSeconds == 0 {
		return defaultAuditInterval
	}
	return audit.IntervalSeconds
}

// HasMongoDB returns true when an archive database is configured
func HasMongoDB() bool {
	return GetConfig().MongoDB != nil && GetConfig().MongoDB.DBURL != ""
}

// HasEmailAlert returns true when audit alert mail is configured
func HasEmailAlert() bool {
	cfg := GetConfig()
	return cfg.Email != nil && cfg.Email.Server != "" &&
		cfg.Audit != nil && len(cfg.Audit.AlertRecipients) != 0
}

// LoadConfig load config from file, only the first call loads
func LoadConfig(configFile string) *LedgerConfig {
	loadConfigStarter.Do(func() {
		if configFile == "" {
			log.Fatalf("LoadConfig error: no config file specified")
		}
		log.Println("Config file is", configFile)
		if !common.FileExist(configFile) {
			log.Fatalf("LoadConfig error: config file %v not exist", configFile)
		}
		config := &LedgerConfig{}
		if _, err := toml.DecodeFile(configFile, &config); err != nil {
			log.Fatalf("LoadConfig error (toml DecodeFile): %v", err)
		}
		SetConfig(config)
		var bs []byte
		if log.JSONFormat {
			bs, _ = json.Marshal(config)
		} else {
			bs, _ = json.MarshalIndent(config, "", "  ")
		}
		log.Println("LoadConfig finished.", string(bs))
		if err := CheckConfig(); err != nil {
			log.Fatalf("Check config failed. %v", err)
		}
		log.Info("Check config success", "configFile", configFile)
	})
	return ledgerConfig
}
