package params

import (
	"errors"
)

// CheckConfig check loaded config is complete and consistent
func CheckConfig() error {
	config := GetConfig()
	if config.Identifier == "" {
		return errors.New("must config non empty 'Identifier'")
	}
	if config.Journal == nil {
		return errors.New("must config 'Journal'")
	}
	if err := config.Journal.CheckConfig(); err != nil {
		return err
	}
	if config.Audit == nil {
		return errors.New("must config 'Audit'")
	}
	if err := config.Audit.CheckConfig(); err != nil {
		return err
	}
	if config.Gas != nil {
		if config.Gas.PayerAccount == "" || config.Gas.PoolAccount == "" {
			return errors.New("gas config needs both 'PayerAccount' and 'PoolAccount'")
		}
	}
	if config.MongoDB != nil && config.MongoDB.DBURL != "" && config.MongoDB.DBName == "" {
		return errors.New("mongodb config needs 'DBName'")
	}
	if len(config.Audit.AlertRecipients) != 0 {
		if config.Email == nil || config.Email.Server == "" || config.Email.From == "" {
			return errors.New("audit alert recipients need a complete 'Email' config")
		}
	}
	return nil
}

// CheckConfig check journal config
func (c *JournalConfig) CheckConfig() error {
	if c.FilePath == "" {
		return errors.New("journal config needs 'FilePath'")
	}
	if c.Encrypted && c.PasswordFile == "" {
		return errors.New("encrypted journal needs 'PasswordFile'")
	}
	return nil
}

// CheckConfig check audit config
func (c *AuditConfig) CheckConfig() error {
	if c.KeyFile == "" {
		return errors.New("audit config needs 'KeyFile'")
	}
	return nil
}
