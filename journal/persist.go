package journal

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/chainledger/ChainLedger/ledger"
	"github.com/chainledger/ChainLedger/log"
	"github.com/chainledger/ChainLedger/storage"
)

// The plaintext format persists only the transactions, one canonical json
// object per line. The hash chain is recomputed on load, so a plaintext
// file is not a tamper evident artifact by itself. The encrypted format
// authenticates the whole stream and is the attested form.

// SavePlain write every transaction as one canonical json line
func (j *Journal) SavePlain(path string) error {
	data, err := j.serialize()
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// LoadPlain read canonical json lines from path and replay them through
// Append. Empty lines are skipped; a malformed final line, the residue of
// a crashed append, is dropped with a warning. Malformed lines elsewhere
// are an error.
func LoadPlain(path string) (*Journal, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return replay(string(data))
}

// SaveEncrypted serialize the whole stream and seal it under password as
// one authenticated blob
func (j *Journal) SaveEncrypted(path, password string) error {
	data, err := j.serialize()
	if err != nil {
		return err
	}
	return storage.SaveEncrypted(path, data, password)
}

// LoadEncrypted open the sealed stream and replay it through Append
func LoadEncrypted(path, password string) (*Journal, error) {
	plaintext, err := storage.LoadEncrypted(path, password)
	if err != nil {
		return nil, err
	}
	return replay(string(plaintext))
}

func (j *Journal) serialize() ([]byte, error) {
	var sb strings.Builder
	for _, e := range j.entries {
		line, err := e.Transaction.CanonicalJSON()
		if err != nil {
			return nil, err
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

func replay(stream string) (*Journal, error) {
	j := New()
	lines := strings.Split(stream, "\n")
	lastContent := lastNonEmptyLine(lines)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tx, err := ledger.ParseTransaction([]byte(line))
		if err != nil {
			if i == lastContent {
				log.Warn("dropping malformed trailing journal line", "line", i)
				break
			}
			return nil, fmt.Errorf("journal line %d: %w", i, err)
		}
		if _, err := j.Append(tx); err != nil {
			return nil, err
		}
	}
	return j, nil
}

func lastNonEmptyLine(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}
