package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainledger/ChainLedger/ledger"
)

func strptr(s string) *string {
	return &s
}

func appendN(t *testing.T, j *Journal, n int) []*ledger.Transaction {
	t.Helper()
	txs := make([]*ledger.Transaction, 0, n)
	for i := 0; i < n; i++ {
		tx := ledger.NewTransaction(int64(100+i), "USD", "alice", "bob", strptr("memo"))
		_, err := j.Append(tx)
		require.NoError(t, err)
		txs = append(txs, tx)
	}
	return txs
}

func TestAppendLinksChain(t *testing.T) {
	j := New()
	appendN(t, j, 3)

	require.Equal(t, 3, j.Len())
	first, err := j.Get(0)
	require.NoError(t, err)
	assert.Nil(t, first.PrevHash)
	assert.Equal(t, uint64(0), first.Sequence)

	for i := 1; i < 3; i++ {
		e, err := j.Get(uint64(i))
		require.NoError(t, err)
		require.NotNil(t, e.PrevHash)
		prev, err := j.Get(uint64(i - 1))
		require.NoError(t, err)
		assert.Equal(t, prev.Hash, *e.PrevHash)
		assert.Equal(t, uint64(i), e.Sequence)
	}

	assert.NoError(t, j.VerifyIntegrity())
}

func TestJournalOwnsClone(t *testing.T) {
	j := New()
	tx := ledger.NewTransaction(1, "USD", "a", "b", strptr("original"))
	_, err := j.Append(tx)
	require.NoError(t, err)

	*tx.Memo = "mutated after append"
	e, err := j.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "original", *e.Transaction.Memo)
}

func TestGetByID(t *testing.T) {
	j := New()
	txs := appendN(t, j, 3)

	e, err := j.GetByID(txs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, txs[1].ID, e.Transaction.ID)

	_, err = j.GetByID("missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = j.Get(99)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestByAccount(t *testing.T) {
	j := New()
	appendN(t, j, 2)
	other := ledger.NewTransaction(5, "USD", "carol", "dave", nil)
	_, err := j.Append(other)
	require.NoError(t, err)

	assert.Len(t, j.ByAccount("alice"), 2)
	assert.Len(t, j.ByAccount("carol"), 1)
	assert.Len(t, j.ByAccount("dave"), 1)
	assert.Empty(t, j.ByAccount("nobody"))
}

// scenario: tampering with a journaled amount breaks verification
func TestTamperDetection(t *testing.T) {
	j := New()
	appendN(t, j, 2)

	e, err := j.Get(1)
	require.NoError(t, err)
	e.Transaction.Amount++

	assert.ErrorIs(t, j.VerifyIntegrity(), ErrIntegrityBroken)
}

func TestTamperedSequence(t *testing.T) {
	j := New()
	appendN(t, j, 2)
	e, _ := j.Get(1)
	e.Sequence = 5
	assert.ErrorIs(t, j.VerifyIntegrity(), ErrIntegrityBroken)
}

func TestTamperedChainLink(t *testing.T) {
	j := New()
	appendN(t, j, 3)
	e, _ := j.Get(2)
	e.PrevHash = nil
	assert.ErrorIs(t, j.VerifyIntegrity(), ErrIntegrityBroken)
}

func TestMerkleLeaves(t *testing.T) {
	j := New()
	txs := appendN(t, j, 3)

	leaves, err := j.MerkleLeaves()
	require.NoError(t, err)
	require.Len(t, leaves, 3)
	want, err := txs[0].Hash()
	require.NoError(t, err)
	assert.Equal(t, want, leaves[0])
}
