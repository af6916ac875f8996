package merkle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainledger/ChainLedger/common"
)

func makeLeaves(n int) []common.Hash {
	leaves := make([]common.Hash, n)
	for i := range leaves {
		leaves[i] = common.Sha256Hash([]byte(fmt.Sprintf("leaf-%d", i)))
	}
	return leaves
}

func TestEmptyTree(t *testing.T) {
	tree := NewTree(nil)
	assert.True(t, tree.Root().IsZero())
	assert.Equal(t, 0, tree.LeafCount())

	_, err := tree.Proof(common.Sha256Hash([]byte("x")))
	assert.ErrorIs(t, err, ErrLeafNotFound)
}

func TestSingleLeaf(t *testing.T) {
	leaves := makeLeaves(1)
	tree := NewTree(leaves)
	assert.Equal(t, leaves[0], tree.Root())

	proof, err := tree.Proof(leaves[0])
	require.NoError(t, err)
	assert.Empty(t, proof)
	assert.True(t, VerifyProof(leaves[0], proof, tree.Root()))
}

func TestTwoLeaves(t *testing.T) {
	leaves := makeLeaves(2)
	tree := NewTree(leaves)
	want := common.Sha256Hash(leaves[0].Bytes(), leaves[1].Bytes())
	assert.Equal(t, want, tree.Root())
}

func TestOddLeafDuplication(t *testing.T) {
	leaves := makeLeaves(3)
	tree := NewTree(leaves)

	// third leaf pairs with itself
	left := common.Sha256Hash(leaves[0].Bytes(), leaves[1].Bytes())
	right := common.Sha256Hash(leaves[2].Bytes(), leaves[2].Bytes())
	want := common.Sha256Hash(left.Bytes(), right.Bytes())
	assert.Equal(t, want, tree.Root())
}

func TestProofAllLeaves(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 15, 16, 33} {
		leaves := makeLeaves(n)
		tree := NewTree(leaves)
		for i, leaf := range leaves {
			proof, err := tree.ProofAt(i)
			require.NoError(t, err, "n=%d i=%d", n, i)
			assert.True(t, VerifyProof(leaf, proof, tree.Root()), "n=%d i=%d", n, i)
		}
	}
}

func TestProofRejectsWrongRoot(t *testing.T) {
	leaves := makeLeaves(4)
	tree := NewTree(leaves)
	proof, err := tree.Proof(leaves[1])
	require.NoError(t, err)

	wrongRoot := common.Sha256Hash([]byte("bogus"))
	assert.False(t, VerifyProof(leaves[1], proof, wrongRoot))
}

func TestProofRejectsWrongLeaf(t *testing.T) {
	leaves := makeLeaves(4)
	tree := NewTree(leaves)
	proof, err := tree.Proof(leaves[1])
	require.NoError(t, err)
	assert.False(t, VerifyProof(leaves[2], proof, tree.Root()))
}

func TestProofUnknownLeaf(t *testing.T) {
	tree := NewTree(makeLeaves(4))
	_, err := tree.Proof(common.Sha256Hash([]byte("stranger")))
	assert.ErrorIs(t, err, ErrLeafNotFound)

	_, err = tree.ProofAt(99)
	assert.ErrorIs(t, err, ErrLeafNotFound)
	_, err = tree.ProofAt(-1)
	assert.ErrorIs(t, err, ErrLeafNotFound)
}
