// Package merkle builds binary sha256 merkle trees over transaction hashes
// and produces inclusion proofs. Odd levels pair the last node with itself,
// interoperable with bitcoin style trees.
package merkle

import (
	"errors"

	"github.com/chainledger/ChainLedger/common"
)

// ErrLeafNotFound is returned when a proof is requested for an unknown leaf
var ErrLeafNotFound = errors.New("leaf not present in tree")

// ProofStep is one level of an inclusion proof: the sibling hash and
// whether the current node is the left child
type ProofStep struct {
	Sibling common.Hash `json:"sibling"`
	IsLeft  bool        `json:"is_left"`
}

// Tree is an immutable merkle tree built from leaf hashes
type Tree struct {
	leaves []common.Hash
	levels [][]common.Hash
	root   common.Hash
}

// NewTree build a tree over the given leaves. An empty leaf list yields
// the all zero root.
func NewTree(leaves []common.Hash) *Tree {
	t := &Tree{leaves: append([]common.Hash(nil), leaves...)}
	t.build()
	return t
}

func (t *Tree) build() {
	if len(t.leaves) == 0 {
		return
	}
	level := append([]common.Hash(nil), t.leaves...)
	t.levels = append(t.levels, level)
	for len(level) > 1 {
		next := make([]common.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, common.Sha256Hash(left.Bytes(), right.Bytes()))
		}
		t.levels = append(t.levels, next)
		level = next
	}
	t.root = level[0]
}

// Root returns the tree root, all zero for an empty tree
func (t *Tree) Root() common.Hash {
	return t.root
}

// LeafCount returns the number of leaves
func (t *Tree) LeafCount() int {
	return len(t.leaves)
}

// Proof build the inclusion proof for the first occurrence of leaf
func (t *Tree) Proof(leaf common.Hash) ([]ProofStep, error) {
	idx := -1
	for i, l := range t.leaves {
		if l == leaf {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrLeafNotFound
	}
	return t.ProofAt(idx)
}

// ProofAt build the inclusion proof for the leaf at index
func (t *Tree) ProofAt(index int) ([]ProofStep, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, ErrLeafNotFound
	}
	var proof []ProofStep
	for _, level := range t.levels[:len(t.levels)-1] {
		isLeft := index%2 == 0
		siblingIdx := index + 1
		if !isLeft {
			siblingIdx = index - 1
		}
		sibling := level[index] // odd tail pairs with itself
		if siblingIdx < len(level) {
			sibling = level[siblingIdx]
		}
		proof = append(proof, ProofStep{Sibling: sibling, IsLeft: isLeft})
		index /= 2
	}
	return proof, nil
}

// VerifyProof fold the proof from leaf upward and compare with root.
// Pure function, it needs no tree.
func VerifyProof(leaf common.Hash, proof []ProofStep, root common.Hash) bool {
	current := leaf
	for _, step := range proof {
		if step.IsLeft {
			current = common.Sha256Hash(current.Bytes(), step.Sibling.Bytes())
		} else {
			current = common.Sha256Hash(step.Sibling.Bytes(), current.Bytes())
		}
	}
	return current == root
}
