package crypto

import (
	"crypto/sha256"

	"github.com/intls/aztec-packages/core/types"
)

// AccumulateHash is the two-to-one combinator used to fold transaction-effect
// digests up the rollup tree: SHA-256 over the concatenation of the inputs.
// It is order-sensitive; downstream consumers re-derive the same
// left-to-right root.
func AccumulateHash(a, b types.Hash) types.Hash {
	h := sha256.New()
	h.Write(a[:])
	h.Write(b[:])
	return types.BytesToHash(h.Sum(nil))
}

// ComputeEffectsRoot builds a binary SHA-256 tree over transaction-effect
// digests and returns its root. The leaf count is padded to the next power
// of two with zero hashes. An empty input yields the zero hash.
func ComputeEffectsRoot(leaves []types.Hash) types.Hash {
	if len(leaves) == 0 {
		return types.Hash{}
	}
	if len(leaves) == 1 {
		return leaves[0]
	}

	layer := padToPow2(leaves)
	for len(layer) > 1 {
		next := make([]types.Hash, len(layer)/2)
		for i := range next {
			next[i] = AccumulateHash(layer[2*i], layer[2*i+1])
		}
		layer = next
	}
	return layer[0]
}

// padToPow2 pads a slice to the next power of two with zero hashes.
func padToPow2(leaves []types.Hash) []types.Hash {
	n := len(leaves)
	target := 1
	for target < n {
		target <<= 1
	}
	padded := make([]types.Hash, target)
	copy(padded, leaves)
	return padded
}
