package rollup

import (
	"crypto/sha256"

	"github.com/holiman/uint256"

	"github.com/intls/aztec-packages/core/types"
)

// EmptyOutHash is the canonical out-hash sentinel for a block slot with no
// transaction data: SHA-256 of the empty input.
var EmptyOutHash = func() types.Hash {
	h := sha256.Sum256(nil)
	return types.Hash(h)
}()

// MergeEmptyBlock produces the canonical aggregate for a block slot
// containing no real transactions: a fixed out-hash sentinel, an empty
// transcript, and no blob public inputs. No continuity or transcript checks
// apply, but the output shape matches a real merge so higher-level merges
// treat it uniformly. Deterministic: identical constants yield a
// bit-identical aggregate.
func MergeEmptyBlock(constants ConstantRollupData) *BlockRootOrBlockMergePublicInputs {
	return &BlockRootOrBlockMergePublicInputs{
		PreviousArchive:      constants.LastArchive,
		EndArchive:           constants.LastArchive,
		StartGlobalVariables: constants.GlobalVariables.Clone(),
		EndGlobalVariables:   constants.GlobalVariables.Clone(),
		OutHash:              EmptyOutHash,
		StartSpongeBlob:      NewSpongeBlob(0),
		EndSpongeBlob:        NewSpongeBlob(0),
		BlobPublicInputs:     nil,
		AccumulatedFees:      uint256.NewInt(0),
	}
}
