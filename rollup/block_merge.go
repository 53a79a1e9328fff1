package rollup

import (
	"github.com/holiman/uint256"

	"github.com/intls/aztec-packages/crypto"
)

// MergeBlocks combines two adjacent block-level aggregates into one
// chain-of-blocks aggregate. The right block must start from the archive the
// left block ended on, and its global variables must advance per the policy.
// Blob public inputs are concatenated in order: each block's transcript was
// finalized at its own block root, so no sponge chaining applies here.
func MergeBlocks(left, right *BlockRootOrBlockMergePublicInputs, policy ContinuityPolicy) (*BlockRootOrBlockMergePublicInputs, error) {
	if err := CheckBlockContinuity(left, right, policy); err != nil {
		return nil, err
	}

	blobInputs := make([]BlobPublicInputs, 0, len(left.BlobPublicInputs)+len(right.BlobPublicInputs))
	blobInputs = append(blobInputs, left.BlobPublicInputs...)
	blobInputs = append(blobInputs, right.BlobPublicInputs...)

	fees := new(uint256.Int).Add(
		feeOrZero(left.AccumulatedFees),
		feeOrZero(right.AccumulatedFees),
	)

	return &BlockRootOrBlockMergePublicInputs{
		PreviousArchive:      left.PreviousArchive,
		EndArchive:           right.EndArchive,
		StartGlobalVariables: left.StartGlobalVariables.Clone(),
		EndGlobalVariables:   right.EndGlobalVariables.Clone(),
		OutHash:              crypto.AccumulateHash(left.OutHash, right.OutHash),
		StartSpongeBlob:      left.StartSpongeBlob,
		EndSpongeBlob:        right.EndSpongeBlob,
		BlobPublicInputs:     blobInputs,
		AccumulatedFees:      fees,
	}, nil
}
