package rollup

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/intls/aztec-packages/crypto"
)

// Merge errors.
var (
	// ErrFirstSpongeNotEmpty is the distinguished first-block failure: the
	// block's bulk-data commitment did not start where the protocol expects.
	ErrFirstSpongeNotEmpty = errors.New("rollup: block's first blob sponge was not empty")

	ErrSpongeChainBroken = errors.New("rollup: blob sponge chaining mismatch between units")
	ErrBlobCountMismatch = errors.New("rollup: blob data and commitment counts differ")
	ErrNilBlob           = errors.New("rollup: blob data entry is nil")
)

// MergeBlockRoot combines two adjacent rollup units into one aggregate. It
// fails closed, with no partial output, if the units are not continuous, if
// the blob transcript does not chain, or (when inputs.BlockStart) if the
// block's first transcript state is not empty.
//
// On success the aggregate inherits its starting state from the left child
// and its ending state from the right child; out_hash is the order-sensitive
// accumulation of the children's out hashes; and, when the merge completes a
// block, each blob commitment is bound to the finalized transcript via its
// challenge point.
func MergeBlockRoot(in *BlockRootMergeInputs) (*BlockRootOrBlockMergePublicInputs, error) {
	left := &in.PreviousRollupData[0]
	right := &in.PreviousRollupData[1]

	policy := DefaultContinuityPolicy()
	if in.Policy != nil {
		policy = *in.Policy
	}

	if err := CheckContinuity(left, right, policy); err != nil {
		return nil, err
	}

	if in.BlockStart && !left.StartSpongeBlob.IsEmpty() {
		return nil, ErrFirstSpongeNotEmpty
	}

	if err := checkSpongeChaining(left, right); err != nil {
		return nil, err
	}

	if len(in.Blobs) != len(in.BlobCommitments) {
		return nil, ErrBlobCountMismatch
	}
	for _, b := range in.Blobs {
		if b == nil {
			return nil, ErrNilBlob
		}
	}

	endSponge := right.EndSpongeBlob

	blobInputs := make([]BlobPublicInputs, 0,
		len(left.BlobPublicInputs)+len(right.BlobPublicInputs)+len(in.BlobCommitments))
	blobInputs = append(blobInputs, left.BlobPublicInputs...)
	blobInputs = append(blobInputs, right.BlobPublicInputs...)

	if len(in.BlobCommitments) > 0 {
		digest, err := endSponge.Squeeze()
		if err != nil {
			return nil, err
		}
		for i, c := range in.BlobCommitments {
			z := ComputeChallenge(digest, c)
			blobInputs = append(blobInputs, BlobPublicInputs{
				Z:          z,
				Y:          in.Blobs[i].Evaluate(z),
				Commitment: c,
			})
		}
	}

	fees := new(uint256.Int).Add(
		feeOrZero(left.AccumulatedFees),
		feeOrZero(right.AccumulatedFees),
	)

	return &BlockRootOrBlockMergePublicInputs{
		PreviousArchive:      left.Constants.LastArchive,
		EndArchive:           in.NewArchive,
		StartGlobalVariables: left.Constants.GlobalVariables.Clone(),
		EndGlobalVariables:   right.Constants.GlobalVariables.Clone(),
		OutHash:              crypto.AccumulateHash(left.OutHash, right.OutHash),
		StartSpongeBlob:      left.StartSpongeBlob,
		EndSpongeBlob:        endSponge,
		BlobPublicInputs:     blobInputs,
		AccumulatedFees:      fees,
	}, nil
}

// checkSpongeChaining enforces that the two children agree on one shared,
// monotonically advancing transcript: the right child must resume exactly
// where the left ended, so that continuing absorption from left's end state
// by right's contribution reproduces right's end state.
func checkSpongeChaining(left, right *BaseOrMergeRollupPublicInputs) error {
	if !right.StartSpongeBlob.Equal(left.EndSpongeBlob) {
		return ErrSpongeChainBroken
	}
	// Right's bracket must advance, never rewind, and keep the block total.
	if right.EndSpongeBlob.Fields < right.StartSpongeBlob.Fields {
		return ErrSpongeChainBroken
	}
	if right.EndSpongeBlob.ExpectedFields != right.StartSpongeBlob.ExpectedFields {
		return ErrSpongeChainBroken
	}
	return nil
}
