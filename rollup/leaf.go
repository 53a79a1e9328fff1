package rollup

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/holiman/uint256"

	"github.com/intls/aztec-packages/core/types"
	"github.com/intls/aztec-packages/crypto"
)

// BuildLeafUnit produces a base rollup unit for one transaction batch: the
// out hash is the SHA-256 root over the batch's transaction-effect digests,
// and the batch's blob field contribution is absorbed into the block
// transcript continuing from start. The first batch of a block starts from a
// fresh sponge; later batches continue from their left sibling's end state.
func BuildLeafUnit(
	constants ConstantRollupData,
	txEffects []types.Hash,
	blobFields []fr.Element,
	start SpongeBlob,
	fees *uint256.Int,
) (BaseOrMergeRollupPublicInputs, error) {
	end, err := start.Absorb(blobFields)
	if err != nil {
		return BaseOrMergeRollupPublicInputs{}, err
	}

	return BaseOrMergeRollupPublicInputs{
		Kind:            UnitBase,
		Constants:       constants,
		OutHash:         crypto.ComputeEffectsRoot(txEffects),
		StartSpongeBlob: start,
		EndSpongeBlob:   end,
		AccumulatedFees: feeOrZero(fees).Clone(),
	}, nil
}
