package rollup

import "errors"

// Continuity errors. A violation is fatal to the merge: there is no retry or
// partial acceptance.
var (
	ErrChainMismatch         = errors.New("rollup: chain id or version mismatch across merge boundary")
	ErrBlockNumberRegression = errors.New("rollup: block number regresses across merge boundary")
	ErrBlockNumberGap        = errors.New("rollup: block numbers not sequential across block merge")
	ErrTimestampRegression   = errors.New("rollup: timestamp regresses across merge boundary")
	ErrArchiveChainBroken    = errors.New("rollup: archive chain broken across block merge")
)

// ContinuityPolicy configures how strictly chain state must advance between
// merged blocks. The defaults only forbid regression; stricter deployments
// can demand sequential block numbers and strictly increasing timestamps.
type ContinuityPolicy struct {
	// RequireSequentialBlocks demands right.BlockNumber == left.BlockNumber+1
	// at block-merge boundaries.
	RequireSequentialBlocks bool

	// RequireTimestampAdvance demands strictly increasing timestamps at
	// block-merge boundaries.
	RequireTimestampAdvance bool
}

// DefaultContinuityPolicy returns the non-decreasing-only policy.
func DefaultContinuityPolicy() ContinuityPolicy {
	return ContinuityPolicy{}
}

// CheckContinuity validates that two rollup units are adjacent and may
// legally be merged: they must assert the same chain, and chain state must
// not move backwards from left to right. Units inside one block carry
// identical global variables, which trivially satisfies this; the policy's
// strictness knobs only bite when the block number changes across the
// boundary, i.e. when re-wrapped aggregates from different blocks meet.
func CheckContinuity(left, right *BaseOrMergeRollupPublicInputs, policy ContinuityPolicy) error {
	lgv := &left.Constants.GlobalVariables
	rgv := &right.Constants.GlobalVariables

	if lgv.ChainID != rgv.ChainID || lgv.Version != rgv.Version {
		return ErrChainMismatch
	}
	if rgv.BlockNumber < lgv.BlockNumber {
		return ErrBlockNumberRegression
	}
	if rgv.Timestamp < lgv.Timestamp {
		return ErrTimestampRegression
	}

	if rgv.BlockNumber != lgv.BlockNumber {
		if policy.RequireSequentialBlocks && rgv.BlockNumber != lgv.BlockNumber+1 {
			return ErrBlockNumberGap
		}
		if policy.RequireTimestampAdvance && rgv.Timestamp <= lgv.Timestamp {
			return ErrTimestampRegression
		}
	}
	return nil
}

// CheckBlockContinuity validates that two block-level aggregates chain:
// the right block must start from the archive the left block ended on, and
// its global variables must advance per the policy.
func CheckBlockContinuity(left, right *BlockRootOrBlockMergePublicInputs, policy ContinuityPolicy) error {
	if right.PreviousArchive != left.EndArchive {
		return ErrArchiveChainBroken
	}

	lgv := &left.EndGlobalVariables
	rgv := &right.StartGlobalVariables

	if lgv.ChainID != rgv.ChainID || lgv.Version != rgv.Version {
		return ErrChainMismatch
	}

	if policy.RequireSequentialBlocks {
		if rgv.BlockNumber != lgv.BlockNumber+1 {
			return ErrBlockNumberGap
		}
	} else if rgv.BlockNumber < lgv.BlockNumber {
		return ErrBlockNumberRegression
	}

	if policy.RequireTimestampAdvance {
		if rgv.Timestamp <= lgv.Timestamp {
			return ErrTimestampRegression
		}
	} else if rgv.Timestamp < lgv.Timestamp {
		return ErrTimestampRegression
	}

	return nil
}
