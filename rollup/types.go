// Package rollup implements the proof-composition core of the protocol:
// merging two validated rollup units (leaf batch results or prior merge
// outputs) into one block aggregate, and block aggregates into chains of
// blocks. Every cross-unit consistency rule lives here: chain-state
// continuity, transaction-effect hash accumulation, blob transcript
// chaining, and commitment binding via a Fiat-Shamir challenge.
package rollup

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/holiman/uint256"

	"github.com/intls/aztec-packages/blob"
	"github.com/intls/aztec-packages/core/types"
)

// UnitKind tags a rollup unit as a leaf batch result or a prior merge output.
// All downstream logic only reads the shared public fields; the tag exists so
// orchestration can tell the two apart.
type UnitKind uint8

const (
	UnitBase UnitKind = iota
	UnitMerge
)

// String returns the name of the unit kind.
func (k UnitKind) String() string {
	switch k {
	case UnitBase:
		return "base"
	case UnitMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// GasFees holds the per-dimension gas prices in force for a block.
type GasFees struct {
	FeePerDAGas *uint256.Int
	FeePerL2Gas *uint256.Int
}

// Equal compares two fee sets, treating nil as zero.
func (g GasFees) Equal(o GasFees) bool {
	return feeOrZero(g.FeePerDAGas).Eq(feeOrZero(o.FeePerDAGas)) &&
		feeOrZero(g.FeePerL2Gas).Eq(feeOrZero(o.FeePerL2Gas))
}

// Clone returns a deep copy of the fee set.
func (g GasFees) Clone() GasFees {
	return GasFees{
		FeePerDAGas: feeOrZero(g.FeePerDAGas).Clone(),
		FeePerL2Gas: feeOrZero(g.FeePerL2Gas).Clone(),
	}
}

func feeOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return uint256.NewInt(0)
	}
	return v
}

// GlobalVariables is the chain-state snapshot a rollup unit asserts: the
// block it belongs to and the fee environment it executed under.
type GlobalVariables struct {
	ChainID      uint64
	Version      uint64
	BlockNumber  uint64
	Timestamp    uint64
	Coinbase     types.Address
	FeeRecipient types.Address
	GasFees      GasFees
}

// Equal reports whether two snapshots are identical.
func (g GlobalVariables) Equal(o GlobalVariables) bool {
	return g.ChainID == o.ChainID &&
		g.Version == o.Version &&
		g.BlockNumber == o.BlockNumber &&
		g.Timestamp == o.Timestamp &&
		g.Coinbase == o.Coinbase &&
		g.FeeRecipient == o.FeeRecipient &&
		g.GasFees.Equal(o.GasFees)
}

// Clone returns a deep copy (the fee fields are pointers).
func (g GlobalVariables) Clone() GlobalVariables {
	out := g
	out.GasFees = g.GasFees.Clone()
	return out
}

// AppendOnlyTreeSnapshot identifies an archive-tree checkpoint: its root and
// the next free leaf slot.
type AppendOnlyTreeSnapshot struct {
	Root                   types.Hash
	NextAvailableLeafIndex uint32
}

// IsZero returns whether the snapshot is unset.
func (s AppendOnlyTreeSnapshot) IsZero() bool {
	return s == AppendOnlyTreeSnapshot{}
}

// ConstantRollupData is the chain-state context a unit was proven against.
type ConstantRollupData struct {
	LastArchive     AppendOnlyTreeSnapshot
	GlobalVariables GlobalVariables
}

// BlobPublicInputs is one evaluation claim binding a blob commitment to the
// transcript: any opening proof for Commitment must evaluate to Y at Z.
type BlobPublicInputs struct {
	Z          fr.Element
	Y          fr.Element
	Commitment blob.Commitment
}

// BaseOrMergeRollupPublicInputs is a rollup unit: the validated public
// inputs of either a leaf batch proof or a prior merge. Units are immutable
// values; merges consume them read-only.
type BaseOrMergeRollupPublicInputs struct {
	Kind             UnitKind
	Constants        ConstantRollupData
	OutHash          types.Hash
	StartSpongeBlob  SpongeBlob
	EndSpongeBlob    SpongeBlob
	BlobPublicInputs []BlobPublicInputs
	AccumulatedFees  *uint256.Int
}

// BlockRootMergeInputs is the input to the block-root merge: exactly two
// adjacent rollup units plus the external blob commitments (and their data)
// for the block, if this merge completes the block.
type BlockRootMergeInputs struct {
	PreviousRollupData [2]BaseOrMergeRollupPublicInputs

	// BlobCommitments are the external commitments to the block's bulk data,
	// one per blob chunk. Empty for merges below the block root.
	BlobCommitments []blob.Commitment

	// Blobs is the blob data backing BlobCommitments, index-aligned, used to
	// evaluate each blob at its challenge point.
	Blobs []*blob.Blob

	// NewArchive is the archive snapshot after this block is inserted,
	// declared by the orchestration layer.
	NewArchive AppendOnlyTreeSnapshot

	// BlockStart marks that the left unit's start sponge is the block's
	// first transcript state and must therefore be empty.
	BlockStart bool

	// Policy overrides the continuity validation policy. Nil means
	// DefaultContinuityPolicy.
	Policy *ContinuityPolicy
}

// BlockRootOrBlockMergePublicInputs is the aggregate produced by a merge:
// the same public surface as a rollup unit plus explicit start/end global
// variables and archive bracketing. Created once per merge, immutable after.
type BlockRootOrBlockMergePublicInputs struct {
	PreviousArchive      AppendOnlyTreeSnapshot
	EndArchive           AppendOnlyTreeSnapshot
	StartGlobalVariables GlobalVariables
	EndGlobalVariables   GlobalVariables
	OutHash              types.Hash
	StartSpongeBlob      SpongeBlob
	EndSpongeBlob        SpongeBlob
	BlobPublicInputs     []BlobPublicInputs
	AccumulatedFees      *uint256.Int
}

// Unit re-wraps the aggregate as a rollup unit so a higher-level merge can
// consume it uniformly with leaf units.
func (p *BlockRootOrBlockMergePublicInputs) Unit() BaseOrMergeRollupPublicInputs {
	return BaseOrMergeRollupPublicInputs{
		Kind: UnitMerge,
		Constants: ConstantRollupData{
			LastArchive:     p.PreviousArchive,
			GlobalVariables: p.EndGlobalVariables.Clone(),
		},
		OutHash:          p.OutHash,
		StartSpongeBlob:  p.StartSpongeBlob,
		EndSpongeBlob:    p.EndSpongeBlob,
		BlobPublicInputs: append([]BlobPublicInputs(nil), p.BlobPublicInputs...),
		AccumulatedFees:  feeOrZero(p.AccumulatedFees).Clone(),
	}
}
