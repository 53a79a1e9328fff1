package rollup

import (
	"encoding/binary"

	"github.com/intls/aztec-packages/core/types"
	"github.com/intls/aztec-packages/crypto"
)

// Fixed-width, order-sensitive binary layout for public inputs. Digests and
// scalars are 32 big-endian bytes, commitments 48 bytes, counters big-endian
// fixed-width integers, with no padding tolerance: the encoding must be
// byte-for-byte reproducible across implementations.

func appendSnapshot(buf []byte, s AppendOnlyTreeSnapshot) []byte {
	buf = append(buf, s.Root[:]...)
	return binary.BigEndian.AppendUint32(buf, s.NextAvailableLeafIndex)
}

func appendGlobalVariables(buf []byte, g GlobalVariables) []byte {
	buf = binary.BigEndian.AppendUint64(buf, g.ChainID)
	buf = binary.BigEndian.AppendUint64(buf, g.Version)
	buf = binary.BigEndian.AppendUint64(buf, g.BlockNumber)
	buf = binary.BigEndian.AppendUint64(buf, g.Timestamp)
	buf = append(buf, g.Coinbase[:]...)
	buf = append(buf, g.FeeRecipient[:]...)
	da := feeOrZero(g.GasFees.FeePerDAGas).Bytes32()
	l2 := feeOrZero(g.GasFees.FeePerL2Gas).Bytes32()
	buf = append(buf, da[:]...)
	return append(buf, l2[:]...)
}

func appendSpongeBlob(buf []byte, s SpongeBlob) []byte {
	acc := s.Accumulator.Bytes()
	buf = append(buf, acc[:]...)
	buf = binary.BigEndian.AppendUint32(buf, s.Fields)
	return binary.BigEndian.AppendUint32(buf, s.ExpectedFields)
}

func appendBlobPublicInputs(buf []byte, inputs []BlobPublicInputs) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(inputs)))
	for i := range inputs {
		z := inputs[i].Z.Bytes()
		y := inputs[i].Y.Bytes()
		buf = append(buf, z[:]...)
		buf = append(buf, y[:]...)
		buf = append(buf, inputs[i].Commitment[:]...)
	}
	return buf
}

// Encode serializes the unit's public inputs into the fixed layout.
func (u *BaseOrMergeRollupPublicInputs) Encode() []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, byte(u.Kind))
	buf = appendSnapshot(buf, u.Constants.LastArchive)
	buf = appendGlobalVariables(buf, u.Constants.GlobalVariables)
	buf = append(buf, u.OutHash[:]...)
	buf = appendSpongeBlob(buf, u.StartSpongeBlob)
	buf = appendSpongeBlob(buf, u.EndSpongeBlob)
	fees := feeOrZero(u.AccumulatedFees).Bytes32()
	buf = append(buf, fees[:]...)
	return appendBlobPublicInputs(buf, u.BlobPublicInputs)
}

// Fingerprint is the Keccak-256 digest of the unit's encoding, used by the
// orchestration layer for identification and logging.
func (u *BaseOrMergeRollupPublicInputs) Fingerprint() types.Hash {
	return crypto.Keccak256Hash(u.Encode())
}

// Encode serializes the aggregate's public inputs into the fixed layout.
func (p *BlockRootOrBlockMergePublicInputs) Encode() []byte {
	buf := make([]byte, 0, 384)
	buf = appendSnapshot(buf, p.PreviousArchive)
	buf = appendSnapshot(buf, p.EndArchive)
	buf = appendGlobalVariables(buf, p.StartGlobalVariables)
	buf = appendGlobalVariables(buf, p.EndGlobalVariables)
	buf = append(buf, p.OutHash[:]...)
	buf = appendSpongeBlob(buf, p.StartSpongeBlob)
	buf = appendSpongeBlob(buf, p.EndSpongeBlob)
	fees := feeOrZero(p.AccumulatedFees).Bytes32()
	buf = append(buf, fees[:]...)
	return appendBlobPublicInputs(buf, p.BlobPublicInputs)
}

// Fingerprint is the Keccak-256 digest of the aggregate's encoding.
func (p *BlockRootOrBlockMergePublicInputs) Fingerprint() types.Hash {
	return crypto.Keccak256Hash(p.Encode())
}
