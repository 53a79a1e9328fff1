package rollup

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/intls/aztec-packages/blob"
	"github.com/intls/aztec-packages/crypto"
)

// ComputeChallenge derives the evaluation point binding a finalized
// transcript digest to an external blob commitment:
//
//	z = Poseidon(digest, c0, c1)
//
// where (c0, c1) is the commitment's fixed two-limb field encoding. Any
// later opening proof for the commitment must open at z, so a unit cannot be
// paired with a commitment to different data without the mismatch surfacing
// in the opening check.
func ComputeChallenge(transcriptDigest fr.Element, c blob.Commitment) fr.Element {
	c0, c1 := c.Fields()
	return crypto.PoseidonHash(transcriptDigest, c0, c1)
}
