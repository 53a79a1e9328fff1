package blob

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	blst "github.com/supranational/blst/bindings/go"
)

// CommitmentSize is the byte length of a compressed G1 commitment.
const CommitmentSize = 48

// Commitment is a 48-byte compressed BLS12-381 G1 point committing to a
// blob's content.
type Commitment [CommitmentSize]byte

// IsZero returns whether the commitment is all zeros.
func (c Commitment) IsZero() bool {
	return c == Commitment{}
}

// Hex returns the hex string representation of the commitment.
func (c Commitment) Hex() string { return fmt.Sprintf("0x%x", c[:]) }

// String implements fmt.Stringer.
func (c Commitment) String() string { return c.Hex() }

// Fields encodes the 48-byte commitment as two scalar field limbs by
// splitting it into two 24-byte big-endian halves. Each half is below the
// field modulus, so the encoding is injective and reproducible.
func (c Commitment) Fields() (fr.Element, fr.Element) {
	var c0, c1 fr.Element
	c0.SetBytes(c[:CommitmentSize/2])
	c1.SetBytes(c[CommitmentSize/2:])
	return c0, c1
}

// Validate checks that the commitment decompresses to a point on the curve
// inside the G1 subgroup. External commitments must pass this before being
// bound into a merge.
func (c Commitment) Validate() error {
	p := new(blst.P1Affine).Uncompress(c[:])
	if p == nil {
		return ErrInvalidCommitment
	}
	if !p.InG1() {
		return ErrInvalidCommitment
	}
	return nil
}
