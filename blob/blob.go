// Package blob models the bulk-data commitment side of the rollup: blobs as
// vectors of BLS12-381 scalars, their KZG commitments, and polynomial
// evaluation at challenge points over the EIP-4844 bit-reversed domain.
package blob

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	goethkzg "github.com/crate-crypto/go-eth-kzg"
)

// Blob errors.
var (
	ErrBlobTooLarge      = errors.New("blob: more than 4096 field elements")
	ErrInvalidCommitment = errors.New("blob: commitment is not a valid G1 point")
)

// Blob size constants matching the EIP-4844 layout.
const (
	// FieldElementsPerBlob is the number of scalars in a full blob.
	FieldElementsPerBlob = 4096

	// BytesPerFieldElement is the serialized size of one scalar.
	BytesPerFieldElement = 32

	// BytesPerBlob is the total serialized blob size (4096 * 32).
	BytesPerBlob = FieldElementsPerBlob * BytesPerFieldElement
)

// Blob holds up to FieldElementsPerBlob scalars of committed bulk data.
// Unused trailing positions are implicitly zero.
type Blob struct {
	fields []fr.Element
}

// NewBlob creates a Blob from the given field elements. The elements are
// copied; the blob is immutable afterwards.
func NewBlob(fields []fr.Element) (*Blob, error) {
	if len(fields) > FieldElementsPerBlob {
		return nil, ErrBlobTooLarge
	}
	cp := make([]fr.Element, len(fields))
	copy(cp, fields)
	return &Blob{fields: cp}, nil
}

// Len returns the number of explicitly set field elements.
func (b *Blob) Len() int { return len(b.fields) }

// Fields returns a copy of the blob's field elements.
func (b *Blob) Fields() []fr.Element {
	cp := make([]fr.Element, len(b.fields))
	copy(cp, b.fields)
	return cp
}

// Serialize encodes the blob into the fixed 131072-byte EIP-4844 layout:
// each scalar as 32 big-endian bytes, zero-padded to 4096 elements.
func (b *Blob) Serialize() *goethkzg.Blob {
	var out goethkzg.Blob
	for i := range b.fields {
		be := b.fields[i].Bytes()
		copy(out[i*BytesPerFieldElement:(i+1)*BytesPerFieldElement], be[:])
	}
	return &out
}
