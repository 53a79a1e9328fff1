package blob

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	goethkzg "github.com/crate-crypto/go-eth-kzg"
)

// OpeningProofSize is the byte length of a KZG opening proof (G1 point).
const OpeningProofSize = 48

// OpeningProof is a 48-byte KZG proof that a committed blob polynomial
// evaluates to a claimed value at a given point.
type OpeningProof [OpeningProofSize]byte

// KZGBackend wraps a go-eth-kzg context initialized with the Ethereum
// ceremony trusted setup. It is the prover-side collaborator that turns
// blobs into commitments and produces opening proofs at challenge points.
// Safe for concurrent use once constructed.
type KZGBackend struct {
	ctx *goethkzg.Context
}

// NewKZGBackend initializes the KZG backend. Processing the embedded SRS
// takes a few seconds; construct it once and share it.
func NewKZGBackend() (*KZGBackend, error) {
	ctx, err := goethkzg.NewContext4096Secure()
	if err != nil {
		return nil, fmt.Errorf("blob: initializing kzg context: %w", err)
	}
	return &KZGBackend{ctx: ctx}, nil
}

// Commit computes the KZG commitment to the blob's content.
func (k *KZGBackend) Commit(b *Blob) (Commitment, error) {
	comm, err := k.ctx.BlobToKZGCommitment(b.Serialize(), 0)
	if err != nil {
		return Commitment{}, fmt.Errorf("blob: computing commitment: %w", err)
	}
	return Commitment(comm), nil
}

// ProveOpening produces a KZG opening proof for the blob at point z and
// returns the proof together with the evaluated value y = p(z).
func (k *KZGBackend) ProveOpening(b *Blob, z fr.Element) (OpeningProof, fr.Element, error) {
	zBytes := z.Bytes()
	proof, yBytes, err := k.ctx.ComputeKZGProof(b.Serialize(), goethkzg.Scalar(zBytes), 0)
	if err != nil {
		return OpeningProof{}, fr.Element{}, fmt.Errorf("blob: computing opening proof: %w", err)
	}
	var y fr.Element
	y.SetBytes(yBytes[:])
	return OpeningProof(proof), y, nil
}

// VerifyOpening checks a KZG opening proof: that the polynomial committed to
// by c evaluates to y at z.
func (k *KZGBackend) VerifyOpening(c Commitment, z, y fr.Element, proof OpeningProof) error {
	zBytes := z.Bytes()
	yBytes := y.Bytes()
	err := k.ctx.VerifyKZGProof(
		goethkzg.KZGCommitment(c),
		goethkzg.Scalar(zBytes),
		goethkzg.Scalar(yBytes),
		goethkzg.KZGProof(proof),
	)
	if err != nil {
		return fmt.Errorf("blob: opening proof rejected: %w", err)
	}
	return nil
}
