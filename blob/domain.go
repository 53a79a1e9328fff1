package blob

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

var (
	domainOnce  sync.Once
	domainRoots []fr.Element
)

// evaluationDomain returns the 4096 roots of unity in bit-reversed order,
// the EIP-4844 evaluation-form domain: position i holds w^bitrev(i).
// The slice is computed once and must be treated as read-only.
func evaluationDomain() []fr.Element {
	domainOnce.Do(func() {
		d := fft.NewDomain(FieldElementsPerBlob)
		roots := make([]fr.Element, FieldElementsPerBlob)
		roots[0].SetOne()
		for i := 1; i < FieldElementsPerBlob; i++ {
			roots[i].Mul(&roots[i-1], &d.Generator)
		}
		fft.BitReverse(roots)
		domainRoots = roots
	})
	return domainRoots
}
