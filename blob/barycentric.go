package blob

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Evaluate computes the blob polynomial's value at z using the barycentric
// formula over the bit-reversed evaluation domain:
//
//	p(z) = (z^N - 1)/N * sum_i f_i * w_i / (z - w_i)
//
// where w_i is the i-th domain point and N = 4096. If z coincides with a
// domain point the stored field (or zero, for unset positions) is returned
// directly. This is the evaluation any later KZG opening proof for the blob
// must agree with.
func (b *Blob) Evaluate(z fr.Element) fr.Element {
	roots := evaluationDomain()

	// z on the domain: the polynomial value is the evaluation itself.
	for i := range roots {
		if z.Equal(&roots[i]) {
			var y fr.Element
			if i < len(b.fields) {
				y = b.fields[i]
			}
			return y
		}
	}

	n := len(b.fields)
	if n == 0 {
		return fr.Element{}
	}

	// Batch-invert the denominators z - w_i for the populated positions.
	denoms := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		denoms[i].Sub(&z, &roots[i])
	}
	invDenoms := fr.BatchInvert(denoms)

	var sum fr.Element
	for i := 0; i < n; i++ {
		var term fr.Element
		term.Mul(&b.fields[i], &roots[i])
		term.Mul(&term, &invDenoms[i])
		sum.Add(&sum, &term)
	}

	// factor = (z^N - 1) / N
	var zn, one, nInv fr.Element
	zn.Exp(z, big.NewInt(FieldElementsPerBlob))
	one.SetOne()
	zn.Sub(&zn, &one)
	nInv.SetUint64(FieldElementsPerBlob)
	nInv.Inverse(&nInv)

	var y fr.Element
	y.Mul(&sum, &zn)
	y.Mul(&y, &nInv)
	return y
}
