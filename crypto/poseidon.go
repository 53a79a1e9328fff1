// Package crypto implements the hash primitives of the proof-composition
// layer: the SHA-256 transaction-effect accumulator, Keccak-256
// fingerprinting, and a Poseidon hash over the BLS12-381 scalar field.
//
// poseidon.go implements the Poseidon permutation and hash used by the blob
// sponge transcript and the commitment binder. It operates over the
// BLS12-381 scalar field so that transcript fields, squeezed digests and
// challenge points live in the same field as blob data (EIP-4844 blobs are
// vectors of BLS12-381 scalars).
package crypto

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// PoseidonParams holds parameters for the Poseidon hash function.
// Default: t=3 (rate=2, capacity=1), full rounds=8, partial rounds=57.
type PoseidonParams struct {
	// T is the state width (rate + capacity).
	T int

	// FullRounds is the number of full S-box rounds (applied to all elements).
	FullRounds int

	// PartialRounds is the number of partial S-box rounds (applied to element 0).
	PartialRounds int

	// RoundConstants are the additive round constants.
	// Length = T * (FullRounds + PartialRounds).
	RoundConstants []fr.Element

	// MDS is the Maximum Distance Separable matrix (T x T).
	MDS [][]fr.Element
}

var (
	defaultParamsOnce sync.Once
	defaultParams     *PoseidonParams
)

// DefaultPoseidonParams returns the shared Poseidon parameters for the
// BLS12-381 scalar field with t=3, full rounds=8, partial rounds=57.
// The parameter set is generated once and reused; it is read-only.
func DefaultPoseidonParams() *PoseidonParams {
	defaultParamsOnce.Do(func() {
		t := 3
		fullRounds := 8
		partialRounds := 57
		totalRounds := fullRounds + partialRounds

		defaultParams = &PoseidonParams{
			T:              t,
			FullRounds:     fullRounds,
			PartialRounds:  partialRounds,
			RoundConstants: generateRoundConstants(t, totalRounds),
			MDS:            generateMDS(t),
		}
	})
	return defaultParams
}

// sbox computes x^5 in the scalar field (the Poseidon S-box).
func sbox(x *fr.Element) {
	var x2, x4 fr.Element
	x2.Square(x)
	x4.Square(&x2)
	x.Mul(&x4, x)
}

// mdsMul multiplies a state vector by the MDS matrix.
func mdsMul(state []fr.Element, mds [][]fr.Element) []fr.Element {
	t := len(state)
	result := make([]fr.Element, t)
	for i := 0; i < t; i++ {
		var sum, prod fr.Element
		for j := 0; j < t; j++ {
			prod.Mul(&mds[i][j], &state[j])
			sum.Add(&sum, &prod)
		}
		result[i] = sum
	}
	return result
}

// poseidonPermutation applies the Poseidon permutation to the state in place
// and returns it.
func poseidonPermutation(state []fr.Element, params *PoseidonParams) []fr.Element {
	t := params.T
	halfFull := params.FullRounds / 2
	rcIdx := 0

	// First half of full rounds.
	for r := 0; r < halfFull; r++ {
		for i := 0; i < t; i++ {
			state[i].Add(&state[i], &params.RoundConstants[rcIdx])
			rcIdx++
		}
		for i := 0; i < t; i++ {
			sbox(&state[i])
		}
		state = mdsMul(state, params.MDS)
	}

	// Partial rounds: S-box only on element 0.
	for r := 0; r < params.PartialRounds; r++ {
		for i := 0; i < t; i++ {
			state[i].Add(&state[i], &params.RoundConstants[rcIdx])
			rcIdx++
		}
		sbox(&state[0])
		state = mdsMul(state, params.MDS)
	}

	// Second half of full rounds.
	for r := 0; r < halfFull; r++ {
		for i := 0; i < t; i++ {
			state[i].Add(&state[i], &params.RoundConstants[rcIdx])
			rcIdx++
		}
		for i := 0; i < t; i++ {
			sbox(&state[i])
		}
		state = mdsMul(state, params.MDS)
	}

	return state
}

// PoseidonHash hashes one or more field elements using the Poseidon sponge
// with rate = T-1 and capacity = 1, returning a single field element. The
// capacity element is seeded with the input length, so inputs of different
// lengths never collide. The result is order-sensitive in its inputs.
func PoseidonHash(inputs ...fr.Element) fr.Element {
	params := DefaultPoseidonParams()
	t := params.T
	rate := t - 1

	state := make([]fr.Element, t)
	state[0].SetUint64(uint64(len(inputs)))

	for i := 0; i < len(inputs); i += rate {
		for j := 0; j < rate && i+j < len(inputs); j++ {
			state[j+1].Add(&state[j+1], &inputs[i+j])
		}
		state = poseidonPermutation(state, params)
	}

	// An empty input still gets one permutation.
	if len(inputs) == 0 {
		state = poseidonPermutation(state, params)
	}

	return state[0]
}

// --- Parameter generation helpers ---

// generateRoundConstants produces deterministic round constants as
// c_i = (seed + i)^5 with seed derived from a fixed domain string.
func generateRoundConstants(t, totalRounds int) []fr.Element {
	numConstants := t * totalRounds
	constants := make([]fr.Element, numConstants)

	var seed fr.Element
	seed.SetBytes([]byte("PoseidonBLS12381"))

	five := big.NewInt(5)
	for i := 0; i < numConstants; i++ {
		var val fr.Element
		val.SetUint64(uint64(i))
		val.Add(&val, &seed)
		val.Exp(val, five)
		constants[i] = val
	}
	return constants
}

// generateMDS produces a Cauchy MDS matrix: M[i][j] = 1 / (x_i + y_j) with
// x_i = i and y_j = t + j, which are distinct nonzero sums in a prime field.
func generateMDS(t int) [][]fr.Element {
	mds := make([][]fr.Element, t)
	for i := 0; i < t; i++ {
		mds[i] = make([]fr.Element, t)
		for j := 0; j < t; j++ {
			var sum fr.Element
			sum.SetUint64(uint64(i + t + j))
			mds[i][j].Inverse(&sum)
		}
	}
	return mds
}
