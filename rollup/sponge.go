package rollup

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/intls/aztec-packages/crypto"
)

// Sponge transcript errors. Both indicate a malformed unit, not a
// recoverable runtime condition.
var (
	ErrSpongeOverflow   = errors.New("rollup: sponge absorbed past expected fields")
	ErrSpongeIncomplete = errors.New("rollup: sponge squeezed before absorption complete")
)

// SpongeBlob is a transcript state over the block's committed bulk data: an
// incremental Poseidon accumulator plus absorption bookkeeping. States are
// plain comparable values carried inside units, never a shared mutable
// object: composition happens by passing start/end snapshots, which keeps
// merges parallelizable and testable in isolation.
type SpongeBlob struct {
	// Accumulator is the running transcript digest.
	Accumulator fr.Element

	// Fields is the number of field elements absorbed so far.
	Fields uint32

	// ExpectedFields is the total the block will absorb. Invariant:
	// Fields <= ExpectedFields.
	ExpectedFields uint32
}

// NewSpongeBlob returns a fresh transcript expecting the given total number
// of fields. A fresh sponge has absorbed nothing.
func NewSpongeBlob(expectedFields uint32) SpongeBlob {
	return SpongeBlob{ExpectedFields: expectedFields}
}

// IsEmpty reports whether nothing has been absorbed yet.
func (s SpongeBlob) IsEmpty() bool { return s.Fields == 0 }

// Equal reports whether two transcript states are identical.
func (s SpongeBlob) Equal(o SpongeBlob) bool {
	return s.Fields == o.Fields &&
		s.ExpectedFields == o.ExpectedFields &&
		s.Accumulator.Equal(&o.Accumulator)
}

// Absorb appends the given field elements to the transcript and returns the
// advanced state. The receiver is not mutated. Absorbing past
// ExpectedFields fails with ErrSpongeOverflow.
func (s SpongeBlob) Absorb(fields []fr.Element) (SpongeBlob, error) {
	if uint64(s.Fields)+uint64(len(fields)) > uint64(s.ExpectedFields) {
		return s, ErrSpongeOverflow
	}
	for i := range fields {
		s.Accumulator = crypto.PoseidonHash(s.Accumulator, fields[i])
	}
	s.Fields += uint32(len(fields))
	return s, nil
}

// Squeeze finalizes the transcript into a single digest. Valid only once
// absorption is complete; squeezing early signals a malformed unit and
// fails with ErrSpongeIncomplete.
func (s SpongeBlob) Squeeze() (fr.Element, error) {
	if s.Fields != s.ExpectedFields {
		return fr.Element{}, ErrSpongeIncomplete
	}
	var count fr.Element
	count.SetUint64(uint64(s.Fields))
	return crypto.PoseidonHash(s.Accumulator, count), nil
}
