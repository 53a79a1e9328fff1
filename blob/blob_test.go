package blob

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func frElem(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func makeTestBlob(t *testing.T, n int) *Blob {
	t.Helper()
	fields := make([]fr.Element, n)
	for i := range fields {
		fields[i] = frElem(uint64(i + 1))
	}
	b, err := NewBlob(fields)
	if err != nil {
		t.Fatalf("NewBlob error: %v", err)
	}
	return b
}

func TestNewBlobTooLarge(t *testing.T) {
	fields := make([]fr.Element, FieldElementsPerBlob+1)
	if _, err := NewBlob(fields); err != ErrBlobTooLarge {
		t.Errorf("expected ErrBlobTooLarge, got %v", err)
	}
}

func TestNewBlobCopiesFields(t *testing.T) {
	fields := []fr.Element{frElem(1)}
	b, err := NewBlob(fields)
	if err != nil {
		t.Fatalf("NewBlob error: %v", err)
	}
	fields[0] = frElem(99)
	if got := b.Fields()[0]; !got.Equal(&[]fr.Element{frElem(1)}[0]) {
		t.Error("blob should not alias caller-owned fields")
	}
}

func TestBlobSerializeLayout(t *testing.T) {
	b := makeTestBlob(t, 2)
	out := b.Serialize()

	// Element i occupies bytes [32i, 32i+32) big-endian; value 2 lands in
	// the last byte of the second slot.
	if out[BytesPerFieldElement-1] != 1 || out[2*BytesPerFieldElement-1] != 2 {
		t.Error("unexpected serialized layout")
	}
	for _, idx := range []int{0, BytesPerFieldElement} {
		if out[idx] != 0 {
			t.Error("expected big-endian zero padding at slot start")
		}
	}
}

func TestEvaluateAtDomainPoint(t *testing.T) {
	b := makeTestBlob(t, 4)
	roots := evaluationDomain()

	for i := 0; i < 4; i++ {
		y := b.Evaluate(roots[i])
		want := frElem(uint64(i + 1))
		if !y.Equal(&want) {
			t.Errorf("evaluate at domain point %d: got %s, want %s", i, y.String(), want.String())
		}
	}

	// Unset positions evaluate to zero.
	y := b.Evaluate(roots[100])
	if !y.IsZero() {
		t.Errorf("unset position: got %s, want 0", y.String())
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	b := makeTestBlob(t, 8)
	z := frElem(123456789)

	y1 := b.Evaluate(z)
	y2 := b.Evaluate(z)
	if !y1.Equal(&y2) {
		t.Error("expected deterministic evaluation")
	}
}

func TestEvaluateSensitiveToFieldChange(t *testing.T) {
	b1 := makeTestBlob(t, 8)

	fields := b1.Fields()
	fields[3] = frElem(777)
	b2, err := NewBlob(fields)
	if err != nil {
		t.Fatalf("NewBlob error: %v", err)
	}

	z := frElem(987654321)
	y1 := b1.Evaluate(z)
	y2 := b2.Evaluate(z)
	if y1.Equal(&y2) {
		t.Error("changing a blob field should change the evaluation")
	}
}

func TestEvaluateEmptyBlob(t *testing.T) {
	b, err := NewBlob(nil)
	if err != nil {
		t.Fatalf("NewBlob error: %v", err)
	}
	y := b.Evaluate(frElem(42))
	if !y.IsZero() {
		t.Errorf("empty blob evaluates to %s, want 0", y.String())
	}
}
