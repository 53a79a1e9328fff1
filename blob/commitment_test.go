package blob

import (
	"encoding/hex"
	"testing"
)

// g1GeneratorCompressed is the compressed encoding of the BLS12-381 G1
// generator, a valid subgroup point.
const g1GeneratorCompressed = "97f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb"

func makeTestCommitment(t *testing.T) Commitment {
	t.Helper()
	raw, err := hex.DecodeString(g1GeneratorCompressed)
	if err != nil {
		t.Fatalf("decoding generator constant: %v", err)
	}
	var c Commitment
	copy(c[:], raw)
	return c
}

func TestCommitmentIsZero(t *testing.T) {
	var c Commitment
	if !c.IsZero() {
		t.Error("zero commitment should report IsZero")
	}
	c[0] = 1
	if c.IsZero() {
		t.Error("nonzero commitment should not report IsZero")
	}
}

func TestCommitmentFieldsDeterministic(t *testing.T) {
	c := makeTestCommitment(t)

	a0, a1 := c.Fields()
	b0, b1 := c.Fields()
	if !a0.Equal(&b0) || !a1.Equal(&b1) {
		t.Error("expected deterministic field encoding")
	}
}

func TestCommitmentFieldsInjective(t *testing.T) {
	c1 := makeTestCommitment(t)
	c2 := c1
	c2[47] ^= 0x01 // flip a bit in the second limb

	a0, a1 := c1.Fields()
	b0, b1 := c2.Fields()
	if !a0.Equal(&b0) {
		t.Error("first limb should be unchanged")
	}
	if a1.Equal(&b1) {
		t.Error("second limb should change when its bytes change")
	}
}

func TestCommitmentValidate(t *testing.T) {
	c := makeTestCommitment(t)
	if err := c.Validate(); err != nil {
		t.Errorf("generator point should validate, got %v", err)
	}
}

func TestCommitmentValidateRejectsGarbage(t *testing.T) {
	var c Commitment
	for i := range c {
		c[i] = 0xff
	}
	if err := c.Validate(); err != ErrInvalidCommitment {
		t.Errorf("expected ErrInvalidCommitment, got %v", err)
	}
}
