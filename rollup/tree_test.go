package rollup

import (
	"encoding/hex"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/intls/aztec-packages/blob"
	"github.com/intls/aztec-packages/crypto"
)

// g1GeneratorCompressed is the compressed BLS12-381 G1 generator, a canonical
// subgroup point usable as a stand-in commitment.
const g1GeneratorCompressed = "97f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb"

func validTestCommitment(t *testing.T) blob.Commitment {
	t.Helper()
	raw, err := hex.DecodeString(g1GeneratorCompressed)
	if err != nil {
		t.Fatalf("decoding generator constant: %v", err)
	}
	var c blob.Commitment
	copy(c[:], raw)
	return c
}

func makeTestLeaves(t *testing.T, n int, total uint32) ([]BaseOrMergeRollupPublicInputs, []fr.Element) {
	t.Helper()
	fields := make([]fr.Element, total)
	for i := range fields {
		fields[i] = frElem(uint64(i + 3))
	}
	return makeChainedLeavesFrom(t, testConstants(1), NewSpongeBlob(total), fields, n), fields
}

func TestNewMergeTreeLeafCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5, 6} {
		if _, err := NewMergeTree(make([]BaseOrMergeRollupPublicInputs, n), DefaultTreeConfig()); err != ErrLeafCount {
			t.Errorf("n=%d: expected ErrLeafCount, got %v", n, err)
		}
	}
	for _, n := range []int{2, 4, 8} {
		if _, err := NewMergeTree(make([]BaseOrMergeRollupPublicInputs, n), DefaultTreeConfig()); err != nil {
			t.Errorf("n=%d: expected success, got %v", n, err)
		}
	}
}

func TestMergeTreeShape(t *testing.T) {
	leaves, _ := makeTestLeaves(t, 4, 8)
	tree, err := NewMergeTree(leaves, DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewMergeTree error: %v", err)
	}

	if tree.Len() != 7 {
		t.Fatalf("node count: got %d, want 7", tree.Len())
	}
	root := tree.Node(0)
	if root.Parent != -1 || root.Left != 1 || root.Right != 2 {
		t.Error("unexpected root node wiring")
	}
	for i := 3; i < 7; i++ {
		leaf := tree.Node(i)
		if leaf.Left != -1 || leaf.Right != -1 {
			t.Errorf("node %d should be a leaf", i)
		}
		if leaf.Unit == nil {
			t.Errorf("leaf %d should carry its unit", i)
		}
	}
	if tree.Node(3).Parent != 1 || tree.Node(6).Parent != 2 {
		t.Error("unexpected leaf parent wiring")
	}
}

func TestMergeTreeRunAccumulates(t *testing.T) {
	leaves, _ := makeTestLeaves(t, 4, 8)
	for i := range leaves {
		leaves[i].OutHash = hashFrom(byte(i + 1))
	}
	newArchive := AppendOnlyTreeSnapshot{Root: hashFrom(0xbb), NextAvailableLeafIndex: 2}

	tree, err := NewMergeTree(leaves, DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewMergeTree error: %v", err)
	}
	agg, err := tree.Run(nil, nil, newArchive)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := crypto.AccumulateHash(
		crypto.AccumulateHash(leaves[0].OutHash, leaves[1].OutHash),
		crypto.AccumulateHash(leaves[2].OutHash, leaves[3].OutHash),
	)
	if agg.OutHash != want {
		t.Errorf("out hash: got %s, want %s", agg.OutHash.Hex(), want.Hex())
	}
	if agg.PreviousArchive != leaves[0].Constants.LastArchive {
		t.Error("previous archive should come from the leftmost leaf")
	}
	if agg.EndArchive != newArchive {
		t.Error("end archive should be the declared post-block archive")
	}
	if !agg.StartSpongeBlob.IsEmpty() {
		t.Error("block start sponge should be empty")
	}
	if agg.EndSpongeBlob.Fields != 8 {
		t.Errorf("end sponge fields: got %d, want 8", agg.EndSpongeBlob.Fields)
	}
	if want := uint64(10 + 20 + 30 + 40); agg.AccumulatedFees.Uint64() != want {
		t.Errorf("fees: got %s, want %d", agg.AccumulatedFees, want)
	}
	if root := tree.Node(0); root.Unit == nil {
		t.Error("run should record the root unit")
	}
}

func TestMergeTreeParallelMatchesSequential(t *testing.T) {
	newArchive := AppendOnlyTreeSnapshot{Root: hashFrom(0xbb), NextAvailableLeafIndex: 2}

	run := func(parallel bool) *BlockRootOrBlockMergePublicInputs {
		leaves, _ := makeTestLeaves(t, 8, 16)
		cfg := DefaultTreeConfig()
		cfg.Parallel = parallel
		tree, err := NewMergeTree(leaves, cfg)
		if err != nil {
			t.Fatalf("NewMergeTree error: %v", err)
		}
		agg, err := tree.Run(nil, nil, newArchive)
		if err != nil {
			t.Fatalf("Run(parallel=%v) error: %v", parallel, err)
		}
		return agg
	}

	if run(true).Fingerprint() != run(false).Fingerprint() {
		t.Error("parallel and sequential evaluation should agree bit for bit")
	}
}

func TestMergeTreeDirtyLeftmostLeaf(t *testing.T) {
	fields := make([]fr.Element, 8)
	for i := range fields {
		fields[i] = frElem(uint64(i + 3))
	}
	pre, err := NewSpongeBlob(9).Absorb([]fr.Element{frElem(99)})
	if err != nil {
		t.Fatalf("Absorb error: %v", err)
	}
	leaves := makeChainedLeavesFrom(t, testConstants(1), pre, fields, 4)

	tree, err := NewMergeTree(leaves, DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewMergeTree error: %v", err)
	}
	if _, err := tree.Run(nil, nil, AppendOnlyTreeSnapshot{}); err != ErrFirstSpongeNotEmpty {
		t.Errorf("expected ErrFirstSpongeNotEmpty, got %v", err)
	}
}

func TestMergeTreeRejectsInvalidCommitment(t *testing.T) {
	leaves, _ := makeTestLeaves(t, 2, 4)
	tree, err := NewMergeTree(leaves, DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewMergeTree error: %v", err)
	}

	bad := testCommitment(0xff)
	if _, err := tree.Run([]blob.Commitment{bad}, []*blob.Blob{nil}, AppendOnlyTreeSnapshot{}); err != blob.ErrInvalidCommitment {
		t.Errorf("expected ErrInvalidCommitment, got %v", err)
	}
}

func TestMergeTreeBindsCommitment(t *testing.T) {
	leaves, fields := makeTestLeaves(t, 2, 4)
	b, err := blob.NewBlob(fields)
	if err != nil {
		t.Fatalf("NewBlob error: %v", err)
	}
	c := validTestCommitment(t)

	tree, err := NewMergeTree(leaves, DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewMergeTree error: %v", err)
	}
	agg, err := tree.Run([]blob.Commitment{c}, []*blob.Blob{b}, AppendOnlyTreeSnapshot{Root: hashFrom(0xbb)})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(agg.BlobPublicInputs) != 1 {
		t.Fatalf("expected 1 blob public input, got %d", len(agg.BlobPublicInputs))
	}

	digest, err := leaves[1].EndSpongeBlob.Squeeze()
	if err != nil {
		t.Fatalf("Squeeze error: %v", err)
	}
	got := agg.BlobPublicInputs[0]
	wantZ := ComputeChallenge(digest, c)
	if !got.Z.Equal(&wantZ) {
		t.Error("challenge point should bind the block transcript to the commitment")
	}
	wantY := b.Evaluate(wantZ)
	if !got.Y.Equal(&wantY) {
		t.Error("claimed evaluation should match the blob polynomial at z")
	}
}
