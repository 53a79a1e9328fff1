package rollup

import (
	"errors"
	"sync"

	"github.com/intls/aztec-packages/blob"
	"github.com/intls/aztec-packages/log"
)

// ErrLeafCount rejects tree shapes the pairwise merge cannot cover.
var ErrLeafCount = errors.New("rollup: leaf count must be a power of two and at least two")

// TreeConfig controls merge-tree orchestration.
type TreeConfig struct {
	// Parallel enables concurrent evaluation of sibling subtrees. Each merge
	// owns its inputs exclusively, so no locking is needed.
	Parallel bool

	// Policy is the continuity validation policy applied to every merge.
	Policy ContinuityPolicy

	// Logger overrides the default logger.
	Logger *log.Logger
}

// DefaultTreeConfig returns a TreeConfig with parallel evaluation and the
// default continuity policy.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		Parallel: true,
		Policy:   DefaultContinuityPolicy(),
	}
}

// MergeNode is one slot in the index-addressed merge tree. Children of node
// i sit at indices 2i+1 and 2i+2; the root is node 0; leaves have child
// indices of -1.
type MergeNode struct {
	Parent int
	Left   int
	Right  int
	Unit   *BaseOrMergeRollupPublicInputs
}

// MergeTree composes a block's rollup units pairwise into the block
// aggregate. Nodes live in a flat index-addressed array rather than owned
// pointers, so units can be re-paired and inspected out of construction
// order. Leaves are stored left to right; evaluation order within a pair is
// always (left, right) because out-hash accumulation and transcript chaining
// are order-sensitive.
type MergeTree struct {
	cfg    TreeConfig
	nodes  []MergeNode
	logger *log.Logger
}

// NewMergeTree builds the tree over the given leaf units. The leaf count
// must be a power of two (pad short blocks with empty batches upstream).
func NewMergeTree(leaves []BaseOrMergeRollupPublicInputs, cfg TreeConfig) (*MergeTree, error) {
	n := len(leaves)
	if n < 2 || n&(n-1) != 0 {
		return nil, ErrLeafCount
	}

	total := 2*n - 1
	nodes := make([]MergeNode, total)
	for i := range nodes {
		nodes[i] = MergeNode{Parent: (i - 1) / 2, Left: -1, Right: -1}
		if 2*i+2 < total {
			nodes[i].Left = 2*i + 1
			nodes[i].Right = 2*i + 2
		}
	}
	nodes[0].Parent = -1
	for i := 0; i < n; i++ {
		u := leaves[i]
		nodes[n-1+i].Unit = &u
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &MergeTree{
		cfg:    cfg,
		nodes:  nodes,
		logger: logger.Module("rollup"),
	}, nil
}

// Len returns the total number of nodes in the tree.
func (t *MergeTree) Len() int { return len(t.nodes) }

// Node returns a copy of the node at the given index.
func (t *MergeTree) Node(i int) MergeNode { return t.nodes[i] }

// Run evaluates every merge in the tree and completes the block. The root
// merge carries the block-start rule, the declared post-block archive, and
// the block's blob commitments; commitments are validated as canonical G1
// points before any merge runs.
func (t *MergeTree) Run(
	commitments []blob.Commitment,
	blobs []*blob.Blob,
	newArchive AppendOnlyTreeSnapshot,
) (*BlockRootOrBlockMergePublicInputs, error) {
	for _, c := range commitments {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	root := &t.nodes[0]
	left, right, err := t.evalChildren(root)
	if err != nil {
		return nil, err
	}

	in := &BlockRootMergeInputs{
		PreviousRollupData: [2]BaseOrMergeRollupPublicInputs{left, right},
		BlobCommitments:    commitments,
		Blobs:              blobs,
		NewArchive:         newArchive,
		BlockStart:         true,
		Policy:             &t.cfg.Policy,
	}
	agg, err := MergeBlockRoot(in)
	if err != nil {
		t.logger.Error("block root merge rejected", "err", err)
		return nil, err
	}

	unit := agg.Unit()
	root.Unit = &unit
	t.logger.Info("block root merged",
		"outHash", agg.OutHash,
		"fingerprint", agg.Fingerprint(),
		"blobs", len(commitments),
	)
	return agg, nil
}

// eval evaluates the subtree rooted at idx and returns its unit.
func (t *MergeTree) eval(idx int) (BaseOrMergeRollupPublicInputs, error) {
	node := &t.nodes[idx]
	if node.Left < 0 {
		return *node.Unit, nil
	}

	left, right, err := t.evalChildren(node)
	if err != nil {
		return BaseOrMergeRollupPublicInputs{}, err
	}

	agg, err := MergeBlockRoot(&BlockRootMergeInputs{
		PreviousRollupData: [2]BaseOrMergeRollupPublicInputs{left, right},
		Policy:             &t.cfg.Policy,
	})
	if err != nil {
		t.logger.Error("merge rejected", "node", idx, "err", err)
		return BaseOrMergeRollupPublicInputs{}, err
	}

	unit := agg.Unit()
	node.Unit = &unit
	t.logger.Debug("merged", "node", idx, "fingerprint", unit.Fingerprint())
	return unit, nil
}

// evalChildren evaluates a node's two subtrees, concurrently when
// configured. Sibling merges own their inputs exclusively.
func (t *MergeTree) evalChildren(node *MergeNode) (BaseOrMergeRollupPublicInputs, BaseOrMergeRollupPublicInputs, error) {
	var (
		left, right BaseOrMergeRollupPublicInputs
		lerr, rerr  error
	)

	if t.cfg.Parallel {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			left, lerr = t.eval(node.Left)
		}()
		right, rerr = t.eval(node.Right)
		wg.Wait()
	} else {
		left, lerr = t.eval(node.Left)
		right, rerr = t.eval(node.Right)
	}

	if lerr != nil {
		return left, right, lerr
	}
	if rerr != nil {
		return left, right, rerr
	}
	return left, right, nil
}
