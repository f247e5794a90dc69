package model

import (
	"fmt"
	"sort"
)

// minGain is the smallest impurity decrease that justifies a split.
const minGain = 1e-12

// Node is one node of a regression tree, stored in a flat slice.
// Rows with x[Feature] <= Threshold go Left.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
	Leaf      bool
}

// Tree is a CART regression tree using the squared error criterion.
type Tree struct {
	Nodes []Node
}

// Evaluate walks the tree for one vector.
func (t *Tree) Evaluate(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (t *Tree) validate(width int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d splits on feature %d of %d", i, n.Feature, width)
		}
		// Children are always appended after their parent.
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

type treeParams struct {
	maxDepth       int // 0 means unlimited
	minSamplesLeaf int
}

type treeBuilder struct {
	params     treeParams
	x          [][]float64
	y          []float64
	nodes      []Node
	importance []float64
}

// growTree fits a tree on the rows selected by idx (duplicates allowed)
// and returns it with the unnormalized impurity decrease per feature.
func growTree(x [][]float64, y []float64, idx []int, params treeParams) (Tree, []float64) {
	if params.minSamplesLeaf < 1 {
		params.minSamplesLeaf = 1
	}
	b := &treeBuilder{
		params:     params,
		x:          x,
		y:          y,
		importance: make([]float64, len(x[0])),
	}
	b.build(idx, 0)
	return Tree{Nodes: b.nodes}, b.importance
}

type split struct {
	feature   int
	threshold float64
	at        int
	left      []int
	right     []int
	sse       float64
}

func (b *treeBuilder) build(idx []int, depth int) int {
	var sum, sq float64
	for _, i := range idx {
		sum += b.y[i]
		sq += b.y[i] * b.y[i]
	}
	n := float64(len(idx))
	mean := sum / n
	sse := sq - sum*sum/n

	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Leaf: true, Value: mean})

	if b.params.maxDepth > 0 && depth >= b.params.maxDepth {
		return id
	}
	if len(idx) < 2*b.params.minSamplesLeaf || sse <= minGain {
		return id
	}

	best, ok := b.bestSplit(idx, sum, sq)
	if !ok || sse-best.sse <= minGain {
		return id
	}

	b.importance[best.feature] += sse - best.sse

	left := b.build(best.left, depth+1)
	right := b.build(best.right, depth+1)
	b.nodes[id] = Node{
		Feature:   best.feature,
		Threshold: best.threshold,
		Left:      left,
		Right:     right,
		Value:     mean,
	}
	return id
}

func (b *treeBuilder) bestSplit(idx []int, totalSum, totalSq float64) (split, bool) {
	n := len(idx)
	minLeaf := b.params.minSamplesLeaf
	best := split{sse: -1}
	found := false

	sorted := make([]int, n)
	for f := range b.importance {
		copy(sorted, idx)
		b.sortBy(sorted, f)

		var leftSum, leftSq float64
		for k := 1; k < n; k++ {
			yi := b.y[sorted[k-1]]
			leftSum += yi
			leftSq += yi * yi

			lo, hi := b.x[sorted[k-1]][f], b.x[sorted[k]][f]
			if lo == hi {
				continue
			}
			if k < minLeaf || n-k < minLeaf {
				continue
			}

			nl, nr := float64(k), float64(n-k)
			rightSum := totalSum - leftSum
			candidate := (leftSq - leftSum*leftSum/nl) + ((totalSq - leftSq) - rightSum*rightSum/nr)

			if !found || candidate < best.sse-minGain {
				found = true
				best = split{
					feature:   f,
					threshold: lo + (hi-lo)/2,
					at:        k,
					sse:       candidate,
				}
			}
		}
	}
	if !found {
		return best, false
	}

	copy(sorted, idx)
	b.sortBy(sorted, best.feature)
	best.left = append([]int(nil), sorted[:best.at]...)
	best.right = append([]int(nil), sorted[best.at:]...)
	return best, true
}

func (b *treeBuilder) sortBy(rows []int, f int) {
	sort.SliceStable(rows, func(a, c int) bool {
		return b.x[rows[a]][f] < b.x[rows[c]][f]
	})
}
