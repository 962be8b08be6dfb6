package ml

import (
	"context"
	"fmt"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// ForestModel is a random forest classifier. The class-1 probability is
// the mean of the leaf probabilities reached in each tree.
type ForestModel struct {
	baseModel
	trees []treeArtifact
}

func newForestModel(base baseModel, trees []treeArtifact) (*ForestModel, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: random forest has no trees", model.ErrArtifactCorrupt)
	}
	for i, t := range trees {
		if err := validateTree(t, len(base.columns)); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", model.ErrArtifactCorrupt, i, err)
		}
	}
	return &ForestModel{baseModel: base, trees: trees}, nil
}

// validateTree checks node references. Children must have a larger index
// than their parent, which rules out cycles.
func validateTree(t treeArtifact, numFeatures int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			if n.Value < 0 || n.Value > 1 {
				return fmt.Errorf("node %d: leaf probability %v outside [0,1]", i, n.Value)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= numFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d: child index %d out of range", i, child)
			}
		}
	}
	return nil
}

func (m *ForestModel) PredictProba(ctx context.Context, record model.Record) (float64, error) {
	x, err := m.features(record)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, t := range m.trees {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		sum += walk(t.Nodes, x)
	}
	return sum / float64(len(m.trees)), nil
}

func walk(nodes []treeNode, x []float64) float64 {
	i := 0
	for !nodes[i].Leaf {
		n := nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return nodes[i].Value
}
