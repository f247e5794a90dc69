package model

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
)

// Snapshot is the serializable form of a fitted model. Exactly one of the
// typed fields is set, matching Type.
type Snapshot struct {
	Type   ModelType
	Linear *LinearFit
	Forest *ForestFit
	Boost  *BoostFit
}

// Capture converts a fitted model into its snapshot.
func Capture(f Fitted) (Snapshot, error) {
	switch m := f.(type) {
	case *LinearFit:
		return Snapshot{Type: ModelTypeLinear, Linear: m}, nil
	case *ForestFit:
		return Snapshot{Type: ModelTypeRandomForest, Forest: m}, nil
	case *BoostFit:
		return Snapshot{Type: ModelTypeGradientBoosting, Boost: m}, nil
	default:
		return Snapshot{}, fmt.Errorf("unsupported model %T", f)
	}
}

// Restore validates the snapshot and returns the fitted model.
func (s Snapshot) Restore() (Fitted, error) {
	switch s.Type {
	case ModelTypeLinear:
		if s.Linear == nil || len(s.Linear.Coef) == 0 {
			return nil, errors.New("linear snapshot has no coefficients")
		}
		return s.Linear, nil

	case ModelTypeRandomForest:
		if s.Forest == nil || len(s.Forest.Trees) == 0 {
			return nil, errors.New("forest snapshot has no trees")
		}
		if err := validateTrees(s.Forest.Trees, s.Forest.Width); err != nil {
			return nil, err
		}
		return s.Forest, nil

	case ModelTypeGradientBoosting:
		if s.Boost == nil {
			return nil, errors.New("boosting snapshot is empty")
		}
		if err := validateTrees(s.Boost.Trees, s.Boost.Width); err != nil {
			return nil, err
		}
		return s.Boost, nil

	default:
		return nil, fmt.Errorf("unknown model type: %q", s.Type)
	}
}

func validateTrees(trees []Tree, width int) error {
	if width <= 0 {
		return fmt.Errorf("invalid feature width %d", width)
	}
	for i := range trees {
		if err := trees[i].validate(width); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// Encode writes a fitted model as gob.
func Encode(w io.Writer, f Fitted) error {
	snap, err := Capture(f)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// Decode reads a model written by Encode.
func Decode(r io.Reader) (Fitted, error) {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return snap.Restore()
}
