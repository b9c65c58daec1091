package serialization

import (
	"fmt"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Validation limits for resource protection when decoding untrusted input.
const (
	MaxLayers    = 1024    // Maximum number of layers in a snapshot
	MaxLayerSize = 1 << 20 // Maximum neurons in a single layer
)

// ValidateLayerSizes checks the layer-size sequence: at least two layers,
// every size in [1, MaxLayerSize], and no more than MaxLayers entries.
func ValidateLayerSizes(sizes []int) error {
	if len(sizes) > MaxLayers {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyLayers, len(sizes), MaxLayers)
	}
	if len(sizes) < 2 {
		return &ValidationError{
			Type:    "invalid_layers",
			Details: fmt.Sprintf("need at least 2 layers, got %d", len(sizes)),
		}
	}
	for i, n := range sizes {
		if n > MaxLayerSize {
			return fmt.Errorf("%w: layer %d has %d neurons, max %d", ErrLayerTooLarge, i, n, MaxLayerSize)
		}
		if n <= 0 {
			return &ValidationError{
				Type:    "invalid_layers",
				Field:   fmt.Sprintf("layer.%d", i),
				Details: fmt.Sprintf("size %d (must be > 0)", n),
			}
		}
	}
	return nil
}

// ValidateSnapshot checks that every matrix in s agrees with its layer sizes.
func ValidateSnapshot(s *Snapshot) error {
	if s == nil {
		return ErrNilSnapshot
	}
	if err := ValidateLayerSizes(s.LayerSizes); err != nil {
		return err
	}

	transitions := len(s.LayerSizes) - 1
	if len(s.Weights) != transitions || len(s.Biases) != transitions {
		return &ValidationError{
			Type: "layer_count_mismatch",
			Details: fmt.Sprintf("%d layers need %d weight and bias matrices, got %d and %d",
				len(s.LayerSizes), transitions, len(s.Weights), len(s.Biases)),
		}
	}

	for i := 0; i < transitions; i++ {
		out, in := s.LayerSizes[i+1], s.LayerSizes[i]
		if err := checkShape(fmt.Sprintf("weight.%d", i), s.Weights[i], out, in); err != nil {
			return err
		}
		if err := checkShape(fmt.Sprintf("bias.%d", i), s.Biases[i], out, 1); err != nil {
			return err
		}
	}
	return nil
}

// checkShape reports a shape_mismatch ValidationError when m is not rows×cols.
func checkShape(field string, m *matrix.Matrix, rows, cols int) error {
	if m == nil {
		return &ValidationError{Type: "missing_matrix", Field: field, Details: "matrix is nil"}
	}
	if m.Rows() != rows || m.Cols() != cols {
		return &ValidationError{
			Type:    "shape_mismatch",
			Field:   field,
			Details: fmt.Sprintf("expected (%d,%d), got (%d,%d)", rows, cols, m.Rows(), m.Cols()),
		}
	}
	return nil
}
