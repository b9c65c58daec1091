// Package nn implements the fully-connected feedforward network engine.
//
// A Network is built from a layer-size sequence, an Activation descriptor and
// a fixed learning rate. Training is online gradient descent: every example
// runs FeedForward, which returns the per-layer Activations, followed by
// BackPropagate, which consumes them and updates weights and biases in place.
//
// A Network has no internal synchronization. Networks share no mutable state,
// so independent instances can be trained concurrently.
package nn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Common errors.
var (
	// ErrDimensionMismatch is the matrix sentinel, re-exported so callers
	// can match shape errors without importing the matrix package.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch

	ErrInvalidLayers  = errors.New("nn: invalid layer sizes")
	ErrSampleMismatch = errors.New("nn: inputs and targets differ in length")
)

// Activations is the per-layer record of post-activation values produced by
// one FeedForward call. Index 0 holds the input, index L-1 the output.
type Activations []*matrix.Matrix

// Network is a fully-connected feedforward network.
//
// weights[i] has shape (layerSizes[i+1], layerSizes[i]) and biases[i] has
// shape (layerSizes[i+1], 1).
type Network struct {
	layerSizes   []int
	weights      []*matrix.Matrix
	biases       []*matrix.Matrix
	activation   Activation
	learningRate float64
}

// New creates a network with weights and biases drawn uniformly from [0, 1).
//
// layerSizes lists neuron counts input layer first; it needs at least two
// entries, all positive.
//
// Example:
//
//	net, err := nn.New([]int{2, 3, 1}, nn.SigmoidActivation, 0.5)
func New(layerSizes []int, act Activation, learningRate float64) (*Network, error) {
	return newNetwork(layerSizes, act, learningRate, matrix.Random)
}

// NewWithRand is like New but draws initial parameters from rng.
func NewWithRand(rng *rand.Rand, layerSizes []int, act Activation, learningRate float64) (*Network, error) {
	return newNetwork(layerSizes, act, learningRate, func(rows, cols int) *matrix.Matrix {
		return matrix.RandomFrom(rng, rows, cols)
	})
}

func newNetwork(layerSizes []int, act Activation, learningRate float64, random func(rows, cols int) *matrix.Matrix) (*Network, error) {
	if len(layerSizes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidLayers, len(layerSizes))
	}
	for i, n := range layerSizes {
		if n <= 0 {
			return nil, fmt.Errorf("%w: layer %d has size %d", ErrInvalidLayers, i, n)
		}
	}
	if !act.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownActivation, act.Kind)
	}

	n := &Network{
		layerSizes:   append([]int(nil), layerSizes...),
		weights:      make([]*matrix.Matrix, 0, len(layerSizes)-1),
		biases:       make([]*matrix.Matrix, 0, len(layerSizes)-1),
		activation:   act,
		learningRate: learningRate,
	}
	for i := 0; i+1 < len(layerSizes); i++ {
		n.weights = append(n.weights, random(layerSizes[i+1], layerSizes[i]))
		n.biases = append(n.biases, random(layerSizes[i+1], 1))
	}
	return n, nil
}

// LayerSizes returns a copy of the layer-size sequence.
func (n *Network) LayerSizes() []int {
	return append([]int(nil), n.layerSizes...)
}

// Activation returns the activation descriptor.
func (n *Network) Activation() Activation {
	return n.activation
}

// LearningRate returns the fixed learning rate.
func (n *Network) LearningRate() float64 {
	return n.learningRate
}

// Weights returns the weight matrices, one per layer transition.
func (n *Network) Weights() []*matrix.Matrix {
	return append([]*matrix.Matrix(nil), n.weights...)
}

// Biases returns the bias column matrices, one per layer transition.
func (n *Network) Biases() []*matrix.Matrix {
	return append([]*matrix.Matrix(nil), n.biases...)
}

// Clone returns an independent copy of the network.
// Matrices are immutable, so only the slices are copied.
func (n *Network) Clone() *Network {
	return &Network{
		layerSizes:   n.LayerSizes(),
		weights:      n.Weights(),
		biases:       n.Biases(),
		activation:   n.activation,
		learningRate: n.learningRate,
	}
}

// FeedForward runs the forward pass for one input column.
//
// input must have shape (layerSizes[0], 1). For each layer the pre-activation
// W[i]·a[i] + b[i] is passed through the activation. Returns the output layer
// and the full Activations record needed by BackPropagate.
//
// The network is not modified, so repeated calls with the same input return
// identical results.
func (n *Network) FeedForward(input *matrix.Matrix) (*matrix.Matrix, Activations, error) {
	if input.Rows() != n.layerSizes[0] || input.Cols() != 1 {
		return nil, nil, fmt.Errorf("FeedForward: input (%d,%d), want (%d,1): %w",
			input.Rows(), input.Cols(), n.layerSizes[0], ErrDimensionMismatch)
	}

	acts := make(Activations, 0, len(n.layerSizes))
	acts = append(acts, input)

	current := input
	for i := range n.weights {
		weighted, err := n.weights[i].DotMultiply(current)
		if err != nil {
			return nil, nil, fmt.Errorf("FeedForward: layer %d: %w", i, err)
		}
		pre, err := weighted.Add(n.biases[i])
		if err != nil {
			return nil, nil, fmt.Errorf("FeedForward: layer %d: %w", i, err)
		}
		current = pre.Map(n.activation.Activate)
		acts = append(acts, current)
	}
	return current, acts, nil
}

// Predict runs FeedForward on a plain input vector and returns the output values.
func (n *Network) Predict(input []float64) ([]float64, error) {
	out, _, err := n.FeedForward(matrix.FromVector(input))
	if err != nil {
		return nil, err
	}
	return out.Data(), nil
}

// BackPropagate applies one online gradient step.
//
// output and acts must come from the same FeedForward call; target must
// have the same shape as output. Layers are processed from the last to the
// first:
//
//	gradients = (σ'(a[i+1]) ⊙ errors) · lr
//	W[i] += gradients · a[i]ᵀ
//	b[i] += gradients
//	errors = W[i]ᵀ · errors
//
// with errors = target - output initially. The backward error uses W[i]
// after its update in the same step.
//
// Either every layer is updated or, on error, none is.
func (n *Network) BackPropagate(output, target *matrix.Matrix, acts Activations) error {
	if len(acts) != len(n.layerSizes) {
		return fmt.Errorf("BackPropagate: got %d activations, want %d: %w",
			len(acts), len(n.layerSizes), ErrDimensionMismatch)
	}
	if !output.SameShape(target) {
		return fmt.Errorf("BackPropagate: output (%d,%d) vs target (%d,%d): %w",
			output.Rows(), output.Cols(), target.Rows(), target.Cols(), ErrDimensionMismatch)
	}

	weights := n.Weights()
	biases := n.Biases()

	errs, err := target.Subtract(output)
	if err != nil {
		return fmt.Errorf("BackPropagate: %w", err)
	}
	gradients := output.Map(n.activation.Derivative)

	for i := len(weights) - 1; i >= 0; i-- {
		gradients, err = gradients.ElementwiseMultiply(errs)
		if err != nil {
			return fmt.Errorf("BackPropagate: layer %d: %w", i, err)
		}
		gradients = gradients.Scale(n.learningRate)

		delta, err := gradients.DotMultiply(acts[i].Transpose())
		if err != nil {
			return fmt.Errorf("BackPropagate: layer %d: %w", i, err)
		}
		if weights[i], err = weights[i].Add(delta); err != nil {
			return fmt.Errorf("BackPropagate: layer %d: %w", i, err)
		}
		if biases[i], err = biases[i].Add(gradients); err != nil {
			return fmt.Errorf("BackPropagate: layer %d: %w", i, err)
		}

		if errs, err = weights[i].Transpose().DotMultiply(errs); err != nil {
			return fmt.Errorf("BackPropagate: layer %d: %w", i, err)
		}
		gradients = acts[i].Map(n.activation.Derivative)
	}

	n.weights = weights
	n.biases = biases
	return nil
}

// Train runs online gradient descent for the given number of epochs.
//
// Each epoch visits the examples in order, one FeedForward followed by one
// BackPropagate per example. There is no shuffling and no convergence check.
func (n *Network) Train(inputs, targets [][]float64, epochs int) error {
	if len(inputs) != len(targets) {
		return fmt.Errorf("%w: %d inputs, %d targets", ErrSampleMismatch, len(inputs), len(targets))
	}

	xs := make([]*matrix.Matrix, len(inputs))
	ys := make([]*matrix.Matrix, len(targets))
	for j := range inputs {
		xs[j] = matrix.FromVector(inputs[j])
		ys[j] = matrix.FromVector(targets[j])
	}

	for epoch := 1; epoch <= epochs; epoch++ {
		for j := range xs {
			out, acts, err := n.FeedForward(xs[j])
			if err != nil {
				return fmt.Errorf("Train: epoch %d, example %d: %w", epoch, j, err)
			}
			if err := n.BackPropagate(out, ys[j], acts); err != nil {
				return fmt.Errorf("Train: epoch %d, example %d: %w", epoch, j, err)
			}
		}
	}
	return nil
}
