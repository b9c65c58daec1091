package nn

import (
	"math/rand"
	"testing"

	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gateInputs = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

func newTestNetwork(t *testing.T, seed int64, sizes []int, lr float64) *Network {
	t.Helper()
	net, err := NewWithRand(rand.New(rand.NewSource(seed)), sizes, SigmoidActivation, lr)
	require.NoError(t, err)
	return net
}

// scalar builds a 1×1 matrix.
func scalar(v float64) *matrix.Matrix {
	return matrix.FromVector([]float64{v})
}

func TestNew(t *testing.T) {
	net, err := New([]int{2, 3, 1}, SigmoidActivation, 0.5)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 1}, net.LayerSizes())
	assert.Equal(t, 0.5, net.LearningRate())
	assert.Equal(t, SigmoidActivation, net.Activation())

	weights, biases := net.Weights(), net.Biases()
	require.Len(t, weights, 2)
	require.Len(t, biases, 2)

	shapes := [][2]int{{3, 2}, {1, 3}}
	for i, s := range shapes {
		assert.Equal(t, s[0], weights[i].Rows())
		assert.Equal(t, s[1], weights[i].Cols())
		assert.Equal(t, s[0], biases[i].Rows())
		assert.Equal(t, 1, biases[i].Cols())

		for _, v := range append(weights[i].Data(), biases[i].Data()...) {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		act   Activation
		want  error
	}{
		{"no layers", nil, SigmoidActivation, ErrInvalidLayers},
		{"single layer", []int{3}, SigmoidActivation, ErrInvalidLayers},
		{"zero size", []int{2, 0, 1}, SigmoidActivation, ErrInvalidLayers},
		{"negative size", []int{2, -1}, SigmoidActivation, ErrInvalidLayers},
		{"unknown activation", []int{2, 1}, Activation{}, ErrUnknownActivation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := New(tt.sizes, tt.act, 0.1)
			assert.Nil(t, net)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew_CopiesLayerSizes(t *testing.T) {
	sizes := []int{2, 2}
	net := newTestNetwork(t, 1, sizes, 0.1)
	sizes[0] = 7
	assert.Equal(t, []int{2, 2}, net.LayerSizes())
}

func TestNewWithRand_Deterministic(t *testing.T) {
	a := newTestNetwork(t, 42, []int{2, 3, 1}, 0.5)
	b := newTestNetwork(t, 42, []int{2, 3, 1}, 0.5)

	for i := range a.weights {
		assert.True(t, a.weights[i].Equal(b.weights[i]))
		assert.True(t, a.biases[i].Equal(b.biases[i]))
	}
}

func TestFeedForward(t *testing.T) {
	net := newTestNetwork(t, 1, []int{2, 3, 1}, 0.5)
	input := matrix.FromVector([]float64{1, 0})

	out, acts, err := net.FeedForward(input)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Rows())
	assert.Equal(t, 1, out.Cols())

	require.Len(t, acts, 3)
	assert.True(t, acts[0].Equal(input))
	assert.Equal(t, 3, acts[1].Rows())
	assert.True(t, acts[2].Equal(out))

	// Recompute layer by layer.
	current := input
	for i := range net.weights {
		wx, err := net.weights[i].DotMultiply(current)
		require.NoError(t, err)
		pre, err := wx.Add(net.biases[i])
		require.NoError(t, err)
		current = pre.Map(net.activation.Activate)
		assert.True(t, current.Equal(acts[i+1]), "layer %d", i)
	}
}

func TestFeedForward_Deterministic(t *testing.T) {
	net := newTestNetwork(t, 2, []int{2, 4, 3}, 0.5)
	input := matrix.FromVector([]float64{0.3, -1.2})

	first, _, err := net.FeedForward(input)
	require.NoError(t, err)
	second, _, err := net.FeedForward(input)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestFeedForward_DimensionMismatch(t *testing.T) {
	net := newTestNetwork(t, 3, []int{2, 3, 1}, 0.5)

	for _, in := range []*matrix.Matrix{matrix.Zeros(3, 1), matrix.Zeros(1, 1), matrix.Zeros(2, 2)} {
		out, acts, err := net.FeedForward(in)
		assert.Nil(t, out)
		assert.Nil(t, acts)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	}

	_, err := net.Predict([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

// TestBackPropagate_SingleStep checks one update of a 1-1-1 network against
// a hand-unrolled computation, including the backward error taken through
// the already-updated output weight.
func TestBackPropagate_SingleStep(t *testing.T) {
	const (
		a, b = 0.4, 0.1 // hidden weight, bias
		c, d = 0.7, 0.2 // output weight, bias
		x    = 1.0
		tgt  = 1.0
		lr   = 0.5
	)
	net := &Network{
		layerSizes:   []int{1, 1, 1},
		weights:      []*matrix.Matrix{scalar(a), scalar(c)},
		biases:       []*matrix.Matrix{scalar(b), scalar(d)},
		activation:   SigmoidActivation,
		learningRate: lr,
	}
	sig := SigmoidActivation.Activate

	h := sig(a*x + b)
	o := sig(c*h + d)

	out, acts, err := net.FeedForward(scalar(x))
	require.NoError(t, err)
	assert.InDelta(t, o, out.Data()[0], 1e-15)

	require.NoError(t, net.BackPropagate(out, scalar(tgt), acts))

	g1 := o * (1 - o) * (tgt - o) * lr
	c2 := c + g1*h
	d2 := d + g1
	e0 := c2 * (tgt - o)
	g0 := h * (1 - h) * e0 * lr
	a2 := a + g0*x
	b2 := b + g0

	assert.InDelta(t, c2, net.weights[1].Data()[0], 1e-15)
	assert.InDelta(t, d2, net.biases[1].Data()[0], 1e-15)
	assert.InDelta(t, a2, net.weights[0].Data()[0], 1e-15)
	assert.InDelta(t, b2, net.biases[0].Data()[0], 1e-15)

	// Using the pre-update weight would give a measurably different hidden update.
	aPre := a + h*(1-h)*(c*(tgt-o))*lr*x
	assert.NotEqual(t, aPre, net.weights[0].Data()[0])
}

func TestBackPropagate_DoesNotMutateInputs(t *testing.T) {
	net := newTestNetwork(t, 4, []int{2, 3, 2}, 0.5)
	input := matrix.FromVector([]float64{1, 1})
	target := matrix.FromVector([]float64{0, 1})

	out, acts, err := net.FeedForward(input)
	require.NoError(t, err)

	outBefore := out.Data()
	oldWeights := net.Weights()
	oldData := oldWeights[0].Data()

	require.NoError(t, net.BackPropagate(out, target, acts))

	assert.Equal(t, outBefore, out.Data())
	assert.Equal(t, oldData, oldWeights[0].Data())
	assert.False(t, oldWeights[0].Equal(net.weights[0]))
}

func TestBackPropagate_ErrorLeavesNetworkUnchanged(t *testing.T) {
	net := newTestNetwork(t, 5, []int{2, 3, 1}, 0.5)
	out, acts, err := net.FeedForward(matrix.FromVector([]float64{0, 1}))
	require.NoError(t, err)

	weights, biases := net.Weights(), net.Biases()

	tests := []struct {
		name   string
		target *matrix.Matrix
		acts   Activations
	}{
		{"target shape", matrix.Zeros(2, 1), acts},
		{"missing activations", scalar(1), acts[:2]},
		// A wrongly shaped input activation fails at layer 0, after layer 1 was computed.
		{"bad input activation", scalar(1), Activations{matrix.Zeros(5, 1), acts[1], acts[2]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := net.BackPropagate(out, tt.target, tt.acts)
			assert.ErrorIs(t, err, ErrDimensionMismatch)
			for i := range weights {
				assert.Same(t, weights[i], net.weights[i])
				assert.Same(t, biases[i], net.biases[i])
			}
		})
	}
}

func TestTrain_SampleMismatch(t *testing.T) {
	net := newTestNetwork(t, 6, []int{2, 1}, 0.5)
	err := net.Train(gateInputs, [][]float64{{0}}, 1)
	assert.ErrorIs(t, err, ErrSampleMismatch)

	err = net.Train([][]float64{{1}}, [][]float64{{0}}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestTrain_ZeroEpochs(t *testing.T) {
	net := newTestNetwork(t, 7, []int{2, 2, 1}, 0.5)
	before := net.Clone()

	require.NoError(t, net.Train(gateInputs, [][]float64{{0}, {0}, {0}, {1}}, 0))
	for i := range before.weights {
		assert.True(t, before.weights[i].Equal(net.weights[i]))
	}
}

func TestClone_Independent(t *testing.T) {
	net := newTestNetwork(t, 8, []int{2, 2, 1}, 0.5)
	clone := net.Clone()

	require.NoError(t, net.Train(gateInputs, [][]float64{{0}, {1}, {1}, {1}}, 10))

	assert.Equal(t, net.LayerSizes(), clone.LayerSizes())
	assert.False(t, net.weights[0].Equal(clone.weights[0]))
}

func TestTrain_ANDConverges(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 100k-epoch convergence run in short mode")
	}
	net := newTestNetwork(t, 1, []int{2, 3, 1}, 0.5)
	targets := [][]float64{{0}, {0}, {0}, {1}}

	require.NoError(t, net.Train(gateInputs, targets, 100_000))

	for i, in := range gateInputs {
		out, err := net.Predict(in)
		require.NoError(t, err)
		assert.InDelta(t, targets[i][0], out[0], 0.1, "input %v", in)
	}
}

func TestTrain_NOTConverges(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 100k-epoch convergence run in short mode")
	}
	net := newTestNetwork(t, 1, []int{1, 2, 1}, 0.5)

	require.NoError(t, net.Train([][]float64{{0}, {1}}, [][]float64{{1}, {0}}, 100_000))

	high, err := net.Predict([]float64{0})
	require.NoError(t, err)
	low, err := net.Predict([]float64{1})
	require.NoError(t, err)
	assert.Greater(t, high[0], 0.5)
	assert.Less(t, low[0], 0.5)
}
