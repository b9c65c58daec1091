package nn

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSameOutputs(t *testing.T, want, got *Network, inputs [][]float64) {
	t.Helper()
	for _, in := range inputs {
		a, err := want.Predict(in)
		require.NoError(t, err)
		b, err := got.Predict(in)
		require.NoError(t, err)
		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]), "input %v output %d", in, i)
		}
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	net := newTestNetwork(t, 11, []int{2, 3, 7}, 0.5)
	require.NoError(t, net.Train(gateInputs, [][]float64{
		{0, 0, 0, 0, 1, 1, 1},
		{0, 1, 1, 0, 1, 0, 0},
		{0, 1, 1, 0, 1, 0, 0},
		{1, 1, 0, 0, 0, 0, 1},
	}, 200))

	data, err := net.Save()
	require.NoError(t, err)

	loaded := newTestNetwork(t, 99, []int{4, 1}, 0.1)
	require.NoError(t, loaded.Load(data))

	assert.Equal(t, net.LayerSizes(), loaded.LayerSizes())
	assert.Equal(t, net.LearningRate(), loaded.LearningRate())
	assert.Equal(t, net.Activation(), loaded.Activation())
	for i := range net.weights {
		assert.True(t, net.weights[i].Equal(loaded.weights[i]))
		assert.True(t, net.biases[i].Equal(loaded.biases[i]))
	}
	requireSameOutputs(t, net, loaded, append(gateInputs, []float64{0.25, -3.5}))

	decoded, err := Decode(data)
	require.NoError(t, err)
	requireSameOutputs(t, net, decoded, gateInputs)
}

func TestSaveLoad_ContinuesTrainingIdentically(t *testing.T) {
	net := newTestNetwork(t, 12, []int{2, 2, 1}, 0.5)
	data, err := net.Save()
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)

	targets := [][]float64{{0}, {1}, {1}, {0}}
	require.NoError(t, net.Train(gateInputs, targets, 50))
	require.NoError(t, restored.Train(gateInputs, targets, 50))
	requireSameOutputs(t, net, restored, gateInputs)
}

func TestLoad_FailureLeavesNetworkUnchanged(t *testing.T) {
	net := newTestNetwork(t, 13, []int{2, 3, 1}, 0.5)
	before := net.Clone()

	valid, err := net.Save()
	require.NoError(t, err)

	corrupted := append([]byte(nil), valid...)
	corrupted[len(corrupted)/2] ^= 0x01

	badTag, err := serialization.Marshal(&serialization.Snapshot{
		LayerSizes:   []int{1, 1},
		Activation:   200,
		LearningRate: 0.1,
		Weights:      []*matrix.Matrix{scalar(1)},
		Biases:       []*matrix.Matrix{scalar(0)},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, serialization.ErrTruncated},
		{"garbage", []byte("not a network snapshot at all, really not"), serialization.ErrInvalidMagic},
		{"corrupted", corrupted, serialization.ErrChecksumMismatch},
		{"truncated", valid[:len(valid)/3], serialization.ErrChecksumMismatch},
		{"unknown activation", badTag, ErrUnknownActivation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := net.Load(tt.data)
			assert.ErrorIs(t, err, tt.want)

			assert.Equal(t, before.LayerSizes(), net.LayerSizes())
			for i := range before.weights {
				assert.Same(t, before.weights[i], net.weights[i])
				assert.Same(t, before.biases[i], net.biases[i])
			}
		})
	}
}

func TestSaveFileLoadFile(t *testing.T) {
	net := newTestNetwork(t, 14, []int{1, 2, 1}, 0.25)
	path := filepath.Join(t.TempDir(), "not.bmlp")

	require.NoError(t, net.SaveFile(path))

	loaded := newTestNetwork(t, 15, []int{1, 2, 1}, 0.25)
	require.NoError(t, loaded.LoadFile(path))
	requireSameOutputs(t, net, loaded, [][]float64{{0}, {1}})

	fresh, err := ReadFile(path)
	require.NoError(t, err)
	requireSameOutputs(t, net, fresh, [][]float64{{0}, {1}})

	err = loaded.LoadFile(filepath.Join(t.TempDir(), "missing.bmlp"))
	assert.Error(t, err)
}
