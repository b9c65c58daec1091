// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/perceptron/internal/nn"
)

// Network is a fully-connected feedforward network.
type Network = nn.Network

// Activations is the per-layer record produced by FeedForward.
type Activations = nn.Activations

// Activation is an activation descriptor.
type Activation = nn.Activation

// ActivationKind identifies an activation family.
type ActivationKind = nn.ActivationKind

// Activation kinds.
const (
	Sigmoid ActivationKind = nn.Sigmoid
)

// SigmoidActivation is the logistic sigmoid descriptor.
var SigmoidActivation = nn.SigmoidActivation

// Errors.
var (
	ErrDimensionMismatch = nn.ErrDimensionMismatch
	ErrInvalidLayers     = nn.ErrInvalidLayers
	ErrSampleMismatch    = nn.ErrSampleMismatch
	ErrUnknownActivation = nn.ErrUnknownActivation
)

// New creates a network with weights and biases drawn uniformly from [0, 1).
//
// Example:
//
//	net, err := nn.New([]int{2, 3, 1}, nn.SigmoidActivation, 0.5)
func New(layerSizes []int, act Activation, learningRate float64) (*Network, error) {
	return nn.New(layerSizes, act, learningRate)
}

// NewWithRand is like New but draws initial parameters from rng.
func NewWithRand(rng *rand.Rand, layerSizes []int, act Activation, learningRate float64) (*Network, error) {
	return nn.NewWithRand(rng, layerSizes, act, learningRate)
}

// Decode builds a network from data produced by Network.Save.
func Decode(data []byte) (*Network, error) {
	return nn.Decode(data)
}

// ReadFile builds a network from a file written by Network.SaveFile.
func ReadFile(path string) (*Network, error) {
	return nn.ReadFile(path)
}
