// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the fully-connected feedforward network engine.
//
// # Overview
//
// This package contains:
//   - Network: layer sizes, weights and biases, fixed learning rate
//   - Activation: the sigmoid descriptor, derivative taken on activated values
//   - Online training: FeedForward, BackPropagate, Train
//   - Persistence: Save/Load to bytes, SaveFile/LoadFile, Decode, ReadFile
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/perceptron/matrix"
//	    "github.com/born-ml/perceptron/nn"
//	)
//
//	func main() {
//	    net, err := nn.New([]int{2, 3, 1}, nn.SigmoidActivation, 0.5)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
//	    targets := [][]float64{{0}, {0}, {0}, {1}}
//	    if err := net.Train(inputs, targets, 100_000); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out, _, err := net.FeedForward(matrix.FromVector([]float64{1, 1}))
//	}
//
// # Training Step
//
// FeedForward returns the output and the per-layer Activations. Passing both
// to BackPropagate performs one online gradient step:
//
//	out, acts, err := net.FeedForward(x)
//	err = net.BackPropagate(out, y, acts)
//
// # Persistence
//
//	data, err := net.Save()
//	err = other.Load(data) // other is unchanged if data is malformed
package nn
