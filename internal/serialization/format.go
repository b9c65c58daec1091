package serialization

import (
	"github.com/born-ml/perceptron/internal/matrix"
)

// Format constants.
const (
	MagicBytes    = "BMLP"
	FormatVersion = 1  // v1: layer sizes, dense matrices, SHA-256 trailer
	ChecksumSize  = 32 // SHA-256 checksum size (32 bytes)

	// fixedPrefixSize covers magic, version, activation tag, learning rate and layer count.
	fixedPrefixSize = 4 + 4 + 1 + 8 + 4
)

// Snapshot is the persisted state of a network.
//
// Weights[i] has shape (LayerSizes[i+1], LayerSizes[i]) and Biases[i] has
// shape (LayerSizes[i+1], 1). Activation is the wire tag of the activation
// descriptor; its meaning belongs to the nn package.
type Snapshot struct {
	LayerSizes   []int
	Activation   uint8
	LearningRate float64
	Weights      []*matrix.Matrix
	Biases       []*matrix.Matrix
}

// EncodedSize returns the number of bytes Marshal produces for s.
func (s *Snapshot) EncodedSize() int {
	n := fixedPrefixSize + 4*len(s.LayerSizes)
	for i := 0; i+1 < len(s.LayerSizes); i++ {
		out, in := s.LayerSizes[i+1], s.LayerSizes[i]
		n += 8 + 8*out*in // weight header + data
		n += 8 + 8*out    // bias header + data
	}
	return n + ChecksumSize
}
