package nn

import (
	"fmt"

	"github.com/born-ml/perceptron/internal/serialization"
)

// snapshot captures the persistent state of n. Activations are not part of it.
func (n *Network) snapshot() *serialization.Snapshot {
	return &serialization.Snapshot{
		LayerSizes:   n.LayerSizes(),
		Activation:   uint8(n.activation.Kind),
		LearningRate: n.learningRate,
		Weights:      n.Weights(),
		Biases:       n.Biases(),
	}
}

// fromSnapshot builds a network from a decoded snapshot.
func fromSnapshot(s *serialization.Snapshot) (*Network, error) {
	act, err := activationFromTag(s.Activation)
	if err != nil {
		return nil, err
	}
	return &Network{
		layerSizes:   append([]int(nil), s.LayerSizes...),
		weights:      s.Weights,
		biases:       s.Biases,
		activation:   act,
		learningRate: s.LearningRate,
	}, nil
}

// Save encodes the network in the binary snapshot format.
//
// The encoding holds the layer sizes, every weight and bias matrix, the
// activation tag and the learning rate. Floats are stored bit-for-bit.
func (n *Network) Save() ([]byte, error) {
	data, err := serialization.Marshal(n.snapshot())
	if err != nil {
		return nil, fmt.Errorf("Save: %w", err)
	}
	return data, nil
}

// Load replaces the network with the state encoded in data.
//
// Load is all-or-nothing: the snapshot is fully decoded and validated
// before the receiver is touched, so on error n is unchanged.
func (n *Network) Load(data []byte) error {
	s, err := serialization.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("Load: %w", err)
	}
	return n.replace(s)
}

// SaveFile writes the network snapshot to path.
func (n *Network) SaveFile(path string) error {
	if err := serialization.WriteFile(path, n.snapshot()); err != nil {
		return fmt.Errorf("SaveFile: %w", err)
	}
	return nil
}

// LoadFile replaces the network with the snapshot stored at path.
// Like Load, it leaves n unchanged on error.
func (n *Network) LoadFile(path string) error {
	s, err := serialization.ReadFile(path)
	if err != nil {
		return fmt.Errorf("LoadFile: %w", err)
	}
	return n.replace(s)
}

func (n *Network) replace(s *serialization.Snapshot) error {
	loaded, err := fromSnapshot(s)
	if err != nil {
		return fmt.Errorf("Load: %w", err)
	}
	*n = *loaded
	return nil
}

// Decode builds a new network from data produced by Save.
func Decode(data []byte) (*Network, error) {
	s, err := serialization.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	return fromSnapshot(s)
}

// ReadFile builds a new network from a snapshot file written by SaveFile.
func ReadFile(path string) (*Network, error) {
	s, err := serialization.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %w", err)
	}
	return fromSnapshot(s)
}
