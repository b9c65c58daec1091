package nn

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownActivation is returned for an activation kind outside the closed set.
var ErrUnknownActivation = errors.New("nn: unknown activation")

// ActivationKind identifies an activation family. The set is closed;
// the numeric value is the tag written by Save.
type ActivationKind uint8

// Supported activation kinds. Zero is reserved as invalid.
const (
	Sigmoid ActivationKind = 1
)

// String returns the activation name.
func (k ActivationKind) String() string {
	switch k {
	case Sigmoid:
		return "sigmoid"
	default:
		return fmt.Sprintf("ActivationKind(%d)", uint8(k))
	}
}

// Activation is an activation descriptor shared by every layer of a network.
//
// Sigmoid applies the element-wise function: σ(x) = 1 / (1 + exp(-x)).
//
// Derivative is expressed in terms of the activated output y = σ(x),
// i.e. σ'(x) = y·(1-y). BackPropagate feeds cached activations, never
// pre-activation values, into Derivative.
type Activation struct {
	Kind ActivationKind
}

// SigmoidActivation is the logistic sigmoid descriptor.
var SigmoidActivation = Activation{Kind: Sigmoid}

// Valid reports whether a is a known activation.
func (a Activation) Valid() bool {
	return a.Kind == Sigmoid
}

// String returns the activation name.
func (a Activation) String() string {
	return a.Kind.String()
}

// Activate applies the activation to a pre-activation value x.
func (a Activation) Activate(x float64) float64 {
	switch a.Kind {
	case Sigmoid:
		return 1.0 / (1.0 + math.Exp(-x))
	default:
		panic(fmt.Sprintf("Activate: %v", a.Kind))
	}
}

// Derivative returns the slope of the activation at the point whose
// activated output is y.
func (a Activation) Derivative(y float64) float64 {
	switch a.Kind {
	case Sigmoid:
		return y * (1.0 - y)
	default:
		panic(fmt.Sprintf("Derivative: %v", a.Kind))
	}
}

// activationFromTag converts a wire tag into a validated descriptor.
func activationFromTag(tag uint8) (Activation, error) {
	a := Activation{Kind: ActivationKind(tag)}
	if !a.Valid() {
		return Activation{}, fmt.Errorf("%w: tag %d", ErrUnknownActivation, tag)
	}
	return a, nil
}
