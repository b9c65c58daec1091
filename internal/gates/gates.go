// Package gates provides logic-gate truth tables used to train and check
// small networks.
package gates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGate is returned by Lookup for a name outside the supported set.
var ErrUnknownGate = errors.New("gates: unknown gate")

// Table is a truth table: Inputs[j] maps to Targets[j].
type Table struct {
	Name    string
	Inputs  [][]float64
	Targets [][]float64
}

// Arity returns the number of inputs per example.
func (t Table) Arity() int {
	if len(t.Inputs) == 0 {
		return 0
	}
	return len(t.Inputs[0])
}

var binaryInputs = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// binary builds a two-input table from the outputs for 00, 01, 10, 11.
func binary(name string, out [4]float64) Table {
	t := Table{Name: name, Inputs: clone(binaryInputs)}
	for _, v := range out {
		t.Targets = append(t.Targets, []float64{v})
	}
	return t
}

// Names lists the supported gates in canonical order. The index of a gate
// is its output neuron in the Combined dataset.
var Names = []string{"AND", "OR", "XOR", "NOT", "NAND", "NOR", "XNOR"}

// Lookup returns the truth table for name, ignoring case.
func Lookup(name string) (Table, error) {
	switch strings.ToUpper(name) {
	case "AND":
		return binary("AND", [4]float64{0, 0, 0, 1}), nil
	case "OR":
		return binary("OR", [4]float64{0, 1, 1, 1}), nil
	case "XOR":
		return binary("XOR", [4]float64{0, 1, 1, 0}), nil
	case "NAND":
		return binary("NAND", [4]float64{1, 1, 1, 0}), nil
	case "NOR":
		return binary("NOR", [4]float64{1, 0, 0, 0}), nil
	case "XNOR":
		return binary("XNOR", [4]float64{1, 0, 0, 1}), nil
	case "NOT":
		return Table{
			Name:    "NOT",
			Inputs:  [][]float64{{0}, {1}},
			Targets: [][]float64{{1}, {0}},
		}, nil
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownGate, name)
	}
}

// All returns every truth table in canonical order.
func All() []Table {
	tables := make([]Table, 0, len(Names))
	for _, name := range Names {
		t, _ := Lookup(name)
		tables = append(tables, t)
	}
	return tables
}

// Index returns the output neuron of name in the Combined dataset.
func Index(name string) (int, error) {
	for i, n := range Names {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}

// Combined returns, for each gate, a two-input table whose targets are
// len(Names) wide with only that gate's neuron set. All gates train one
// shared network this way, one gate after the other.
//
// NOT only has the rows 00 and 01, reading the second input as its operand.
func Combined() []Table {
	tables := make([]Table, 0, len(Names))
	for i, name := range Names {
		src, _ := Lookup(name)
		t := Table{Name: name}
		if name == "NOT" {
			t.Inputs = clone(binaryInputs[:2])
		} else {
			t.Inputs = clone(binaryInputs)
		}
		for j := range t.Inputs {
			row := make([]float64, len(Names))
			row[i] = src.Targets[j][0]
			t.Targets = append(t.Targets, row)
		}
		tables = append(tables, t)
	}
	return tables
}

func clone(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}
