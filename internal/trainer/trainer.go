// Package trainer drives networks through training runs with validation-based
// early stopping.
//
// The nn package only knows how to run a fixed number of epochs. This package
// adds what a training driver needs around it: a validation loss, keeping the
// best weights seen so far, stopping when the loss stops improving and
// training several independent networks at once.
package trainer

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/parallel"
)

// Common errors.
var (
	ErrDiverged     = errors.New("trainer: loss is NaN")
	ErrEmptyDataset = errors.New("trainer: empty dataset")
)

// Dataset is a set of examples: Inputs[j] maps to Targets[j].
type Dataset struct {
	Inputs  [][]float64
	Targets [][]float64
}

// Len returns the number of examples.
func (d Dataset) Len() int {
	return len(d.Inputs)
}

// Config holds early-stopping configuration.
type Config struct {
	MaxEpochs  int     // Upper bound on training epochs (default: 100000)
	CheckEvery int     // Epochs between validation checks (default: 1000)
	Patience   int     // Checks without improvement before stopping (default: 10)
	MinDelta   float64 // Minimum loss decrease counted as improvement (default: 1e-6)
}

// DefaultConfig returns the defaults used by the gate drivers.
func DefaultConfig() Config {
	return Config{
		MaxEpochs:  100_000,
		CheckEvery: 1_000,
		Patience:   10,
		MinDelta:   1e-6,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxEpochs == 0 {
		c.MaxEpochs = d.MaxEpochs
	}
	if c.CheckEvery == 0 {
		c.CheckEvery = d.CheckEvery
	}
	if c.Patience == 0 {
		c.Patience = d.Patience
	}
	if c.MinDelta == 0 {
		c.MinDelta = d.MinDelta
	}
	return c
}

// Result summarizes a Fit run.
type Result struct {
	Epochs    int     // Epochs actually trained
	BestEpoch int     // Epoch count at which BestLoss was observed (0 = before training)
	BestLoss  float64 // Lowest validation MSE observed
	Stopped   bool    // True if early stopping ended the run before MaxEpochs
}

// MSE returns the mean squared error of net over d, averaged over every
// output value of every example.
//
// A NaN loss is reported as ErrDiverged.
func MSE(net *nn.Network, d Dataset) (float64, error) {
	if d.Len() == 0 {
		return 0, ErrEmptyDataset
	}
	if len(d.Targets) != d.Len() {
		return 0, fmt.Errorf("%w: %d inputs, %d targets", nn.ErrSampleMismatch, d.Len(), len(d.Targets))
	}

	var sum float64
	var count int
	for j, in := range d.Inputs {
		out, err := net.Predict(in)
		if err != nil {
			return 0, fmt.Errorf("MSE: example %d: %w", j, err)
		}
		if len(out) != len(d.Targets[j]) {
			return 0, fmt.Errorf("MSE: example %d: output %d values, target %d: %w",
				j, len(out), len(d.Targets[j]), nn.ErrDimensionMismatch)
		}
		diff := make([]float64, len(out))
		floats.SubTo(diff, d.Targets[j], out)
		sum += floats.Dot(diff, diff)
		count += len(diff)
	}

	loss := sum / float64(count)
	if math.IsNaN(loss) {
		return 0, ErrDiverged
	}
	return loss, nil
}

// Fit trains net on train in slices of cfg.CheckEvery epochs, measuring the
// MSE on validation after each slice. Training stops after cfg.Patience
// checks without an improvement of at least cfg.MinDelta, or after
// cfg.MaxEpochs. The best weights seen are restored into net before
// returning, also when the loss diverges.
//
// An empty validation set means the training set is used for validation.
func Fit(net *nn.Network, train, validation Dataset, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()
	if train.Len() == 0 {
		return Result{}, ErrEmptyDataset
	}
	if validation.Len() == 0 {
		validation = train
	}

	best, err := MSE(net, validation)
	if err != nil {
		return Result{}, fmt.Errorf("Fit: initial loss: %w", err)
	}
	bestState, err := net.Save()
	if err != nil {
		return Result{}, fmt.Errorf("Fit: %w", err)
	}

	res := Result{BestLoss: best}
	stale := 0
	for res.Epochs < cfg.MaxEpochs {
		step := min(cfg.CheckEvery, cfg.MaxEpochs-res.Epochs)
		if err := net.Train(train.Inputs, train.Targets, step); err != nil {
			return res, fmt.Errorf("Fit: %w", err)
		}
		res.Epochs += step

		loss, err := MSE(net, validation)
		if err != nil {
			if restoreErr := net.Load(bestState); restoreErr != nil {
				return res, errors.Join(err, restoreErr)
			}
			return res, fmt.Errorf("Fit: epoch %d: %w", res.Epochs, err)
		}

		if loss < res.BestLoss-cfg.MinDelta {
			res.BestLoss = loss
			res.BestEpoch = res.Epochs
			if bestState, err = net.Save(); err != nil {
				return res, fmt.Errorf("Fit: %w", err)
			}
			stale = 0
			continue
		}

		stale++
		if stale >= cfg.Patience {
			res.Stopped = res.Epochs < cfg.MaxEpochs
			break
		}
	}

	if err := net.Load(bestState); err != nil {
		return res, fmt.Errorf("Fit: restore best: %w", err)
	}
	return res, nil
}

// Job is one independent training run for FitMany.
type Job struct {
	Name       string
	Net        *nn.Network
	Train      Dataset
	Validation Dataset
}

// Outcome is the result of one Job.
type Outcome struct {
	Name   string
	Result Result
	Err    error
}

// FitMany runs Fit for every job, concurrently when pcfg allows it.
// Each job must own its network; outcomes are returned in job order.
func FitMany(jobs []Job, cfg Config, pcfg parallel.Config) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	parallel.For(len(jobs), func(i int) {
		job := jobs[i]
		res, err := Fit(job.Net, job.Train, job.Validation, cfg)
		outcomes[i] = Outcome{Name: job.Name, Result: res, Err: err}
	}, pcfg)
	return outcomes
}
