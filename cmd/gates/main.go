// Package main provides the gates CLI: it trains small networks to
// approximate logic gates and prints their outputs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/born-ml/perceptron/internal/gates"
	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/parallel"
	"github.com/born-ml/perceptron/internal/trainer"
)

const version = "v0.1.0"

// options holds the parsed command line.
type options struct {
	epochs    int
	lr        float64
	hidden    int
	seed      int64
	combined  bool
	earlyStop bool
	patience  int
	save      string
	load      string
	gates     []string
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("gates: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) > 0 && args[0] == "version" {
		fmt.Fprintf(out, "gates %s\n", version)
		return nil
	}

	opts, err := parseFlags(args, out)
	if err != nil {
		return err
	}
	if opts.combined {
		return runCombined(opts, out)
	}
	return runSeparate(opts, out)
}

func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("gates", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVar(&opts.epochs, "epochs", 100_000, "training epochs (upper bound with -early-stop)")
	fs.Float64Var(&opts.lr, "lr", 0.5, "learning rate")
	fs.IntVar(&opts.hidden, "hidden", 3, "hidden layer size")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed for weight initialization (0 = time based)")
	fs.BoolVar(&opts.combined, "combined", false, "train one network with an output per gate, gate after gate")
	fs.BoolVar(&opts.earlyStop, "early-stop", false, "stop when the training loss stops improving")
	fs.IntVar(&opts.patience, "patience", 10, "validation checks without improvement before stopping")
	fs.StringVar(&opts.save, "save", "", "save trained weights (file with -combined, directory otherwise)")
	fs.StringVar(&opts.load, "load", "", "load weights before training (file with -combined, directory otherwise)")
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: gates [flags] [GATE...]\n       gates version\n\nGates: %s\n\nFlags:\n",
			strings.Join(gates.Names, ", "))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.epochs < 0 {
		return opts, fmt.Errorf("-epochs must be >= 0, got %d", opts.epochs)
	}
	if opts.hidden <= 0 {
		return opts, fmt.Errorf("-hidden must be > 0, got %d", opts.hidden)
	}
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	opts.gates = fs.Args()
	if len(opts.gates) == 0 {
		opts.gates = gates.Names
	}
	for _, name := range opts.gates {
		if _, err := gates.Lookup(name); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func (o options) trainerConfig() trainer.Config {
	return trainer.Config{
		MaxEpochs:  o.epochs,
		CheckEvery: max(o.epochs/100, 1),
		Patience:   o.patience,
	}
}

// runSeparate trains one private network per gate, concurrently.
func runSeparate(opts options, out io.Writer) error {
	jobs := make([]trainer.Job, 0, len(opts.gates))
	tables := make([]gates.Table, 0, len(opts.gates))
	for i, name := range opts.gates {
		table, _ := gates.Lookup(name)
		net, err := openNetwork(opts, filepath.Join(opts.load, table.Name+".bmlp"), int64(i),
			[]int{table.Arity(), opts.hidden, 1})
		if err != nil {
			return fmt.Errorf("%s: %w", table.Name, err)
		}
		tables = append(tables, table)
		jobs = append(jobs, trainer.Job{
			Name:  table.Name,
			Net:   net,
			Train: trainer.Dataset{Inputs: table.Inputs, Targets: table.Targets},
		})
	}

	if opts.epochs > 0 {
		if opts.earlyStop {
			for _, o := range trainer.FitMany(jobs, opts.trainerConfig(), parallel.DefaultConfig()) {
				if o.Err != nil {
					return fmt.Errorf("%s: %w", o.Name, o.Err)
				}
				fmt.Fprintf(out, "%s: %d epochs, best loss %.6g at epoch %d\n",
					o.Name, o.Result.Epochs, o.Result.BestLoss, o.Result.BestEpoch)
			}
		} else {
			errs := make([]error, len(jobs))
			parallel.For(len(jobs), func(i int) {
				errs[i] = jobs[i].Net.Train(jobs[i].Train.Inputs, jobs[i].Train.Targets, opts.epochs)
			}, parallel.DefaultConfig())
			if err := errors.Join(errs...); err != nil {
				return err
			}
		}
	}

	for i, table := range tables {
		if err := report(out, jobs[i].Net, table, 0); err != nil {
			return err
		}
		if opts.save != "" {
			if err := os.MkdirAll(opts.save, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			if err := jobs[i].Net.SaveFile(filepath.Join(opts.save, table.Name+".bmlp")); err != nil {
				return fmt.Errorf("%s: %w", table.Name, err)
			}
		}
	}
	return nil
}

// runCombined trains a single network with one output neuron per gate,
// presenting the gates one after the other.
func runCombined(opts options, out io.Writer) error {
	net, err := openNetwork(opts, opts.load, 0, []int{2, opts.hidden, len(gates.Names)})
	if err != nil {
		return err
	}

	selected := make(map[string]bool, len(opts.gates))
	for _, name := range opts.gates {
		selected[strings.ToUpper(name)] = true
	}

	for _, table := range gates.Combined() {
		if !selected[table.Name] {
			continue
		}
		fmt.Fprintf(out, "Training %s...\n", table.Name)
		if err := net.Train(table.Inputs, table.Targets, opts.epochs); err != nil {
			return fmt.Errorf("%s: %w", table.Name, err)
		}
		idx, _ := gates.Index(table.Name)
		if err := report(out, net, table, idx); err != nil {
			return err
		}
	}

	if opts.save != "" {
		return net.SaveFile(opts.save)
	}
	return nil
}

// openNetwork loads the network at path when -load is set, otherwise it
// creates a fresh one with the given layer sizes.
func openNetwork(opts options, path string, offset int64, sizes []int) (*nn.Network, error) {
	if opts.load != "" {
		net, err := nn.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if got := net.LayerSizes(); got[0] != sizes[0] || got[len(got)-1] != sizes[len(sizes)-1] {
			return nil, fmt.Errorf("%s: layer sizes %v do not fit %v", path, got, sizes)
		}
		return net, nil
	}
	rng := rand.New(rand.NewSource(opts.seed + offset)) //nolint:gosec // G404: weight initialization
	return nn.NewWithRand(rng, sizes, nn.SigmoidActivation, opts.lr)
}

// report prints the output neuron idx of net for every input of table.
func report(out io.Writer, net *nn.Network, table gates.Table, idx int) error {
	for j, in := range table.Inputs {
		res, err := net.Predict(in)
		if err != nil {
			return fmt.Errorf("%s: %w", table.Name, err)
		}
		fmt.Fprintf(out, "Input: %v, Gate: %s, Output: %.6f, Target: %g\n",
			in, table.Name, res[idx], table.Targets[j][idx])
	}
	return nil
}
