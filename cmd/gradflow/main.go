// Package main provides the gradflow CLI.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/born-ml/gradflow/autodiff"
	"github.com/born-ml/gradflow/backend/cpu"
	"github.com/born-ml/gradflow/internal/gradcheck"
	"github.com/born-ml/gradflow/tensor"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "gradflow - reverse-mode automatic differentiation for Go")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Usage: gradflow [klog flags] <command> [flags]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  demo       Differentiate y = a*b + a at a=2, b=3")
	fmt.Fprintln(out, "  gradcheck  Compare every operation with finite differences")
	fmt.Fprintln(out, "")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	defer klog.Flush()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "version":
		fmt.Printf("gradflow %s\n", version)
	case "demo":
		runDemo()
	case "gradcheck":
		if !runGradcheck(args[1:]) {
			klog.Flush()
			os.Exit(1)
		}
	default:
		klog.Exitf("unknown command %q, see gradflow -help", args[0])
	}
}

func runDemo() {
	engine := autodiff.New(cpu.New())

	a := must.M1(engine.NewTensor(2.0, true))
	b := must.M1(engine.NewTensor(3.0, true))
	ab := must.M1(a.Mul(b))
	y := must.M1(ab.Add(a))
	must.M(y.Backward(nil))

	fmt.Println("y = a*b + a")
	for _, v := range []struct {
		name  string
		value *autodiff.Value
	}{{"a", a}, {"b", b}, {"a*b", ab}, {"y", y}} {
		fmt.Printf("  %-4s data=%v grad=%v\n", v.name, v.value.Data(), must.M1(v.value.Grad()))
	}
}

type checkCase struct {
	name   string
	fn     gradcheck.Func
	shapes []tensor.Shape
	low    []float64 // per-input lower bound of the random operands
}

func checkCases() []checkCase {
	binary := func(op func(a, b *autodiff.Value) (*autodiff.Value, error)) gradcheck.Func {
		return func(in []*autodiff.Value) (*autodiff.Value, error) { return op(in[0], in[1]) }
	}
	unary := func(op func(a *autodiff.Value) (*autodiff.Value, error)) gradcheck.Func {
		return func(in []*autodiff.Value) (*autodiff.Value, error) { return op(in[0]) }
	}
	return []checkCase{
		{"add", binary((*autodiff.Value).Add), []tensor.Shape{{3, 4}, {4}}, []float64{-2, -2}},
		{"neg", unary((*autodiff.Value).Neg), []tensor.Shape{{5}}, []float64{-2}},
		{"sub", binary((*autodiff.Value).Sub), []tensor.Shape{{2, 3}, {2, 1}}, []float64{-2, -2}},
		{"mul", binary((*autodiff.Value).Mul), []tensor.Shape{{3, 4}, {3, 4}}, []float64{-2, -2}},
		{"div", binary((*autodiff.Value).Div), []tensor.Shape{{2, 2}, {2, 2}}, []float64{-2, 0.5}},
		{"pow", binary((*autodiff.Value).Pow), []tensor.Shape{{2, 3}, {2, 3}}, []float64{0.5, -1.5}},
		{"dot", binary((*autodiff.Value).Dot), []tensor.Shape{{3, 4}, {4, 2}}, []float64{-1, -1}},
		{"sum", unary((*autodiff.Value).Sum), []tensor.Shape{{3, 4}}, []float64{-2}},
	}
}

// runGradcheck reports whether every operation passed.
func runGradcheck(args []string) bool {
	fs := flag.NewFlagSet("gradcheck", flag.ExitOnError)
	defaults := gradcheck.DefaultConfig()
	seed := fs.Int64("seed", 42, "random seed for the operands")
	eps := fs.Float64("eps", defaults.Epsilon, "finite-difference step")
	tol := fs.Float64("tol", defaults.Tolerance, "absolute or relative tolerance")
	must.M(fs.Parse(args))

	engine := autodiff.New(cpu.New())
	cfg := gradcheck.Config{Epsilon: *eps, Tolerance: *tol}
	rng := rand.New(rand.NewSource(*seed))

	ok := true
	for _, c := range checkCases() {
		inputs := make([]*tensor.Array, len(c.shapes))
		for i, shape := range c.shapes {
			data := make([]float64, shape.NumElements())
			for j := range data {
				data[j] = c.low[i] + rng.Float64()*2
			}
			inputs[i] = must.M1(tensor.New(shape, data))
		}

		results, err := gradcheck.Check(engine, c.fn, inputs, cfg)
		if err != nil {
			klog.Errorf("%s: %+v", c.name, err)
			ok = false
			continue
		}
		for _, r := range results {
			fmt.Printf("%-4s %s\n", c.name, r)
		}
		ok = ok && gradcheck.Passed(results)
	}
	return ok
}
