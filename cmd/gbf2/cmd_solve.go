package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gbf2/groebner"
	"gbf2/internal/batch"
	"gbf2/internal/metrics"
	"gbf2/internal/plot"
	"gbf2/internal/system"
)

type solveOptions struct {
	*globalOptions

	optionsPath string
	minimalOnly bool
	traceHTML   string
	metricsFile string
	matrixDir   string
	asYAML      bool
}

func newSolveCmd(g *globalOptions) *cobra.Command {
	o := &solveOptions{globalOptions: g}
	cmd := &cobra.Command{
		Use:   "solve <system.yaml>",
		Short: "Compute the reduced Gröbner basis of a system",
		Long: `Reads a system, saturates it and prints the reduced Gröbner basis,
one polynomial per line in increasing lead order, followed by its digest.

Example:
  gbf2 solve toy.yaml --options opts.yaml --trace-html trace.html`,
		Args: cobra.ExactArgs(1),
		RunE: o.run,
	}
	f := cmd.Flags()
	f.StringVar(&o.optionsPath, "options", "", "yaml file overriding the default options")
	f.BoolVar(&o.minimalOnly, "minimal-only", false, "skip the final tail reduction")
	f.StringVar(&o.traceHTML, "trace-html", "", "write a chart of the saturation trace")
	f.StringVar(&o.metricsFile, "metrics-file", "", "write run metrics in the Prometheus text format")
	f.StringVar(&o.matrixDir, "matrices", "", "dump linear-algebra matrices as heatmaps into this directory (needs linear_algebra)")
	f.BoolVar(&o.asYAML, "yaml", false, "print the basis as a system file")
	return cmd
}

func readOptions(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	return data, nil
}

func (o *solveOptions) run(cmd *cobra.Command, args []string) error {
	sys, err := system.Load(args[0])
	if err != nil {
		return err
	}
	opts, err := readOptions(o.optionsPath)
	if err != nil {
		return err
	}
	cfg := batch.Config{Options: opts, MinimalOnly: o.minimalOnly, Log: o.logger.Logger}
	if o.metricsFile != "" {
		cfg.Metrics = metrics.NewRecorder()
	}
	if o.matrixDir != "" {
		w, err := plot.NewMatrixWriter(o.matrixDir)
		if err != nil {
			return err
		}
		cfg.MatrixSink = w
	}

	res, err := batch.Solve(context.Background(), sys, cfg)
	if err != nil {
		return err
	}
	if err := printResult(cmd.OutOrStdout(), res, o.asYAML); err != nil {
		return err
	}
	if o.traceHTML != "" {
		if err := plot.WriteTrace(o.traceHTML, sys.Name, res.Trace); err != nil {
			return err
		}
	}
	if cfg.Metrics != nil {
		return cfg.Metrics.WriteTextfile(o.metricsFile)
	}
	return nil
}

func printResult(w io.Writer, res *batch.Result, asYAML bool) error {
	if asYAML {
		data, err := system.FromPolynomials(res.Name, res.Ring, res.Basis).Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	for _, p := range res.Basis {
		fmt.Fprintln(w, p)
	}
	st := res.Stats
	fmt.Fprintf(w, "# %s: %s, %d polynomials, digest %s\n", res.Name, res.State, len(res.Basis), res.Digest)
	fmt.Fprintf(w, "# pairs %d, zero reductions %d, criteria chain=%d product=%d+%d variable=%d, %v\n",
		st.PairsProcessed, st.ZeroReductions, st.ChainCriterions,
		st.EasyProductCriterions, st.ExtendedProductCriterions, st.VariableChainCriterions, res.Elapsed)
	if res.State == groebner.Bounded {
		fmt.Fprintln(w, "# degree bound reached: the basis is partial")
	}
	return nil
}
