package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gbf2/internal/batch"
	"gbf2/internal/metrics"
)

type batchOptions struct {
	*globalOptions

	jobs        int
	optionsPath string
	metricsFile string
}

func newBatchCmd(g *globalOptions) *cobra.Command {
	o := &batchOptions{globalOptions: g}
	cmd := &cobra.Command{
		Use:   "batch <system.yaml>...",
		Short: "Solve several systems concurrently and print their digests",
		Args:  cobra.MinimumNArgs(1),
		RunE:  o.run,
	}
	f := cmd.Flags()
	f.IntVarP(&o.jobs, "jobs", "j", 4, "systems solved at once")
	f.StringVar(&o.optionsPath, "options", "", "yaml file overriding the default options")
	f.StringVar(&o.metricsFile, "metrics-file", "", "write run metrics in the Prometheus text format")
	return cmd
}

func (o *batchOptions) run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	systems, err := batch.LoadAll(args)
	if err != nil {
		return err
	}
	opts, err := readOptions(o.optionsPath)
	if err != nil {
		return err
	}
	cfg := batch.Config{Options: opts, Jobs: o.jobs, Log: o.logger.Logger}
	if o.metricsFile != "" {
		cfg.Metrics = metrics.NewRecorder()
	}
	results, err := batch.SolveAll(ctx, systems, cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "system\tstate\tbasis\tone\ttime\tdigest")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%v\t%s\n", r.Name, r.State, len(r.Basis), r.ContainsOne, r.Elapsed, r.Digest)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if cfg.Metrics != nil {
		return cfg.Metrics.WriteTextfile(o.metricsFile)
	}
	return nil
}
