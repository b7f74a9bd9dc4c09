package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gbf2/internal/logging"
	"gbf2/prof"
)

// globalOptions holds the persistent flags and the logger built from them.
type globalOptions struct {
	verbose bool
	profile bool

	logger *logging.Logger
}

// newRootCmd builds the command tree. Flag values live in per-command structs.
func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "gbf2",
		Short: "Gröbner bases of Boolean polynomial systems over GF(2)",
		Long: `gbf2 computes reduced Gröbner bases of ideals in the Boolean ring
GF(2)[x1..xn]/(xi^2 + xi).

Systems are yaml files listing the variables, the monomial order
(lp or dlex) and the generators as expressions such as "x1*x2 + x3 + 1".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			g.logger, err = logging.New(g.verbose)
			if err != nil {
				return err
			}
			prof.Enable(g.profile)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.profile {
				printProfile(cmd.ErrOrStderr())
				prof.Enable(false)
			}
			if g.logger != nil {
				g.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&g.profile, "profile", false, "print a timing summary per phase")
	rootCmd.AddCommand(newSolveCmd(g), newRandomCmd(), newBatchCmd(g), newCheckCmd(g))
	return rootCmd
}

func printProfile(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "phase\tcalls\ttotal\tmax")
	for _, p := range prof.Summarize(prof.SnapshotAndReset()) {
		fmt.Fprintf(tw, "%s\t%d\t%v\t%v\n", p.Label, p.Calls, p.Total, p.Max)
	}
	tw.Flush()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
