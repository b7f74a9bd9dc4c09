package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gbf2/groebner"
	"gbf2/internal/batch"
	"gbf2/internal/satcheck"
	"gbf2/internal/system"
)

type checkOptions struct {
	*globalOptions

	optionsPath string
}

func newCheckCmd(g *globalOptions) *cobra.Command {
	o := &checkOptions{globalOptions: g}
	cmd := &cobra.Command{
		Use:   "check <system.yaml>",
		Short: "Cross-check the basis against a SAT solver",
		Long: `Solves the system twice: once with the Gröbner engine and once with a SAT
solver on a circuit encoding of the generators. The basis must be {1}
exactly when the solver finds no common zero, and a solver model must be
a zero of every basis polynomial. The basis is also checked to be a
Gröbner basis.`,
		Args: cobra.ExactArgs(1),
		RunE: o.run,
	}
	cmd.Flags().StringVar(&o.optionsPath, "options", "", "yaml file overriding the default options")
	return cmd
}

func (o *checkOptions) run(cmd *cobra.Command, args []string) error {
	sys, err := system.Load(args[0])
	if err != nil {
		return err
	}
	opts, err := readOptions(o.optionsPath)
	if err != nil {
		return err
	}
	res, err := batch.Solve(context.Background(), sys, batch.Config{Options: opts, Log: o.logger.Logger})
	if err != nil {
		return err
	}
	if res.State != groebner.Done {
		return fmt.Errorf("%s: run stopped in state %s, nothing to check", sys.Name, res.State)
	}
	if !groebner.IsGroebnerBasis(res.Ring.NewCache(), res.Basis) {
		return fmt.Errorf("%s: result is not a Gröbner basis", sys.Name)
	}
	rep, err := satcheck.CrossCheck(res.Input, res.Basis)
	if err != nil {
		return fmt.Errorf("%s: %w", sys.Name, err)
	}
	out := cmd.OutOrStdout()
	if !rep.Satisfiable {
		fmt.Fprintf(out, "%s: unsatisfiable, basis is {1}\n", sys.Name)
		return nil
	}
	fmt.Fprintf(out, "%s: satisfiable, %d basis polynomials vanish at", sys.Name, len(res.Basis))
	for i, v := range rep.Model {
		b := 0
		if v {
			b = 1
		}
		fmt.Fprintf(out, " %s=%d", res.Ring.Name(i), b)
	}
	fmt.Fprintln(out)
	return nil
}
