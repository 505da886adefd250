// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/katalvlaran/maxent/config"
	"github.com/katalvlaran/maxent/constraint"
	"github.com/katalvlaran/maxent/maxent"
	"github.com/katalvlaran/maxent/newton"
	"github.com/katalvlaran/maxent/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type solveOptions struct {
	configPath  string
	variables   int
	k           int
	constraints []string
	decompose   bool
	tolerance   float64
	maxIter     int
	skipZero    bool
	precision   int
	debug       bool
}

func newSolveCmd() *cobra.Command {
	o := solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a problem and print its marginals",
		Long: `Solve a problem and print Pr[var=value] for every variable and value.

Without --config the reference problem is solved: 3 variables, k = 25,
not(0=4) not(1=1) neq(0,1) neq(1,2). Flags override the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			if o.debug {
				logger.SetLevel(logrus.DebugLevel)
			}

			p, err := o.problem(cmd.Flags())
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			return o.run(ctx, logger, p, cmd.OutOrStdout())
		},
	}
	addSolveFlags(cmd.Flags(), &o)

	return cmd
}

func addSolveFlags(fs *pflag.FlagSet, o *solveOptions) {
	def := config.Default()
	fs.StringVar(&o.configPath, "config", "", "path to a YAML problem file")
	fs.IntVar(&o.variables, "variables", def.Variables, "number of variables")
	fs.IntVar(&o.k, "k", def.K, "domain size shared by every variable")
	fs.StringArrayVar(&o.constraints, "constraint", nil, "constraint such as neq(0,1) or not(0=4); repeatable")
	fs.BoolVar(&o.decompose, "decompose", false, "solve independent components separately")
	fs.Float64Var(&o.tolerance, "tolerance", newton.DefaultTolerance, "residual norm at which Newton stops")
	fs.IntVar(&o.maxIter, "max-iter", newton.DefaultMaxIterations, "Newton iteration cap")
	fs.BoolVar(&o.skipZero, "skip-zero", false, "omit zero-probability entries")
	fs.IntVar(&o.precision, "precision", report.DefaultPrecision, "decimals to print; negative for shortest form")
	fs.BoolVar(&o.debug, "debug", false, "use debug log level")
}

// problem starts from the config file (or the reference problem) and
// applies every flag the user set explicitly.
func (o *solveOptions) problem(fs *pflag.FlagSet) (*config.Problem, error) {
	p := config.Default()
	if o.configPath != "" {
		var err error
		if p, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	if fs.Changed("variables") {
		p.Variables = o.variables
	}
	if fs.Changed("k") {
		p.K = o.k
	}
	if fs.Changed("constraint") {
		p.Constraints = o.constraints
	}
	if fs.Changed("decompose") {
		p.Decompose = o.decompose
	}
	if fs.Changed("tolerance") {
		p.Solver.Tolerance = o.tolerance
	}
	if fs.Changed("max-iter") {
		p.Solver.MaxIterations = o.maxIter
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (o *solveOptions) run(ctx context.Context, logger *logrus.Logger, p *config.Problem, out io.Writer) error {
	set, err := p.ConstraintSet()
	if err != nil {
		return err
	}

	solve := maxent.Optimize
	if p.Decompose {
		solve = maxent.OptimizeDecomposed
	}
	logger.WithFields(logrus.Fields{
		"variables":   set.VariableCount(),
		"k":           set.K(),
		"constraints": describe(set),
		"decompose":   p.Decompose,
	}).Info("solving")

	start := time.Now()
	res, err := solve(ctx, set, append(p.Options(), maxent.WithLogger(logger))...)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"iterations": res.Iterations,
		"norm":       res.Norm,
		"elapsed":    time.Since(start).String(),
	}).Info("solved")

	return report.Write(out, res, set.VariableCount(), set.K(),
		report.WithSkipZero(o.skipZero),
		report.WithPrecision(o.precision),
	)
}

func describe(set *constraint.Set) []string {
	cs := set.Constraints()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}

	return out
}
