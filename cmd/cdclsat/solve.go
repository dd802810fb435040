package main

import (
	"os"

	cdcl "github.com/crillab/cdclsat"
	"github.com/crillab/cdclsat/dimacs"
	"github.com/crillab/cdclsat/internal/wiring"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSolveCmd() *cobra.Command {
	var dratPath string
	var maxConfl int64

	cmd := &cobra.Command{
		Use:   "solve <cnf-file>",
		Short: "Solve a DIMACS CNF (or CNF+XOR) file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cnf, err := readCNF(args[0])
			if err != nil {
				return err
			}

			cfg := cdcl.DefaultConfig()
			if maxConfl >= 0 {
				cfg.MaxConfl = maxConfl
			}

			var drat cdcl.DRATWriter
			if dratPath != "" {
				f, err := os.Create(dratPath)
				if err != nil {
					return errors.Wrapf(err, "cdclsat: cannot create DRAT file %q", dratPath)
				}
				defer f.Close()
				drat = cdcl.NewTextDRATWriter(f)
			}

			s := wiring.New(cfg, drat, nil)
			ok, err := dimacs.Load(cnf, s)
			if err != nil {
				return err
			}
			if drat, ok := s.State().Drat.(*cdcl.TextDRATWriter); ok {
				defer drat.Close()
			}
			if !ok {
				return dimacs.WriteSolution(os.Stdout, cdcl.VerdictUnsat, nil)
			}

			verdict, err := s.Solve()
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"conflicts": s.Stats.NbConflicts,
				"decisions": s.Stats.NbDecisions,
				"restarts":  s.Stats.NbRestarts,
			}).Debug("cdclsat: search finished")

			return dimacs.WriteSolution(os.Stdout, verdict, s.GetModel())
		},
	}

	cmd.Flags().StringVar(&dratPath, "drat", "", "write a DRAT proof to this path")
	cmd.Flags().Int64Var(&maxConfl, "max-conflicts", -1, "abort after this many conflicts (-1: unbounded)")
	return cmd
}

func readCNF(path string) (*dimacs.CNF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cdclsat: cannot open %q", path)
	}
	defer f.Close()
	cnf, err := dimacs.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cdclsat: cannot parse %q", path)
	}
	return cnf, nil
}
