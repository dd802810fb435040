package main

import (
	"fmt"

	cdcl "github.com/crillab/cdclsat"
	"github.com/crillab/cdclsat/dimacs"
	"github.com/crillab/cdclsat/internal/wiring"
	"github.com/spf13/cobra"
)

func newSimplifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simplify <cnf-file>",
		Short: "Run one inprocessing pass over a DIMACS file without searching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cnf, err := readCNF(args[0])
			if err != nil {
				return err
			}

			s := wiring.New(cdcl.DefaultConfig(), nil, nil)
			ok, err := dimacs.Load(cnf, s)
			if err != nil {
				return err
			}
			if ok {
				ok, err = s.SimplifyProblemOutside()
				if err != nil {
					return err
				}
			}

			status := "consistent"
			if !ok {
				status = "refuted"
			}
			fmt.Printf("simplify: %s (%d conflicts, %d simplification passes, %d renumberings)\n",
				status, s.Stats.NbConflicts, s.Stats.NbSimplify, s.Stats.NbRenumber)
			return nil
		},
	}
	return cmd
}
