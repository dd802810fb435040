// Command cdclsat is the CLI entry point for the solver, exposing three
// subcommands: solve, simplify, and verify-drat.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cdclsat",
		Short: "cdclsat",
		Long:  "A CDCL SAT solver with inprocessing.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newSimplifyCmd())
	rootCmd.AddCommand(newVerifyDratCmd())

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("cdclsat: command failed")
		os.Exit(1)
	}
}
