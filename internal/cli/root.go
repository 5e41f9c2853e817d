// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/BartekS5/loadplan/internal/config"
	"github.com/BartekS5/loadplan/pkg/logger"
)

const defaultPlanFile = "configs/ctd_gene_disease_plan.json"

// Options are shared by every sub-command.
type Options struct {
	PlanFile string
	Config   *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "loadplan",
		Short: "loadplan - validate and publish tabular-to-graph load plans",
		Long: `loadplan works with load plan documents that describe how rows of a
tabular source (such as CTD gene-disease associations) map onto graph nodes
and edges. It validates plans, resolves identifiers and cell values against
the plan context, checks plans against a SQL Server staging table and keeps
reviewed plans in a MongoDB registry.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Config = config.LoadConfig()
			level := logger.INFO
			if opts.Config.Debug {
				level = logger.DEBUG
			}
			return logger.InitLogger(opts.Config.LogFile, level)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.PlanFile, "plan", "p", defaultPlanFile, "Path to the load plan file (.json, .yaml)")

	rootCmd.AddCommand(
		NewValidateCmd(opts),
		NewShowCmd(opts),
		NewResolveCmd(opts),
		NewCheckColumnsCmd(opts),
		NewRegistryCmd(opts),
	)

	return rootCmd
}

// Execute runs cmd and closes the log file afterwards, whether or not the
// command failed. Cobra skips post-run hooks on error.
func Execute(cmd *cobra.Command) error {
	defer logger.Close()
	return cmd.Execute()
}
