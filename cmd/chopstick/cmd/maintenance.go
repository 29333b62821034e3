package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"chopstick/internal/maintenance"
)

var maintenanceCmd = &cobra.Command{
	Use:     "maintenance",
	Aliases: []string{"maint"},
	Short:   "Cross-remote maintenance operations",
}

var maintenanceCloneCmd = &cobra.Command{
	Use:   "clone <destination>",
	Short: "Replay every recipe of the source remote onto a destination remote",
	Long: `Clone fetches the complete recipe graph from the source remote, recreates
the referenced ingredients on the destination, then recreates the recipes
in dependency order so every prerequisite exists before anything links to
it. Individual failures are reported as warnings and do not stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		source, err := sourceClient()
		if err != nil {
			return err
		}
		destination, err := remoteClient(args[0])
		if err != nil {
			return err
		}
		if destination.BaseURL() == source.BaseURL() {
			return fmt.Errorf("clone destination equals the source remote")
		}
		rep, err := maintenance.Clone(ctx, source, destination, maintOptions())
		reportSummary(rep)
		return err
	},
}

var maintenanceDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write an anonymized snapshot of the source remote to stdout",
	Long: `Dump fetches the complete recipe graph and emits it as one JSON document
with deterministic placeholder ids instead of server-assigned ones.
Re-running against an unchanged remote reproduces the same bytes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		source, err := sourceClient()
		if err != nil {
			return err
		}
		doc, rep, err := maintenance.Dump(ctx, source, maintOptions())
		reportSummary(rep)
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	},
}

var maintenanceCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete ingredients and labels no recipe references",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		source, err := sourceClient()
		if err != nil {
			return err
		}
		rep, err := maintenance.Clean(ctx, source, maintOptions())
		reportSummary(rep)
		return err
	},
}

func init() {
	rootCmd.AddCommand(maintenanceCmd)
	maintenanceCmd.AddCommand(maintenanceCloneCmd)
	maintenanceCmd.AddCommand(maintenanceDumpCmd)
	maintenanceCmd.AddCommand(maintenanceCleanCmd)
}
