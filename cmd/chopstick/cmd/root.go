package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chopstick/internal/config"
	"chopstick/internal/ladle"
	"chopstick/internal/logging"
	"chopstick/internal/maintenance"
	"chopstick/internal/resolve"
)

var (
	cfgPath    string
	serverFlag string
	verbosity  int

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chopstick",
	Short: "Manage recipes on a ladle server",
	Long: `chopstick is a command-line client for ladle recipe servers.

It wraps the usual recipe, ingredient, and label operations and adds
maintenance flows: cloning a whole remote onto another, dumping an
anonymized snapshot, reclaiming unreferenced entities, and merging
duplicate ingredients.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		logging.ConfigureRuntime()
		logging.Verbose(verbosity)
		return loadConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "chopstick: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "remote name or base URL (defaults to config default_remote)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "raise log verbosity")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to chopstick.toml")
}

func loadConfig() error {
	path := cfgPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			cfg = config.Default()
			return nil
		}
		path = defaultPath
	}

	loaded, err := config.Load(path)
	if err != nil {
		// A missing default config is fine; an explicit --config is not.
		if cfgPath == "" && errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
			return nil
		}
		return err
	}
	cfg = loaded
	return nil
}

// remoteClient builds a gateway client for a remote selector.
func remoteClient(selector string) (*ladle.Client, error) {
	base, err := cfg.Remote(selector)
	if err != nil {
		return nil, err
	}
	clientCfg := ladle.DefaultClientConfig()
	clientCfg.BaseURL = base
	clientCfg.Timeout = cfg.Timeout
	return ladle.NewClient(clientCfg)
}

// sourceClient builds the client for the remote the command operates on.
func sourceClient() (*ladle.Client, error) {
	return remoteClient(serverFlag)
}

func maintOptions() maintenance.Options {
	return maintenance.Options{Workers: cfg.Workers}
}

func resolveRecipe(ctx context.Context, c *ladle.Client, clue string) (resolve.Entity, error) {
	match, err := resolve.Resolve(ctx, resolve.RecipeDirectory{Client: c}, clue, false)
	if err != nil {
		return resolve.Entity{}, err
	}
	return match.Entity, nil
}

func resolveIngredient(ctx context.Context, c *ladle.Client, clue string, createMissing bool) (resolve.Entity, error) {
	match, err := resolve.Resolve(ctx, resolve.IngredientDirectory{Client: c}, clue, createMissing)
	if err != nil {
		return resolve.Entity{}, err
	}
	return match.Entity, nil
}

func resolveLabel(ctx context.Context, c *ladle.Client, clue string) (resolve.Entity, error) {
	match, err := resolve.Resolve(ctx, resolve.LabelDirectory{Client: c}, clue, false)
	if err != nil {
		return resolve.Entity{}, err
	}
	return match.Entity, nil
}

// reportSummary prints the maintenance warning count; the individual
// warnings already went to the log as they happened.
func reportSummary(rep *maintenance.Report) {
	if rep == nil {
		return
	}
	if warnings := rep.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(os.Stderr, "%d warnings; rerun with -v for request traces\n", len(warnings))
	}
}
