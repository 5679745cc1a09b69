// Package main implements the entry point for the study desk server, which
// serves the study widget page and owns its persisted state.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "studydesk",
		Short: "Local study desk: focus timer, stamina, notes, flashcards and an error graveyard",
		Long: `studydesk runs a single-user study widget as a local web service.
Without a subcommand it behaves like "studydesk serve".`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ./config.yaml if present)")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the study desk server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of studydesk",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "studydesk %s\n", Version)
		},
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(cfgFile)
	if err != nil {
		return err
	}
	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	kv, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	app, err := newApplication(ctx, cfg, logger, kv)
	if err != nil {
		_ = kv.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
