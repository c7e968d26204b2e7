package main

import (
	"github.com/spf13/cobra"

	"github.com/p-n-ai/codelearn/internal/content"
	"github.com/p-n-ai/codelearn/internal/platform/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "learnctl",
		Short:         "Manage the learning content bundle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("content", "", "Content directory (overrides LEARN_CONTENT_PATH; empty uses the built-in bundle)")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newMigrateCmd())
	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}

// loadCatalog resolves the content directory from --content first, then
// LEARN_CONTENT_PATH.
func loadCatalog(cmd *cobra.Command) (*content.Catalog, error) {
	dir, _ := cmd.Flags().GetString("content")
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		dir = cfg.ContentPath
	}
	return content.LoadDir(dir)
}
