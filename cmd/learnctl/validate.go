package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the content bundle against its schema and references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d topics, %d lessons, %d exercises (digest %s)\n",
				len(catalog.Topics()), len(catalog.Lessons()), len(catalog.Exercises()), catalog.Digest())
			return nil
		},
	}
}
