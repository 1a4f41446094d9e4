package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/contalivre/contalivre/internal/project"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ContaLivre project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := project.Init(absDir, name, entityType); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized ContaLivre project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "sociedad_comercial", "entity type")

	return cmd
}
