package cli

import (
	"fmt"

	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/spf13/cobra"
)

func NewMigrateCommand(root *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := root.databaseURL()
			if err := database.Migrate(url); err != nil {
				return err
			}
			return printVersion(cmd, url)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := root.databaseURL()
			if err := database.MigrateDown(url, steps); err != nil {
				return err
			}
			return printVersion(cmd, url)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd, root.databaseURL())
		},
	})

	return cmd
}

func printVersion(cmd *cobra.Command, url string) error {
	v, dirty, err := database.MigrationVersion(url)
	if err != nil {
		return err
	}
	suffix := ""
	if dirty {
		suffix = " (dirty)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d%s\n", v, suffix)
	return nil
}
