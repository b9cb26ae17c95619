package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rana718/orgseed/internal/database"
	"github.com/Rana718/orgseed/internal/schema"
	"github.com/Rana718/orgseed/internal/seeder"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the CREATE TABLE statements for the configured database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		adapter, err := database.NewAdapter(cfg.Database.Provider)
		if err != nil {
			return err
		}

		graph := seeder.NewDependencyGraph()
		for _, table := range schema.Tables() {
			graph.AddTable(table)
		}
		order, err := graph.BuildCreationOrder()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range order {
			table, _ := graph.Table(name)
			fmt.Fprintln(out, adapter.GenerateCreateTableSQL(table))
			fmt.Fprintln(out)
		}
		return nil
	},
}
