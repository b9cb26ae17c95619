package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/orgseed/internal/logger"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the department and employee tables",
	Long: `
Reset the schema by dropping the employee and department tables and creating
them again, empty. A table that cannot be dropped (for example because it does
not exist yet) is reported as a warning.

⚠️  WARNING: This will permanently delete all seeded data!

Use --force to skip the confirmation prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx = logger.WithLogger(ctx, map[string]interface{}{
			"command":  cmd.Name(),
			"provider": cfg.Database.Provider,
		})

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			ok, err := confirm(fmt.Sprintf("Drop all seeded tables on %s?", cfg.Database.Provider))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("❌ Reset cancelled")
				return nil
			}
		}

		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		if err := newSeeder(cfg, adapter).ResetSchema(ctx); err != nil {
			return err
		}

		color.Green("✅ Schema reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
}
