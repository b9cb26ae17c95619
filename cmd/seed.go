package cmd

import (
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Rana718/orgseed/internal/logger"
)

var (
	seedDepartments int
	seedEmployees   int
	seedNoReset     bool
	seedDryRun      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the schema and fill it with random departments and employees",
	Long: `
Drop and recreate the department and employee tables, then generate random
departments and employees. Counts are drawn from the configured ranges unless
given explicitly.

Examples:
  orgseed seed
  orgseed seed --departments 5 --employees 20
  orgseed seed --no-reset --employees 10
  orgseed seed --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if seedDryRun {
			cfg.Database.Provider = "memory"
			if seedNoReset {
				color.Yellow("⚠️  --no-reset is ignored with --dry-run")
				seedNoReset = false
			}
		}

		ctx = logger.WithLogger(ctx, map[string]interface{}{
			"command":  cmd.Name(),
			"provider": cfg.Database.Provider,
		})

		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		s := newSeeder(cfg, adapter)

		departments, employees, err := s.PickCounts()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("departments") {
			departments = seedDepartments
		}
		if cmd.Flags().Changed("employees") {
			employees = seedEmployees
		}
		if departments < 0 || employees < 0 {
			return errors.New("counts must not be negative")
		}

		if !seedNoReset {
			color.Cyan("🗑️  Resetting schema...")
			if err := s.ResetSchema(ctx); err != nil {
				return err
			}
		}

		color.Cyan("🌱 Seeding %d departments and %d employees...", departments, employees)
		result, err := s.Seed(ctx, departments, employees)
		if err != nil {
			return err
		}
		if employees > 0 && len(result.Departments) == 0 {
			color.Yellow("⚠️  No departments, so no employees were generated")
		}

		counts, err := s.RowCounts(ctx)
		if err != nil {
			return err
		}
		printRowCounts(counts)

		if seedDryRun {
			color.Green("\n✅ Dry run completed, nothing was written")
			return nil
		}
		color.Green("\n✅ Database seeding completed successfully!")
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedDepartments, "departments", 0, "number of departments (default: random within seed.departments)")
	seedCmd.Flags().IntVar(&seedEmployees, "employees", 0, "number of employees (default: random within seed.employees)")
	seedCmd.Flags().BoolVar(&seedNoReset, "no-reset", false, "keep the existing tables and rows")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "seed an in-memory store instead of the configured database")
}
