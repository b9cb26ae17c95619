package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Rana718/orgseed/internal/config"
	"github.com/Rana718/orgseed/template"
)

const envExampleFile = ".env.example"

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
	initForce      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	Long:  `Write ` + config.FileName + ` and ` + envExampleFile + ` for the chosen database.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return errors.New("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(dbType, initForce)
	},
}

func init() {
	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize for a SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize for a PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize for a MySQL database")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
}

func initializeProject(dbType template.DatabaseType, force bool) error {
	tmpl := template.NewProjectTemplate(dbType)

	if _, err := os.Stat(config.FileName); err == nil && !force {
		return errors.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	}

	cfg, err := tmpl.GetConfig()
	if err != nil {
		return err
	}

	files := map[string]string{
		config.FileName: cfg,
		envExampleFile:  tmpl.GetEnvTemplate(),
	}
	for filePath, content := range files {
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return errors.Wrapf(err, "failed to create file %s", filePath)
		}
	}

	color.Green("✅ Initialized orgseed for %s", dbType)
	fmt.Println()
	fmt.Println("📝 Files created:")
	fmt.Printf("   %s\n", config.FileName)
	fmt.Printf("   %s\n", envExampleFile)
	fmt.Println()
	color.Cyan("Next: copy %s to .env, set DATABASE_URL and run 'orgseed seed'", envExampleFile)
	return nil
}
