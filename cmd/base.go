package cmd

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/config"
	"github.com/Rana718/orgseed/internal/database"
	"github.com/Rana718/orgseed/internal/logger"
	"github.com/Rana718/orgseed/internal/seeder"
)

// loadConfig reads and validates the configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid config")
	}

	if err := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func connect(ctx context.Context, cfg *config.Config) (database.DatabaseAdapter, error) {
	adapter, err := database.NewAdapter(cfg.Database.Provider)
	if err != nil {
		return nil, err
	}

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, errors.WithMessage(err, "failed to connect to database")
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, errors.Wrap(err, "database is not reachable")
	}

	logger.Debug(ctx).Str("provider", cfg.Database.Provider).Msg("connected")
	return adapter, nil
}

func newSeeder(cfg *config.Config, adapter database.DatabaseAdapter) *seeder.Seeder {
	randomSeed := cfg.Seed.RandomSeed
	if randomSeed == 0 {
		randomSeed = time.Now().UnixNano()
	}

	return seeder.NewSeeder(
		adapter,
		seeder.NewUniqueFaker(cfg.Seed.FakerSeed, cfg.Seed.UniqueAttempts),
		rand.New(rand.NewSource(randomSeed)),
		seeder.Options{
			Departments: seeder.Range{Min: cfg.Seed.Departments.Min, Max: cfg.Seed.Departments.Max},
			Employees:   seeder.Range{Min: cfg.Seed.Employees.Min, Max: cfg.Seed.Employees.Max},
		},
	)
}

func confirm(prompt string) (bool, error) {
	color.Yellow("%s (yes/no): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, errors.Wrap(err, "failed to read response")
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}

func printRowCounts(counts []seeder.TableCount) {
	fmt.Println()
	color.Cyan("📊 Row counts:")
	for _, c := range counts {
		fmt.Printf("   %-12s %d\n", c.Table, c.Rows)
	}
}
