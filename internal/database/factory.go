package database

import (
	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/database/memory"
	"github.com/Rana718/orgseed/internal/database/mysql"
	"github.com/Rana718/orgseed/internal/database/postgres"
	"github.com/Rana718/orgseed/internal/database/sqlite"
)

var SupportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3", "memory"}

func NewAdapter(provider string) (DatabaseAdapter, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, errors.Errorf("unsupported database provider: %s. Supported providers: %v", provider, SupportedProviders)
	}
}
