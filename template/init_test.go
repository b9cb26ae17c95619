package template

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/orgseed/internal/config"
)

func TestGetConfigRoundTripsThroughViper(t *testing.T) {
	for _, dbType := range []DatabaseType{SQLite, MySQL, PostgreSQL} {
		t.Run(string(dbType), func(t *testing.T) {
			rendered, err := NewProjectTemplate(dbType).GetConfig()
			require.NoError(t, err)

			v := viper.New()
			v.SetConfigType("yaml")
			require.NoError(t, v.ReadConfig(bytes.NewBufferString(rendered)))

			cfg, err := config.LoadFrom(v)
			require.NoError(t, err)
			assert.Equal(t, string(dbType), cfg.Database.Provider)
			assert.Equal(t, uint64(73), cfg.Seed.FakerSeed)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestGetConfigRejectsUnknownType(t *testing.T) {
	_, err := NewProjectTemplate("oracle").GetConfig()
	assert.ErrorContains(t, err, "unknown database type")
}

func TestGetEnvTemplate(t *testing.T) {
	assert.Equal(t, "DATABASE_URL=sqlite://./org.sqlite\n", NewProjectTemplate(SQLite).GetEnvTemplate())
	assert.Contains(t, NewProjectTemplate(MySQL).GetEnvTemplate(), "mysql://")
}
