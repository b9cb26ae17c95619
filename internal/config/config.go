package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/Rana718/orgseed/internal/apperror"
	"github.com/Rana718/orgseed/internal/database"
)

const (
	FileName  = "orgseed.config.yaml"
	EnvPrefix = "ORGSEED"
)

type Config struct {
	Database Database `yaml:"database" mapstructure:"database"`
	Seed     Seed     `yaml:"seed" mapstructure:"seed"`
	Log      Log      `yaml:"log" mapstructure:"log"`
}

type Database struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	URLEnv   string `yaml:"url_env" mapstructure:"url_env"`
}

type Seed struct {
	FakerSeed      uint64 `yaml:"faker_seed" mapstructure:"faker_seed"`
	RandomSeed     int64  `yaml:"random_seed" mapstructure:"random_seed"` // 0 = time based
	UniqueAttempts int    `yaml:"unique_attempts" mapstructure:"unique_attempts"`
	Departments    Range  `yaml:"departments" mapstructure:"departments"`
	Employees      Range  `yaml:"employees" mapstructure:"employees"`
}

type Range struct {
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max"`
}

type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file,omitempty" mapstructure:"file"`
}

// SetDefaults registers every key with viper so that environment overrides
// reach Unmarshal even when the config file omits them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("database.provider", d.Database.Provider)
	v.SetDefault("database.url_env", d.Database.URLEnv)
	v.SetDefault("seed.faker_seed", d.Seed.FakerSeed)
	v.SetDefault("seed.random_seed", d.Seed.RandomSeed)
	v.SetDefault("seed.unique_attempts", d.Seed.UniqueAttempts)
	v.SetDefault("seed.departments.min", d.Seed.Departments.Min)
	v.SetDefault("seed.departments.max", d.Seed.Departments.Max)
	v.SetDefault("seed.employees.min", d.Seed.Employees.Min)
	v.SetDefault("seed.employees.max", d.Seed.Employees.Max)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

func Default() Config {
	return Config{
		Database: Database{Provider: "postgresql", URLEnv: "DATABASE_URL"},
		Seed: Seed{
			FakerSeed:      73,
			UniqueAttempts: 1000,
			Departments:    Range{Min: 3, Max: 10},
			Employees:      Range{Min: 10, Max: 50},
		},
		Log: Log{Level: "info", Format: "console"},
	}
}

// Load unmarshals the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperror.Wrap(apperror.CodeConfig, err, "failed to unmarshal config")
	}
	cfg.Database.Provider = strings.ToLower(strings.TrimSpace(cfg.Database.Provider))

	return &cfg, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range database.SupportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return apperror.New(apperror.CodeConfig, "unsupported database provider: "+c.Database.Provider)
	}

	if !c.IsMemory() && c.Database.URLEnv == "" {
		return apperror.New(apperror.CodeConfig, "database.url_env cannot be empty")
	}

	if err := c.Seed.Departments.validate("seed.departments"); err != nil {
		return err
	}
	if err := c.Seed.Employees.validate("seed.employees"); err != nil {
		return err
	}
	if c.Seed.UniqueAttempts <= 0 {
		return apperror.New(apperror.CodeConfig, "seed.unique_attempts must be positive")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return apperror.New(apperror.CodeConfig, "log.format must be console or json, got "+c.Log.Format)
	}

	return nil
}

func (r Range) validate(key string) error {
	if r.Min < 0 {
		return apperror.Wrapf(apperror.CodeConfig, errors.Errorf("min is %d", r.Min), "%s.min must not be negative", key)
	}
	if r.Max < r.Min {
		return apperror.Wrapf(apperror.CodeConfig, errors.Errorf("min %d > max %d", r.Min, r.Max), "%s is empty", key)
	}
	return nil
}

// IsMemory reports whether the run keeps everything in process memory.
func (c *Config) IsMemory() bool {
	return c.Database.Provider == "memory"
}

func (c *Config) GetDatabaseURL() (string, error) {
	if c.IsMemory() {
		return "", nil
	}
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", apperror.New(apperror.CodeConfig, "database URL not found in environment variable "+c.Database.URLEnv)
	}
	return dbURL, nil
}
