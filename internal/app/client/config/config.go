package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"moneytracker/internal/infrastructure/migration"
	"moneytracker/internal/utils/logger"
)

const (
	defaultEnv       = logger.EnvLocal
	defaultLogLevel  = "info"
	defaultConfigDir = "~/.moneytracker"
	defaultDBName    = "moneytracker.db"
	defaultKeyName   = ".secret.key"
	configFileName   = "config"
)

type Config struct {
	Env       string `mapstructure:"app_env"`
	LogLevel  string `mapstructure:"log_level"`
	ConfigDir string `mapstructure:"config_dir"`
	DB        DB     `mapstructure:",squash"`
	Key       Key    `mapstructure:",squash"`
}

type DB struct {
	Path          string         `mapstructure:"db_path"`
	Driver        string         `mapstructure:"db_driver"`
	MigrationMode migration.Mode `mapstructure:"migration_mode"`
}

type Key struct {
	Path       string `mapstructure:"key_path"`
	Passphrase string `mapstructure:"key_passphrase"`
}

// Load reads .env, the environment and an optional YAML file. Values from the
// environment win over the file.
func Load(configFile string) (*Config, error) {
	// .env next to the binary or one level up
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("config_dir", defaultConfigDir)
	v.SetDefault("db_driver", migration.DriverSQLite)
	v.SetDefault("migration_mode", string(migration.ModeAdditive))

	configDir, err := expandHome(v.GetString("config_dir"))
	if err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// Keys without a default are invisible to Unmarshal unless bound.
	for _, key := range []string{"db_path", "key_path", "key_passphrase"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigDir = configDir

	if cfg.DB.Path == "" {
		cfg.DB.Path = filepath.Join(configDir, defaultDBName)
	}
	if cfg.DB.Path, err = expandHome(cfg.DB.Path); err != nil {
		return nil, err
	}

	if cfg.Key.Path == "" {
		cfg.Key.Path = filepath.Join(configDir, defaultKeyName)
	}
	if cfg.Key.Path, err = expandHome(cfg.Key.Path); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case logger.EnvLocal, logger.EnvDev, logger.EnvProd:
	default:
		return fmt.Errorf("app_env must be one of local, dev, prod: %q", c.Env)
	}

	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	if c.DB.Path == "" {
		return fmt.Errorf("db_path cannot be empty")
	}

	switch c.DB.Driver {
	case migration.DriverSQLite, migration.DriverSQLite3:
	default:
		return fmt.Errorf("db_driver must be %s or %s: %q", migration.DriverSQLite, migration.DriverSQLite3, c.DB.Driver)
	}

	if _, err := migration.ParseMode(string(c.DB.MigrationMode)); err != nil {
		return err
	}

	if c.Key.Path == "" {
		return fmt.Errorf("key_path cannot be empty")
	}

	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
