// Package config provides configuration loading for the initdb command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jes/initdb/schema"
)

// Config holds the initdb settings.
type Config struct {
	// Schema is the path of the SQL script applied to new databases.
	Schema string `mapstructure:"schema"`

	// Force and Backup destroy or copy data, so they only come from
	// command-line flags, never from files or the environment.
	Force  bool `mapstructure:"-"`
	Backup bool `mapstructure:"-"`

	Verbose bool `mapstructure:"verbose"`

	// Color is auto, always or never.
	Color string `mapstructure:"color"`
}

// DefaultSchemaPath returns init-database.sql in the directory of the running
// executable, falling back to the working directory.
func DefaultSchemaPath() string {
	exe, err := os.Executable()
	if err != nil {
		return schema.FileName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), schema.FileName)
}

// Load reads configuration from defaults, an optional config file, a .env
// file, INITDB_* environment variables and the given flags, in increasing
// order of precedence. Flags that were not set on the command line do not
// override other sources. Force and Backup are read from flags only.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".initdb"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("initdb")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("INITDB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if flags != nil {
		for _, key := range []string{"schema", "verbose", "color"} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", key, err)
				}
			}
		}
	}

	var cfg Config
	var err error
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if cfg.Schema == "" {
		cfg.Schema = DefaultSchemaPath()
	}
	if flags != nil {
		if cfg.Force, err = flagBool(flags, "force"); err != nil {
			return nil, err
		}
		if cfg.Backup, err = flagBool(flags, "backup"); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "")
	v.SetDefault("verbose", false)
	v.SetDefault("color", "auto")
}

// flagBool returns the value of a bool flag, or false if flags has no such flag.
func flagBool(flags *pflag.FlagSet, name string) (bool, error) {
	if flags.Lookup(name) == nil {
		return false, nil
	}
	return flags.GetBool(name)
}
