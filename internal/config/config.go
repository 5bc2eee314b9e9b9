// Package config resolves grocer settings from defaults, an optional config
// file, GROCER_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys shared with flag bindings.
const (
	InputKey       = "input"
	OutputKey      = "output"
	DBKey          = "db"
	LockTimeoutKey = "lock_timeout"
	LogLevelKey    = "log.level"
	LogFormatKey   = "log.format"
)

// Config holds all configuration for the application.
type Config struct {
	Input       string        `mapstructure:"input"`
	Output      string        `mapstructure:"output"`
	DB          string        `mapstructure:"db"`
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
	Log         LogConfig     `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("grocer")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlag binds a config key to a flag so the flag wins when set.
func BindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

// Load reads the config file (explicit path, or .grocer.yaml in dir when
// present) and unmarshals the merged settings.
func Load(v *viper.Viper, file, dir string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".grocer")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault(InputKey, "CS210_Project_Three_Input_File.txt")
	v.SetDefault(OutputKey, "frequency.dat")
	v.SetDefault(DBKey, "tally.db")
	v.SetDefault(LockTimeoutKey, 5*time.Second)
	v.SetDefault(LogLevelKey, "info")
	v.SetDefault(LogFormatKey, "text")
}
