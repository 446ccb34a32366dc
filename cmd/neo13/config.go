package main

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config is the merged view of defaults, neo13.yaml, NEO13_* and flags.
type config struct {
	Config    string `mapstructure:"config"`
	Verbose   bool   `mapstructure:"verbose"`
	LogLevel  string `mapstructure:"log_level"`
	LogFile   string `mapstructure:"log_file"`
	StepLimit int    `mapstructure:"step_limit"`
	RamDump   int    `mapstructure:"ram_dump"`
}

var _config_defaults = map[string]any{
	"config":     "",
	"verbose":    false,
	"log_level":  "warn",
	"log_file":   "",
	"step_limit": 0,
	"ram_dump":   16,
}

// addFlags defines the persistent flags.
func addFlags(flags *pflag.FlagSet) {
	flags.String("config", "", f("configuration file (default ./neo13.yaml)"))
	flags.BoolP("verbose", "v", false, f("trace every instruction"))
	flags.String("log-level", "warn", f("log level (trace, debug, info, warn, error)"))
	flags.String("log-file", "", f("log to a rotated file instead of stderr"))
	flags.Int("step-limit", 0, f("stop a run after this many instructions (0 is unlimited)"))
	flags.Int("ram-dump", 16, f("words shown by a RAM dump"))
}

// bindFlags binds each flag to the config key of the same name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) (err error) {
	flags.VisitAll(func(flag *pflag.Flag) {
		key := strings.ReplaceAll(flag.Name, "-", "_")
		err = errors.Join(err, v.BindPFlag(key, flag))
	})
	return
}

// loadConfig reads the configuration file and environment.
// A missing default neo13.yaml is not an error, a missing --config file is.
func loadConfig(v *viper.Viper) (cfg config, err error) {
	for key, value := range _config_defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("NEO13")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := v.GetString("config")
	if len(path) != 0 {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("neo13")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	err = v.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		err = nil
	}
	if err != nil {
		return
	}

	err = v.Unmarshal(&cfg)
	return
}
