package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func testConfig(t *testing.T, args ...string) (cfg config, err error) {
	v := viper.New()
	flags := pflag.NewFlagSet("neo13", pflag.ContinueOnError)
	addFlags(flags)

	err = bindFlags(v, flags)
	if err != nil {
		return
	}

	err = flags.Parse(args)
	if err != nil {
		return
	}

	return loadConfig(v)
}

func writeFile(t *testing.T, name string, text string) string {
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfig_Defaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := testConfig(t)
	assert.NoError(err)
	assert.False(cfg.Verbose)
	assert.Equal("warn", cfg.LogLevel)
	assert.Equal("", cfg.LogFile)
	assert.Equal(0, cfg.StepLimit)
	assert.Equal(16, cfg.RamDump)
}

func TestConfig_Sources(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "neo13.yaml", "step_limit: 100\nlog_level: debug\nram_dump: 4\n")

	cfg, err := testConfig(t, "--config", path)
	assert.NoError(err)
	assert.Equal(path, cfg.Config)
	assert.Equal(100, cfg.StepLimit)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal(4, cfg.RamDump)

	t.Setenv("NEO13_STEP_LIMIT", "50")
	t.Setenv("NEO13_VERBOSE", "true")

	cfg, err = testConfig(t, "--config", path)
	assert.NoError(err)
	assert.Equal(50, cfg.StepLimit)
	assert.True(cfg.Verbose)
	assert.Equal(4, cfg.RamDump)

	cfg, err = testConfig(t, "--config", path, "--step-limit", "7", "--log-level=error")
	assert.NoError(err)
	assert.Equal(7, cfg.StepLimit)
	assert.Equal("error", cfg.LogLevel)
}

func TestConfig_Missing(t *testing.T) {
	assert := assert.New(t)

	_, err := testConfig(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(err)

	_, err = testConfig(t, "--config", writeFile(t, "bad.yaml", "step_limit: [\n"))
	assert.Error(err)
}
