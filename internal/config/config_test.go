package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRootCmd creates a cobra.Command with the same persistent flags as the
// real root command so that Load can bind them during tests.
func newTestRootCmd() *cobra.Command {
	cmd := &cobra.Command{}
	pf := cmd.PersistentFlags()
	pf.String("config", "", "")
	pf.String("log-level", "info", "")
	pf.String("log-format", "text", "")
	pf.Bool("no-color", false, "")
	pf.BoolP("quiet", "q", false, "")
	pf.StringP("input", "i", DefaultInput, "")
	pf.StringP("output-dir", "o", DefaultOutputDir, "")
	pf.String("env-file", DefaultEnvFile, "")
	pf.String("env-component", "", "")
	pf.Bool("strict", false, "")

	return cmd
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.Equal(t, "config.json", cfg.Input)
	assert.Equal(t, "k8s", cfg.OutputDir)
	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Empty(t, cfg.EnvComponent)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.Quiet)
}

func TestValidate_ValidValues(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		cfg := Default()
		cfg.LogLevel = lvl
		assert.NoError(t, cfg.Validate(), "level=%s", lvl)
	}

	for _, f := range []string{"text", "json"} {
		cfg := Default()
		cfg.LogFormat = f
		assert.NoError(t, cfg.Validate(), "format=%s", f)
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format"},
		{"input", func(c *Config) { c.Input = "" }, "input must not be empty"},
		{"output dir", func(c *Config) { c.OutputDir = "" }, "output-dir must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestEffectiveLogLevel(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).EffectiveLogLevel())
	assert.Equal(t, "error", (&Config{LogLevel: "debug", Quiet: true}).EffectiveLogLevel())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
	assert.Equal(t, DefaultInput, cfg.Input)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("K8SDEPLOYER_LOG_LEVEL", "debug")
	t.Setenv("K8SDEPLOYER_OUTPUT_DIR", "manifests")
	t.Setenv("K8SDEPLOYER_ENV_COMPONENT", "db")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "manifests", cfg.OutputDir)
	assert.Equal(t, "db", cfg.EnvComponent)
}

func TestLoad_EnvBooleans(t *testing.T) {
	t.Setenv("K8SDEPLOYER_NO_COLOR", "true")
	t.Setenv("K8SDEPLOYER_STRICT", "true")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
	assert.True(t, cfg.Strict)
}

func TestLoad_ConfigFile(t *testing.T) {
	p := writeTempConfig(t, "log-level: warn\nlog-format: json\ninput: service.yaml\n")

	cfg, err := Load(nil, p)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "service.yaml", cfg.Input)
	assert.Equal(t, p, cfg.ConfigFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(nil, "/tmp/nonexistent-k8sdeployer-cfg-12345.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	p := writeTempConfig(t, ": invalid yaml :")

	_, err := Load(nil, p)
	require.Error(t, err)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("K8SDEPLOYER_LOG_LEVEL", "debug")

	cmd := newTestRootCmd()
	require.NoError(t, cmd.PersistentFlags().Set("log-level", "error"))

	cfg, err := Load(cmd, "")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("K8SDEPLOYER_OUTPUT_DIR", "from-env")
	p := writeTempConfig(t, "output-dir: from-file\n")

	cfg, err := Load(nil, p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
}

func TestLoad_FlagOverridesAll(t *testing.T) {
	t.Setenv("K8SDEPLOYER_INPUT", "env.json")
	p := writeTempConfig(t, "input: file.json\n")

	cmd := newTestRootCmd()
	require.NoError(t, cmd.PersistentFlags().Set("input", "flag.json"))

	cfg, err := Load(cmd, p)
	require.NoError(t, err)
	assert.Equal(t, "flag.json", cfg.Input)
}

func TestLoad_InvalidLogFormatFromFile(t *testing.T) {
	p := writeTempConfig(t, "log-format: xml\n")

	_, err := Load(nil, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestContext_RoundTrip(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	ctx := NewContext(context.Background(), cfg)
	assert.Equal(t, cfg, FromContext(ctx))
}

func TestFromContext_FallbackToDefault(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
}
