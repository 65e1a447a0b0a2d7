package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("arpaint", []string{"-j", "limits.json"}, env(nil), &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "limits.json", cfg.LimitsPath)
	assert.False(t, cfg.UseMouse)
	assert.False(t, cfg.PreventShake)
	assert.Equal(t, 0, cfg.Camera)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Empty(t, cfg.Spectate)
}

func TestParseShorthandsAndFlags(t *testing.T) {
	args := []string{"-j", "limits.json", "-m", "-usp", "-coloring", "-seed=9", "-camera=2", "-out=/tmp/x", "-spectate=:9000", "-debug-verbose"}
	cfg, err := Parse("arpaint", args, env(nil), &bytes.Buffer{})
	require.NoError(t, err)

	assert.True(t, cfg.UseMouse)
	assert.True(t, cfg.PreventShake)
	assert.True(t, cfg.Coloring)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 2, cfg.Camera)
	assert.Equal(t, "/tmp/x", cfg.OutDir)
	assert.Equal(t, ":9000", cfg.Spectate)
	assert.True(t, cfg.Debug, "verbose implies debug")
}

func TestEnvironmentDefaults(t *testing.T) {
	vars := map[string]string{
		EnvLimits:   "env.json",
		EnvCamera:   "3",
		EnvOut:      "/drawings",
		EnvSpectate: ":7000",
	}
	cfg, err := Parse("arpaint", nil, env(vars), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "env.json", cfg.LimitsPath)
	assert.Equal(t, 3, cfg.Camera)
	assert.Equal(t, "/drawings", cfg.OutDir)
	assert.Equal(t, ":7000", cfg.Spectate)

	cfg, err = Parse("arpaint", []string{"-json=flag.json", "-camera=0"}, env(vars), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "flag.json", cfg.LimitsPath, "flags override the environment")
	assert.Equal(t, 0, cfg.Camera)
}

func TestValidate(t *testing.T) {
	_, err := Parse("arpaint", nil, env(nil), &bytes.Buffer{})
	assert.ErrorContains(t, err, "-json is required")

	_, err = Parse("arpaint", []string{"-j", "limits.json", "-camera=-1"}, env(nil), &bytes.Buffer{})
	assert.Error(t, err)

	_, err = Parse("arpaint", []string{"-j", "limits.json", "-nope"}, env(nil), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestMouseModeStillNeedsLimits(t *testing.T) {
	_, err := Parse("arpaint", []string{"-m"}, env(nil), &bytes.Buffer{})
	assert.ErrorContains(t, err, "-json is required")

	cfg, err := Parse("arpaint", []string{"-m", "-j", "limits.json"}, env(nil), &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, cfg.UseMouse)
	assert.Equal(t, "limits.json", cfg.LimitsPath)

	cfg, err = Parse("arpaint", []string{"-mouse"}, env(map[string]string{EnvLimits: "env.json"}), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "env.json", cfg.LimitsPath)
}

func TestUsageListsExamples(t *testing.T) {
	var out bytes.Buffer
	_, err := Parse("arpaint", []string{"-h"}, env(nil), &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "USAGE EXAMPLES")
	assert.Contains(t, out.String(), "-usp")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ARPAINT_TEST_VALUE=from-dotenv\n"), 0644))
	t.Setenv("ARPAINT_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("ARPAINT_TEST_VALUE"))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("ARPAINT_TEST_VALUE"))

	assert.NoError(t, LoadEnv(filepath.Join(dir, "missing.env")))
}
