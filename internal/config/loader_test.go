package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/domain"
)

func TestLoadEnvFile(t *testing.T) {
	t.Run("empty path returns nil", func(t *testing.T) {
		env, err := LoadEnvFile("")
		assert.NoError(t, err)
		assert.Nil(t, env)
	})

	t.Run("loads env file", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		err := os.WriteFile(envPath, []byte("TRACEHELPER_ADDR=http://svc:5000\nOTHER=x"), 0644)
		require.NoError(t, err)

		env, err := LoadEnvFile(envPath)
		require.NoError(t, err)
		assert.Equal(t, "http://svc:5000", env["TRACEHELPER_ADDR"])
		assert.Equal(t, "x", env["OTHER"])
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadEnvFile("nonexistent.env")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestMergeEnv(t *testing.T) {
	env1 := map[string]string{"A": "1", "B": "2"}
	env2 := map[string]string{"B": "3", "C": "4"}

	result := MergeEnv(env1, nil, env2)
	assert.Equal(t, "1", result["A"])
	assert.Equal(t, "3", result["B"]) // env2 overrides
	assert.Equal(t, "4", result["C"])
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(map[string]string{
		EnvAddress:     "http://override:9000",
		EnvDownloadDir: "/srv/out",
		EnvTimeout:     "90s",
	})

	assert.Equal(t, "http://override:9000", cfg.Service.Address)
	assert.Equal(t, "/srv/out", cfg.Download.Dir)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout())
}

func TestResolve(t *testing.T) {
	t.Run("missing config falls back to defaults", func(t *testing.T) {
		t.Setenv(EnvAddress, "")
		cfg, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultServiceAddress, cfg.Service.Address)
	})

	t.Run("env file overrides config file", func(t *testing.T) {
		t.Setenv(EnvAddress, "")
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRACEHELPER_ADDR=http://from-env-file:5000\n"), 0644))
		path := filepath.Join(dir, "tracehelper.yaml")
		require.NoError(t, os.WriteFile(path, []byte("service:\n  address: http://from-config:5000\nenv_file: .env\n"), 0644))

		cfg, err := Resolve(path)
		require.NoError(t, err)
		assert.Equal(t, "http://from-env-file:5000", cfg.Service.Address)
	})

	t.Run("process environment wins", func(t *testing.T) {
		t.Setenv(EnvAddress, "http://from-process:5000")
		cfg, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "http://from-process:5000", cfg.Service.Address)
	})

	t.Run("invalid override is rejected", func(t *testing.T) {
		t.Setenv(EnvAddress, "")
		t.Setenv(EnvTimeout, "soon")
		_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service.timeout")
	})

	t.Run("missing env file is an error", func(t *testing.T) {
		t.Setenv(EnvAddress, "")
		dir := t.TempDir()
		path := filepath.Join(dir, "tracehelper.yaml")
		require.NoError(t, os.WriteFile(path, []byte("env_file: nope.env\n"), 0644))

		_, err := Resolve(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading env file")
	})
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/abs/file.env", resolvePath("/abs/file.env", "/base"))
	assert.Equal(t, filepath.Join("/base", "rel.env"), resolvePath("rel.env", "/base"))
	assert.Equal(t, "rel.env", resolvePath("rel.env", ""))
}

func TestFindConfigFile(t *testing.T) {
	t.Run("none present", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := FindConfigFile()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("prefers tracehelper.yaml", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tracehelper.yaml"), []byte("{}"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tracehelper.yaml"), []byte("{}"), 0644))

		path, err := FindConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "tracehelper.yaml", path)
	})
}
