package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charliek/tracehelper/internal/config"
	"github.com/charliek/tracehelper/internal/constants"
)

// newFlagCmd creates a command bound to the global flags and parses args.
// The globals are restored when the test ends.
func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	origConfig, origAddr := configPath, serviceAddr
	t.Cleanup(func() {
		configPath, serviceAddr = origConfig, origAddr
	})

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVarP(&configPath, "config", "c", constants.DefaultConfigFile, "")
	cmd.Flags().StringVar(&serviceAddr, "addr", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		t.Setenv(config.EnvAddress, "")
		t.Chdir(t.TempDir())

		cfg, err := loadConfig(newFlagCmd(t))
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultServiceAddress, cfg.Service.Address)
	})

	t.Run("reads address from config", func(t *testing.T) {
		t.Setenv(config.EnvAddress, "")
		path := filepath.Join(t.TempDir(), "tracehelper.yaml")
		require.NoError(t, os.WriteFile(path, []byte("service:\n  address: http://analysis:5000\n"), 0644))

		cfg, err := loadConfig(newFlagCmd(t, "--config", path))
		require.NoError(t, err)
		assert.Equal(t, "http://analysis:5000", cfg.Service.Address)
	})

	t.Run("finds alternate config names", func(t *testing.T) {
		t.Setenv(config.EnvAddress, "")
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tracehelper.yml"), []byte("service:\n  address: http://hidden:5000\n"), 0644))

		cfg, err := loadConfig(newFlagCmd(t))
		require.NoError(t, err)
		assert.Equal(t, "http://hidden:5000", cfg.Service.Address)
	})

	t.Run("addr flag wins over env and config", func(t *testing.T) {
		t.Setenv(config.EnvAddress, "http://from-env:5000")
		path := filepath.Join(t.TempDir(), "tracehelper.yaml")
		require.NoError(t, os.WriteFile(path, []byte("service:\n  address: http://analysis:5000\n"), 0644))

		cfg, err := loadConfig(newFlagCmd(t, "--config", path, "--addr", "http://flag:9000"))
		require.NoError(t, err)
		assert.Equal(t, "http://flag:9000", cfg.Service.Address)
	})

	t.Run("env wins over config", func(t *testing.T) {
		t.Setenv(config.EnvAddress, "http://from-env:5000")
		path := filepath.Join(t.TempDir(), "tracehelper.yaml")
		require.NoError(t, os.WriteFile(path, []byte("service:\n  address: http://analysis:5000\n"), 0644))

		cfg, err := loadConfig(newFlagCmd(t, "--config", path))
		require.NoError(t, err)
		assert.Equal(t, "http://from-env:5000", cfg.Service.Address)
	})

	t.Run("explicit missing config is an error", func(t *testing.T) {
		_, err := loadConfig(newFlagCmd(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.yaml")
	})

	t.Run("invalid addr flag is rejected", func(t *testing.T) {
		t.Setenv(config.EnvAddress, "")
		t.Chdir(t.TempDir())

		_, err := loadConfig(newFlagCmd(t, "--addr", "ftp://nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --addr")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, false).Info("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, false).Warn("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, true).Debug("debugging", "request_id", 1)
	assert.Contains(t, buf.String(), "debugging")
	assert.Contains(t, buf.String(), "request_id=1")
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "tracehelper version dev\n", buf.String())
}

func TestExampleCmd(t *testing.T) {
	var buf bytes.Buffer
	exampleCmd.SetOut(&buf)
	t.Cleanup(func() { exampleCmd.SetOut(nil) })

	exampleCmd.Run(exampleCmd, nil)
	assert.Equal(t, constants.ExampleLog+"\n", buf.String())
}
