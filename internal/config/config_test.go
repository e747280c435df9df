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

// writeConfig writes a config file into a temp dir and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracehelper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultServiceAddress, cfg.Service.Address)
	assert.Equal(t, constants.DefaultRequestTimeout, cfg.RequestTimeout())
	assert.Equal(t, constants.DefaultDownloadDir, cfg.Download.Dir)
	assert.False(t, cfg.Options.IncludeSpans)
	assert.False(t, cfg.Options.Verbose)
}

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
service:
  address: https://traces.internal:8443
  timeout: 5s
download:
  dir: /tmp/queries
options:
  include_spans: true
  verbose: true
env_file: .env
`))
	require.NoError(t, err)

	assert.Equal(t, "https://traces.internal:8443", cfg.Service.Address)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "/tmp/queries", cfg.Download.Dir)
	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Equal(t, domain.SubmissionOptions{IncludeSpans: true, Verbose: true}, cfg.SubmissionOptions())
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("service: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing yaml")
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoad_ResolvesEnvFileRelativeToConfig(t *testing.T) {
	path := writeConfig(t, "env_file: local.env\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "local.env"), cfg.EnvFile)
}

func TestLoad_RejectsWorldWritable(t *testing.T) {
	path := writeConfig(t, "service:\n  address: http://localhost:5000\n")
	require.NoError(t, os.Chmod(path, 0666))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure permissions")
}
