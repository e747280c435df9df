package integration

import (
	"bytes"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/charliek/tracehelper/internal/api/apitest"
)

// buildBinary builds the tracehelper binary and returns its path
func buildBinary(t *testing.T) string {
	t.Helper()

	// Get project root (two directories up from test/integration)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	projectRoot := filepath.Join(wd, "..", "..")

	binary := filepath.Join(t.TempDir(), "tracehelper")

	cmd := exec.Command("go", "build", "-o", binary, "./cmd/tracehelper")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, output)
	}

	return binary
}

// startService starts a fake analysis service for the duration of the test
func startService(t *testing.T) (*apitest.Server, string) {
	t.Helper()

	svc := apitest.NewServer()
	server := httptest.NewServer(svc.Handler())
	t.Cleanup(server.Close)
	return svc, server.URL
}

// result is the outcome of one binary run
type result struct {
	stdout   string
	stderr   string
	exitCode int
}

// runTracehelper runs the binary in dir with stdin and waits for it to exit
func runTracehelper(t *testing.T, binary, dir, stdin string, args ...string) result {
	t.Helper()

	cmd := exec.Command(binary, args...)
	cmd.Dir = dir
	// Keep the developer's environment out of address resolution
	cmd.Env = append(os.Environ(), "TRACEHELPER_ADDR=", "TRACEHELPER_DOWNLOAD_DIR=", "TRACEHELPER_TIMEOUT=")
	if stdin != "" {
		cmd.Stdin = bytes.NewBufferString(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := result{stdout: stdout.String(), stderr: stderr.String()}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("failed to run tracehelper: %v", err)
		}
		res.exitCode = exitErr.ExitCode()
	}
	return res
}

// requireNoError fails the test if err is not nil
func requireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// skipShort skips the test if -short flag is provided
func skipShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}
