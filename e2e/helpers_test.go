package e2e

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// findRepoRoot walks up from the working directory to the directory holding go.mod.
func findRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not locate go.mod from %s", dir)
		}
		dir = parent
	}
}

// buildCLIBinary builds the CLI into a temp dir and returns (repoRoot, binaryPath).
// Extra arguments are passed to go build.
func buildCLIBinary(t *testing.T, buildArgs ...string) (string, string) {
	t.Helper()
	repoRoot := findRepoRoot(t)
	binaryName := "techprofile"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(t.TempDir(), binaryName)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	args := append([]string{"build", "-o", binaryPath}, buildArgs...)
	cmd := exec.CommandContext(ctx, "go", append(args, ".")...)
	cmd.Dir = repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, string(out))
	}
	return repoRoot, binaryPath
}

// isolatedEnv keeps the user's config, model key and database out of the run.
func isolatedEnv(t *testing.T, cmd *exec.Cmd) []string {
	return append(cmd.Environ(), "HOME="+t.TempDir(), "GEMINI_API_KEY=", "GOOGLE_API_KEY=", "TECHPROFILE_DATABASE_URL=")
}

// waitForURL polls url until it answers 2xx or the attempts run out.
func waitForURL(url string, attempts int, backoff time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	var lastErr error
	for i := 0; i < attempts; i++ {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return nil
			}
			err = fmt.Errorf("unexpected status %s", resp.Status)
		}
		lastErr = err
		time.Sleep(backoff)
	}
	return lastErr
}
