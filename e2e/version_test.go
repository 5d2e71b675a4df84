package e2e

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestVersionFlagOutputsInjectedVersion(t *testing.T) {
	t.Parallel()

	const injected = "e2e-smoke"
	repoRoot, binaryPath := buildCLIBinary(t, "-ldflags", "-X github.com/getlawrence/techprofile/cmd.Version="+injected)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, binaryPath, "--version")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("running --version failed: %v\n%s", err, string(out))
	}
	if !strings.Contains(string(out), injected) {
		t.Fatalf("expected version output to contain %q, got: %q", injected, string(out))
	}
}
