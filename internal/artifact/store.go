// Package artifact persists exported analysis output, either to an
// S3-compatible bucket or to a local directory.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store persists named blobs grouped by run id.
type Store interface {
	Put(ctx context.Context, runID, path string, content []byte) error
	Get(ctx context.Context, runID, path string) ([]byte, error)
	List(ctx context.Context, runID string) ([]string, error)
	// Location describes where a run's artifacts live, for display.
	Location(runID string) string
}

var ErrNotFound = errors.New("artifact not found")

func validate(runID, path string) (string, string, error) {
	runID = strings.TrimSpace(runID)
	path = strings.TrimSpace(path)
	if runID == "" {
		return "", "", fmt.Errorf("run id is required")
	}
	if strings.Contains(runID, "..") || strings.ContainsAny(runID, `/\`) {
		return "", "", fmt.Errorf("invalid run id %q", runID)
	}
	if path == "" {
		return "", "", fmt.Errorf("path is required")
	}
	path = strings.TrimLeft(path, "/")
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return "", "", fmt.Errorf("invalid artifact path %q", path)
		}
	}
	return runID, path, nil
}

func objectKey(runID, path string) string {
	return runID + "/" + path
}
