package artifact

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getlawrence/techprofile/internal/diagram"
	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/google/uuid"
)

const (
	ResultFile  = "analysis.json"
	SummaryFile = "summary.md"
	DiagramFile = "diagram.mmd"
)

// Export writes the result, its summary and its Mermaid diagram under runID,
// generating an id when runID is empty. It returns the id used.
func Export(ctx context.Context, s Store, runID string, res *domain.AnalysisResult, d diagram.Diagram) (string, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	body, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	for _, item := range []struct {
		path    string
		content []byte
	}{
		{ResultFile, body},
		{SummaryFile, []byte("# Project summary\n\n" + res.Summary + "\n")},
		{DiagramFile, []byte(d.Mermaid + "\n")},
	} {
		if err := s.Put(ctx, runID, item.path, item.content); err != nil {
			return "", fmt.Errorf("export %s: %w", item.path, err)
		}
	}
	return runID, nil
}
