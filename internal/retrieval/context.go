package retrieval

import (
	"context"
	"fmt"
)

// ProjectContext is the slice of stored knowledge handed to the assistant.
type ProjectContext struct {
	Summary       []string `json:"summary"`
	Technologies  []string `json:"technologies"`
	Structure     []string `json:"structure"`
	RelevantFiles []string `json:"relevant_files"`
}

// Empty reports whether nothing was found.
func (c ProjectContext) Empty() bool {
	return len(c.Summary) == 0 && len(c.Technologies) == 0 && len(c.Structure) == 0 && len(c.RelevantFiles) == 0
}

// GatherContext collects the latest summary, technologies and structure
// records plus the three documents most relevant to query.
func GatherContext(ctx context.Context, s Store, query string) (ProjectContext, error) {
	out := ProjectContext{
		Summary:       []string{},
		Technologies:  []string{},
		Structure:     []string{},
		RelevantFiles: []string{},
	}
	for _, part := range []struct {
		t    RecordType
		dest *[]string
	}{
		{TypeSummary, &out.Summary},
		{TypeTechnologies, &out.Technologies},
		{TypeStructure, &out.Structure},
	} {
		recs, err := s.ByType(ctx, part.t, 1)
		if err != nil {
			return out, fmt.Errorf("gather %s: %w", part.t, err)
		}
		*part.dest = documents(recs)
	}
	recs, err := s.Search(ctx, query, 3)
	if err != nil {
		return out, fmt.Errorf("search context: %w", err)
	}
	out.RelevantFiles = documents(recs)
	return out, nil
}

// Known returns the stored summary, technologies and structure documents in
// that order.
func (c ProjectContext) Known() []string {
	out := make([]string, 0, len(c.Summary)+len(c.Technologies)+len(c.Structure))
	out = append(out, c.Summary...)
	out = append(out, c.Technologies...)
	return append(out, c.Structure...)
}

// Stats counts stored records per type.
func Stats(ctx context.Context, s Store) (map[RecordType]int, error) {
	out := make(map[RecordType]int)
	for _, t := range []RecordType{TypeSummary, TypeTechnologies, TypeStructure, TypeFileContent} {
		recs, err := s.ByType(ctx, t, 0)
		if err != nil {
			return nil, err
		}
		out[t] = len(recs)
	}
	return out, nil
}

func documents(recs []Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Document)
	}
	return out
}
