// Package retrieval keeps an analysis as a set of independently retrievable
// text records so that later questions can be answered with project context.
package retrieval

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/google/uuid"
)

// RecordType tags what a record holds.
type RecordType string

const (
	TypeSummary      RecordType = "summary"
	TypeTechnologies RecordType = "technologies"
	TypeStructure    RecordType = "structure"
	TypeFileContent  RecordType = "file_content"
)

const (
	maxFileRecords    = 50
	maxFileChars      = 2000
	minMeaningfulSize = 50
)

// Record is one stored document with flat string metadata.
type Record struct {
	ID       string            `json:"id"`
	Type     RecordType        `json:"type"`
	Document string            `json:"document"`
	Metadata map[string]string `json:"metadata"`
}

// BuildRecords splits an analysis into records. Files are considered in order;
// only the first 50 are looked at, and those with trivial content are dropped.
func BuildRecords(res *domain.AnalysisResult, files []domain.FileRecord) []Record {
	var out []Record

	out = append(out, Record{
		ID:       newID("summary"),
		Type:     TypeSummary,
		Document: res.Summary,
		Metadata: map[string]string{
			"main_language": res.MainLanguage,
			"framework":     res.Framework,
			"architecture":  string(res.ArchitectureType),
		},
	})

	techJSON, _ := json.Marshal(res.Technologies)
	out = append(out, Record{
		ID:       newID("tech"),
		Type:     TypeTechnologies,
		Document: "Technologies used: " + strings.Join(res.Technologies, ", "),
		Metadata: map[string]string{"technologies": string(techJSON)},
	})

	if res.Structure != "" {
		out = append(out, Record{
			ID:       newID("structure"),
			Type:     TypeStructure,
			Document: "Project structure:\n" + res.Structure,
			Metadata: map[string]string{"file_count": strconv.Itoa(res.FilesAnalyzed)},
		})
	}

	if len(files) > maxFileRecords {
		files = files[:maxFileRecords]
	}
	for _, f := range files {
		if len(strings.TrimSpace(f.Content)) <= minMeaningfulSize {
			continue
		}
		fileType := f.DeclaredType
		if fileType == "" {
			fileType = "unknown"
		}
		out = append(out, Record{
			ID:       newID("file"),
			Type:     TypeFileContent,
			Document: fmt.Sprintf("File: %s\n%s", f.Name, truncate(f.Content, maxFileChars)),
			Metadata: map[string]string{"filename": f.Name, "file_type": fileType},
		})
	}
	return out
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
