package domain

import "strings"

// FileRecord is one text file handed to the classifier. The pipeline only reads it.
type FileRecord struct {
	Name         string `json:"name"`
	Content      string `json:"content"`
	DeclaredType string `json:"type,omitempty"`
}

// Lines returns the newline-split segment count of the content. An empty file
// counts as one line, and a trailing newline adds an empty final segment.
func (f FileRecord) Lines() int {
	return strings.Count(f.Content, "\n") + 1
}
