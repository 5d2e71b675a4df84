package detector

import (
	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/domain"
)

// FileClassification is the per-file result of the classifier.
type FileClassification struct {
	Name       string
	Language   string
	Lines      int
	Frameworks []string
	Databases  []string
}

// Classifier resolves a file's language and the technologies its content
// evidences. It holds only immutable tables and is safe for concurrent use.
type Classifier struct {
	catalog *catalog.Catalog
}

// NewClassifier returns a classifier over c, or the built-in catalog when c is nil.
func NewClassifier(c *catalog.Catalog) *Classifier {
	if c == nil {
		c = catalog.Default()
	}
	return &Classifier{catalog: c}
}

// Classify never fails; content that matches nothing yields empty technology lists.
func (c *Classifier) Classify(f domain.FileRecord) FileClassification {
	return FileClassification{
		Name:       f.Name,
		Language:   catalog.LanguageFor(f.Name),
		Lines:      f.Lines(),
		Frameworks: matchAll(c.catalog.Frameworks(), f.Content),
		Databases:  matchAll(c.catalog.Databases(), f.Content),
	}
}

func matchAll(sigs []catalog.CompiledSignature, content string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, sig := range sigs {
		if seen[sig.Name] {
			continue
		}
		if sig.Matches(content) {
			seen[sig.Name] = true
			out = append(out, sig.Name)
		}
	}
	return out
}
