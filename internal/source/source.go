// Package source reads a local directory tree into the file records the
// analyzer consumes, applying the same filters a repository fetch would.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/go-enry/go-enry/v2"
)

// Limits bounds how much of a tree is loaded.
type Limits struct {
	MaxFiles      int
	MaxFileBytes  int64
	MaxTotalBytes int64
}

// DefaultLimits caps a load at 200 files, 1 MiB per file and 10 MiB overall.
func DefaultLimits() Limits {
	return Limits{
		MaxFiles:      200,
		MaxFileBytes:  1 << 20,
		MaxTotalBytes: 10 << 20,
	}
}

var textExtensions = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".java": true,
	".cpp": true, ".c": true, ".cs": true, ".php": true, ".rb": true, ".go": true,
	".rs": true, ".swift": true, ".kt": true, ".scala": true, ".html": true, ".css": true,
	".scss": true, ".sass": true, ".json": true, ".xml": true, ".yaml": true, ".yml": true,
	".md": true, ".txt": true, ".sql": true, ".sh": true, ".bat": true, ".ps1": true,
	".dockerfile": true, ".gitignore": true, ".env": true, ".config": true, ".ini": true,
	".toml": true,
}

var skipDirs = map[string]bool{
	"node_modules": true, "__pycache__": true, ".git": true, ".vscode": true, ".idea": true,
	"venv": true, ".venv": true, "env": true, "build": true, "dist": true, "target": true,
	"bin": true, "obj": true, "logs": true, "tmp": true, "temp": true, "cache": true,
	".next": true, ".nuxt": true,
}

// allowedHidden are dotfiles kept even though hidden paths are skipped.
var allowedHidden = map[string]bool{
	".env": true, ".gitignore": true, ".dockerignore": true, ".eslintrc": true, ".prettierrc": true,
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxFiles <= 0 {
		l.MaxFiles = d.MaxFiles
	}
	if l.MaxFileBytes <= 0 {
		l.MaxFileBytes = d.MaxFileBytes
	}
	if l.MaxTotalBytes <= 0 {
		l.MaxTotalBytes = d.MaxTotalBytes
	}
	return l
}

// Stats describes what a load kept and why it stopped.
type Stats struct {
	Files      int
	TotalBytes int64
	Skipped    int
	Truncated  bool
}

// LoadDir walks root and returns its text files sorted by path. Names are
// slash-separated and relative to root. Zero limits take the defaults.
func LoadDir(ctx context.Context, root string, limits Limits) ([]domain.FileRecord, Stats, error) {
	var stats Stats
	info, err := os.Stat(root)
	if err != nil {
		return nil, stats, fmt.Errorf("load %s: %w", root, domain.ErrInvalidInput)
	}
	if !info.IsDir() {
		return nil, stats, fmt.Errorf("load %s: not a directory: %w", root, domain.ErrInvalidInput)
	}

	var files []domain.FileRecord
	limits = limits.withDefaults()
	errStop := errors.New("limit reached")
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".") || enry.IsVendor(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !wanted(rel, d.Name()) {
			stats.Skipped++
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.Size() > limits.MaxFileBytes {
			stats.Skipped++
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		if enry.IsBinary(content) {
			stats.Skipped++
			return nil
		}

		files = append(files, domain.FileRecord{
			Name:         rel,
			Content:      string(content),
			DeclaredType: mimeType(rel, content),
		})
		stats.Files++
		stats.TotalBytes += int64(len(content))

		if stats.Files >= limits.MaxFiles || stats.TotalBytes > limits.MaxTotalBytes {
			stats.Truncated = true
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return nil, stats, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, stats, nil
}

func wanted(rel, name string) bool {
	if strings.HasPrefix(name, ".") {
		return allowedHidden[name]
	}
	if enry.IsVendor(rel) || enry.IsDotFile(rel) {
		return false
	}
	return textExtensions[strings.ToLower(filepath.Ext(name))]
}

func mimeType(rel string, content []byte) string {
	lang := enry.GetLanguage(filepath.Base(rel), content)
	return enry.GetMIMEType(rel, lang)
}
