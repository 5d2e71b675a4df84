package catalog

import (
	"path"
	"strings"
)

// UnknownLanguage is reported for extensions missing from the language table.
const UnknownLanguage = "Unknown"

var languageByExtension = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "React",
	".ts":    "TypeScript",
	".tsx":   "React TypeScript",
	".java":  "Java",
	".cpp":   "C++",
	".c":     "C",
	".cs":    "C#",
	".php":   "PHP",
	".rb":    "Ruby",
	".go":    "Go",
	".rs":    "Rust",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "SCSS",
	".sass":  "SASS",
	".json":  "JSON",
	".xml":   "XML",
	".yaml":  "YAML",
	".yml":   "YAML",
	".md":    "Markdown",
	".txt":   "Text",
}

// Extension returns the lower-cased suffix of the final path element.
// Dotfiles without a further dot (".env") and names ending in a dot have none.
func Extension(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i:])
}

// LanguageFor maps a file name to its language, or UnknownLanguage.
func LanguageFor(name string) string {
	if lang, ok := languageByExtension[Extension(name)]; ok {
		return lang
	}
	return UnknownLanguage
}
