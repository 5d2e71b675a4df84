package aspects

import (
	"regexp"
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
)

var (
	exportPatterns = []*regexp.Regexp{
		regexp.MustCompile(`export\s+(?:default\s+)?(?:function\s+)?(\w+)`),
		regexp.MustCompile(`export\s*{\s*([^}]+)\s*}`),
	}
	jsImportPatterns = []*regexp.Regexp{
		regexp.MustCompile(`import\s+.*from\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`require\(['"]([^'"]+)['"]\)`),
	}
	pythonImportPatterns = []*regexp.Regexp{
		regexp.MustCompile(`import\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		regexp.MustCompile(`from\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+import`),
	}
	cssClassPattern    = regexp.MustCompile(`\.([a-zA-Z_-][a-zA-Z0-9_-]*)`)
	classPattern       = regexp.MustCompile(`class\s+(\w+)`)
	createTablePattern = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(\w+)`)
	endpointPatterns   = []*regexp.Regexp{
		regexp.MustCompile(`(?i)@app\.(get|post|put|delete|patch)\(['"]([^'"]+)['"]`),
		regexp.MustCompile(`(?i)@router\.(get|post|put|delete|patch)\(['"]([^'"]+)['"]`),
		regexp.MustCompile(`(?i)app\.(get|post|put|delete|patch)\(['"]([^'"]+)['"]`),
	}
)

// ExtractExports returns exported symbol names from JavaScript/TypeScript source.
// Brace lists are split into their individual names.
func ExtractExports(content string) []string {
	out := []string{}
	for _, m := range exportPatterns[0].FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	for _, m := range exportPatterns[1].FindAllStringSubmatch(content, -1) {
		for _, name := range strings.Split(m[1], ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// ExtractImports returns imported module paths, in pattern then source order.
func ExtractImports(content string) []string {
	return submatches(content, jsImportPatterns)
}

// ExtractCSSClasses returns distinct class selectors in first-seen order.
func ExtractCSSClasses(content string) []string {
	return distinct(submatches(content, []*regexp.Regexp{cssClassPattern}))
}

// ExtractEndpoints returns the distinct method/path pairs registered in content.
func ExtractEndpoints(content string) []domain.Endpoint {
	out := []domain.Endpoint{}
	seen := make(map[domain.Endpoint]bool)
	for _, re := range endpointPatterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			ep := domain.Endpoint{Method: strings.ToUpper(m[1]), Path: m[2]}
			if !seen[ep] {
				seen[ep] = true
				out = append(out, ep)
			}
		}
	}
	return out
}

// ExtractClasses returns declared class names.
func ExtractClasses(content string) []string {
	return submatches(content, []*regexp.Regexp{classPattern})
}

// ExtractSQLTables returns table names from CREATE TABLE statements.
func ExtractSQLTables(content string) []string {
	return submatches(content, []*regexp.Regexp{createTablePattern})
}

// ExtractDependencies returns the distinct modules a file imports. Only Python
// and the JavaScript family are understood; other languages yield nothing.
func ExtractDependencies(content, language string) []string {
	switch language {
	case "Python":
		return distinct(submatches(content, pythonImportPatterns))
	case "JavaScript", "TypeScript", "React", "React TypeScript":
		return distinct(submatches(content, jsImportPatterns))
	default:
		return []string{}
	}
}

func submatches(content string, patterns []*regexp.Regexp) []string {
	out := []string{}
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			out = append(out, m[1])
		}
	}
	return out
}

func distinct(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
