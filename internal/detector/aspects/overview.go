package aspects

import (
	"strings"

	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/domain"
)

// AnalyzeOverview scans every file, regardless of bucket.
func AnalyzeOverview(in *Input) domain.OverviewAnalysis {
	out := domain.OverviewAnalysis{
		KeyFiles:    []domain.KeyFile{},
		EntryPoints: []string{},
	}
	for _, f := range in.Files {
		lower := strings.ToLower(f.Name)
		if containsAny(keyFileKeywords...)(lower) {
			out.KeyFiles = append(out.KeyFiles, domain.KeyFile{
				Name:         f.Name,
				Purpose:      FilePurpose(f.Name),
				Lines:        f.Lines(),
				Dependencies: ExtractDependencies(f.Content, catalog.LanguageFor(f.Name)),
			})
		}
		if containsAny(entryPointMarkers...)(f.Content) {
			out.EntryPoints = append(out.EntryPoints, f.Name)
		}
	}
	out.ProjectType = ProjectType(in.Frameworks, in.Languages)
	out.ComplexityIndicators = Indicators(in.Files)
	return out
}

// FilePurpose labels a file by the first purpose keyword its name contains.
func FilePurpose(name string) string {
	lower := strings.ToLower(name)
	for _, r := range purposeRules {
		if strings.Contains(lower, r.keyword) {
			return r.purpose
		}
	}
	return "Source file"
}

var projectAPIFrameworks = map[string]bool{"Django": true, "Flask": true, "FastAPI": true, "Express": true}

// ProjectType is a coarse label used by the overview aspect.
func ProjectType(frameworks domain.TechnologySet, languages domain.LanguageHistogram) string {
	switch {
	case len(frameworks.Intersect(catalog.FrontendFrameworks)) > 0:
		return "Frontend Application"
	case len(frameworks.Intersect(projectAPIFrameworks)) > 0:
		return "Backend API"
	case languages.Has("HTML") && languages.Has("CSS"):
		return "Web Application"
	default:
		return "Software Project"
	}
}

// Indicators summarizes file and line counts for the overview aspect.
func Indicators(files []domain.FileRecord) domain.ComplexityIndicators {
	total := 0
	for _, f := range files {
		total += f.Lines()
	}
	avg := 0
	if len(files) > 0 {
		avg = total / len(files)
	}
	return domain.ComplexityIndicators{
		TotalFiles:      len(files),
		TotalLines:      total,
		AvgLinesPerFile: avg,
		ComplexityLevel: complexityLevel(total),
	}
}

func complexityLevel(totalLines int) string {
	switch {
	case totalLines < 1000:
		return "Low"
	case totalLines < 5000:
		return "Medium"
	default:
		return "High"
	}
}
