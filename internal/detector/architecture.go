package detector

import (
	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/domain"
)

// InferArchitecture applies the fixed decision order: full-stack, frontend,
// backend, static website, unknown.
func InferArchitecture(frameworks domain.TechnologySet, languages domain.LanguageHistogram) domain.ArchitectureType {
	hasFrontend := len(frameworks.Intersect(catalog.FrontendFrameworks)) > 0
	hasBackend := len(frameworks.Intersect(catalog.BackendFrameworks)) > 0
	switch {
	case hasFrontend && hasBackend:
		return domain.ArchitectureFullStack
	case hasFrontend:
		return domain.ArchitectureFrontend
	case hasBackend:
		return domain.ArchitectureBackend
	case languages.Has("HTML") && languages.Has("CSS"):
		return domain.ArchitectureStaticWebsite
	default:
		return domain.ArchitectureUnknown
	}
}

const maxComplexityScore = 10.0

// ComplexityScore maps a total line count onto [0, 10].
func ComplexityScore(totalLines int) float64 {
	score := float64(totalLines) / 1000.0
	if score > maxComplexityScore {
		return maxComplexityScore
	}
	if score < 0 {
		return 0
	}
	return score
}
