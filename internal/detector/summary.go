package detector

import (
	"fmt"
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
)

const summaryTechnologies = 5

// SummaryInput holds the fields the summary paragraph is rendered from.
type SummaryInput struct {
	Architecture domain.ArchitectureType
	MainLanguage string
	Framework    string
	FileCount    int
	Technologies []string
	Complexity   float64
}

// ComposeSummary renders the one-paragraph project description.
func ComposeSummary(in SummaryInput) string {
	var b strings.Builder

	lang := in.MainLanguage
	if lang == "" {
		lang = "Unknown"
	}
	fmt.Fprintf(&b, "This is a %s project primarily written in %s", strings.ToLower(string(in.Architecture)), lang)
	if in.Framework != "" {
		fmt.Fprintf(&b, " using the %s framework", in.Framework)
	}
	fmt.Fprintf(&b, ". The project contains %d files", in.FileCount)
	if len(in.Technologies) > 0 {
		techs := in.Technologies
		if len(techs) > summaryTechnologies {
			techs = techs[:summaryTechnologies]
		}
		fmt.Fprintf(&b, " and uses technologies including %s", strings.Join(techs, ", "))
	}
	b.WriteString(". ")
	b.WriteString(sizeQualifier(in.Complexity))
	return b.String()
}

func sizeQualifier(score float64) string {
	switch {
	case score < 2:
		return "This appears to be a small to medium-sized project."
	case score < 5:
		return "This appears to be a medium-sized project."
	default:
		return "This appears to be a large and complex project."
	}
}
