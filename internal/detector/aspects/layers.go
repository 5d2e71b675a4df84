package aspects

import (
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
)

// AnalyzeArchitecture looks for layering evidence in file names across the
// whole file list.
func AnalyzeArchitecture(in *Input) domain.ArchitectureAnalysis {
	patterns := domain.NewTechnologySet()
	layers := domain.NewTechnologySet()

	lowerNames := make([]string, len(in.Files))
	for i, f := range in.Files {
		lowerNames[i] = strings.ToLower(f.Name)
	}

	for _, rule := range PatternRules {
		for _, name := range lowerNames {
			if strings.Contains(name, rule.Keyword) {
				patterns.Add(rule.Pattern)
				break
			}
		}
	}

	for _, name := range lowerNames {
		if layer, ok := LayerFor(name); ok {
			layers.Add(layer)
		}
	}

	return domain.ArchitectureAnalysis{
		Patterns:             patterns.Items(),
		Layers:               layers.Items(),
		SeparationOfConcerns: layers.Len() > 1,
	}
}

// LayerFor returns the first layer whose keyword appears in the file name.
func LayerFor(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, rule := range LayerRules {
		if containsAny(rule.Keywords...)(lower) {
			return rule.Layer, true
		}
	}
	return "", false
}
