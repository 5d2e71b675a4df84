package aspects

import (
	"strings"

	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/domain"
)

// AnalyzeFrontend inspects the frontend bucket: components, stylesheets,
// routing and state management.
func AnalyzeFrontend(in *Input) domain.FrontendAnalysis {
	out := domain.FrontendAnalysis{
		Components:      []domain.Component{},
		Styles:          []domain.Stylesheet{},
		RoutingFiles:    []string{},
		StateManagement: []string{},
		FrameworksUsed:  in.Frameworks.Intersect(catalog.FrontendFrameworks),
	}
	for _, f := range in.Partition.Frontend {
		lowerName := strings.ToLower(f.Name)
		if containsAny(componentExts...)(lowerName) {
			out.Components = append(out.Components, domain.Component{
				Name:    f.Name,
				Type:    "Component",
				Exports: ExtractExports(f.Content),
				Imports: ExtractImports(f.Content),
			})
		}
		if containsAny(styleExts...)(lowerName) {
			out.Styles = append(out.Styles, domain.Stylesheet{
				Name:    f.Name,
				Type:    "Stylesheet",
				Classes: ExtractCSSClasses(f.Content),
			})
		}
		lowerContent := strings.ToLower(f.Content)
		if containsAny(routingMarkers...)(lowerContent) {
			out.RoutingFiles = append(out.RoutingFiles, f.Name)
		}
		if containsAny(stateMarkers...)(lowerContent) {
			out.StateManagement = append(out.StateManagement, f.Name)
		}
	}
	return out
}
