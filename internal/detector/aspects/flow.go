package aspects

import (
	"github.com/getlawrence/techprofile/internal/domain"
)

const maxHierarchyFiles = 10

// AnalyzeFlow tags data-flow and request-flow markers across every file and
// lists the component files.
func AnalyzeFlow(in *Input) domain.FlowAnalysis {
	data := domain.NewTechnologySet()
	request := domain.NewTechnologySet()
	components := []string{}

	for _, f := range in.Files {
		for _, m := range FlowMarkers {
			if !m.Match(f.Content) {
				continue
			}
			if m.Group == DataFlow {
				data.Add(m.Tag)
			} else {
				request.Add(m.Tag)
			}
		}
		if isComponentFile(f.Name) {
			components = append(components, f.Name)
		}
	}

	listed := components
	if len(listed) > maxHierarchyFiles {
		listed = listed[:maxHierarchyFiles]
	}
	return domain.FlowAnalysis{
		DataFlow:    data.Items(),
		RequestFlow: request.Items(),
		ComponentHierarchy: domain.ComponentHierarchy{
			TotalComponents: len(components),
			ComponentFiles:  listed,
		},
	}
}
