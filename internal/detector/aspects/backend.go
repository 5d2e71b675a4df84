package aspects

import (
	"strings"

	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/domain"
)

// AnalyzeBackend inspects the backend bucket for endpoints, models and middleware.
func AnalyzeBackend(in *Input) domain.BackendAnalysis {
	out := domain.BackendAnalysis{
		APIFiles:       []domain.APIFile{},
		Models:         []domain.ModelFile{},
		Middleware:     []string{},
		FrameworksUsed: in.Frameworks.Intersect(catalog.BackendAPIFrameworks),
		DatabasesUsed:  in.Databases.Items(),
	}
	for _, f := range in.Partition.Backend {
		if endpoints := ExtractEndpoints(f.Content); len(endpoints) > 0 {
			out.APIFiles = append(out.APIFiles, domain.APIFile{File: f.Name, Endpoints: endpoints})
		}
		lowerName := strings.ToLower(f.Name)
		if strings.Contains(lowerName, "model") || strings.Contains(lowerName, "schema") {
			out.Models = append(out.Models, domain.ModelFile{File: f.Name, Models: ExtractClasses(f.Content)})
		}
		if strings.Contains(strings.ToLower(f.Content), "middleware") {
			out.Middleware = append(out.Middleware, f.Name)
		}
	}
	return out
}
