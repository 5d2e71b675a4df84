// Package diagram draws a coarse component graph of an analyzed project as
// node/edge lists and Mermaid text.
package diagram

import (
	"regexp"
	"sort"
	"strings"

	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/domain"
)

type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Type     string   `json:"type" yaml:"type"`
	Position Position `json:"position" yaml:"position"`
}

type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Diagram is the rendered graph.
type Diagram struct {
	Mermaid string `json:"mermaid" yaml:"mermaid"`
	Nodes   []Node `json:"nodes" yaml:"nodes"`
	Edges   []Edge `json:"edges" yaml:"edges"`
}

var (
	frontendPath = regexp.MustCompile(`(?i)(^|/)src/.*\.(jsx?|tsx?)$`)
	backendPath  = regexp.MustCompile(`(?i)(^|/)(server|api|backend)/`)
	dbContent    = regexp.MustCompile(`(?i)(mongodb|postgres|mysql|sqlite|redis|prisma|sequelize|typeorm|psycopg2)`)
)

// Generate builds the diagram from detected technologies, falling back to
// path and content heuristics over files.
func Generate(res *domain.AnalysisResult, files []domain.FileRecord) Diagram {
	frameworks := res.Context.Frameworks
	databases := res.Context.Databases

	hasFrontend := len(frameworks.Intersect(catalog.FrontendFrameworks)) > 0 || hasFrontendFiles(files)
	hasBackend := len(frameworks.Intersect(catalog.BackendFrameworks)) > 0 || hasBackendFiles(files)
	hasDB := databases.Len() > 0 || hasDatabaseFiles(files)

	d := Diagram{
		Nodes: []Node{{ID: "user", Label: "User", Type: "actor", Position: Position{X: 0, Y: 0}}},
		Edges: []Edge{},
	}
	lines := []string{"graph LR", "    user([User])"}

	if hasFrontend {
		d.Nodes = append(d.Nodes, Node{ID: "frontend", Label: "Frontend UI", Type: "component", Position: Position{X: 200}})
		d.Edges = append(d.Edges, Edge{ID: "e1", Source: "user", Target: "frontend", Label: "interacts"})
		lines = append(lines, "    frontend[[Frontend UI]]", "    user -->|interacts| frontend")
	}
	if hasBackend {
		src := "user"
		if hasFrontend {
			src = "frontend"
		}
		d.Nodes = append(d.Nodes, Node{ID: "backend", Label: "Backend API", Type: "service", Position: Position{X: 450}})
		d.Edges = append(d.Edges, Edge{ID: "e2", Source: src, Target: "backend", Label: "HTTP/REST"})
		lines = append(lines, "    backend[(Backend API)]", "    "+src+" -->|HTTP/REST| backend")
	}
	if hasDB {
		d.Nodes = append(d.Nodes, Node{ID: "db", Label: "Database", Type: "database", Position: Position{X: 700}})
		lines = append(lines, "    db[(Database)]")
		if hasBackend {
			d.Edges = append(d.Edges, Edge{ID: "e3", Source: "backend", Target: "db", Label: "CRUD"})
			lines = append(lines, "    backend -->|CRUD| db")
		}
	}

	var badges []string
	if frameworks.Len() > 0 {
		badges = append(badges, "Frameworks: "+strings.Join(sorted(frameworks.Items()), ", "))
	}
	if databases.Len() > 0 {
		badges = append(badges, "Databases: "+strings.Join(sorted(databases.Items()), ", "))
	}
	if res.MainLanguage != "" && res.MainLanguage != catalog.UnknownLanguage {
		badges = append(badges, "Language: "+res.MainLanguage)
	}
	if len(badges) > 0 {
		attach := "user"
		switch {
		case hasFrontend:
			attach = "frontend"
		case hasBackend:
			attach = "backend"
		}
		lines = append(lines, "    note1[/"+strings.Join(badges, " | ")+"/]", "    note1 --- "+attach)
	}

	d.Mermaid = strings.Join(lines, "\n")
	return d
}

func sorted(items []string) []string {
	sort.Strings(items)
	return items
}

func hasFrontendFiles(files []domain.FileRecord) bool {
	for _, f := range files {
		if frontendPath.MatchString(f.Name) {
			return true
		}
	}
	return false
}

func hasBackendFiles(files []domain.FileRecord) bool {
	for _, f := range files {
		if backendPath.MatchString(f.Name) || strings.HasSuffix(f.Name, ".py") {
			return true
		}
	}
	return false
}

func hasDatabaseFiles(files []domain.FileRecord) bool {
	for _, f := range files {
		if dbContent.MatchString(f.Content) || strings.HasSuffix(strings.ToLower(f.Name), ".sql") {
			return true
		}
	}
	return false
}
