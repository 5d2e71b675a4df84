package domain

// Aspect names one analysis dimension.
type Aspect string

const (
	AspectOverview     Aspect = "overview"
	AspectFrontend     Aspect = "frontend"
	AspectBackend      Aspect = "backend"
	AspectDatabase     Aspect = "database"
	AspectArchitecture Aspect = "architecture"
	AspectFlow         Aspect = "flow"
)

// Aspects lists every aspect in presentation order.
var Aspects = []Aspect{AspectOverview, AspectFrontend, AspectBackend, AspectDatabase, AspectArchitecture, AspectFlow}

// DetailedAnalysis holds one independently derived record per aspect.
type DetailedAnalysis struct {
	Overview     OverviewAnalysis     `json:"overview" yaml:"overview"`
	Frontend     FrontendAnalysis     `json:"frontend" yaml:"frontend"`
	Backend      BackendAnalysis      `json:"backend" yaml:"backend"`
	Database     DatabaseAnalysis     `json:"database" yaml:"database"`
	Architecture ArchitectureAnalysis `json:"architecture" yaml:"architecture"`
	Flow         FlowAnalysis         `json:"flow" yaml:"flow"`
}

type OverviewAnalysis struct {
	KeyFiles             []KeyFile            `json:"key_files" yaml:"key_files"`
	EntryPoints          []string             `json:"entry_points" yaml:"entry_points"`
	ProjectType          string               `json:"project_type" yaml:"project_type"`
	ComplexityIndicators ComplexityIndicators `json:"complexity_indicators" yaml:"complexity_indicators"`
}

type KeyFile struct {
	Name         string   `json:"name" yaml:"name"`
	Purpose      string   `json:"purpose" yaml:"purpose"`
	Lines        int      `json:"lines" yaml:"lines"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

type ComplexityIndicators struct {
	TotalFiles      int    `json:"total_files" yaml:"total_files"`
	TotalLines      int    `json:"total_lines" yaml:"total_lines"`
	AvgLinesPerFile int    `json:"avg_lines_per_file" yaml:"avg_lines_per_file"`
	ComplexityLevel string `json:"complexity_level" yaml:"complexity_level"`
}

type FrontendAnalysis struct {
	Components      []Component  `json:"components" yaml:"components"`
	Styles          []Stylesheet `json:"styles" yaml:"styles"`
	RoutingFiles    []string     `json:"routing_files" yaml:"routing_files"`
	StateManagement []string     `json:"state_management" yaml:"state_management"`
	FrameworksUsed  []string     `json:"frameworks_used" yaml:"frameworks_used"`
}

type Component struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Exports []string `json:"exports" yaml:"exports"`
	Imports []string `json:"imports" yaml:"imports"`
}

type Stylesheet struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Classes []string `json:"classes" yaml:"classes"`
}

type BackendAnalysis struct {
	APIFiles       []APIFile   `json:"api_files" yaml:"api_files"`
	Models         []ModelFile `json:"models" yaml:"models"`
	Middleware     []string    `json:"middleware" yaml:"middleware"`
	FrameworksUsed []string    `json:"frameworks_used" yaml:"frameworks_used"`
	DatabasesUsed  []string    `json:"databases_used" yaml:"databases_used"`
}

type APIFile struct {
	File      string     `json:"file" yaml:"file"`
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Endpoint is an HTTP route found by decorator or call-style registration.
type Endpoint struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
}

type ModelFile struct {
	File   string   `json:"file" yaml:"file"`
	Models []string `json:"models" yaml:"models"`
}

type DatabaseAnalysis struct {
	Schemas           []SchemaFile `json:"schemas" yaml:"schemas"`
	Migrations        []string     `json:"migrations" yaml:"migrations"`
	DatabasesDetected []string     `json:"databases_detected" yaml:"databases_detected"`
}

type SchemaFile struct {
	File   string   `json:"file" yaml:"file"`
	Tables []string `json:"tables" yaml:"tables"`
}

type ArchitectureAnalysis struct {
	Patterns             []string `json:"patterns" yaml:"patterns"`
	Layers               []string `json:"layers" yaml:"layers"`
	SeparationOfConcerns bool     `json:"separation_of_concerns" yaml:"separation_of_concerns"`
}

type FlowAnalysis struct {
	DataFlow           []string           `json:"data_flow" yaml:"data_flow"`
	RequestFlow        []string           `json:"request_flow" yaml:"request_flow"`
	ComponentHierarchy ComponentHierarchy `json:"component_hierarchy" yaml:"component_hierarchy"`
}

type ComponentHierarchy struct {
	TotalComponents int      `json:"total_components" yaml:"total_components"`
	ComponentFiles  []string `json:"component_files" yaml:"component_files"`
}
