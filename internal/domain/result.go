package domain

// AnalysisResult is the classification artifact every downstream consumer reads.
// String and slice fields are always populated (empty rather than absent).
type AnalysisResult struct {
	Summary          string           `json:"summary" yaml:"summary"`
	Technologies     []string         `json:"technologies" yaml:"technologies"`
	Structure        string           `json:"structure" yaml:"structure"`
	FilesAnalyzed    int              `json:"files_analyzed" yaml:"files_analyzed"`
	MainLanguage     string           `json:"main_language" yaml:"main_language"`
	Framework        string           `json:"framework" yaml:"framework"`
	ArchitectureType ArchitectureType `json:"architecture_type" yaml:"architecture_type"`
	ComplexityScore  float64          `json:"complexity_score" yaml:"complexity_score"`
	Context          AnalysisContext  `json:"context" yaml:"context"`
	Detailed         DetailedAnalysis `json:"detailed_analysis" yaml:"detailed_analysis"`
}

// AnalysisContext carries the aggregate signals the result was derived from.
type AnalysisContext struct {
	Languages  LanguageHistogram `json:"languages" yaml:"languages"`
	Frameworks TechnologySet     `json:"frameworks" yaml:"frameworks"`
	Databases  TechnologySet     `json:"databases" yaml:"databases"`
	TotalLines int               `json:"total_lines" yaml:"total_lines"`
	FileCount  int               `json:"file_count" yaml:"file_count"`
	Repository *RepositoryInfo   `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// RepositoryInfo is optional metadata supplied by whoever fetched the files.
type RepositoryInfo struct {
	URL         string   `json:"url" yaml:"url"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Stars       int      `json:"stars" yaml:"stars"`
	Forks       int      `json:"forks" yaml:"forks"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
	Topics      []string `json:"topics" yaml:"topics"`
}
