package aspects

import (
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
)

// Bucket is the aspect category a file is routed to by name.
type Bucket string

const (
	BucketNone     Bucket = ""
	BucketFrontend Bucket = "frontend"
	BucketBackend  Bucket = "backend"
	BucketDatabase Bucket = "database"
	BucketConfig   Bucket = "config"
)

// BucketRule routes a file when its lower-cased name satisfies Match.
type BucketRule struct {
	Bucket Bucket
	Match  func(lowerName string) bool
}

// BucketRules are evaluated top to bottom; the first match wins.
var BucketRules = []BucketRule{
	{Bucket: BucketFrontend, Match: containsAny(".jsx", ".tsx", ".vue", ".html", ".css", ".scss")},
	{Bucket: BucketBackend, Match: containsAny(".py", ".java", ".php", ".rb", ".go", ".cs")},
	{Bucket: BucketDatabase, Match: containsAny(".sql", ".db", "database", "model")},
	{Bucket: BucketConfig, Match: containsAny(".json", ".yaml", ".yml", ".toml", ".ini", ".env")},
}

// Categorize returns the bucket for a file name, or BucketNone.
func Categorize(name string) Bucket {
	lower := strings.ToLower(name)
	for _, rule := range BucketRules {
		if rule.Match(lower) {
			return rule.Bucket
		}
	}
	return BucketNone
}

// Partition holds the files routed to each bucket, in input order.
type Partition struct {
	Frontend []domain.FileRecord
	Backend  []domain.FileRecord
	Database []domain.FileRecord
	Config   []domain.FileRecord
}

// PartitionFiles routes every file through BucketRules.
func PartitionFiles(files []domain.FileRecord) Partition {
	var p Partition
	for _, f := range files {
		switch Categorize(f.Name) {
		case BucketFrontend:
			p.Frontend = append(p.Frontend, f)
		case BucketBackend:
			p.Backend = append(p.Backend, f)
		case BucketDatabase:
			p.Database = append(p.Database, f)
		case BucketConfig:
			p.Config = append(p.Config, f)
		}
	}
	return p
}

// LayerRule assigns a file to an architectural layer by name keyword.
type LayerRule struct {
	Layer    string
	Keywords []string
}

// LayerRules are evaluated top to bottom; the first match wins.
var LayerRules = []LayerRule{
	{Layer: "Controller Layer", Keywords: []string{"controller"}},
	{Layer: "Service Layer", Keywords: []string{"service"}},
	{Layer: "Data Layer", Keywords: []string{"model", "entity"}},
}

// PatternRule reports an architectural pattern when any file name contains Keyword.
type PatternRule struct {
	Pattern string
	Keyword string
}

var PatternRules = []PatternRule{
	{Pattern: "MVC", Keyword: "controller"},
	{Pattern: "Service Layer", Keyword: "service"},
	{Pattern: "Repository Pattern", Keyword: "repository"},
}

// FlowGroup separates data-flow tags from request-flow tags.
type FlowGroup int

const (
	DataFlow FlowGroup = iota
	RequestFlow
)

// FlowMarker emits Tag for every file whose content satisfies Match.
type FlowMarker struct {
	Group FlowGroup
	Tag   string
	Match func(content string) bool
}

var FlowMarkers = []FlowMarker{
	{Group: DataFlow, Tag: "HTTP API calls", Match: contentHas("fetch(", "axios")},
	{Group: DataFlow, Tag: "State management", Match: contentHas("useState", "state")},
	{Group: DataFlow, Tag: "Component props", Match: contentHas("props")},
	{Group: RequestFlow, Tag: "Route handling", Match: contentHas("@app.route", "@router")},
	{Group: RequestFlow, Tag: "Middleware processing", Match: lowerContentHas("middleware")},
	{Group: RequestFlow, Tag: "Authentication", Match: lowerContentHas("authenticate", "auth")},
}

// purposeRule labels a key file by name keyword.
type purposeRule struct {
	keyword string
	purpose string
}

var purposeRules = []purposeRule{
	{"package.json", "Node.js package configuration"},
	{"requirements.txt", "Python dependencies"},
	{"main", "Application entry point"},
	{"index", "Index/entry file"},
	{"app", "Main application file"},
	{"config", "Configuration file"},
}

var (
	keyFileKeywords   = []string{"main", "index", "app", "server", "package.json", "requirements.txt"}
	entryPointMarkers = []string{"main(", "if __name__", "app.listen"}
	componentExts     = []string{".jsx", ".tsx", ".vue"}
	styleExts         = []string{".css", ".scss", ".sass"}
	routingMarkers    = []string{"router", "route"}
	stateMarkers      = []string{"usestate", "redux", "vuex", "context"}
)

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func contentHas(subs ...string) func(string) bool {
	return containsAny(subs...)
}

func lowerContentHas(subs ...string) func(string) bool {
	match := containsAny(subs...)
	return func(s string) bool { return match(strings.ToLower(s)) }
}

func isComponentFile(name string) bool {
	return containsAny(componentExts...)(strings.ToLower(name))
}
