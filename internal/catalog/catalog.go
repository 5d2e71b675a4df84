package catalog

import "fmt"

// FrontendFrameworks and BackendFrameworks are the fixed vocabulary used by
// architecture inference and by downstream diagram rendering.
var (
	FrontendFrameworks = map[string]bool{"React": true, "Vue": true, "Angular": true}
	BackendFrameworks  = map[string]bool{
		"Express": true, "Django": true, "Flask": true, "FastAPI": true,
		"Spring": true, "Laravel": true, "Rails": true,
	}
	// BackendAPIFrameworks is the subset reported by the backend aspect.
	BackendAPIFrameworks = map[string]bool{
		"Django": true, "Flask": true, "FastAPI": true, "Express": true, "Spring": true,
	}
)

// Catalog is an immutable, compiled set of framework and database signatures.
// It is safe for concurrent use.
type Catalog struct {
	frameworks []CompiledSignature
	databases  []CompiledSignature
}

// New compiles the built-in signatures followed by any extra ones. An extra
// signature reusing a built-in name adds patterns for that technology.
func New(extra ...Signature) (*Catalog, error) {
	c := &Catalog{}
	all := append(append(Frameworks(), Databases()...), extra...)
	for _, sig := range all {
		cs, err := Compile(sig)
		if err != nil {
			return nil, err
		}
		switch sig.Kind {
		case KindFramework:
			c.frameworks = append(c.frameworks, cs)
		case KindDatabase:
			c.databases = append(c.databases, cs)
		}
	}
	return c, nil
}

var defaultCatalog = mustNew()

func mustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in signatures: %v", err))
	}
	return c
}

// Default returns the process-wide catalog of built-in signatures.
func Default() *Catalog { return defaultCatalog }

// Frameworks returns the compiled framework signatures in evaluation order.
func (c *Catalog) Frameworks() []CompiledSignature { return c.frameworks }

// Databases returns the compiled database signatures in evaluation order.
func (c *Catalog) Databases() []CompiledSignature { return c.databases }
