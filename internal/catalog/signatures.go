package catalog

import (
	"fmt"
	"regexp"
)

// Kind separates framework signatures from database signatures.
type Kind string

const (
	KindFramework Kind = "framework"
	KindDatabase  Kind = "database"
)

// Signature is a technology name with the lexical patterns that evidence it.
// Patterns are regular expressions matched case-insensitively anywhere in a file.
type Signature struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// Frameworks returns the built-in framework signatures in evaluation order.
// Names must stay in sync with FrontendFrameworks and BackendFrameworks.
func Frameworks() []Signature {
	return []Signature{
		{Name: "React", Kind: KindFramework, Patterns: []string{`import.*react`, `from ['"]react['"]`, `React\.`}},
		{Name: "Vue", Kind: KindFramework, Patterns: []string{`import.*vue`, `from ['"]vue['"]`, `Vue\.`}},
		{Name: "Angular", Kind: KindFramework, Patterns: []string{`@angular`, `import.*@angular`, `ng-`}},
		{Name: "Express", Kind: KindFramework, Patterns: []string{`express\(\)`, `require\(['"]express['"]`, `import.*express`}},
		{Name: "Django", Kind: KindFramework, Patterns: []string{`from django`, `import django`, `django\.`}},
		{Name: "Flask", Kind: KindFramework, Patterns: []string{`from flask`, `import flask`, `Flask\(`}},
		{Name: "FastAPI", Kind: KindFramework, Patterns: []string{`from fastapi`, `import fastapi`, `FastAPI\(`}},
		{Name: "Spring", Kind: KindFramework, Patterns: []string{`@SpringBootApplication`, `import.*springframework`, `@RestController`}},
		{Name: "Laravel", Kind: KindFramework, Patterns: []string{`use Illuminate`, `Illuminate\\`, `<?php.*laravel`}},
		{Name: "Rails", Kind: KindFramework, Patterns: []string{`require ['"]rails['"]`, `Rails\.`, `class.*< ApplicationController`}},
	}
}

// Databases returns the built-in database signatures in evaluation order.
func Databases() []Signature {
	return []Signature{
		{Name: "MongoDB", Kind: KindDatabase, Patterns: []string{`mongoose`, `mongodb://`, `MongoClient`, `from pymongo`}},
		{Name: "PostgreSQL", Kind: KindDatabase, Patterns: []string{`postgresql://`, `psycopg2`, `pg_`, `PostgreSQL`}},
		{Name: "MySQL", Kind: KindDatabase, Patterns: []string{`mysql://`, `pymysql`, `mysql2`, `MySQL`}},
		{Name: "SQLite", Kind: KindDatabase, Patterns: []string{`sqlite3`, `\.db\n?$`, `sqlite://`}},
		{Name: "Redis", Kind: KindDatabase, Patterns: []string{`redis://`, `import redis`, `Redis\(`}},
		{Name: "Firebase", Kind: KindDatabase, Patterns: []string{`firebase`, `firestore`, `Firebase`}},
	}
}

// CompiledSignature is a Signature with its patterns ready for matching.
type CompiledSignature struct {
	Signature
	matchers []*regexp.Regexp
}

// Matches reports whether any pattern is found in content. Evaluation stops at
// the first satisfied pattern.
func (c CompiledSignature) Matches(content string) bool {
	for _, re := range c.matchers {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// Compile prepares a signature for case-insensitive matching.
func Compile(sig Signature) (CompiledSignature, error) {
	if sig.Name == "" {
		return CompiledSignature{}, fmt.Errorf("signature has no name")
	}
	if sig.Kind != KindFramework && sig.Kind != KindDatabase {
		return CompiledSignature{}, fmt.Errorf("signature %q: unknown kind %q", sig.Name, sig.Kind)
	}
	cs := CompiledSignature{Signature: sig}
	for _, p := range sig.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return CompiledSignature{}, fmt.Errorf("signature %q: pattern %q: %w", sig.Name, p, err)
		}
		cs.matchers = append(cs.matchers, re)
	}
	return cs, nil
}
