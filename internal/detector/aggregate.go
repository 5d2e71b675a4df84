package detector

import (
	"fmt"
	"strings"

	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/domain"
)

// Aggregate is the order-preserving fold of per-file classifications.
type Aggregate struct {
	Languages  domain.LanguageHistogram
	Frameworks domain.TechnologySet
	Databases  domain.TechnologySet
	TotalLines int
	FileCount  int
	structure  []string
}

// Fold adds one classification. Unknown languages are left out of the
// histogram but still count toward lines and the structure listing.
func (a *Aggregate) Fold(c FileClassification) {
	a.FileCount++
	a.TotalLines += c.Lines
	if c.Language != catalog.UnknownLanguage {
		a.Languages.Add(c.Language)
	}
	for _, fw := range c.Frameworks {
		a.Frameworks.Add(fw)
	}
	for _, db := range c.Databases {
		a.Databases.Add(db)
	}
	a.structure = append(a.structure, fmt.Sprintf("%s (%s, %d lines)", c.Name, c.Language, c.Lines))
}

// Structure lists one line per folded file, in fold order.
func (a *Aggregate) Structure() string {
	return strings.Join(a.structure, "\n")
}

// MainLanguage is the most frequent language, ties going to the first seen.
func (a *Aggregate) MainLanguage() string {
	lang, _ := a.Languages.Top()
	return lang
}

// PrimaryFramework is the first framework observed, or "".
func (a *Aggregate) PrimaryFramework() string {
	fw, _ := a.Frameworks.First()
	return fw
}

// Technologies is the deduplicated union of languages, frameworks and
// databases, in that order.
func (a *Aggregate) Technologies() []string {
	all := domain.NewTechnologySet(a.Languages.Names()...)
	for _, fw := range a.Frameworks.Items() {
		all.Add(fw)
	}
	for _, db := range a.Databases.Items() {
		all.Add(db)
	}
	return all.Items()
}
