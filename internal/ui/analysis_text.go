package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/techprofile/internal/domain"
)

var titleStyle, sectionStyle lipgloss.Style

func init() { SetColor(true) }

// SetColor switches the report styles between bold/coloured and plain text.
func SetColor(on bool) {
	if !on {
		titleStyle = lipgloss.NewStyle()
		sectionStyle = lipgloss.NewStyle()
		return
	}
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
}

// RenderAnalysis returns a formatted, styled string for the analysis output.
// The detailed flag adds the per-aspect breakdown.
func RenderAnalysis(res *domain.AnalysisResult, detailed bool) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📊 Technology Profile"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 21))
	b.WriteString("\n\n")

	framework := res.Framework
	if framework == "" {
		framework = "none"
	}
	summary := []string{
		fmt.Sprintf("🗣️  Main Language: %s", res.MainLanguage),
		fmt.Sprintf("🧱 Framework: %s", framework),
		fmt.Sprintf("🏗️  Architecture: %s", res.ArchitectureType),
		fmt.Sprintf("📁 Files Analyzed: %d", res.FilesAnalyzed),
		fmt.Sprintf("📏 Total Lines: %d", res.Context.TotalLines),
		fmt.Sprintf("📈 Complexity: %.1f / 10", res.ComplexityScore),
	}
	if repo := res.Context.Repository; repo != nil {
		summary = append([]string{fmt.Sprintf("📂 Repository: %s (%s)", repo.Name, repo.URL)}, summary...)
	}
	b.WriteString(strings.Join(summary, "\n"))
	b.WriteString("\n\n")

	b.WriteString(res.Summary)
	b.WriteString("\n\n")

	if len(res.Technologies) > 0 {
		section(&b, "📦 Technologies")
		for _, t := range res.Technologies {
			fmt.Fprintf(&b, "  • %s\n", t)
		}
		b.WriteString("\n")
	}

	if langs := res.Context.Languages.Entries(); len(langs) > 0 {
		section(&b, "🗣️  Languages")
		for _, l := range langs {
			fmt.Fprintf(&b, "  • %s: %d file(s)\n", l.Language, l.Count)
		}
		b.WriteString("\n")
	}

	if !detailed {
		return b.String()
	}

	if res.Structure != "" {
		section(&b, "🗂️  Structure")
		for _, line := range strings.Split(res.Structure, "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	renderDetailed(&b, res.Detailed)
	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", lipgloss.Width(title)))
	b.WriteString("\n")
}

func list(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, strings.Join(items, ", "))
}

func renderDetailed(b *strings.Builder, d domain.DetailedAnalysis) {
	ov := d.Overview
	section(b, "🔎 Overview")
	fmt.Fprintf(b, "  Project Type: %s\n", ov.ProjectType)
	ci := ov.ComplexityIndicators
	fmt.Fprintf(b, "  Complexity: %s (%d files, %d lines, %d avg)\n",
		ci.ComplexityLevel, ci.TotalFiles, ci.TotalLines, ci.AvgLinesPerFile)
	list(b, "Entry Points", ov.EntryPoints)
	for _, kf := range ov.KeyFiles {
		fmt.Fprintf(b, "  📄 %s (%s, %d lines)\n", kf.Name, kf.Purpose, kf.Lines)
		if len(kf.Dependencies) > 0 {
			fmt.Fprintf(b, "     imports: %s\n", strings.Join(kf.Dependencies, ", "))
		}
	}
	b.WriteString("\n")

	fe := d.Frontend
	if len(fe.Components)+len(fe.Styles)+len(fe.RoutingFiles)+len(fe.StateManagement) > 0 {
		section(b, "🎨 Frontend")
		list(b, "Frameworks", fe.FrameworksUsed)
		for _, c := range fe.Components {
			fmt.Fprintf(b, "  🧩 %s (%s)\n", c.Name, c.Type)
		}
		for _, s := range fe.Styles {
			fmt.Fprintf(b, "  🖌️  %s (%d classes)\n", s.Name, len(s.Classes))
		}
		list(b, "Routing", fe.RoutingFiles)
		list(b, "State", fe.StateManagement)
		b.WriteString("\n")
	}

	be := d.Backend
	if len(be.APIFiles)+len(be.Models)+len(be.Middleware) > 0 {
		section(b, "🛠️  Backend")
		list(b, "Frameworks", be.FrameworksUsed)
		list(b, "Databases", be.DatabasesUsed)
		for _, f := range be.APIFiles {
			fmt.Fprintf(b, "  🔌 %s\n", f.File)
			for _, e := range f.Endpoints {
				fmt.Fprintf(b, "    %s %s\n", e.Method, e.Path)
			}
		}
		for _, m := range be.Models {
			fmt.Fprintf(b, "  🗃️  %s: %s\n", m.File, strings.Join(m.Models, ", "))
		}
		list(b, "Middleware", be.Middleware)
		b.WriteString("\n")
	}

	db := d.Database
	if len(db.Schemas)+len(db.Migrations)+len(db.DatabasesDetected) > 0 {
		section(b, "🗄️  Database")
		list(b, "Detected", db.DatabasesDetected)
		for _, s := range db.Schemas {
			fmt.Fprintf(b, "  📐 %s: %s\n", s.File, strings.Join(s.Tables, ", "))
		}
		list(b, "Migrations", db.Migrations)
		b.WriteString("\n")
	}

	arch := d.Architecture
	section(b, "🏛️  Architecture")
	list(b, "Layers", arch.Layers)
	list(b, "Patterns", arch.Patterns)
	fmt.Fprintf(b, "  Separation of Concerns: %t\n\n", arch.SeparationOfConcerns)

	fl := d.Flow
	section(b, "🔀 Flow")
	list(b, "Data Flow", fl.DataFlow)
	list(b, "Request Flow", fl.RequestFlow)
	fmt.Fprintf(b, "  Components: %d\n", fl.ComponentHierarchy.TotalComponents)
}
