package assistant

import (
	"fmt"
	"html"
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
)

var (
	frontendTechs = map[string]bool{"React": true, "Vue": true, "Angular": true, "HTML": true, "CSS": true, "JavaScript": true, "TypeScript": true}
	backendTechs  = map[string]bool{"Python": true, "Node.js": true, "Express": true, "Django": true, "Flask": true, "FastAPI": true, "Java": true, "Spring": true}
	databaseTechs = map[string]bool{"MongoDB": true, "PostgreSQL": true, "MySQL": true, "SQLite": true, "Redis": true}
)

func isDatabaseTech(t string) bool {
	return databaseTechs[t] || strings.Contains(strings.ToUpper(t), "DB")
}

func listItems(techs []string, keep func(string) bool) string {
	var b strings.Builder
	for _, t := range techs {
		if keep == nil || keep(t) {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(t))
		}
	}
	return b.String()
}

// FallbackRouteInfo renders an HTML description of one aspect from the
// analysis alone.
func FallbackRouteInfo(route string, res *domain.AnalysisResult) string {
	lang := html.EscapeString(orDefault(res.MainLanguage, "Unknown"))
	fw := html.EscapeString(res.Framework)
	arch := html.EscapeString(string(res.ArchitectureType))

	switch route {
	case "overview":
		out := fmt.Sprintf("<h3>Project Overview</h3>\n<p>This project is primarily built with <strong>%s</strong> and uses the following technologies:</p>\n<ul>%s</ul>\n",
			lang, listItems(res.Technologies, nil))
		if fw != "" {
			out += fmt.Sprintf("<p>The project uses the <strong>%s</strong> framework as its main foundation.</p>\n", fw)
		}
		return out + fmt.Sprintf("<p>Based on the detected technologies, this appears to be a %s application with %d files analyzed.</p>",
			orDefault(arch, "standard"), res.FilesAnalyzed)
	case "frontend":
		return "<h3>Frontend Analysis</h3>\n<p>Frontend technologies detected in this project:</p>\n<ul>" +
			listItems(res.Technologies, func(t string) bool { return frontendTechs[t] }) +
			"</ul>\n<p>The frontend appears to be built with modern web technologies and follows current development practices.</p>"
	case "backend":
		return "<h3>Backend Analysis</h3>\n<p>Backend technologies and frameworks detected:</p>\n<ul>" +
			listItems(res.Technologies, func(t string) bool { return backendTechs[t] }) +
			"</ul>\n<p>The backend is structured to handle API requests and business logic processing.</p>"
	case "database":
		return "<h3>Database Analysis</h3>\n<p>Database technologies detected in the project:</p>\n<ul>" +
			listItems(res.Technologies, isDatabaseTech) +
			"</ul>\n<p>The project includes database integration for data persistence and management.</p>"
	case "architecture":
		items := fmt.Sprintf("<li>Main Language: %s</li>", lang)
		if fw != "" {
			items += fmt.Sprintf("<li>Primary Framework: %s</li>", fw)
		}
		items += fmt.Sprintf("<li>Total Files: %d</li>", res.FilesAnalyzed)
		return fmt.Sprintf("<h3>Architecture Analysis</h3>\n<p>This project follows a <strong>%s</strong> architecture pattern.</p>\n<p>Key architectural components:</p>\n<ul>%s</ul>",
			orDefault(arch, "standard"), items)
	case "flow":
		techs := res.Technologies
		if len(techs) > 5 {
			techs = techs[:5]
		}
		return fmt.Sprintf("<h3>Project Flow</h3>\n<p>The project follows a typical %s flow pattern.</p>\n<p>Based on the technologies used (%s), the application likely follows standard request-response patterns with proper separation of concerns.</p>",
			orDefault(arch, "application"), html.EscapeString(strings.Join(techs, ", ")))
	default:
		return fmt.Sprintf("<p>Information about %s aspect of the project using %s and related technologies.</p>",
			html.EscapeString(route), lang)
	}
}

// FallbackQuery answers a question without a model.
func FallbackQuery(question string, res *domain.AnalysisResult, route string) string {
	techs := res.Technologies
	if len(techs) > 3 {
		techs = techs[:3]
	}
	return fmt.Sprintf("I understand you're asking about: %q\n\nBased on the project context:\n- Main Language: %s\n- Framework: %s\n- Current Focus: %s\n\nWhile I don't have access to the full AI analysis capabilities right now, I can see that your project uses %s technologies.\n\nFor more detailed analysis, please configure a model API key.",
		question,
		orDefault(res.MainLanguage, "Unknown"),
		orDefault(res.Framework, "Not specified"),
		route,
		strings.Join(techs, ", "))
}
