package assistant

import (
	"fmt"
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
)

const (
	routeSystemPrompt = "You are an expert software architect and code analyst. Provide detailed, technical explanations about software projects."
	querySystemPrompt = "You are an expert software developer and project analyst. Answer questions about software projects with detailed, accurate information based on the provided context."
)

var routeFocus = map[string][]string{
	"overview": {
		"Provide a comprehensive overview of this software project. Include:",
		"Project purpose and functionality",
		"Key technologies and their roles",
		"Overall architecture and design patterns",
		"Main components and their interactions",
		"Development approach and best practices used",
	},
	"frontend": {
		"Analyze the frontend aspects of this project. Focus on:",
		"Frontend framework and libraries used",
		"UI/UX architecture and component structure",
		"State management approach",
		"Styling methodology (CSS, preprocessors, frameworks)",
		"Build tools and development workflow",
		"Browser compatibility and performance considerations",
	},
	"backend": {
		"Analyze the backend aspects of this project. Focus on:",
		"Backend framework and server architecture",
		"API design and endpoints structure",
		"Database integration and data models",
		"Authentication and authorization mechanisms",
		"Middleware and request processing",
		"Error handling and logging strategies",
	},
	"database": {
		"Analyze the database and data management aspects. Focus on:",
		"Database type and technology used",
		"Data models and schema design",
		"Database connections and ORM/ODM usage",
		"Data validation and constraints",
		"Query optimization and indexing",
		"Data migration and seeding strategies",
	},
	"architecture": {
		"Analyze the overall system architecture. Focus on:",
		"Architectural patterns and design principles",
		"System components and their relationships",
		"Data flow and communication patterns",
		"Scalability and performance considerations",
		"Security architecture and measures",
		"Deployment and infrastructure setup",
	},
	"flow": {
		"Describe the project workflow and data flow. Focus on:",
		"User journey and interaction flow",
		"Request/response cycle",
		"Data processing pipeline",
		"Component communication and events",
		"Business logic flow",
		"Integration points with external services",
	},
}

func projectContext(res *domain.AnalysisResult) string {
	return fmt.Sprintf("Project Context:\n- Main Language: %s\n- Framework: %s\n- Technologies: %s\n- Architecture: %s\n",
		orDefault(res.MainLanguage, "Unknown"),
		orDefault(res.Framework, "Not specified"),
		strings.Join(res.Technologies, ", "),
		orDefault(string(res.ArchitectureType), "Unknown"))
}

// RoutePrompt builds the model prompt for one aspect. Unknown routes get a
// generic request about that aspect.
func RoutePrompt(route string, res *domain.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(projectContext(res))
	b.WriteString("\n")
	focus, ok := routeFocus[route]
	if !ok {
		fmt.Fprintf(&b, "Provide detailed information about the %s aspect of this project.", route)
		return b.String()
	}
	b.WriteString(focus[0])
	for i, item := range focus[1:] {
		fmt.Fprintf(&b, "\n%d. %s", i+1, item)
	}
	return b.String()
}

// QueryPrompt builds the prompt for a free-form question. At most three
// relevant documents are included; known lines are stored summary and
// structure records.
func QueryPrompt(question string, res *domain.AnalysisResult, route string, relevant []string, known ...string) string {
	if len(relevant) > 3 {
		relevant = relevant[:3]
	}
	code := "No specific code context available"
	if len(relevant) > 0 {
		code = strings.Join(relevant, "\n")
	}
	stored := ""
	if len(known) > 0 {
		stored = "Stored Project Knowledge:\n" + strings.Join(known, "\n") + "\n\n"
	}
	return fmt.Sprintf("Project Information:\n- Main Language: %s\n- Framework: %s\n- Technologies: %s\n- Architecture: %s\n- Current Focus: %s\n\n%sRelevant Code Context:\n%s\n\nUser Question: %s\n\nPlease provide a detailed, technical answer based on the project context above.",
		orDefault(res.MainLanguage, "Unknown"),
		orDefault(res.Framework, "Not specified"),
		strings.Join(res.Technologies, ", "),
		orDefault(string(res.ArchitectureType), "Unknown"),
		route, stored, code, question)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
