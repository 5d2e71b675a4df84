package aspects

import (
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
)

// AnalyzeDatabase extracts SQL tables and migration files from the database bucket.
func AnalyzeDatabase(in *Input) domain.DatabaseAnalysis {
	out := domain.DatabaseAnalysis{
		Schemas:           []domain.SchemaFile{},
		Migrations:        []string{},
		DatabasesDetected: in.Databases.Items(),
	}
	for _, f := range in.Partition.Database {
		lowerName := strings.ToLower(f.Name)
		if strings.Contains(lowerName, ".sql") {
			out.Schemas = append(out.Schemas, domain.SchemaFile{File: f.Name, Tables: ExtractSQLTables(f.Content)})
		}
		if strings.Contains(lowerName, "migration") {
			out.Migrations = append(out.Migrations, f.Name)
		}
	}
	return out
}
