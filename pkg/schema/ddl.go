package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model interface{}, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Person DDL methods
func (p Person) TableDDL() string {
	return generateDDL(p, "people")
}

// IndexDDL returns the search indexes the optimizer builds after data
// is loaded: trigram and full-text GIN indexes for name matching, a
// GIST index over the geometry column, and a containment index over
// the metadata document. The full-text expression must stay identical
// to the one used by search queries or the planner will not use it.
func (p Person) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_people_name_normal_trgm ON people USING gin (name_normal gin_trgm_ops);",
		"CREATE INDEX IF NOT EXISTS idx_people_fulltext ON people USING gin (to_tsvector('simple', name || ' ' || coalesce(summary, '')));",
		"CREATE INDEX IF NOT EXISTS idx_people_geom ON people USING gist (geom);",
		"CREATE INDEX IF NOT EXISTS idx_people_meta_data ON people USING gin (meta_data jsonb_path_ops);",
		"CREATE INDEX IF NOT EXISTS idx_people_view_count ON people (view_count);",
	}
}

func (p Person) TableName() string {
	return "people"
}

// ImportLog DDL methods
func (il ImportLog) TableDDL() string {
	return generateDDL(il, "import_logs")
}

func (il ImportLog) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_import_logs_created_at ON import_logs (created_at);",
	}
}

func (il ImportLog) TableName() string {
	return "import_logs"
}
