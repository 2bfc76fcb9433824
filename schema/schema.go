// Package schema holds the default TagBox schema script.
package schema

import _ "embed"

// FileName is the name initdb looks for next to its executable.
const FileName = "init-database.sql"

// Default is the contents of init-database.sql.
//
//go:embed init-database.sql
var Default string

// Tables lists the tables Default creates, sorted by name.
var Tables = []string{
	"author_aliases",
	"authors",
	"categories",
	"file_access_stats",
	"file_authors",
	"file_history",
	"file_links",
	"file_metadata",
	"file_tags",
	"files",
	"system_config",
	"tags",
}
