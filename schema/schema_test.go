package schema

import (
	"slices"
	"strings"
	"testing"
)

func TestTablesMatchScript(t *testing.T) {
	if !slices.IsSorted(Tables) {
		t.Fatalf("Tables must be sorted: %v", Tables)
	}
	for _, name := range Tables {
		if !strings.Contains(Default, "CREATE TABLE IF NOT EXISTS "+name+" (") {
			t.Errorf("table %s not created by %s", name, FileName)
		}
	}
	if n := strings.Count(Default, "CREATE TABLE"); n != len(Tables) {
		t.Errorf("script creates %d tables, Tables lists %d", n, len(Tables))
	}
}

func TestDefaultSetsSchemaVersion(t *testing.T) {
	if !strings.Contains(Default, "'schema_version'") {
		t.Fatalf("default schema must seed the schema_version marker")
	}
}
