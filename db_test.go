package initdb

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		path     string
		readOnly bool
		want     string
	}{
		{":memory:", false, ":memory:?_foreign_keys=on"},
		{"/data/tagbox.db", false, "file:///data/tagbox.db?_foreign_keys=on"},
		{"/data/tagbox.db", true, "file:///data/tagbox.db?mode=ro&_foreign_keys=on"},
		{"/data/a?b#c%d.db", false, "file:///data/a%3Fb%23c%25d.db?_foreign_keys=on"},
		{"/data/my notes.db", false, "file:///data/my%20notes.db?_foreign_keys=on"},
	}
	for _, tt := range tests {
		got, err := dataSourceName(tt.path, tt.readOnly)
		if err != nil {
			t.Fatalf("dataSourceName(%q): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("dataSourceName(%q, %v) = %q, want %q", tt.path, tt.readOnly, got, tt.want)
		}
	}
}

func TestDataSourceNameRelative(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	got, err := dataSourceName("tagbox.db", false)
	if err != nil {
		t.Fatalf("dataSourceName: %v", err)
	}
	want := "file://" + filepath.ToSlash(filepath.Join(dir, "tagbox.db")) + "?_foreign_keys=on"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestOpenDBReadOnly(t *testing.T) {
	dbPath := tempDBPath(t)
	ctx := context.Background()
	if err := execScript(ctx, dbPath, schemaV1); err != nil {
		t.Fatalf("failed to create db: %v", err)
	}

	db, err := openDB(ctx, dbPath, true)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, "INSERT INTO users (name) VALUES ('bob')"); err == nil {
		t.Fatalf("expected write to a read-only database to fail")
	}
}
