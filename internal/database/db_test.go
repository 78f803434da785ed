package database

import (
	"slices"
	"testing"
	"testing/fstest"
)

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_index_latest.up.sql":   {Data: []byte("SELECT 2")},
		"001_index_points.up.sql":   {Data: []byte("SELECT 1")},
		"001_index_points.down.sql": {Data: []byte("DROP")},
		"README.md":                 {Data: []byte("docs")},
	}

	got, err := PendingMigrations(fsys, map[string]bool{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"001_index_points.up.sql", "002_index_latest.up.sql"}
	if !slices.Equal(got, want) {
		t.Errorf("pending = %q, want %q", got, want)
	}

	got, err = PendingMigrations(fsys, map[string]bool{"001_index_points.up.sql": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"002_index_latest.up.sql"}) {
		t.Errorf("pending = %q, want only 002", got)
	}
}
