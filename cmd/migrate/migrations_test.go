package main

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsPaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		t.Fatal(err)
	}

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}

	if len(ups) == 0 {
		t.Fatal("no migrations embedded")
	}
	for v := range ups {
		if !downs[v] {
			t.Errorf("%s has no down migration", v)
		}
	}
}

func TestCreateScansMatchesStore(t *testing.T) {
	data, err := fs.ReadFile(migrations, "migrations/000001_create_scans.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	sql := string(data)
	for _, col := range []string{"id UUID", "user_id TEXT", "soil_type", "confidence", "report JSONB", "image_key", "created_at"} {
		if !strings.Contains(sql, col) {
			t.Errorf("scans table missing %q", col)
		}
	}
}

func TestResolveDSNPrecedence(t *testing.T) {
	t.Setenv(envDSN, "postgres://env")

	if got, _ := resolveDSN("postgres://flag"); got != "postgres://flag" {
		t.Errorf("flag dsn = %s", got)
	}
	if got, _ := resolveDSN(""); got != "postgres://env" {
		t.Errorf("env dsn = %s", got)
	}
}
