package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations_OrderAndFiltering(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_doctors.sql", "CREATE TABLE doctor ();")
	writeMigration(t, dir, "001_core.sql", "CREATE TABLE admin_account ();")
	writeMigration(t, dir, "010_prescriptions.sql", "CREATE TABLE prescription ();")
	writeMigration(t, dir, "README.md", "not a migration")
	writeMigration(t, dir, "notes.sql", "no numeric prefix")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	wantVersions := []int{1, 2, 10}
	for i, want := range wantVersions {
		if migrations[i].Version != want {
			t.Errorf("position %d: expected version %d, got %d", i, want, migrations[i].Version)
		}
	}
	if migrations[0].SQL != "CREATE TABLE admin_account ();" {
		t.Errorf("unexpected SQL for first migration: %q", migrations[0].SQL)
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	m := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := m.LoadMigrations(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
