package sqlite

import "testing"

func TestMigrateUp(t *testing.T) {
	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close() //nolint:errcheck

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	version, err := MigrationVersion(db)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if version < 1 {
		t.Errorf("version = %d, want >= 1", version)
	}

	for _, table := range []string{"user", "restaurant", "orders"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not created: %v", table, err)
		}
	}
}

func TestMigrateUpIdempotent(t *testing.T) {
	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close() //nolint:errcheck

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
