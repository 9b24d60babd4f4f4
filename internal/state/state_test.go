package state

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := initSchema(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

func TestGetSession_Empty(t *testing.T) {
	db := setupTestDB(t)

	s, err := getSession(db)
	if err != nil {
		t.Fatalf("getSession failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil session on empty db, got %+v", s)
	}
}

func TestSaveAndGetSession(t *testing.T) {
	db := setupTestDB(t)

	saved := Session{
		Volume:       0.42,
		Shuffle:      true,
		RepeatMode:   2,
		PlaylistPath: "/home/user/.local/share/quartz/playlist.json",
	}
	if err := saveSession(db, saved); err != nil {
		t.Fatalf("saveSession failed: %v", err)
	}

	got, err := getSession(db)
	if err != nil {
		t.Fatalf("getSession failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil session")
	}

	if got.Volume != saved.Volume {
		t.Errorf("Volume = %v, want %v", got.Volume, saved.Volume)
	}
	if got.Shuffle != saved.Shuffle {
		t.Errorf("Shuffle = %v, want %v", got.Shuffle, saved.Shuffle)
	}
	if got.RepeatMode != saved.RepeatMode {
		t.Errorf("RepeatMode = %v, want %v", got.RepeatMode, saved.RepeatMode)
	}
	if got.PlaylistPath != saved.PlaylistPath {
		t.Errorf("PlaylistPath = %q, want %q", got.PlaylistPath, saved.PlaylistPath)
	}
}

func TestSaveSession_Update(t *testing.T) {
	db := setupTestDB(t)

	if err := saveSession(db, Session{Volume: 0.85}); err != nil {
		t.Fatalf("saveSession failed: %v", err)
	}
	if err := saveSession(db, Session{Volume: 0.2, Shuffle: true}); err != nil {
		t.Fatalf("saveSession (update) failed: %v", err)
	}

	got, err := getSession(db)
	if err != nil {
		t.Fatalf("getSession failed: %v", err)
	}
	if got.Volume != 0.2 {
		t.Errorf("Volume = %v, want 0.2", got.Volume)
	}
	if !got.Shuffle {
		t.Error("Shuffle = false, want true")
	}

	// The upsert keeps a single row.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("session rows = %d, want 1", count)
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := initSchema(db); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}

	var version int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("version query failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("version = %d, want %d", version, currentSchemaVersion)
	}
}
