package state

import "database/sql"

// Session is the restorable part of a run: the settings a user expects to
// survive a restart. The transport itself (position, loaded file) is never
// persisted.
type Session struct {
	Volume       float64
	Shuffle      bool
	RepeatMode   int
	PlaylistPath string
}

func getSession(db *sql.DB) (*Session, error) {
	var s Session
	var playlistPath sql.NullString

	err := db.QueryRow(`
		SELECT volume, shuffle, repeat_mode, playlist_path
		FROM session WHERE id = 1
	`).Scan(&s.Volume, &s.Shuffle, &s.RepeatMode, &playlistPath)

	if err == sql.ErrNoRows {
		return nil, nil //nolint:nilnil // nil session means first run, not an error
	}
	if err != nil {
		return nil, err
	}

	s.PlaylistPath = playlistPath.String
	return &s, nil
}

func saveSession(db *sql.DB, s Session) error {
	_, err := db.Exec(`
		INSERT INTO session (id, volume, shuffle, repeat_mode, playlist_path)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			shuffle = excluded.shuffle,
			repeat_mode = excluded.repeat_mode,
			playlist_path = excluded.playlist_path
	`, s.Volume, s.Shuffle, s.RepeatMode, s.PlaylistPath)
	return err
}
