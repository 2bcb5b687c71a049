package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"escala/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS manual_shifts (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL,
  startTime TEXT,
  endTime TEXT,
  hours REAL NOT NULL,
  description TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_manual_shifts_date ON manual_shifts(date);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  target TEXT NOT NULL,
  files INTEGER NOT NULL,
  months INTEGER NOT NULL,
  shifts INTEGER NOT NULL,
  totalHours REAL NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertManualShift(shift internal.Shift) error {
	_, err := d.conn.Exec(`
INSERT INTO manual_shifts (id, date, startTime, endTime, hours, description)
VALUES (?, ?, ?, ?, ?, ?)
`, shift.ID, shift.Date, shift.StartTime, shift.EndTime, shift.Hours, shift.Description)
	return err
}

func (d *DB) ListManualShifts() ([]internal.Shift, error) {
	rows, err := d.conn.Query(`
SELECT id, date, startTime, endTime, hours, description
FROM manual_shifts ORDER BY createdAt ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Shift
	for rows.Next() {
		var s internal.Shift
		var start, end, desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Date, &start, &end, &s.Hours, &desc); err != nil {
			return nil, err
		}
		s.StartTime = start.String
		s.EndTime = end.String
		s.Description = desc.String
		s.IsManual = true
		out = append(out, s)
	}
	return out, rows.Err()
}

func (d *DB) DeleteManualShift(id string) (bool, error) {
	result, err := d.conn.Exec(`DELETE FROM manual_shifts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (d *DB) InsertRun(traceID, target string, files, months, shifts int, totalHours float64) error {
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, target, files, months, shifts, totalHours)
VALUES (?, ?, ?, ?, ?, ?)
`, traceID, target, files, months, shifts, totalHours)
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
