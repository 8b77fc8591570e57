// Package slot persists the dashboard snapshot across sessions.
//
// The durable slot is a single key/value row in a SQLite database at
// ~/.uniheal/volunteer.db holding the JSON-serialized snapshot. Loading is
// tolerant by design: an absent, empty, or malformed value never fails
// startup, it degrades to seed defaults.
package slot

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/uniheal/volunteer/internal/model"
)

// Key names the one slot entry used by the volunteer dashboard. The value
// format has no version field; readers must stay tolerant of partial or
// unknown fields.
const Key = "uniheal.volunteer.v1"

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Slot wraps the SQLite connection holding the persisted snapshot.
type Slot struct {
	db  *sql.DB
	log *zap.Logger
}

// DefaultPath returns the default slot location (~/.uniheal/volunteer.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".uniheal", "volunteer.db"), nil
}

// Open opens or creates the slot database at the given path.
func Open(path string, log *zap.Logger) (*Slot, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Slot{db: db, log: log}, nil
}

// Close releases the underlying database connection.
func (s *Slot) Close() error {
	return s.db.Close()
}

// Load reads the persisted snapshot. It returns nil when the slot is
// empty or its contents cannot be decoded; decode problems are logged and
// swallowed so startup always succeeds.
func (s *Slot) Load() *model.Snapshot {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, Key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.log.Warn("slot read failed, using seed defaults", zap.Error(err))
		return nil
	}
	return s.decode([]byte(raw))
}

// decode parses the snapshot field by field. Each field is decoded
// independently so one malformed field drops only itself, not the rest of
// the snapshot. A value that is not a JSON object at all yields nil.
func (s *Slot) decode(raw []byte) *model.Snapshot {
	var fields struct {
		Hours        json.RawMessage `json:"hours"`
		Points       json.RawMessage `json:"points"`
		Tasks        json.RawMessage `json:"tasks"`
		Posts        json.RawMessage `json:"posts"`
		FlaggedPosts json.RawMessage `json:"flaggedPosts"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		s.log.Warn("malformed slot value, using seed defaults", zap.Error(err))
		return nil
	}

	snap := &model.Snapshot{}
	decodeField(s.log, "hours", fields.Hours, &snap.Hours)
	decodeField(s.log, "points", fields.Points, &snap.Points)
	decodeField(s.log, "tasks", fields.Tasks, &snap.Tasks)
	decodeField(s.log, "posts", fields.Posts, &snap.Posts)
	decodeField(s.log, "flaggedPosts", fields.FlaggedPosts, &snap.FlaggedPosts)
	return snap
}

// decodeField unmarshals one snapshot field, leaving the target untouched
// when the field is absent or type-mismatched.
func decodeField[T any](log *zap.Logger, name string, raw json.RawMessage, dst *T) {
	if len(raw) == 0 {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn("malformed slot field, keeping seed default", zap.String("field", name), zap.Error(err))
		return
	}
	*dst = v
}

// Save writes the full snapshot under the slot key, replacing any prior
// value. Persistence is whole-snapshot, never a delta.
func (s *Slot) Save(snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		Key, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

// Reset deletes the slot entry so the next session starts from seed data.
func (s *Slot) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, Key); err != nil {
		return fmt.Errorf("failed to reset slot: %w", err)
	}
	return nil
}
