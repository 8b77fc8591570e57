package slot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/uniheal/volunteer/internal/model"
	"github.com/uniheal/volunteer/internal/store"
)

func setupTestSlot(t *testing.T) *Slot {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("failed to open slot: %v", err)
	}

	t.Cleanup(func() { _ = s.Close() })
	return s
}

// writeRaw plants an arbitrary value under the slot key, bypassing Save.
func writeRaw(t *testing.T, s *Slot, value string) {
	t.Helper()
	if _, err := s.db.Exec(`
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, Key, value); err != nil {
		t.Fatalf("failed to write raw value: %v", err)
	}
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "test.db")

	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("failed to open slot: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("failed to get default path: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %q", path)
	}
	if filepath.Base(path) != "volunteer.db" {
		t.Errorf("expected volunteer.db, got %q", path)
	}
}

func TestLoad_EmptySlotReturnsNil(t *testing.T) {
	s := setupTestSlot(t)

	if snap := s.Load(); snap != nil {
		t.Errorf("expected nil snapshot from empty slot, got %+v", snap)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	s := setupTestSlot(t)

	hours, points := 11, 260
	in := model.Snapshot{
		Hours:  &hours,
		Points: &points,
		Tasks:  model.SeedTasks(),
		Posts:  model.SeedPosts(),
		FlaggedPosts: []model.Post{
			{ID: 2, Text: "I feel very alone lately", Flagged: true, Reviewed: true},
		},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := s.Load()
	if out == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if out.Hours == nil || *out.Hours != 11 {
		t.Errorf("hours = %v, want 11", out.Hours)
	}
	if out.Points == nil || *out.Points != 260 {
		t.Errorf("points = %v, want 260", out.Points)
	}
	if len(out.Tasks) != 3 || len(out.Posts) != 3 {
		t.Errorf("tasks/posts = %d/%d, want 3/3", len(out.Tasks), len(out.Posts))
	}
	if len(out.FlaggedPosts) != 1 || !out.FlaggedPosts[0].Flagged {
		t.Errorf("flagged = %+v, want one flagged entry", out.FlaggedPosts)
	}
}

func TestSave_OverwritesPriorValue(t *testing.T) {
	s := setupTestSlot(t)

	first, second := 7, 9
	if err := s.Save(model.Snapshot{Hours: &first}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(model.Snapshot{Hours: &second}); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := s.Load()
	if out == nil || out.Hours == nil || *out.Hours != 9 {
		t.Errorf("expected latest save to win, got %+v", out)
	}
}

func TestLoad_PartialSnapshotRestoresOnlyPresentFields(t *testing.T) {
	s := setupTestSlot(t)
	writeRaw(t, s, `{"points": 300}`)

	out := s.Load()
	if out == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if out.Points == nil || *out.Points != 300 {
		t.Errorf("points = %v, want 300", out.Points)
	}
	if out.Hours != nil || out.Tasks != nil || out.Posts != nil || out.FlaggedPosts != nil {
		t.Errorf("absent fields must stay nil: %+v", out)
	}

	// Feeding the partial snapshot to a store seeds everything else.
	st := store.New(out, nil, nil)
	sum := st.Summary()
	if sum.Points != 300 {
		t.Errorf("store points = %d, want 300", sum.Points)
	}
	if sum.Hours != model.SeedHours {
		t.Errorf("store hours = %d, want seed %d", sum.Hours, model.SeedHours)
	}
	if got := len(st.Tasks()); got != 3 {
		t.Errorf("store tasks = %d, want seed 3", got)
	}
}

func TestLoad_MalformedValueReturnsNil(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "not json at all {"},
		{"wrong top-level type", `[1, 2, 3]`},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestSlot(t)
			writeRaw(t, s, tt.value)

			if snap := s.Load(); snap != nil {
				t.Errorf("expected nil for %q, got %+v", tt.value, snap)
			}
		})
	}
}

func TestLoad_TypeMismatchedFieldFallsBackAlone(t *testing.T) {
	s := setupTestSlot(t)
	writeRaw(t, s, `{"hours": "lots", "points": 150}`)

	out := s.Load()
	if out == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if out.Hours != nil {
		t.Errorf("mismatched hours should be dropped, got %v", out.Hours)
	}
	if out.Points == nil || *out.Points != 150 {
		t.Errorf("points = %v, want 150", out.Points)
	}
}

func TestReset_ClearsSlot(t *testing.T) {
	s := setupTestSlot(t)

	hours := 7
	if err := s.Save(model.Snapshot{Hours: &hours}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if snap := s.Load(); snap != nil {
		t.Errorf("expected nil after reset, got %+v", snap)
	}
}
