// Package store holds the canonical in-memory state for one dashboard
// session and the mutation rules that govern it.
//
// A Store is constructed once at session start, optionally from a
// persisted snapshot, and is the only place domain state changes. All
// operations run on the UI event loop; the store assumes single-threaded
// access and performs no locking.
package store

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uniheal/volunteer/internal/model"
)

// Reward granted for each completed task. Applied on every MarkDone call,
// including repeat calls on an already-completed task.
const (
	HoursPerTask  = 2
	PointsPerTask = 20
)

// Saver receives the full snapshot after every committed mutation to
// persisted state. Saves are fire-and-forget: failures are logged by the
// store and never surfaced to the caller.
type Saver interface {
	Save(model.Snapshot) error
}

// Store is the single source of truth for all mutable dashboard state.
type Store struct {
	log   *zap.Logger
	saver Saver // nil disables persistence

	hours   int
	points  int
	tasks   []model.Task
	posts   []model.Post
	flagged []model.Post // append-only audit list, at most one entry per post id

	events        []model.Event
	conversations []model.Conversation
	messages      []model.Message
	nextMessageID int

	now func() time.Time // message timestamps; overridable in tests
}

// New builds a session store seeded with defaults, then applies the loaded
// snapshot field by field. A nil snapshot means a fresh session. A nil
// saver disables persistence; a nil logger disables diagnostics.
func New(snap *model.Snapshot, saver Saver, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	conversations, messages := model.SeedConversations()
	s := &Store{
		log:           log,
		saver:         saver,
		hours:         model.SeedHours,
		points:        model.SeedPoints,
		tasks:         model.SeedTasks(),
		posts:         model.SeedPosts(),
		events:        model.SeedEvents(),
		conversations: conversations,
		messages:      messages,
		nextMessageID: len(messages) + 1,
		now:           time.Now,
	}
	s.apply(snap)
	return s
}

// apply restores persisted fields independently: a snapshot carrying only
// some fields overrides just those, everything else keeps its seed value.
func (s *Store) apply(snap *model.Snapshot) {
	if snap == nil {
		return
	}
	if snap.Hours != nil {
		s.hours = *snap.Hours
	}
	if snap.Points != nil {
		s.points = *snap.Points
	}
	if snap.Tasks != nil {
		s.tasks = append([]model.Task(nil), snap.Tasks...)
	}
	if snap.Posts != nil {
		s.posts = append([]model.Post(nil), snap.Posts...)
	}
	if snap.FlaggedPosts != nil {
		s.flagged = append([]model.Post(nil), snap.FlaggedPosts...)
	}
}

// Snapshot returns the persisted subset of the current state. Messages and
// events are excluded.
func (s *Store) Snapshot() model.Snapshot {
	hours, points := s.hours, s.points
	return model.Snapshot{
		Hours:        &hours,
		Points:       &points,
		Tasks:        append([]model.Task(nil), s.tasks...),
		Posts:        append([]model.Post(nil), s.posts...),
		FlaggedPosts: append([]model.Post(nil), s.flagged...),
	}
}

// commit pushes the full snapshot to the saver after a mutation.
func (s *Store) commit() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(s.Snapshot()); err != nil {
		s.log.Warn("snapshot save failed", zap.Error(err))
	}
}

// MarkDone completes a task and grants the completion reward.
//
// The status write is idempotent, but the reward is not: every call adds
// hours and points, even on an already-completed task. That asymmetry is
// long-standing observed behavior the rest of the product accounts for.
// Unknown ids are a no-op.
func (s *Store) MarkDone(taskID int) {
	idx := s.taskIndex(taskID)
	if idx < 0 {
		s.log.Debug("mark done on unknown task", zap.Int("id", taskID))
		return
	}
	s.tasks[idx].Status = model.StatusCompleted
	s.hours += HoursPerTask
	s.points += PointsPerTask
	s.commit()
}

// Review records a moderation decision on a post.
//
// The live record follows latest-decision-wins: reviewed is set and flagged
// tracks the most recent decision, so a re-review can flip a prior verdict.
// The flagged audit list follows first-flag-wins: the first flag appends a
// copy of the post, and no later decision touches that copy. An approve
// after a flag therefore leaves the audit entry in place even though the
// live record reads unflagged. Unknown ids and invalid decisions are no-ops.
func (s *Store) Review(postID int, decision model.Decision) {
	if !decision.IsValid() {
		s.log.Debug("review with invalid decision", zap.Int("id", postID), zap.String("decision", string(decision)))
		return
	}
	idx := s.postIndex(postID)
	if idx < 0 {
		s.log.Debug("review on unknown post", zap.Int("id", postID))
		return
	}

	s.posts[idx].Reviewed = true
	s.posts[idx].Flagged = decision == model.DecisionFlag

	if decision == model.DecisionFlag && !s.inFlagged(postID) {
		entry := s.posts[idx]
		entry.Flagged = true
		s.flagged = append(s.flagged, entry)
	}
	s.commit()
}

// SendMessage appends a self-authored message to a conversation and updates
// its preview line. Blank bodies and unknown conversations are no-ops.
// Messages are session-local and never trigger a snapshot save.
func (s *Store) SendMessage(conversationID int, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	idx := -1
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.log.Debug("message to unknown conversation", zap.Int("id", conversationID))
		return
	}

	stamp := s.now().Format("3:04 PM")
	s.messages = append(s.messages, model.Message{
		ID:             s.nextMessageID,
		ConversationID: conversationID,
		Author:         "Me",
		Avatar:         "M",
		Time:           stamp,
		Body:           body,
		Self:           true,
	})
	s.nextMessageID++
	s.conversations[idx].LastMessage = "Me: " + body
	s.conversations[idx].LastTime = stamp
}

func (s *Store) taskIndex(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) postIndex(id int) int {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) inFlagged(id int) bool {
	for i := range s.flagged {
		if s.flagged[i].ID == id {
			return true
		}
	}
	return false
}
