package store

import (
	"errors"
	"testing"
	"time"

	"github.com/uniheal/volunteer/internal/model"
)

// recordingSaver captures every snapshot handed to it.
type recordingSaver struct {
	saves []model.Snapshot
	err   error
}

func (r *recordingSaver) Save(snap model.Snapshot) error {
	r.saves = append(r.saves, snap)
	return r.err
}

func intPtr(v int) *int { return &v }

func TestNew_SeedDefaults(t *testing.T) {
	s := New(nil, nil, nil)

	sum := s.Summary()
	if sum.Hours != model.SeedHours {
		t.Errorf("hours = %d, want %d", sum.Hours, model.SeedHours)
	}
	if sum.Points != model.SeedPoints {
		t.Errorf("points = %d, want %d", sum.Points, model.SeedPoints)
	}
	if got := len(s.Tasks()); got != 3 {
		t.Errorf("tasks = %d, want 3", got)
	}
	if got := len(s.Posts()); got != 3 {
		t.Errorf("posts = %d, want 3", got)
	}
	if got := len(s.Flagged()); got != 0 {
		t.Errorf("flagged = %d, want 0", got)
	}
}

func TestNew_PartialSnapshotAppliesFieldByField(t *testing.T) {
	s := New(&model.Snapshot{Points: intPtr(300)}, nil, nil)

	sum := s.Summary()
	if sum.Points != 300 {
		t.Errorf("points = %d, want 300", sum.Points)
	}
	// Everything else keeps its seed value.
	if sum.Hours != model.SeedHours {
		t.Errorf("hours = %d, want seed %d", sum.Hours, model.SeedHours)
	}
	if got := len(s.Tasks()); got != 3 {
		t.Errorf("tasks = %d, want seed 3", got)
	}
}

func TestMarkDone_RewardAndStatus(t *testing.T) {
	s := New(nil, nil, nil)

	s.MarkDone(1)

	sum := s.Summary()
	if sum.Hours != 7 {
		t.Errorf("hours = %d, want 7", sum.Hours)
	}
	if sum.Points != 140 {
		t.Errorf("points = %d, want 140", sum.Points)
	}
	for _, task := range s.Tasks() {
		if task.ID == 1 && task.Status != model.StatusCompleted {
			t.Errorf("task 1 status = %q, want %q", task.Status, model.StatusCompleted)
		}
	}
}

func TestMarkDone_RepeatGrantsRewardAgain(t *testing.T) {
	s := New(nil, nil, nil)

	s.MarkDone(1)
	s.MarkDone(1)

	// Status stays completed; the reward is applied on every call.
	sum := s.Summary()
	if sum.Hours != 9 {
		t.Errorf("hours = %d, want 9", sum.Hours)
	}
	if sum.Points != 160 {
		t.Errorf("points = %d, want 160", sum.Points)
	}
	if got := len(s.Completed()); got != 2 {
		t.Errorf("completed = %d, want 2", got)
	}
}

func TestMarkDone_UnknownIDIsNoOp(t *testing.T) {
	s := New(nil, nil, nil)
	before := s.Summary()

	s.MarkDone(99)

	if got := s.Summary(); got != before {
		t.Errorf("summary changed on unknown id: %+v -> %+v", before, got)
	}
}

func TestReview_FlagIsIdempotentInAuditList(t *testing.T) {
	s := New(nil, nil, nil)

	s.Review(2, model.DecisionFlag)
	s.Review(2, model.DecisionFlag)
	s.Review(2, model.DecisionFlag)

	flagged := s.Flagged()
	if len(flagged) != 1 {
		t.Fatalf("flagged entries = %d, want 1", len(flagged))
	}
	if flagged[0].ID != 2 {
		t.Errorf("flagged id = %d, want 2", flagged[0].ID)
	}
	if !flagged[0].Flagged {
		t.Error("audit entry should record flagged=true")
	}
}

func TestReview_LatestDecisionWinsOnLiveRecord(t *testing.T) {
	s := New(nil, nil, nil)

	s.Review(1, model.DecisionFlag)
	s.Review(1, model.DecisionApprove)

	var post model.Post
	for _, p := range s.Posts() {
		if p.ID == 1 {
			post = p
		}
	}
	if !post.Reviewed {
		t.Error("post should stay reviewed")
	}
	if post.Flagged {
		t.Error("live record should follow the latest decision (approve)")
	}

	// The audit snapshot from first-flag time is untouched.
	flagged := s.Flagged()
	if len(flagged) != 1 {
		t.Fatalf("flagged entries = %d, want 1", len(flagged))
	}
	if !flagged[0].Flagged {
		t.Error("audit entry must keep flagged=true after a later approve")
	}
}

func TestReview_AuditEntryIsFirstFlagSnapshot(t *testing.T) {
	s := New(nil, nil, nil)

	s.Review(3, model.DecisionFlag)
	first := s.Flagged()[0]

	// Flip the live record back and forth; the audit entry stays frozen.
	s.Review(3, model.DecisionApprove)
	s.Review(3, model.DecisionFlag)

	flagged := s.Flagged()
	if len(flagged) != 1 {
		t.Fatalf("flagged entries = %d, want 1", len(flagged))
	}
	if flagged[0] != first {
		t.Errorf("audit entry changed: %+v -> %+v", first, flagged[0])
	}
}

func TestReview_UnknownIDAndInvalidDecisionAreNoOps(t *testing.T) {
	saver := &recordingSaver{}
	s := New(nil, saver, nil)

	s.Review(99, model.DecisionFlag)
	s.Review(1, model.Decision("maybe"))

	if len(saver.saves) != 0 {
		t.Errorf("no-op reviews should not commit, got %d saves", len(saver.saves))
	}
	for _, p := range s.Posts() {
		if p.Reviewed {
			t.Errorf("post %d should be untouched", p.ID)
		}
	}
}

func TestPartition_DisjointAndOrdered(t *testing.T) {
	s := New(nil, nil, nil)
	s.MarkDone(2)

	upcoming := s.Upcoming()
	completed := s.Completed()

	seen := make(map[int]int)
	for _, task := range upcoming {
		if task.Status != model.StatusUpcoming {
			t.Errorf("task %d in upcoming with status %q", task.ID, task.Status)
		}
		seen[task.ID]++
	}
	for _, task := range completed {
		if task.Status != model.StatusCompleted {
			t.Errorf("task %d in completed with status %q", task.ID, task.Status)
		}
		seen[task.ID]++
	}

	all := s.Tasks()
	if len(upcoming)+len(completed) != len(all) {
		t.Errorf("partition sizes %d+%d != %d", len(upcoming), len(completed), len(all))
	}
	for _, task := range all {
		if seen[task.ID] != 1 {
			t.Errorf("task %d appears %d times across partitions, want 1", task.ID, seen[task.ID])
		}
	}

	// Insertion order is preserved within each partition.
	prev := -1
	for _, task := range completed {
		if task.ID < prev {
			t.Errorf("completed out of insertion order: %d after %d", task.ID, prev)
		}
		prev = task.ID
	}
}

func TestCommit_SavesAfterEachMutation(t *testing.T) {
	saver := &recordingSaver{}
	s := New(nil, saver, nil)

	s.MarkDone(1)
	s.Review(1, model.DecisionApprove)

	if len(saver.saves) != 2 {
		t.Fatalf("saves = %d, want 2", len(saver.saves))
	}
	last := saver.saves[1]
	if last.Hours == nil || *last.Hours != 7 {
		t.Errorf("saved hours = %v, want 7", last.Hours)
	}
	if len(last.Tasks) != 3 || len(last.Posts) != 3 {
		t.Errorf("saved snapshot should carry full task and post lists")
	}
}

func TestCommit_SaveFailureIsSwallowed(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	s := New(nil, saver, nil)

	// Must not panic or surface the error; state still advances.
	s.MarkDone(1)
	if got := s.Summary().Hours; got != 7 {
		t.Errorf("hours = %d, want 7", got)
	}
}

func TestSendMessage_AppendsToSelectedConversation(t *testing.T) {
	s := New(nil, nil, nil)
	s.now = func() time.Time { return time.Date(2024, 10, 1, 21, 30, 0, 0, time.UTC) }

	before := len(s.Messages(2))
	s.SendMessage(2, "How are you feeling today?")

	msgs := s.Messages(2)
	if len(msgs) != before+1 {
		t.Fatalf("messages = %d, want %d", len(msgs), before+1)
	}
	last := msgs[len(msgs)-1]
	if !last.Self {
		t.Error("sent message should be self-authored")
	}
	if last.Body != "How are you feeling today?" {
		t.Errorf("body = %q", last.Body)
	}
	if last.Time != "9:30 PM" {
		t.Errorf("time = %q, want %q", last.Time, "9:30 PM")
	}

	// Preview line updates on the conversation.
	for _, c := range s.Conversations() {
		if c.ID == 2 && c.LastMessage != "Me: How are you feeling today?" {
			t.Errorf("preview = %q", c.LastMessage)
		}
	}
}

func TestSendMessage_BlankAndUnknownAreNoOps(t *testing.T) {
	saver := &recordingSaver{}
	s := New(nil, saver, nil)
	before := len(s.Messages(1))

	s.SendMessage(1, "   ")
	s.SendMessage(42, "hello")

	if got := len(s.Messages(1)); got != before {
		t.Errorf("messages = %d, want %d", got, before)
	}
	if len(saver.saves) != 0 {
		t.Errorf("messages must never trigger snapshot saves, got %d", len(saver.saves))
	}
}

func TestSnapshot_ExcludesMessagesAndEvents(t *testing.T) {
	s := New(nil, nil, nil)
	s.SendMessage(1, "session-local only")

	snap := s.Snapshot()
	if snap.Hours == nil || snap.Points == nil {
		t.Fatal("snapshot must carry both counters")
	}
	if len(snap.Tasks) != 3 || len(snap.Posts) != 3 || len(snap.FlaggedPosts) != 0 {
		t.Errorf("unexpected snapshot shape: %d tasks, %d posts, %d flagged",
			len(snap.Tasks), len(snap.Posts), len(snap.FlaggedPosts))
	}
}
