package store

import "github.com/uniheal/volunteer/internal/model"

// Summary contains the presentation-ready counters for the overview and
// rewards tabs.
type Summary struct {
	Upcoming  int
	Completed int
	Hours     int
	Points    int
}

// Summary computes the current counters. Pure read; safe to call on every
// render.
func (s *Store) Summary() Summary {
	upcoming, completed := 0, 0
	for i := range s.tasks {
		if s.tasks[i].Status == model.StatusCompleted {
			completed++
		} else {
			upcoming++
		}
	}
	return Summary{
		Upcoming:  upcoming,
		Completed: completed,
		Hours:     s.hours,
		Points:    s.points,
	}
}

// Upcoming returns tasks awaiting completion, preserving insertion order.
func (s *Store) Upcoming() []model.Task {
	return s.tasksByStatus(model.StatusUpcoming)
}

// Completed returns finished tasks, preserving insertion order.
func (s *Store) Completed() []model.Task {
	return s.tasksByStatus(model.StatusCompleted)
}

// tasksByStatus is a stable filter over the task list; no re-sort.
func (s *Store) tasksByStatus(status model.TaskStatus) []model.Task {
	var out []model.Task
	for i := range s.tasks {
		if s.tasks[i].Status == status {
			out = append(out, s.tasks[i])
		}
	}
	return out
}

// Tasks returns a copy of the full task list.
func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

// Posts returns a copy of the peer support feed.
func (s *Store) Posts() []model.Post {
	return append([]model.Post(nil), s.posts...)
}

// Flagged returns a copy of the flag audit list. Entries are snapshots
// from first-flag time and may disagree with the live feed after a
// re-review.
func (s *Store) Flagged() []model.Post {
	return append([]model.Post(nil), s.flagged...)
}

// Events returns a copy of the community events list.
func (s *Store) Events() []model.Event {
	return append([]model.Event(nil), s.events...)
}

// Conversations returns a copy of the messaging threads.
func (s *Store) Conversations() []model.Conversation {
	return append([]model.Conversation(nil), s.conversations...)
}

// Messages returns the transcript for one conversation, in append order.
func (s *Store) Messages(conversationID int) []model.Message {
	var out []model.Message
	for i := range s.messages {
		if s.messages[i].ConversationID == conversationID {
			out = append(out, s.messages[i])
		}
	}
	return out
}
