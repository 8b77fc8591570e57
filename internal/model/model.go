// Package model defines the domain types for the volunteer dashboard.
package model

// TaskStatus is the lifecycle state of a volunteer task.
// Tasks only ever move upcoming -> completed.
type TaskStatus string

const (
	StatusUpcoming  TaskStatus = "upcoming"
	StatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted:
		return true
	}
	return false
}

// Priority indicates how urgently a task needs attention.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityModerate Priority = "moderate"
	PriorityHigh     Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityModerate, PriorityHigh:
		return true
	}
	return false
}

// Decision is a moderation verdict on a peer post.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionFlag    Decision = "flag"
)

func (d Decision) IsValid() bool {
	switch d {
	case DecisionApprove, DecisionFlag:
		return true
	}
	return false
}

// Task is a scheduled volunteer duty. The JSON tags match the persisted
// snapshot format, where the description field is historically named "task".
type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"task"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Location    string     `json:"location"`
}

// Post is an entry in the peer support feed. Reviewed is monotonic:
// once true it never resets. Flagged is only meaningful once Reviewed is true.
type Post struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Flagged  bool   `json:"flagged"`
	Reviewed bool   `json:"reviewed"`
}

// Event is a read-only community event listing. Events are not persisted.
type Event struct {
	ID       int
	Title    string
	Date     string
	Location string
}

// Conversation is a chat thread in the messaging panel, either a group
// or a direct conversation. Conversations are session-local.
type Conversation struct {
	ID          int
	Name        string
	Avatar      string
	LastMessage string
	LastTime    string
}

// Message is one entry in a conversation's append-only transcript.
type Message struct {
	ID             int
	ConversationID int
	Author         string
	Avatar         string
	Time           string
	Body           string
	Self           bool
}

// Snapshot is the exact subset of session state written to the durable
// slot. Messages and events are deliberately excluded. Fields are pointers
// or slices so a loaded snapshot can be partial: nil means "not present,
// keep the seed default".
type Snapshot struct {
	Hours        *int   `json:"hours,omitempty"`
	Points       *int   `json:"points,omitempty"`
	Tasks        []Task `json:"tasks,omitempty"`
	Posts        []Post `json:"posts,omitempty"`
	FlaggedPosts []Post `json:"flaggedPosts,omitempty"`
}
