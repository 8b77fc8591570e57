package model

// Seed values used when no persisted snapshot exists. These mirror the
// fixture data the dashboard ships with for a fresh volunteer account.
const (
	SeedHours  = 5
	SeedPoints = 120
)

// SeedTasks returns the initial task list for a fresh session.
func SeedTasks() []Task {
	return []Task{
		{
			ID:          1,
			Description: "Assist in Wellness Workshop",
			Date:        "2024-10-01",
			Time:        "11:00 AM",
			Status:      StatusUpcoming,
			Priority:    PriorityHigh,
			Location:    "Auditorium",
		},
		{
			ID:          2,
			Description: "Peer Support Session",
			Date:        "2024-10-02",
			Time:        "3:00 PM",
			Status:      StatusUpcoming,
			Priority:    PriorityModerate,
			Location:    "Library Hall",
		},
		{
			ID:          3,
			Description: "Help Desk Duty",
			Date:        "2024-09-28",
			Time:        "9:00 AM",
			Status:      StatusCompleted,
			Priority:    PriorityLow,
			Location:    "Student Union",
		},
	}
}

// SeedPosts returns the initial peer support feed, all unreviewed.
func SeedPosts() []Post {
	return []Post{
		{ID: 1, Text: "I'm really stressed about exams..."},
		{ID: 2, Text: "I feel very alone lately"},
		{ID: 3, Text: "Had a great day with friends!"},
	}
}

// SeedEvents returns the community events list. Read-only, never persisted.
func SeedEvents() []Event {
	return []Event{
		{ID: 1, Title: "Mental Health Awareness Camp", Date: "2024-10-05", Location: "Main Ground"},
		{ID: 2, Title: "Meditation Workshop", Date: "2024-10-10", Location: "Wellness Center"},
	}
}

// SeedConversations returns the messaging panel's threads and their
// opening transcripts. Session-local, never persisted.
func SeedConversations() ([]Conversation, []Message) {
	conversations := []Conversation{
		{ID: 1, Name: "Community Support Group", Avatar: "CS", LastMessage: "Anita: I feel very anxious lately...", LastTime: "9:05 PM"},
		{ID: 2, Name: "Rahul", Avatar: "R", LastMessage: "Thank you for listening", LastTime: "8:45 PM"},
		{ID: 3, Name: "Anita", Avatar: "A", LastMessage: "I feel very anxious lately...", LastTime: "9:05 PM"},
		{ID: 4, Name: "Me (volunteer)", Avatar: "M", LastMessage: "I'm here if you want to talk privately.", LastTime: "7:30 PM"},
	}
	messages := []Message{
		{ID: 1, ConversationID: 1, Author: "Anita", Avatar: "A", Time: "9:05 PM", Body: "I feel very anxious lately, don't know how to deal with it."},
		{ID: 2, ConversationID: 1, Author: "Rahul", Avatar: "R", Time: "9:10 PM", Body: "I also feel stressed during exams. You're not alone."},
		{ID: 3, ConversationID: 1, Author: "Me (volunteer)", Avatar: "M", Time: "9:15 PM", Body: "Thanks for sharing. Remember, it's okay to feel this way. We're here to support you.", Self: true},
		{ID: 4, ConversationID: 2, Author: "Rahul", Avatar: "R", Time: "8:40 PM", Body: "Sometimes I can't focus on my studies."},
		{ID: 5, ConversationID: 2, Author: "Me (volunteer)", Avatar: "M", Time: "8:45 PM", Body: "That's understandable. Do you want me to share some focus techniques?", Self: true},
		{ID: 6, ConversationID: 3, Author: "Anita", Avatar: "A", Time: "9:00 PM", Body: "I have trouble sleeping at night."},
		{ID: 7, ConversationID: 3, Author: "Me (volunteer)", Avatar: "M", Time: "9:02 PM", Body: "Sleep issues are common with anxiety. Would you like some relaxation exercises?", Self: true},
	}
	return conversations, messages
}
