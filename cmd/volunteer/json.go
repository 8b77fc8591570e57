package main

import (
	"encoding/json"
	"fmt"

	"github.com/uniheal/volunteer/internal/model"
	"github.com/uniheal/volunteer/internal/store"
)

// JSON output shapes for scripting against the CLI.

type taskJSON struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Location    string `json:"location"`
}

type postJSON struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Reviewed bool   `json:"reviewed"`
	Flagged  bool   `json:"flagged"`
}

type eventJSON struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

type statusJSON struct {
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Hours     int `json:"hours"`
	Points    int `json:"points"`
}

type tasksJSON struct {
	Upcoming  []taskJSON `json:"upcoming"`
	Completed []taskJSON `json:"completed"`
}

func toTaskJSON(tasks []model.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskJSON{
			ID:          t.ID,
			Description: t.Description,
			Date:        t.Date,
			Time:        t.Time,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
			Location:    t.Location,
		})
	}
	return out
}

func postsJSON(posts []model.Post) []postJSON {
	out := make([]postJSON, 0, len(posts))
	for _, p := range posts {
		out = append(out, postJSON{ID: p.ID, Text: p.Text, Reviewed: p.Reviewed, Flagged: p.Flagged})
	}
	return out
}

func eventsJSON(events []model.Event) []eventJSON {
	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, eventJSON{ID: e.ID, Title: e.Title, Date: e.Date, Location: e.Location})
	}
	return out
}

func tasksReport(st *store.Store) tasksJSON {
	return tasksJSON{
		Upcoming:  toTaskJSON(st.Upcoming()),
		Completed: toTaskJSON(st.Completed()),
	}
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

func printTasks(st *store.Store) {
	upcoming := st.Upcoming()
	completed := st.Completed()

	fmt.Println("Upcoming:")
	if len(upcoming) == 0 {
		fmt.Println("  (none)")
	}
	for _, t := range upcoming {
		fmt.Printf("  ○ [%d] %s  %s @ %s — %s (%s)\n", t.ID, t.Description, t.Date, t.Time, t.Location, t.Priority)
	}

	fmt.Println("Completed:")
	if len(completed) == 0 {
		fmt.Println("  (none)")
	}
	for _, t := range completed {
		fmt.Printf("  ● [%d] %s  %s\n", t.ID, t.Description, t.Date)
	}
}

func printPosts(st *store.Store) {
	for _, p := range st.Posts() {
		marker := "·"
		if p.Reviewed {
			if p.Flagged {
				marker = "⚑"
			} else {
				marker = "✓"
			}
		}
		fmt.Printf("%s [%d] %s\n", marker, p.ID, p.Text)
	}
}
