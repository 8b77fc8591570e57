package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/uniheal/volunteer/internal/model"
	"github.com/uniheal/volunteer/internal/slot"
	"github.com/uniheal/volunteer/internal/store"
	"github.com/uniheal/volunteer/internal/tui"
)

var (
	flagDB      string
	flagVerbose bool
	flagJSON    bool
	flagFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "volunteer",
	Short: "Volunteer dashboard for the UniHeal peer support platform",
	Long: `Task tracking, peer-post moderation, events, messaging, and rewards
for UniHeal volunteers. State lives locally and survives across sessions.

Running without a subcommand opens the interactive dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks, partitioned into upcoming and completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()

		if flagJSON {
			return printJSON(tasksReport(sess.store))
		}
		printTasks(sess.store)
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task done and collect the reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()

		task, ok := findTask(sess.store, id)
		if !ok {
			return fmt.Errorf("task not found: %d (use 'volunteer tasks' to see available tasks)", id)
		}

		sess.store.MarkDone(id)
		sum := sess.store.Summary()
		fmt.Printf("Completed %q (+%dh, +%d pts) — now %d hrs, %d pts\n",
			task.Description, store.HoursPerTask, store.PointsPerTask, sum.Hours, sum.Points)
		return nil
	},
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Show the peer support feed with review state",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()

		if flagJSON {
			return printJSON(postsJSON(sess.store.Posts()))
		}
		printPosts(sess.store)
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Review a peer post (approve by default, --flag to flag)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid post id %q", args[0])
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()

		if _, ok := findPost(sess.store, id); !ok {
			return fmt.Errorf("post not found: %d (use 'volunteer posts' to see the feed)", id)
		}

		decision := model.DecisionApprove
		if flagFlag {
			decision = model.DecisionFlag
		}
		sess.store.Review(id, decision)

		if decision == model.DecisionFlag {
			fmt.Printf("Post %d flagged for review\n", id)
		} else {
			fmt.Printf("Post %d marked OK\n", id)
		}
		return nil
	},
}

var flaggedCmd = &cobra.Command{
	Use:   "flagged",
	Short: "Show the flag audit list",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()

		if flagJSON {
			return printJSON(postsJSON(sess.store.Flagged()))
		}
		flagged := sess.store.Flagged()
		if len(flagged) == 0 {
			fmt.Println("No flagged posts")
			return nil
		}
		for _, post := range flagged {
			fmt.Printf("⚑ [%d] %s\n", post.ID, post.Text)
		}
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List upcoming community events",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()

		if flagJSON {
			return printJSON(eventsJSON(sess.store.Events()))
		}
		for _, event := range sess.store.Events() {
			fmt.Printf("%s\n    %s — %s\n", event.Title, event.Date, event.Location)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show counters and task partition sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()

		sum := sess.store.Summary()
		if flagJSON {
			return printJSON(statusJSON{
				Upcoming:  sum.Upcoming,
				Completed: sum.Completed,
				Hours:     sum.Hours,
				Points:    sum.Points,
			})
		}
		fmt.Printf("Upcoming tasks:  %d\n", sum.Upcoming)
		fmt.Printf("Completed tasks: %d\n", sum.Completed)
		fmt.Printf("Volunteer hours: %d\n", sum.Hours)
		fmt.Printf("Points:          %d\n", sum.Points)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear saved state; the next session starts fresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := slotPath()
		if err != nil {
			return err
		}
		s, err := slot.Open(path, newLogger())
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := s.Reset(); err != nil {
			return err
		}
		fmt.Println("Saved state cleared")
		return nil
	},
}

// session bundles the open slot and the store built from it.
type session struct {
	store *store.Store
	slot  *slot.Slot
	log   *zap.Logger
}

func (s *session) close() {
	_ = s.slot.Close()
	_ = s.log.Sync()
}

func slotPath() (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	return slot.DefaultPath()
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if flagVerbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openSession loads the persisted snapshot (if any) and builds the session
// store on top of it. A missing or malformed snapshot falls back to seed
// defaults; only a failure to open the slot itself is an error.
func openSession() (*session, error) {
	path, err := slotPath()
	if err != nil {
		return nil, err
	}
	log := newLogger()

	s, err := slot.Open(path, log)
	if err != nil {
		return nil, err
	}

	st := store.New(s.Load(), s, log)
	return &session{store: st, slot: s, log: log}, nil
}

func findTask(st *store.Store, id int) (model.Task, bool) {
	for _, task := range st.Tasks() {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func findPost(st *store.Store, id int) (model.Post, bool) {
	for _, post := range st.Posts() {
		if post.ID == id {
			return post, true
		}
	}
	return model.Post{}, false
}

func runDashboard() error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	program := tea.NewProgram(tui.New(sess.store), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the state database (default ~/.uniheal/volunteer.db)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	for _, cmd := range []*cobra.Command{tasksCmd, postsCmd, flaggedCmd, eventsCmd, statusCmd} {
		cmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
	}
	reviewCmd.Flags().BoolVar(&flagFlag, "flag", false, "flag the post as high-risk instead of approving")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(flaggedCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
