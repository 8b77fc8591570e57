// Package tui provides the interactive volunteer dashboard using Bubble Tea.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uniheal/volunteer/internal/model"
	"github.com/uniheal/volunteer/internal/store"
)

// Tab identifies one dashboard tab.
type Tab int

const (
	TabOverview Tab = iota
	TabSupport
	TabEvents
	TabMessages
	TabRewards
)

var tabTitles = [...]string{"Overview", "Peer Support", "Events", "Messages", "Rewards"}

// Status icons
const (
	iconUpcoming  = "○"
	iconCompleted = "●"
	iconFlagged   = "⚑"
	iconApproved  = "✓"
	iconPending   = "·"
)

// animInterval is the tick rate for stat animations (~30fps).
const animInterval = 33 * time.Millisecond

// animTickMsg drives the count-up animations. The generation stamps which
// animation run the tick belongs to; ticks from a superseded run are
// dropped so two interpolations never race one display value.
type animTickMsg struct {
	gen int
}

// Model is the main Bubble Tea model for the dashboard.
type Model struct {
	store *store.Store

	tab    Tab
	width  int
	height int

	// Per-tab cursors
	taskCursor int
	postCursor int
	convCursor int

	// Compose state for the messages tab
	compose   textinput.Model
	composing bool

	message string // temporary status message

	// Animated stat displays
	upcomingAnim  *counter
	completedAnim *counter
	hoursAnim     *counter
	pointsAnim    *counter
	animGen       int
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 2)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	priorityColors = map[model.Priority]lipgloss.Color{
		model.PriorityHigh:     lipgloss.Color("196"),
		model.PriorityModerate: lipgloss.Color("214"),
		model.PriorityLow:      lipgloss.Color("42"),
	}

	flaggedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	approvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	selfMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	contentPadding = 2
)

func priorityLabel(p model.Priority) string {
	style := lipgloss.NewStyle().Foreground(priorityColors[p])
	return style.Render(string(p))
}

// New creates the dashboard model over a session store.
func New(st *store.Store) Model {
	sum := st.Summary()

	compose := textinput.New()
	compose.Placeholder = "Type a message..."
	compose.CharLimit = 280

	return Model{
		store:         st,
		tab:           TabOverview,
		compose:       compose,
		upcomingAnim:  newCounter(sum.Upcoming),
		completedAnim: newCounter(sum.Completed),
		hoursAnim:     newCounter(sum.Hours),
		pointsAnim:    newCounter(sum.Points),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// retargetStats points every stat animation at the store's true values and
// starts a new tick chain when anything changed. Starting a new chain
// bumps the generation, which cancels any in-flight chain.
func (m *Model) retargetStats() tea.Cmd {
	sum := m.store.Summary()
	now := time.Now()

	changed := false
	for _, pair := range []struct {
		c *counter
		v int
	}{
		{m.upcomingAnim, sum.Upcoming},
		{m.completedAnim, sum.Completed},
		{m.hoursAnim, sum.Hours},
		{m.pointsAnim, sum.Points},
	} {
		before := pair.c.gen
		if pair.c.Retarget(pair.v, now) != before {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	m.animGen++
	return m.animTick()
}

func (m Model) animTick() tea.Cmd {
	gen := m.animGen
	return tea.Tick(animInterval, func(time.Time) tea.Msg {
		return animTickMsg{gen: gen}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case animTickMsg:
		// Ignore ticks from a cancelled animation run.
		if msg.gen != m.animGen {
			return m, nil
		}
		now := time.Now()
		m.upcomingAnim.Step(now)
		m.completedAnim.Step(now)
		m.hoursAnim.Step(now)
		m.pointsAnim.Step(now)
		if m.upcomingAnim.Done() && m.completedAnim.Done() &&
			m.hoursAnim.Done() && m.pointsAnim.Done() {
			return m, nil
		}
		return m, m.animTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composing {
		return m.handleComposeKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "right":
		m.tab = (m.tab + 1) % Tab(len(tabTitles))
		return m, nil

	case "shift+tab", "left":
		m.tab = (m.tab + Tab(len(tabTitles)) - 1) % Tab(len(tabTitles))
		return m, nil

	case "1", "2", "3", "4", "5":
		m.tab = Tab(int(msg.String()[0] - '1'))
		return m, nil
	}

	switch m.tab {
	case TabOverview:
		return m.handleOverviewKey(msg)
	case TabSupport:
		return m.handleSupportKey(msg)
	case TabMessages:
		return m.handleMessagesKey(msg)
	}
	return m, nil
}

func (m Model) handleOverviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	upcoming := m.store.Upcoming()

	switch msg.String() {
	case "up", "k":
		if m.taskCursor > 0 {
			m.taskCursor--
		}

	case "down", "j":
		if m.taskCursor < len(upcoming)-1 {
			m.taskCursor++
		}

	case "d", "enter":
		if len(upcoming) == 0 {
			return m, nil
		}
		if m.taskCursor >= len(upcoming) {
			m.taskCursor = len(upcoming) - 1
		}
		task := upcoming[m.taskCursor]
		m.store.MarkDone(task.ID)
		m.message = fmt.Sprintf("Completed: %s (+%dh, +%d pts)", task.Description, store.HoursPerTask, store.PointsPerTask)
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		// Retarget before returning m: the animation generation lives on
		// the model value being returned.
		cmd := m.retargetStats()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSupportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	posts := m.store.Posts()

	switch msg.String() {
	case "up", "k":
		if m.postCursor > 0 {
			m.postCursor--
		}

	case "down", "j":
		if m.postCursor < len(posts)-1 {
			m.postCursor++
		}

	case "a":
		return m.review(model.DecisionApprove)

	case "f":
		return m.review(model.DecisionFlag)
	}
	return m, nil
}

// review applies a moderation decision to the selected post. The key-to-
// decision mapping lives here; the store only sees the closed Decision type.
func (m Model) review(decision model.Decision) (Model, tea.Cmd) {
	posts := m.store.Posts()
	if len(posts) == 0 {
		return m, nil
	}
	if m.postCursor >= len(posts) {
		m.postCursor = len(posts) - 1
	}
	post := posts[m.postCursor]
	m.store.Review(post.ID, decision)
	if decision == model.DecisionFlag {
		m.message = "Flagged for review"
	} else {
		m.message = "Marked OK"
	}
	return m, nil
}

func (m Model) handleMessagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	conversations := m.store.Conversations()

	switch msg.String() {
	case "up", "k":
		if m.convCursor > 0 {
			m.convCursor--
		}

	case "down", "j":
		if m.convCursor < len(conversations)-1 {
			m.convCursor++
		}

	case "enter", "i":
		m.composing = true
		m.compose.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composing = false
		m.compose.Blur()
		m.compose.SetValue("")
		return m, nil

	case "enter":
		body := m.compose.Value()
		conversations := m.store.Conversations()
		if m.convCursor < len(conversations) {
			m.store.SendMessage(conversations[m.convCursor].ID, body)
		}
		m.compose.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("UniHeal Volunteer Portal"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render("Welcome back, Volunteer"))
	b.WriteString("\n\n")
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	switch m.tab {
	case TabOverview:
		b.WriteString(m.overviewView())
	case TabSupport:
		b.WriteString(m.supportView())
	case TabEvents:
		b.WriteString(m.eventsView())
	case TabMessages:
		b.WriteString(m.messagesView())
	case TabRewards:
		b.WriteString(m.rewardsView())
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.helpLine()))

	padStyle := lipgloss.NewStyle().
		PaddingLeft(contentPadding).
		PaddingRight(contentPadding).
		PaddingTop(1)
	return padStyle.Render(b.String())
}

func (m Model) tabBar() string {
	parts := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if Tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(title))
		} else {
			parts = append(parts, inactiveTabStyle.Render(title))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) helpLine() string {
	switch m.tab {
	case TabOverview:
		return "j/k: move  d: mark done  tab: switch  q: quit"
	case TabSupport:
		return "j/k: move  a: mark ok  f: flag  tab: switch  q: quit"
	case TabMessages:
		if m.composing {
			return "enter: send  esc: cancel"
		}
		return "j/k: conversation  enter: compose  tab: switch  q: quit"
	default:
		return "tab: switch  q: quit"
	}
}

func statCard(label string, value string) string {
	content := cardLabelStyle.Render(label) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}

func (m Model) overviewView() string {
	var b strings.Builder

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Upcoming", fmt.Sprintf("%d", m.upcomingAnim.Value())),
		" ",
		statCard("Completed", fmt.Sprintf("%d", m.completedAnim.Value())),
		" ",
		statCard("Volunteer Hours", fmt.Sprintf("%d hrs", m.hoursAnim.Value())),
	)
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Upcoming Tasks"))
	b.WriteString("\n")

	upcoming := m.store.Upcoming()
	if len(upcoming) == 0 {
		b.WriteString(dimStyle.Render("No upcoming tasks — all caught up"))
		b.WriteString("\n")
	}

	cursor := m.taskCursor
	if cursor >= len(upcoming) {
		cursor = len(upcoming) - 1
	}
	for i, task := range upcoming {
		row := fmt.Sprintf("%s %s  %s @ %s — %s  [%s]",
			iconUpcoming, task.Description, task.Date, task.Time, task.Location, priorityLabel(task.Priority))
		if i == cursor {
			row = selectedRowStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	completed := m.store.Completed()
	if len(completed) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Completed"))
		b.WriteString("\n")
		for _, task := range completed {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s  %s", iconCompleted, task.Description, task.Date)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) supportView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Peer Support Feed"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("review posts and flag high-risk content"))
	b.WriteString("\n")

	posts := m.store.Posts()
	cursor := m.postCursor
	if cursor >= len(posts) && len(posts) > 0 {
		cursor = len(posts) - 1
	}
	for i, post := range posts {
		marker := iconPending
		if post.Reviewed {
			if post.Flagged {
				marker = flaggedStyle.Render(iconFlagged)
			} else {
				marker = approvedStyle.Render(iconApproved)
			}
		}
		row := fmt.Sprintf("%s %s", marker, post.Text)
		if i == cursor {
			row = selectedRowStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	flagged := m.store.Flagged()
	if len(flagged) > 0 {
		b.WriteString("\n")
		b.WriteString(flaggedStyle.Render("Flagged Posts"))
		b.WriteString("\n")
		for _, post := range flagged {
			b.WriteString(fmt.Sprintf("  %s %s\n", iconFlagged, post.Text))
		}
	}
	return b.String()
}

func (m Model) eventsView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Upcoming Events"))
	b.WriteString("\n")
	for _, event := range m.store.Events() {
		b.WriteString(fmt.Sprintf("  %s\n", event.Title))
		b.WriteString(dimStyle.Render(fmt.Sprintf("    %s — %s", event.Date, event.Location)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) messagesView() string {
	var b strings.Builder

	conversations := m.store.Conversations()
	cursor := m.convCursor
	if cursor >= len(conversations) && len(conversations) > 0 {
		cursor = len(conversations) - 1
	}

	for i, conv := range conversations {
		row := fmt.Sprintf("%s  %s", conv.Name, dimStyle.Render(conv.LastTime))
		if i == cursor {
			row = selectedRowStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if len(conversations) > 0 {
		selected := conversations[cursor]
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(selected.Name))
		b.WriteString("\n")
		for _, msg := range m.store.Messages(selected.ID) {
			line := fmt.Sprintf("  %s %s: %s", dimStyle.Render(msg.Time), msg.Author, msg.Body)
			if msg.Self {
				line = selfMsgStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.composing {
		b.WriteString("\n")
		b.WriteString(m.compose.View())
	}
	return b.String()
}

func (m Model) rewardsView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Rewards & Engagement"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("your contribution record"))
	b.WriteString("\n\n")

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Hours", fmt.Sprintf("%d hrs", m.hoursAnim.Value())),
		" ",
		statCard("Engagement Points", fmt.Sprintf("★ %d", m.pointsAnim.Value())),
	)
	b.WriteString(cards)
	b.WriteString("\n")
	return b.String()
}
