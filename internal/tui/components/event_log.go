package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/segrec/internal/timeline"
	"github.com/Dallionking/segrec/internal/tui/styles"
)

// Event is a single entry in the event log.
type Event struct {
	Time    time.Time
	Level   string // info, warn, error or success
	Source  string // "TIMELINE", "CONFIG"
	Message string
}

// ChangeEvent converts a timeline change into a log entry.
func ChangeEvent(c timeline.Change, at time.Time) Event {
	level := "info"
	var msg string
	switch c.Op {
	case timeline.OpReset:
		msg = fmt.Sprintf("reset with %d segments (%.1fs)", c.Count, c.Total)
	case timeline.OpStart:
		msg = fmt.Sprintf("segment %d started", c.Index+1)
		level = "success"
	case timeline.OpUpdate:
		msg = fmt.Sprintf("segment %d at %.1fs", c.Index+1, c.Segment.Duration)
	case timeline.OpMax:
		msg = fmt.Sprintf("segment %d capped at %.1fs, timeline full", c.Index+1, c.Segment.Duration)
		level = "warn"
	case timeline.OpPause:
		msg = fmt.Sprintf("segment %d paused at %.1fs", c.Index+1, c.Segment.Duration)
	case timeline.OpResume:
		msg = fmt.Sprintf("segment %d resumed", c.Index+1)
	case timeline.OpClose:
		msg = fmt.Sprintf("segment %d saved (%.1fs)", c.Index+1, c.Segment.Duration)
		level = "success"
	case timeline.OpRemove:
		msg = fmt.Sprintf("segment %d discarded (%.1fs)", c.Index+1, c.Segment.Duration)
		level = "warn"
	case timeline.OpLimit:
		msg = fmt.Sprintf("limit changed, %.1fs recorded", c.Total)
	default:
		msg = string(c.Op)
	}
	return Event{Time: at, Level: level, Source: "TIMELINE", Message: msg}
}

// EventLog is a scrollable event viewer implementing the Bubble Tea Model interface.
type EventLog struct {
	events     []Event
	viewport   viewport.Model
	autoScroll bool
	maxEvents  int
	width      int
	height     int
}

// NewEventLog creates a new EventLog with the given dimensions.
func NewEventLog(width, height int) EventLog {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle().Background(styles.BgPanel)
	return EventLog{
		viewport:   vp,
		autoScroll: true,
		maxEvents:  500,
		width:      width,
		height:     height,
	}
}

// Init implements tea.Model.
func (l EventLog) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input and viewport messages.
func (l EventLog) Update(msg tea.Msg) (EventLog, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "G":
			// Follow new events again.
			l.autoScroll = true
			l.viewport.GotoBottom()
			return l, nil
		case "up", "k":
			// Scrolling up stops following.
			l.autoScroll = false
		case "down", "j":
			l.viewport, cmd = l.viewport.Update(msg)
			if l.viewport.AtBottom() {
				l.autoScroll = true
			}
			return l, cmd
		}
	}

	l.viewport, cmd = l.viewport.Update(msg)

	if !l.viewport.AtBottom() {
		l.autoScroll = false
	}

	return l, cmd
}

// View returns the titled viewport.
func (l EventLog) View() string {
	title := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Bold(true).
		Render(fmt.Sprintf("Events (%d)", len(l.events)))

	scrollIndicator := ""
	if !l.autoScroll {
		scrollIndicator = lipgloss.NewStyle().
			Foreground(styles.StatusWarn).
			Render(" (paused -- press G to follow)")
	}

	return title + scrollIndicator + "\n" + l.viewport.View()
}

// Add appends an event and refreshes the viewport content.
func (l *EventLog) Add(e Event) {
	l.events = append(l.events, e)

	if len(l.events) > l.maxEvents {
		overflow := len(l.events) - l.maxEvents
		l.events = l.events[overflow:]
	}

	l.viewport.SetContent(l.renderEvents())

	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}

// Events returns the buffered events, oldest first.
func (l EventLog) Events() []Event {
	return l.events
}

// Resize changes the viewport dimensions, keeping buffered events.
func (l *EventLog) Resize(width, height int) {
	l.width, l.height = width, height
	l.viewport.Width = width
	l.viewport.Height = height
	l.viewport.SetContent(l.renderEvents())
	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}

// levelColor returns the foreground color for an event level.
func levelColor(level string) lipgloss.Color {
	switch strings.ToLower(level) {
	case "info":
		return styles.TextSecondary
	case "warn":
		return styles.StatusWarn
	case "error":
		return styles.StatusError
	case "success":
		return styles.StatusOK
	default:
		return styles.TextMuted
	}
}

func (l *EventLog) renderEvents() string {
	var b strings.Builder
	for _, e := range l.events {
		color := levelColor(e.Level)

		ts := lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render(e.Time.Format("15:04:05.0"))
		lvl := lipgloss.NewStyle().Foreground(color).Bold(true).
			Render(fmt.Sprintf("%-7s", strings.ToUpper(e.Level)))
		src := lipgloss.NewStyle().Foreground(styles.AccentSecondary).
			Render(fmt.Sprintf("%-9s", e.Source))
		msg := lipgloss.NewStyle().Foreground(color).
			Render(e.Message)

		b.WriteString(ts + " " + lvl + " " + src + " " + msg + "\n")
	}
	return b.String()
}
