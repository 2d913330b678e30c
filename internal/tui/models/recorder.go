package models

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"

	"github.com/Dallionking/segrec/internal/config"
	"github.com/Dallionking/segrec/internal/timeline"
	"github.com/Dallionking/segrec/internal/tui/components"
	"github.com/Dallionking/segrec/internal/tui/styles"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// tickMsg advances the take in progress by one tick interval.
type tickMsg time.Time

// blinkMsg flips the paused-divider blink phase.
type blinkMsg time.Time

// configMsg carries a config reloaded from disk.
type configMsg struct {
	cfg *config.Config
}

const (
	tabRecorder = iota
	tabEvents
	tabHelp
)

var recorderTabs = []string{"Recorder", "Events", "Help"}

// dialogAction is what a confirmed dialog does.
type dialogAction int

const (
	actionNone dialogAction = iota
	actionReset
)

// changeBuffer collects timeline changes between Update calls. It is held by
// pointer so every copy of the model drains the same buffer.
type changeBuffer struct {
	changes []timeline.Change
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// RecorderModel is the full-screen recorder. It drives the timeline from
// tick and key messages and redraws the segment bar from its geometry.
type RecorderModel struct {
	// Sub-components
	header  components.Header
	tabBar  components.TabBar
	footer  components.Footer
	events  components.EventLog
	spinner spinner.Model
	gauge   progress.Model
	dialog  *components.ConfirmDialog
	pending dialogAction

	// State
	activeTab int
	blinkOn   bool
	width     int
	height    int
	ready     bool
	quitting  bool
	helpView  string

	// Services
	tl       *timeline.Timeline
	cfg      *config.Config
	colors   components.SegmentColors
	configs  <-chan *config.Config
	changes  *changeBuffer
	unlisten func()
	logger   hclog.Logger
}

// NewRecorderModel creates a RecorderModel driving tl. configs delivers hot
// reloaded configs and may be nil.
func NewRecorderModel(
	tl *timeline.Timeline,
	cfg *config.Config,
	configs <-chan *config.Config,
	logger hclog.Logger,
) RecorderModel {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentRecord)

	buf := &changeBuffer{}
	unlisten := tl.OnChange(func(c timeline.Change) {
		buf.changes = append(buf.changes, c)
	})

	m := RecorderModel{
		tabBar:   components.TabBar{Tabs: recorderTabs},
		events:   components.NewEventLog(60, 10),
		spinner:  s,
		blinkOn:  true,
		tl:       tl,
		cfg:      cfg,
		configs:  configs,
		changes:  buf,
		unlisten: unlisten,
		logger:   logger.Named("recorder"),
	}
	m.applyStyle()
	m.sync()
	return m
}

// Timeline returns the timeline the model drives.
func (m RecorderModel) Timeline() *timeline.Timeline {
	return m.tl
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func blinkCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d/2, func(t time.Time) tea.Msg {
		return blinkMsg(t)
	})
}

// waitForConfig blocks on the next reloaded config.
func waitForConfig(ch <-chan *config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg{cfg: cfg}
	}
}

// ---------------------------------------------------------------------------
// Bubble Tea interface
// ---------------------------------------------------------------------------

// Init starts the tick, blink and spinner loops and the config listener.
func (m RecorderModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.cfg.TickInterval()),
		blinkCmd(m.cfg.BlinkDuration()),
		m.spinner.Tick,
		waitForConfig(m.configs),
	)
}

// Update handles window resize, keyboard, tick, blink and config messages.
func (m RecorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.reflow()

	case tea.KeyMsg:
		if m.dialog != nil {
			m.updateDialog(msg)
			break
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tickMsg:
		if m.tl.CurrentSegmentState() == timeline.StateOpened {
			m.tl.UpdateSegmentDelta(m.cfg.TickInterval().Seconds())
		}
		cmds = append(cmds, tickCmd(m.cfg.TickInterval()))

	case blinkMsg:
		m.blinkOn = !m.blinkOn
		cmds = append(cmds, blinkCmd(m.cfg.BlinkDuration()))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case configMsg:
		m.applyConfig(msg.cfg)
		cmds = append(cmds, waitForConfig(m.configs))
	}

	// Forward scroll keys to the event log on its tab.
	if m.activeTab == tabEvents && m.dialog == nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.events, cmd = m.events.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.drainChanges()
	m.sync()
	return m, tea.Batch(cmds...)
}

func (m *RecorderModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		if m.unlisten != nil {
			m.unlisten()
		}
		return tea.Quit
	case " ":
		m.toggle()
	case "c":
		if !m.tl.CloseSegment() {
			m.logger.Debug("close ignored", "state", m.tl.CurrentSegmentState())
		}
	case "x", "backspace":
		if !m.tl.RemoveSegment() {
			m.addEvent("warn", "RECORDER", "nothing to discard")
		}
	case "r":
		if m.tl.SegmentsCount() == 0 {
			m.reset()
			break
		}
		d := components.NewConfirmDialog("Reset timeline?",
			fmt.Sprintf("Discard %d segments (%s)", m.tl.SegmentsCount(), styles.Seconds(m.tl.CurrentDuration())))
		m.dialog = &d
		m.pending = actionReset
	case "?":
		if m.activeTab == tabHelp {
			m.setTab(tabRecorder)
		} else {
			m.setTab(tabHelp)
		}
	case "tab":
		m.setTab((m.activeTab + 1) % len(recorderTabs))
	case "shift+tab":
		m.setTab((m.activeTab + len(recorderTabs) - 1) % len(recorderTabs))
	}
	return nil
}

// toggle is the space key: start a take, pause it or resume it.
func (m *RecorderModel) toggle() {
	switch m.tl.CurrentSegmentState() {
	case timeline.StateOpened:
		m.tl.PauseSegment()
	case timeline.StatePaused:
		m.tl.ResumeSegment()
	default:
		if !m.tl.StartNewSegment() {
			m.addEvent("warn", "RECORDER", "timeline is full, discard a take to record again")
		}
	}
}

func (m *RecorderModel) updateDialog(msg tea.KeyMsg) {
	d, _ := m.dialog.Update(msg)
	if !d.Done {
		m.dialog = &d
		return
	}
	if d.Confirmed && m.pending == actionReset {
		m.reset()
	}
	m.dialog = nil
	m.pending = actionNone
}

func (m *RecorderModel) reset() {
	m.tl.SetInitialSegments(m.cfg.InitialSegments)
}

func (m *RecorderModel) setTab(tab int) {
	m.activeTab = tab
	m.tabBar.ActiveTab = tab
}

// applyConfig takes over a reloaded config. A max duration that no longer
// fits the recording is rejected and the old one kept.
func (m *RecorderModel) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.MaxDuration != m.tl.MaxDuration() {
		if err := m.tl.SetMaxDuration(cfg.MaxDuration); err != nil {
			m.logger.Warn("max duration rejected", "max", cfg.MaxDuration, "error", err)
			m.addEvent("warn", "CONFIG", fmt.Sprintf("max duration %s rejected: %v", styles.Seconds(cfg.MaxDuration), err))
			cfg.MaxDuration = m.tl.MaxDuration()
		}
	}
	m.cfg = cfg
	m.applyStyle()
	m.reflow()
	m.addEvent("info", "CONFIG", "config reloaded")
}

func (m *RecorderModel) applyStyle() {
	st := m.cfg.Style
	m.colors = components.NewSegmentColors(st.SegmentColor, st.SeparatorColor, st.TrackColor)
	width := m.gauge.Width
	m.gauge = progress.New(
		progress.WithSolidFill(m.cfg.Style.SegmentColor),
		progress.WithoutPercentage(),
	)
	if width > 0 {
		m.gauge.Width = width
	}
}

func (m *RecorderModel) addEvent(level, source, message string) {
	m.events.Add(components.Event{
		Time:    time.Now(),
		Level:   level,
		Source:  source,
		Message: message,
	})
}

// drainChanges moves buffered timeline changes into the event log.
func (m *RecorderModel) drainChanges() {
	now := time.Now()
	for _, c := range m.changes.changes {
		if c.Op == timeline.OpUpdate {
			continue
		}
		m.events.Add(components.ChangeEvent(c, now))
	}
	m.changes.changes = m.changes.changes[:0]
}

// sync copies timeline state into the header, tabs and footer.
func (m *RecorderModel) sync() {
	state := string(m.tl.CurrentSegmentState())
	m.header = components.Header{
		Total:    m.tl.CurrentDuration(),
		Max:      m.tl.MaxDuration(),
		Segments: m.tl.SegmentsCount(),
		State:    state,
		Width:    m.width,
	}
	m.tabBar.Width = m.width
	m.tabBar.Counts = []int{m.tl.SegmentsCount(), len(m.events.Events()), 0}

	switch m.activeTab {
	case tabEvents:
		m.footer = components.EventsFooter(m.width)
	case tabHelp:
		m.footer = components.HelpFooter(m.width)
	default:
		m.footer = components.RecorderFooter(m.width, state)
	}
}

// reflow recalculates sub-component sizes after a resize or config change.
func (m *RecorderModel) reflow() {
	if !m.ready {
		return
	}
	m.gauge.Width = m.barWidth()
	m.events.Resize(max(m.width-4, 20), max(m.bodyHeight()-1, 3))
	m.helpView = renderMarkdown(helpMarkdown, max(m.width-4, 20))
}

// barWidth is the configured bar width, or the panel's inner width.
func (m RecorderModel) barWidth() int {
	if w := m.cfg.Style.BarWidth; w > 0 {
		return w
	}
	return max(m.width-6, 10)
}

// bodyHeight is what remains between the header and tab bar and the footer.
func (m RecorderModel) bodyHeight() int {
	return max(m.height-3, 5)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders header, tabs, the active tab and footer. An open dialog is
// drawn centered over the body.
func (m RecorderModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Loading recorder..."
	}

	var body string
	switch m.activeTab {
	case tabEvents:
		body = m.events.View()
	case tabHelp:
		body = truncateToHeight(m.helpView, m.bodyHeight())
	default:
		body = m.renderRecorder()
	}

	if m.dialog != nil {
		body = lipgloss.Place(m.width, m.bodyHeight(),
			lipgloss.Center, lipgloss.Center, m.dialog.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.Render(),
		m.tabBar.Render(),
		body,
		m.footer.Render(),
	)
}

func (m RecorderModel) renderRecorder() string {
	bar := components.SegmentBar{
		Spans:          m.tl.Geometry(),
		Width:          m.barWidth(),
		SeparatorWidth: m.cfg.Style.SeparatorWidth,
		BlinkOn:        m.blinkOn,
		Colors:         m.colors,
	}

	total := m.tl.CurrentDuration()
	fill := 0.0
	if mx := m.tl.MaxDuration(); mx > 0 {
		fill = total / mx
	}
	remaining := styles.Label.Render("Remaining: ") + styles.Value.Render(styles.Seconds(m.tl.Remaining()))

	timelinePanel := components.Panel("Timeline",
		bar.Render()+"\n"+m.gauge.ViewAs(fill)+"\n"+remaining,
		m.width)

	list := components.SegmentList{
		Segments: m.tl.Segments(),
		Current:  m.tl.CurrentIndex(),
		Width:    max(m.width-6, 10),
	}
	segmentsPanel := components.Panel("Segments", list.Render(), m.width)

	return lipgloss.JoinVertical(lipgloss.Left, timelinePanel, segmentsPanel, m.renderStatus())
}

// renderStatus is the line under the panels describing the current take.
func (m RecorderModel) renderStatus() string {
	idx := m.tl.CurrentIndex() + 1
	dur := styles.Seconds(m.tl.CurrentSegmentDuration())

	var line string
	switch m.tl.CurrentSegmentState() {
	case timeline.StateOpened:
		line = m.spinner.View() + " " + lipgloss.NewStyle().Foreground(styles.AccentRecord).Bold(true).
			Render(fmt.Sprintf("recording segment %d", idx)) + "  " + styles.Bold(dur)
	case timeline.StatePaused:
		line = lipgloss.NewStyle().Foreground(styles.StatusWarn).
			Render(fmt.Sprintf("◐ segment %d paused at %s -- space to resume", idx, dur))
	case timeline.StateFinal:
		line = styles.Cyan("timeline full") + styles.Dim(" -- discard a take to record again")
	default:
		line = styles.Dim("press space to record")
	}
	return " " + line
}
