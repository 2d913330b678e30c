package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/segrec/internal/timeline"
)

// sampleTimeline returns two saved 1s segments and a 1s segment in progress
// on a 4s timeline.
func sampleTimeline() *timeline.Timeline {
	tl := timeline.New(timeline.WithMaxDuration(4))
	tl.SetInitialSegments([]float64{1, 1})
	tl.StartNewSegment()
	tl.UpdateSegment(1)
	return tl
}

func kinds(s string) []CellKind {
	out := make([]CellKind, 0, len(s))
	for _, r := range s {
		switch r {
		case 'F':
			out = append(out, CellFill)
		case '|':
			out = append(out, CellSeparator)
		case ':':
			out = append(out, CellSeparatorDim)
		default:
			out = append(out, CellTrack)
		}
	}
	return out
}

func TestSegmentBar_Cells(t *testing.T) {
	tl := sampleTimeline()
	bar := SegmentBar{Spans: tl.Geometry(), Width: 20, SeparatorWidth: 1}

	assert.Equal(t, kinds("FFFF|FFFF|FFFFF....."), bar.Cells())
}

func TestSegmentBar_PausedBlink(t *testing.T) {
	tl := sampleTimeline()
	tl.PauseSegment()

	on := SegmentBar{Spans: tl.Geometry(), Width: 20, SeparatorWidth: 1, BlinkOn: true}
	off := on
	off.BlinkOn = false

	assert.Equal(t, kinds("FFFF|FFFF|FFFF|....."), on.Cells())
	assert.Equal(t, kinds("FFFF|FFFF|FFFF:....."), off.Cells())
}

func TestSegmentBar_SeparatorWidth(t *testing.T) {
	tl := sampleTimeline()

	none := SegmentBar{Spans: tl.Geometry(), Width: 20}
	assert.Equal(t, kinds("FFFFFFFFFFFFFFF....."), none.Cells())

	wide := SegmentBar{Spans: tl.Geometry(), Width: 20, SeparatorWidth: 2}
	assert.Equal(t, kinds("FFF||FFF||FFFFF....."), wide.Cells())
}

func TestSegmentBar_SeparatorNeverWiderThanSpan(t *testing.T) {
	tl := timeline.New(timeline.WithMaxDuration(10))
	tl.SetInitialSegments([]float64{0.5})

	bar := SegmentBar{Spans: tl.Geometry(), Width: 10, SeparatorWidth: 3}
	assert.Equal(t, kinds("|........."), bar.Cells())
}

func TestSegmentBar_Full(t *testing.T) {
	tl := timeline.New(timeline.WithMaxDuration(3))
	tl.SetInitialSegments([]float64{1})
	tl.StartNewSegment()
	tl.UpdateSegment(10)

	bar := SegmentBar{Spans: tl.Geometry(), Width: 12, SeparatorWidth: 1}
	assert.Equal(t, kinds("FFF|FFFFFFFF"), bar.Cells())
}

func TestSegmentBar_RenderWidth(t *testing.T) {
	tl := sampleTimeline()
	bar := SegmentBar{Spans: tl.Geometry(), Width: 33, SeparatorWidth: 1}

	assert.Equal(t, 33, lipgloss.Width(bar.Render()))
	assert.Equal(t, 40, lipgloss.Width(SegmentBar{}.Render()), "default width")
}

func TestSegmentBar_Plain(t *testing.T) {
	tl := sampleTimeline()
	bar := SegmentBar{Spans: tl.Geometry(), Width: 8, SeparatorWidth: 1}

	assert.Equal(t, "█┃█┃██░░", bar.Plain())
}

func TestHeader_Render(t *testing.T) {
	out := Header{Total: 2.5, Max: 5, Segments: 3, State: "paused", Width: 100}.Render()

	assert.Contains(t, out, "2.5/5.0s")
	assert.Contains(t, out, "Segments: 3")
	assert.Contains(t, out, "PAUSED")

	idle := Header{Max: 5, Width: 100}.Render()
	assert.Contains(t, idle, "IDLE")
}

func TestRecorderFooter(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"", "record"},
		{"closed", "record"},
		{"opened", "pause"},
		{"paused", "resume"},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			f := RecorderFooter(80, tt.state)
			require.NotEmpty(t, f.Hints)
			assert.Equal(t, KeyHint{Key: "space", Desc: tt.want}, f.Hints[0])
		})
	}
}

func TestSegmentList_Render(t *testing.T) {
	assert.Contains(t, SegmentList{}.Render(), "no segments")

	tl := sampleTimeline()
	out := SegmentList{Segments: tl.Segments(), Current: tl.CurrentIndex()}.Render()
	assert.Contains(t, out, "1:1.0s")
	assert.Contains(t, out, "3:1.0s")
}

func TestChangeEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		change timeline.Change
		level  string
		msg    string
	}{
		{timeline.Change{Op: timeline.OpStart, Index: 0}, "success", "segment 1 started"},
		{timeline.Change{Op: timeline.OpMax, Index: 1, Segment: timeline.Segment{Duration: 4}}, "warn", "capped at 4.0s"},
		{timeline.Change{Op: timeline.OpRemove, Index: 2, Segment: timeline.Segment{Duration: 0.7}}, "warn", "segment 3 discarded (0.7s)"},
		{timeline.Change{Op: timeline.OpReset, Count: 2, Total: 3}, "info", "reset with 2 segments (3.0s)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.change.Op), func(t *testing.T) {
			e := ChangeEvent(tt.change, at)
			assert.Equal(t, at, e.Time)
			assert.Equal(t, "TIMELINE", e.Source)
			assert.Equal(t, tt.level, e.Level)
			assert.Contains(t, e.Message, tt.msg)
		})
	}
}

func TestEventLog(t *testing.T) {
	log := NewEventLog(60, 5)
	log.maxEvents = 3

	for i := 0; i < 5; i++ {
		log.Add(Event{Time: time.Now(), Level: "info", Source: "TIMELINE", Message: strings.Repeat("x", i+1)})
	}

	events := log.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "xxx", events[0].Message)
	assert.Contains(t, log.View(), "Events (3)")

	log.Resize(40, 2)
	assert.Len(t, log.Events(), 3)
}

func TestConfirmDialog(t *testing.T) {
	key := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	d := NewConfirmDialog("Reset?", "Discard all segments")
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, d.Done)
	assert.False(t, d.Confirmed, "defaults to no")

	d = NewConfirmDialog("Reset?", "Discard all segments")
	d, _ = d.Update(key("y"))
	assert.True(t, d.Done)
	assert.True(t, d.Confirmed)

	d = NewConfirmDialog("Reset?", "Discard all segments")
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyTab})
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, d.Confirmed)

	assert.Contains(t, d.View(), "Discard all segments")
}

func TestTabBar_Counts(t *testing.T) {
	out := TabBar{Tabs: []string{"Recorder", "Events"}, Counts: []int{0, 7}, Width: 40}.Render()
	assert.Contains(t, out, "Events")
	assert.Contains(t, out, "7")
}
