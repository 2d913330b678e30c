package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSeconds(t *testing.T) {
	assert.Equal(t, "0.0s", Seconds(0))
	assert.Equal(t, "1.5s", Seconds(1.5000000000000002))
	assert.Equal(t, "12.3s", Seconds(12.34))
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"segrec.json", 20, "segrec.json"},
		{"/home/user/projects/segrec.json", 12, "/home/use..."},
		{"segrec", 3, "seg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateWithEllipsis(tt.in, tt.max))
		})
	}
}

func TestSparkline(t *testing.T) {
	assert.Empty(t, Sparkline(nil, 10))
	assert.Empty(t, Sparkline([]float64{1, 2}, 0))

	line := Sparkline([]float64{0, 1.5, 3}, 6)
	assert.Equal(t, 6, lipgloss.Width(line))
	assert.Contains(t, line, "⡀")
	assert.Contains(t, line, "⣿")

	even := Sparkline([]float64{2, 2}, 4)
	assert.Equal(t, 4, lipgloss.Width(even))
	assert.Contains(t, even, "⣿⣿⣿⣿")
}

func TestStateColor(t *testing.T) {
	assert.Equal(t, AccentRecord, StateColor("opened"))
	assert.Equal(t, StatusWarn, StateColor("paused"))
	assert.Equal(t, StatusOK, StateColor("closed"))
	assert.Equal(t, AccentPrimary, StateColor("final"))
	assert.Equal(t, TextMuted, StateColor(""))
}

func TestDivider(t *testing.T) {
	assert.Empty(t, Divider(0))
	assert.Equal(t, 12, lipgloss.Width(Divider(12)))
}
