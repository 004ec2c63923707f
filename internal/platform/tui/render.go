package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-puzzle/internal/core"
)

// Palette maps screen colors to terminal colors.
// Colors missing from a palette are written unstyled.
type Palette map[core.Color]lipgloss.TerminalColor

// DefaultPalette returns the board colors of the default theme.
func DefaultPalette() Palette {
	return Palette{
		// snake
		core.ColorGreen:       lipgloss.Color("2"),
		core.ColorBrightGreen: lipgloss.Color("10"),
		core.ColorOrange:      lipgloss.Color("208"),
		core.ColorBrightRed:   lipgloss.Color("9"),

		// fruit and exit
		core.ColorYellow:  lipgloss.Color("3"),
		core.ColorRed:     lipgloss.Color("1"),
		core.ColorMagenta: lipgloss.Color("5"),

		// terrain and frame
		core.ColorDarkGray: lipgloss.Color("238"),
		core.ColorGray:     lipgloss.Color("245"),
		core.ColorBrown:    lipgloss.Color("130"),
		core.ColorCyan:     lipgloss.Color("6"),

		// overlays
		core.ColorWhite:       lipgloss.Color("7"),
		core.ColorBrightWhite: lipgloss.Color("15"),

		core.ColorBlue:         lipgloss.Color("4"),
		core.ColorBrightYellow: lipgloss.Color("11"),
		core.ColorBrightCyan:   lipgloss.Color("14"),
	}
}

// Render converts a screen buffer to styled text, one line per row.
// Adjacent cells of the same color share one escape sequence.
func (p Palette) Render(s *core.Screen) string {
	styles := make(map[core.Color]lipgloss.Style, len(p))
	for c, tc := range p {
		styles[c] = lipgloss.NewStyle().Foreground(tc)
	}

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	span := make([]rune, 0, s.Width())
	flush := func(c core.Color) {
		if len(span) == 0 {
			return
		}
		if style, ok := styles[c]; ok {
			sb.WriteString(style.Render(string(span)))
		} else {
			sb.WriteString(string(span))
		}
		span = span[:0]
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		current := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				flush(current)
				current = cell.Color
			}
			span = append(span, cell.Rune)
		}
		flush(current)
	}
	return sb.String()
}
