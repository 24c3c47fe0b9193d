package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// GateIndicator renders a pain gate outcome such as "● STOP".
func GateIndicator(state domain.GateState) string {
	switch state {
	case domain.GateContinue:
		return StyleGreen.Render("● CONTINUE")
	case domain.GateContinueWithCaution:
		return StyleYellow.Render("● CAUTION")
	case domain.GateStop:
		return StyleRed.Render("● STOP")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(state)))
	}
}

// FlagSeverityStyle colors coaching flags by urgency.
func FlagSeverityStyle(sev domain.FlagSeverity) lipgloss.Style {
	switch sev {
	case domain.FlagHigh:
		return StyleRed
	case domain.FlagMedium:
		return StyleYellow
	default:
		return StyleBlue
	}
}

func SeverityStyle(sev domain.Severity) lipgloss.Style {
	switch sev {
	case domain.SeveritySevere:
		return StyleRed
	case domain.SeverityModerate:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// PainLevel renders a 0-10 pain reading colored by band.
func PainLevel(level int) string {
	text := fmt.Sprintf("%d/10", level)
	switch {
	case level <= 3:
		return StyleGreen.Render(text)
	case level <= 5:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}

func TrendStyle(t domain.Trend) lipgloss.Style {
	switch t {
	case domain.TrendImproving:
		return StyleGreen
	case domain.TrendDeclining:
		return StyleRed
	default:
		return StyleFg
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
