package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + strings.TrimRight(content, "\n"))
}

// FormatWeight renders a load with its unit. Whole loads drop the decimal.
func FormatWeight(w float64, units string) string {
	s := strconv.FormatFloat(w, 'f', 1, 64)
	if w == math.Trunc(w) {
		s = strconv.FormatFloat(w, 'f', 0, 64)
	}
	if units == "" {
		return s
	}
	return s + " " + units
}

// FormatPct renders a percentage rounded to a whole number.
func FormatPct(pct float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(pct)))
}

// FormatDate renders a calendar date.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// RelativeDays describes t against now in whole days, e.g. "in 5d" or "3d ago".
func RelativeDays(t, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func JoinMuscles(groups []domain.MuscleGroup) string {
	if len(groups) == 0 {
		return StyleDim.Render("--")
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}

func JoinPatterns(patterns []domain.MovementPattern) string {
	if len(patterns) == 0 {
		return StyleDim.Render("--")
	}
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}

func bullets(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("  • " + l + "\n")
	}
	return b.String()
}
