package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a recovery bar like [████░░░░] 45%. pct is a
// fraction; the bar clamps to [0, 1] while the label keeps the real value
// so a lift above its pre-injury max still reads e.g. 104%.
// Green from 0.9, yellow from 0.5, red below.
func RenderProgress(pct float64, width int) string {
	width = max(width, 2)
	fill := min(max(pct, 0), 1)

	filled := int(fill * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.5:
		style = StyleRed
	case pct < 0.9:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
