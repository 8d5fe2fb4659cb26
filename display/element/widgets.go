package element

import (
	"fmt"
	"math"
	"strings"

	"gitlab.com/tinyland/lab/dashgrid/display/theme"
	"gitlab.com/tinyland/lab/dashgrid/internal/format"
)

// Gauge bar thresholds: at warning the bar turns yellow, at danger red.
const (
	gaugeThresholdWarning = 70
	gaugeThresholdDanger  = 90
)

// Bar characters for gauges and sliders.
const (
	gaugeFilledChar = "█"
	gaugeEmptyChar  = "░"
	sliderTrackChar = "─"
	sliderHandle    = "◉"
	maxBarWidth     = 20
)

// sparkBlocks contains 8 unicode block characters for sparkline rendering,
// ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// levelIcons maps each indicator level to its display icon.
var levelIcons = map[Level]string{
	LevelOK:       "●",
	LevelWarning:  "●",
	LevelCritical: "●",
	LevelUnknown:  "○",
	LevelPending:  "◌",
}

// levelStyle returns the theme style for an indicator level.
func levelStyle(level Level, th theme.Theme) func(...string) string {
	switch level {
	case LevelOK:
		return th.Success.Render
	case LevelWarning:
		return th.Warning.Render
	case LevelCritical:
		return th.Danger.Render
	case LevelPending:
		return th.Value.Render
	default:
		return th.Muted.Render
	}
}

// gaugeStyle returns the bar style for the given percentage based on thresholds.
func gaugeStyle(percent float64, th theme.Theme) func(...string) string {
	switch {
	case percent >= gaugeThresholdDanger:
		return th.Danger.Render
	case percent >= gaugeThresholdWarning:
		return th.Warning.Render
	default:
		return th.Success.Render
	}
}

// renderBar builds a colored horizontal bar of the given width.
// Format: ████████░░░░
func renderBar(percent float64, width int, th theme.Theme) string {
	filledCount := int(math.Round(percent / 100.0 * float64(width)))
	if filledCount > width {
		filledCount = width
	}
	emptyCount := width - filledCount

	filled := gaugeStyle(percent, th)(strings.Repeat(gaugeFilledChar, filledCount))
	empty := th.Muted.Render(strings.Repeat(gaugeEmptyChar, emptyCount))
	return filled + empty
}

// renderGaugeRow renders a caption, a threshold-colored bar, and the
// percentage. When the row is too narrow for a useful bar, only the
// percentage is shown.
// Format: Caption  ████████░░░░ 42%
func renderGaugeRow(e *Element, maxWidth int, th theme.Theme) string {
	percent := clampPercent(e.Number)
	pct := fmt.Sprintf("%3.0f%%", percent)
	caption := th.Caption.Render(e.Caption)

	barWidth := maxWidth - format.VisibleLength(caption) - len(pct) - 2
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	if barWidth < 5 {
		return format.AlignText(caption, th.Value.Render(pct), maxWidth)
	}

	right := renderBar(percent, barWidth, th) + " " + pct
	return format.AlignText(caption, right, maxWidth)
}

// renderSwitchRow renders a caption with an ON/OFF state on the right.
func renderSwitchRow(e *Element, maxWidth int, th theme.Theme) string {
	caption := th.Caption.Render(e.Caption)
	var state string
	if e.On {
		state = th.Active.Render("◉ ON")
	} else {
		state = th.Inactive.Render("○ OFF")
	}
	return format.AlignText(caption, state, maxWidth)
}

// renderButtonRow renders a bracketed button label, with an optional hint
// value on the right.
// Format: [ Caption ]        hint
func renderButtonRow(e *Element, maxWidth int, th theme.Theme) string {
	label := th.Value.Render("[ " + e.Caption + " ]")
	if e.Value == "" {
		return format.PadOrTruncateVisible(label, maxWidth)
	}
	return format.AlignText(label, th.Muted.Render(e.Value), maxWidth)
}

// renderIndicatorRow renders a caption with a level-colored status dot and
// value text on the right.
// Format: Caption        ● healthy
func renderIndicatorRow(e *Element, maxWidth int, th theme.Theme) string {
	caption := th.Caption.Render(e.Caption)
	styled := levelStyle(e.Level, th)
	icon := styled(levelIcons[e.Level])
	right := icon
	if e.Value != "" {
		right += " " + styled(e.Value)
	}
	return format.AlignText(caption, right, maxWidth)
}

// renderSparklineRow renders a caption with a block-character sparkline of
// the element's history on the right.
func renderSparklineRow(e *Element, maxWidth int, th theme.Theme) string {
	caption := th.Caption.Render(e.Caption)

	sparkWidth := maxWidth - format.VisibleLength(caption) - 1
	if sparkWidth > maxBarWidth {
		sparkWidth = maxBarWidth
	}
	if sparkWidth < 3 || len(e.History) == 0 {
		return format.AlignText(caption, th.Muted.Render("(no data)"), maxWidth)
	}

	spark := th.Value.Render(sparkline(e.History, sparkWidth))
	return format.AlignText(caption, spark, maxWidth)
}

// sparkline maps the last width data points onto 8-level block characters,
// auto-scaled to the visible range.
func sparkline(data []float64, width int) string {
	if width < len(data) {
		data = data[len(data)-width:]
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	runes := make([]rune, 0, width)
	for _, v := range data {
		if minVal == maxVal {
			// All values equal: use mid-level block.
			runes = append(runes, sparkBlocks[len(sparkBlocks)/2])
			continue
		}
		normalized := (v - minVal) / (maxVal - minVal)
		normalized = math.Max(0, math.Min(1, normalized))
		idx := int(normalized * float64(len(sparkBlocks)-1))
		runes = append(runes, sparkBlocks[idx])
	}

	// Left-pad with spaces when history is shorter than the slot.
	if width > len(runes) {
		return strings.Repeat(" ", width-len(runes)) + string(runes)
	}
	return string(runes)
}

// renderSliderRow renders a caption with a track, a position handle, and
// the current value on the right.
// Format: Caption  ───◉────── 30/100
func renderSliderRow(e *Element, maxWidth int, th theme.Theme) string {
	caption := th.Caption.Render(e.Caption)
	max := e.sliderMax()
	value := fmt.Sprintf("%.0f/%.0f", e.Number, max)

	trackWidth := maxWidth - format.VisibleLength(caption) - len(value) - 2
	if trackWidth > maxBarWidth {
		trackWidth = maxBarWidth
	}
	if trackWidth < 5 {
		return format.AlignText(caption, th.Value.Render(value), maxWidth)
	}

	ratio := e.Number / max
	ratio = math.Max(0, math.Min(1, ratio))
	pos := int(math.Round(ratio * float64(trackWidth-1)))

	track := th.Muted.Render(strings.Repeat(sliderTrackChar, pos)) +
		th.Active.Render(sliderHandle) +
		th.Muted.Render(strings.Repeat(sliderTrackChar, trackWidth-1-pos))

	right := track + " " + th.Value.Render(value)
	return format.AlignText(caption, right, maxWidth)
}
