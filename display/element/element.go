// Package element defines the typed display elements that populate
// dashboard groups: gauges, switches, buttons, indicators, text rows,
// sparklines, and sliders. Each element renders itself to a single
// ANSI-styled row of a given maximum width.
package element

import (
	"fmt"

	"gitlab.com/tinyland/lab/dashgrid/display/theme"
	"gitlab.com/tinyland/lab/dashgrid/internal/format"
)

// Kind identifies the element type and selects its row renderer.
type Kind string

const (
	KindGauge     Kind = "gauge"
	KindSwitch    Kind = "switch"
	KindButton    Kind = "button"
	KindIndicator Kind = "indicator"
	KindText      Kind = "text"
	KindSparkline Kind = "sparkline"
	KindSlider    Kind = "slider"
)

// Level represents the severity of an indicator element.
type Level int

const (
	// LevelOK indicates a healthy or successful state.
	LevelOK Level = iota
	// LevelWarning indicates a degraded state.
	LevelWarning
	// LevelCritical indicates an error or critical failure.
	LevelCritical
	// LevelUnknown indicates an indeterminate state.
	LevelUnknown
	// LevelPending indicates an in-progress state.
	LevelPending
)

// Element is a single labeled value inside a group. Only the fields
// relevant to its Kind are consulted when rendering.
type Element struct {
	// ID uniquely identifies the element within its group.
	ID string
	// Kind selects the row renderer.
	Kind Kind
	// Caption is the label shown on the left of the row.
	Caption string

	// Value is the display string for text, button, and indicator rows.
	Value string
	// Number is the current numeric value for gauge and slider rows.
	Number float64
	// Max is the numeric range for slider rows (0 means 0-100).
	Max float64
	// On is the state of a switch row.
	On bool
	// Level is the severity of an indicator row.
	Level Level
	// History holds the data points of a sparkline row, most recent last.
	History []float64
}

// Interactive reports whether the element responds to selection and
// activation (buttons, switches, sliders).
func (e *Element) Interactive() bool {
	switch e.Kind {
	case KindButton, KindSwitch, KindSlider:
		return true
	default:
		return false
	}
}

// DisplayValue returns the scalar the renderer diffs on. It must change
// whenever the visible content of the row changes.
func (e *Element) DisplayValue() string {
	switch e.Kind {
	case KindGauge:
		return fmt.Sprintf("%.0f%%", clampPercent(e.Number))
	case KindSwitch:
		if e.On {
			return "ON"
		}
		return "OFF"
	case KindSlider:
		// Full precision: sub-unit changes move the handle even when the
		// rounded label stays put.
		return fmt.Sprintf("%g/%g", e.Number, e.sliderMax())
	case KindSparkline:
		// Every point participates in the scaling window, so every point
		// is part of the digest.
		return fmt.Sprint(e.History)
	case KindIndicator:
		return fmt.Sprintf("%d:%s", e.Level, e.Value)
	default:
		return e.Value
	}
}

// Render produces the element's full row at exactly maxWidth visible
// characters, styled with the given theme. Unknown kinds fall back to the
// generic caption-left / value-right formatter.
func (e *Element) Render(maxWidth int, th theme.Theme) string {
	if maxWidth <= 0 {
		return ""
	}

	switch e.Kind {
	case KindGauge:
		return renderGaugeRow(e, maxWidth, th)
	case KindSwitch:
		return renderSwitchRow(e, maxWidth, th)
	case KindButton:
		return renderButtonRow(e, maxWidth, th)
	case KindIndicator:
		return renderIndicatorRow(e, maxWidth, th)
	case KindSparkline:
		return renderSparklineRow(e, maxWidth, th)
	case KindSlider:
		return renderSliderRow(e, maxWidth, th)
	default:
		return renderFallbackRow(e, maxWidth, th)
	}
}

// renderFallbackRow is the generic caption-left / value-right formatter
// used for text rows and any unrecognized kind.
func renderFallbackRow(e *Element, maxWidth int, th theme.Theme) string {
	caption := th.Caption.Render(e.Caption)
	value := th.Value.Render(e.Value)
	return format.AlignText(caption, value, maxWidth)
}

func (e *Element) sliderMax() float64 {
	if e.Max > 0 {
		return e.Max
	}
	return 100
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
