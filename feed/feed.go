// Package feed generates simulated live values for the demo dashboard.
// It stands in for the external client that supplies real values, walking
// gauges and sparklines through plausible ranges without any network calls.
package feed

import (
	"fmt"
	"math/rand"
	"time"

	"gitlab.com/tinyland/lab/dashgrid/display/element"
	"gitlab.com/tinyland/lab/dashgrid/display/grid"
	"gitlab.com/tinyland/lab/dashgrid/internal/format"
)

// historyLen is the number of sparkline points retained per element.
const historyLen = 30

// tickStep is the simulated time advanced per tick for the uptime row.
const tickStep = 500 * time.Millisecond

// Feed owns the demo groups and mutates their element values on each tick.
type Feed struct {
	rng          *rand.Rand
	groups       []*grid.Group
	ticks        int
	lastIncident time.Time
}

// New creates a feed with the given random seed. The same seed produces
// the same sequence of values, which keeps visual tests reproducible.
func New(seed int64) *Feed {
	f := &Feed{rng: rand.New(rand.NewSource(seed))}
	f.groups = f.buildGroups()
	return f
}

// Groups returns the demo group list for the layout engine.
func (f *Feed) Groups() []*grid.Group {
	return f.groups
}

// buildGroups assembles the demo dashboard: one group per subsystem, using
// every element kind.
func (f *Feed) buildGroups() []*grid.Group {
	return []*grid.Group{
		{
			ID:    "system",
			Title: "System",
			Elements: []*element.Element{
				{ID: "cpu", Kind: element.KindGauge, Caption: "CPU", Number: 35},
				{ID: "mem", Kind: element.KindGauge, Caption: "Memory", Number: 58},
				{ID: "load", Kind: element.KindSparkline, Caption: "Load", History: []float64{0.4, 0.5, 0.4}},
				{ID: "uptime", Kind: element.KindText, Caption: "Uptime", Value: "0s"},
			},
		},
		{
			ID:    "network",
			Title: "Network",
			Elements: []*element.Element{
				{ID: "rx", Kind: element.KindSparkline, Caption: "RX", History: []float64{12, 14, 11}},
				{ID: "tx", Kind: element.KindSparkline, Caption: "TX", History: []float64{3, 4, 5}},
				{ID: "vpn", Kind: element.KindSwitch, Caption: "VPN", On: true},
				{ID: "gateway", Kind: element.KindIndicator, Caption: "Gateway", Value: "healthy", Level: element.LevelOK},
			},
		},
		{
			ID:    "services",
			Title: "Services",
			Elements: []*element.Element{
				{ID: "api", Kind: element.KindIndicator, Caption: "API", Value: "healthy", Level: element.LevelOK},
				{ID: "db", Kind: element.KindIndicator, Caption: "Database", Value: "healthy", Level: element.LevelOK},
				{ID: "cache", Kind: element.KindSwitch, Caption: "Cache", On: true},
				{ID: "incident", Kind: element.KindText, Caption: "Last incident", Value: "never"},
				{ID: "restart", Kind: element.KindButton, Caption: "Restart All", Value: "enter"},
			},
		},
		{
			ID:    "tuning",
			Title: "Tuning",
			Elements: []*element.Element{
				{ID: "workers", Kind: element.KindSlider, Caption: "Workers", Number: 8, Max: 32},
				{ID: "verbosity", Kind: element.KindSlider, Caption: "Verbosity", Number: 2, Max: 5},
				{ID: "autoscale", Kind: element.KindSwitch, Caption: "Autoscale", On: false},
			},
		},
	}
}

// Tick advances every simulated value by one step and returns
// human-readable descriptions of notable changes for the message log.
func (f *Feed) Tick() []string {
	f.ticks++
	var events []string

	for _, g := range f.groups {
		for _, el := range g.Elements {
			switch el.Kind {
			case element.KindGauge:
				el.Number = f.walk(el.Number, 0, 100, 6)
			case element.KindSparkline:
				last := 0.0
				if len(el.History) > 0 {
					last = el.History[len(el.History)-1]
				}
				el.History = append(el.History, f.walk(last, 0, 100, 8))
				if len(el.History) > historyLen {
					el.History = el.History[len(el.History)-historyLen:]
				}
			case element.KindIndicator:
				if f.rng.Intn(40) == 0 {
					el.Level, el.Value = f.flipLevel(el.Level)
					if el.Level != element.LevelOK {
						f.lastIncident = time.Now()
					}
					events = append(events, fmt.Sprintf("%s/%s is now %s", g.ID, el.ID, el.Value))
				}
			case element.KindText:
				switch el.ID {
				case "uptime":
					el.Value = format.FormatDuration(time.Duration(f.ticks) * tickStep)
				case "incident":
					el.Value = format.FormatTimeSince(f.lastIncident)
				}
			}
		}
	}

	return events
}

// walk takes one bounded random-walk step.
func (f *Feed) walk(v, min, max, step float64) float64 {
	v += (f.rng.Float64() - 0.5) * 2 * step
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

// flipLevel toggles an indicator between healthy and degraded states.
func (f *Feed) flipLevel(current element.Level) (element.Level, string) {
	if current == element.LevelOK {
		if f.rng.Intn(3) == 0 {
			return element.LevelCritical, "critical"
		}
		return element.LevelWarning, "degraded"
	}
	return element.LevelOK, "healthy"
}
