package theme

import "github.com/charmbracelet/lipgloss"

// Preset defines a named color scheme from which a full Theme is built.
type Preset struct {
	Name        string
	Description string
	// Colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color
	SelectedBg lipgloss.Color
	SelectedFg lipgloss.Color
	// RoundedBorders selects the rounded box glyph set.
	RoundedBorders bool
}

// Predefined presets.
var (
	// MonitoringPreset is the default dark scheme for status dashboards.
	MonitoringPreset = Preset{
		Name:           "monitoring",
		Description:    "Dark scheme for status dashboards",
		Primary:        lipgloss.Color("#7C3AED"),
		Secondary:      lipgloss.Color("#06B6D4"),
		Success:        lipgloss.Color("#22C55E"),
		Warning:        lipgloss.Color("#EAB308"),
		Danger:         lipgloss.Color("#EF4444"),
		Muted:          lipgloss.Color("#6B7280"),
		Text:           lipgloss.Color("#E5E7EB"),
		SelectedBg:     lipgloss.Color("#7C3AED"),
		SelectedFg:     lipgloss.Color("#FFFFFF"),
		RoundedBorders: true,
	}

	// MinimalPreset is a clean, low-distraction scheme.
	MinimalPreset = Preset{
		Name:           "minimal",
		Description:    "Clean minimal scheme",
		Primary:        lipgloss.Color("#8B5CF6"),
		Secondary:      lipgloss.Color("#67E8F9"),
		Success:        lipgloss.Color("#4ADE80"),
		Warning:        lipgloss.Color("#FCD34D"),
		Danger:         lipgloss.Color("#F87171"),
		Muted:          lipgloss.Color("#9CA3AF"),
		Text:           lipgloss.Color("#F3F4F6"),
		SelectedBg:     lipgloss.Color("#374151"),
		SelectedFg:     lipgloss.Color("#F9FAFB"),
		RoundedBorders: false,
	}

	// FullPreset is a rich scheme with brighter accents.
	FullPreset = Preset{
		Name:           "full",
		Description:    "Rich scheme with bright accents",
		Primary:        lipgloss.Color("#A78BFA"),
		Secondary:      lipgloss.Color("#22D3EE"),
		Success:        lipgloss.Color("#34D399"),
		Warning:        lipgloss.Color("#FBBF24"),
		Danger:         lipgloss.Color("#FB7185"),
		Muted:          lipgloss.Color("#D1D5DB"),
		Text:           lipgloss.Color("#F9FAFB"),
		SelectedBg:     lipgloss.Color("#22D3EE"),
		SelectedFg:     lipgloss.Color("#0F172A"),
		RoundedBorders: true,
	}
)

// allPresets is the canonical list of available presets.
var allPresets = []Preset{MonitoringPreset, MinimalPreset, FullPreset}

// GetPreset returns the preset matching the given name.
// Unknown names return MonitoringPreset as the default.
func GetPreset(name string) Preset {
	for _, p := range allPresets {
		if p.Name == name {
			return p
		}
	}
	return MonitoringPreset
}

// AllPresets returns all available presets.
func AllPresets() []Preset {
	out := make([]Preset, len(allPresets))
	copy(out, allPresets)
	return out
}

// Names returns the preset names in declaration order, for cycling at
// runtime and for flag help text.
func Names() []string {
	names := make([]string, len(allPresets))
	for i, p := range allPresets {
		names[i] = p.Name
	}
	return names
}

// Build constructs the full style set for a preset.
func Build(p Preset) Theme {
	box := SharpBox
	if p.RoundedBorders {
		box = RoundedBox
	}

	return Theme{
		Name:     p.Name,
		Caption:  lipgloss.NewStyle().Foreground(p.Text),
		Value:    lipgloss.NewStyle().Foreground(p.Secondary),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Border:   lipgloss.NewStyle().Foreground(p.Muted),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(p.Success),
		Inactive: lipgloss.NewStyle().Foreground(p.Muted),
		Selected: lipgloss.NewStyle().Background(p.SelectedBg).Foreground(p.SelectedFg),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Prompt:   lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		Success:  lipgloss.NewStyle().Foreground(p.Success),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning),
		Danger:   lipgloss.NewStyle().Foreground(p.Danger),
		Box:      box,
	}
}

// Get is shorthand for Build(GetPreset(name)).
func Get(name string) Theme {
	return Build(GetPreset(name))
}
