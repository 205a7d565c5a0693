package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
	ColorCyan    = lipgloss.AdaptiveColor{Dark: "#22D3EE", Light: "#0E7490"}
	ColorRose    = lipgloss.AdaptiveColor{Dark: "#FB7185", Light: "#BE123C"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DimmedStyle mutes completed reminders in the list.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// ScheduleStyle renders the schedule summary badge on a reminder card.
var ScheduleStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// CategoryIcon returns the glyph shown next to a reminder title.
func CategoryIcon(category string) string {
	switch category {
	case "water":
		return "💧"
	case "stretch":
		return "🤸"
	case "eye":
		return "👀"
	case "break":
		return "☕"
	default:
		return "🔔"
	}
}

// CategoryStyle returns a color-coded style for the given category label.
func CategoryStyle(category string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch category {
	case "water":
		return base.Foreground(ColorBlue)
	case "stretch":
		return base.Foreground(ColorOrange)
	case "eye":
		return base.Foreground(ColorGreen)
	case "break":
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}

// UrgencyStyle returns a color-coded style for an urgency level name
// ("chill", "alert", "urgent", "fired").
func UrgencyStyle(urgency string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch urgency {
	case "fired":
		return base.Foreground(ColorRed).Blink(true)
	case "urgent":
		return base.Foreground(ColorRed)
	case "alert":
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGreen)
	}
}

// PriorityStyle returns a color-coded style for the given priority level.
func PriorityStyle(priority int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case 3: // High
		return base.Foreground(ColorRed)
	case 2: // Medium
		return base.Foreground(ColorYellow)
	case 1: // Low
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// WidgetTheme is one visual treatment of the countdown widget, a terminal
// rendition of the original floating widget skins.
type WidgetTheme struct {
	Name   string
	Frame  lipgloss.Style
	Accent lipgloss.Style
	Label  lipgloss.Style
}

// WidgetThemes lists the available widget skins in cycle order.
var WidgetThemes = []WidgetTheme{
	{
		Name: "glass",
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 2),
		Accent: lipgloss.NewStyle().Bold(true).Foreground(ColorWhite),
		Label:  lipgloss.NewStyle().Foreground(ColorGray),
	},
	{
		Name: "cyber",
		Frame: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorCyan).
			Padding(0, 2),
		Accent: lipgloss.NewStyle().Bold(true).Foreground(ColorCyan),
		Label:  lipgloss.NewStyle().Foreground(ColorCyan).Faint(true),
	},
	{
		Name: "retro",
		Frame: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorGray).
			Padding(0, 2),
		Accent: lipgloss.NewStyle().Bold(true).Foreground(ColorWhite),
		Label:  lipgloss.NewStyle().Foreground(ColorGray),
	},
	{
		Name: "sakura",
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorRose).
			Padding(0, 2),
		Accent: lipgloss.NewStyle().Bold(true).Foreground(ColorRose),
		Label:  lipgloss.NewStyle().Foreground(ColorRose).Faint(true),
	},
}

// WidgetThemeByName returns the widget theme with the given name, or the
// first theme when the name is unknown.
func WidgetThemeByName(name string) WidgetTheme {
	for _, wt := range WidgetThemes {
		if wt.Name == name {
			return wt
		}
	}
	return WidgetThemes[0]
}
