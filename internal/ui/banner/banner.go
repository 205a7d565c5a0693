// Package banner renders the in-app alert overlay shown while a reminder
// is ringing.
package banner

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/miniremind/internal/model"
	"github.com/nhle/miniremind/internal/theme"
)

// funMessages are small encouragements shown under the alert title,
// picked per category.
var funMessages = map[string][]string{
	model.CategoryWater: {
		"Your body is mostly water. Top it up!",
		"A glass now beats a headache later.",
		"Hydration check: how about a sip?",
	},
	model.CategoryStretch: {
		"Shoulders down, chin up, arms wide.",
		"Your spine called. It wants a stretch.",
		"Stand up and reach for the ceiling.",
	},
	model.CategoryEye: {
		"20 seconds, 20 feet away. Your eyes earned it.",
		"Blink a few times and look out the window.",
		"Screens can wait. Your eyes cannot.",
	},
	model.CategoryBreak: {
		"Step away for a moment. The code will keep.",
		"A short walk now, a clearer head after.",
		"Breaks are part of the work.",
	},
	model.CategoryGeneral: {
		"Small nudges, big days.",
		"Future you says thanks.",
		"You set this one for a reason.",
	},
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.ColorRed).
			Padding(1, 3)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite)

	messageStyle = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			MarginTop(1)
)

// Render draws the alert overlay for the active reminder, centered in the
// given window.
func Render(r *model.Reminder, width, height int) string {
	if r == nil {
		return ""
	}

	lines := []string{
		titleStyle.Render(theme.CategoryIcon(r.Category) + " " + r.Title),
	}
	if r.Description != "" {
		lines = append(lines, messageStyle.Render(r.Description))
	}
	lines = append(lines,
		messageStyle.Render(funMessage(r)),
		hintStyle.Render("enter complete · esc dismiss"),
	)

	box := frameStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// funMessage picks a message for the reminder. The pick is stable per
// reminder and firing so the banner does not flicker between ticks.
func funMessage(r *model.Reminder) string {
	msgs, ok := funMessages[r.Category]
	if !ok {
		msgs = funMessages[model.CategoryGeneral]
	}

	h := fnv.New32a()
	h.Write([]byte(r.ID))
	seed := h.Sum32() + uint32(r.FiredCount)
	return msgs[int(seed)%len(msgs)]
}
