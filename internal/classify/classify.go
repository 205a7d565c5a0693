// Package classify infers a reminder category from free text. It is a
// pure keyword lookup used by the authoring form to pre-select a category
// as the user types a title.
package classify

import (
	"strings"

	"github.com/nhle/miniremind/internal/model"
)

// keywords maps categories to the title fragments that imply them.
// Earlier categories win on a tie with later ones.
var keywords = []struct {
	category string
	words    []string
}{
	{model.CategoryWater, []string{"water", "drink", "hydrate", "hydration"}},
	{model.CategoryStretch, []string{"stretch", "stand", "walk", "move", "posture"}},
	{model.CategoryEye, []string{"eye", "eyes", "screen", "look away", "20-20-20"}},
	{model.CategoryBreak, []string{"break", "rest", "coffee", "tea", "pause", "nap"}},
}

// Classify returns the category implied by text, or general when no
// keyword matches. Matching is case-insensitive substring search.
func Classify(text string) string {
	lowered := strings.ToLower(text)
	for _, entry := range keywords {
		for _, w := range entry.words {
			if strings.Contains(lowered, w) {
				return entry.category
			}
		}
	}
	return model.CategoryGeneral
}
