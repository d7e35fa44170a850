package engine

import (
	"sort"
	"strings"

	"goal-detector/internal/questionnaire"
	"goal-detector/internal/shared/util"
)

// DefaultMaxThemes is used when ExtractThemes is called with a non-positive limit.
const DefaultMaxThemes = 3

// themeOrder is the registration order; it breaks score ties.
var themeOrder = []Theme{ThemeTech, ThemeHealth, ThemeFinance, ThemeCareer, ThemeCommunity, ThemeCreative}

var themeKeywords = map[Theme][]string{
	ThemeTech:      {"code", "coding", "python", "javascript", "data", "automation", "ai", "ml", "machine", "software", "app", "web"},
	ThemeHealth:    {"fitness", "workout", "gym", "run", "running", "sleep", "nutrition", "diet", "strength"},
	ThemeFinance:   {"budget", "budgeting", "money", "saving", "savings", "invest", "investing", "debt"},
	ThemeCareer:    {"job", "career", "interview", "resume", "portfolio", "promotion", "network", "networking"},
	ThemeCommunity: {"volunteer", "community", "meetup", "friends", "social", "group", "club"},
	ThemeCreative:  {"write", "writing", "music", "art", "design", "draw", "painting", "photography"},
}

// Themes returns every theme in registration order.
func Themes() []Theme {
	return append([]Theme(nil), themeOrder...)
}

// ExtractThemes ranks themes by keyword overlap with the text of all answers.
// It returns an empty slice when nothing matches.
func ExtractThemes(responses questionnaire.Responses, maxThemes int) []Theme {
	if maxThemes <= 0 {
		maxThemes = DefaultMaxThemes
	}
	tokens := util.TokenSet(responseText(responses))
	if len(tokens) == 0 {
		return []Theme{}
	}

	type scored struct {
		theme Theme
		score int
	}
	ranked := make([]scored, 0, len(themeOrder))
	for _, theme := range themeOrder {
		score := 0
		for _, kw := range themeKeywords[theme] {
			if _, ok := tokens[kw]; ok {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{theme: theme, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > maxThemes {
		ranked = ranked[:maxThemes]
	}

	out := make([]Theme, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.theme)
	}
	return out
}

// responseText joins the normalized text of every answer, in key order.
func responseText(responses questionnaire.Responses) string {
	keys := make([]string, 0, len(responses))
	for k := range responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, util.NormalizeText(responses[k]))
	}
	return strings.Join(parts, " ")
}
