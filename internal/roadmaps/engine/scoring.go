package engine

import (
	"sort"
	"strings"

	"goal-detector/internal/catalog"
	"goal-detector/internal/questionnaire"
	"goal-detector/internal/shared/util"
)

const (
	// DefaultTopN is used when RecommendGoals is called with a non-positive limit.
	DefaultTopN = 5

	themeTagWeight  = 2.5
	tokenTagWeight  = 1.0
	shortTimeBonus  = 1.0
	mediumTimeBonus = 0.5
	moneyBonus      = 0.3

	confidenceScale = 6.0
)

// fallbackThemes drives the starter set when no theme is detected.
var fallbackThemes = []Theme{ThemeCareer, ThemeTech, ThemeHealth, ThemeFinance, ThemeCommunity}

// ScoreGoal rates how well goal fits the detected themes and the answers.
func ScoreGoal(goal catalog.Goal, themes []Theme, responses questionnaire.Responses) float64 {
	themeSet := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		themeSet[strings.ToLower(string(t))] = struct{}{}
	}
	tokens := util.TokenSet(strings.ToLower(responseText(responses)))

	score := 0.0
	for _, tag := range uniqueTags(goal.Tags) {
		if _, ok := themeSet[tag]; ok {
			score += themeTagWeight
		}
		if _, ok := tokens[tag]; ok {
			score += tokenTagWeight
		}
	}

	switch strings.ToLower(util.NormalizeText(responses[questionnaire.KeyTimePerWeek])) {
	case "0-2", "0–2":
		if goal.TimeframeWeeks <= 2 {
			score += shortTimeBonus
		}
	case "3-5", "3–5":
		if goal.TimeframeWeeks <= 4 {
			score += mediumTimeBonus
		}
	}

	if hasConstraint(responses, "money") && goal.HasTag(string(ThemeFinance)) {
		score += moneyBonus
	}
	return score
}

// RecommendGoals returns the best topN goals with the detected themes and a
// confidence in [0,1]. Without any theme it returns a starter set spanning the
// fallback themes and a confidence of 0.
func RecommendGoals(goals []catalog.Goal, responses questionnaire.Responses, topN int) ([]catalog.Goal, []Theme, float64) {
	if topN <= 0 {
		topN = DefaultTopN
	}
	themes := ExtractThemes(responses, DefaultMaxThemes)
	if len(themes) == 0 {
		starter := make([]catalog.Goal, 0, len(fallbackThemes))
		for _, theme := range fallbackThemes {
			for _, g := range goals {
				if g.Theme == string(theme) {
					starter = append(starter, g)
					break
				}
			}
		}
		if len(starter) > topN {
			starter = starter[:topN]
		}
		return starter, []Theme{}, 0.0
	}

	type scored struct {
		goal  catalog.Goal
		score float64
	}
	ranked := make([]scored, 0, len(goals))
	for _, g := range goals {
		ranked = append(ranked, scored{goal: g, score: ScoreGoal(g, themes, responses)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	confidence := 0.0
	if len(ranked) > 0 {
		confidence = ranked[0].score / confidenceScale
		if confidence > 1 {
			confidence = 1
		}
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	top := make([]catalog.Goal, 0, len(ranked))
	for _, r := range ranked {
		top = append(top, r.goal)
	}
	return top, themes, confidence
}

// hasConstraint normalizes the constraints answer to one line before
// splitting on commas, so list items are space-joined first.
func hasConstraint(responses questionnaire.Responses, want string) bool {
	text := util.NormalizeText(responses[questionnaire.KeyConstraints])
	for _, part := range strings.Split(text, ",") {
		if strings.ToLower(strings.TrimSpace(part)) == want {
			return true
		}
	}
	return false
}

// uniqueTags treats tags as a set, keeping first occurrence order.
func uniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
