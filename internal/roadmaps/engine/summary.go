package engine

import (
	"strings"

	"goal-detector/internal/questionnaire"
)

// friendly returns the answer for key, treating opt-out values as absent.
func friendly(responses questionnaire.Responses, key string) string {
	text := responses.String(key)
	switch strings.ToLower(text) {
	case "prefer not to say", "none", "null":
		return ""
	}
	return text
}

// PersonalSummary describes the respondent back to them in a few sentences.
// Bold markers (**) highlight the values taken from their answers.
func PersonalSummary(responses questionnaire.Responses) string {
	context := friendly(responses, questionnaire.KeyContext)
	timePerWeek := friendly(responses, questionnaire.KeyTimePerWeek)
	style := friendly(responses, questionnaire.KeyStyle)
	mood := strings.ToLower(friendly(responses, questionnaire.KeyMood))
	influence := strings.ToLower(friendly(responses, questionnaire.KeyInfluence))
	topics := friendly(responses, questionnaire.KeyTopics)
	interests := responses.List(questionnaire.KeyInterests)

	bits := make([]string, 0, 6)
	if context != "" {
		bits = append(bits, "Right now, you’re **"+strings.ToLower(context)+"**, and you’re taking time to think carefully about your future.")
	} else {
		bits = append(bits, "Right now, you’re exploring your interests and thinking carefully about your future.")
	}

	switch {
	case len(interests) > 0:
		bits = append(bits, "Your interests point toward **"+strings.Join(interests, ", ")+"**.")
	case topics != "":
		bits = append(bits, "You shared a few things you enjoy, which is a strong starting point for finding a direction that fits you.")
	default:
		bits = append(bits, "Even if you’re not fully sure yet, showing up and reflecting is real progress.")
	}

	if timePerWeek != "" {
		bits = append(bits, "You can realistically commit about **"+timePerWeek+" hours/week**, so we’ll keep steps practical and manageable.")
	} else {
		bits = append(bits, "We’ll keep the next steps practical and manageable, so this doesn’t feel overwhelming.")
	}

	if style != "" {
		bits = append(bits, "Your learning style leans toward **"+strings.ToLower(style)+"**, which we’ll use to make the plan feel easier to follow.")
	}

	switch mood {
	case "stressed/pressured", "stressed", "pressured":
		bits = append(bits, "If this feels stressful, that’s completely understandable — the plan below is meant to reduce pressure, not add to it.")
	case "confused", "not sure":
		bits = append(bits, "If you’re feeling unsure, that’s normal — clarity usually comes from small experiments, not perfect answers.")
	}

	switch influence {
	case "family-influenced":
		bits = append(bits, "It also sounds like family expectations may be part of the picture — we’ll aim for options that respect you and your situation.")
	case "a mix of both":
		bits = append(bits, "It sounds like this is a mix of your goals and family expectations — we’ll aim for a path that honors both without losing you.")
	}

	return strings.TrimSpace(strings.Join(bits, " "))
}
