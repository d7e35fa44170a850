package engine

import (
	"strings"

	"goal-detector/internal/catalog"
	"goal-detector/internal/questionnaire"
)

const (
	defaultPrimaryGoal    = "Get clarity"
	maxSecondaryInterests = 3
)

// BuildLocalPayload runs the deterministic pipeline over one submission.
func BuildLocalPayload(responses questionnaire.Responses, goals []catalog.Goal) Payload {
	responses = responses.Canonical()

	top, themes, confidence := RecommendGoals(goals, responses, DefaultTopN)
	signals := DetectSignals(responses)
	ageRange := responses.String(questionnaire.KeyAgeRange)
	interests := responses.List(questionnaire.KeyInterests)

	sections := make([]InterestSection, 0, len(interests))
	for _, interest := range interests {
		sections = append(sections, BuildInterestRoadmap(interest, responses, goals))
	}
	if len(sections) == 0 {
		sections = append(sections, BuildInterestRoadmap(InterestOther, responses, goals))
	}

	return Payload{
		Themes:          themes,
		Signals:         signals,
		Confidence:      confidence,
		Personalized:    false,
		Headline:        Headline(signals),
		Appreciation:    Appreciation(signals, ageRange),
		PersonalSummary: PersonalSummary(responses),
		GoalClarity:     goalClarity(responses, interests),
		Roadmap:         sections,
		Closing:         Closing(signals, ageRange),
		TopGoals:        projectGoals(top),
	}
}

// MergePersonalized takes the narrative and roadmap of a generated payload and
// keeps the locally computed themes, signals, confidence, headline and goals.
// A blank generated summary is replaced by the local one.
func MergePersonalized(local, generated Payload) Payload {
	out := local
	out.Personalized = true
	out.Appreciation = generated.Appreciation
	out.PersonalSummary = generated.PersonalSummary
	out.GoalClarity = generated.GoalClarity
	out.Roadmap = generated.Roadmap
	out.Closing = generated.Closing
	if strings.TrimSpace(out.PersonalSummary) == "" {
		out.PersonalSummary = local.PersonalSummary
	}
	if out.GoalClarity.SecondaryInterests == nil {
		out.GoalClarity.SecondaryInterests = []string{}
	}
	if out.Roadmap == nil {
		out.Roadmap = []InterestSection{}
	}
	return out
}

func goalClarity(responses questionnaire.Responses, interests []string) GoalClarity {
	primary := responses.String(questionnaire.KeyOutcome)
	if primary == "" {
		primary = defaultPrimaryGoal
	}
	secondary := []string{}
	if len(interests) > 1 {
		end := len(interests)
		if end > 1+maxSecondaryInterests {
			end = 1 + maxSecondaryInterests
		}
		secondary = append(secondary, interests[1:end]...)
	}
	return GoalClarity{PrimaryGoal: primary, SecondaryInterests: secondary}
}
