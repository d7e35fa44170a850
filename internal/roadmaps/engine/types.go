package engine

import "goal-detector/internal/catalog"

// Theme is a coarse topic detected from free text.
type Theme string

const (
	ThemeTech      Theme = "tech"
	ThemeHealth    Theme = "health"
	ThemeFinance   Theme = "finance"
	ThemeCareer    Theme = "career"
	ThemeCommunity Theme = "community"
	ThemeCreative  Theme = "creative"
)

// Signal is an emotional state detected from answers or the explicit mood.
type Signal string

const (
	SignalUncertainty Signal = "uncertainty"
	SignalPressure    Signal = "pressure"
	SignalCuriosity   Signal = "curiosity"
)

// RecommendedGoal is the display projection of a catalog goal.
type RecommendedGoal struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Theme          string             `json:"theme"`
	TimeframeWeeks int                `json:"timeframe_weeks"`
	Difficulty     string             `json:"difficulty"`
	Description    string             `json:"description"`
	FirstSteps     []string           `json:"first_steps"`
	Resources      []catalog.Resource `json:"resources"`
}

// InterestSection is the roadmap block for one selected interest.
type InterestSection struct {
	Interest         string            `json:"interest"`
	Meaning          string            `json:"meaning"`
	Why              string            `json:"why"`
	NextSteps        []string          `json:"next_steps"`
	Plan3Months      []string          `json:"plan_3_months"`
	ExampleSkills    []string          `json:"example_skills"`
	RecommendedGoals []RecommendedGoal `json:"recommended_goals"`
}

// GoalClarity names the main outcome and the interests that follow it.
type GoalClarity struct {
	PrimaryGoal        string   `json:"primary_goal"`
	SecondaryInterests []string `json:"secondary_interests"`
}

// Payload is the assembled roadmap result.
type Payload struct {
	Themes          []Theme           `json:"themes"`
	Signals         []Signal          `json:"signals"`
	Confidence      float64           `json:"confidence"`
	Personalized    bool              `json:"personalized"`
	Headline        string            `json:"headline"`
	Appreciation    string            `json:"appreciation"`
	PersonalSummary string            `json:"personal_summary"`
	GoalClarity     GoalClarity       `json:"goal_clarity"`
	Roadmap         []InterestSection `json:"roadmap"`
	Closing         string            `json:"closing"`
	TopGoals        []RecommendedGoal `json:"top_goals"`
}

func projectGoal(g catalog.Goal) RecommendedGoal {
	return RecommendedGoal{
		ID:             g.ID,
		Title:          g.Title,
		Theme:          g.Theme,
		TimeframeWeeks: g.TimeframeWeeks,
		Difficulty:     g.Difficulty,
		Description:    g.Description,
		FirstSteps:     append([]string{}, g.FirstSteps...),
		Resources:      append([]catalog.Resource{}, g.Resources...),
	}
}

func projectGoals(goals []catalog.Goal) []RecommendedGoal {
	out := make([]RecommendedGoal, 0, len(goals))
	for _, g := range goals {
		out = append(out, projectGoal(g))
	}
	return out
}
