package engine

import (
	"strings"

	"goal-detector/internal/catalog"
	"goal-detector/internal/questionnaire"
)

const (
	MaxNextSteps        = 6
	MaxPlanPhases       = 4
	MaxRecommendedGoals = 2

	// InterestOther is the section used when no interest was selected.
	InterestOther = "Other"

	stepsPerGoal = 2
)

var interestThemes = map[string][]Theme{
	"Technology":       {ThemeTech, ThemeCareer},
	"Design":           {ThemeCreative, ThemeCareer},
	"Business":         {ThemeCareer, ThemeFinance},
	"Content Creation": {ThemeCreative, ThemeCommunity},
	"Public Service":   {ThemeCommunity, ThemeCareer},
	"Research":         {ThemeTech, ThemeCareer},
	"Health":           {ThemeHealth},
	"Finance":          {ThemeFinance},
	"Community":        {ThemeCommunity},
	"Creative":         {ThemeCreative},
	InterestOther:      {},
}

var interestMeanings = map[string]string{
	"Technology":       "Using computers and tools to build things (apps, websites, data projects, automations).",
	"Design":           "Making things easier and nicer to use—visual design, UI/UX, and creative problem solving.",
	"Business":         "Understanding how ideas become real: customers, strategy, operations, and leadership.",
	"Content Creation": "Sharing ideas through video, writing, audio, or social posts—and building a voice over time.",
	"Public Service":   "Work that helps people directly: education, government, nonprofits, health support, advocacy.",
	"Research":         "Exploring questions deeply, testing ideas, and learning through evidence and curiosity.",
	"Health":           "Building habits that improve energy, strength, mental health, and overall wellbeing.",
	"Finance":          "Managing money calmly: budgeting, saving, and understanding basics over time.",
	"Community":        "Finding people who share interests and building supportive connections.",
	"Creative":         "Expressing ideas through art, writing, music, photography, or making things.",
}

const genericMeaning = "Exploring what you enjoy and what kind of work/life fits you best."

var exampleSkills = map[string][]string{
	"Technology":       {"Python basics", "building a small app", "automation", "problem solving"},
	"Design":           {"UI basics", "color/type", "wireframing", "user testing"},
	"Business":         {"customer research", "basic analytics", "planning", "communication"},
	"Content Creation": {"writing hooks", "simple editing", "posting consistently", "storytelling"},
	"Public Service":   {"active listening", "community research", "program planning", "collaboration"},
	"Research":         {"asking good questions", "finding sources", "note-taking", "basic data skills"},
	"Health":           {"habit building", "basic training plan", "tracking progress", "recovery basics"},
	"Finance":          {"budgeting", "saving systems", "understanding interest", "goal setting"},
	"Community":        {"finding groups", "showing up consistently", "conversation starters", "follow-through"},
	"Creative":         {"daily practice", "getting feedback", "shipping small pieces", "building a style"},
}

var starterSteps = []string{
	"Pick one tiny starter project/habit you can do this week.",
	"Spend 30–60 minutes exploring 2 beginner resources and choose one.",
	"Do one small practice session and write down what felt fun vs. draining.",
}

var threeMonthPlan = []string{
	"Weeks 1–2: Explore (try 2 small experiments; pick one path to continue).",
	"Weeks 3–6: Build basics (short practice sessions + one simple milestone each week).",
	"Weeks 7–10: Create something real (a small project, portfolio piece, or habit streak).",
	"Weeks 11–12: Reflect + level up (what worked, what didn’t, and your next goal).",
}

// InterestThemes returns the themes an interest label maps to. Unknown labels map to none.
func InterestThemes(interest string) []Theme {
	return append([]Theme(nil), interestThemes[interest]...)
}

// InterestMeaning explains an interest label in one sentence.
func InterestMeaning(interest string) string {
	if m, ok := interestMeanings[interest]; ok {
		return m
	}
	return genericMeaning
}

// ExampleSkills lists skills typical for an interest. Unknown labels get an empty list.
func ExampleSkills(interest string) []string {
	return append([]string{}, exampleSkills[interest]...)
}

// ThreeMonthPlan is the phase template shared by every section.
func ThreeMonthPlan() []string {
	return append([]string{}, threeMonthPlan...)
}

// BuildInterestRoadmap assembles the section for one interest. It never fails:
// unknown interests fall back to the generic meaning and starter steps.
func BuildInterestRoadmap(interest string, responses questionnaire.Responses, goals []catalog.Goal) InterestSection {
	matched := matchInterestGoals(InterestThemes(interest), goals)

	steps := make([]string, 0, MaxNextSteps)
	if len(matched) > 0 {
		for _, g := range matched {
			n := stepsPerGoal
			if len(g.FirstSteps) < n {
				n = len(g.FirstSteps)
			}
			steps = append(steps, g.FirstSteps[:n]...)
		}
	} else {
		steps = append(steps, starterSteps...)
	}
	if len(steps) > MaxNextSteps {
		steps = steps[:MaxNextSteps]
	}

	plan := ThreeMonthPlan()
	if len(plan) > MaxPlanPhases {
		plan = plan[:MaxPlanPhases]
	}

	return InterestSection{
		Interest:         interest,
		Meaning:          InterestMeaning(interest),
		Why:              whyItFits(responses),
		NextSteps:        steps,
		Plan3Months:      plan,
		ExampleSkills:    ExampleSkills(interest),
		RecommendedGoals: projectGoals(matched),
	}
}

// matchInterestGoals keeps the first goals, in catalog order, whose theme or
// tags fall in themes.
func matchInterestGoals(themes []Theme, goals []catalog.Goal) []catalog.Goal {
	if len(themes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		set[string(t)] = struct{}{}
	}
	out := make([]catalog.Goal, 0, MaxRecommendedGoals)
	for _, g := range goals {
		if len(out) == MaxRecommendedGoals {
			break
		}
		if _, ok := set[g.Theme]; ok {
			out = append(out, g)
			continue
		}
		for _, tag := range g.Tags {
			if _, ok := set[tag]; ok {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

func whyItFits(responses questionnaire.Responses) string {
	var clauses []string
	if motivations := responses.List(questionnaire.KeyMotivation); len(motivations) > 0 {
		clauses = append(clauses, "it matches what motivates you ("+strings.Join(motivations, ", ")+")")
	}
	if style := responses.String(questionnaire.KeyStyle); style != "" {
		clauses = append(clauses, "you prefer learning via "+strings.ToLower(style))
	}
	if t := responses.String(questionnaire.KeyTimePerWeek); t != "" {
		clauses = append(clauses, "it can fit into about "+t+" hours/week")
	}
	if c := responses.String(questionnaire.KeyConstraints); c != "" && strings.ToLower(c) != "none" {
		clauses = append(clauses, "we’ll keep constraints in mind ("+c+")")
	}
	if len(clauses) == 0 {
		return "This could be a good fit because it lines up with your interests and your current situation."
	}
	return "This could be a good fit because " + strings.Join(clauses, "; ") + "."
}
