package personalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"goal-detector/internal/roadmaps/engine"
)

var (
	// ErrMalformed means the provider output was not JSON, even after repair.
	ErrMalformed = errors.New("malformed roadmap JSON")
	// ErrSchema means the output was JSON but did not match the roadmap schema.
	ErrSchema = errors.New("roadmap does not match schema")
)

const (
	maxGeneratedSteps    = engine.MaxNextSteps
	maxGeneratedPlan     = engine.MaxPlanPhases
	maxGeneratedExamples = 12
)

type generatedClarity struct {
	PrimaryGoal        *string  `json:"primary_goal"`
	SecondaryInterests []string `json:"secondary_interests"`
}

type generatedSection struct {
	Interest      *string  `json:"interest"`
	WhatItMeans   string   `json:"what_it_means"`
	WhyItSuitsYou string   `json:"why_it_suits_you"`
	BeginnerSteps []string `json:"beginner_steps"`
	Plan3Months   []string `json:"plan_3_months"`
	Examples      []string `json:"examples"`
}

type generatedRoadmap struct {
	Appreciation    *string             `json:"appreciation"`
	PersonalSummary *string             `json:"personal_summary"`
	GoalClarity     *generatedClarity   `json:"goal_clarity"`
	Roadmap         *[]generatedSection `json:"roadmap"`
	Closing         *string             `json:"closing"`
}

// decodeRoadmap parses provider output, repairing near-JSON once. It reports
// whether a repair was needed.
func decodeRoadmap(raw []byte) (engine.Payload, bool, error) {
	data := bytes.TrimSpace(raw)
	repaired := false
	if !json.Valid(data) {
		fixed, err := jsonrepair.JSONRepair(string(data))
		if err == nil && !json.Valid([]byte(fixed)) {
			err = errors.New("repaired output is still invalid")
		}
		if err != nil {
			return engine.Payload{}, false, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		data = []byte(fixed)
		repaired = true
	}
	if len(data) == 0 || data[0] != '{' {
		return engine.Payload{}, repaired, fmt.Errorf("%w: top level is not an object", ErrSchema)
	}

	var doc generatedRoadmap
	if err := json.Unmarshal(data, &doc); err != nil {
		return engine.Payload{}, repaired, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	payload, err := doc.toPayload()
	if err != nil {
		return engine.Payload{}, repaired, err
	}
	return payload, repaired, nil
}

// toPayload checks required fields. A missing or blank personal_summary is
// accepted; the caller fills it from the local summary.
func (d generatedRoadmap) toPayload() (engine.Payload, error) {
	switch {
	case blank(d.Appreciation):
		return engine.Payload{}, schemaErr("appreciation")
	case blank(d.Closing):
		return engine.Payload{}, schemaErr("closing")
	case d.GoalClarity == nil || blank(d.GoalClarity.PrimaryGoal):
		return engine.Payload{}, schemaErr("goal_clarity.primary_goal")
	case d.Roadmap == nil:
		return engine.Payload{}, schemaErr("roadmap")
	}

	sections := make([]engine.InterestSection, 0, len(*d.Roadmap))
	for i, s := range *d.Roadmap {
		if blank(s.Interest) {
			return engine.Payload{}, schemaErr(fmt.Sprintf("roadmap[%d].interest", i))
		}
		sections = append(sections, engine.InterestSection{
			Interest:         strings.TrimSpace(*s.Interest),
			Meaning:          strings.TrimSpace(s.WhatItMeans),
			Why:              strings.TrimSpace(s.WhyItSuitsYou),
			NextSteps:        cleanList(s.BeginnerSteps, maxGeneratedSteps),
			Plan3Months:      cleanList(s.Plan3Months, maxGeneratedPlan),
			ExampleSkills:    cleanList(s.Examples, maxGeneratedExamples),
			RecommendedGoals: []engine.RecommendedGoal{},
		})
	}

	summary := ""
	if d.PersonalSummary != nil {
		summary = strings.TrimSpace(*d.PersonalSummary)
	}
	return engine.Payload{
		Personalized:    true,
		Appreciation:    strings.TrimSpace(*d.Appreciation),
		PersonalSummary: summary,
		GoalClarity: engine.GoalClarity{
			PrimaryGoal:        strings.TrimSpace(*d.GoalClarity.PrimaryGoal),
			SecondaryInterests: cleanList(d.GoalClarity.SecondaryInterests, 0),
		},
		Roadmap: sections,
		Closing: strings.TrimSpace(*d.Closing),
	}, nil
}

func schemaErr(field string) error {
	return fmt.Errorf("%w: %s is required", ErrSchema, field)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// cleanList drops blank entries and truncates to max when max > 0.
func cleanList(items []string, max int) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
