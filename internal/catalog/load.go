package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultTheme          = "other"
	defaultDifficulty     = "beginner"
	defaultTimeframeWeeks = 4
)

//go:embed goals.yaml
var defaultGoals []byte

// ErrEmptyCatalog is returned when a catalog document has no goals.
var ErrEmptyCatalog = errors.New("catalog has no goals")

type rawDocument struct {
	Goals []rawGoal `yaml:"goals"`
}

type rawGoal struct {
	ID             *string    `yaml:"id"`
	Title          *string    `yaml:"title"`
	Theme          *string    `yaml:"theme"`
	TimeframeWeeks *int       `yaml:"timeframe_weeks"`
	Difficulty     *string    `yaml:"difficulty"`
	Tags           []string   `yaml:"tags"`
	Description    string     `yaml:"description"`
	FirstSteps     []string   `yaml:"first_steps"`
	Resources      []Resource `yaml:"resources"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	c, err := Parse(defaultGoals)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog document from path. An empty path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML or JSON catalog document with a top-level "goals" list.
func Parse(data []byte) (*Catalog, error) {
	var doc rawDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(doc.Goals) == 0 {
		return nil, ErrEmptyCatalog
	}

	goals := make([]Goal, 0, len(doc.Goals))
	seen := make(map[string]struct{}, len(doc.Goals))
	for i, raw := range doc.Goals {
		goal, err := raw.toGoal()
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", i, err)
		}
		if _, dup := seen[goal.ID]; dup {
			return nil, fmt.Errorf("goal %d: duplicate id %q", i, goal.ID)
		}
		seen[goal.ID] = struct{}{}
		goals = append(goals, goal)
	}
	return New(goals), nil
}

func (r rawGoal) toGoal() (Goal, error) {
	id := strings.TrimSpace(deref(r.ID))
	if id == "" {
		return Goal{}, errors.New("id is required")
	}
	title := strings.TrimSpace(deref(r.Title))
	if title == "" {
		return Goal{}, fmt.Errorf("goal %q: title is required", id)
	}

	g := Goal{
		ID:             id,
		Title:          title,
		Theme:          defaultTheme,
		TimeframeWeeks: defaultTimeframeWeeks,
		Difficulty:     defaultDifficulty,
		Description:    r.Description,
		Tags:           make([]string, 0, len(r.Tags)),
		FirstSteps:     append([]string{}, r.FirstSteps...),
		Resources:      append([]Resource{}, r.Resources...),
	}
	if r.Theme != nil {
		g.Theme = *r.Theme
	}
	if r.Difficulty != nil {
		g.Difficulty = *r.Difficulty
	}
	if r.TimeframeWeeks != nil {
		g.TimeframeWeeks = *r.TimeframeWeeks
	}
	if g.TimeframeWeeks <= 0 {
		return Goal{}, fmt.Errorf("goal %q: timeframe_weeks must be positive, got %d", id, g.TimeframeWeeks)
	}
	for _, t := range r.Tags {
		g.Tags = append(g.Tags, strings.ToLower(t))
	}
	return g, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
