package catalog

// Resource is a labelled link attached to a goal.
type Resource struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Goal is a catalog entry describing a concrete, time-boxed objective.
type Goal struct {
	ID             string     `json:"id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Theme          string     `json:"theme" yaml:"theme"`
	TimeframeWeeks int        `json:"timeframe_weeks" yaml:"timeframe_weeks"`
	Difficulty     string     `json:"difficulty" yaml:"difficulty"`
	Tags           []string   `json:"tags" yaml:"tags"`
	Description    string     `json:"description" yaml:"description"`
	FirstSteps     []string   `json:"first_steps" yaml:"first_steps"`
	Resources      []Resource `json:"resources" yaml:"resources"`
}

// HasTag reports whether the goal carries tag (tags are stored lowercased).
func (g Goal) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Catalog is an immutable, ordered set of goals.
type Catalog struct {
	goals []Goal
	byID  map[string]int
}

// New builds a catalog from already validated goals.
func New(goals []Goal) *Catalog {
	c := &Catalog{
		goals: make([]Goal, len(goals)),
		byID:  make(map[string]int, len(goals)),
	}
	copy(c.goals, goals)
	for i, g := range c.goals {
		c.byID[g.ID] = i
	}
	return c
}

// Goals returns the goals in catalog order. Callers must not modify the
// slices inside the returned goals.
func (c *Catalog) Goals() []Goal {
	if c == nil {
		return nil
	}
	out := make([]Goal, len(c.goals))
	copy(out, c.goals)
	return out
}

// Get returns the goal with the given id.
func (c *Catalog) Get(id string) (Goal, bool) {
	if c == nil {
		return Goal{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Goal{}, false
	}
	return c.goals[i], true
}

// Len returns the number of goals.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.goals)
}
