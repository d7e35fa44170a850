package questionnaire

import (
	"errors"
	"fmt"
	"strings"
)

// FieldKind is the input control a field expects.
type FieldKind string

const (
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multi_select"
	KindText        FieldKind = "text"
)

// Field is a single question within a step.
type Field struct {
	Key           string    `json:"key"`
	Label         string    `json:"label"`
	Kind          FieldKind `json:"kind"`
	Options       []string  `json:"options,omitempty"`
	Optional      bool      `json:"optional"`
	MaxSelections int       `json:"max_selections,omitempty"`
	Placeholder   string    `json:"placeholder,omitempty"`
}

// Step groups the fields shown together.
type Step struct {
	Title   string  `json:"title"`
	Caption string  `json:"caption,omitempty"`
	Fields  []Field `json:"fields"`
}

var (
	ErrUnknownField         = errors.New("unknown field")
	ErrFieldNotInStep       = errors.New("field is not part of the current step")
	ErrInvalidOption        = errors.New("value is not one of the field options")
	ErrTooManySelections    = errors.New("too many selections")
	ErrInvalidValue         = errors.New("value has the wrong shape for the field")
	ErrSubmitBeforeLastStep = errors.New("submit is only allowed on the last step")
)

var interestOptions = []string{
	"Technology", "Design", "Business", "Content Creation", "Public Service",
	"Research", "Health", "Finance", "Community", "Creative", "Other",
}

var steps = []Step{
	{
		Title: "Current status",
		Fields: []Field{
			{Key: KeyContext, Label: "What best describes you right now?", Kind: KindSelect,
				Options: []string{"Student", "Working professional", "Exploring", "Career change", "Other"}},
			{Key: KeyAgeRange, Label: "Age range (optional)", Kind: KindSelect, Optional: true,
				Options: []string{preferNotToSay, "Under 13", "13-15", "16-18", "19-24", "25+"}},
		},
	},
	{
		Title:   "Interest discovery",
		Caption: "If you're unsure, pick 1-2 options that feel most interesting right now.",
		Fields: []Field{
			{Key: KeyInterests, Label: "What areas are you most interested in? (Pick a few)", Kind: KindMultiSelect,
				Options: interestOptions},
		},
	},
	{
		Title: "What you enjoy",
		Fields: []Field{
			{Key: KeyTopics, Label: "What topics or activities do you enjoy the most? (2-3 words or a short sentence)",
				Kind: KindText, Placeholder: "Example: coding, drawing, helping people, making videos"},
		},
	},
	{
		Title: "Short-term goal",
		Fields: []Field{
			{Key: KeyOutcome, Label: "What outcome do you want in the next 3 months?", Kind: KindSelect,
				Options: []string{"Learn a skill", "Build a project", "Get clarity", "Prepare for a career change", "Build a habit"}},
		},
	},
	{
		Title: "Long-term vision",
		Fields: []Field{
			{Key: KeyLongTermVision, Label: "Where do you see yourself in the next 5 years? (Short reflective answer)",
				Kind: KindText, Placeholder: "Example: Doing work I enjoy, earning stable income, and feeling confident in my skills."},
		},
	},
	{
		Title:   "Family and social context (optional)",
		Caption: "Only answer what feels comfortable. You can leave these blank.",
		Fields: []Field{
			{Key: KeyFamilyExpectations, Label: "What are your family's expectations from you? (optional)",
				Kind: KindText, Optional: true, Placeholder: "Example: They want me to choose a stable career."},
			{Key: KeyInfluence, Label: "Are your current goals mostly... (optional)", Kind: KindSelect, Optional: true,
				Options: []string{preferNotToSay, "My own choice", "Family-influenced", "A mix of both", "Not sure"}},
		},
	},
	{
		Title: "Time and learning style",
		Fields: []Field{
			{Key: KeyTimePerWeek, Label: "How much time can you realistically give per week?", Kind: KindSelect,
				Options: []string{"0-2", "3-5", "6-10", "10+"}},
			{Key: KeyStyle, Label: "How do you prefer to learn?", Kind: KindSelect,
				Options: []string{"Hands-on projects", "Videos", "Reading", "Mentorship", "Mixed"}},
			{Key: KeyMood, Label: "How are you feeling about your goals right now? (optional)", Kind: KindSelect, Optional: true,
				Options: []string{preferNotToSay, "Excited", "Curious", "Confused", "Stressed/pressured", "Not sure"}},
		},
	},
	{
		Title: "Constraints and boundaries",
		Fields: []Field{
			{Key: KeyConstraints, Label: "Any constraints we should respect? (optional)", Kind: KindMultiSelect, Optional: true,
				Options: []string{"Time", "Money", "Device", "Schedule", "Anxiety/overwhelm", "None"}},
			{Key: KeyHardNos, Label: `Any "hard no's" or limitations we should respect? (optional)`, Kind: KindText, Optional: true,
				Placeholder: `Example: "No public speaking", "Low budget", "No running"`},
		},
	},
	{
		Title: "Motivation and community (optional)",
		Fields: []Field{
			{Key: KeyMotivation, Label: "What motivates you most? (Pick up to 2)", Kind: KindMultiSelect, Optional: true,
				MaxSelections: 2, Options: []string{"Curiosity", "Career impact", "Health/energy", "Social/community", "Creativity"}},
			{Key: KeyCommunity, Label: "Do you want community involvement?", Kind: KindSelect, Optional: true,
				Options: []string{"Solo", "Small group", "Public community"}},
		},
	},
}

// Steps returns the questionnaire definition in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// InterestOptions returns the selectable interest labels.
func InterestOptions() []string {
	return append([]string(nil), interestOptions...)
}

func lookupField(key string) (Field, int, bool) {
	for i, s := range steps {
		for _, f := range s.Fields {
			if f.Key == key {
				return f, i, true
			}
		}
	}
	return Field{}, 0, false
}

// Wizard walks a respondent through the steps one at a time. It is owned by
// a single caller and is not safe for concurrent use.
type Wizard struct {
	step    int
	answers Responses
}

func NewWizard() *Wizard {
	return &Wizard{answers: Responses{}}
}

// Index is the zero-based position of the current step.
func (w *Wizard) Index() int { return w.step }

// Current returns the step being answered.
func (w *Wizard) Current() Step { return steps[w.step] }

// Last reports whether the current step is the final one.
func (w *Wizard) Last() bool { return w.step == len(steps)-1 }

// Progress is the fraction of steps reached, counting the current one.
func (w *Wizard) Progress() float64 {
	return float64(w.step+1) / float64(len(steps))
}

// Next advances one step. It returns false on the last step.
func (w *Wizard) Next() bool {
	if w.Last() {
		return false
	}
	w.step++
	return true
}

// Back returns to the previous step. It returns false on the first step.
func (w *Wizard) Back() bool {
	if w.step == 0 {
		return false
	}
	w.step--
	return true
}

// Answer records a value for a field of the current step.
func (w *Wizard) Answer(key string, value any) error {
	field, idx, ok := lookupField(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	if idx != w.step {
		return fmt.Errorf("%w: %s", ErrFieldNotInStep, key)
	}
	normalized, err := validate(field, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	w.answers[key] = normalized
	return nil
}

// Answers returns a copy of what has been recorded so far.
func (w *Wizard) Answers() Responses {
	out := make(Responses, len(w.answers))
	for k, v := range w.answers {
		out[k] = v
	}
	return out
}

// Submit returns the completed responses with defaults applied. Unanswered
// selects take their first option, the way the form preselects it.
func (w *Wizard) Submit() (Responses, error) {
	if !w.Last() {
		return nil, ErrSubmitBeforeLastStep
	}
	out := w.Answers()
	for _, s := range steps {
		for _, f := range s.Fields {
			if _, ok := out[f.Key]; ok || f.Kind != KindSelect {
				continue
			}
			out[f.Key] = f.Options[0]
		}
	}
	return out.WithDefaults(), nil
}

// Reset clears all answers and returns to the first step.
func (w *Wizard) Reset() {
	w.step = 0
	w.answers = Responses{}
}

func validate(f Field, value any) (any, error) {
	switch f.Kind {
	case KindText:
		s, ok := value.(string)
		if !ok {
			return nil, ErrInvalidValue
		}
		return strings.TrimSpace(s), nil
	case KindSelect:
		s, ok := value.(string)
		if !ok {
			return nil, ErrInvalidValue
		}
		if !contains(f.Options, s) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOption, s)
		}
		return s, nil
	case KindMultiSelect:
		var picked []string
		switch v := value.(type) {
		case []string:
			picked = v
		case string:
			picked = []string{v}
		case []any:
			picked = Responses{"v": v}.List("v")
		default:
			return nil, ErrInvalidValue
		}
		out := make([]string, 0, len(picked))
		for _, p := range picked {
			if !contains(f.Options, p) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidOption, p)
			}
			if !contains(out, p) {
				out = append(out, p)
			}
		}
		if f.MaxSelections > 0 && len(out) > f.MaxSelections {
			return nil, fmt.Errorf("%w: at most %d", ErrTooManySelections, f.MaxSelections)
		}
		return out, nil
	}
	return nil, ErrInvalidValue
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
