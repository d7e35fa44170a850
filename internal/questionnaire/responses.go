package questionnaire

import (
	"strings"

	"goal-detector/internal/shared/util"
)

// Question keys accepted in a submission.
const (
	KeyContext            = "context"
	KeyAgeRange           = "age_range"
	KeyInterests          = "interests"
	KeyTopics             = "topics"
	KeyOutcome            = "outcome"
	KeyLongTermVision     = "long_term_vision"
	KeyFamilyExpectations = "family_expectations"
	KeyInfluence          = "influence"
	KeyTimePerWeek        = "time_per_week"
	KeyStyle              = "style"
	KeyMood               = "mood"
	KeyConstraints        = "constraints"
	KeyHardNos            = "hard_nos"
	KeyMotivation         = "motivation"
	KeyCommunity          = "community"
)

// Keys lists every question key in questionnaire order.
var Keys = []string{
	KeyContext, KeyAgeRange, KeyInterests, KeyTopics, KeyOutcome, KeyLongTermVision,
	KeyFamilyExpectations, KeyInfluence, KeyTimePerWeek, KeyStyle, KeyMood,
	KeyConstraints, KeyHardNos, KeyMotivation, KeyCommunity,
}

const preferNotToSay = "Prefer not to say"

// Responses holds one submission. Values are strings, lists of strings, or absent.
type Responses map[string]any

// String returns the answer for key as trimmed text. Lists are space-joined.
func (r Responses) String(key string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(util.NormalizeText(r[key]))
}

// List returns the answer for key as a list. A non-empty string is a one-item list.
func (r Responses) List(key string) []string {
	if r == nil {
		return nil
	}
	switch v := r[key].(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			if s := util.NormalizeText(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := util.NormalizeText(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// Canonical returns a copy with constraints flattened to a comma-joined string,
// the shape the wizard submits.
func (r Responses) Canonical() Responses {
	out := make(Responses, len(r))
	for k, v := range r {
		out[k] = v
	}
	switch out[KeyConstraints].(type) {
	case []string, []any:
		out[KeyConstraints] = strings.Join(out.List(KeyConstraints), ", ")
	}
	return out
}

// WithDefaults returns a canonical copy with submission defaults for unanswered keys.
func (r Responses) WithDefaults() Responses {
	out := r.Canonical()
	for _, key := range Keys {
		if _, ok := out[key]; ok {
			continue
		}
		out[key] = submissionDefault(key)
	}
	return out
}

func submissionDefault(key string) any {
	switch key {
	case KeyAgeRange, KeyInfluence, KeyMood:
		return preferNotToSay
	case KeyCommunity:
		return "Solo"
	case KeyInterests, KeyMotivation:
		return []string{}
	default:
		return ""
	}
}
