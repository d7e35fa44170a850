package engine

import (
	"strings"

	"goal-detector/internal/questionnaire"
	"goal-detector/internal/shared/util"
)

type signalRule struct {
	signal   Signal
	triggers []string
	moods    []string
}

// signalRules are checked in order; substrings, not tokens, so "confus" hits "confusing".
var signalRules = []signalRule{
	{
		signal:   SignalUncertainty,
		triggers: []string{"confus", "lost", "stuck", "uncertain", "not sure", "overwhelm"},
		moods:    []string{"confused", "not sure"},
	},
	{
		signal:   SignalPressure,
		triggers: []string{"pressure", "stressed", "stress", "anxious", "anxiety", "worried"},
		moods:    []string{"stressed/pressured", "stressed", "pressured"},
	},
	{
		signal:   SignalCuriosity,
		triggers: []string{"excited", "hope", "motivated", "energized", "curious", "interest"},
		moods:    []string{"excited", "curious"},
	},
}

var signalFields = []string{
	questionnaire.KeyTopics,
	questionnaire.KeyLongTermVision,
	questionnaire.KeyFamilyExpectations,
	questionnaire.KeyHardNos,
}

// DetectSignals scans the reflective answers and the explicit mood.
// Text matches come first; the mood can add one signal not already present.
func DetectSignals(responses questionnaire.Responses) []Signal {
	parts := make([]string, 0, len(signalFields))
	for _, key := range signalFields {
		parts = append(parts, util.NormalizeText(responses[key]))
	}
	text := strings.ToLower(strings.Join(parts, " "))

	signals := make([]Signal, 0, len(signalRules))
	for _, rule := range signalRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(text, trigger) {
				signals = append(signals, rule.signal)
				break
			}
		}
	}

	mood := strings.ToLower(util.NormalizeText(responses[questionnaire.KeyMood]))
	for _, rule := range signalRules {
		if HasSignal(signals, rule.signal) {
			continue
		}
		for _, m := range rule.moods {
			if mood == m {
				signals = append(signals, rule.signal)
				break
			}
		}
	}
	return signals
}

// HasSignal reports whether s is in signals.
func HasSignal(signals []Signal, s Signal) bool {
	for _, v := range signals {
		if v == s {
			return true
		}
	}
	return false
}
