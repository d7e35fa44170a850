package engine

import "strings"

type tone int

const (
	toneDefault tone = iota
	toneUncertain
	tonePressured
)

// toneOf picks the narrative variant: pressure wins over uncertainty.
func toneOf(signals []Signal) tone {
	switch {
	case HasSignal(signals, SignalPressure):
		return tonePressured
	case HasSignal(signals, SignalUncertainty):
		return toneUncertain
	default:
		return toneDefault
	}
}

const (
	ageHedge     = "especially at your age, "
	trustedAdult = " If you want, you can also talk this through with a trusted adult (parent/guardian, teacher, counselor) to get support."
)

var youngBrackets = map[string]bool{
	"Under 13": true,
	"13-15":    true,
	"16-18":    true,
}

// IsYoungAgeBracket reports whether ageRange is one of the under-19 brackets.
func IsYoungAgeBracket(ageRange string) bool {
	return youngBrackets[strings.TrimSpace(ageRange)]
}

// Appreciation thanks the respondent.
func Appreciation(signals []Signal, ageRange string) string {
	hint := ""
	if IsYoungAgeBracket(ageRange) {
		hint = ageHedge
	}
	switch toneOf(signals) {
	case tonePressured:
		return "Thanks for sharing all of that. It takes courage to think about your future " + hint +
			"when there’s pressure or expectations around you. You’re doing a really mature thing by trying to understand yourself."
	case toneUncertain:
		return "Thank you for answering these questions. Feeling unsure " + hint +
			"is completely normal, and taking time to reflect is a strong first step. You’re not behind—you’re learning what fits you."
	default:
		return "Nice work taking this seriously. Thinking about your direction " + hint +
			"and putting your interests into words is a real skill—and it’s how good plans start."
	}
}

// Closing is the encouragement shown after the roadmap.
func Closing(signals []Signal, ageRange string) string {
	extra := ""
	if IsYoungAgeBracket(ageRange) {
		extra = trustedAdult
	}
	switch toneOf(signals) {
	case tonePressured:
		return "You don’t have to figure everything out at once. Small steps are still real progress, and your path can change as you learn more." + extra
	case toneUncertain:
		return "It’s okay if you’re not 100% sure yet—clarity usually comes from trying small experiments, not from perfect thinking." + extra
	default:
		return "Keep going at your own pace. You’re capable of building something meaningful step by step." + extra
	}
}

// Headline is the short celebratory title of the results.
func Headline(signals []Signal) string {
	switch toneOf(signals) {
	case tonePressured:
		return "Proud of you for taking this step 🌟🙂🎉"
	case toneUncertain:
		return "You’re doing really great — one step at a time ✨😊🎈"
	default:
		return "You’re doing really great 🌟😊🎉"
	}
}
