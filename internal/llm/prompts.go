package llm

import (
	_ "embed"
	"encoding/json"
)

//go:embed prompts/roadmap_schema.json
var roadmapSchema []byte

// RoadmapRole is the persona given to the model.
const RoadmapRole = "You are an empathetic, student-friendly AI career and goal discovery assistant."

// RoadmapRules returns the behavioural rules sent with every roadmap request.
func RoadmapRules() []string {
	return []string{
		"Friendly, supportive, simple language.",
		"Respect emotional and family context; never judge.",
		"Avoid medical/financial/legal advice; keep it educational and general.",
		"Be age-appropriate when age_range is provided.",
		"Return JSON only.",
	}
}

// RoadmapSchema returns the JSON schema the model output must follow.
func RoadmapSchema() json.RawMessage {
	out := make(json.RawMessage, len(roadmapSchema))
	copy(out, roadmapSchema)
	return out
}
