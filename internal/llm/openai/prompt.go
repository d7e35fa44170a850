package openai

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"goal-detector/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const systemPromptRoadmap = "You write personalized goal roadmaps. Respond with a single JSON object only. No markdown. Output must match output_schema exactly."

// roadmapRequest is the JSON object sent as the user message.
type roadmapRequest struct {
	Role         string          `json:"role"`
	Rules        []string        `json:"rules"`
	Responses    map[string]any  `json:"responses"`
	Interests    []string        `json:"interests"`
	OutputSchema json.RawMessage `json:"output_schema"`
}

// BuildRoadmapPrompt creates the chat messages for a roadmap request.
func BuildRoadmapPrompt(input llm.RoadmapInput) ([]Message, error) {
	responses := input.Responses
	if responses == nil {
		responses = map[string]any{}
	}
	interests := input.Interests
	if interests == nil {
		interests = []string{}
	}
	body, err := json.Marshal(roadmapRequest{
		Role:         llm.RoadmapRole,
		Rules:        llm.RoadmapRules(),
		Responses:    responses,
		Interests:    interests,
		OutputSchema: llm.RoadmapSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode roadmap request: %w", err)
	}
	return []Message{
		{Role: "system", Content: systemPromptRoadmap},
		{Role: "user", Content: string(body)},
	}, nil
}

func promptStringFromMessages(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}

func hashPromptString(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
