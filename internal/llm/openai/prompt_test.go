package openai

import (
	"strings"
	"testing"

	"goal-detector/internal/llm"
)

func TestPromptHashDeterministic(t *testing.T) {
	input := llm.RoadmapInput{
		Responses: map[string]any{"topics": "coding", "mood": "Curious"},
		Interests: []string{"Technology"},
	}
	first, err := BuildRoadmapPrompt(input)
	if err != nil {
		t.Fatalf("BuildRoadmapPrompt: %v", err)
	}
	second, _ := BuildRoadmapPrompt(input)
	if hashPromptString(promptStringFromMessages(first)) != hashPromptString(promptStringFromMessages(second)) {
		t.Fatalf("expected deterministic prompt hash")
	}

	input.Interests = []string{"Design"}
	alt, _ := BuildRoadmapPrompt(input)
	if hashPromptString(promptStringFromMessages(first)) == hashPromptString(promptStringFromMessages(alt)) {
		t.Fatalf("expected prompt hash to change when input changes")
	}
}

func TestBuildRoadmapPromptEmptyInput(t *testing.T) {
	messages, err := BuildRoadmapPrompt(llm.RoadmapInput{})
	if err != nil {
		t.Fatalf("BuildRoadmapPrompt: %v", err)
	}
	if len(messages) != 2 || messages[0].Role != "system" || messages[1].Role != "user" {
		t.Fatalf("unexpected messages %+v", messages)
	}
	want := `"responses":{},"interests":[]`
	if !strings.Contains(messages[1].Content, want) {
		t.Fatalf("expected empty responses and interests in %s", messages[1].Content)
	}
}
