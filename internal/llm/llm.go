package llm

import (
	"context"
	"encoding/json"
)

// Client abstracts LLM providers that write roadmaps.
type Client interface {
	GenerateRoadmap(ctx context.Context, input RoadmapInput) (json.RawMessage, error)
}

// RoadmapInput carries the answers the model personalizes from.
type RoadmapInput struct {
	Responses map[string]any
	Interests []string
}

type promptHashSinkKey struct{}

// WithPromptHashSink asks the client to store the hash of the prompt it sends in sink.
func WithPromptHashSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, promptHashSinkKey{}, sink)
}

// PromptHashSinkFromContext returns the sink set by WithPromptHashSink.
func PromptHashSinkFromContext(ctx context.Context) (*string, bool) {
	sink, ok := ctx.Value(promptHashSinkKey{}).(*string)
	return sink, ok
}
