package queue

import (
	"context"
	"encoding/json"
	"time"
)

// Client publishes messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// EventRoadmapGenerated is emitted once a roadmap has been stored.
const EventRoadmapGenerated = "roadmap.generated"

const messageVersion = 1

// Message is the payload sent to downstream queue consumers.
type Message struct {
	Event      string   `json:"event"`
	RoadmapID  string   `json:"roadmapId"`
	Source     string   `json:"source"`
	Themes     []string `json:"themes"`
	Confidence float64  `json:"confidence"`
	EnqueuedAt string   `json:"enqueuedAt"`
	Version    int      `json:"version"`
}

// NewRoadmapGenerated builds the event for a stored roadmap.
func NewRoadmapGenerated(roadmapID, source string, themes []string, confidence float64, at time.Time) Message {
	if themes == nil {
		themes = []string{}
	}
	return Message{
		Event:      EventRoadmapGenerated,
		RoadmapID:  roadmapID,
		Source:     source,
		Themes:     themes,
		Confidence: confidence,
		EnqueuedAt: at.UTC().Format(time.RFC3339),
		Version:    messageVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
