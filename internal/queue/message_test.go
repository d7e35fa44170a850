package queue

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := NewRoadmapGenerated("rm-123", "local", []string{"tech"}, 0.5,
		time.Date(2026, 1, 30, 22, 0, 0, 0, time.FixedZone("x", 3600)))

	if msg.EnqueuedAt != "2026-01-30T21:00:00Z" {
		t.Fatalf("expected UTC timestamp, got %s", msg.EnqueuedAt)
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	var got Message
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode message: %v", err)
	}

	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, msg)
	}
}

func TestNewRoadmapGeneratedNeverNilThemes(t *testing.T) {
	msg := NewRoadmapGenerated("rm-1", "local", nil, 0, time.Now())
	if msg.Themes == nil || msg.Event != EventRoadmapGenerated || msg.Version != 1 {
		t.Fatalf("unexpected message %+v", msg)
	}
}
