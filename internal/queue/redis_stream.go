package queue

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	payloadField     = "payload"
	defaultStreamLen = 10000
)

// StreamAdder is the subset of the redis client used to append to a stream.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamClient appends messages to a Redis stream. The stream is trimmed
// approximately to maxLen entries.
type StreamClient struct {
	client StreamAdder
	stream string
	maxLen int64
}

// NewStreamClient constructs a Redis stream-backed queue client.
func NewStreamClient(client StreamAdder, stream string, maxLen int64) (*StreamClient, error) {
	stream = strings.TrimSpace(stream)
	if stream == "" {
		return nil, fmt.Errorf("stream name is required")
	}
	if maxLen <= 0 {
		maxLen = defaultStreamLen
	}
	return &StreamClient{client: client, stream: stream, maxLen: maxLen}, nil
}

// Send appends a message to the configured stream.
func (s *StreamClient) Send(ctx context.Context, msg Message) error {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode stream message: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{payloadField: string(payload)},
	}).Err()
	if err != nil {
		return fmt.Errorf("redis xadd %s: %w", s.stream, err)
	}
	return nil
}

var _ Client = (*StreamClient)(nil)
