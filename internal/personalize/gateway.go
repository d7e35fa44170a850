package personalize

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"goal-detector/internal/llm"
	"goal-detector/internal/questionnaire"
	"goal-detector/internal/roadmaps/engine"
	"goal-detector/internal/shared/metrics"
	"goal-detector/internal/shared/telemetry"
)

const (
	tracerName     = "goal-detector/personalize"
	defaultTimeout = 30 * time.Second
)

// Request is what the generative provider personalizes from.
type Request struct {
	Responses questionnaire.Responses
	Interests []string
}

// Gateway optionally replaces the local narrative with a generated one.
// A false result means "absent": the caller keeps its local payload.
// Implementations never return errors or panic; failures are absences.
type Gateway interface {
	Personalize(ctx context.Context, req Request) (engine.Payload, bool)
}

// NoopGateway is used when no provider is configured.
type NoopGateway struct{}

// Personalize always reports absence.
func (NoopGateway) Personalize(context.Context, Request) (engine.Payload, bool) {
	return engine.Payload{}, false
}

// Config gates and bounds the provider call.
type Config struct {
	APIKey  string
	Timeout time.Duration
}

// Option customizes the LLM gateway.
type Option func(*LLMGateway)

// WithMetrics records fallbacks in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *LLMGateway) { g.metrics = m }
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(g *LLMGateway) { g.tracer = t }
}

// New returns NoopGateway when the credential is blank or there is no client.
func New(cfg Config, client llm.Client, opts ...Option) Gateway {
	if strings.TrimSpace(cfg.APIKey) == "" || client == nil {
		return NoopGateway{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	g := &LLMGateway{
		client:  client,
		timeout: timeout,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LLMGateway makes a single bounded call to an llm.Client.
type LLMGateway struct {
	client  llm.Client
	timeout time.Duration
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Personalize asks the provider for a roadmap. The returned payload carries
// only the generated fields; see engine.MergePersonalized.
func (g *LLMGateway) Personalize(ctx context.Context, req Request) (payload engine.Payload, ok bool) {
	ctx, span := g.tracer.Start(ctx, "personalize.roadmap",
		trace.WithAttributes(attribute.Int("interests", len(req.Interests))))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			g.fallback(span, "panic", errors.New("provider panicked"))
			payload, ok = engine.Payload{}, false
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var promptHash string
	ctx = llm.WithPromptHashSink(ctx, &promptHash)

	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}
	start := time.Now()
	raw, err := g.client.GenerateRoadmap(ctx, llm.RoadmapInput{
		Responses: map[string]any(req.Responses),
		Interests: interests,
	})
	if err != nil {
		g.fallback(span, transportReason(ctx, err), err)
		return engine.Payload{}, false
	}

	payload, repaired, err := decodeRoadmap(raw)
	if err != nil {
		g.fallback(span, decodeReason(err), err)
		return engine.Payload{}, false
	}

	span.SetAttributes(attribute.Bool("repaired", repaired))
	span.SetStatus(codes.Ok, "")
	telemetry.Info("gateway.personalized", map[string]any{
		"prompt_hash": promptHash,
		"repaired":    repaired,
		"sections":    len(payload.Roadmap),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return payload, true
}

func (g *LLMGateway) fallback(span trace.Span, reason string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	span.SetAttributes(attribute.String("fallback.reason", reason))
	g.metrics.GatewayFallback(reason)
	telemetry.Warn("gateway.fallback", map[string]any{
		"reason": reason,
		"err":    err,
	})
}

func transportReason(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded),
		strings.Contains(strings.ToLower(err.Error()), "timeout"):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}

func decodeReason(err error) string {
	if errors.Is(err, ErrMalformed) {
		return "malformed"
	}
	return "schema"
}
