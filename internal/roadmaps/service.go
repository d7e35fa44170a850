package roadmaps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"goal-detector/internal/catalog"
	"goal-detector/internal/personalize"
	"goal-detector/internal/questionnaire"
	"goal-detector/internal/queue"
	"goal-detector/internal/roadmaps/engine"
	"goal-detector/internal/shared/metrics"
	"goal-detector/internal/shared/storage/object"
	"goal-detector/internal/shared/telemetry"
	"goal-detector/internal/shared/util"
)

const (
	tracerName       = "goal-detector/roadmaps"
	exportPrefix     = "roadmaps"
	sourceLocal      = "local"
	sourcePersonal   = "personalized"
	maxProfileLength = 200
)

// GenerateInput is one questionnaire submission.
type GenerateInput struct {
	Profile   Profile
	Responses questionnaire.Responses
}

// Service turns submissions into stored roadmaps.
type Service struct {
	Repo    Repo
	Catalog *catalog.Catalog
	Gateway personalize.Gateway
	// Store archives export documents. Nil disables archival.
	Store object.ObjectStore
	// Events receives a message per stored roadmap. Nil disables publishing.
	Events  queue.Client
	Metrics *metrics.Metrics
	Tracer  trace.Tracer
	Now     func() time.Time
}

// Generate runs the pipeline for in, stores the result and archives its
// export document. Archival failures are logged and do not fail the call.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (Roadmap, error) {
	if err := validateInput(in); err != nil {
		return Roadmap{}, err
	}
	ctx, span := s.tracer().Start(ctx, "roadmaps.generate")
	defer span.End()

	start := time.Now()
	responses := in.Responses.WithDefaults()
	local := engine.BuildLocalPayload(responses, s.Catalog.Goals())
	if len(local.Themes) == 0 {
		s.Metrics.LowSignal()
	}

	payload, source := local, sourceLocal
	gateway := s.Gateway
	if gateway == nil {
		gateway = personalize.NoopGateway{}
	}
	generated, ok := gateway.Personalize(ctx, personalize.Request{
		Responses: responses,
		Interests: responses.List(questionnaire.KeyInterests),
	})
	if ok {
		payload, source = engine.MergePersonalized(local, generated), sourcePersonal
	}

	roadmap := Roadmap{
		ID:        uuid.NewString(),
		Profile:   in.Profile.Normalize(),
		Responses: responses,
		Payload:   payload,
		CreatedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, roadmap); err != nil {
		return Roadmap{}, fmt.Errorf("store roadmap: %w", err)
	}

	elapsed := time.Since(start)
	s.Metrics.RoadmapGenerated(source, elapsed)
	span.SetAttributes(
		attribute.String("roadmap.id", roadmap.ID),
		attribute.String("roadmap.source", source),
		attribute.Int("roadmap.themes", len(payload.Themes)),
	)
	telemetry.Info("roadmap.generated", map[string]any{
		"roadmap_id":  roadmap.ID,
		"source":      source,
		"themes":      themeNames(payload.Themes),
		"signals":     signalNames(payload.Signals),
		"confidence":  payload.Confidence,
		"sections":    len(payload.Roadmap),
		"duration_ms": elapsed.Milliseconds(),
	})

	s.publish(ctx, roadmap, source)
	if key, ok := s.archive(ctx, roadmap); ok {
		roadmap.ExportKey = key
	}
	return roadmap, nil
}

func (s *Service) publish(ctx context.Context, roadmap Roadmap, source string) {
	if s.Events == nil {
		return
	}
	msg := queue.NewRoadmapGenerated(roadmap.ID, source, themeNames(roadmap.Payload.Themes),
		roadmap.Payload.Confidence, roadmap.CreatedAt)
	if err := s.Events.Send(ctx, msg); err != nil {
		telemetry.Warn("event.publish_failed", map[string]any{
			"roadmap_id": roadmap.ID,
			"event":      msg.Event,
			"error":      err,
		})
	}
}

// Get returns a stored roadmap. Ids are UUIDs; anything else is not found.
func (s *Service) Get(ctx context.Context, roadmapID string) (Roadmap, error) {
	if uuid.Validate(roadmapID) != nil {
		return Roadmap{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, roadmapID)
}

// Export returns the encoded export document of a stored roadmap. The
// archived copy is served when present; otherwise the document is rebuilt.
func (s *Service) Export(ctx context.Context, roadmapID string) ([]byte, error) {
	roadmap, err := s.Get(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap.ExportKey != "" && s.Store != nil {
		data, err := s.readArchived(ctx, roadmap.ExportKey)
		if err == nil {
			return data, nil
		}
		telemetry.Warn("export.read_failed", map[string]any{
			"roadmap_id": roadmap.ID,
			"key":        roadmap.ExportKey,
			"error":      err,
		})
	}
	return MarshalDocument(NewDocument(roadmap))
}

func (s *Service) archive(ctx context.Context, roadmap Roadmap) (string, bool) {
	if s.Store == nil {
		return "", false
	}
	key := ExportKey(roadmap)
	fail := func(stage string, err error) (string, bool) {
		s.Metrics.ExportFailed()
		telemetry.Warn("export.failed", map[string]any{
			"roadmap_id": roadmap.ID,
			"key":        key,
			"stage":      stage,
			"error":      err,
		})
		return "", false
	}

	data, err := MarshalDocument(NewDocument(roadmap))
	if err != nil {
		return fail("encode", err)
	}
	if _, err := s.Store.SaveWithKey(ctx, key, ExportContentType, bytes.NewReader(data)); err != nil {
		return fail("save", err)
	}
	if err := s.Repo.SetExportKey(ctx, roadmap.ID, key); err != nil {
		return fail("record", err)
	}
	return key, true
}

func (s *Service) readArchived(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// ExportKey is the object store key of a roadmap's archived document.
func ExportKey(roadmap Roadmap) string {
	return path.Join(exportPrefix, util.HashOwnerKey(roadmap.Profile.OwnerKey()), roadmap.ID+".json")
}

func (s *Service) tracer() trace.Tracer {
	if s.Tracer != nil {
		return s.Tracer
	}
	return otel.Tracer(tracerName)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func validateInput(in GenerateInput) error {
	if len(in.Profile.Name) > maxProfileLength || len(in.Profile.Email) > maxProfileLength {
		return fmt.Errorf("%w: profile fields must be at most %d characters", ErrValidation, maxProfileLength)
	}
	if email := strings.TrimSpace(in.Profile.Email); email != "" && !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	known := make(map[string]struct{}, len(questionnaire.Keys))
	for _, k := range questionnaire.Keys {
		known[k] = struct{}{}
	}
	for key, value := range in.Responses {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("%w: unknown response key %q", ErrValidation, key)
		}
		if !answerValue(value) {
			return fmt.Errorf("%w: response %q must be text or a list of text", ErrValidation, key)
		}
	}
	return nil
}

func answerValue(v any) bool {
	switch t := v.(type) {
	case nil, string, []string:
		return true
	case []any:
		for _, item := range t {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func themeNames(themes []engine.Theme) []string {
	out := make([]string, 0, len(themes))
	for _, t := range themes {
		out = append(out, string(t))
	}
	return out
}

func signalNames(signals []engine.Signal) []string {
	out := make([]string, 0, len(signals))
	for _, s := range signals {
		out = append(out, string(s))
	}
	return out
}
