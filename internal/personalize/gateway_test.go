package personalize

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-detector/internal/llm"
	"goal-detector/internal/questionnaire"
	"goal-detector/internal/shared/metrics"
)

type stubClient struct {
	raw   string
	err   error
	delay time.Duration
	panic bool
	got   llm.RoadmapInput
	calls int
}

func (s *stubClient) GenerateRoadmap(ctx context.Context, input llm.RoadmapInput) (json.RawMessage, error) {
	s.calls++
	s.got = input
	if s.panic {
		panic("boom")
	}
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.raw), nil
}

const validRoadmap = `{
  "appreciation": "Thanks for sharing.",
  "personal_summary": "You enjoy coding.",
  "goal_clarity": {"primary_goal": "Build a project", "secondary_interests": ["Design", " "]},
  "roadmap": [{
    "interest": "Technology",
    "what_it_means": "Building with computers.",
    "why_it_suits_you": "You like automation.",
    "beginner_steps": ["a", "b", "c", "d", "e", "f", "g", ""],
    "plan_3_months": ["w1", "w2", "w3", "w4", "w5"],
    "examples": ["Python"]
  }],
  "closing": "Keep going."
}`

func newGateway(t *testing.T, client llm.Client, timeout time.Duration) (Gateway, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(Config{APIKey: "sk-test", Timeout: timeout}, client, WithMetrics(metrics.New(reg))), reg
}

func fallbacks(t *testing.T, reg *prometheus.Registry, reason string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "goal_detector_gateway_fallbacks_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "reason" && l.GetValue() == reason {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestNewWithoutCredentialIsNoop(t *testing.T) {
	client := &stubClient{raw: validRoadmap}
	g := New(Config{APIKey: "  "}, client)
	_, ok := g.Personalize(context.Background(), Request{})
	assert.False(t, ok)
	assert.IsType(t, NoopGateway{}, g)
	assert.Equal(t, 0, client.calls)

	assert.IsType(t, NoopGateway{}, New(Config{APIKey: "sk"}, nil))
}

func TestPersonalizeSuccess(t *testing.T) {
	client := &stubClient{raw: validRoadmap}
	g, _ := newGateway(t, client, time.Second)

	req := Request{
		Responses: questionnaire.Responses{questionnaire.KeyTopics: "coding"},
		Interests: []string{"Technology"},
	}
	p, ok := g.Personalize(context.Background(), req)
	require.True(t, ok)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, []string{"Technology"}, client.got.Interests)
	assert.Equal(t, "coding", client.got.Responses[questionnaire.KeyTopics])

	assert.True(t, p.Personalized)
	assert.Equal(t, "Thanks for sharing.", p.Appreciation)
	assert.Equal(t, "You enjoy coding.", p.PersonalSummary)
	assert.Equal(t, "Build a project", p.GoalClarity.PrimaryGoal)
	assert.Equal(t, []string{"Design"}, p.GoalClarity.SecondaryInterests)
	require.Len(t, p.Roadmap, 1)
	s := p.Roadmap[0]
	assert.Equal(t, "Building with computers.", s.Meaning)
	assert.Len(t, s.NextSteps, 6)
	assert.Len(t, s.Plan3Months, 4)
	assert.Equal(t, []string{"Python"}, s.ExampleSkills)
	assert.Equal(t, "Keep going.", p.Closing)
}

func TestPersonalizeRepairsNearJSON(t *testing.T) {
	raw := `{"appreciation": "hi", "goal_clarity": {"primary_goal": "Get clarity", "secondary_interests": [],}, "roadmap": [], "closing": "bye",}`
	g, _ := newGateway(t, &stubClient{raw: raw}, time.Second)
	p, ok := g.Personalize(context.Background(), Request{})
	require.True(t, ok)
	assert.Equal(t, "", p.PersonalSummary)
	assert.Empty(t, p.Roadmap)
}

func TestPersonalizeFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		client *stubClient
		reason string
	}{
		{name: "transport", client: &stubClient{err: errors.New("connection refused")}, reason: "transport"},
		{name: "timeout", client: &stubClient{raw: validRoadmap, delay: time.Second}, reason: "timeout"},
		{name: "not_object", client: &stubClient{raw: `[1, 2, 3]`}, reason: "schema"},
		{name: "missing_closing", client: &stubClient{raw: `{"appreciation":"a","goal_clarity":{"primary_goal":"g"},"roadmap":[]}`}, reason: "schema"},
		{name: "missing_roadmap", client: &stubClient{raw: `{"appreciation":"a","goal_clarity":{"primary_goal":"g"},"closing":"c"}`}, reason: "schema"},
		{name: "wrong_type", client: &stubClient{raw: `{"appreciation":1,"goal_clarity":{"primary_goal":"g"},"roadmap":[],"closing":"c"}`}, reason: "schema"},
		{name: "section_without_interest", client: &stubClient{raw: `{"appreciation":"a","goal_clarity":{"primary_goal":"g"},"roadmap":[{"what_it_means":"x"}],"closing":"c"}`}, reason: "schema"},
		{name: "panic", client: &stubClient{panic: true}, reason: "panic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, reg := newGateway(t, tc.client, 50*time.Millisecond)
			p, ok := g.Personalize(context.Background(), Request{})
			assert.False(t, ok)
			assert.False(t, p.Personalized)
			assert.Equal(t, 1.0, fallbacks(t, reg, tc.reason))
		})
	}
}

func TestDecodeRoadmapGarbage(t *testing.T) {
	_, _, err := decodeRoadmap([]byte(`this is not json`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed) || errors.Is(err, ErrSchema))

	_, _, err = decodeRoadmap(nil)
	assert.Error(t, err)
}

func TestCleanList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, cleanList([]string{" a ", "", "b", "c"}, 2))
	assert.Equal(t, []string{}, cleanList(nil, 3))
}
