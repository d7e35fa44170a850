package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goal-detector/internal/llm"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4.1-mini", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gpt-4.1-mini", 0); err == nil {
		t.Fatalf("expected error without api key")
	}
	if _, err := NewClient("key", " ", 0); err == nil {
		t.Fatalf("expected error without model")
	}
	c, err := NewClient("key", "gpt-4.1-mini", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.httpClient.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", c.httpClient.Timeout)
	}
}

func withServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	oldURL := apiURL
	apiURL = server.URL
	t.Cleanup(func() {
		apiURL = oldURL
		server.Close()
	})
}

func TestGenerateRoadmapSendsRequestObject(t *testing.T) {
	var got map[string]any
	var auth string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" {\"closing\":\"bye\"} "}}],"usage":{"total_tokens":12}}`))
	})

	client, err := NewClient("test-key", "gpt-4.1-mini", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	var hash string
	ctx := llm.WithPromptHashSink(context.Background(), &hash)
	raw, err := client.GenerateRoadmap(ctx, llm.RoadmapInput{
		Responses: map[string]any{"topics": "coding"},
		Interests: []string{"Technology"},
	})
	if err != nil {
		t.Fatalf("GenerateRoadmap: %v", err)
	}
	if string(raw) != `{"closing":"bye"}` {
		t.Fatalf("unexpected content %s", raw)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if len(hash) != 64 {
		t.Fatalf("expected prompt hash, got %q", hash)
	}

	if got["model"] != "gpt-4.1-mini" {
		t.Fatalf("unexpected model %v", got["model"])
	}
	format, _ := got["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Fatalf("expected json_object response format, got %v", got["response_format"])
	}
	if _, ok := got["temperature"]; !ok {
		t.Fatalf("expected temperature for non gpt-5 model")
	}

	messages, _ := got["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(messages))
	}
	user, _ := messages[1].(map[string]any)
	var request map[string]any
	if err := json.Unmarshal([]byte(user["content"].(string)), &request); err != nil {
		t.Fatalf("user content is not JSON: %v", err)
	}
	for _, key := range []string{"role", "rules", "responses", "interests", "output_schema"} {
		if _, ok := request[key]; !ok {
			t.Fatalf("request object missing %q", key)
		}
	}
}

func TestGenerateRoadmapOmitsTemperatureForGPT5(t *testing.T) {
	var got map[string]any
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	})
	client, _ := NewClient("k", "gpt-5-mini", time.Second)
	if _, err := client.GenerateRoadmap(context.Background(), llm.RoadmapInput{}); err != nil {
		t.Fatalf("GenerateRoadmap: %v", err)
	}
	if _, ok := got["temperature"]; ok {
		t.Fatalf("expected temperature to be omitted for gpt-5 models")
	}
}

func TestGenerateRoadmapErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "api_error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`, want: "bad key"},
		{name: "plain_status", status: http.StatusBadGateway, body: `upstream down`, want: "status 502"},
		{name: "no_choices", status: http.StatusOK, body: `{"choices":[]}`, want: "missing choices"},
		{name: "empty_content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`, want: "empty content"},
		{name: "garbage", status: http.StatusOK, body: `not json`, want: "parse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			withServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			client, _ := NewClient("k", "gpt-4.1-mini", time.Second)
			_, err := client.GenerateRoadmap(context.Background(), llm.RoadmapInput{})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestGenerateRoadmapTimeout(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	client, _ := NewClient("k", "gpt-4.1-mini", 20*time.Millisecond)
	_, err := client.GenerateRoadmap(context.Background(), llm.RoadmapInput{})
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("expected timeout error, got %v", err)
	}
}
