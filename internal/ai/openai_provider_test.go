package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amishk599/resumeiq/internal/model"
)

func makeTestServer(t *testing.T, statusCode int, body any) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, srv.Client()
}

func contentResponse(content string) chatResponse {
	return chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}}}
}

func testSpec() RequestSpec {
	return RequestSpec{Name: "resume_analysis", Prompt: "analyze this", Schema: ResultSchema}
}

func TestGenerate_Success(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, contentResponse(`{"matchScore":1}`))

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	got, err := provider.Generate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"matchScore":1}` {
		t.Errorf("got %q, want json string", got)
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusUnauthorized, map[string]string{"error": "bad key"})

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	_, err := provider.Generate(context.Background(), testSpec())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err = %v, want HTTPError 401", err)
	}
}

func TestGenerate_RateLimited(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusTooManyRequests, map[string]string{"error": "rate limited"})

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	if _, err := provider.Generate(context.Background(), testSpec()); err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, chatResponse{Choices: nil})

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	if _, err := provider.Generate(context.Background(), testSpec()); err == nil {
		t.Fatal("expected error when LLM returns no choices")
	}
}

func TestGenerate_ErrorBody(t *testing.T) {
	body := map[string]any{"error": map[string]string{"message": "model overloaded", "type": "server_error"}}
	srv, client := makeTestServer(t, http.StatusOK, body)

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	_, err := provider.Generate(context.Background(), testSpec())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusOK {
		t.Fatalf("err = %v, want HTTPError carrying status 200", err)
	}
	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Message != "model overloaded" || apiErr.Type != "server_error" {
		t.Errorf("err = %v, want wrapped api error", err)
	}
}

func TestGenerate_StructuredErrorOnFailureStatus(t *testing.T) {
	body := map[string]any{"error": map[string]string{"message": "Invalid schema for response_format", "type": "invalid_request_error"}}
	srv, client := makeTestServer(t, http.StatusBadRequest, body)

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	_, err := provider.Generate(context.Background(), testSpec())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("err = %v, want HTTPError 400", err)
	}
	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Type != "invalid_request_error" {
		t.Errorf("err = %v, want wrapped api error", err)
	}
}

func TestGenerate_SetsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contentResponse("ok"))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "my-secret-key", "test-model", srv.Client())
	_, _ = provider.Generate(context.Background(), testSpec())

	if gotAuth != "Bearer my-secret-key" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer my-secret-key")
	}
}

func TestGenerate_SendsStructuredOutputFormat(t *testing.T) {
	var gotPath string
	var gotReq struct {
		Model          string `json:"model"`
		Temperature    int    `json:"temperature"`
		Messages       []chatMessage
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name   string         `json:"name"`
				Strict bool           `json:"strict"`
				Schema map[string]any `json:"schema"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contentResponse("{}"))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "key", "gpt-4o-mini", srv.Client())
	_, _ = provider.Generate(context.Background(), testSpec())

	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want /chat/completions", gotPath)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "analyze this" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
	rf := gotReq.ResponseFormat
	if rf.Type != "json_schema" {
		t.Errorf("response_format.type = %q, want json_schema", rf.Type)
	}
	if rf.JSONSchema.Name != "resume_analysis" || !rf.JSONSchema.Strict {
		t.Errorf("json_schema = name %q strict %v", rf.JSONSchema.Name, rf.JSONSchema.Strict)
	}
	required, _ := rf.JSONSchema.Schema["required"].([]any)
	if len(required) != 7 {
		t.Errorf("schema.required = %v, want 7 fields", required)
	}
	if gotReq.Temperature != 0 {
		t.Errorf("temperature = %d, want 0", gotReq.Temperature)
	}
}
