package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/amishk599/resumeiq/internal/model"
)

const openAISystemPrompt = "You are an expert technical recruiter and ATS specialist. You compare resumes against job descriptions and reply only with JSON."

// OpenAIProvider calls the OpenAI /v1/chat/completions endpoint with structured outputs.
type OpenAIProvider struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIProvider creates a provider targeting an OpenAI-compatible API.
func NewOpenAIProvider(baseURL, apiKey, model string, httpClient *http.Client) *OpenAIProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAIProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

// chatRequest mirrors the OpenAI /v1/chat/completions request body.
type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    int            `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema jsonSchemaSpec `json:"json_schema"`
}

type jsonSchemaSpec struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// chatChoice is one element of chatResponse.Choices.
type chatChoice struct {
	Message chatMessage `json:"message"`
}

// chatResponse mirrors the relevant fields of the OpenAI response.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

// apiError is the error object OpenAI returns, either with a non-2xx status
// or inside a 200 body.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *apiError) Error() string {
	if e.Type == "" {
		return e.Message
	}
	return e.Type + ": " + e.Message
}

// Generate sends spec to OpenAI with spec.Schema as a strict json_schema
// response format and returns the message content.
func (p *OpenAIProvider) Generate(ctx context.Context, spec RequestSpec) (string, error) {
	chatResp, err := p.post(ctx, chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: spec.Prompt},
		},
		Temperature: 0,
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaSpec{
				Name:   spec.Name,
				Strict: true,
				Schema: spec.Schema.JSONSchema(),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// post performs one chat completion round trip. Every API-reported failure,
// whatever its status code, comes back as *model.HTTPError.
func (p *OpenAIProvider) post(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai response: %w", err)
	}

	var chatResp chatResponse
	decodeErr := json.Unmarshal(payload, &chatResp)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && chatResp.Error != nil {
			return nil, &model.HTTPError{StatusCode: resp.StatusCode, Err: chatResp.Error}
		}
		return nil, &model.HTTPError{StatusCode: resp.StatusCode, Err: errors.New(string(payload))}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode openai response: %w", decodeErr)
	}
	if chatResp.Error != nil {
		return nil, &model.HTTPError{StatusCode: resp.StatusCode, Err: chatResp.Error}
	}
	return &chatResp, nil
}
