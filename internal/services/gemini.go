package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/abiggs624/cavern/pkg/chat"
)

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiService implements NarratorService against the Gemini
// generateContent REST endpoint.
type GeminiService struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure GeminiService implements NarratorService
var _ NarratorService = (*GeminiService)(nil)

// geminiContent mirrors one conversation turn on the wire.
type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiGenerateRequest struct {
	Contents       []geminiContent       `json:"contents"`
	SafetySettings []geminiSafetySetting `json:"safetySettings"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// defaultSafetySettings is the fixed content-safety configuration sent
// with every request.
var defaultSafetySettings = []geminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// NewGeminiService creates a narration client. An empty baseURL falls
// back to the public endpoint; tests point it at a local server.
func NewGeminiService(apiKey, modelName, baseURL string, timeout time.Duration, logger *slog.Logger) *GeminiService {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Narrate sends the full history to the generateContent endpoint and
// extracts the generated text from the first candidate.
func (g *GeminiService) Narrate(ctx context.Context, history []chat.Turn) (string, error) {
	contents := make([]geminiContent, 0, len(history))
	for _, turn := range history {
		contents = append(contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}

	geminiReq := geminiGenerateRequest{
		Contents:       contents,
		SafetySettings: defaultSafetySettings,
	}

	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.modelName, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("narration request failed", "error", err)
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("narration request rejected", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp geminiGenerateResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		g.logger.Error("narration response unparseable", "error", err)
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		g.logger.Error("narration response missing candidates", "body", string(body))
		return "", fmt.Errorf("response contained no narration")
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("response contained no narration")
	}
	return text, nil
}
