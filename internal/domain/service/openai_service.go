package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"ripple/internal/domain/entity"
	"ripple/pkg/logger"
)

const FallbackNote = "Used fallback data due to parsing error"

var ErrNotConfigured = fmt.Errorf("openai api key is not configured")

const systemPrompt = `You are a disaster relief logistics assistant. Given a description of a
situation, reply with a single JSON object and nothing else, using these keys:
"summary" (string), "disasterType" (string), "urgencyLevel" ("low", "medium", "high" or "critical"),
"estimatedBeneficiaries" (integer), and "recommendedItems" (array of objects with
"name", "category", "quantity" (integer), "priority" ("high", "medium" or "low") and "reason").
Recommend physical items only, never cash.`

// RecommendationService asks a chat model for relief items.
type RecommendationService interface {
	Analyze(ctx context.Context, req entity.RecommendationRequest) (*entity.ReliefAnalysis, error)
}

type OpenAIService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIService(apiKey, model, baseURL string, timeout time.Duration) *OpenAIService {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIService{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// UpstreamError is returned when the completion API could not be reached or
// answered with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return "openai request failed: " + e.Message
	}
	return fmt.Sprintf("openai returned %d: %s", e.StatusCode, e.Message)
}

func (s *OpenAIService) Analyze(ctx context.Context, req entity.RecommendationRequest) (*entity.ReliefAnalysis, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(req)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil && resp.StatusCode < 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "malformed completion response"}
	}

	if resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	if len(parsed.Choices) == 0 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "no choices in completion response"}
	}

	analysis, err := ParseAnalysis(parsed.Choices[0].Message.Content)
	if err != nil {
		logger.Warn("Failed to parse relief analysis, using fallback: %v", err)
		return FallbackAnalysis(), nil
	}
	return analysis, nil
}

func userPrompt(req entity.RecommendationRequest) string {
	var b strings.Builder
	if req.Headline != "" {
		fmt.Fprintf(&b, "Headline: %s\n", req.Headline)
	}
	if req.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", req.Location)
	}
	fmt.Fprintf(&b, "Description: %s", req.Description)
	return b.String()
}

// ExtractJSON strips markdown code fences and returns the text between the
// first '{' and the last '}'.
func ExtractJSON(content string) (string, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in model output")
	}
	return cleaned[start : end+1], nil
}

func ParseAnalysis(content string) (*entity.ReliefAnalysis, error) {
	obj, err := ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var analysis entity.ReliefAnalysis
	if err := json.Unmarshal([]byte(obj), &analysis); err != nil {
		return nil, err
	}
	if analysis.RecommendedItems == nil {
		analysis.RecommendedItems = []entity.RecommendedItem{}
	}
	return &analysis, nil
}

func FallbackAnalysis() *entity.ReliefAnalysis {
	return &entity.ReliefAnalysis{
		Summary:      "General relief supplies for an affected community.",
		DisasterType: "general",
		UrgencyLevel: "high",
		RecommendedItems: []entity.RecommendedItem{
			{Name: "Bottled Water", Category: "Water", Quantity: 500, Priority: "high", Reason: "Safe drinking water is the first need after most disasters"},
			{Name: "Blankets", Category: "Shelter", Quantity: 200, Priority: "high", Reason: "Protection from cold and exposure"},
			{Name: "Food Kits", Category: "Food", Quantity: 300, Priority: "high", Reason: "Non-perishable food for displaced families"},
			{Name: "First Aid Kits", Category: "Medical", Quantity: 100, Priority: "medium", Reason: "Treatment of minor injuries"},
			{Name: "Hygiene Kits", Category: "Sanitation", Quantity: 200, Priority: "medium", Reason: "Disease prevention in shelters"},
		},
		Note: FallbackNote,
	}
}
