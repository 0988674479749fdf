package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNoAPIKey indicates the advisory credential is not configured.
var ErrNoAPIKey = errors.New("ai: GEMINI_API_KEY not set")

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// Gemini calls the Gemini REST API with a structured JSON response schema.
type Gemini struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// NewGemini creates a Gemini advisor with default model and endpoint.
func NewGemini(apiKey string) *Gemini {
	return &Gemini{
		APIKey:  apiKey,
		Model:   defaultGeminiModel,
		BaseURL: defaultGeminiBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// decisionSchema constrains the model output to the Decision shape.
var decisionSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"priority_mission_id": map[string]any{
			"type":     "STRING",
			"nullable": true,
		},
		"reassignments": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"robot_id":       map[string]any{"type": "STRING"},
					"new_mission_id": map[string]any{"type": "STRING"},
				},
				"required": []string{"robot_id", "new_mission_id"},
			},
		},
		"reasoning": map[string]any{"type": "STRING"},
	},
	"required": []string{"reassignments", "reasoning"},
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig map[string]any  `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Decide implements Advisor.
func (g *Gemini) Decide(ctx context.Context, state StateSummary) (*Decision, error) {
	if g.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	prompt := fmt.Sprintf(`You are the AI Commander of a robot fleet.
Current Simulation Step: %d

Active Ops:
- Robots: %d
- Active Missions: %d

Analyze the following state and decide on the next best action.
Prioritize high-priority missions and ensure efficient battery usage.

State Data:
%s`, state.Step, state.Robots, state.ActiveMissions, state.Raw)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   decisionSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.BaseURL, g.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai: call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai: gemini returned %d: %s", resp.StatusCode, raw)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("ai: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("ai: gemini returned no candidates")
	}

	var decision Decision
	if err := json.Unmarshal([]byte(parsed.Candidates[0].Content.Parts[0].Text), &decision); err != nil {
		return nil, fmt.Errorf("ai: decode decision: %w", err)
	}
	return &decision, nil
}
