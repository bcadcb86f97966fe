package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// TextGenerator turns a prompt into narrative text. The production
// implementation talks to the Gemini REST API; tests substitute a fake.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	ErrGeneratorNotConfigured = errors.New("generative API key not configured")
	ErrGeneratorQuotaExceeded = errors.New("generative API quota exceeded")
	ErrGeneratorInvalidKey    = errors.New("generative API key invalid")
)

// GeminiClient calls the Google generative-language endpoint.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GeminiClient) Configured() bool {
	return g.apiKey != "" && g.apiKey != "YOUR_GEMINI_API_KEY_HERE"
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.Configured() {
		return "", ErrGeneratorNotConfigured
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}

	if decoded.Error != nil {
		switch decoded.Error.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", ErrGeneratorInvalidKey
		case http.StatusTooManyRequests:
			return "", ErrGeneratorQuotaExceeded
		}
		return "", fmt.Errorf("generative API error: %s", decoded.Error.Message)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("generative API returned no candidates")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
