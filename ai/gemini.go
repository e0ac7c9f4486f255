package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// The Gemini collaborators are black-box, fallible and possibly slow. Nothing
// in the core workflow blocks on their success: callers fall back to the
// reporter-supplied category/description (verification) or an empty string
// (translation) on any error.

type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

// VerifyResult is the verifier contract: the model's category and description
// for the image, and whether they match what the reporter claimed.
type VerifyResult struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Match       bool   `json:"match"`
}

// DescribeResult is the standalone describe contract.
type DescribeResult struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	IsIssue     bool   `json:"isIssue"`
}

type ImageVerifier interface {
	VerifyImage(ctx context.Context, imageBase64, description, category string) (VerifyResult, error)
}

type ImageDescriber interface {
	DescribeImage(ctx context.Context, imageBase64 string) (DescribeResult, error)
}

type Translator interface {
	TranslateToKannada(ctx context.Context, text string) (string, error)
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// NewClientFromEnv builds a client from GEMINI_API_KEY and GEMINI_MODEL
// (default gemini-1.5-flash). Returns nil when no key is configured; callers
// treat a nil client as "collaborator unavailable".
func NewClientFromEnv() *Client {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) VerifyImage(ctx context.Context, imageBase64, description, category string) (VerifyResult, error) {
	prompt := fmt.Sprintf(`You are reviewing a citizen report of a municipal infrastructure issue.
Reported category: %q. Reported description: %q.
Look at the image and answer STRICTLY as JSON:
{"category": "pothole|garbage|streetlight|unknown|none", "description": "one sentence", "match": true/false}
"match" is whether the image is consistent with the reported category and description.`, category, description)

	parts := []GeminiPart{{Text: prompt}}
	if imageBase64 != "" {
		parts = append(parts, GeminiPart{InlineData: &GeminiInlineData{
			MimeType: "image/jpeg",
			Data:     imageBase64,
		}})
	}

	text, err := c.generate(ctx, parts)
	if err != nil {
		return VerifyResult{}, err
	}

	var result VerifyResult
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &result); err != nil {
		return VerifyResult{}, fmt.Errorf("unexpected verifier response: %w", err)
	}
	return result, nil
}

func (c *Client) DescribeImage(ctx context.Context, imageBase64 string) (DescribeResult, error) {
	prompt := `Describe the municipal infrastructure issue in this image, if any.
Answer STRICTLY as JSON:
{"category": "pothole|garbage|streetlight|unknown|none", "description": "one sentence", "isIssue": true/false}`

	parts := []GeminiPart{
		{Text: prompt},
		{InlineData: &GeminiInlineData{MimeType: "image/jpeg", Data: imageBase64}},
	}

	text, err := c.generate(ctx, parts)
	if err != nil {
		return DescribeResult{}, err
	}

	var result DescribeResult
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &result); err != nil {
		return DescribeResult{}, fmt.Errorf("unexpected describer response: %w", err)
	}
	return result, nil
}

func (c *Client) TranslateToKannada(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("Translate this to Kannada and provide only one line of translation: '%s'", text)

	out, err := c.generate(ctx, []GeminiPart{{Text: prompt}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) generate(ctx context.Context, parts []GeminiPart) (string, error) {
	reqBody := GeminiRequest{
		Contents: []GeminiContent{{Parts: parts}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, body)
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// stripCodeFences removes a ```json ... ``` wrapper the model sometimes adds.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
