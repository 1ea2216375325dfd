package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// GroqAPIEndpoint is the Groq chat-completions endpoint.
	GroqAPIEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	// GroqModel is the default model to use.
	GroqModel = "llama3-70b-8192"
)

// unwantedPreamble is a lead-in the model sometimes emits despite the prompt
// forbidding it.
const unwantedPreamble = "Here is a professional cover letter based on the job description:"

// Client represents a Groq API client.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new Groq API client.
func NewClient(apiKey, model string) (client *Client) {
	if model == "" {
		model = GroqModel
	}
	client = &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: GroqAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return client
}

// GenerateCoverLetter sends the job description through the fixed prompt
// template and returns the generated letter prose.
func (c *Client) GenerateCoverLetter(ctx context.Context, jobDescription string) (letter string, err error) {
	prompt := buildCoverLetterPrompt(jobDescription)

	var responseText string
	responseText, err = c.sendRequest(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "cover letter generation request failed")
		return letter, err
	}

	letter = stripPreamble(responseText)

	return letter, err
}

// sendRequest sends a chat-completion request to the Groq API.
func (c *Client) sendRequest(ctx context.Context, prompt string) (responseText string, err error) {
	// Build request
	groqReq := GroqRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   1024,
		TopP:        1,
		Stream:      false,
		ResponseFormat: &ResponseFormat{
			Type: "text",
		},
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(groqReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	// Create HTTP request
	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	// Send request
	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	// Read response body
	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	// Check status code
	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return responseText, err
	}

	// Parse Groq response
	var groqResp GroqResponse
	err = json.Unmarshal(respBody, &groqResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse Groq response: %s", string(respBody))
		return responseText, err
	}

	// Extract text content
	if len(groqResp.Choices) == 0 {
		err = errors.New("no choices in Groq response")
		return responseText, err
	}

	responseText = groqResp.Choices[0].Message.Content

	return responseText, err
}

// stripPreamble removes the known introductory sentence if the model emitted
// one anyway.
func stripPreamble(text string) (cleaned string) {
	cleaned = text

	trimmed := strings.TrimSpace(cleaned)
	if strings.HasPrefix(trimmed, unwantedPreamble) {
		cleaned = strings.TrimSpace(trimmed[len(unwantedPreamble):])
	}

	return cleaned
}
