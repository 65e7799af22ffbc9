// Package llm calls the Groq chat-completions API.  The service is
// stateless text-in/text-out: the whole transcript travels with every
// request, and the reply is advisory conversation text only.  Booking
// data is extracted deterministically elsewhere, never from the model.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.1-8b-instant"
)

// FallbackReply is used when the model returns no content.  Callers also
// use it when the completion service is down, so the deterministic parts
// of the dialog keep working.
const FallbackReply = "Sorry, I could not process that."

const systemPrompt = `You are a helpful museum ticketing assistant. Help visitors book tickets for:

Ticket Types:
- General Admission (Adult): ₹200
- General Admission (Child): ₹100
- Student (with ID): ₹150
- Senior Citizen: ₹100
- VIP Tour: ₹500

Museum Timings: 9 AM - 6 PM (Closed on Mondays)

You should:
1. Answer questions about tickets, prices, and museum information
2. Be friendly and helpful
3. When users want to book, tell them to confirm the proposed booking

DO NOT pretend to process bookings yourself.
Always be friendly and professional.`

// Message is one chat turn sent to the completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a minimal Groq chat-completions client.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewClient builds a client.  An empty apiKey yields a disabled client;
// model falls back to the default when empty.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c != nil && c.apiKey != "" }

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the system prompt, the prior transcript and the new user
// message, and returns the assistant's reply text.
func (c *Client) Complete(ctx context.Context, history []Message, userMessage string) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userMessage})

	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq: status %d: %s", resp.StatusCode, data)
	}
	var parsed completionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return FallbackReply, nil
	}
	return parsed.Choices[0].Message.Content, nil
}
