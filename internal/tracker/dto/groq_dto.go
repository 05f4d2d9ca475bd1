package dto

// GroqAPIRequest is the request payload for the Groq chat completions API
// (OpenAI-compatible wire format).
type GroqAPIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GroqAPIResponse is the response from the Groq chat completions API.
type GroqAPIResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is one completion candidate.
type Choice struct {
	Message Message `json:"message"`
}

// Usage reports token accounting for a completion.
type Usage struct {
	TotalTokens int `json:"total_tokens"`
}
