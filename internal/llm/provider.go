package llm

import (
	"context"
	"encoding/json"
)

// Provider 是模型调用的统一抽象，OpenAI / Anthropic / Gemini / mock 均实现它。
// Provider 只负责传输：返回模型原始输出，不做业务层的 schema 校验。
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request describes one model call.
type Request struct {
	// System carries the system prompt plus any developer instructions.
	System   string
	Messages []Message

	// Schema, when set, asks the provider for native structured output.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema 是一份命名的 JSON Schema，Name 同时作为编译缓存的 key。
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	// StopReason is normalised to "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
