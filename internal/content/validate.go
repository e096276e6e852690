package content

import (
	"encoding/json"
	"fmt"

	"spmtutor/internal/llm"
)

// Validate checks raw model output against TaskSchema and decodes it.
// Any failure is an *llm.ErrInvalidResponse.
func Validate(raw json.RawMessage) (*TaskContent, error) {
	if err := llm.ValidateJSON(TaskSchema, raw); err != nil {
		return nil, err
	}
	var task TaskContent
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("decode task: %w", err)}
	}
	return &task, nil
}

// ValidateChat is Validate for the chat contract.
func ValidateChat(raw json.RawMessage) (*ChatReply, error) {
	if err := llm.ValidateJSON(ChatSchema, raw); err != nil {
		return nil, err
	}
	var reply ChatReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("decode chat reply: %w", err)}
	}
	return &reply, nil
}
