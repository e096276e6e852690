package content

import (
	"sort"

	"spmtutor/internal/llm"
)

func str() map[string]any { return map[string]any{"type": "string"} }

func num() map[string]any { return map[string]any{"type": "number"} }

func strList() map[string]any {
	return map[string]any{"type": "array", "items": str()}
}

// closed builds an object schema with every property required and no extras.
func closed(props map[string]any) map[string]any {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	required := make([]any, len(names))
	for i, name := range names {
		required[i] = name
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func taskTypeEnum() []any {
	out := make([]any, len(TaskTypes))
	for i, t := range TaskTypes {
		out[i] = string(t)
	}
	return out
}

// TaskSchema is the closed contract for drill task output.
var TaskSchema = &llm.Schema{
	Name:        "spm_training_response",
	Description: "One SPM English writing micro-drill task with feedback and scoring fields.",
	Definition: closed(map[string]any{
		"title":        str(),
		"instructions": str(),
		"task_type":    map[string]any{"type": "string", "enum": taskTypeEnum()},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": closed(map[string]any{
				"id":         str(),
				"prompt":     str(),
				"choices":    strList(),
				"answer_key": str(),
				"hints":      strList(),
			}),
		},
		"student_action": closed(map[string]any{
			"expected_input": map[string]any{"type": "string", "enum": []any{InputChoice, InputText}},
			"max_words":      num(),
		}),
		"feedback": closed(map[string]any{
			"what_you_did_well":   strList(),
			"fix_this_next":       strList(),
			"band_lift_sentence":  str(),
			"why_it_works_simple": strList(),
		}),
		"score": closed(map[string]any{
			"spm_power_gain":       num(),
			"estimated_band_delta": num(),
			"skill_tags":           strList(),
		}),
		"spaced_repetition_update": closed(map[string]any{
			"add":         strList(),
			"review_next": strList(),
		}),
		"next_question": str(),
	}),
}

// ChatSchema is the closed contract for tutor chat replies.
var ChatSchema = &llm.Schema{
	Name:        "spm_chat_response",
	Description: "A short tutor answer, the question restated in English, and one tip.",
	Definition: closed(map[string]any{
		"answer":           str(),
		"english_question": str(),
		"quick_tip":        str(),
	}),
}
