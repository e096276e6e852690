package content

import (
	"encoding/json"
	"testing"

	"spmtutor/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTask = `{
  "title": "Warm up",
  "instructions": "Pick the best connector.",
  "task_type": "mcq",
  "items": [{"id": "q1", "prompt": "Phones help us study. ___, they distract us.", "choices": ["However", "Because", "So"], "answer_key": "However", "hints": []}],
  "student_action": {"expected_input": "choice", "max_words": 1},
  "feedback": {"what_you_did_well": [], "fix_this_next": [], "band_lift_sentence": "", "why_it_works_simple": []},
  "score": {"spm_power_gain": 1, "estimated_band_delta": 0.1, "skill_tags": ["connectors"]},
  "spaced_repetition_update": {"add": ["however"], "review_next": []},
  "next_question": "Try another connector."
}`

func mutate(t *testing.T, fn func(m map[string]any)) json.RawMessage {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(validTask), &m))
	fn(m)
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	return raw
}

func TestValidate_AcceptsWellFormedTask(t *testing.T) {
	task, err := Validate(json.RawMessage(validTask))
	require.NoError(t, err)
	assert.Equal(t, TaskMCQ, task.TaskType)
	assert.Equal(t, "However", task.Items[0].AnswerKey)
	assert.Equal(t, InputChoice, task.StudentAction.ExpectedInput)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(m map[string]any)
	}{
		{"missing top-level field", func(m map[string]any) { delete(m, "next_question") }},
		{"extra top-level field", func(m map[string]any) { m["comment"] = "hi" }},
		{"unknown task type", func(m map[string]any) { m["task_type"] = "essay" }},
		{"empty items", func(m map[string]any) { m["items"] = []any{} }},
		{"extra item field", func(m map[string]any) {
			m["items"].([]any)[0].(map[string]any)["explanation"] = "x"
		}},
		{"bad expected input", func(m map[string]any) {
			m["student_action"].(map[string]any)["expected_input"] = "voice"
		}},
		{"max words as string", func(m map[string]any) {
			m["student_action"].(map[string]any)["max_words"] = "30"
		}},
		{"missing nested feedback field", func(m map[string]any) {
			delete(m["feedback"].(map[string]any), "band_lift_sentence")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(mutate(t, tt.edit))
			var inv *llm.ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}
}

func TestValidate_RejectsNonJSON(t *testing.T) {
	_, err := Validate(json.RawMessage("Sure! Here is your task:"))
	assert.Error(t, err)
}

func TestFallback_AlwaysValidates(t *testing.T) {
	for _, theme := range []string{"", "Technology", `Health "and" sleep`} {
		raw, err := json.Marshal(Fallback(theme))
		require.NoError(t, err)

		task, err := Validate(raw)
		require.NoError(t, err, "theme %q", theme)
		assert.Equal(t, "Quick Check", task.Title)
		assert.Equal(t, TaskRewrite, task.TaskType)
	}
}

func TestFallback_MentionsTheme(t *testing.T) {
	task := Fallback("Technology")
	assert.Equal(t, "Write ONE sentence giving your opinion (I believe...) about Technology.", task.NextQuestion)
	assert.Contains(t, task.Items[0].Prompt, "about Technology.")

	assert.Contains(t, Fallback("").NextQuestion, DefaultTheme)
}

func TestChatContract(t *testing.T) {
	reply, err := ValidateChat(json.RawMessage(`{"answer":"Use 'since'.","english_question":"How do I use since?","quick_tip":"Read it aloud."}`))
	require.NoError(t, err)
	assert.Equal(t, "Read it aloud.", reply.QuickTip)

	_, err = ValidateChat(json.RawMessage(`{"answer":"x","english_question":"y"}`))
	assert.Error(t, err)

	raw, _ := json.Marshal(ChatFallback(""))
	_, err = ValidateChat(raw)
	assert.NoError(t, err)
	assert.Equal(t, "How can I ask: apa itu verb?", ChatFallback("apa itu verb?").EnglishQuestion)
}
