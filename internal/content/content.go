// Package content defines the JSON contract every generated drill task must
// satisfy, the context bundle sent to the model, and the deterministic
// fallback used when the model cannot be trusted.
package content

type TaskType string

const (
	TaskMCQ             TaskType = "mcq"
	TaskRewrite         TaskType = "rewrite"
	TaskFillBlank       TaskType = "fill_blank"
	TaskUpgradeSentence TaskType = "upgrade_sentence"
	TaskAddIdea         TaskType = "add_idea"
	TaskMiniWriting     TaskType = "mini_writing"
	TaskSpeakingSim     TaskType = "speaking_sim"
)

// TaskTypes 与 schema 中的 enum 保持一致
var TaskTypes = []TaskType{
	TaskMCQ, TaskRewrite, TaskFillBlank, TaskUpgradeSentence,
	TaskAddIdea, TaskMiniWriting, TaskSpeakingSim,
}

const (
	InputChoice = "choice"
	InputText   = "text"
)

// TaskContent is the validated payload returned to the client as `data`.
type TaskContent struct {
	Title                  string                 `json:"title"`
	Instructions           string                 `json:"instructions"`
	TaskType               TaskType               `json:"task_type"`
	Items                  []Item                 `json:"items"`
	StudentAction          StudentAction          `json:"student_action"`
	Feedback               Feedback               `json:"feedback"`
	Score                  Score                  `json:"score"`
	SpacedRepetitionUpdate SpacedRepetitionUpdate `json:"spaced_repetition_update"`
	NextQuestion           string                 `json:"next_question"`
}

type Item struct {
	ID        string   `json:"id"`
	Prompt    string   `json:"prompt"`
	Choices   []string `json:"choices"`
	AnswerKey string   `json:"answer_key"`
	Hints     []string `json:"hints"`
}

type StudentAction struct {
	ExpectedInput string  `json:"expected_input"`
	MaxWords      float64 `json:"max_words"`
}

type Feedback struct {
	WhatYouDidWell   []string `json:"what_you_did_well"`
	FixThisNext      []string `json:"fix_this_next"`
	BandLiftSentence string   `json:"band_lift_sentence"`
	WhyItWorksSimple []string `json:"why_it_works_simple"`
}

type Score struct {
	SPMPowerGain       float64  `json:"spm_power_gain"`
	EstimatedBandDelta float64  `json:"estimated_band_delta"`
	SkillTags          []string `json:"skill_tags"`
}

type SpacedRepetitionUpdate struct {
	Add        []string `json:"add"`
	ReviewNext []string `json:"review_next"`
}

// FirstPrompt returns items[0].prompt or def when there are no items.
func (t *TaskContent) FirstPrompt(def string) string {
	if t == nil || len(t.Items) == 0 || t.Items[0].Prompt == "" {
		return def
	}
	return t.Items[0].Prompt
}
