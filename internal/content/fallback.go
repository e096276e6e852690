package content

import "fmt"

const DefaultTheme = "your topic"

// Fallback is served when the model is skipped or keeps failing validation.
// It always satisfies TaskSchema.
func Fallback(theme string) *TaskContent {
	if theme == "" {
		theme = DefaultTheme
	}
	return &TaskContent{
		Title:        "Quick Check",
		Instructions: "Write one clear sentence.",
		TaskType:     TaskRewrite,
		Items: []Item{{
			ID:        "q1",
			Prompt:    fmt.Sprintf("Write ONE sentence giving your opinion about %s. Start with: I believe...", theme),
			Choices:   []string{},
			AnswerKey: "",
			Hints:     []string{"Keep it simple and clear."},
		}},
		StudentAction: StudentAction{ExpectedInput: InputText, MaxWords: 30},
		Feedback: Feedback{
			WhatYouDidWell:   []string{},
			FixThisNext:      []string{},
			WhyItWorksSimple: []string{},
		},
		Score:                  Score{SkillTags: []string{}},
		SpacedRepetitionUpdate: SpacedRepetitionUpdate{Add: []string{}, ReviewNext: []string{}},
		NextQuestion:           fmt.Sprintf("Write ONE sentence giving your opinion (I believe...) about %s.", theme),
	}
}
