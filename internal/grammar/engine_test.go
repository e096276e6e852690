package grammar

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plannerQuestion() *Question {
	return &Question{
		BlankIndex:        1,
		SentenceWithBlank: "A planner is [____] than a list.",
		CorrectOption:     "more useful",
		FocusRuleTag:      "Comparative",
		MinFixConstraint:  ChangeOneWord,
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a planner is more useful", Normalize("  A planner, is MORE   useful!! "))
	assert.Equal(t, "don't stop", Normalize("Don't  stop."))
	assert.Equal(t, "", Normalize("?!"))
}

func TestDiffTokens(t *testing.T) {
	wrong := DiffTokens("a plan is nice", "a planner is nice today")
	assert.Equal(t, []WrongToken{
		{Index: 1, Actual: "plan", Expected: "planner"},
		{Index: 4, Actual: "", Expected: "today"},
	}, wrong)

	assert.Empty(t, DiffTokens("Same words.", "same words"))
}

func TestCheckRewrite_Tolerance(t *testing.T) {
	q := plannerQuestion()

	ok := CheckRewrite(q, "more useful", "A planner is more useful than a list.")
	assert.True(t, ok.RewriteCorrect)
	assert.Equal(t, "A planner is more useful than a list.", ok.CorrectAnswer)
	assert.Equal(t, "Good fix. Keep the grammar pattern exactly.", ok.WhatToFix)
	assert.Equal(t, "Your sentence matches the Comparative rule.", ok.Why)

	bad := CheckRewrite(q, "more useful", "A plan is more useful than lists.")
	assert.False(t, bad.RewriteCorrect)
	assert.Len(t, bad.WrongTokens, 3)
	assert.Equal(t, `Fix the word near "plan".`, bad.WhatToFix)
	assert.Equal(t, "This rule requires more useful in this sentence.", bad.Why)
}

func TestCheckRewrite_OneSlipAllowed(t *testing.T) {
	q := plannerQuestion()
	fb := CheckRewrite(q, "more useful", "A planner is more useful than the list.")
	assert.True(t, fb.RewriteCorrect)
	assert.Len(t, fb.WrongTokens, 1)
}

func TestCheckRewrite_MustContainCorrectOption(t *testing.T) {
	q := plannerQuestion()
	fb := CheckRewrite(q, "most useful", "A planner is most useful than a list.")
	assert.False(t, fb.RewriteCorrect)
}

func TestCheckRewrite_TwoWordBudget(t *testing.T) {
	q := &Question{
		SentenceWithBlank: "Teachers remind students [____] revision matters.",
		CorrectOption:     "that",
		FocusRuleTag:      "Clause Linker",
		MinFixConstraint:  MaxTwoWords,
	}
	assert.True(t, CheckRewrite(q, "that", "Teachers remind pupils that revision counts.").RewriteCorrect)
	assert.False(t, CheckRewrite(q, "that", "Coaches remind pupils that revision counts.").RewriteCorrect)
}

func TestCheckOption_StarDelta(t *testing.T) {
	q := plannerQuestion()
	tests := []struct {
		option string
		hint   bool
		want   int
	}{
		{"More useful", false, 1},
		{"more useful", true, 0},
		{"useful", false, 0},
		{"useful", true, -1},
	}
	for _, tt := range tests {
		_, delta, fb := CheckOption(q, tt.option, tt.hint)
		assert.Equal(t, tt.want, delta, "%s hint=%v", tt.option, tt.hint)
		assert.Equal(t, tt.hint, fb.HintUsed)
	}
}

func TestState_FullSetAllCorrect(t *testing.T) {
	state := NewState(Sets[0])

	for i, q := range Sets[0].Questions {
		view, err := state.CurrentQuestion()
		require.NoError(t, err)
		assert.Equal(t, i+1, view.QuestionIndex)
		assert.Equal(t, len(Sets[0].Questions), view.TotalQuestions)

		opt, err := state.AnswerOption(q.CorrectOption, false)
		require.NoError(t, err)
		assert.Equal(t, "correct", opt.OptionFeedback.Correctness)

		rw, err := state.SubmitRewrite(expectedSentence(q))
		require.NoError(t, err)
		require.True(t, rw.RewriteFeedback.RewriteCorrect, q.ID)

		done, err := state.NextQuestion()
		require.NoError(t, err)
		assert.Equal(t, i == len(Sets[0].Questions)-1, done)
	}

	sum := state.Summary()
	assert.Equal(t, 100, sum.AccuracyPercent)
	assert.Empty(t, sum.TopMissedFocusRuleTags)
	assert.Equal(t, "Repeat one Rational Cloze set focusing on grammar precision.", sum.SuggestedNextDrill)
	assert.Equal(t, 6, sum.Stars)
	assert.True(t, state.Done())
}

func expectedSentence(q Question) string {
	view := CheckRewrite(&q, q.CorrectOption, "")
	return view.CorrectAnswer
}

func TestState_InstructionsAndPassage(t *testing.T) {
	state := NewState(Sets[0])
	view, err := state.CurrentQuestion()
	require.NoError(t, err)
	assert.Equal(t, "Blank #1 — Focus: Comparative (Change 1 word only)", view.InstructionPrimary)
	assert.Equal(t, "Tip: Use 'more + adjective' for longer adjectives.", view.InstructionTip)
	assert.Contains(t, view.PassageText, "A planner is [____] than")
	assert.Contains(t, view.PassageText, "If they _____ their work")

	_, err = state.AnswerOption("most useful", false)
	require.NoError(t, err)
	_, err = state.SubmitRewrite("A planner is most useful than a simple to-do list.")
	require.NoError(t, err)
	_, err = state.NextQuestion()
	require.NoError(t, err)

	view, err = state.CurrentQuestion()
	require.NoError(t, err)
	assert.Contains(t, view.PassageText, "A planner is most useful than")
	assert.Contains(t, view.PassageText, "If they [____] their work")
}

func TestState_RepeatActionsReplay(t *testing.T) {
	state := NewState(Sets[0])

	first, err := state.AnswerOption("useful", true)
	require.NoError(t, err)
	second, err := state.AnswerOption("more useful", false)
	require.NoError(t, err)
	assert.Equal(t, first.OptionFeedback, second.OptionFeedback)
	assert.Equal(t, 0, state.Stars)
	assert.Equal(t, 1, state.HintUsedCount)

	_, err = state.SubmitRewrite("A planner is useful than a simple to-do list because it helps students see priorities.")
	require.NoError(t, err)
	_, err = state.SubmitRewrite("A planner is more useful than a simple to-do list because it helps students see priorities.")
	require.NoError(t, err)
	assert.Equal(t, 1, state.Attempted)
	assert.Equal(t, 0, state.Correct)
	assert.Equal(t, 1, state.MissedRuleTags["Comparative"])
}

func TestState_OrderingErrors(t *testing.T) {
	state := NewState(Sets[0])

	_, err := state.SubmitRewrite("anything")
	assert.ErrorIs(t, err, ErrAnswerOptionFirst)

	_, err = state.NextQuestion()
	assert.ErrorIs(t, err, ErrRewriteFirst)

	_, err = state.AnswerOption("  ", false)
	assert.ErrorIs(t, err, ErrMissingOption)

	_, err = state.AnswerOption("more useful", false)
	require.NoError(t, err)
	_, err = state.SubmitRewrite("")
	assert.ErrorIs(t, err, ErrMissingRewrite)
	_, err = state.NextQuestion()
	assert.ErrorIs(t, err, ErrRewriteFirst)
}

func TestState_FinishedRejectsActions(t *testing.T) {
	state := NewState(Sets[0])
	state.Phase = PhaseDone

	_, err := state.AnswerOption("x", false)
	assert.ErrorIs(t, err, ErrSessionFinished)
	_, err = state.SubmitRewrite("x")
	assert.ErrorIs(t, err, ErrSessionFinished)
	_, err = state.NextQuestion()
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestState_StarsNeverNegative(t *testing.T) {
	state := NewState(Sets[0])
	for range Sets[0].Questions {
		_, err := state.AnswerOption("wrong", true)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, state.Stars, 0)
		_, err = state.SubmitRewrite("wrong")
		require.NoError(t, err)
		_, err = state.NextQuestion()
		require.NoError(t, err)
	}
	assert.Equal(t, 0, state.Stars)
	assert.Equal(t, 6, state.HintUsedCount)
}

func TestSummary_TopMissedTags(t *testing.T) {
	state := NewState(Sets[0])
	assert.Equal(t, 0, state.Summary().AccuracyPercent)

	state.Attempted, state.Correct = 3, 2
	assert.Equal(t, 67, state.Summary().AccuracyPercent)

	state.miss("Preposition")
	state.miss("Comparative")
	state.miss("Clause Linker")
	state.miss("Comparative")
	sum := state.Summary()
	assert.Equal(t, []string{"Comparative", "Preposition"}, sum.TopMissedFocusRuleTags)
	assert.Equal(t, "Do a comparative form mini-drill with 10 'than' sentences.", sum.SuggestedNextDrill)
}

func TestSuggestDrill(t *testing.T) {
	assert.Equal(t, "Do a verb-preposition collocation drill for 8 common pairs.", SuggestDrill([]string{"Preposition"}))
	assert.Equal(t, "Run one mini drill focused on Clause Linker with 6 targeted blanks.", SuggestDrill([]string{"Clause Linker", "Comparative"}))
}

func TestPickSet(t *testing.T) {
	require.GreaterOrEqual(t, len(Sets), 2)

	day := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, Sets[day.YearDay()%len(Sets)].PassageID, PickSet(day).PassageID)

	// 相邻两天轮换到不同的篇章，一个周期后回到原处
	assert.NotEqual(t, PickSet(day).PassageID, PickSet(day.AddDate(0, 0, 1)).PassageID)
	assert.Equal(t, PickSet(day).PassageID, PickSet(day.AddDate(0, 0, len(Sets))).PassageID)
}

func TestSets_AnswerKeysGradeAsCorrect(t *testing.T) {
	for _, set := range Sets {
		assert.Len(t, set.Questions, 6, set.PassageID)
		for _, q := range set.Questions {
			assert.Contains(t, set.PassageTemplate, fmt.Sprintf("[BLANK_%d]", q.BlankIndex), set.PassageID)
			assert.Contains(t, q.Options, q.CorrectOption, q.ID)

			view := CheckRewrite(&q, q.CorrectOption, strings.Replace(q.SentenceWithBlank, "[____]", q.CorrectOption, 1))
			assert.True(t, view.RewriteCorrect, "%s/%s", set.PassageID, q.ID)
		}
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("submit_rewrite")
	require.NoError(t, err)
	assert.Equal(t, ActionSubmitRewrite, a)

	_, err = ParseAction("skip")
	assert.ErrorIs(t, err, ErrInvalidAction)
}
