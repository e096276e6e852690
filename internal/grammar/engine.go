// Package grammar is the local cloze rule engine: option checking, rewrite
// grading, star scoring and the end-of-set summary. It makes no model calls.
package grammar

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type Phase string

const (
	PhaseQuestionActive Phase = "question_active"
	PhaseFeedbackShown  Phase = "feedback_shown"
	PhaseDone           Phase = "done"
)

type Action string

const (
	ActionAnswerOption  Action = "answer_option"
	ActionSubmitRewrite Action = "submit_rewrite"
	ActionNextQuestion  Action = "next_question"
)

var (
	ErrSessionFinished   = errors.New("grammar session finished")
	ErrAnswerOptionFirst = errors.New("answer the option before rewriting")
	ErrRewriteFirst      = errors.New("submit the rewrite before moving on")
	ErrMissingOption     = errors.New("selected option is required")
	ErrMissingRewrite    = errors.New("rewrite text is required")
	ErrInvalidAction     = errors.New("invalid grammar action")
	ErrCorruptState      = errors.New("grammar state has no current question")
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionAnswerOption, ActionSubmitRewrite, ActionNextQuestion:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

type OptionFeedback struct {
	Correctness     string `json:"correctness"`
	FocusRuleTag    string `json:"focus_rule_tag"`
	Reason          string `json:"reason"`
	ExampleSentence string `json:"example_sentence"`
	MicroTip        string `json:"micro_tip"`
	HintUsed        bool   `json:"hint_used"`
}

type RewriteFeedback struct {
	RewriteCorrect bool         `json:"rewrite_correct"`
	WrongTokens    []WrongToken `json:"wrong_tokens"`
	WhatToFix      string       `json:"what_to_fix"`
	Why            string       `json:"why"`
	CorrectAnswer  string       `json:"correct_answer"`
}

// Answer is the per-blank progress, keyed q_<blank_index> in State.Answered.
type Answer struct {
	SelectedOption  string           `json:"selected_option"`
	OptionCorrect   bool             `json:"option_correct"`
	OptionChecked   bool             `json:"option_checked"`
	HintUsed        bool             `json:"hint_used"`
	OptionFeedback  *OptionFeedback  `json:"option_feedback,omitempty"`
	RewriteText     string           `json:"rewrite_text,omitempty"`
	RewriteChecked  bool             `json:"rewrite_checked"`
	RewriteCorrect  bool             `json:"rewrite_correct"`
	RewriteFeedback *RewriteFeedback `json:"rewrite_feedback,omitempty"`
	FinalCorrect    bool             `json:"final_correct"`
}

// State is everything persisted for one grammar session.
type State struct {
	Phase           Phase              `json:"phase"`
	PassageID       string             `json:"passage_id"`
	Title           string             `json:"title"`
	PassageTemplate string             `json:"passage_template"`
	Questions       []Question         `json:"questions"`
	CurrentIndex    int                `json:"current_index"`
	Stars           int                `json:"stars"`
	Attempted       int                `json:"attempted"`
	Correct         int                `json:"correct"`
	HintUsedCount   int                `json:"hint_used_count"`
	MissedRuleTags  map[string]int     `json:"missed_rule_tags"`
	MissedOrder     []string           `json:"missed_order"`
	Answered        map[string]*Answer `json:"answered"`
}

func NewState(set Set) State {
	return State{
		Phase:           PhaseQuestionActive,
		PassageID:       set.PassageID,
		Title:           set.Title,
		PassageTemplate: set.PassageTemplate,
		Questions:       set.Questions,
		MissedRuleTags:  map[string]int{},
		MissedOrder:     []string{},
		Answered:        map[string]*Answer{},
	}
}

func (s *State) Done() bool { return s.Phase == PhaseDone }

func (s *State) TotalQuestions() int { return len(s.Questions) }

func (s *State) current() (*Question, error) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil, ErrCorruptState
	}
	return &s.Questions[s.CurrentIndex], nil
}

func answerKey(q *Question) string {
	return "q_" + strconv.Itoa(q.BlankIndex)
}

func (s *State) answer(q *Question) *Answer {
	if s.Answered == nil {
		s.Answered = map[string]*Answer{}
	}
	a, ok := s.Answered[answerKey(q)]
	if !ok {
		a = &Answer{}
		s.Answered[answerKey(q)] = a
	}
	return a
}

// QuestionInfo is the public part of a question; hint and tip go out as instructions.
type QuestionInfo struct {
	ID                string     `json:"id"`
	PassageID         string     `json:"passage_id"`
	BlankIndex        int        `json:"blank_index"`
	SentenceWithBlank string     `json:"sentence_with_blank"`
	Options           []string   `json:"options"`
	CorrectOption     string     `json:"correct_option"`
	FocusRuleTag      string     `json:"focus_rule_tag"`
	DifficultyBand    string     `json:"difficulty_band"`
	MinFixConstraint  Constraint `json:"min_fix_constraint"`
	ExplanationShort  string     `json:"explanation_short"`
	ExampleSentence   string     `json:"example_sentence"`
}

type QuestionView struct {
	State                string       `json:"state"`
	Question             QuestionInfo `json:"question"`
	QuestionIndex        int          `json:"question_index"`
	TotalQuestions       int          `json:"total_questions"`
	InstructionPrimary   string       `json:"instruction_primary"`
	InstructionSecondary string       `json:"instruction_secondary"`
	InstructionTip       string       `json:"instruction_tip"`
	FocusRuleTag         string       `json:"focus_rule_tag"`
	PassageText          string       `json:"passage_text"`
	SelectedOption       string       `json:"selected_option"`
	Stars                int          `json:"stars"`
}

type OptionView struct {
	State            string          `json:"state"`
	QuestionIndex    int             `json:"question_index"`
	TotalQuestions   int             `json:"total_questions"`
	FocusRuleTag     string          `json:"focus_rule_tag"`
	OptionFeedback   *OptionFeedback `json:"option_feedback"`
	RewriteTarget    string          `json:"rewrite_target"`
	MinFixConstraint Constraint      `json:"min_fix_constraint"`
	CanRewrite       bool            `json:"can_rewrite"`
	Stars            int             `json:"stars"`
}

type RewriteView struct {
	State             string           `json:"state"`
	QuestionIndex     int              `json:"question_index"`
	TotalQuestions    int              `json:"total_questions"`
	FocusRuleTag      string           `json:"focus_rule_tag"`
	RewriteFeedback   *RewriteFeedback `json:"rewrite_feedback"`
	ContinueAvailable bool             `json:"continue_available"`
	Stars             int              `json:"stars"`
}

type Summary struct {
	AccuracyPercent        int      `json:"accuracy_percent"`
	TopMissedFocusRuleTags []string `json:"top_missed_focus_rule_tags"`
	SuggestedNextDrill     string   `json:"suggested_next_drill"`
	Stars                  int      `json:"stars"`
}

var blankMarker = regexp.MustCompile(`\[BLANK_(\d+)\]`)

// Passage renders the template for q: its own blank is [____], earlier
// answers show the chosen option and the rest show _____.
func (s *State) Passage(q *Question) string {
	return blankMarker.ReplaceAllStringFunc(s.PassageTemplate, func(m string) string {
		idx, _ := strconv.Atoi(blankMarker.FindStringSubmatch(m)[1])
		if idx == q.BlankIndex {
			return "[____]"
		}
		if a, ok := s.Answered["q_"+strconv.Itoa(idx)]; ok && a.SelectedOption != "" {
			return a.SelectedOption
		}
		return "_____"
	})
}

// CurrentQuestion builds the payload for the active blank.
func (s *State) CurrentQuestion() (*QuestionView, error) {
	q, err := s.current()
	if err != nil {
		return nil, err
	}
	selected := ""
	if a, ok := s.Answered[answerKey(q)]; ok {
		selected = a.SelectedOption
	}
	return &QuestionView{
		State: string(PhaseQuestionActive),
		Question: QuestionInfo{
			ID:                q.ID,
			PassageID:         s.PassageID,
			BlankIndex:        q.BlankIndex,
			SentenceWithBlank: q.SentenceWithBlank,
			Options:           q.Options,
			CorrectOption:     q.CorrectOption,
			FocusRuleTag:      q.FocusRuleTag,
			DifficultyBand:    q.DifficultyBand,
			MinFixConstraint:  q.MinFixConstraint,
			ExplanationShort:  q.ExplanationShort,
			ExampleSentence:   q.ExampleSentence,
		},
		QuestionIndex:        s.CurrentIndex + 1,
		TotalQuestions:       s.TotalQuestions(),
		InstructionPrimary:   fmt.Sprintf("Blank #%d — Focus: %s (%s)", q.BlankIndex, q.FocusRuleTag, q.MinFixConstraint.Label()),
		InstructionSecondary: "Rewrite the full sentence (use your chosen word).",
		InstructionTip:       "Tip: " + q.Hint,
		FocusRuleTag:         q.FocusRuleTag,
		PassageText:          s.Passage(q),
		SelectedOption:       selected,
		Stars:                s.Stars,
	}, nil
}

// CheckOption grades a chosen option without touching any state.
func CheckOption(q *Question, option string, hintUsed bool) (correct bool, starDelta int, fb *OptionFeedback) {
	correct = Normalize(option) == Normalize(q.CorrectOption)
	if correct {
		starDelta++
	}
	if hintUsed {
		starDelta--
	}

	fb = &OptionFeedback{
		Correctness:     "incorrect",
		FocusRuleTag:    q.FocusRuleTag,
		Reason:          fmt.Sprintf("Focus on %s. Choose the option that fits grammar and meaning.", q.FocusRuleTag),
		ExampleSentence: q.ExampleSentence,
		MicroTip:        q.Tip,
		HintUsed:        hintUsed,
	}
	if correct {
		fb.Correctness = "correct"
		fb.Reason = q.ExplanationShort
	}
	return correct, starDelta, fb
}

// CheckRewrite grades a full-sentence rewrite against the question's expected
// sentence. selected is only used to point at the likely fix.
func CheckRewrite(q *Question, selected, rewrite string) *RewriteFeedback {
	expected := strings.Replace(q.SentenceWithBlank, "[____]", q.CorrectOption, 1)
	rewrite = strings.TrimSpace(rewrite)

	wrong := DiffTokens(rewrite, expected)
	containsCorrect := strings.Contains(Normalize(rewrite), Normalize(q.CorrectOption))
	ok := containsCorrect && len(wrong) <= q.MinFixConstraint.Budget()

	fb := &RewriteFeedback{
		RewriteCorrect: ok,
		WrongTokens:    wrong[:min(3, len(wrong))],
		CorrectAnswer:  expected,
	}
	if ok {
		fb.WhatToFix = "Good fix. Keep the grammar pattern exactly."
		fb.Why = fmt.Sprintf("Your sentence matches the %s rule.", q.FocusRuleTag)
		return fb
	}

	near := "your edit"
	switch {
	case len(wrong) > 0 && wrong[0].Actual != "":
		near = wrong[0].Actual
	case selected != "":
		near = selected
	}
	fb.WhatToFix = `Fix the word near "` + near + `".`
	fb.Why = fmt.Sprintf("This rule requires %s in this sentence.", q.CorrectOption)
	return fb
}

// AnswerOption records the option for the active blank. A blank can only be
// answered once; later calls replay the stored feedback.
func (s *State) AnswerOption(option string, hintUsed bool) (*OptionView, error) {
	if s.Done() {
		return nil, ErrSessionFinished
	}
	q, err := s.current()
	if err != nil {
		return nil, err
	}
	a := s.answer(q)

	if !a.OptionChecked {
		if strings.TrimSpace(option) == "" {
			return nil, ErrMissingOption
		}
		correct, delta, fb := CheckOption(q, option, hintUsed)
		a.SelectedOption = option
		a.OptionCorrect = correct
		a.OptionChecked = true
		a.HintUsed = hintUsed
		a.OptionFeedback = fb
		if hintUsed {
			s.HintUsedCount++
		}
		s.Stars = max(0, s.Stars+delta)
		s.Phase = PhaseFeedbackShown
	}

	return &OptionView{
		State:            string(PhaseFeedbackShown),
		QuestionIndex:    s.CurrentIndex + 1,
		TotalQuestions:   s.TotalQuestions(),
		FocusRuleTag:     q.FocusRuleTag,
		OptionFeedback:   a.OptionFeedback,
		RewriteTarget:    q.SentenceWithBlank,
		MinFixConstraint: q.MinFixConstraint,
		CanRewrite:       true,
		Stars:            s.Stars,
	}, nil
}

// SubmitRewrite grades the rewrite for the active blank and settles the
// question's final score. Repeats replay the stored result.
func (s *State) SubmitRewrite(text string) (*RewriteView, error) {
	if s.Done() {
		return nil, ErrSessionFinished
	}
	q, err := s.current()
	if err != nil {
		return nil, err
	}
	a := s.answer(q)
	if !a.OptionChecked || a.SelectedOption == "" {
		return nil, ErrAnswerOptionFirst
	}

	if !a.RewriteChecked {
		if strings.TrimSpace(text) == "" {
			return nil, ErrMissingRewrite
		}
		fb := CheckRewrite(q, a.SelectedOption, text)
		a.RewriteText = text
		a.RewriteChecked = true
		a.RewriteCorrect = fb.RewriteCorrect
		a.RewriteFeedback = fb
		a.FinalCorrect = a.OptionCorrect && fb.RewriteCorrect

		s.Attempted++
		if a.FinalCorrect {
			s.Correct++
		} else {
			s.miss(q.FocusRuleTag)
		}
		s.Phase = PhaseFeedbackShown
	}

	return &RewriteView{
		State:             string(PhaseFeedbackShown),
		QuestionIndex:     s.CurrentIndex + 1,
		TotalQuestions:    s.TotalQuestions(),
		FocusRuleTag:      q.FocusRuleTag,
		RewriteFeedback:   a.RewriteFeedback,
		ContinueAvailable: true,
		Stars:             s.Stars,
	}, nil
}

func (s *State) miss(tag string) {
	if s.MissedRuleTags == nil {
		s.MissedRuleTags = map[string]int{}
	}
	if _, seen := s.MissedRuleTags[tag]; !seen {
		s.MissedOrder = append(s.MissedOrder, tag)
	}
	s.MissedRuleTags[tag]++
}

// NextQuestion moves past a fully graded blank. It returns true once the set
// is finished.
func (s *State) NextQuestion() (bool, error) {
	if s.Done() {
		return true, ErrSessionFinished
	}
	q, err := s.current()
	if err != nil {
		return false, err
	}
	if a, ok := s.Answered[answerKey(q)]; !ok || !a.RewriteChecked {
		return false, ErrRewriteFirst
	}

	s.CurrentIndex++
	if s.CurrentIndex >= len(s.Questions) {
		s.Phase = PhaseDone
		return true, nil
	}
	s.Phase = PhaseQuestionActive
	return false, nil
}

// Summary reports accuracy, the top one or two missed tags and a follow-up drill.
func (s *State) Summary() Summary {
	accuracy := 0
	if s.Attempted > 0 {
		accuracy = int(math.Round(100 * float64(s.Correct) / float64(s.Attempted)))
	}
	tags := s.topMissed(2)
	return Summary{
		AccuracyPercent:        accuracy,
		TopMissedFocusRuleTags: tags,
		SuggestedNextDrill:     SuggestDrill(tags),
		Stars:                  s.Stars,
	}
}

func (s *State) topMissed(n int) []string {
	tags := make([]string, 0, len(s.MissedOrder))
	for _, tag := range s.MissedOrder {
		if s.MissedRuleTags[tag] > 0 {
			tags = append(tags, tag)
		}
	}
	// stable: ties keep first-missed order
	sort.SliceStable(tags, func(i, j int) bool {
		return s.MissedRuleTags[tags[i]] > s.MissedRuleTags[tags[j]]
	})
	return tags[:min(n, len(tags))]
}

func SuggestDrill(tags []string) string {
	if len(tags) == 0 {
		return "Repeat one Rational Cloze set focusing on grammar precision."
	}
	switch tags[0] {
	case "Comparative":
		return "Do a comparative form mini-drill with 10 'than' sentences."
	case "Preposition":
		return "Do a verb-preposition collocation drill for 8 common pairs."
	}
	return fmt.Sprintf("Run one mini drill focused on %s with 6 targeted blanks.", tags[0])
}
