package grammar

import "time"

// Constraint limits how many tokens a rewrite may differ from the expected sentence.
type Constraint string

const (
	ChangeOneWord Constraint = "change_1_word"
	MaxTwoWords   Constraint = "max_2_words"
)

func (c Constraint) Budget() int {
	if c == ChangeOneWord {
		return 1
	}
	return 2
}

func (c Constraint) Label() string {
	if c == ChangeOneWord {
		return "Change 1 word only"
	}
	return "Max 2 words"
}

type Question struct {
	ID                string     `json:"id"`
	BlankIndex        int        `json:"blank_index"`
	SentenceWithBlank string     `json:"sentence_with_blank"`
	Options           []string   `json:"options"`
	CorrectOption     string     `json:"correct_option"`
	FocusRuleTag      string     `json:"focus_rule_tag"`
	DifficultyBand    string     `json:"difficulty_band"`
	MinFixConstraint  Constraint `json:"min_fix_constraint"`
	ExplanationShort  string     `json:"explanation_short"`
	ExampleSentence   string     `json:"example_sentence"`
	Hint              string     `json:"hint"`
	Tip               string     `json:"tip"`
}

// Set is one rational cloze passage. The template marks blanks as [BLANK_n].
type Set struct {
	PassageID       string
	Title           string
	PassageTemplate string
	Questions       []Question
}

var Sets = []Set{
	{
		PassageID: "rc_set_01",
		Title:     "Paper 1 Use of English – Rational Cloze",
		PassageTemplate: "Many teenagers now use study planners to manage their time. " +
			"A planner is [BLANK_1] than a simple to-do list because it helps students see priorities. " +
			"If they [BLANK_2] their work early, they can avoid last-minute stress. " +
			"In addition, students should focus [BLANK_3] one task at a time. " +
			"This method is [BLANK_4] effective than multitasking. " +
			"Teachers often remind students [BLANK_5] revision must be consistent. " +
			"With good planning, exam preparation becomes [BLANK_6] and more controlled.",
		Questions: []Question{
			{
				ID:                "q1",
				BlankIndex:        1,
				SentenceWithBlank: "A planner is [____] than a simple to-do list because it helps students see priorities.",
				Options:           []string{"more useful", "most useful", "usefuler", "useful"},
				CorrectOption:     "more useful",
				FocusRuleTag:      "Comparative",
				DifficultyBand:    "Band 4-5",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "Use comparative form before 'than'.",
				ExampleSentence:   "This method is more practical than the old one.",
				Hint:              "Use 'more + adjective' for longer adjectives.",
				Tip:               "Comparative needs 'than'.",
			},
			{
				ID:                "q2",
				BlankIndex:        2,
				SentenceWithBlank: "If they [____] their work early, they can avoid last-minute stress.",
				Options:           []string{"plan", "plans", "planned", "planning"},
				CorrectOption:     "plan",
				FocusRuleTag:      "Subject-Verb Agreement",
				DifficultyBand:    "Band 4",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "Plural subject 'they' uses base verb.",
				ExampleSentence:   "They finish their homework before dinner.",
				Hint:              "Check the subject before choosing the verb form.",
				Tip:               "Plural subject = base verb.",
			},
			{
				ID:                "q3",
				BlankIndex:        3,
				SentenceWithBlank: "In addition, students should focus [____] one task at a time.",
				Options:           []string{"in", "on", "at", "to"},
				CorrectOption:     "on",
				FocusRuleTag:      "Preposition",
				DifficultyBand:    "Band 4",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "The collocation is 'focus on'.",
				ExampleSentence:   "Please focus on the main question.",
				Hint:              "Think of the fixed phrase after 'focus'.",
				Tip:               "Learn common verb-preposition pairs.",
			},
			{
				ID:                "q4",
				BlankIndex:        4,
				SentenceWithBlank: "This method is [____] effective than multitasking.",
				Options:           []string{"most", "much", "more", "many"},
				CorrectOption:     "more",
				FocusRuleTag:      "Comparative",
				DifficultyBand:    "Band 5",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "Comparative with adjective 'effective' is 'more effective'.",
				ExampleSentence:   "Reading daily is more effective than last-minute study.",
				Hint:              "Comparative marker appears before adjective + than.",
				Tip:               "Long adjective usually uses 'more'.",
			},
			{
				ID:                "q5",
				BlankIndex:        5,
				SentenceWithBlank: "Teachers often remind students [____] revision must be consistent.",
				Options:           []string{"that", "which", "where", "who"},
				CorrectOption:     "that",
				FocusRuleTag:      "Clause Linker",
				DifficultyBand:    "Band 5",
				MinFixConstraint:  MaxTwoWords,
				ExplanationShort:  "'Remind + object + that-clause' is the correct structure.",
				ExampleSentence:   "The coach reminded us that practice matters.",
				Hint:              "Choose the conjunction that introduces a statement.",
				Tip:               "Use 'that' to introduce content clauses.",
			},
			{
				ID:                "q6",
				BlankIndex:        6,
				SentenceWithBlank: "With good planning, exam preparation becomes [____] and more controlled.",
				Options:           []string{"easy", "easier", "easiest", "more easy"},
				CorrectOption:     "easier",
				FocusRuleTag:      "Comparative",
				DifficultyBand:    "Band 4-5",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "Use comparative adjective to match 'more controlled'.",
				ExampleSentence:   "Practice makes writing easier over time.",
				Hint:              "Short adjective usually takes -er.",
				Tip:               "Short adjective often uses -er form.",
			},
		},
	},
	{
		PassageID: "rc_set_02",
		Title:     "Paper 1 Use of English – Rational Cloze",
		PassageTemplate: "Last year, our school [BLANK_1] a reading programme at the community library. " +
			"Volunteers were responsible [BLANK_2] arranging books and helping children. " +
			"The children who [BLANK_3] every Saturday have improved their reading. " +
			"Their reading skills are now much [BLANK_4] than before. " +
			"[BLANK_5] the programme was tiring, the volunteers enjoyed every session. " +
			"Reading together is one of the [BLANK_6] ways to build confidence.",
		Questions: []Question{
			{
				ID:                "q1",
				BlankIndex:        1,
				SentenceWithBlank: "Last year, our school [____] a reading programme at the community library.",
				Options:           []string{"starts", "started", "starting", "start"},
				CorrectOption:     "started",
				FocusRuleTag:      "Tense",
				DifficultyBand:    "Band 4",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "'Last year' signals the simple past.",
				ExampleSentence:   "Last month, we visited the museum.",
				Hint:              "Look for a time marker in the sentence.",
				Tip:               "Past time marker = past tense verb.",
			},
			{
				ID:                "q2",
				BlankIndex:        2,
				SentenceWithBlank: "Volunteers were responsible [____] arranging books and helping children.",
				Options:           []string{"of", "for", "with", "to"},
				CorrectOption:     "for",
				FocusRuleTag:      "Preposition",
				DifficultyBand:    "Band 4",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "The fixed phrase is 'responsible for'.",
				ExampleSentence:   "She is responsible for the class library.",
				Hint:              "Think of the preposition that always follows 'responsible'.",
				Tip:               "Learn adjective-preposition pairs as one unit.",
			},
			{
				ID:                "q3",
				BlankIndex:        3,
				SentenceWithBlank: "The children who [____] every Saturday have improved their reading.",
				Options:           []string{"attends", "attend", "attending", "to attend"},
				CorrectOption:     "attend",
				FocusRuleTag:      "Subject-Verb Agreement",
				DifficultyBand:    "Band 4-5",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "'Who' refers to 'children', so the verb is plural.",
				ExampleSentence:   "The students who join the club meet on Fridays.",
				Hint:              "Find the noun that 'who' refers to.",
				Tip:               "Relative clause verb agrees with its noun.",
			},
			{
				ID:                "q4",
				BlankIndex:        4,
				SentenceWithBlank: "Their reading skills are now much [____] than before.",
				Options:           []string{"good", "best", "better", "more good"},
				CorrectOption:     "better",
				FocusRuleTag:      "Comparative",
				DifficultyBand:    "Band 4",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "'Good' has the irregular comparative 'better'.",
				ExampleSentence:   "My English is better than last year.",
				Hint:              "Some adjectives change completely in the comparative.",
				Tip:               "good → better → best.",
			},
			{
				ID:                "q5",
				BlankIndex:        5,
				SentenceWithBlank: "[____] the programme was tiring, the volunteers enjoyed every session.",
				Options:           []string{"Because", "However", "Although", "Despite"},
				CorrectOption:     "Although",
				FocusRuleTag:      "Clause Linker",
				DifficultyBand:    "Band 5",
				MinFixConstraint:  MaxTwoWords,
				ExplanationShort:  "'Although' joins two contrasting clauses.",
				ExampleSentence:   "Although it rained, the match continued.",
				Hint:              "The two ideas contrast, and a full clause follows the blank.",
				Tip:               "'Despite' needs a noun; 'although' needs a clause.",
			},
			{
				ID:                "q6",
				BlankIndex:        6,
				SentenceWithBlank: "Reading together is one of the [____] ways to build confidence.",
				Options:           []string{"good", "better", "best", "most good"},
				CorrectOption:     "best",
				FocusRuleTag:      "Superlative",
				DifficultyBand:    "Band 5",
				MinFixConstraint:  ChangeOneWord,
				ExplanationShort:  "'One of the' is followed by a superlative.",
				ExampleSentence:   "It is one of the best books in the library.",
				Hint:              "'One of the ...' compares with the whole group.",
				Tip:               "one of the + superlative + plural noun.",
			},
		},
	},
}

// PickSet chooses the day's set by day of year.
func PickSet(t time.Time) Set {
	return Sets[t.YearDay()%len(Sets)]
}
