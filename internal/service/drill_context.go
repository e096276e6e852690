package service

import (
	"fmt"
	"time"

	"spmtutor/internal/content"
	"spmtutor/internal/drill"
	"spmtutor/internal/model"
)

const (
	examSPM       = "SPM"
	paperWriting  = "writing"
	targetBand    = 6
	vocabTheme    = "General"
	weeklyDefault = "SPM Writing Part 2 question"
)

var writingFocus = content.Focus{
	Theme:     "Technology",
	Skill:     "paraphrasing",
	MicroGoal: "Upgrade one weak sentence into Band 6 style",
}

func writingMaterial() content.Material {
	return content.Material{
		Question: "Your school wants to promote healthy technology use. Write one short paragraph about one benefit and one risk.",
		ReferenceText: "Technology is important in our life. Many students use phones every day. " +
			"It can help us study because we can search information. But sometimes it wastes time and students play games. " +
			"The school should tell students to use it well.",
		Constraints: &content.Constraints{TimeMinutes: 10, WordLimit: 60},
		TopicSnapshot: []string{
			"Most teens use phones for homework and chats every day.",
			"Too much screen time can reduce sleep.",
			"Tech is useful if used with clear rules.",
		},
		AngleChoices: []string{"Benefit", "Risk"},
		Band6Move:    "Add 1 specific example (e.g., homework, sleep, distraction).",
	}
}

var writingHistory = content.History{
	Last7DaysSkills: []string{"topic_sentences", "connectors"},
	SpacedItemsDue:  []string{"however", "in addition", "the main reason is"},
}

var vocabHistory = content.History{
	Last7DaysSkills: []string{"vocabulary"},
	SpacedItemsDue:  []string{},
}

var weeklyFocus = content.Focus{
	Theme:     "Education",
	Skill:     "idea_development",
	MicroGoal: "Write a clear Part 2 response with 2 strong points",
}

var weeklyHistory = content.History{
	Last7DaysSkills: []string{"topic_sentences", "connectors", "examples"},
	SpacedItemsDue:  []string{"moreover", "as a result", "for instance"},
}

func defaultUI(multichoice bool) content.UI {
	return content.UI{Language: "en", Tone: "genz_direct", AllowMultichoice: multichoice}
}

// VocabWord 词汇练习的目标词
type VocabWord struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
	Theme   string `json:"theme"`
}

var VocabBank = []VocabWord{
	{"effective", "works well and gets results", "A short plan can be effective if you follow it.", "Study"},
	{"crucial", "very important", "Sleep is crucial for students to focus.", "Health"},
	{"benefit", "a good result", "One benefit of technology is faster learning.", "Technology"},
	{"drawback", "a bad result", "A drawback of phones is distraction.", "Technology"},
	{"encourage", "to support or push someone", "Teachers encourage students to read daily.", "School"},
	{"reduce", "to make less", "We should reduce screen time at night.", "Health"},
	{"improve", "to make better", "Practice can improve your writing.", "Writing"},
	{"valuable", "very useful or important", "Feedback is valuable for progress.", "Learning"},
	{"convenient", "easy to use", "Online notes are convenient for revision.", "Study"},
	{"harmful", "causing damage", "Too much sugar is harmful to health.", "Health"},
	{"responsible", "shows good control", "Be responsible when using social media.", "Social media"},
	{"balance", "a good mix of two sides", "Balance study and rest to stay healthy.", "Lifestyle"},
}

// WordForDay 按一年中的第几天轮换目标词
func WordForDay(t time.Time) VocabWord {
	return VocabBank[t.YearDay()%len(VocabBank)]
}

func vocabFocus(w VocabWord) content.Focus {
	theme := w.Theme
	if theme == "" {
		theme = vocabTheme
	}
	return content.Focus{
		Theme:     theme,
		Skill:     "vocabulary",
		MicroGoal: fmt.Sprintf("Use the word %q in one clear sentence.", w.Word),
	}
}

func vocabMaterial(w VocabWord) content.Material {
	return content.Material{
		TargetWord:      w.Word,
		WordMeaning:     w.Meaning,
		ExampleSentence: w.Example,
		Constraints:     &content.Constraints{TimeMinutes: 5, WordLimit: 15},
	}
}

func profileOf(user *model.User) content.StudentProfile {
	p := content.StudentProfile{
		Form:          user.Form,
		EstimatedBand: user.EstimatedBand,
		Weaknesses:    []string(user.Weaknesses),
		Strengths:     []string(user.Strengths),
	}
	if p.Weaknesses == nil {
		p.Weaknesses = []string{}
	}
	if p.Strengths == nil {
		p.Strengths = []string{}
	}
	return p
}

// buildDrillContext 组装某一步的生成上下文；answer 为该步需要评估的作答
func buildDrillContext(step drill.Step, kind drill.Kind, user *model.User, session *model.DrillSession, answer string) content.Context {
	history := writingHistory
	if kind == drill.KindVocab {
		history = vocabHistory
	}
	return content.Context{
		Mode:           string(step),
		Exam:           examSPM,
		Paper:          paperWriting,
		TargetBand:     targetBand,
		StudentProfile: profileOf(user),
		TodayFocus:     session.TodayFocus.Data(),
		Content:        session.TaskContent.Data().WithAnswer(answer),
		History:        history,
		UI:             defaultUI(true),
	}
}

func weeklyMaterial(question string) content.Material {
	return content.Material{
		Question:    question,
		Constraints: &content.Constraints{TimeMinutes: 25, WordLimit: 150},
	}
}

func buildWeeklyContext(step drill.Step, user *model.User, question, answer string) content.Context {
	return content.Context{
		Mode:           string(step),
		Exam:           examSPM,
		Paper:          paperWriting,
		TargetBand:     targetBand,
		StudentProfile: profileOf(user),
		TodayFocus:     weeklyFocus,
		Content:        weeklyMaterial(question).WithAnswer(answer),
		History:        weeklyHistory,
		UI:             defaultUI(false),
	}
}
