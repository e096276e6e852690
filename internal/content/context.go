package content

// Context is the input bundle serialised as the user message of a generation call.
type Context struct {
	Mode           string         `json:"mode"`
	Exam           string         `json:"exam"`
	Paper          string         `json:"paper"`
	TargetBand     int            `json:"target_band"`
	StudentProfile StudentProfile `json:"student_profile"`
	TodayFocus     Focus          `json:"today_focus"`
	Content        Material       `json:"content"`
	History        History        `json:"history"`
	UI             UI             `json:"ui"`
}

type StudentProfile struct {
	Form          int      `json:"form"`
	EstimatedBand float64  `json:"estimated_band"`
	Weaknesses    []string `json:"weaknesses"`
	Strengths     []string `json:"strengths"`
}

// Focus is the day's theme, skill and micro goal.
type Focus struct {
	Theme     string `json:"theme"`
	Skill     string `json:"skill"`
	MicroGoal string `json:"micro_goal"`
}

// Material carries the task source text. Writing fills question/reference
// fields, vocab fills the target word fields.
type Material struct {
	Question        string       `json:"question,omitempty"`
	ReferenceText   string       `json:"reference_text,omitempty"`
	Constraints     *Constraints `json:"constraints,omitempty"`
	TopicSnapshot   []string     `json:"topic_snapshot,omitempty"`
	AngleChoices    []string     `json:"angle_choices,omitempty"`
	Band6Move       string       `json:"band6_move,omitempty"`
	TargetWord      string       `json:"target_word,omitempty"`
	WordMeaning     string       `json:"word_meaning,omitempty"`
	ExampleSentence string       `json:"example_sentence,omitempty"`
	StudentAnswer   string       `json:"student_answer"`
}

type Constraints struct {
	TimeMinutes int `json:"time_minutes"`
	WordLimit   int `json:"word_limit"`
}

type History struct {
	Last7DaysSkills []string `json:"last_7_days_skills"`
	SpacedItemsDue  []string `json:"spaced_items_due"`
}

type UI struct {
	Language         string `json:"language"`
	Tone             string `json:"tone"`
	AllowMultichoice bool   `json:"allow_multichoice"`
}

// WithAnswer returns a copy of m carrying answer.
func (m Material) WithAnswer(answer string) Material {
	m.StudentAnswer = answer
	return m
}
