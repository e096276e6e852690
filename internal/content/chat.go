package content

// ChatReply is the tutor chat payload.
type ChatReply struct {
	Answer          string `json:"answer"`
	EnglishQuestion string `json:"english_question"`
	QuickTip        string `json:"quick_tip"`
}

func ChatFallback(question string) *ChatReply {
	english := "How do I say this in English?"
	if question != "" {
		english = "How can I ask: " + question
	}
	return &ChatReply{
		Answer:          "Ask me any English question. Keep it to one sentence.",
		EnglishQuestion: english,
		QuickTip:        "Keep your question short and clear.",
	}
}
