// Package drill holds the step sequences of the daily drills and the weekly
// checkpoint. Transitions only ever move forward by one step.
package drill

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindWriting Kind = "writing"
	KindVocab   Kind = "vocab"
	KindWeekly  Kind = "weekly"
)

type Step string

const (
	StepWarmup           Step = "warmup"
	StepCoreDrill        Step = "core_drill"
	StepReinforce        Step = "reinforce"
	StepFeedback         Step = "feedback"
	StepVocabWarmup      Step = "vocab_warmup"
	StepVocabApply       Step = "vocab_apply"
	StepVocabReinforce   Step = "vocab_reinforce"
	StepWeeklyQuestion   Step = "weekly_question"
	StepWeeklyCheckpoint Step = "weekly_checkpoint"
	StepDone             Step = "done"
)

var (
	ErrUnknownKind = errors.New("unknown drill kind")
	ErrUnknownStep = errors.New("step is not part of this drill")
)

var sequences = map[Kind][]Step{
	KindWriting: {StepWarmup, StepCoreDrill, StepReinforce, StepFeedback},
	KindVocab:   {StepVocabWarmup, StepVocabApply, StepVocabReinforce},
	KindWeekly:  {StepWeeklyQuestion, StepWeeklyCheckpoint},
}

// Sequence returns a copy of the ordered steps for kind.
func Sequence(kind Kind) []Step {
	seq := sequences[kind]
	out := make([]Step, len(seq))
	copy(out, seq)
	return out
}

func First(kind Kind) (Step, error) {
	seq, ok := sequences[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return seq[0], nil
}

// Next returns the step after current, or StepDone after the last one.
func Next(kind Kind, current Step) (Step, error) {
	seq, ok := sequences[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	i := indexOf(seq, current)
	if i < 0 {
		return "", fmt.Errorf("%w: %s/%s", ErrUnknownStep, kind, current)
	}
	if i == len(seq)-1 {
		return StepDone, nil
	}
	return seq[i+1], nil
}

func IsLast(kind Kind, step Step) bool {
	seq := sequences[kind]
	return len(seq) > 0 && seq[len(seq)-1] == step
}

// Contains reports whether step belongs to kind's sequence.
func Contains(kind Kind, step Step) bool {
	return indexOf(sequences[kind], step) >= 0
}

// ParseStep accepts any known step name, including done.
func ParseStep(s string) (Step, error) {
	step := Step(s)
	if step == StepDone {
		return step, nil
	}
	for _, seq := range sequences {
		if indexOf(seq, step) >= 0 {
			return step, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

// Grades reports whether the step evaluates a student answer.
func (s Step) Grades() bool {
	return s == StepFeedback || s == StepWeeklyCheckpoint
}

func (s Step) String() string { return string(s) }

func indexOf(seq []Step, step Step) int {
	for i, s := range seq {
		if s == step {
			return i
		}
	}
	return -1
}
