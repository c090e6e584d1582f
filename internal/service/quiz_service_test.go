package service

import (
	"errors"
	"testing"

	"learnhub_backend/internal/util"
)

func TestSelectAnswerRejectsOutOfRangeOption(t *testing.T) {
	svc := &QuizService{Attempts: NewAttemptStore()}
	svc.Attempts.Begin(7, "lesson:l1", threeQuestions(), 80)

	for _, idx := range []int{-1, 4, 99} {
		if _, err := svc.SelectAnswer(7, "lesson:l1", idx); !errors.Is(err, util.ErrInvalidOption) {
			t.Errorf("SelectAnswer(%d) err = %v, want ErrInvalidOption", idx, err)
		}
	}

	a, _ := svc.Attempts.Get(7, "lesson:l1")
	if _, ok := a.Answer(0); ok {
		t.Fatalf("rejected selection was recorded")
	}

	state, err := svc.SelectAnswer(7, "lesson:l1", 3)
	if err != nil {
		t.Fatalf("SelectAnswer(3): %v", err)
	}
	if state.Selected == nil || *state.Selected != 3 {
		t.Errorf("state.Selected = %v, want 3", state.Selected)
	}
}

func TestSelectAnswerIgnoredOnFinishedAttempt(t *testing.T) {
	svc := &QuizService{Attempts: NewAttemptStore()}
	svc.Attempts.Begin(7, "lesson:l1", []AttemptQuestion{{ID: "q1", OptionCount: 2, CorrectIndex: 0}}, 80)

	err := svc.Attempts.WithAttempt(7, "lesson:l1", func(a *QuizAttempt) error {
		a.Select(0)
		if _, ok := a.Advance(); !ok {
			t.Fatalf("advance did not finalize")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithAttempt: %v", err)
	}

	state, err := svc.SelectAnswer(7, "lesson:l1", 99)
	if err != nil {
		t.Fatalf("SelectAnswer on finished attempt: %v", err)
	}
	if !state.Finished {
		t.Errorf("state not finished")
	}
}
