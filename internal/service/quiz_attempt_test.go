package service

import "testing"

func threeQuestions() []AttemptQuestion {
	return []AttemptQuestion{
		{ID: "q1", OptionCount: 4, CorrectIndex: 0},
		{ID: "q2", OptionCount: 4, CorrectIndex: 1},
		{ID: "q3", OptionCount: 4, CorrectIndex: 2},
	}
}

func TestAttemptPassFlow(t *testing.T) {
	a := NewQuizAttempt(threeQuestions(), 80)

	a.Select(0)
	if res, ok := a.Advance(); ok || res != nil {
		t.Fatalf("advance mid-quiz returned a result")
	}
	a.Select(1)
	a.Advance()
	a.Select(2)
	res, ok := a.Advance()
	if !ok || res == nil {
		t.Fatalf("advance at last question did not finalize")
	}
	if res.Score != 100 || !res.Passed || res.Correct != 3 {
		t.Errorf("got score=%d passed=%v correct=%d, want 100 true 3", res.Score, res.Passed, res.Correct)
	}
	if !a.Finished() {
		t.Errorf("attempt not marked finished")
	}
}

func TestAttemptFailBelowThreshold(t *testing.T) {
	a := NewQuizAttempt(threeQuestions(), 80)
	a.Select(0)
	a.Advance()
	a.Select(1)
	a.Advance()
	a.Select(0) // wrong
	res, _ := a.Advance()

	// 2/3 rounds to 67.
	if res.Score != 67 {
		t.Errorf("score = %d, want 67", res.Score)
	}
	if res.Passed {
		t.Errorf("67 passed with threshold 80")
	}
	if got := res.PerAnswer; !got[0] || !got[1] || got[2] {
		t.Errorf("per-answer = %v, want [true true false]", got)
	}
}

func TestAdvanceBlockedWithoutAnswer(t *testing.T) {
	a := NewQuizAttempt(threeQuestions(), 80)
	if _, ok := a.Advance(); ok {
		t.Fatalf("advance finalized with no answer")
	}
	if a.Position() != 0 {
		t.Errorf("position moved to %d without an answer", a.Position())
	}
}

func TestPreviousKeepsAnswers(t *testing.T) {
	a := NewQuizAttempt(threeQuestions(), 80)
	a.Select(3)
	a.Advance()
	a.Previous()
	if a.Position() != 0 {
		t.Fatalf("position = %d after previous, want 0", a.Position())
	}
	if idx, ok := a.Answer(0); !ok || idx != 3 {
		t.Errorf("answer at 0 = %d,%v, want 3,true", idx, ok)
	}
	// Re-select overwrites.
	a.Select(0)
	if idx, _ := a.Answer(0); idx != 0 {
		t.Errorf("re-select did not overwrite, got %d", idx)
	}
	a.Previous()
	if a.Position() != 0 {
		t.Errorf("previous at first question moved position")
	}
}

func TestSkippedQuestionCountsIncorrect(t *testing.T) {
	a := NewQuizAttempt(threeQuestions(), 80)
	a.Select(0)
	a.Advance()
	a.Select(1)
	a.Advance()
	// Walk back and forward; q3 was never answered but q2 still is.
	a.Previous()
	a.Previous()
	a.Advance()
	a.Advance()
	a.Select(0)
	_, ok := a.Advance()
	if !ok {
		t.Fatalf("attempt did not finalize")
	}
	res := a.Result()
	if res.Correct != 2 {
		t.Errorf("correct = %d, want 2", res.Correct)
	}
}

func TestRetryResetsEverything(t *testing.T) {
	a := NewQuizAttempt(threeQuestions(), 80)
	if a.Retry() {
		t.Fatalf("retry allowed before a result exists")
	}
	a.Select(0)
	a.Advance()
	a.Select(0)
	a.Advance()
	a.Select(0)
	a.Advance()

	if !a.Retry() {
		t.Fatalf("retry refused after result")
	}
	if a.Position() != 0 || a.Finished() {
		t.Errorf("retry left position=%d finished=%v", a.Position(), a.Finished())
	}
	if _, ok := a.Answer(0); ok {
		t.Errorf("retry kept an answer")
	}
	// Same questions, same order: a clean perfect run passes.
	a.Select(0)
	a.Advance()
	a.Select(1)
	a.Advance()
	a.Select(2)
	res, _ := a.Advance()
	if !res.Passed {
		t.Errorf("post-retry run failed: %+v", res)
	}
}

func TestSelectIgnoredAfterFinish(t *testing.T) {
	a := NewQuizAttempt([]AttemptQuestion{{ID: "q1", OptionCount: 2, CorrectIndex: 0}}, 80)
	a.Select(0)
	a.Advance()
	a.Select(1)
	if res := a.Result(); res.Correct != 1 {
		t.Errorf("selection after finish altered the result")
	}
}

func TestEmptyQuestionsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("no panic for empty question list")
		}
	}()
	NewQuizAttempt(nil, 80)
}

func TestOutOfRangeOptionPanics(t *testing.T) {
	a := NewQuizAttempt(threeQuestions(), 80)
	defer func() {
		if recover() == nil {
			t.Errorf("no panic for out-of-range option")
		}
	}()
	a.Select(4)
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 4, 75},
		{1, 8, 13}, // 12.5 rounds half up
		{7, 7, 100},
	}
	for _, tt := range tests {
		if got := RoundPercent(tt.part, tt.total); got != tt.want {
			t.Errorf("RoundPercent(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestThresholdBoundary(t *testing.T) {
	// 4/5 = 80 exactly: passing is >=, not >.
	qs := make([]AttemptQuestion, 5)
	for i := range qs {
		qs[i] = AttemptQuestion{ID: string(rune('a' + i)), OptionCount: 2, CorrectIndex: 0}
	}
	a := NewQuizAttempt(qs, 80)
	for i := 0; i < 4; i++ {
		a.Select(0)
		a.Advance()
	}
	a.Select(1)
	res, _ := a.Advance()
	if res.Score != 80 || !res.Passed {
		t.Errorf("got score=%d passed=%v, want 80 true", res.Score, res.Passed)
	}
}

func TestAttemptStoreLifecycle(t *testing.T) {
	s := NewAttemptStore()
	s.Begin(1, "lesson:a", threeQuestions(), 80)

	if _, ok := s.Get(1, "lesson:a"); !ok {
		t.Fatalf("attempt missing after begin")
	}
	if _, ok := s.Get(2, "lesson:a"); ok {
		t.Errorf("attempt leaked across users")
	}

	// Begin replaces in-flight state.
	err := s.WithAttempt(1, "lesson:a", func(a *QuizAttempt) error {
		a.Select(0)
		return nil
	})
	if err != nil {
		t.Fatalf("WithAttempt: %v", err)
	}
	s.Begin(1, "lesson:a", threeQuestions(), 80)
	a, _ := s.Get(1, "lesson:a")
	if _, ok := a.Answer(0); ok {
		t.Errorf("begin kept answers from the replaced attempt")
	}

	s.Discard(1, "lesson:a")
	if err := s.WithAttempt(1, "lesson:a", func(*QuizAttempt) error { return nil }); err == nil {
		t.Errorf("WithAttempt succeeded after discard")
	}
}
