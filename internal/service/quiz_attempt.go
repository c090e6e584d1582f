package service

import (
	"fmt"
	"math"
	"sync"

	"learnhub_backend/internal/util"
)

// DefaultPassThreshold is the pass mark used when a course or lesson does
// not configure its own minimum score.
const DefaultPassThreshold = 80

// AttemptQuestion is the slice of a quiz question the attempt engine needs:
// identity, option count for bounds checking, and the correct option index.
type AttemptQuestion struct {
	ID           string
	OptionCount  int
	CorrectIndex int
}

// QuizResult is the outcome derived from an attempt. Score is a 0-100
// percentage rounded half up; Passed compares it against the threshold.
type QuizResult struct {
	Score     int    `json:"score"`
	Passed    bool   `json:"passed"`
	Correct   int    `json:"correct"`
	Total     int    `json:"total"`
	PerAnswer []bool `json:"perAnswer"`
	Threshold int    `json:"threshold"`
}

// QuizAttempt walks a learner through an ordered list of single-choice
// questions. It is a session-scoped state machine: InProgress(position) until
// Advance at the last question produces a result, then Completed until Retry
// resets it. Question order never changes across retries.
//
// A QuizAttempt is not safe for concurrent use; the AttemptStore serializes
// access per learner.
type QuizAttempt struct {
	questions []AttemptQuestion
	threshold int
	answers   map[int]int
	position  int
	result    *QuizResult
}

// NewQuizAttempt starts an attempt at position 0 with no answers recorded.
// An empty question list is a data integrity violation upstream and panics;
// callers must filter quizless content before presenting it.
func NewQuizAttempt(questions []AttemptQuestion, threshold int) *QuizAttempt {
	if len(questions) == 0 {
		panic("quiz attempt started with no questions")
	}
	if threshold <= 0 {
		threshold = DefaultPassThreshold
	}
	return &QuizAttempt{
		questions: questions,
		threshold: threshold,
		answers:   make(map[int]int),
	}
}

func (a *QuizAttempt) Position() int  { return a.position }
func (a *QuizAttempt) Total() int     { return len(a.questions) }
func (a *QuizAttempt) Finished() bool { return a.result != nil }

// CurrentOptionCount returns the option count of the question at the
// current position. Callers handling untrusted input check against it
// before Select.
func (a *QuizAttempt) CurrentOptionCount() int {
	return a.questions[a.position].OptionCount
}

// Result returns the emitted result, or nil while the attempt is in progress.
func (a *QuizAttempt) Result() *QuizResult { return a.result }

// Answer returns the selected option for a position, if any.
func (a *QuizAttempt) Answer(position int) (int, bool) {
	idx, ok := a.answers[position]
	return idx, ok
}

// Select records the option for the current question, overwriting any prior
// selection. Re-selecting after navigating away and back is allowed. An
// out-of-range option index is a programmer error and panics. Selections on
// a finished attempt are ignored.
func (a *QuizAttempt) Select(optionIndex int) {
	if a.result != nil {
		return
	}
	q := a.questions[a.position]
	if optionIndex < 0 || optionIndex >= q.OptionCount {
		panic(fmt.Sprintf("option index %d out of range for question %s (%d options)", optionIndex, q.ID, q.OptionCount))
	}
	a.answers[a.position] = optionIndex
}

// Previous steps back one question without clearing answers. No-op at the
// first question or on a finished attempt.
func (a *QuizAttempt) Previous() {
	if a.result != nil || a.position == 0 {
		return
	}
	a.position--
}

// Advance moves forward one question. It is guarded: with no answer recorded
// at the current position it does nothing, mirroring the disabled control in
// the UI rather than corrupting state. At the last question it is the
// terminal transition: the result is computed over whatever answers exist,
// with questions skipped via back-then-forward navigation counted as
// incorrect, and returned with ok=true.
func (a *QuizAttempt) Advance() (*QuizResult, bool) {
	if a.result != nil {
		return a.result, false
	}
	if _, answered := a.answers[a.position]; !answered {
		return nil, false
	}
	if a.position < len(a.questions)-1 {
		a.position++
		return nil, false
	}
	r := a.ComputeResult()
	a.result = &r
	return a.result, true
}

// Retry discards all selections and restarts at position 0 with the same
// question order. Valid only after a result was emitted.
func (a *QuizAttempt) Retry() bool {
	if a.result == nil {
		return false
	}
	a.answers = make(map[int]int)
	a.position = 0
	a.result = nil
	return true
}

// ComputeResult scores the attempt as it stands: a position is correct iff
// its recorded answer equals the question's correct index; unanswered
// positions are incorrect. It never mutates the attempt.
func (a *QuizAttempt) ComputeResult() QuizResult {
	perAnswer := make([]bool, len(a.questions))
	correct := 0
	for i, q := range a.questions {
		if idx, ok := a.answers[i]; ok && idx == q.CorrectIndex {
			perAnswer[i] = true
			correct++
		}
	}
	score := RoundPercent(correct, len(a.questions))
	return QuizResult{
		Score:     score,
		Passed:    score >= a.threshold,
		Correct:   correct,
		Total:     len(a.questions),
		PerAnswer: perAnswer,
		Threshold: a.threshold,
	}
}

// RoundPercent computes round-half-up(100 * part / total), with 0 for an
// empty total. Quiz scoring and progress percentages share this rule.
func RoundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// AttemptStore holds the single live attempt per (user, quiz) key. Attempts
// are ephemeral: they live in process memory for the session and are
// discarded when the learner closes the flow or starts over.
type AttemptStore struct {
	mu       sync.Mutex
	attempts map[attemptKey]*QuizAttempt
}

type attemptKey struct {
	userID  uint
	quizKey string
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: make(map[attemptKey]*QuizAttempt)}
}

// Begin replaces any previous attempt for the key: opening the quiz flow
// always starts clean.
func (s *AttemptStore) Begin(userID uint, quizKey string, questions []AttemptQuestion, threshold int) *QuizAttempt {
	a := NewQuizAttempt(questions, threshold)
	s.mu.Lock()
	s.attempts[attemptKey{userID, quizKey}] = a
	s.mu.Unlock()
	return a
}

func (s *AttemptStore) Get(userID uint, quizKey string) (*QuizAttempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[attemptKey{userID, quizKey}]
	return a, ok
}

// Discard drops the attempt without persisting anything; closing the flow
// mid-attempt leaves no trace.
func (s *AttemptStore) Discard(userID uint, quizKey string) {
	s.mu.Lock()
	delete(s.attempts, attemptKey{userID, quizKey})
	s.mu.Unlock()
}

// WithAttempt runs fn while holding the store lock, serializing all
// mutations of a learner's attempt.
func (s *AttemptStore) WithAttempt(userID uint, quizKey string, fn func(*QuizAttempt) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[attemptKey{userID, quizKey}]
	if !ok {
		return util.ErrNoActiveAttempt
	}
	return fn(a)
}
