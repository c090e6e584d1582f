package service

import (
	"errors"
	"strings"

	"learnhub_backend/internal/i18n"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuizService hands localized question sets to the client and drives the
// per-session attempt state machine. Lesson quiz results stay in process
// memory; pre-test results are additionally persisted on the course access
// row because they gate enrollment across sessions.
type QuizService struct {
	QuizRepo     *repository.QuizRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	Attempts     *AttemptStore
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository, attempts *AttemptStore) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		Attempts:     attempts,
	}
}

// LessonQuizKey and PreTestQuizKey name the attempt slot in the store.
func LessonQuizKey(lessonID string) string  { return "lesson:" + lessonID }
func PreTestQuizKey(courseID string) string { return "pretest:" + courseID }

// QuestionView is a question as shown to the learner: localized text and
// options, never the correct index.
type QuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizSession is the payload of starting a quiz: the full localized question
// list plus the key the client uses for every subsequent attempt call.
type QuizSession struct {
	QuizKey   string         `json:"quizKey"`
	Threshold int            `json:"threshold"`
	Total     int            `json:"total"`
	Questions []QuestionView `json:"questions"`
}

// AttemptState is the state slice returned after each attempt mutation.
type AttemptState struct {
	Position int         `json:"position"`
	Selected *int        `json:"selected,omitempty"`
	Finished bool        `json:"finished"`
	Result   *QuizResult `json:"result,omitempty"`
}

// StartLessonQuiz opens (or restarts) the lesson quiz for the learner. A
// lesson with no questions is never presented as a quiz.
func (s *QuizService) StartLessonQuiz(userID uint, lessonID, locale string) (*QuizSession, error) {
	if _, err := s.CourseRepo.FindLessonByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	questions, err := s.QuizRepo.ListForLesson(lessonID)
	if err != nil {
		return nil, err
	}
	return s.begin(userID, LessonQuizKey(lessonID), questions, DefaultPassThreshold, locale)
}

// StartPreTest opens the course pre-test. The pass threshold comes from the
// course configuration.
func (s *QuizService) StartPreTest(userID uint, courseID, locale string) (*QuizSession, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.HasPreTest {
		return nil, util.ErrQuizUnavailable
	}
	questions, err := s.QuizRepo.ListPreTest(courseID)
	if err != nil {
		return nil, err
	}
	return s.begin(userID, PreTestQuizKey(courseID), questions, course.MinPreTestScore, locale)
}

func (s *QuizService) begin(userID uint, quizKey string, questions []model.QuizQuestion, threshold int, locale string) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, util.ErrQuizUnavailable
	}
	attempt := make([]AttemptQuestion, 0, len(questions))
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		opts := q.Options(locale)
		attempt = append(attempt, AttemptQuestion{
			ID:           q.ID,
			OptionCount:  len(opts),
			CorrectIndex: q.CorrectAnswerIndex,
		})
		views = append(views, QuestionView{
			ID:       q.ID,
			Question: i18n.Resolve(q.LocalizedFields(), "question", locale),
			Options:  opts,
		})
	}
	a := s.Attempts.Begin(userID, quizKey, attempt, threshold)
	return &QuizSession{
		QuizKey:   quizKey,
		Threshold: a.threshold,
		Total:     a.Total(),
		Questions: views,
	}, nil
}

// SelectAnswer records the option for the current question. The index comes
// from the request body, so it is range-checked here; the engine reserves its
// own out-of-range check for internal misuse.
func (s *QuizService) SelectAnswer(userID uint, quizKey string, optionIndex int) (*AttemptState, error) {
	return s.mutate(userID, quizKey, func(a *QuizAttempt) error {
		if !a.Finished() && (optionIndex < 0 || optionIndex >= a.CurrentOptionCount()) {
			return util.ErrInvalidOption
		}
		a.Select(optionIndex)
		return nil
	})
}

// Previous steps the attempt back one question.
func (s *QuizService) Previous(userID uint, quizKey string) (*AttemptState, error) {
	return s.mutate(userID, quizKey, func(a *QuizAttempt) error {
		a.Previous()
		return nil
	})
}

// Advance moves the attempt forward. At the last question it finalizes,
// records the completion metric, and for a pre-test persists the score.
func (s *QuizService) Advance(userID uint, quizKey string) (*AttemptState, error) {
	var finished *QuizResult
	state, err := s.mutate(userID, quizKey, func(a *QuizAttempt) error {
		if res, ok := a.Advance(); ok {
			finished = res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if finished != nil {
		s.recordCompletion(userID, quizKey, finished)
	}
	return state, nil
}

// Retry restarts a finished attempt with the same questions in the same
// order.
func (s *QuizService) Retry(userID uint, quizKey string) (*AttemptState, error) {
	return s.mutate(userID, quizKey, func(a *QuizAttempt) error {
		if !a.Retry() {
			return util.ErrAttemptUnfinished
		}
		return nil
	})
}

// Discard drops the attempt entirely; closing the quiz flow persists
// nothing.
func (s *QuizService) Discard(userID uint, quizKey string) {
	s.Attempts.Discard(userID, quizKey)
}

// LatestLessonResult returns the in-session result for a lesson quiz, or nil
// when no finished attempt exists.
func (s *QuizService) LatestLessonResult(userID uint, lessonID string) *QuizResult {
	a, ok := s.Attempts.Get(userID, LessonQuizKey(lessonID))
	if !ok {
		return nil
	}
	return a.Result()
}

// LatestPreTestResult returns the in-session pre-test result for a course.
func (s *QuizService) LatestPreTestResult(userID uint, courseID string) *QuizResult {
	a, ok := s.Attempts.Get(userID, PreTestQuizKey(courseID))
	if !ok {
		return nil
	}
	return a.Result()
}

func (s *QuizService) mutate(userID uint, quizKey string, fn func(*QuizAttempt) error) (*AttemptState, error) {
	var state AttemptState
	err := s.Attempts.WithAttempt(userID, quizKey, func(a *QuizAttempt) error {
		if err := fn(a); err != nil {
			return err
		}
		state.Position = a.Position()
		if idx, ok := a.Answer(a.Position()); ok {
			selected := idx
			state.Selected = &selected
		}
		state.Finished = a.Finished()
		state.Result = a.Result()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *QuizService) recordCompletion(userID uint, quizKey string, res *QuizResult) {
	outcome := "failed"
	if res.Passed {
		outcome = "passed"
	}
	monitoring.QuizCompletions.WithLabelValues(outcome).Inc()

	courseID, ok := strings.CutPrefix(quizKey, "pretest:")
	if !ok {
		return
	}
	if err := s.ProgressRepo.UpsertPreTestScore(userID, courseID, res.Score); err != nil {
		logger.Log.Error("persist pre-test score failed",
			zap.Uint("userID", userID),
			zap.String("courseID", courseID),
			zap.Error(err))
	}
}
