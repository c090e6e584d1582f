package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrQuizUnavailable    = errors.New("quiz unavailable")
	ErrNoActiveAttempt    = errors.New("no active quiz attempt")
	ErrInvalidOption      = errors.New("option index out of range")
	ErrAttemptFinished    = errors.New("quiz attempt already finished")
	ErrAttemptUnfinished  = errors.New("quiz attempt not finished")
	ErrQuizNotPassed      = errors.New("lesson quiz not passed")
	ErrQANotEnabled       = errors.New("lesson Q&A disabled for this course")
	ErrPostNotFound       = errors.New("post not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrArticleNotFound    = errors.New("article not found")
)
