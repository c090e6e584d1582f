package service

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// LessonQAService handles in-classroom questions. The feature is opt-in per
// course; every entry point re-checks the course flag.
type LessonQAService struct {
	QARepo     *repository.LessonQARepository
	CourseRepo *repository.CourseRepository
}

func NewLessonQAService(qaRepo *repository.LessonQARepository, courseRepo *repository.CourseRepository) *LessonQAService {
	return &LessonQAService{QARepo: qaRepo, CourseRepo: courseRepo}
}

type AskRequest struct {
	Content string `json:"content" binding:"required"`
}

type AnswerRequest struct {
	Content string `json:"content" binding:"required"`
	Solves  bool   `json:"solves"`
}

func (s *LessonQAService) ListForLesson(lessonID string) ([]model.LessonQuestion, error) {
	if err := s.ensureEnabled(lessonID); err != nil {
		return nil, err
	}
	return s.QARepo.ListForLesson(lessonID)
}

func (s *LessonQAService) Ask(userID uint, lessonID string, req AskRequest) (*model.LessonQuestion, error) {
	if err := s.ensureEnabled(lessonID); err != nil {
		return nil, err
	}
	q := &model.LessonQuestion{
		LessonID: lessonID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := s.QARepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// Answer posts a reply. Marking the question solved is allowed for the
// question's author or an admin.
func (s *LessonQAService) Answer(userID uint, privileged bool, questionID string, req AnswerRequest) (*model.LessonAnswer, error) {
	q, err := s.QARepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	a := &model.LessonAnswer{
		QuestionID: questionID,
		AuthorID:   userID,
		Content:    req.Content,
	}
	if err := s.QARepo.CreateAnswer(a); err != nil {
		return nil, err
	}
	if req.Solves && (q.AuthorID == userID || privileged) {
		if err := s.QARepo.MarkSolved(questionID); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// ensureEnabled walks lesson -> module -> course and checks the Q&A flag.
func (s *LessonQAService) ensureEnabled(lessonID string) error {
	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	module, err := s.CourseRepo.FindModuleByID(lesson.ModuleID)
	if err != nil {
		return err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return err
	}
	if !course.EnableLessonQA {
		return util.ErrQANotEnabled
	}
	return nil
}
