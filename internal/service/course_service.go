package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"learnhub_backend/internal/i18n"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// CourseService serves the public catalog and the admin course editor. The
// catalog is always filtered by the requesting locale; the admin surface
// sees everything.
type CourseService struct {
	CourseRepo   *repository.CourseRepository
	QuizRepo     *repository.QuizRepository
	ProgressRepo *repository.ProgressRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, quizRepo *repository.QuizRepository, progressRepo *repository.ProgressRepository) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		QuizRepo:     quizRepo,
		ProgressRepo: progressRepo,
	}
}

// CourseSummary is a catalog card.
type CourseSummary struct {
	ID              string `json:"id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	CourseType      string `json:"courseType"`
	Language        string `json:"language"`
	ImageURL        string `json:"imageUrl,omitempty"`
	DemoVideoURL    string `json:"demoVideoUrl,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	IsFree          bool   `json:"isFree"`
	HasPreTest      bool   `json:"hasPreTest"`
}

// Catalog lists the courses visible to the locale.
func (s *CourseService) Catalog(locale string) ([]CourseSummary, error) {
	courses, err := s.CourseRepo.List()
	if err != nil {
		return nil, err
	}
	visible := i18n.FilterVisible(courses, locale)
	out := make([]CourseSummary, 0, len(visible))
	for _, c := range visible {
		out = append(out, summary(c))
	}
	return out, nil
}

// Detail returns a course with its module and lesson outline. Accepts a
// course id or a slug; quiz answer keys are never included.
func (s *CourseService) Detail(idOrSlug string) (*model.Course, error) {
	course, err := s.CourseRepo.FindBySlug(idOrSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		course, err = s.CourseRepo.FindByIDFull(idOrSlug)
	} else if err == nil {
		course, err = s.CourseRepo.FindByIDFull(course.ID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	stripAnswers(course)
	return course, nil
}

// Enroll records the learner's enrollment in a free or unlocked course.
func (s *CourseService) Enroll(userID uint, courseID string) error {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.ProgressRepo.Enroll(userID, courseID)
}

// Admin editor.

type CourseInput struct {
	Slug            string   `json:"slug" binding:"required"`
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	CourseType      string   `json:"courseType"`
	Language        string   `json:"language"`
	Visibility      []string `json:"visibility"`
	ImageURL        string   `json:"imageUrl"`
	DemoVideoURL    string   `json:"demoVideoUrl"`
	DurationMinutes int      `json:"durationMinutes"`
	IsFree          bool     `json:"isFree"`
	IsLocked        bool     `json:"isLocked"`
	EnableLessonQA  bool     `json:"enableLessonQa"`
	HasPreTest      bool     `json:"hasPreTest"`
	MinPreTestScore int      `json:"minPreTestScore"`
}

func (s *CourseService) CreateCourse(in CourseInput) (*model.Course, error) {
	course := &model.Course{}
	applyCourseInput(course, in)
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(id string, in CourseInput) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	applyCourseInput(course, in)
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(id string) error {
	return s.CourseRepo.Delete(id)
}

type ModuleInput struct {
	CourseID   string `json:"courseId" binding:"required"`
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
}

func (s *CourseService) CreateModule(in ModuleInput) (*model.CourseModule, error) {
	if _, err := s.CourseRepo.FindByID(in.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	m := &model.CourseModule{CourseID: in.CourseID, Title: in.Title, OrderIndex: in.OrderIndex}
	if err := s.CourseRepo.CreateModule(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CourseService) UpdateModule(id string, in ModuleInput) (*model.CourseModule, error) {
	m, err := s.CourseRepo.FindModuleByID(id)
	if err != nil {
		return nil, err
	}
	m.Title = in.Title
	m.OrderIndex = in.OrderIndex
	if err := s.CourseRepo.UpdateModule(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CourseService) DeleteModule(id string) error {
	return s.CourseRepo.DeleteModule(id)
}

type LessonInput struct {
	ModuleID     string `json:"moduleId" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content"`
	LessonType   string `json:"lessonType"`
	VideoURL     string `json:"videoUrl"`
	DurationText string `json:"durationText"`
	OrderIndex   int    `json:"orderIndex"`
	HasQuiz      bool   `json:"hasQuiz"`
}

func (s *CourseService) CreateLesson(in LessonInput) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindModuleByID(in.ModuleID); err != nil {
		return nil, err
	}
	l := &model.Lesson{}
	applyLessonInput(l, in)
	if err := s.CourseRepo.CreateLesson(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *CourseService) UpdateLesson(id string, in LessonInput) (*model.Lesson, error) {
	l, err := s.CourseRepo.FindLessonByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	applyLessonInput(l, in)
	if err := s.CourseRepo.UpdateLesson(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *CourseService) DeleteLesson(id string) error {
	return s.CourseRepo.DeleteLesson(id)
}

// QuestionInput targets either a lesson quiz (LessonID set) or a course
// pre-test (CourseID set, LessonID empty).
type QuestionInput struct {
	LessonID           string   `json:"lessonId"`
	CourseID           string   `json:"courseId"`
	QuestionHe         string   `json:"question_he"`
	QuestionEn         string   `json:"question_en"`
	OptionsHe          []string `json:"options_he"`
	OptionsEn          []string `json:"options_en"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	OrderIndex         int      `json:"orderIndex"`
}

func (s *CourseService) CreateQuestion(in QuestionInput) (*model.QuizQuestion, error) {
	q := &model.QuizQuestion{}
	if err := applyQuestionInput(q, in); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *CourseService) UpdateQuestion(id string, in QuestionInput) (*model.QuizQuestion, error) {
	q, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := applyQuestionInput(q, in); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *CourseService) DeleteQuestion(id string) error {
	return s.QuizRepo.Delete(id)
}

func summary(c model.Course) CourseSummary {
	return CourseSummary{
		ID:              c.ID,
		Slug:            c.Slug,
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		CourseType:      c.CourseType,
		Language:        c.Language,
		ImageURL:        c.ImageURL,
		DemoVideoURL:    c.DemoVideoURL,
		DurationMinutes: c.DurationMinutes,
		IsFree:          c.IsFree,
		HasPreTest:      c.HasPreTest,
	}
}

func applyCourseInput(course *model.Course, in CourseInput) {
	course.Slug = in.Slug
	course.Title = in.Title
	course.Description = in.Description
	course.Category = in.Category
	course.CourseType = in.CourseType
	if in.Language != "" {
		course.Language = in.Language
	}
	if in.Visibility != nil {
		raw, _ := json.Marshal(in.Visibility)
		course.Visibility = raw
	}
	course.ImageURL = in.ImageURL
	course.DemoVideoURL = in.DemoVideoURL
	course.DurationMinutes = in.DurationMinutes
	course.IsFree = in.IsFree
	course.IsLocked = in.IsLocked
	course.EnableLessonQA = in.EnableLessonQA
	course.HasPreTest = in.HasPreTest
	if in.MinPreTestScore > 0 {
		course.MinPreTestScore = in.MinPreTestScore
	}
}

func applyLessonInput(l *model.Lesson, in LessonInput) {
	l.ModuleID = in.ModuleID
	l.Title = in.Title
	l.Content = in.Content
	if in.LessonType != "" {
		l.LessonType = in.LessonType
	}
	l.VideoURL = in.VideoURL
	l.DurationText = in.DurationText
	l.OrderIndex = in.OrderIndex
	l.HasQuiz = in.HasQuiz
}

func applyQuestionInput(q *model.QuizQuestion, in QuestionInput) error {
	if in.LessonID == "" && in.CourseID == "" {
		return errors.New("question must target a lesson or a course pre-test")
	}
	if len(in.OptionsHe) == 0 && len(in.OptionsEn) == 0 {
		return errors.New("question needs at least two options")
	}
	if in.CorrectAnswerIndex < 0 {
		return fmt.Errorf("correct answer index %d out of range", in.CorrectAnswerIndex)
	}
	// The correct index must be answerable in every locale the question is
	// translated into, not just the preferred one.
	for _, opts := range [][]string{in.OptionsHe, in.OptionsEn} {
		if len(opts) == 0 {
			continue
		}
		if len(opts) < 2 {
			return errors.New("question needs at least two options")
		}
		if in.CorrectAnswerIndex >= len(opts) {
			return fmt.Errorf("correct answer index %d out of range for %d options", in.CorrectAnswerIndex, len(opts))
		}
	}
	if in.LessonID != "" {
		q.LessonID = &in.LessonID
	} else {
		q.LessonID = nil
	}
	if in.CourseID != "" {
		q.CourseID = &in.CourseID
	}
	q.QuestionHe = in.QuestionHe
	q.QuestionEn = in.QuestionEn
	if in.OptionsHe != nil {
		raw, _ := json.Marshal(in.OptionsHe)
		q.OptionsHe = raw
	}
	if in.OptionsEn != nil {
		raw, _ := json.Marshal(in.OptionsEn)
		q.OptionsEn = raw
	}
	q.CorrectAnswerIndex = in.CorrectAnswerIndex
	q.OrderIndex = in.OrderIndex
	return nil
}

func stripAnswers(course *model.Course) {
	for i := range course.PreTestQuiz {
		course.PreTestQuiz[i].CorrectAnswerIndex = -1
	}
	for mi := range course.Modules {
		for li := range course.Modules[mi].Lessons {
			for qi := range course.Modules[mi].Lessons[li].Quiz {
				course.Modules[mi].Lessons[li].Quiz[qi].CorrectAnswerIndex = -1
			}
		}
	}
}
