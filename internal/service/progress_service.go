package service

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// ProgressService owns the classroom read model and the finish-lesson write
// path. Every gate is re-evaluated server-side from persisted rows plus the
// in-session quiz results; the client's UI state is advisory only.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
	Quizzes      *QuizService
	Sessions     *SessionRegistry
}

func NewProgressService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository, quizzes *QuizService, sessions *SessionRegistry) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
		Quizzes:      quizzes,
		Sessions:     sessions,
	}
}

// LessonState is a lesson annotated with the learner's gating view.
type LessonState struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	LessonType   string `json:"lessonType"`
	DurationText string `json:"durationText,omitempty"`
	OrderIndex   int    `json:"orderIndex"`
	HasQuiz      bool   `json:"hasQuiz"`
	Unlocked     bool   `json:"unlocked"`
	Completed    bool   `json:"completed"`
	CanFinish    bool   `json:"canFinish"`
}

type ModuleState struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	OrderIndex int           `json:"orderIndex"`
	Lessons    []LessonState `json:"lessons"`
}

// ClassroomState is the full gating view of one course for one learner.
type ClassroomState struct {
	CourseID        string        `json:"courseId"`
	Unlocked        bool          `json:"unlocked"`
	Completed       bool          `json:"completed"`
	ProgressPercent int           `json:"progressPercent"`
	LessonsDone     int           `json:"lessonsDone"`
	LessonsTotal    int           `json:"lessonsTotal"`
	Modules         []ModuleState `json:"modules"`
}

// Classroom assembles the gating view for a course: which lessons are
// unlocked, which are finished, and the rounded completion percentage.
func (s *ProgressService) Classroom(userID uint, courseID string, privileged bool) (*ClassroomState, error) {
	course, err := s.CourseRepo.FindByIDFull(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	lessonIDs := collectLessonIDs(course)
	records, err := s.ProgressRepo.ListForLessons(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	state := &ClassroomState{
		CourseID:     course.ID,
		Unlocked:     IsCourseUnlocked(course, s.passedPreTest(userID, course), privileged),
		Completed:    IsCourseCompleted(course, records),
		LessonsTotal: len(lessonIDs),
		Modules:      make([]ModuleState, 0, len(course.Modules)),
	}
	for _, m := range course.Modules {
		ms := ModuleState{
			ID:         m.ID,
			Title:      m.Title,
			OrderIndex: m.OrderIndex,
			Lessons:    make([]LessonState, 0, len(m.Lessons)),
		}
		for i := range m.Lessons {
			lesson := &m.Lessons[i]
			latest := s.Quizzes.LatestLessonResult(userID, lesson.ID)
			done := lessonCompleted(lesson.ID, records)
			if done {
				state.LessonsDone++
			}
			ms.Lessons = append(ms.Lessons, LessonState{
				ID:           lesson.ID,
				Title:        lesson.Title,
				LessonType:   lesson.LessonType,
				DurationText: lesson.DurationText,
				OrderIndex:   lesson.OrderIndex,
				HasQuiz:      lessonRequiresQuiz(lesson),
				Unlocked:     IsLessonUnlocked(lesson, records, latest, privileged),
				Completed:    done,
				CanFinish:    CanFinishLesson(lesson, done, latest, privileged),
			})
		}
		state.Modules = append(state.Modules, ms)
	}
	state.ProgressPercent = RoundPercent(state.LessonsDone, state.LessonsTotal)
	return state, nil
}

// FinishLesson marks the lesson complete after re-checking the gate. The
// session snapshot is refreshed only once the row is confirmed persisted.
func (s *ProgressService) FinishLesson(userID uint, lessonID string, privileged bool) error {
	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	done, err := s.ProgressRepo.IsCompleted(userID, lessonID)
	if err != nil {
		return err
	}
	latest := s.Quizzes.LatestLessonResult(userID, lessonID)
	if !CanFinishLesson(lesson, done, latest, privileged) {
		return util.ErrQuizNotPassed
	}
	if err := s.ProgressRepo.UpsertCompletion(userID, lessonID); err != nil {
		return err
	}
	monitoring.LessonCompletions.Inc()
	s.Sessions.Invalidate(userID)
	s.Sessions.RefreshAsync(userID)
	return nil
}

// CourseProgress summarizes one course for progress bars.
type CourseProgress struct {
	CourseID  string `json:"courseId"`
	Done      int    `json:"done"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
	Completed bool   `json:"completed"`
}

func (s *ProgressService) ProgressForCourse(userID uint, courseID string) (*CourseProgress, error) {
	lessonIDs, err := s.CourseRepo.LessonIDs(courseID)
	if err != nil {
		return nil, err
	}
	records, err := s.ProgressRepo.ListForLessons(userID, lessonIDs)
	if err != nil {
		return nil, err
	}
	done := 0
	for _, r := range records {
		if r.Completed {
			done++
		}
	}
	return &CourseProgress{
		CourseID:  courseID,
		Done:      done,
		Total:     len(lessonIDs),
		Percent:   RoundPercent(done, len(lessonIDs)),
		Completed: len(lessonIDs) > 0 && done == len(lessonIDs),
	}, nil
}

// Dashboard aggregates the learner's enrollments into per-course progress
// plus overall counts.
type Dashboard struct {
	Courses          []CourseProgress `json:"courses"`
	CompletedCourses int              `json:"completedCourses"`
	OverallPercent   int              `json:"overallPercent"`
}

func (s *ProgressService) Overview(userID uint) (*Dashboard, error) {
	access, err := s.ProgressRepo.ListAccess(userID)
	if err != nil {
		return nil, err
	}
	dash := &Dashboard{Courses: make([]CourseProgress, 0, len(access))}
	totalLessons, totalDone := 0, 0
	for _, a := range access {
		cp, err := s.ProgressForCourse(userID, a.CourseID)
		if err != nil {
			return nil, err
		}
		dash.Courses = append(dash.Courses, *cp)
		totalLessons += cp.Total
		totalDone += cp.Done
		if cp.Completed {
			dash.CompletedCourses++
		}
	}
	dash.OverallPercent = RoundPercent(totalDone, totalLessons)
	return dash, nil
}

// passedPreTest consults the persisted access row first, then the in-session
// pre-test result.
func (s *ProgressService) passedPreTest(userID uint, course *model.Course) bool {
	if !course.HasPreTest {
		return false
	}
	access, err := s.ProgressRepo.FindAccess(userID, course.ID)
	if err == nil && access.PreTestScore != nil && *access.PreTestScore >= course.MinPreTestScore {
		return true
	}
	latest := s.Quizzes.LatestPreTestResult(userID, course.ID)
	return latest != nil && latest.Passed
}

func collectLessonIDs(course *model.Course) []string {
	var ids []string
	for _, m := range course.Modules {
		for _, l := range m.Lessons {
			ids = append(ids, l.ID)
		}
	}
	return ids
}
