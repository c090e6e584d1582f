package service

import (
	"testing"

	"learnhub_backend/internal/model"
)

func lessonWithQuiz(id string) *model.Lesson {
	l := &model.Lesson{HasQuiz: true}
	l.ID = id
	return l
}

func lessonPlain(id string) *model.Lesson {
	l := &model.Lesson{}
	l.ID = id
	return l
}

func completedRecord(lessonID string) model.LessonProgress {
	return model.LessonProgress{LessonID: lessonID, Completed: true}
}

func TestIsLessonUnlocked(t *testing.T) {
	passed := &QuizResult{Score: 100, Passed: true}
	failed := &QuizResult{Score: 40, Passed: false}

	tests := []struct {
		name       string
		lesson     *model.Lesson
		records    []model.LessonProgress
		latest     *QuizResult
		privileged bool
		want       bool
	}{
		{"no quiz always unlocked", lessonPlain("l1"), nil, nil, false, true},
		{"quiz, nothing yet", lessonWithQuiz("l1"), nil, nil, false, false},
		{"quiz, failed this session", lessonWithQuiz("l1"), nil, failed, false, false},
		{"quiz, passed this session", lessonWithQuiz("l1"), nil, passed, false, true},
		{"quiz, completed before", lessonWithQuiz("l1"), []model.LessonProgress{completedRecord("l1")}, nil, false, true},
		{"other lesson completed", lessonWithQuiz("l1"), []model.LessonProgress{completedRecord("l2")}, nil, false, false},
		{"admin bypasses", lessonWithQuiz("l1"), nil, failed, true, true},
		{"nil lesson", nil, nil, passed, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLessonUnlocked(tt.lesson, tt.records, tt.latest, tt.privileged); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCourseUnlocked(t *testing.T) {
	gated := &model.Course{HasPreTest: true, MinPreTestScore: 80}
	open := &model.Course{}

	tests := []struct {
		name       string
		course     *model.Course
		passed     bool
		privileged bool
		want       bool
	}{
		{"no pre-test", open, false, false, true},
		{"pre-test not passed", gated, false, false, false},
		{"pre-test passed", gated, true, false, true},
		{"admin bypasses", gated, false, true, true},
		{"nil course", nil, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCourseUnlocked(tt.course, tt.passed, tt.privileged); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanFinishLesson(t *testing.T) {
	passed := &QuizResult{Passed: true}

	tests := []struct {
		name             string
		lesson           *model.Lesson
		alreadyCompleted bool
		latest           *QuizResult
		privileged       bool
		want             bool
	}{
		{"no quiz", lessonPlain("l1"), false, nil, false, true},
		{"quiz unpassed", lessonWithQuiz("l1"), false, nil, false, false},
		{"quiz passed", lessonWithQuiz("l1"), false, passed, false, true},
		{"already completed re-finish", lessonWithQuiz("l1"), true, nil, false, true},
		{"admin finishes anything", lessonWithQuiz("l1"), false, nil, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanFinishLesson(tt.lesson, tt.alreadyCompleted, tt.latest, tt.privileged); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLessonRequiresQuizByAttachedQuestions(t *testing.T) {
	// HasQuiz false but questions attached still gates.
	l := lessonPlain("l1")
	l.Quiz = []model.QuizQuestion{{}}
	if IsLessonUnlocked(l, nil, nil, false) {
		t.Errorf("lesson with attached questions unlocked without a pass")
	}
}

func TestIsCourseCompleted(t *testing.T) {
	course := &model.Course{
		Modules: []model.CourseModule{
			{Lessons: []model.Lesson{*lessonPlain("l1"), *lessonPlain("l2")}},
			{Lessons: []model.Lesson{*lessonPlain("l3")}},
		},
	}

	tests := []struct {
		name    string
		course  *model.Course
		records []model.LessonProgress
		want    bool
	}{
		{"all done", course, []model.LessonProgress{completedRecord("l1"), completedRecord("l2"), completedRecord("l3")}, true},
		{"one missing", course, []model.LessonProgress{completedRecord("l1"), completedRecord("l2")}, false},
		{"none done", course, nil, false},
		{"zero lessons never complete", &model.Course{}, nil, false},
		{"nil course", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCourseCompleted(tt.course, tt.records); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
