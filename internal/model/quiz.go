package model

import "encoding/json"

// QuizQuestion is a single-choice question. It belongs either to a lesson
// (lesson quiz) or, with a nil LessonID, directly to a course (pre-test).
// Question text and options carry per-locale variants.
// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	LessonID           *string         `gorm:"index;type:varchar(36)" json:"lessonId,omitempty"`
	CourseID           *string         `gorm:"index;type:varchar(36)" json:"courseId,omitempty"`
	QuestionHe         string          `gorm:"type:text" json:"question_he"`
	QuestionEn         string          `gorm:"type:text" json:"question_en"`
	OptionsHe          json.RawMessage `gorm:"type:json" json:"options_he"` // JSON: []string
	OptionsEn          json.RawMessage `gorm:"type:json" json:"options_en"` // JSON: []string
	CorrectAnswerIndex int             `gorm:"not null" json:"correctAnswerIndex"`
	OrderIndex         int             `gorm:"default:0" json:"orderIndex"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// IsPreTest reports whether the question belongs to a course-level pre-test
// rather than a lesson quiz.
func (q QuizQuestion) IsPreTest() bool {
	return q.LessonID == nil && q.CourseID != nil
}

// LocalizedFields exposes the per-locale question text to the i18n resolver.
func (q QuizQuestion) LocalizedFields() map[string]interface{} {
	return map[string]interface{}{
		"question_he": q.QuestionHe,
		"question_en": q.QuestionEn,
	}
}

// Options decodes the option list for the locale, falling back to the
// platform default locale in the same order the field resolver uses.
func (q QuizQuestion) Options(locale string) []string {
	for _, raw := range [][]byte{q.optionsFor(locale), q.OptionsHe, q.OptionsEn} {
		if len(raw) == 0 {
			continue
		}
		var opts []string
		if err := json.Unmarshal(raw, &opts); err == nil && len(opts) > 0 {
			return opts
		}
	}
	return nil
}

func (q QuizQuestion) optionsFor(locale string) json.RawMessage {
	if locale == "en" || len(locale) > 2 && locale[:3] == "en-" {
		return q.OptionsEn
	}
	return q.OptionsHe
}
