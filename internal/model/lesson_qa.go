package model

import "time"

// LessonQuestion is a learner question asked inside the classroom for a
// specific lesson. Available only when the course enables lesson Q&A.
type LessonQuestion struct {
	UUIDBase
	LessonID string         `gorm:"index;type:varchar(36)" json:"lessonId"`
	AuthorID uint           `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author   User           `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string         `gorm:"type:text;not null" json:"content"`
	IsSolved bool           `gorm:"default:false" json:"isSolved"`
	SolvedAt *time.Time     `json:"solvedAt,omitempty"`
	Answers  []LessonAnswer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (LessonQuestion) TableName() string {
	return "lesson_questions"
}

type LessonAnswer struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36)" json:"questionId"`
	AuthorID   uint   `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author     User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content    string `gorm:"type:text;not null" json:"content"`
}

func (LessonAnswer) TableName() string {
	return "lesson_answers"
}
