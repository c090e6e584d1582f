package model

import "time"

// LessonProgress records that a learner finished a lesson. At most one row
// exists per (user, lesson) pair; writes go through an upsert keyed on the
// composite index so concurrent duplicate calls cannot create duplicates.
// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_lesson;type:bigint unsigned" json:"userId"`
	LessonID    string     `gorm:"uniqueIndex:idx_user_lesson;type:varchar(36)" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// CourseAccess tracks enrollment plus the persisted pre-test score for
// courses that gate entry behind a pre-test.
// swagger:model CourseAccess
type CourseAccess struct {
	BaseModel
	UserID       uint       `gorm:"uniqueIndex:idx_user_course;type:bigint unsigned" json:"userId"`
	CourseID     string     `gorm:"uniqueIndex:idx_user_course;type:varchar(36)" json:"courseId"`
	IsEnrolled   bool       `gorm:"default:true" json:"isEnrolled"`
	EnrolledAt   *time.Time `json:"enrolledAt,omitempty"`
	PreTestScore *int       `json:"preTestScore,omitempty"`
}

func (CourseAccess) TableName() string {
	return "course_access"
}
