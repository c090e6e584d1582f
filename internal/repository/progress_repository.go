package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// UpsertCompletion marks a lesson finished for a learner. Keyed on the
// (user_id, lesson_id) unique index, so concurrent duplicate calls collapse
// into one row; re-finishing an already finished lesson rewrites the same
// logical state.
func (r *ProgressRepository) UpsertCompletion(userID uint, lessonID string) error {
	now := time.Now()
	record := model.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(&record).Error
}

// ListForLessons returns the learner's progress rows for the given lessons.
func (r *ProgressRepository) ListForLessons(userID uint, lessonIDs []string) ([]model.LessonProgress, error) {
	var records []model.LessonProgress
	if len(lessonIDs) == 0 {
		return records, nil
	}
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&records).Error
	return records, err
}

// ListCompleted returns every completed lesson row for the learner.
func (r *ProgressRepository) ListCompleted(userID uint) ([]model.LessonProgress, error) {
	var records []model.LessonProgress
	err := r.DB.Where("user_id = ? AND completed = ?", userID, true).
		Find(&records).Error
	return records, err
}

// IsCompleted reports whether the learner finished the lesson. A missing row
// reads as not completed.
func (r *ProgressRepository) IsCompleted(userID uint, lessonID string) (bool, error) {
	var record model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return record.Completed, nil
}

// Course access.

func (r *ProgressRepository) FindAccess(userID uint, courseID string) (*model.CourseAccess, error) {
	var access model.CourseAccess
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&access).Error
	return &access, err
}

// UpsertPreTestScore persists a pre-test result on the learner's course
// access row, creating the enrollment if needed.
func (r *ProgressRepository) UpsertPreTestScore(userID uint, courseID string, score int) error {
	now := time.Now()
	access := model.CourseAccess{
		UserID:       userID,
		CourseID:     courseID,
		IsEnrolled:   true,
		EnrolledAt:   &now,
		PreTestScore: &score,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"pre_test_score", "updated_at"}),
	}).Create(&access).Error
}

// Enroll records enrollment without touching any pre-test score.
func (r *ProgressRepository) Enroll(userID uint, courseID string) error {
	now := time.Now()
	access := model.CourseAccess{
		UserID:     userID,
		CourseID:   courseID,
		IsEnrolled: true,
		EnrolledAt: &now,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_enrolled", "updated_at"}),
	}).Create(&access).Error
}

// ListAccess returns the learner's enrollments.
func (r *ProgressRepository) ListAccess(userID uint) ([]model.CourseAccess, error) {
	var access []model.CourseAccess
	err := r.DB.Where("user_id = ? AND is_enrolled = ?", userID, true).
		Find(&access).Error
	return access, err
}

// ListAccessForUsers returns access rows with pre-test scores for the admin
// user overview.
func (r *ProgressRepository) ListAccessForUsers(userIDs []uint) ([]model.CourseAccess, error) {
	var access []model.CourseAccess
	if len(userIDs) == 0 {
		return access, nil
	}
	err := r.DB.Where("user_id IN ?", userIDs).Find(&access).Error
	return access, err
}
