package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(q *model.QuizQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) Update(q *model.QuizQuestion) error {
	return r.DB.Save(q).Error
}

func (r *QuizRepository) Delete(id string) error {
	return r.DB.Delete(&model.QuizQuestion{}, "id = ?", id).Error
}

func (r *QuizRepository) FindByID(id string) (*model.QuizQuestion, error) {
	var q model.QuizQuestion
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

// ListForLesson returns the lesson quiz in presentation order.
func (r *QuizRepository) ListForLesson(lessonID string) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.Where("lesson_id = ?", lessonID).
		Order("order_index asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

// ListPreTest returns the course pre-test: questions attached to the course
// with no lesson.
func (r *QuizRepository) ListPreTest(courseID string) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.Where("course_id = ? AND lesson_id IS NULL", courseID).
		Order("order_index asc, created_at asc").
		Find(&qs).Error
	return qs, err
}
