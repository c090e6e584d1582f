package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type LessonQARepository struct {
	DB *gorm.DB
}

func NewLessonQARepository(db *gorm.DB) *LessonQARepository {
	return &LessonQARepository{DB: db}
}

func (r *LessonQARepository) CreateQuestion(q *model.LessonQuestion) error {
	return r.DB.Create(q).Error
}

func (r *LessonQARepository) FindQuestionByID(id string) (*model.LessonQuestion, error) {
	var q model.LessonQuestion
	err := r.DB.Preload("Author").First(&q, "id = ?", id).Error
	return &q, err
}

func (r *LessonQARepository) ListForLesson(lessonID string) ([]model.LessonQuestion, error) {
	var qs []model.LessonQuestion
	err := r.DB.Preload("Author").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_answers.created_at asc")
		}).
		Preload("Answers.Author").
		Where("lesson_id = ?", lessonID).
		Order("created_at desc").
		Find(&qs).Error
	return qs, err
}

func (r *LessonQARepository) CreateAnswer(a *model.LessonAnswer) error {
	return r.DB.Create(a).Error
}

func (r *LessonQARepository) MarkSolved(questionID string) error {
	now := time.Now()
	return r.DB.Model(&model.LessonQuestion{}).
		Where("id = ?", questionID).
		Updates(map[string]interface{}{"is_solved": true, "solved_at": &now}).
		Error
}
