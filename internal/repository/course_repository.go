package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Delete(&model.Course{}, "id = ?", id).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ?", slug).First(&course).Error
	return &course, err
}

// FindByIDFull loads the course with its ordered modules, lessons, and quiz
// questions in one query tree, the shape the classroom renders from.
func (r *CourseRepository) FindByIDFull(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.order_index asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order_index asc")
		}).
		Preload("Modules.Lessons.Quiz", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.order_index asc")
		}).
		Preload("PreTestQuiz", func(db *gorm.DB) *gorm.DB {
			return db.Where("lesson_id IS NULL").Order("quiz_questions.order_index asc")
		}).
		First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) List() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("created_at desc").Find(&courses).Error
	return courses, err
}

// LessonIDs returns every lesson id reachable through the course's modules.
func (r *CourseRepository) LessonIDs(courseID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ?", courseID).
		Pluck("lessons.id", &ids).Error
	return ids, err
}

// Module operations.

func (r *CourseRepository) CreateModule(m *model.CourseModule) error {
	return r.DB.Create(m).Error
}

func (r *CourseRepository) UpdateModule(m *model.CourseModule) error {
	return r.DB.Save(m).Error
}

func (r *CourseRepository) DeleteModule(id string) error {
	return r.DB.Delete(&model.CourseModule{}, "id = ?", id).Error
}

func (r *CourseRepository) FindModuleByID(id string) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.First(&m, "id = ?", id).Error
	return &m, err
}

// Lesson operations.

func (r *CourseRepository) CreateLesson(l *model.Lesson) error {
	return r.DB.Create(l).Error
}

func (r *CourseRepository) UpdateLesson(l *model.Lesson) error {
	return r.DB.Save(l).Error
}

func (r *CourseRepository) DeleteLesson(id string) error {
	return r.DB.Delete(&model.Lesson{}, "id = ?", id).Error
}

func (r *CourseRepository) FindLessonByID(id string) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.Preload("Quiz", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.order_index asc")
	}).First(&l, "id = ?", id).Error
	return &l, err
}
