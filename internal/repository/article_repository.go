package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	DB *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{DB: db}
}

func (r *ArticleRepository) Create(a *model.Article) error {
	return r.DB.Create(a).Error
}

func (r *ArticleRepository) Update(a *model.Article) error {
	return r.DB.Save(a).Error
}

func (r *ArticleRepository) Delete(id string) error {
	return r.DB.Delete(&model.Article{}, "id = ?", id).Error
}

func (r *ArticleRepository) FindByID(id string) (*model.Article, error) {
	var a model.Article
	err := r.DB.First(&a, "id = ?", id).Error
	return &a, err
}

// ListPublished returns published articles, newest first.
func (r *ArticleRepository) ListPublished() ([]model.Article, error) {
	var articles []model.Article
	err := r.DB.Where("published_at IS NOT NULL").
		Order("published_at desc").
		Find(&articles).Error
	return articles, err
}

func (r *ArticleRepository) ListAll() ([]model.Article, error) {
	var articles []model.Article
	err := r.DB.Order("created_at desc").Find(&articles).Error
	return articles, err
}
