package service

import (
	"encoding/json"
	"errors"
	"time"

	"learnhub_backend/internal/i18n"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// ArticleService serves the public blog. Articles carry per-locale title,
// excerpt, content and category variants resolved through the field
// resolver; an article whose visibility list excludes the locale is hidden
// entirely.
type ArticleService struct {
	ArticleRepo *repository.ArticleRepository
}

func NewArticleService(articleRepo *repository.ArticleRepository) *ArticleService {
	return &ArticleService{ArticleRepo: articleRepo}
}

// ArticleView is an article rendered for one locale.
type ArticleView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content,omitempty"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// ListPublished returns the published articles visible to the locale,
// newest first, without body content.
func (s *ArticleService) ListPublished(locale string) ([]ArticleView, error) {
	articles, err := s.ArticleRepo.ListPublished()
	if err != nil {
		return nil, err
	}
	visible := i18n.FilterVisible(articles, locale)
	out := make([]ArticleView, 0, len(visible))
	for _, a := range visible {
		v := articleView(a, locale)
		v.Content = ""
		out = append(out, v)
	}
	return out, nil
}

// Get returns one article with its full localized body.
func (s *ArticleService) Get(id, locale string) (*ArticleView, error) {
	a, err := s.ArticleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrArticleNotFound
		}
		return nil, err
	}
	if !i18n.Visible(*a, locale) {
		return nil, util.ErrArticleNotFound
	}
	v := articleView(*a, locale)
	return &v, nil
}

// Admin editor.

type ArticleInput struct {
	TitleHe    string   `json:"title_he"`
	TitleEn    string   `json:"title_en"`
	ExcerptHe  string   `json:"excerpt_he"`
	ExcerptEn  string   `json:"excerpt_en"`
	ContentHe  string   `json:"content_he"`
	ContentEn  string   `json:"content_en"`
	CategoryHe string   `json:"category_he"`
	CategoryEn string   `json:"category_en"`
	Visibility []string `json:"visibility"`
	ImageURL   string   `json:"imageUrl"`
	Published  bool     `json:"published"`
}

func (s *ArticleService) Create(in ArticleInput) (*model.Article, error) {
	a := &model.Article{}
	applyArticleInput(a, in)
	if err := s.ArticleRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ArticleService) Update(id string, in ArticleInput) (*model.Article, error) {
	a, err := s.ArticleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrArticleNotFound
		}
		return nil, err
	}
	applyArticleInput(a, in)
	if err := s.ArticleRepo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ArticleService) Delete(id string) error {
	return s.ArticleRepo.Delete(id)
}

// ListAll is the admin view including drafts.
func (s *ArticleService) ListAll() ([]model.Article, error) {
	return s.ArticleRepo.ListAll()
}

func articleView(a model.Article, locale string) ArticleView {
	fields := a.LocalizedFields()
	return ArticleView{
		ID:          a.ID,
		Title:       i18n.Resolve(fields, "title", locale),
		Excerpt:     i18n.Resolve(fields, "excerpt", locale),
		Content:     i18n.Resolve(fields, "content", locale),
		Category:    i18n.Resolve(fields, "category", locale),
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
	}
}

func applyArticleInput(a *model.Article, in ArticleInput) {
	a.TitleHe = in.TitleHe
	a.TitleEn = in.TitleEn
	a.ExcerptHe = in.ExcerptHe
	a.ExcerptEn = in.ExcerptEn
	a.ContentHe = in.ContentHe
	a.ContentEn = in.ContentEn
	a.CategoryHe = in.CategoryHe
	a.CategoryEn = in.CategoryEn
	if in.Visibility != nil {
		raw, _ := json.Marshal(in.Visibility)
		a.Visibility = raw
	}
	a.ImageURL = in.ImageURL
	if in.Published && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	} else if !in.Published {
		a.PublishedAt = nil
	}
}
