package model

import (
	"encoding/json"
	"time"
)

// Article is landing-page editorial content. Titles, excerpts and categories
// are stored per locale with no unsuffixed variant, so reads go through the
// i18n resolver.
type Article struct {
	UUIDBase
	TitleHe     string          `gorm:"size:255" json:"title_he"`
	TitleEn     string          `gorm:"size:255" json:"title_en"`
	ExcerptHe   string          `gorm:"type:text" json:"excerpt_he"`
	ExcerptEn   string          `gorm:"type:text" json:"excerpt_en"`
	ContentHe   string          `gorm:"type:longtext" json:"content_he"`
	ContentEn   string          `gorm:"type:longtext" json:"content_en"`
	CategoryHe  string          `gorm:"size:100" json:"category_he"`
	CategoryEn  string          `gorm:"size:100" json:"category_en"`
	ImageURL    string          `gorm:"size:512" json:"imageUrl"`
	Visibility  json.RawMessage `gorm:"type:json" json:"visibility"` // JSON: []string of locale tags
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}

func (Article) AudienceLanguage() string { return "" }

func (a Article) AudienceVisibility() []string {
	return decodeVisibility(a.Visibility)
}

// LocalizedFields exposes the per-locale columns to the i18n resolver.
func (a Article) LocalizedFields() map[string]interface{} {
	return map[string]interface{}{
		"title_he":    a.TitleHe,
		"title_en":    a.TitleEn,
		"excerpt_he":  a.ExcerptHe,
		"excerpt_en":  a.ExcerptEn,
		"content_he":  a.ContentHe,
		"content_en":  a.ContentEn,
		"category_he": a.CategoryHe,
		"category_en": a.CategoryEn,
	}
}

func decodeVisibility(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	return tags
}
