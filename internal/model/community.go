package model

import "time"

type CommunityPost struct {
	UUIDBase
	AuthorID uint               `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author   User               `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string             `gorm:"type:text;not null" json:"content"`
	Language string             `gorm:"size:10;default:'he'" json:"language"`
	ImageURL string             `gorm:"size:512" json:"imageUrl"`
	Comments []CommunityComment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (CommunityPost) TableName() string {
	return "community_posts"
}

func (p CommunityPost) AudienceLanguage() string   { return p.Language }
func (CommunityPost) AudienceVisibility() []string { return nil }

type CommunityComment struct {
	UUIDBase
	PostID   string `gorm:"index;type:varchar(36)" json:"postId"`
	AuthorID uint   `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (CommunityComment) TableName() string {
	return "community_comments"
}

// CommunityLike is unique per (user, post); the composite index backs the
// toggle-like upsert.
type CommunityLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_post;type:bigint unsigned" json:"userId"`
	PostID    string    `gorm:"uniqueIndex:idx_user_post;type:varchar(36)" json:"postId"`
}

func (CommunityLike) TableName() string {
	return "community_likes"
}
