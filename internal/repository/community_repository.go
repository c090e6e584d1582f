package repository

import (
	"context"
	"fmt"

	"learnhub_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewCommunityRepository(db *gorm.DB, rdb *redis.Client) *CommunityRepository {
	return &CommunityRepository{DB: db, Redis: rdb}
}

func (r *CommunityRepository) CreatePost(post *model.CommunityPost) error {
	return r.DB.Create(post).Error
}

func (r *CommunityRepository) DeletePost(id string) error {
	return r.DB.Delete(&model.CommunityPost{}, "id = ?", id).Error
}

func (r *CommunityRepository) FindPostByID(id string) (*model.CommunityPost, error) {
	var post model.CommunityPost
	err := r.DB.Preload("Author").First(&post, "id = ?", id).Error
	return &post, err
}

func (r *CommunityRepository) ListPosts(page, limit int) ([]model.CommunityPost, int64, error) {
	var posts []model.CommunityPost
	var total int64
	query := r.DB.Model(&model.CommunityPost{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := r.DB.Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("community_comments.created_at asc")
		}).
		Preload("Comments.Author").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *CommunityRepository) CreateComment(comment *model.CommunityComment) error {
	return r.DB.Create(comment).Error
}

func (r *CommunityRepository) DeleteComment(id string) error {
	return r.DB.Delete(&model.CommunityComment{}, "id = ?", id).Error
}

func (r *CommunityRepository) FindCommentByID(id string) (*model.CommunityComment, error) {
	var comment model.CommunityComment
	err := r.DB.First(&comment, "id = ?", id).Error
	return &comment, err
}

// Like toggles on via upsert against the (user_id, post_id) unique index;
// a duplicate like is a no-op.
func (r *CommunityRepository) Like(userID uint, postID string) error {
	like := model.CommunityLike{UserID: userID, PostID: postID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (r *CommunityRepository) Unlike(userID uint, postID string) error {
	return r.DB.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.CommunityLike{}).Error
}

func (r *CommunityRepository) CountLikes(postID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CommunityLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *CommunityRepository) HasLiked(userID uint, postID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// IncrementViews bumps the post view counter in Redis; the counter is a
// best-effort signal, not a durable record.
func (r *CommunityRepository) IncrementViews(ctx context.Context, postID string) int64 {
	if r.Redis == nil {
		return 0
	}
	views, err := r.Redis.Incr(ctx, viewKey(postID)).Result()
	if err != nil {
		return 0
	}
	return views
}

func (r *CommunityRepository) Views(ctx context.Context, postID string) int64 {
	if r.Redis == nil {
		return 0
	}
	views, err := r.Redis.Get(ctx, viewKey(postID)).Int64()
	if err != nil {
		return 0
	}
	return views
}

func viewKey(postID string) string {
	return fmt.Sprintf("community:post:%s:views", postID)
}
