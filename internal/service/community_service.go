package service

import (
	"context"
	"errors"

	"learnhub_backend/internal/i18n"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// CommunityService runs the shared feed. Posts are tagged with a language
// and the feed only shows posts matching the requesting locale, so the
// Hebrew and English communities stay separate.
type CommunityService struct {
	CommunityRepo *repository.CommunityRepository
}

func NewCommunityService(communityRepo *repository.CommunityRepository) *CommunityService {
	return &CommunityService{CommunityRepo: communityRepo}
}

type CreatePostRequest struct {
	Content  string `json:"content" binding:"required"`
	Language string `json:"language"`
	ImageURL string `json:"imageUrl"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostView decorates a post with counters the feed shows.
type PostView struct {
	model.CommunityPost
	Likes    int64 `json:"likes"`
	Liked    bool  `json:"liked"`
	Views    int64 `json:"views"`
	Comments int   `json:"commentCount"`
}

// Feed returns the locale's posts, newest first, with like and view
// counters. userID 0 means an anonymous reader.
func (s *CommunityService) Feed(ctx context.Context, userID uint, locale string, page, limit int) ([]PostView, int64, error) {
	posts, total, err := s.CommunityRepo.ListPosts(page, limit)
	if err != nil {
		return nil, 0, err
	}
	visible := i18n.FilterVisible(posts, locale)
	views := make([]PostView, 0, len(visible))
	for _, p := range visible {
		pv := PostView{
			CommunityPost: p,
			Views:         s.CommunityRepo.Views(ctx, p.ID),
			Comments:      len(p.Comments),
		}
		pv.Likes, _ = s.CommunityRepo.CountLikes(p.ID)
		if userID != 0 {
			pv.Liked, _ = s.CommunityRepo.HasLiked(userID, p.ID)
		}
		views = append(views, pv)
	}
	return views, total, nil
}

// GetPost returns one post and counts the view.
func (s *CommunityService) GetPost(ctx context.Context, userID uint, postID string) (*PostView, error) {
	post, err := s.CommunityRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	pv := &PostView{
		CommunityPost: *post,
		Views:         s.CommunityRepo.IncrementViews(ctx, postID),
		Comments:      len(post.Comments),
	}
	pv.Likes, _ = s.CommunityRepo.CountLikes(postID)
	if userID != 0 {
		pv.Liked, _ = s.CommunityRepo.HasLiked(userID, postID)
	}
	return pv, nil
}

func (s *CommunityService) CreatePost(userID uint, req CreatePostRequest) (*model.CommunityPost, error) {
	lang := req.Language
	if lang == "" {
		lang = i18n.DefaultLocale()
	}
	post := &model.CommunityPost{
		AuthorID: userID,
		Content:  req.Content,
		Language: lang,
		ImageURL: req.ImageURL,
	}
	if err := s.CommunityRepo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post; only the author or an admin may.
func (s *CommunityService) DeletePost(userID uint, privileged bool, postID string) error {
	post, err := s.CommunityRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != userID && !privileged {
		return util.ErrPermissionDenied
	}
	return s.CommunityRepo.DeletePost(postID)
}

func (s *CommunityService) AddComment(userID uint, postID string, req CreateCommentRequest) (*model.CommunityComment, error) {
	if _, err := s.CommunityRepo.FindPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	comment := &model.CommunityComment{
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := s.CommunityRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommunityService) DeleteComment(userID uint, privileged bool, commentID string) error {
	comment, err := s.CommunityRepo.FindCommentByID(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && !privileged {
		return util.ErrPermissionDenied
	}
	return s.CommunityRepo.DeleteComment(commentID)
}

// ToggleLike flips the learner's like on a post and reports the new state
// and count. Double-liking is absorbed by the unique (user, post) index.
func (s *CommunityService) ToggleLike(userID uint, postID string) (liked bool, likes int64, err error) {
	has, err := s.CommunityRepo.HasLiked(userID, postID)
	if err != nil {
		return false, 0, err
	}
	if has {
		err = s.CommunityRepo.Unlike(userID, postID)
	} else {
		err = s.CommunityRepo.Like(userID, postID)
	}
	if err != nil {
		return false, 0, err
	}
	likes, err = s.CommunityRepo.CountLikes(postID)
	return !has, likes, err
}
