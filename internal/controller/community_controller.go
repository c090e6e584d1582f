package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
	StorageService   *service.StorageService
}

func NewCommunityController(communityService *service.CommunityService, storageService *service.StorageService) *CommunityController {
	return &CommunityController{
		CommunityService: communityService,
		StorageService:   storageService,
	}
}

// Feed godoc
// @Summary Community feed
// @Description Posts for the requested locale, newest first
// @Tags community
// @Produce  json
// @Param   locale query string false "locale tag"
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.PageResponse{data=[]service.PostView}
// @Router /api/community/posts [get]
func (c *CommunityController) Feed(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	posts, total, err := c.CommunityService.Feed(ctx.Request.Context(), requesterID(ctx), requestLocale(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Page(ctx, posts, total, page, limit)
}

// GetPost godoc
// @Summary Read a post
// @Description Returns the post with comments and counts the view
// @Tags community
// @Produce  json
// @Param   id path string true "post id"
// @Success 200 {object} util.Response{data=service.PostView}
// @Failure 404 {object} util.Response
// @Router /api/community/posts/{id} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	post, err := c.CommunityService.GetPost(ctx.Request.Context(), requesterID(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// CreatePost godoc
// @Summary Publish a post
// @Tags community
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreatePostRequest true "post content"
// @Success 201 {object} util.Response{data=model.CommunityPost}
// @Router /api/community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.CreatePost(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// UploadPostImage godoc
// @Summary Upload a post image
// @Tags community
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "image file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "not an image"
// @Router /api/community/uploads [post]
func (c *CommunityController) UploadPostImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	url, err := c.StorageService.UploadImage(ctx.Request.Context(), file, "community")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// DeletePost godoc
// @Summary Delete a post
// @Description Author or admin only
// @Tags community
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "post id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/community/posts/{id} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.CommunityService.DeletePost(claims.UserID, claims.Role.IsPrivileged(), ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// AddComment godoc
// @Summary Comment on a post
// @Tags community
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "post id"
// @Param   body body service.CreateCommentRequest true "comment content"
// @Success 201 {object} util.Response{data=model.CommunityComment}
// @Router /api/community/posts/{id}/comments [post]
func (c *CommunityController) AddComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommunityService.AddComment(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags community
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "comment id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/community/comments/{id} [delete]
func (c *CommunityController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.CommunityService.DeleteComment(claims.UserID, claims.Role.IsPrivileged(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Tags community
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "post id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/community/posts/{id}/like [post]
func (c *CommunityController) ToggleLike(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	liked, likes, err := c.CommunityService.ToggleLike(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"liked": liked, "likes": likes})
}
