package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ArticleController struct {
	ArticleService *service.ArticleService
}

func NewArticleController(articleService *service.ArticleService) *ArticleController {
	return &ArticleController{ArticleService: articleService}
}

// List godoc
// @Summary Published articles
// @Description Articles visible to the locale, localized, newest first
// @Tags articles
// @Produce  json
// @Param   locale query string false "locale tag"
// @Success 200 {object} util.Response{data=[]service.ArticleView}
// @Router /api/articles [get]
func (c *ArticleController) List(ctx *gin.Context) {
	articles, err := c.ArticleService.ListPublished(requestLocale(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, articles)
}

// Get godoc
// @Summary Read an article
// @Tags articles
// @Produce  json
// @Param   id path string true "article id"
// @Param   locale query string false "locale tag"
// @Success 200 {object} util.Response{data=service.ArticleView}
// @Failure 404 {object} util.Response
// @Router /api/articles/{id} [get]
func (c *ArticleController) Get(ctx *gin.Context) {
	article, err := c.ArticleService.Get(ctx.Param("id"), requestLocale(ctx))
	if err != nil {
		if errors.Is(err, util.ErrArticleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, article)
}
