package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QAController struct {
	QAService *service.LessonQAService
}

func NewQAController(qaService *service.LessonQAService) *QAController {
	return &QAController{QAService: qaService}
}

// List godoc
// @Summary Lesson questions
// @Description Questions and answers for a lesson; 403 when the course disables Q&A
// @Tags lesson-qa
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path string true "lesson id"
// @Success 200 {object} util.Response{data=[]model.LessonQuestion}
// @Failure 403 {object} util.Response "Q&A disabled"
// @Router /api/lessons/{lessonId}/questions [get]
func (c *QAController) List(ctx *gin.Context) {
	questions, err := c.QAService.ListForLesson(ctx.Param("lessonId"))
	if err != nil {
		c.qaError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Ask godoc
// @Summary Ask a question
// @Tags lesson-qa
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path string true "lesson id"
// @Param   body body service.AskRequest true "question content"
// @Success 201 {object} util.Response{data=model.LessonQuestion}
// @Failure 403 {object} util.Response "Q&A disabled"
// @Router /api/lessons/{lessonId}/questions [post]
func (c *QAController) Ask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QAService.Ask(claims.UserID, ctx.Param("lessonId"), req)
	if err != nil {
		c.qaError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// Answer godoc
// @Summary Answer a question
// @Description Posts a reply; the asker or an admin can mark the question solved
// @Tags lesson-qa
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   questionId path string true "question id"
// @Param   body body service.AnswerRequest true "answer content"
// @Success 201 {object} util.Response{data=model.LessonAnswer}
// @Router /api/questions/{questionId}/answers [post]
func (c *QAController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.QAService.Answer(claims.UserID, claims.Role.IsPrivileged(), ctx.Param("questionId"), req)
	if err != nil {
		c.qaError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

func (c *QAController) qaError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQANotEnabled):
		util.Error(ctx, 403, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
