package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// SelectRequest carries the chosen option for the current question.
type SelectRequest struct {
	OptionIndex *int `json:"optionIndex" binding:"required"`
}

// StartLessonQuiz godoc
// @Summary Start a lesson quiz
// @Description Opens a fresh attempt and returns the localized questions without answer keys
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path string true "lesson id"
// @Param   locale query string false "locale tag"
// @Success 200 {object} util.Response{data=service.QuizSession}
// @Failure 404 {object} util.Response "lesson missing or has no quiz"
// @Router /api/quiz/lessons/{lessonId}/start [post]
func (c *QuizController) StartLessonQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.QuizService.StartLessonQuiz(claims.UserID, ctx.Param("lessonId"), requestLocale(ctx))
	if err != nil {
		c.startError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// StartPreTest godoc
// @Summary Start a course pre-test
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   courseId path string true "course id"
// @Param   locale query string false "locale tag"
// @Success 200 {object} util.Response{data=service.QuizSession}
// @Failure 404 {object} util.Response "course missing or has no pre-test"
// @Router /api/quiz/courses/{courseId}/pretest/start [post]
func (c *QuizController) StartPreTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.QuizService.StartPreTest(claims.UserID, ctx.Param("courseId"), requestLocale(ctx))
	if err != nil {
		c.startError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Select godoc
// @Summary Answer the current question
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   quizKey path string true "quiz key from start"
// @Param   body body SelectRequest true "selected option"
// @Success 200 {object} util.Response{data=service.AttemptState}
// @Failure 400 {object} util.Response "option index out of range"
// @Failure 404 {object} util.Response "no active attempt"
// @Router /api/quiz/attempts/{quizKey}/select [post]
func (c *QuizController) Select(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.QuizService.SelectAnswer(claims.UserID, ctx.Param("quizKey"), *req.OptionIndex)
	if err != nil {
		c.attemptError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Previous godoc
// @Summary Step back one question
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   quizKey path string true "quiz key"
// @Success 200 {object} util.Response{data=service.AttemptState}
// @Router /api/quiz/attempts/{quizKey}/previous [post]
func (c *QuizController) Previous(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.QuizService.Previous(claims.UserID, ctx.Param("quizKey"))
	if err != nil {
		c.attemptError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Advance godoc
// @Summary Advance to the next question
// @Description No-op while the current question is unanswered; at the last question returns the result
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   quizKey path string true "quiz key"
// @Success 200 {object} util.Response{data=service.AttemptState}
// @Router /api/quiz/attempts/{quizKey}/advance [post]
func (c *QuizController) Advance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.QuizService.Advance(claims.UserID, ctx.Param("quizKey"))
	if err != nil {
		c.attemptError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Retry godoc
// @Summary Retry a finished quiz
// @Description Clears all answers and restarts with the same questions in the same order
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   quizKey path string true "quiz key"
// @Success 200 {object} util.Response{data=service.AttemptState}
// @Failure 409 {object} util.Response "attempt not finished"
// @Router /api/quiz/attempts/{quizKey}/retry [post]
func (c *QuizController) Retry(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.QuizService.Retry(claims.UserID, ctx.Param("quizKey"))
	if err != nil {
		c.attemptError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Discard godoc
// @Summary Abandon an attempt
// @Description Drops the attempt; nothing is persisted
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   quizKey path string true "quiz key"
// @Success 200 {object} util.Response
// @Router /api/quiz/attempts/{quizKey} [delete]
func (c *QuizController) Discard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.QuizService.Discard(claims.UserID, ctx.Param("quizKey"))
	util.Success(ctx, gin.H{"discarded": true})
}

func (c *QuizController) startError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrQuizUnavailable):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func (c *QuizController) attemptError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidOption):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNoActiveAttempt):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAttemptUnfinished):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
