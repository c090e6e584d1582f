package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassroomController struct {
	ProgressService *service.ProgressService
}

func NewClassroomController(progressService *service.ProgressService) *ClassroomController {
	return &ClassroomController{ProgressService: progressService}
}

// State godoc
// @Summary Classroom state
// @Description Per-lesson lock, completion and finish eligibility for one course
// @Tags classroom
// @Produce  json
// @Security BearerAuth
// @Param   courseId path string true "course id"
// @Success 200 {object} util.Response{data=service.ClassroomState}
// @Failure 404 {object} util.Response
// @Router /api/classroom/{courseId} [get]
func (c *ClassroomController) State(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.ProgressService.Classroom(claims.UserID, ctx.Param("courseId"), claims.Role.IsPrivileged())
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, state)
}

// FinishLesson godoc
// @Summary Finish a lesson
// @Description Marks the lesson complete once its quiz requirement is met; idempotent
// @Tags classroom
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path string true "lesson id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "quiz not passed"
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId}/finish [post]
func (c *ClassroomController) FinishLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.ProgressService.FinishLesson(claims.UserID, ctx.Param("lessonId"), claims.Role.IsPrivileged())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizNotPassed):
			util.Error(ctx, 403, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"completed": true})
}

// Progress godoc
// @Summary Course progress
// @Tags classroom
// @Produce  json
// @Security BearerAuth
// @Param   courseId path string true "course id"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Router /api/classroom/{courseId}/progress [get]
func (c *ClassroomController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.ProgressForCourse(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Dashboard godoc
// @Summary Learner dashboard
// @Description Per-course progress across enrollments plus overall counters
// @Tags classroom
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
func (c *ClassroomController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dash, err := c.ProgressService.Overview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}
