package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// Catalog godoc
// @Summary Course catalog
// @Description Lists courses visible to the requested locale
// @Tags courses
// @Produce  json
// @Param   locale query string false "locale tag, e.g. he or en"
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/courses [get]
func (c *CourseController) Catalog(ctx *gin.Context) {
	courses, err := c.CourseService.Catalog(requestLocale(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Detail godoc
// @Summary Course detail
// @Description Returns a course outline by id or slug, answer keys omitted
// @Tags courses
// @Produce  json
// @Param   id path string true "course id or slug"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Detail(ctx *gin.Context) {
	course, err := c.CourseService.Detail(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.Enroll(claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"enrolled": true})
}
