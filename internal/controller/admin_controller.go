package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController is the course editor and user console. Every route behind
// it requires the admin role.
type AdminController struct {
	CourseService  *service.CourseService
	ArticleService *service.ArticleService
	AdminService   *service.AdminService
	StorageService *service.StorageService
}

func NewAdminController(courseService *service.CourseService, articleService *service.ArticleService, adminService *service.AdminService, storageService *service.StorageService) *AdminController {
	return &AdminController{
		CourseService:  courseService,
		ArticleService: articleService,
		AdminService:   adminService,
		StorageService: storageService,
	}
}

// Users godoc
// @Summary User overview
// @Description Accounts with their enrollments and pre-test scores
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.PageResponse{data=[]service.UserOverview}
// @Router /api/admin/users [get]
func (c *AdminController) Users(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.AdminService.Users(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Page(ctx, users, total, page, limit)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseInput true "course fields"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var in service.CourseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(in)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "course id"
// @Param   body body service.CourseInput true "course fields"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id} [put]
func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	var in service.CourseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Param("id"), in)
	if err != nil {
		c.editError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	if err := c.CourseService.DeleteCourse(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// CreateModule godoc
// @Summary Create a module
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ModuleInput true "module fields"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Router /api/admin/modules [post]
func (c *AdminController) CreateModule(ctx *gin.Context) {
	var in service.ModuleInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.CourseService.CreateModule(in)
	if err != nil {
		c.editError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "module id"
// @Param   body body service.ModuleInput true "module fields"
// @Success 200 {object} util.Response{data=model.CourseModule}
// @Router /api/admin/modules/{id} [put]
func (c *AdminController) UpdateModule(ctx *gin.Context) {
	var in service.ModuleInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.CourseService.UpdateModule(ctx.Param("id"), in)
	if err != nil {
		c.editError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary Delete a module
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "module id"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [delete]
func (c *AdminController) DeleteModule(ctx *gin.Context) {
	if err := c.CourseService.DeleteModule(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.LessonInput true "lesson fields"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/admin/lessons [post]
func (c *AdminController) CreateLesson(ctx *gin.Context) {
	var in service.LessonInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.CreateLesson(in)
	if err != nil {
		c.editError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "lesson id"
// @Param   body body service.LessonInput true "lesson fields"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/admin/lessons/{id} [put]
func (c *AdminController) UpdateLesson(ctx *gin.Context) {
	var in service.LessonInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.UpdateLesson(ctx.Param("id"), in)
	if err != nil {
		c.editError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/admin/lessons/{id} [delete]
func (c *AdminController) DeleteLesson(ctx *gin.Context) {
	if err := c.CourseService.DeleteLesson(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// CreateQuestion godoc
// @Summary Create a quiz question
// @Description Targets a lesson quiz or, with only courseId set, the course pre-test
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuestionInput true "question fields"
// @Success 201 {object} util.Response{data=model.QuizQuestion}
// @Failure 400 {object} util.Response "invalid target or answer index"
// @Router /api/admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var in service.QuestionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CourseService.CreateQuestion(in)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a quiz question
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "question id"
// @Param   body body service.QuestionInput true "question fields"
// @Success 200 {object} util.Response{data=model.QuizQuestion}
// @Router /api/admin/questions/{id} [put]
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	var in service.QuestionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CourseService.UpdateQuestion(ctx.Param("id"), in)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a quiz question
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	if err := c.CourseService.DeleteQuestion(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ListArticles godoc
// @Summary All articles including drafts
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Article}
// @Router /api/admin/articles [get]
func (c *AdminController) ListArticles(ctx *gin.Context) {
	articles, err := c.ArticleService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, articles)
}

// CreateArticle godoc
// @Summary Create an article
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ArticleInput true "article fields"
// @Success 201 {object} util.Response{data=model.Article}
// @Router /api/admin/articles [post]
func (c *AdminController) CreateArticle(ctx *gin.Context) {
	var in service.ArticleInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	article, err := c.ArticleService.Create(in)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, article)
}

// UpdateArticle godoc
// @Summary Update an article
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "article id"
// @Param   body body service.ArticleInput true "article fields"
// @Success 200 {object} util.Response{data=model.Article}
// @Router /api/admin/articles/{id} [put]
func (c *AdminController) UpdateArticle(ctx *gin.Context) {
	var in service.ArticleInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	article, err := c.ArticleService.Update(ctx.Param("id"), in)
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

// DeleteArticle godoc
// @Summary Delete an article
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "article id"
// @Success 200 {object} util.Response
// @Router /api/admin/articles/{id} [delete]
func (c *AdminController) DeleteArticle(ctx *gin.Context) {
	if err := c.ArticleService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// UploadImage godoc
// @Summary Upload a course or article image
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "image file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "not an image"
// @Router /api/admin/uploads/images [post]
func (c *AdminController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	url, err := c.StorageService.UploadImage(ctx.Request.Context(), file, "courses")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// UploadVideo godoc
// @Summary Upload a lesson video
// @Description Stores the video and returns probed duration metadata
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "video file"
// @Success 200 {object} util.Response{data=service.VideoUpload}
// @Failure 400 {object} util.Response "not a video"
// @Router /api/admin/uploads/videos [post]
func (c *AdminController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	upload, err := c.StorageService.UploadVideo(ctx.Request.Context(), file, "lessons")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, upload)
}

func (c *AdminController) editError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
