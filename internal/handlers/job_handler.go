package handlers

import (
	"net/http"

	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/middleware"
	"refhub_backend/internal/models"
	"refhub_backend/internal/services"
	"refhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

// RegisterRoutes регистрирует маршруты вакансий
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.POST("", middleware.RequireRoles(models.UserRoleEmployee, models.UserRoleAdmin), h.Create)
		jobs.GET("", h.List)
		jobs.GET("/:id", h.Get)
		jobs.DELETE("/:id", h.Deactivate)
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(h.DB(), actor, &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) List(c *gin.Context) {
	limit, offset := h.Pagination(c)

	jobs, err := h.jobService.ListActive(h.DB(), limit, offset)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobService.Get(h.DB(), c.Param("id"))
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Deactivate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.jobService.Deactivate(h.DB(), actor, c.Param("id")); err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deactivated"})
}
