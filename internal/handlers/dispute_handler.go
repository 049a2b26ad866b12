package handlers

import (
	"net/http"

	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/middleware"
	"refhub_backend/internal/services"
	"refhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DisputeHandler struct {
	*BaseHandler
	disputeService services.DisputeService
}

func NewDisputeHandler(base *BaseHandler, disputeService services.DisputeService) *DisputeHandler {
	return &DisputeHandler{
		BaseHandler:    base,
		disputeService: disputeService,
	}
}

// RegisterRoutes регистрирует маршруты споров
func (h *DisputeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/referrals/:id/dispute", h.Open)

	disputes := rg.Group("/disputes")
	{
		disputes.GET("/:id", h.Get)
	}
}

// RegisterAdminRoutes регистрирует админские маршруты споров
func (h *DisputeHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	disputes := rg.Group("/disputes")
	{
		disputes.GET("", h.ListOpen)
		disputes.POST("/:id/resolve", h.Resolve)
	}
}

func (h *DisputeHandler) Open(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.OpenDisputeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	dispute, err := h.disputeService.Open(h.DB(), actor, c.Param("id"), &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dispute)
}

func (h *DisputeHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	dispute, err := h.disputeService.Get(h.DB(), actor, c.Param("id"))
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}

func (h *DisputeHandler) ListOpen(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}
	limit, offset := h.Pagination(c)

	disputes, err := h.disputeService.ListOpen(h.DB(), actor, limit, offset)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"disputes": disputes})
}

func (h *DisputeHandler) Resolve(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ResolveDisputeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	dispute, err := h.disputeService.Resolve(h.DB(), actor, c.Param("id"), &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}
