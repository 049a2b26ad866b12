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

type ReferralHandler struct {
	*BaseHandler
	referralService services.ReferralService
}

func NewReferralHandler(base *BaseHandler, referralService services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		BaseHandler:     base,
		referralService: referralService,
	}
}

// RegisterRoutes регистрирует маршруты реферальных запросов.
// Каждое действие над жизненным циклом - отдельный endpoint,
// целевой статус зашит на стороне сервера.
func (h *ReferralHandler) RegisterRoutes(rg *gin.RouterGroup) {
	refs := rg.Group("/referrals")
	{
		refs.POST("", h.Create)
		refs.GET("", h.ListMine)
		refs.GET("/:id", h.Get)
		refs.GET("/:id/history", h.History)

		refs.POST("/:id/accept", h.transitionTo(models.ReferralStatusInProgress))
		refs.POST("/:id/decline", h.transitionTo(models.ReferralStatusRejected))
		refs.POST("/:id/submit", h.transitionTo(models.ReferralStatusSubmittedToATS))
		refs.POST("/:id/interview", h.transitionTo(models.ReferralStatusInterviewing))
		refs.POST("/:id/hire", h.transitionTo(models.ReferralStatusHired))
		refs.POST("/:id/not-selected", h.transitionTo(models.ReferralStatusNotSelected))
		refs.POST("/:id/complete", h.transitionTo(models.ReferralStatusCompleted))
	}
}

func (h *ReferralHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateReferralRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	referral, err := h.referralService.Create(h.DB(), actor, &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, referral)
}

func (h *ReferralHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	referral, err := h.referralService.Get(h.DB(), actor, c.Param("id"))
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, referral)
}

func (h *ReferralHandler) History(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	history, err := h.referralService.History(h.DB(), actor, c.Param("id"))
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *ReferralHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	referrals, err := h.referralService.ListMine(h.DB(), actor)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"referrals": referrals})
}

func (h *ReferralHandler) transitionTo(target models.ReferralStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}

		// Заметка опциональна, пустое тело допустимо
		var req dto.TransitionNoteRequest
		_ = c.ShouldBindJSON(&req)

		referral, err := h.referralService.Transition(h.DB(), actor, c.Param("id"), target, req.Note)
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, referral)
	}
}
