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

type WalletHandler struct {
	*BaseHandler
	walletService services.WalletService
}

func NewWalletHandler(base *BaseHandler, walletService services.WalletService) *WalletHandler {
	return &WalletHandler{
		BaseHandler:   base,
		walletService: walletService,
	}
}

// RegisterRoutes регистрирует маршруты кошелька
func (h *WalletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wallet := rg.Group("/wallet")
	{
		wallet.GET("", h.Get)
		wallet.GET("/transactions", h.Transactions)
	}
}

// Get возвращает кошелек текущего пользователя
func (h *WalletHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	wallet, err := h.walletService.GetByOwner(h.DB(), actor.UserID, models.WalletOwnerUser)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewWalletResponse(wallet))
}

// Transactions возвращает историю движений по кошельку пользователя
func (h *WalletHandler) Transactions(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}
	limit, offset := h.Pagination(c)

	wallet, err := h.walletService.GetByOwner(h.DB(), actor.UserID, models.WalletOwnerUser)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	transactions, err := h.walletService.ListTransactions(h.DB(), wallet.ID, limit, offset)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, *dto.NewTransactionResponse(&transactions[i]))
	}

	c.JSON(http.StatusOK, gin.H{"transactions": out})
}
