package handlers

import (
	"strconv"

	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/logger"
	"refhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler - общая часть всех хендлеров: пул БД и валидатор.
// *gorm.DB внедряется при конструировании, никакого глобального
// соединения в пакетах нет.
type BaseHandler struct {
	db        *gorm.DB
	validator *validator.Validator
}

func NewBaseHandler(db *gorm.DB, v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		db:        db,
		validator: v,
	}
}

// DB возвращает хендл хранилища
func (h *BaseHandler) DB() *gorm.DB {
	return h.db
}

// BindAndValidateJSON биндит тело запроса и прогоняет валидатор.
// Возвращает false, если ответ уже отправлен.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		appErrors.HandleError(c, appErrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			appErrors.HandleError(c, appErrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			appErrors.HandleError(c, appErrors.InternalError(err))
		}
		return false
	}
	return true
}

// Pagination извлекает limit/offset из query-параметров
func (h *BaseHandler) Pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
