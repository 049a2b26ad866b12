package appErrors

import (
	"net/http"

	"refhub_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError - обработка ошибок для Gin контекста.
// Любая не-AppError ошибка оборачивается в InternalError, детали
// наружу не уходят.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		logger.FromContext(c.Request.Context()).Error("unexpected error", "error", err)
		appErr = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)
	}

	if appErr.HTTPCode >= 500 {
		logger.FromContext(c.Request.Context()).Error("server error",
			"code", string(appErr.Code),
			"error", appErr.Error(),
		)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleValidationError - специальный обработчик для ошибок валидации
func HandleValidationError(c *gin.Context, err error) {
	HandleError(c, ErrValidationFailed.WithDetails(gin.H{"details": err.Error()}))
}
