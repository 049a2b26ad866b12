package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// AppError - основная структура ошибки приложения
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is сопоставляет AppError по коду, чтобы errors.Is узнавал
// копии, созданные WithDetails/WithError.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// С цепочкой ошибок
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails возвращает копию ошибки с деталями.
// Копия нужна, чтобы не мутировать предопределенные Err* значения.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// Для маршалинга в JSON
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Предопределенные ошибки
var (
	// Аутентификация.
	// InvalidCredentials сознательно один на "email не найден" и
	// "пароль не подошел" - чтобы нельзя было перебирать email'ы.
	ErrInvalidCredentials  = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrInvalidRefreshToken = New(CodeInvalidRefreshToken, "Invalid or expired refresh token", http.StatusUnauthorized)
	ErrMissingRefreshToken = New(CodeMissingRefreshToken, "Refresh token is required", http.StatusUnauthorized)
	ErrUnauthorized        = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden           = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken        = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Пользователи
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrUserNotVerified    = New(CodeUserNotVerified, "User not verified", http.StatusForbidden)
	// Токен уже потреблен или никогда не существовал - для
	// вызывающего неразличимо.
	ErrInvalidVerificationToken = New(CodeInvalidVerificationToken, "Invalid verification token", http.StatusBadRequest)
	ErrUserSuspended      = New(CodeUserSuspended, "User account suspended", http.StatusForbidden)
	ErrUserDeactivated    = New(CodeUserDeactivated, "User account deactivated", http.StatusForbidden)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)

	// Сессии
	ErrSessionNotFound = New(CodeSessionNotFound, "Session not found", http.StatusNotFound)
	ErrSessionExpired  = New(CodeSessionExpired, "Session expired", http.StatusUnauthorized)

	// Вакансии
	ErrJobNotFound  = New(CodeJobNotFound, "Job posting not found", http.StatusNotFound)
	ErrJobNotActive = New(CodeJobNotActive, "Job posting is not active", http.StatusBadRequest)

	// Рефералы
	ErrReferralNotFound  = New(CodeReferralNotFound, "Referral request not found", http.StatusNotFound)
	ErrInvalidTransition = New(CodeInvalidTransition, "Referral status transition is not allowed", http.StatusConflict)
	ErrNotParticipant    = New(CodeNotParticipant, "User is not a participant of this referral", http.StatusForbidden)

	// Кошельки
	ErrWalletNotFound    = New(CodeWalletNotFound, "Wallet not found", http.StatusNotFound)
	ErrInsufficientFunds = New(CodeInsufficientFunds, "Insufficient funds", http.StatusUnprocessableEntity)
	ErrCurrencyMismatch  = New(CodeCurrencyMismatch, "Wallet currency does not match", http.StatusUnprocessableEntity)

	// Споры
	ErrDisputeNotFound        = New(CodeDisputeNotFound, "Dispute not found", http.StatusNotFound)
	ErrDisputeAlreadyOpen     = New(CodeDisputeAlreadyOpen, "Dispute already open for this referral", http.StatusConflict)
	ErrDisputeAlreadyResolved = New(CodeDisputeAlreadyResolved, "Dispute already resolved", http.StatusConflict)

	// Валидация
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Функции-помощники для создания ошибок с деталями
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "Database operation failed", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}
