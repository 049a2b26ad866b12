package appErrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidRefreshToken ErrorCode = "INVALID_REFRESH_TOKEN"
	CodeMissingRefreshToken ErrorCode = "MISSING_REFRESH_TOKEN"
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeForbidden           ErrorCode = "FORBIDDEN"
	CodeInvalidToken        ErrorCode = "INVALID_TOKEN"

	CodeInvalidVerificationToken ErrorCode = "INVALID_VERIFICATION_TOKEN"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Ресурсы
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	CodeSessionExpired   ErrorCode = "SESSION_EXPIRED"
	CodeJobNotFound      ErrorCode = "JOB_NOT_FOUND"
	CodeReferralNotFound ErrorCode = "REFERRAL_NOT_FOUND"
	CodeWalletNotFound   ErrorCode = "WALLET_NOT_FOUND"
	CodeDisputeNotFound  ErrorCode = "DISPUTE_NOT_FOUND"

	// Бизнес-логика
	CodeEmailAlreadyExists     ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeInvalidTransition      ErrorCode = "INVALID_TRANSITION"
	CodeInsufficientFunds      ErrorCode = "INSUFFICIENT_FUNDS"
	CodeDisputeAlreadyOpen     ErrorCode = "DISPUTE_ALREADY_OPEN"
	CodeDisputeAlreadyResolved ErrorCode = "DISPUTE_ALREADY_RESOLVED"
	CodeJobNotActive           ErrorCode = "JOB_NOT_ACTIVE"
	CodeUserSuspended          ErrorCode = "USER_SUSPENDED"
	CodeUserDeactivated        ErrorCode = "USER_DEACTIVATED"
	CodeUserNotVerified        ErrorCode = "USER_NOT_VERIFIED"
	CodeNotParticipant         ErrorCode = "NOT_PARTICIPANT"
	CodeCurrencyMismatch       ErrorCode = "CURRENCY_MISMATCH"

	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
