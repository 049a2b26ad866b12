package services

import (
	"time"

	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/auth"
	"refhub_backend/internal/models"
	"refhub_backend/internal/repositories"
	"refhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Verify(db *gorm.DB, req *dto.VerifyRequest) (*dto.UserDTO, error)
	Login(db *gorm.DB, req *dto.LoginRequest, ip, userAgent string) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, rawRefreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, rawRefreshToken string) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	walletSvc   WalletService
	events      EventService

	refreshTTL time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	walletSvc WalletService,
	events EventService,
	refreshTTL time.Duration,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		walletSvc:   walletSvc,
		events:      events,
		refreshTTL:  refreshTTL,
	}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.ErrWeakPassword
	}
	if err := auth.ValidateRole(req.Role); err != nil {
		return nil, appErrors.ErrInvalidUserRole
	}

	// Предварительная проверка email. Гонку двух регистраций
	// закрывает уникальный индекс, не эта проверка.
	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, appErrors.ErrEmailAlreadyExists
	} else if !appErrors.Is(err, repositories.ErrUserNotFound) {
		return nil, appErrors.DatabaseError(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	verificationToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user := &models.User{
		Email:                 req.Email,
		PasswordHash:          hashedPassword,
		Role:                  req.Role,
		Status:                models.UserStatusPendingVerification,
		IsVerified:            false,
		VerificationTokenHash: auth.HashToken(verificationToken),
	}

	var created *dto.UserDTO
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if appErrors.Is(err, repositories.ErrUserAlreadyExists) {
				return appErrors.ErrEmailAlreadyExists
			}
			return appErrors.DatabaseError(err)
		}

		if _, err := s.walletSvc.EnsureWallet(tx, user.ID, models.WalletOwnerUser); err != nil {
			return err
		}

		if err := s.events.UserRegistered(tx, user, verificationToken); err != nil {
			return appErrors.DatabaseError(err)
		}

		created = buildUserDTO(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Verify подтверждает email по токену верификации и активирует
// пользователя. Токен одноразовый: VerifyUser стирает хеш, и повторное
// применение неотличимо от несуществующего токена.
func (s *AuthServiceImpl) Verify(db *gorm.DB, req *dto.VerifyRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByVerificationTokenHash(db, auth.HashToken(req.Token))
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidVerificationToken
		}
		return nil, appErrors.DatabaseError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.VerifyUser(tx, user.ID); err != nil {
			if appErrors.Is(err, repositories.ErrUserNotFound) {
				return appErrors.ErrInvalidVerificationToken
			}
			return appErrors.DatabaseError(err)
		}
		if err := s.events.UserVerified(tx, user); err != nil {
			return appErrors.DatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.Status = models.UserStatusActive
	user.VerificationTokenHash = ""
	return buildUserDTO(user), nil
}

// Login - аутентификация пользователя.
// "Email не найден" и "пароль не подошел" неразличимы для вызывающего.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest, ip, userAgent string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := checkUserStatus(user); err != nil {
		return nil, err
	}

	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	rawRefreshToken, err := s.createSession(db, user.ID, ip, userAgent)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefreshToken,
		User:         *buildUserDTO(user),
	}, nil
}

// Refresh - новый access token по refresh token'у.
// Refresh token сознательно НЕ ротируется: один и тот же токен
// живет до истечения или logout'а.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, rawRefreshToken string) (*dto.AuthResponse, error) {
	if rawRefreshToken == "" {
		return nil, appErrors.ErrMissingRefreshToken
	}

	session, err := s.sessionRepo.FindByTokenHash(db, auth.HashToken(rawRefreshToken))
	if err != nil {
		if appErrors.Is(err, repositories.ErrSessionNotFound) || appErrors.Is(err, repositories.ErrSessionExpired) {
			return nil, appErrors.ErrInvalidRefreshToken
		}
		return nil, appErrors.DatabaseError(err)
	}

	user, err := s.userRepo.FindByID(db, session.UserID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidRefreshToken
		}
		return nil, appErrors.DatabaseError(err)
	}

	if err := checkUserStatus(user); err != nil {
		return nil, err
	}

	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefreshToken,
		User:         *buildUserDTO(user),
	}, nil
}

// Logout - удаление сессии. Идемпотентен: повторный logout
// с тем же токеном не ошибка.
func (s *AuthServiceImpl) Logout(db *gorm.DB, rawRefreshToken string) error {
	if rawRefreshToken == "" {
		return appErrors.ErrMissingRefreshToken
	}

	if err := s.sessionRepo.DeleteByTokenHash(db, auth.HashToken(rawRefreshToken)); err != nil {
		return appErrors.DatabaseError(err)
	}
	return nil
}

// createSession выпускает refresh token и сохраняет сессию.
// В базу попадает только хеш токена.
func (s *AuthServiceImpl) createSession(db *gorm.DB, userID, ip, userAgent string) (string, error) {
	rawToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return "", appErrors.InternalError(err)
	}

	session := &models.Session{
		UserID:    userID,
		TokenHash: auth.HashToken(rawToken),
		ExpiresAt: time.Now().Add(s.refreshTTL),
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.sessionRepo.Create(db, session); err != nil {
		return "", appErrors.DatabaseError(err)
	}
	return rawToken, nil
}

// checkUserStatus проверяет, может ли пользователь входить
func checkUserStatus(user *models.User) error {
	switch user.Status {
	case models.UserStatusSuspended:
		return appErrors.ErrUserSuspended
	case models.UserStatusDeactivated:
		return appErrors.ErrUserDeactivated
	case models.UserStatusPendingVerification:
		if !user.IsVerified {
			return appErrors.ErrUserNotVerified
		}
	}
	return nil
}

func buildUserDTO(user *models.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
