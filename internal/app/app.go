package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"refhub_backend/database"
	"refhub_backend/internal/auth"
	"refhub_backend/internal/config"
	"refhub_backend/internal/handlers"
	"refhub_backend/internal/logger"
	"refhub_backend/internal/middleware"
	"refhub_backend/internal/models"
	"refhub_backend/internal/repositories"
	"refhub_backend/internal/routes"
	"refhub_backend/internal/services"
	"refhub_backend/internal/validator"
	"refhub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Setup(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	logger.Info("Connecting to database...")
	// TranslateError нужен, чтобы нарушения уникальных индексов
	// приходили как gorm.ErrDuplicatedKey, на это опираются репозитории.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedPlatformOrganizations(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed platform organizations", "error", err)
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	startWorkers(workerCtx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer, gormDB)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	jobRepo := repositories.NewJobRepository()
	referralRepo := repositories.NewReferralRepository()
	walletRepo := repositories.NewWalletRepository()
	disputeRepo := repositories.NewDisputeRepository()
	eventRepo := repositories.NewEventRepository()
	orgRepo := repositories.NewOrganizationRepository()

	eventService := services.NewEventService(eventRepo)
	walletService := services.NewWalletService(
		walletRepo, orgRepo, eventService,
		cfg.Payments.Currency, cfg.Payments.PlatformFeePercent,
	)
	authService := services.NewAuthService(
		userRepo, sessionRepo, walletService, eventService,
		time.Duration(cfg.JWT.RefreshTTL)*time.Hour,
	)
	jobService := services.NewJobService(jobRepo)
	referralService := services.NewReferralService(referralRepo, jobRepo, userRepo, walletService, eventService)
	disputeService := services.NewDisputeService(disputeRepo, referralRepo, jobRepo, walletService, eventService)

	return &services.ServiceContainer{
		AuthService:     authService,
		JobService:      jobService,
		ReferralService: referralService,
		WalletService:   walletService,
		DisputeService:  disputeService,
		EventService:    eventService,
	}
}

func initializeHandlers(services *services.ServiceContainer, gormDB *gorm.DB) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(gormDB, customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, services.AuthService),
		JobHandler:      handlers.NewJobHandler(baseHandler, services.JobService),
		ReferralHandler: handlers.NewReferralHandler(baseHandler, services.ReferralService),
		WalletHandler:   handlers.NewWalletHandler(baseHandler, services.WalletService),
		DisputeHandler:  handlers.NewDisputeHandler(baseHandler, services.DisputeService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) {
	sessionWorker := workers.NewSessionWorker(
		gormDB,
		repositories.NewSessionRepository(),
		time.Duration(cfg.Workers.SessionCleanupMinutes)*time.Minute,
	)
	sessionWorker.Start(ctx)

	ledgerWorker := workers.NewLedgerWorker(
		gormDB,
		repositories.NewWalletRepository(),
		time.Duration(cfg.Workers.LedgerReconcileMinutes)*time.Minute,
	)
	ledgerWorker.Start(ctx)

	logger.Info("Background workers started")
}

// seedPlatformOrganizations создает служебные организации платформы:
// escrow-организацию, держащую замороженные средства, и организацию
// выручки, куда падает комиссия. У каждой ровно один кошелек.
func seedPlatformOrganizations(db *gorm.DB, cfg *config.Config) error {
	orgRepo := repositories.NewOrganizationRepository()
	walletRepo := repositories.NewWalletRepository()

	for _, name := range []string{models.EscrowOrgName, models.PlatformOrgName} {
		org, err := orgRepo.FindByName(db, name)
		if errors.Is(err, repositories.ErrOrganizationNotFound) {
			org = &models.Organization{
				Name:       name,
				IsPlatform: true,
			}
			if err := orgRepo.Create(db, org); err != nil {
				return fmt.Errorf("create organization %s: %w", name, err)
			}
			logger.Info("Platform organization created", "name", name)
		} else if err != nil {
			return fmt.Errorf("lookup organization %s: %w", name, err)
		}

		if _, err := walletRepo.FindByOwner(db, org.ID, models.WalletOwnerOrganization); err != nil {
			if !errors.Is(err, repositories.ErrWalletNotFound) {
				return fmt.Errorf("lookup wallet for %s: %w", name, err)
			}
			wallet := &models.Wallet{
				OwnerID:   org.ID,
				OwnerType: models.WalletOwnerOrganization,
				Currency:  cfg.Payments.Currency,
			}
			if err := walletRepo.Create(db, wallet); err != nil {
				return fmt.Errorf("create wallet for %s: %w", name, err)
			}
		}
	}

	return nil
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password is not configured. Skipping admin seeding.")
		return nil
	}

	userRepo := repositories.NewUserRepository()

	if _, err := userRepo.FindByEmail(db, adminEmail); err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("check for admin user: %w", err)
	}

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := userRepo.Create(db, newAdmin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
