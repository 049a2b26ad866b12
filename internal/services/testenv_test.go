package services

import (
	"testing"
	"time"

	"refhub_backend/internal/auth"
	"refhub_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testCurrency   = "INR"
	testFeePercent = 10.0
)

func init() {
	auth.Setup("test-secret", 15*time.Minute)
}

// testEnv - сервисы поверх фейковых репозиториев.
// Данные живут в памяти фейков; через *gorm.DB проходят только
// BEGIN/COMMIT/ROLLBACK и savepoints вложенных транзакций,
// их принимает sqlmock.
type testEnv struct {
	db *gorm.DB

	userRepo     *fakeUserRepo
	sessionRepo  *fakeSessionRepo
	jobRepo      *fakeJobRepo
	referralRepo *fakeReferralRepo
	walletRepo   *fakeWalletRepo
	disputeRepo  *fakeDisputeRepo
	eventRepo    *fakeEventRepo
	orgRepo      *fakeOrgRepo

	authSvc     AuthService
	jobSvc      JobService
	referralSvc ReferralService
	walletSvc   WalletService
	disputeSvc  DisputeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 64; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
		mock.ExpectExec("SAVEPOINT").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	env := &testEnv{
		db:           db,
		userRepo:     newFakeUserRepo(),
		sessionRepo:  newFakeSessionRepo(),
		jobRepo:      newFakeJobRepo(),
		referralRepo: newFakeReferralRepo(),
		walletRepo:   newFakeWalletRepo(),
		disputeRepo:  newFakeDisputeRepo(),
		eventRepo:    newFakeEventRepo(),
		orgRepo:      newFakeOrgRepo(),
	}

	eventSvc := NewEventService(env.eventRepo)
	env.walletSvc = NewWalletService(env.walletRepo, env.orgRepo, eventSvc, testCurrency, testFeePercent)
	env.authSvc = NewAuthService(env.userRepo, env.sessionRepo, env.walletSvc, eventSvc, 24*time.Hour)
	env.jobSvc = NewJobService(env.jobRepo)
	env.referralSvc = NewReferralService(env.referralRepo, env.jobRepo, env.userRepo, env.walletSvc, eventSvc)
	env.disputeSvc = NewDisputeService(env.disputeRepo, env.referralRepo, env.jobRepo, env.walletSvc, eventSvc)

	env.seedPlatformOrgs(t)
	return env
}

func (env *testEnv) seedPlatformOrgs(t *testing.T) {
	t.Helper()
	for _, name := range []string{models.EscrowOrgName, models.PlatformOrgName} {
		org := &models.Organization{Name: name, IsPlatform: true}
		require.NoError(t, env.orgRepo.Create(nil, org))
		require.NoError(t, env.walletRepo.Create(nil, &models.Wallet{
			OwnerID:   org.ID,
			OwnerType: models.WalletOwnerOrganization,
			Balance:   decimal.Zero,
			Currency:  testCurrency,
		}))
	}
}

func (env *testEnv) addUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:        string(role) + "-" + uuid.NewString() + "@test.com",
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	require.NoError(t, env.userRepo.Create(nil, user))
	return user
}

func (env *testEnv) addWallet(t *testing.T, ownerID string, balance string) *models.Wallet {
	t.Helper()
	wallet := &models.Wallet{
		OwnerID:   ownerID,
		OwnerType: models.WalletOwnerUser,
		Balance:   mustDecimal(t, balance),
		Currency:  testCurrency,
	}
	require.NoError(t, env.walletRepo.Create(nil, wallet))
	return wallet
}

func (env *testEnv) addJob(t *testing.T, postedBy, fee string) *models.JobPosting {
	t.Helper()
	job := &models.JobPosting{
		PostedBy:    postedBy,
		Title:       "Backend Engineer",
		ReferralFee: mustDecimal(t, fee),
		Currency:    testCurrency,
		IsActive:    true,
	}
	require.NoError(t, env.jobRepo.Create(nil, job))
	return job
}

func (env *testEnv) addReferral(t *testing.T, job *models.JobPosting, seekerID, employeeID string, status models.ReferralStatus, payment models.PaymentStatus) *models.ReferralRequest {
	t.Helper()
	referral := &models.ReferralRequest{
		JobPostingID:  job.ID,
		JobSeekerID:   seekerID,
		EmployeeID:    employeeID,
		Status:        status,
		PaymentStatus: payment,
	}
	require.NoError(t, env.referralRepo.Create(nil, referral))
	return referral
}

func (env *testEnv) escrowWallet(t *testing.T) *models.Wallet {
	return env.platformWalletByName(t, models.EscrowOrgName)
}

func (env *testEnv) revenueWallet(t *testing.T) *models.Wallet {
	return env.platformWalletByName(t, models.PlatformOrgName)
}

func (env *testEnv) platformWalletByName(t *testing.T, name string) *models.Wallet {
	t.Helper()
	org, err := env.orgRepo.FindByName(nil, name)
	require.NoError(t, err)
	wallet, err := env.walletRepo.FindByOwner(nil, org.ID, models.WalletOwnerOrganization)
	require.NoError(t, err)
	return wallet
}

func (env *testEnv) actorFor(user *models.User) auth.Actor {
	return auth.Actor{UserID: user.ID, Role: user.Role}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

