package services

import (
	"time"

	"refhub_backend/internal/models"
	"refhub_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Фейковые репозитории держат состояние в памяти и игнорируют *gorm.DB.
// Они возвращают копии моделей: сервис, как и с настоящей базой,
// не видит изменений, пока сам их не запишет.

type fakeUserRepo struct {
	users map[string]models.User

	// Инъекция сбоя хранилища для FindByID
	failFindByID error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	if r.failFindByID != nil {
		return nil, r.failFindByID
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByVerificationTokenHash(_ *gorm.DB, tokenHash string) (*models.User, error) {
	for _, u := range r.users {
		if u.VerificationTokenHash != "" && u.VerificationTokenHash == tokenHash {
			copy := u
			return &copy, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := u
			return &copy, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ *gorm.DB, userID string, status models.UserStatus) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) VerifyUser(_ *gorm.DB, userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsVerified = true
	u.Status = models.UserStatusActive
	u.VerificationTokenHash = ""
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) FindByRole(_ *gorm.DB, role models.UserRole, _, _ int) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountAll(_ *gorm.DB) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeSessionRepo struct {
	sessions map[string]models.Session // key: token hash
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.Session)}
}

func (r *fakeSessionRepo) Create(_ *gorm.DB, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	r.sessions[session.TokenHash] = *session
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ *gorm.DB, tokenHash string) (*models.Session, error) {
	s, ok := r.sessions[tokenHash]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		delete(r.sessions, tokenHash)
		return nil, repositories.ErrSessionExpired
	}
	copy := s
	return &copy, nil
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ *gorm.DB, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

func (r *fakeSessionRepo) DeleteByUserID(_ *gorm.DB, userID string) error {
	for hash, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, hash)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ *gorm.DB) (int64, error) {
	var n int64
	now := time.Now()
	for hash, s := range r.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.sessions, hash)
			n++
		}
	}
	return n, nil
}

func (r *fakeSessionRepo) CountByUserID(_ *gorm.DB, userID string) (int64, error) {
	var n int64
	for _, s := range r.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeJobRepo struct {
	jobs map[string]models.JobPosting
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]models.JobPosting)}
}

func (r *fakeJobRepo) Create(_ *gorm.DB, job *models.JobPosting) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	r.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) FindByID(_ *gorm.DB, id string) (*models.JobPosting, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	return &j, nil
}

func (r *fakeJobRepo) ListActive(_ *gorm.DB, _, _ int) ([]models.JobPosting, error) {
	var out []models.JobPosting
	for _, j := range r.jobs {
		if j.IsActive {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListByPoster(_ *gorm.DB, userID string) ([]models.JobPosting, error) {
	var out []models.JobPosting
	for _, j := range r.jobs {
		if j.PostedBy == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) SetActive(_ *gorm.DB, id string, active bool) error {
	j, ok := r.jobs[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.IsActive = active
	r.jobs[id] = j
	return nil
}

type fakeReferralRepo struct {
	referrals map[string]models.ReferralRequest
	history   []models.ReferralStatusHistory
}

func newFakeReferralRepo() *fakeReferralRepo {
	return &fakeReferralRepo{referrals: make(map[string]models.ReferralRequest)}
}

func (r *fakeReferralRepo) Create(_ *gorm.DB, referral *models.ReferralRequest) error {
	if referral.ID == "" {
		referral.ID = uuid.NewString()
	}
	referral.CreatedAt = time.Now()
	r.referrals[referral.ID] = *referral
	return nil
}

func (r *fakeReferralRepo) FindByID(_ *gorm.DB, id string) (*models.ReferralRequest, error) {
	ref, ok := r.referrals[id]
	if !ok {
		return nil, repositories.ErrReferralNotFound
	}
	return &ref, nil
}

func (r *fakeReferralRepo) FindByIDForUpdate(db *gorm.DB, id string) (*models.ReferralRequest, error) {
	return r.FindByID(db, id)
}

func (r *fakeReferralRepo) UpdateStatus(_ *gorm.DB, id string, status models.ReferralStatus, payment models.PaymentStatus) error {
	ref, ok := r.referrals[id]
	if !ok {
		return repositories.ErrReferralNotFound
	}
	ref.Status = status
	ref.PaymentStatus = payment
	r.referrals[id] = ref
	return nil
}

func (r *fakeReferralRepo) AppendHistory(_ *gorm.DB, entry *models.ReferralStatusHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now()
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakeReferralRepo) HistoryByReferralID(_ *gorm.DB, referralID string) ([]models.ReferralStatusHistory, error) {
	var out []models.ReferralStatusHistory
	for _, e := range r.history {
		if e.ReferralRequestID == referralID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeReferralRepo) ListByParticipant(_ *gorm.DB, userID string) ([]models.ReferralRequest, error) {
	var out []models.ReferralRequest
	for _, ref := range r.referrals {
		if ref.JobSeekerID == userID || ref.EmployeeID == userID {
			out = append(out, ref)
		}
	}
	return out, nil
}

type fakeWalletRepo struct {
	wallets      map[string]models.Wallet
	transactions map[string]models.Transaction

	// Вызывается перед Create - позволяет тесту вклинить
	// конкурирующую вставку между FindByOwner и Create.
	beforeCreate func()
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets:      make(map[string]models.Wallet),
		transactions: make(map[string]models.Transaction),
	}
}

func (r *fakeWalletRepo) Create(_ *gorm.DB, wallet *models.Wallet) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	for _, w := range r.wallets {
		if w.OwnerID == wallet.OwnerID && w.OwnerType == wallet.OwnerType {
			return gorm.ErrDuplicatedKey
		}
	}
	if wallet.ID == "" {
		wallet.ID = uuid.NewString()
	}
	r.wallets[wallet.ID] = *wallet
	return nil
}

func (r *fakeWalletRepo) FindByID(_ *gorm.DB, id string) (*models.Wallet, error) {
	w, ok := r.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	return &w, nil
}

func (r *fakeWalletRepo) FindByOwner(_ *gorm.DB, ownerID string, ownerType models.WalletOwnerType) (*models.Wallet, error) {
	for _, w := range r.wallets {
		if w.OwnerID == ownerID && w.OwnerType == ownerType {
			copy := w
			return &copy, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (r *fakeWalletRepo) FindByIDForUpdate(db *gorm.DB, id string) (*models.Wallet, error) {
	return r.FindByID(db, id)
}

func (r *fakeWalletRepo) UpdateBalance(_ *gorm.DB, id string, balance decimal.Decimal) error {
	w, ok := r.wallets[id]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	w.Balance = balance
	r.wallets[id] = w
	return nil
}

func (r *fakeWalletRepo) ListAll(_ *gorm.DB) ([]models.Wallet, error) {
	var out []models.Wallet
	for _, w := range r.wallets {
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWalletRepo) CreateTransaction(_ *gorm.DB, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.CreatedAt = time.Now()
	r.transactions[tx.ID] = *tx
	return nil
}

func (r *fakeWalletRepo) UpdateTransactionStatus(_ *gorm.DB, id string, status models.TransactionStatus) error {
	tx, ok := r.transactions[id]
	// Завершенная транзакция неизменяема, как и в настоящем репозитории
	if !ok || tx.Status != models.TransactionStatusPending {
		return repositories.ErrTransactionNotFound
	}
	tx.Status = status
	r.transactions[id] = tx
	return nil
}

func (r *fakeWalletRepo) ListTransactions(_ *gorm.DB, walletID string, _, _ int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range r.transactions {
		if tx.WalletID == walletID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeWalletRepo) SumCompleted(_ *gorm.DB, walletID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range r.transactions {
		if tx.WalletID == walletID && tx.Status == models.TransactionStatusCompleted {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

type fakeDisputeRepo struct {
	disputes map[string]models.Dispute

	// Вызывается после чтения под lock - позволяет тесту подменить
	// состояние спора "конкурирующей" резолюцией.
	afterFindForUpdate func()
}

func newFakeDisputeRepo() *fakeDisputeRepo {
	return &fakeDisputeRepo{disputes: make(map[string]models.Dispute)}
}

func (r *fakeDisputeRepo) Create(_ *gorm.DB, dispute *models.Dispute) error {
	for _, d := range r.disputes {
		if d.ReferralRequestID == dispute.ReferralRequestID {
			return repositories.ErrDisputeAlreadyExists
		}
	}
	if dispute.ID == "" {
		dispute.ID = uuid.NewString()
	}
	dispute.CreatedAt = time.Now()
	r.disputes[dispute.ID] = *dispute
	return nil
}

func (r *fakeDisputeRepo) FindByID(_ *gorm.DB, id string) (*models.Dispute, error) {
	d, ok := r.disputes[id]
	if !ok {
		return nil, repositories.ErrDisputeNotFound
	}
	return &d, nil
}

func (r *fakeDisputeRepo) FindByIDForUpdate(db *gorm.DB, id string) (*models.Dispute, error) {
	d, err := r.FindByID(db, id)
	if err == nil && r.afterFindForUpdate != nil {
		r.afterFindForUpdate()
	}
	return d, err
}

func (r *fakeDisputeRepo) FindByReferralID(_ *gorm.DB, referralID string) (*models.Dispute, error) {
	for _, d := range r.disputes {
		if d.ReferralRequestID == referralID {
			copy := d
			return &copy, nil
		}
	}
	return nil, repositories.ErrDisputeNotFound
}

// MarkResolved повторяет CAS настоящего репозитория: обновляется
// только спор, который все еще open.
func (r *fakeDisputeRepo) MarkResolved(_ *gorm.DB, dispute *models.Dispute) error {
	current, ok := r.disputes[dispute.ID]
	if !ok || current.Status != models.DisputeStatusOpen {
		return repositories.ErrDisputeNotOpen
	}
	current.Status = dispute.Status
	current.ResolvedByAdminID = dispute.ResolvedByAdminID
	current.ResolvedAt = dispute.ResolvedAt
	r.disputes[dispute.ID] = current
	return nil
}

func (r *fakeDisputeRepo) ListOpen(_ *gorm.DB, _, _ int) ([]models.Dispute, error) {
	var out []models.Dispute
	for _, d := range r.disputes {
		if d.Status == models.DisputeStatusOpen {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events []models.DomainEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{}
}

func (r *fakeEventRepo) Create(_ *gorm.DB, event *models.DomainEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) ListByReferral(_ *gorm.DB, referralID string) ([]models.DomainEvent, error) {
	var out []models.DomainEvent
	for _, e := range r.events {
		if e.ReferralRequestID != nil && *e.ReferralRequestID == referralID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) countByType(eventType models.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type fakeOrgRepo struct {
	orgs map[string]models.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]models.Organization)}
}

func (r *fakeOrgRepo) Create(_ *gorm.DB, org *models.Organization) error {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	r.orgs[org.ID] = *org
	return nil
}

func (r *fakeOrgRepo) FindByID(_ *gorm.DB, id string) (*models.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, repositories.ErrOrganizationNotFound
	}
	return &o, nil
}

func (r *fakeOrgRepo) FindByName(_ *gorm.DB, name string) (*models.Organization, error) {
	for _, o := range r.orgs {
		if o.Name == name {
			copy := o
			return &copy, nil
		}
	}
	return nil, repositories.ErrOrganizationNotFound
}
