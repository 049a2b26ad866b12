package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	JobHandler      *JobHandler
	ReferralHandler *ReferralHandler
	WalletHandler   *WalletHandler
	DisputeHandler  *DisputeHandler
}
