package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService     AuthService
	JobService      JobService
	ReferralService ReferralService
	WalletService   WalletService
	DisputeService  DisputeService
	EventService    EventService
}
