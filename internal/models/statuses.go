package models

type UserStatus string
type UserRole string
type ReferralStatus string
type PaymentStatus string
type TransactionType string
type TransactionStatus string
type DisputeStatus string
type DisputeOutcome string
type WalletOwnerType string

const (
	UserStatusPendingVerification UserStatus = "pending_verification"
	UserStatusActive              UserStatus = "active"
	UserStatusSuspended           UserStatus = "suspended"
	UserStatusDeactivated         UserStatus = "deactivated"

	UserRoleJobSeeker UserRole = "job_seeker"
	UserRoleEmployee  UserRole = "employee"
	UserRoleAdmin     UserRole = "admin"

	ReferralStatusPendingAcceptance ReferralStatus = "pending_acceptance"
	ReferralStatusRejected          ReferralStatus = "rejected"
	ReferralStatusInProgress        ReferralStatus = "in_progress"
	ReferralStatusSubmittedToATS    ReferralStatus = "submitted_to_ats"
	ReferralStatusInterviewing      ReferralStatus = "interviewing"
	ReferralStatusHired             ReferralStatus = "hired"
	ReferralStatusNotSelected       ReferralStatus = "not_selected"
	ReferralStatusCompleted         ReferralStatus = "completed"
	ReferralStatusDisputed          ReferralStatus = "disputed"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusEscrow   PaymentStatus = "escrow"
	PaymentStatusReleased PaymentStatus = "released"
	PaymentStatusRefunded PaymentStatus = "refunded"

	TransactionTypeEscrowHold    TransactionType = "escrow_hold"
	TransactionTypeEscrowRelease TransactionType = "escrow_release"
	TransactionTypeEscrowRefund  TransactionType = "escrow_refund"
	TransactionTypePlatformFee   TransactionType = "platform_fee"
	TransactionTypeDeposit       TransactionType = "deposit"
	TransactionTypeWithdrawal    TransactionType = "withdrawal"

	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCanceled  TransactionStatus = "canceled"

	DisputeStatusOpen             DisputeStatus = "open"
	DisputeStatusResolvedSeeker   DisputeStatus = "resolved_seeker"
	DisputeStatusResolvedEmployee DisputeStatus = "resolved_employee"

	DisputeOutcomeFavorSeeker   DisputeOutcome = "favor_seeker"
	DisputeOutcomeFavorEmployee DisputeOutcome = "favor_employee"

	WalletOwnerUser         WalletOwnerType = "user"
	WalletOwnerOrganization WalletOwnerType = "organization"
)
