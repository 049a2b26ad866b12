package models

import "time"

type ReferralRequest struct {
	BaseModel
	JobPostingID string         `gorm:"not null;index"`
	JobSeekerID  string         `gorm:"not null;index"`
	EmployeeID   string         `gorm:"not null;index"`
	Status       ReferralStatus `gorm:"type:varchar(30);not null;default:'pending_acceptance'"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	// Ссылка на резюме во внешнем хранилище. Сами файлы сервис не хранит.
	ResumeURL string

	History []ReferralStatusHistory `gorm:"foreignKey:ReferralRequestID"`
	Dispute *Dispute                `gorm:"foreignKey:ReferralRequestID"`
}

// ReferralStatusHistory - append-only журнал смен статуса.
// Записи никогда не обновляются и не удаляются.
type ReferralStatusHistory struct {
	ID                string         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ReferralRequestID string         `gorm:"not null;index"`
	FromStatus        ReferralStatus `gorm:"type:varchar(30)"`
	ToStatus          ReferralStatus `gorm:"type:varchar(30);not null"`
	ActorID           string         `gorm:"not null"`
	Note              string
	CreatedAt         time.Time `gorm:"default:now()"`
}

// Party - сторона реферала, которой разрешен переход.
type Party string

const (
	PartyEmployee Party = "employee"
	PartySeeker   Party = "seeker"
	PartyAdmin    Party = "admin"
)

// EscrowEffect - что переход делает с деньгами.
type EscrowEffect string

const (
	EscrowNone    EscrowEffect = ""
	EscrowHold    EscrowEffect = "hold"    // кошелек соискателя -> escrow
	EscrowRelease EscrowEffect = "release" // escrow -> кошелек сотрудника (минус комиссия)
	EscrowRefund  EscrowEffect = "refund"  // escrow -> кошелек соискателя
)

// Transition - одно ребро графа статусов реферала.
type Transition struct {
	To             ReferralStatus
	Actors         []Party
	RequirePayment PaymentStatus // обязательный payment_status до перехода ("" = любой)
	PaymentTo      PaymentStatus // новый payment_status ("" = без изменений)
	Effect         EscrowEffect
}

// referralTransitions - граф допустимых переходов. Переход в disputed
// сюда сознательно не входит: его делает только DisputeService в обход графа.
var referralTransitions = map[ReferralStatus][]Transition{
	ReferralStatusPendingAcceptance: {
		{
			To:             ReferralStatusInProgress,
			Actors:         []Party{PartyEmployee},
			RequirePayment: PaymentStatusPending,
			PaymentTo:      PaymentStatusEscrow,
			Effect:         EscrowHold,
		},
		{
			To:     ReferralStatusRejected,
			Actors: []Party{PartyEmployee},
		},
	},
	ReferralStatusInProgress: {
		{
			To:             ReferralStatusSubmittedToATS,
			Actors:         []Party{PartyEmployee},
			RequirePayment: PaymentStatusEscrow,
		},
	},
	ReferralStatusSubmittedToATS: {
		{
			To:             ReferralStatusInterviewing,
			Actors:         []Party{PartyEmployee, PartyAdmin},
			RequirePayment: PaymentStatusEscrow,
		},
	},
	ReferralStatusInterviewing: {
		{
			To:             ReferralStatusHired,
			Actors:         []Party{PartyEmployee, PartyAdmin},
			RequirePayment: PaymentStatusEscrow,
		},
		{
			To:             ReferralStatusNotSelected,
			Actors:         []Party{PartyEmployee, PartyAdmin},
			RequirePayment: PaymentStatusEscrow,
			PaymentTo:      PaymentStatusRefunded,
			Effect:         EscrowRefund,
		},
	},
	ReferralStatusHired: {
		{
			To:             ReferralStatusCompleted,
			Actors:         []Party{PartySeeker, PartyAdmin},
			RequirePayment: PaymentStatusEscrow,
			PaymentTo:      PaymentStatusReleased,
			Effect:         EscrowRelease,
		},
	},
}

// FindTransition возвращает ребро from -> to, если оно есть в графе.
func FindTransition(from, to ReferralStatus) (Transition, bool) {
	for _, t := range referralTransitions[from] {
		if t.To == to {
			return t, true
		}
	}
	return Transition{}, false
}

// IsTerminal сообщает, допускает ли статус дальнейшие переходы.
// disputed - не терминальный, но из него выводит только DisputeService.
func (s ReferralStatus) IsTerminal() bool {
	switch s {
	case ReferralStatusRejected, ReferralStatusNotSelected, ReferralStatusCompleted:
		return true
	}
	return false
}

// Allows проверяет, что сторона может выполнить переход.
func (t Transition) Allows(p Party) bool {
	for _, a := range t.Actors {
		if a == p {
			return true
		}
	}
	return false
}

// PartyOf определяет, какой стороной реферала является пользователь.
// Вторым значением возвращает false, если пользователь не участник.
func (r *ReferralRequest) PartyOf(userID string, role UserRole) (Party, bool) {
	if role == UserRoleAdmin {
		return PartyAdmin, true
	}
	switch userID {
	case r.EmployeeID:
		return PartyEmployee, true
	case r.JobSeekerID:
		return PartySeeker, true
	}
	return "", false
}
