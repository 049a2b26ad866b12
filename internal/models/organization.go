package models

// Имена служебных организаций платформы. Создаются при старте,
// их кошельки - промежуточный escrow и счет комиссий.
const (
	EscrowOrgName   = "refhub_escrow"
	PlatformOrgName = "refhub_platform"
)

type Organization struct {
	BaseModel
	Name    string `gorm:"not null;uniqueIndex"`
	OwnerID string `gorm:"index"`

	// IsPlatform помечает служебную организацию платформы,
	// которой принадлежат escrow- и fee-кошельки.
	IsPlatform bool `gorm:"default:false"`
}
