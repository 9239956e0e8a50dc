package models

import "time"

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectUpcoming  = "upcoming"
	ProjectCompleted = "completed"
)

// Investment categories. The first three count as capital deployed, the rest
// as returns-generating instruments.
const (
	CategoryPreSeed          = "Pre-Seed"
	CategorySeed             = "Seed"
	CategoryPostSeed         = "Post-Seed"
	CategoryRevenueBased     = "Revenue-Based"
	CategoryConvertibleNotes = "Convertible-Notes"
	CategorySAFEs            = "SAFEs"
	CategoryEquityCrowdfund  = "Equity-Crowdfunding"
)

// Project is read-mostly reference data owned by the manage console.
// Investments reference it by name, not id: the denormalized linkage keeps
// ledger rows human-readable and is preserved deliberately.
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"name"`
	Status    string    `gorm:"type:varchar(16);not null;default:'upcoming'" json:"status"`
	Category  string    `gorm:"type:varchar(64);not null" json:"category"`
	StartDate time.Time `json:"start_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
