package models

import "time"

// KYC statuses.
const (
	KYCPending   = "pending"
	KYCSubmitted = "submitted"
	KYCVerified  = "verified"
	KYCRejected  = "rejected"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone          string    `gorm:"size:20;not null" json:"phone"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	KYCStatus      string    `gorm:"column:kyc_status;type:varchar(16);not null;default:'pending'" json:"kyc_status"`
	KYCDocumentURL *string   `gorm:"column:kyc_document_url;type:text" json:"kyc_document_url,omitempty"`
	KYCNote        *string   `gorm:"column:kyc_note;type:text" json:"kyc_note,omitempty"`
	Status         string    `gorm:"type:varchar(16);not null;default:'Active'" json:"status"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
