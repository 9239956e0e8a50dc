package models

import "time"

// TransactionProof is evidence of an offline payment attached to an
// investment. The file itself is immutable once stored; only the metadata
// columns may be edited. Deleting a proof removes the row, not the stored
// object.
type TransactionProof struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	InvestmentID       uint       `gorm:"not null;index" json:"investment_id"`
	FileURL            string     `gorm:"type:text;not null" json:"file_url"`
	FileName           string     `gorm:"type:varchar(255);not null" json:"file_name"`
	TransactionDetails *string    `gorm:"type:text" json:"transaction_details,omitempty"`
	TransactionDate    *time.Time `json:"transaction_date,omitempty"`
	Amount             *int64     `json:"amount,omitempty"`
	PaymentMode        *string    `gorm:"type:varchar(32)" json:"payment_mode,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (TransactionProof) TableName() string {
	return "transaction_proofs"
}
