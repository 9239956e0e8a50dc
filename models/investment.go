package models

import "time"

// Transaction status vocabulary written by the reconciler. "completed" is a
// legacy alias of "success" that still exists in old rows; readers must treat
// both as successful (see utils.IsSuccessfulStatus), writers only ever produce
// StatusSuccess.
const (
	StatusInitiated     = "initiated"
	StatusSuccess       = "success"
	StatusCompleted     = "completed"
	StatusFailure       = "failure"
	StatusBounced       = "bounced"
	StatusCancelled     = "cancelled"
	StatusDropped       = "dropped"
	StatusAutoRefund    = "auto_refund"
	StatusRefundSuccess = "refund_success"
	StatusRefundPending = "refund_pending"
	StatusRefundFailed  = "refund_failed"
	StatusInProgress    = "in_progress"
)

// Investment record types. Only investment and follow_on rows count toward
// per-project totals.
const (
	TypeInvestment = "investment"
	TypeFollowOn   = "follow_on"
	TypePayout     = "payout"
)

// Payment modes for manually recorded investments.
const (
	PaymentModeBankTransfer = "bank_transfer"
	PaymentModeUPI          = "upi"
	PaymentModeCard         = "card"
	PaymentModeCash         = "cash"
	PaymentModeOther        = "other"
)

type Investment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	ProjectName       string    `gorm:"type:varchar(191);not null;index" json:"project_name"`
	InvestmentType    string    `gorm:"type:varchar(32);not null;default:'investment'" json:"investment_type"`
	Category          string    `gorm:"type:varchar(64);not null" json:"category"`
	Units             int       `gorm:"not null" json:"units"`
	Amount            int64     `gorm:"not null" json:"amount"` // currency minor units
	Notes             *string   `gorm:"type:text" json:"notes,omitempty"`
	TransactionID     *string   `gorm:"type:varchar(191);uniqueIndex" json:"transaction_id,omitempty"`
	TransactionStatus string    `gorm:"type:varchar(32);not null;default:'initiated';index" json:"transaction_status"`
	PaymentMode       string    `gorm:"type:varchar(32);not null;default:'other'" json:"payment_mode"`
	InvestmentDate    time.Time `gorm:"not null" json:"investment_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Investment) TableName() string {
	return "investments"
}
