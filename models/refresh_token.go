package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

type RefreshToken struct {
	ID        string    `gorm:"primaryKey;type:char(68)" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRefreshToken(userID uint, ttlDays int) (*RefreshToken, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return &RefreshToken{
		ID:        "rt_" + hex.EncodeToString(b),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}
