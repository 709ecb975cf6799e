package model

import "time"

// BlocklistedToken records a token explicitly revoked before its natural
// expiry. Rows are append-only; entries past ExpiresAt are dead weight that
// may be garbage-collected, since an expired token is rejected on expiry
// grounds regardless.
type BlocklistedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex:idx_blocklisted_tokens_token,length:255;not null;type:text"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
