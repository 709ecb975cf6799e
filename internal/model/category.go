package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a user-owned spending category with an optional budget.
type Category struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"not null;index"`
	Name           string          `json:"name" gorm:"size:255;not null"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount" gorm:"type:decimal(10,2);not null;default:0"`
	Description    string          `json:"description,omitempty" gorm:"type:text"`
	IsActive       bool            `json:"is_active" gorm:"default:true"`
	ColorCode      string          `json:"color_code,omitempty" gorm:"size:7"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
