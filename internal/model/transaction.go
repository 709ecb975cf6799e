package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	CategoryID  *uint           `json:"category_id,omitempty" gorm:"index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Date        time.Time       `json:"date" gorm:"type:date;not null"`
	Description string          `json:"description,omitempty" gorm:"size:255"`
	Note        string          `json:"note,omitempty" gorm:"type:text"`
	Location    string          `json:"location,omitempty" gorm:"size:255"`
	IsIncome    bool            `json:"is_income" gorm:"not null;default:false"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}
