package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mybudget/internal/model"
)

// BlocklistRepository is the revocation ledger. Writes go to the same
// transactional store as the user rows, so a revoke is durable before the
// logout response returns.
type BlocklistRepository interface {
	// Revoke records the token with its original expiry. Revoking the same
	// token twice is not an error.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type blocklistRepository struct {
	db *gorm.DB
}

// NewBlocklistRepository builds a GORM-backed revocation ledger.
func NewBlocklistRepository(db *gorm.DB) BlocklistRepository {
	return &blocklistRepository{db: db}
}

func (r *blocklistRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	entry := &model.BlocklistedToken{Token: token, ExpiresAt: expiresAt}
	err := r.db.WithContext(ctx).Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *blocklistRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlocklistedToken{}).
		Where("token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
