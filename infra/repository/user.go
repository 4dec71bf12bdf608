package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain"
	"github.com/sociomart/backend/pkg/domain/ledger"
	repo "github.com/sociomart/backend/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm-backed repo.UserRepository.
func NewUserRepository(db *gorm.DB) repo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, userID uuid.UUID) (*ledger.Account, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		return nil, mapGormError(err)
	}
	return &ledger.Account{UserID: u.ID, Balance: u.Wallet, UpdatedAt: u.UpdatedAt}, nil
}

// GetForUpdate reads the account under a row lock. Inside a transaction
// this serializes every wallet-moving operation on the same user.
func (r *userRepository) GetForUpdate(ctx context.Context, userID uuid.UUID) (*ledger.Account, error) {
	var u User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&u, "id = ?", userID).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return &ledger.Account{UserID: u.ID, Balance: u.Wallet, UpdatedAt: u.UpdatedAt}, nil
}

// AdjustWallet applies delta with a non-negative guard on the UPDATE
// itself, so even a caller that skipped the locked read cannot push a
// wallet below zero.
func (r *userRepository) AdjustWallet(ctx context.Context, userID uuid.UUID, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ? AND wallet + ? >= 0", userID, delta).
		UpdateColumn("wallet", gorm.Expr("wallet + ?", delta))
	if res.Error != nil {
		return 0, mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return 0, mapGormError(err)
		}
		if count == 0 {
			return 0, domain.ErrNotFound
		}
		return 0, domain.ErrInsufficientFunds
	}
	var u User
	if err := r.db.WithContext(ctx).Select("wallet").First(&u, "id = ?", userID).Error; err != nil {
		return 0, mapGormError(err)
	}
	return u.Wallet, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.UserSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, mapGormError(err)
	}
	out := make([]ledger.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, ledger.UserSummary{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			ImageURL: u.ImageURL,
		})
	}
	return out, nil
}
