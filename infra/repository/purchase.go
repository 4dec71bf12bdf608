package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain/ledger"
	repo "github.com/sociomart/backend/pkg/repository"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a gorm-backed repo.PurchaseRepository.
func NewPurchaseRepository(db *gorm.DB) repo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) CreateBatch(ctx context.Context, purchases []ledger.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	rows := make([]Purchase, len(purchases))
	for i, p := range purchases {
		rows[i] = Purchase{
			ID:        p.ID,
			BuyerID:   p.BuyerID,
			ProductID: p.ProductID,
			UnitPrice: p.UnitPrice,
		}
	}
	return wrapError(func() error {
		return r.db.WithContext(ctx).Create(&rows).Error
	})
}

func (r *purchaseRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]ledger.Purchase, error) {
	var rows []Purchase
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	out := make([]ledger.Purchase, 0, len(rows))
	for _, row := range rows {
		out = append(out, ledger.Purchase{
			ID:        row.ID,
			BuyerID:   row.BuyerID,
			ProductID: row.ProductID,
			UnitPrice: row.UnitPrice,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
