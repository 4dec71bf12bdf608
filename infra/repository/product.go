package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain/ledger"
	repo "github.com/sociomart/backend/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a gorm-backed repo.ProductRepository.
func NewProductRepository(db *gorm.DB) repo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Get(ctx context.Context, productID uuid.UUID) (*ledger.Product, error) {
	var p Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", productID).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapProductToDomain(&p), nil
}

// GetForUpdate locks the product row so the price cannot move between
// the read and the commit of the enclosing purchase transaction.
func (r *productRepository) GetForUpdate(ctx context.Context, productID uuid.UUID) (*ledger.Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", productID).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return mapProductToDomain(&p), nil
}

func (r *productRepository) Create(ctx context.Context, product *ledger.Product) error {
	row := Product{
		ID:          product.ID,
		Name:        product.Name,
		ImageURL:    product.ImageURL,
		Price:       product.Price,
		Description: product.Description,
	}
	if err := wrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	}); err != nil {
		return err
	}
	product.CreatedAt = row.CreatedAt
	return nil
}

func (r *productRepository) Update(ctx context.Context, productID uuid.UUID, update repo.ProductUpdate) (*ledger.Product, error) {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.ImageURL != nil {
		updates["image_url"] = *update.ImageURL
	}
	if update.Price != nil {
		updates["price"] = *update.Price
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", productID).Updates(updates)
		if res.Error != nil {
			return nil, mapGormError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, mapGormError(gorm.ErrRecordNotFound)
		}
	}
	return r.Get(ctx, productID)
}

func (r *productRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", productID).Delete(&Product{})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapGormError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]ledger.Product, error) {
	var rows []Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, mapGormError(err)
	}
	out := make([]ledger.Product, 0, len(rows))
	for i := range rows {
		out = append(out, *mapProductToDomain(&rows[i]))
	}
	return out, nil
}

func mapProductToDomain(p *Product) *ledger.Product {
	return &ledger.Product{
		ID:          p.ID,
		Name:        p.Name,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
