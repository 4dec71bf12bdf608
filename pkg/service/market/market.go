// Package market implements the purchase engine and the product
// catalog operations around it. A purchase is one storage transaction:
// the price read, the affordability check, the per-unit purchase rows
// and the wallet debit all happen under the same locks and commit
// together.
package market

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain"
	"github.com/sociomart/backend/pkg/domain/ledger"
	"github.com/sociomart/backend/pkg/repository"
)

// Service provides marketplace operations against the points ledger.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Purchase buys quantity units of a product with points.
//
// The buyer's account row and the product row are locked before the
// price and balance are read, so the price charged is the price at
// commit time and two purchases by the same buyer serialize. If the
// wallet cannot cover price*quantity the transaction aborts with
// domain.ErrInsufficientFunds and nothing is written. On success
// exactly quantity purchase rows exist, each snapshotting the unit
// price, and the wallet dropped by the full total.
func (s *Service) Purchase(ctx context.Context, buyerID, productID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		quantity = 1
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Users().GetForUpdate(ctx, buyerID)
		if err != nil {
			return err
		}
		product, err := uow.Products().GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		// price*quantity can exceed int64 and wrap negative, which
		// would turn the debit below into a credit. A total past
		// MaxInt64 exceeds any balance, so it is the same refusal.
		if product.Price > 0 && quantity > math.MaxInt64/product.Price {
			return domain.ErrInsufficientFunds
		}
		total := product.Price * quantity
		if acct.Balance < total {
			return domain.ErrInsufficientFunds
		}

		purchases := make([]ledger.Purchase, quantity)
		for i := range purchases {
			purchases[i] = ledger.Purchase{
				ID:        uuid.New(),
				BuyerID:   buyerID,
				ProductID: productID,
				UnitPrice: product.Price,
			}
		}
		if err := uow.Purchases().CreateBatch(ctx, purchases); err != nil {
			return err
		}
		_, err = uow.Users().AdjustWallet(ctx, buyerID, -total)
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Info("purchase settled",
		"buyer_id", buyerID,
		"product_id", productID,
		"quantity", quantity,
	)
	return nil
}

// PurchaseGroup is a buyer's purchase history for one product, with the
// per-unit rows collapsed into a quantity for display.
type PurchaseGroup struct {
	Product   ledger.Product    `json:"product"`
	Quantity  int64             `json:"quantity"`
	Purchases []ledger.Purchase `json:"purchases"`
}

// ListPurchases returns the buyer's purchases grouped by product, most
// recently bought product first.
func (s *Service) ListPurchases(ctx context.Context, buyerID uuid.UUID) ([]PurchaseGroup, error) {
	var groups []PurchaseGroup
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		rows, err := uow.Purchases().ListByBuyer(ctx, buyerID)
		if err != nil {
			return err
		}
		byProduct := make(map[uuid.UUID]*PurchaseGroup)
		for _, row := range rows {
			g, ok := byProduct[row.ProductID]
			if !ok {
				product, err := uow.Products().Get(ctx, row.ProductID)
				if errors.Is(err, domain.ErrNotFound) {
					// The catalog row is gone; the purchase rows
					// outlive it. Rebuild what the snapshot knows.
					product = &ledger.Product{ID: row.ProductID, Price: row.UnitPrice}
				} else if err != nil {
					return err
				}
				g = &PurchaseGroup{Product: *product}
				byProduct[row.ProductID] = g
			}
			g.Quantity++
			g.Purchases = append(g.Purchases, row)
		}
		groups = make([]PurchaseGroup, 0, len(byProduct))
		for _, g := range byProduct {
			groups = append(groups, *g)
		}
		sort.Slice(groups, func(i, j int) bool {
			return groups[i].Purchases[0].CreatedAt.After(groups[j].Purchases[0].CreatedAt)
		})
		return nil
	})
	return groups, err
}

// CreateProductInput carries the fields for a new catalog product.
type CreateProductInput struct {
	Name        string
	ImageURL    string
	Price       int64
	Description string
}

// CreateProduct adds a product to the catalog.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*ledger.Product, error) {
	product := &ledger.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Description: in.Description,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Products().Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("product created", "product_id", product.ID, "price", product.Price)
	return product, nil
}

// UpdateProduct patches a product's fields; nil fields are left alone.
func (s *Service) UpdateProduct(ctx context.Context, productID uuid.UUID, update repository.ProductUpdate) (*ledger.Product, error) {
	var product *ledger.Product
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		product, err = uow.Products().Update(ctx, productID, update)
		return err
	})
	return product, err
}

// DeleteProduct removes a product from the catalog. Existing purchase
// rows keep their snapshotted prices and are not touched.
func (s *Service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Products().Delete(ctx, productID)
	})
}

// ListProducts returns the catalog, newest first.
func (s *Service) ListProducts(ctx context.Context) ([]ledger.Product, error) {
	var products []ledger.Product
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		products, err = uow.Products().List(ctx)
		return err
	})
	return products, err
}

// GetProduct returns one product.
func (s *Service) GetProduct(ctx context.Context, productID uuid.UUID) (*ledger.Product, error) {
	var product *ledger.Product
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		product, err = uow.Products().Get(ctx, productID)
		return err
	})
	return product, err
}
