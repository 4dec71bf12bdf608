package repository

import (
	"context"

	repo "github.com/sociomart/backend/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories obtained from the UoW handed to Do share
// the transaction session, which is what makes relation writes, counter
// updates and wallet movements atomic with respect to each other.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one gorm transaction. fn receives a UoW bound to
// that transaction; returning an error rolls everything back.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the root handle
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Users returns the user repository bound to the current session.
func (u *UoW) Users() repo.UserRepository { return NewUserRepository(u.session()) }

// Relations returns the relation repository bound to the current session.
func (u *UoW) Relations() repo.RelationRepository { return NewRelationRepository(u.session()) }

// Posts returns the post repository bound to the current session.
func (u *UoW) Posts() repo.PostRepository { return NewPostRepository(u.session()) }

// Products returns the product repository bound to the current session.
func (u *UoW) Products() repo.ProductRepository { return NewProductRepository(u.session()) }

// Purchases returns the purchase repository bound to the current session.
func (u *UoW) Purchases() repo.PurchaseRepository { return NewPurchaseRepository(u.session()) }
