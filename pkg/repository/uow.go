package repository

import "context"

// UnitOfWork is the transaction boundary for the ledger store.
//
// Do runs fn inside one storage transaction; every repository obtained
// from the UnitOfWork passed to fn shares that transaction. If fn
// returns an error the transaction rolls back and none of its writes
// are visible; otherwise all of them commit together. This is the only
// way the services touch the store, which is what makes "relation row
// and wallet delta land together or not at all" hold.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Users() UserRepository
	Relations() RelationRepository
	Posts() PostRepository
	Products() ProductRepository
	Purchases() PurchaseRepository
}
