// Package repository defines the persistence contracts the ledger
// services depend on. Implementations live in infra/repository; tests
// use the in-memory store in internal/fixtures/ledgertest.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain/ledger"
)

// UserRepository exposes the account side of the ledger store: balance
// reads and the only write path a wallet has.
type UserRepository interface {
	// Get returns the user's account or domain.ErrNotFound.
	Get(ctx context.Context, userID uuid.UUID) (*ledger.Account, error)

	// GetForUpdate returns the account with its row locked for the
	// duration of the enclosing transaction. Every operation that moves
	// a wallet takes this lock first so operations on the same account
	// serialize.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*ledger.Account, error)

	// AdjustWallet applies delta to the wallet and returns the new
	// balance. The write carries a balance >= 0 guard; a debit the
	// guard rejects returns domain.ErrInsufficientFunds and changes
	// nothing.
	AdjustWallet(ctx context.Context, userID uuid.UUID, delta int64) (int64, error)

	// ListByIDs returns summaries for the given users, in no particular
	// order. Unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.UserSummary, error)
}

// RelationRepository stores the idempotency records behind follow, like
// and view. (ActorID, TargetID, Kind) is unique.
type RelationRepository interface {
	Exists(ctx context.Context, actorID, targetID uuid.UUID, kind ledger.RelationKind) (bool, error)

	// Create inserts the relation. A unique-key violation surfaces as
	// domain.ErrAlreadyExists so a lost create race is detectable.
	Create(ctx context.Context, rel ledger.Relation) error

	// Delete removes the relation, reporting whether a row existed.
	Delete(ctx context.Context, actorID, targetID uuid.UUID, kind ledger.RelationKind) (bool, error)

	// ListActors returns the actor ids holding a relation of kind onto
	// target (e.g. a user's followers).
	ListActors(ctx context.Context, targetID uuid.UUID, kind ledger.RelationKind) ([]uuid.UUID, error)

	// ListTargets returns the target ids the actor holds a relation of
	// kind onto (e.g. who a user follows).
	ListTargets(ctx context.Context, actorID uuid.UUID, kind ledger.RelationKind) ([]uuid.UUID, error)
}

// PostRepository reads and writes feed posts as far as the ledger needs
// them: author lookup, comment creation and the denormalized counters.
type PostRepository interface {
	Get(ctx context.Context, postID uuid.UUID) (*ledger.Post, error)
	Create(ctx context.Context, post *ledger.Post) error

	// IncLikes adds delta (may be negative) to the post's likes counter.
	IncLikes(ctx context.Context, postID uuid.UUID, delta int64) error

	// IncViews adds delta to the post's views counter.
	IncViews(ctx context.Context, postID uuid.UUID, delta int64) error
}

// ProductUpdate carries the patchable product fields; nil means leave
// unchanged.
type ProductUpdate struct {
	Name        *string
	ImageURL    *string
	Price       *int64
	Description *string
}

// ProductRepository is the catalog as the purchase engine sees it.
type ProductRepository interface {
	Get(ctx context.Context, productID uuid.UUID) (*ledger.Product, error)

	// GetForUpdate locks the product row so the price read inside a
	// purchase transaction cannot change before the debit commits.
	GetForUpdate(ctx context.Context, productID uuid.UUID) (*ledger.Product, error)

	Create(ctx context.Context, product *ledger.Product) error
	Update(ctx context.Context, productID uuid.UUID, update ProductUpdate) (*ledger.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	List(ctx context.Context) ([]ledger.Product, error)
}

// PurchaseRepository stores purchase rows, one per unit bought.
type PurchaseRepository interface {
	CreateBatch(ctx context.Context, purchases []ledger.Purchase) error
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]ledger.Purchase, error)
}
