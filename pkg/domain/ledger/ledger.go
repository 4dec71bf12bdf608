// Package ledger holds the entities the points ledger operates on.
//
// The wallet balance on Account is the single shared mutable counter in
// the system. It is mutated exclusively inside a repository.UnitOfWork
// transaction by the social and market services; nothing else writes it.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// RelationKind tags a toggle-able boolean link between two entities.
type RelationKind string

const (
	// RelationFollow links a follower to a followed user.
	RelationFollow RelationKind = "follow"
	// RelationLike links a user to a liked post.
	RelationLike RelationKind = "like"
	// RelationView links a user to a viewed post. Views are write-once:
	// created on first view, never deleted.
	RelationView RelationKind = "view"
)

// Relation is the existence record behind follow/like/view. At most one
// Relation exists per (ActorID, TargetID, Kind); existence is boolean,
// never counted.
type Relation struct {
	ActorID   uuid.UUID
	TargetID  uuid.UUID
	Kind      RelationKind
	CreatedAt time.Time
}

// Account is a user's point wallet.
//
// Invariant: Balance is never negative. Credits and debits are applied
// only through UserRepository.AdjustWallet inside a transaction.
type Account struct {
	UserID    uuid.UUID
	Balance   int64
	UpdatedAt time.Time
}

// UserSummary is the public slice of a user surfaced in follower and
// following listings.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"image"`
}

// Post is a feed entry. A post with a ParentPostID is a comment on that
// parent. LikesCount and ViewsCount are denormalized counters kept in
// step with the relation table inside the same transaction.
type Post struct {
	ID           uuid.UUID  `json:"id"`
	AuthorID     uuid.UUID  `json:"author_id"`
	ParentPostID *uuid.UUID `json:"parent_post_id,omitempty"`
	Content      string     `json:"content"`
	ImageURL     string     `json:"image"`
	LikesCount   int64      `json:"likes_count"`
	ViewsCount   int64      `json:"views_count"`
	CreatedAt    time.Time  `json:"created"`
}

// Product is a marketplace item. Price is a positive integer number of
// points. The purchase engine treats the price it reads inside its own
// transaction as authoritative, never a value read earlier for display.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created"`
}

// Purchase records one unit bought. Quantity is represented as repeated
// rows, one per unit, each snapshotting the unit price paid. Purchases
// are never mutated or deleted.
type Purchase struct {
	ID        uuid.UUID `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	ProductID uuid.UUID `json:"product_id"`
	UnitPrice int64     `json:"unit_price"`
	CreatedAt time.Time `json:"created"`
}
