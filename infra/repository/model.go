// Package repository provides the gorm-backed ledger store.
package repository

import (
	"time"

	"github.com/google/uuid"
)

// User is the users table as the ledger sees it: identity plus the
// wallet counter. Profile fields are carried for follower listings.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	ImageURL  string
	Wallet    int64 `gorm:"not null;default:0;check:wallet >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// Relation is one follow/like/view record. The composite unique index
// is the idempotency guarantee: at most one row per (actor, target,
// kind), and the arbiter for racing creates.
type Relation struct {
	ActorID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_relation_key"`
	TargetID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_relation_key"`
	Kind      string    `gorm:"type:varchar(16);uniqueIndex:idx_relation_key"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Relation model.
func (Relation) TableName() string { return "relations" }

// Post is a feed post or, when ParentPostID is set, a comment.
type Post struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorID     uuid.UUID `gorm:"type:uuid;index"`
	ParentPostID *uuid.UUID `gorm:"type:uuid;index"`
	Content      string
	ImageURL     string
	LikesCount   int64 `gorm:"not null;default:0"`
	ViewsCount   int64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Post model.
func (Post) TableName() string { return "posts" }

// Product is a catalog item priced in points.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	ImageURL    string
	Price       int64 `gorm:"not null;check:price > 0"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Product model.
func (Product) TableName() string { return "products" }

// Purchase is one bought unit with the price paid for it.
type Purchase struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	UnitPrice int64     `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Purchase model.
func (Purchase) TableName() string { return "purchases" }
