package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain"
	"github.com/sociomart/backend/pkg/domain/ledger"
	repo "github.com/sociomart/backend/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Relation{}, &Post{}, &Product{}, &Purchase{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, wallet int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&User{ID: id, Name: "u", Email: id.String() + "@example.com", Wallet: wallet}).Error)
	return id
}

func TestAdjustWallet(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	id := seedUser(t, db, 10)

	t.Run("credit", func(t *testing.T) {
		balance, err := users.AdjustWallet(ctx, id, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(15), balance)
	})

	t.Run("debit below zero is rejected without mutation", func(t *testing.T) {
		_, err := users.AdjustWallet(ctx, id, -30)
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)

		acct, err := users.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(15), acct.Balance)
	})

	t.Run("debit to exactly zero is allowed", func(t *testing.T) {
		balance, err := users.AdjustWallet(ctx, id, -15)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := users.AdjustWallet(ctx, uuid.New(), 5)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRelationIdempotencyKey(t *testing.T) {
	db := setupDB(t)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	actor, target := uuid.New(), uuid.New()
	rel := ledger.Relation{ActorID: actor, TargetID: target, Kind: ledger.RelationFollow}

	require.NoError(t, relations.Create(ctx, rel))

	// The composite unique index rejects the second identical row.
	err := relations.Create(ctx, rel)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	// The same pair under a different kind is a different relation.
	require.NoError(t, relations.Create(ctx, ledger.Relation{
		ActorID: actor, TargetID: target, Kind: ledger.RelationLike,
	}))

	exists, err := relations.Exists(ctx, actor, target, ledger.RelationFollow)
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := relations.Delete(ctx, actor, target, ledger.RelationFollow)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = relations.Delete(ctx, actor, target, ledger.RelationFollow)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRelationListing(t *testing.T) {
	db := setupDB(t)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	require.NoError(t, relations.Create(ctx, ledger.Relation{ActorID: a, TargetID: c, Kind: ledger.RelationFollow}))
	require.NoError(t, relations.Create(ctx, ledger.Relation{ActorID: b, TargetID: c, Kind: ledger.RelationFollow}))

	actors, err := relations.ListActors(ctx, c, ledger.RelationFollow)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, actors)

	targets, err := relations.ListTargets(ctx, a, ledger.RelationFollow)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c}, targets)
}

func TestUoW_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	uow := NewUoW(db)
	ctx := context.Background()

	id := seedUser(t, db, 10)
	actor, target := uuid.New(), id
	boom := errors.New("boom")

	err := uow.Do(ctx, func(tx repo.UnitOfWork) error {
		if err := tx.Relations().Create(ctx, ledger.Relation{ActorID: actor, TargetID: target, Kind: ledger.RelationFollow}); err != nil {
			return err
		}
		if _, err := tx.Users().AdjustWallet(ctx, id, 5); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Neither the relation nor the wallet delta survived the rollback.
	exists, err := uow.Relations().Exists(ctx, actor, target, ledger.RelationFollow)
	require.NoError(t, err)
	assert.False(t, exists)

	acct, err := uow.Users().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(10), acct.Balance)
}

func TestUoW_CommitsTogether(t *testing.T) {
	db := setupDB(t)
	uow := NewUoW(db)
	ctx := context.Background()

	id := seedUser(t, db, 0)
	actor := uuid.New()

	err := uow.Do(ctx, func(tx repo.UnitOfWork) error {
		if err := tx.Relations().Create(ctx, ledger.Relation{ActorID: actor, TargetID: id, Kind: ledger.RelationFollow}); err != nil {
			return err
		}
		_, err := tx.Users().AdjustWallet(ctx, id, 10)
		return err
	})
	require.NoError(t, err)

	exists, err := uow.Relations().Exists(ctx, actor, id, ledger.RelationFollow)
	require.NoError(t, err)
	assert.True(t, exists)

	acct, err := uow.Users().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(10), acct.Balance)
}

func TestPostCounters(t *testing.T) {
	db := setupDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	post := &ledger.Post{ID: uuid.New(), AuthorID: uuid.New(), Content: "hello"}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, posts.IncLikes(ctx, post.ID, 1))
	require.NoError(t, posts.IncViews(ctx, post.ID, 1))
	require.NoError(t, posts.IncLikes(ctx, post.ID, -1))

	got, err := posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, got.LikesCount)
	assert.Equal(t, int64(1), got.ViewsCount)

	require.ErrorIs(t, posts.IncLikes(ctx, uuid.New(), 1), domain.ErrNotFound)
}

func TestProductRepository(t *testing.T) {
	db := setupDB(t)
	products := NewProductRepository(db)
	ctx := context.Background()

	product := &ledger.Product{ID: uuid.New(), Name: "mug", Price: 30}
	require.NoError(t, products.Create(ctx, product))

	newPrice := int64(45)
	updated, err := products.Update(ctx, product.ID, repo.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(45), updated.Price)

	_, err = products.Update(ctx, uuid.New(), repo.ProductUpdate{Price: &newPrice})
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, products.Delete(ctx, product.ID))
	require.ErrorIs(t, products.Delete(ctx, product.ID), domain.ErrNotFound)
}

func TestPurchaseRepository(t *testing.T) {
	db := setupDB(t)
	purchases := NewPurchaseRepository(db)
	ctx := context.Background()

	buyer, product := uuid.New(), uuid.New()
	batch := []ledger.Purchase{
		{ID: uuid.New(), BuyerID: buyer, ProductID: product, UnitPrice: 30},
		{ID: uuid.New(), BuyerID: buyer, ProductID: product, UnitPrice: 30},
	}
	require.NoError(t, purchases.CreateBatch(ctx, batch))

	rows, err := purchases.ListByBuyer(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(30), rows[0].UnitPrice)

	rows, err = purchases.ListByBuyer(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMapGormError(t *testing.T) {
	assert.NoError(t, mapGormError(nil))
	assert.ErrorIs(t, mapGormError(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, mapGormError(gorm.ErrDuplicatedKey), domain.ErrAlreadyExists)
	assert.ErrorIs(t, mapGormError(errors.New("connection refused")), domain.ErrStoreUnavailable)
}
