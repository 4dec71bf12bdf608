package ledgertest

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain"
	"github.com/sociomart/backend/pkg/domain/ledger"
	repo "github.com/sociomart/backend/pkg/repository"
)

// lockIf acquires the store lock for repos used outside a Do body and
// returns the matching unlock.
func lockIf(s *Store, locking bool) func() {
	if !locking {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type userRepo struct {
	store   *Store
	locking bool
}

func (r *userRepo) Get(ctx context.Context, userID uuid.UUID) (*ledger.Account, error) {
	defer lockIf(r.store, r.locking)()
	u, ok := r.store.st.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ledger.Account{UserID: userID, Balance: u.wallet}, nil
}

func (r *userRepo) GetForUpdate(ctx context.Context, userID uuid.UUID) (*ledger.Account, error) {
	return r.Get(ctx, userID)
}

func (r *userRepo) AdjustWallet(ctx context.Context, userID uuid.UUID, delta int64) (int64, error) {
	defer lockIf(r.store, r.locking)()
	if err := r.store.AdjustWalletErr; err != nil {
		return 0, err
	}
	u, ok := r.store.st.users[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if u.wallet+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	u.wallet += delta
	return u.wallet, nil
}

func (r *userRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.UserSummary, error) {
	defer lockIf(r.store, r.locking)()
	out := make([]ledger.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.store.st.users[id]; ok {
			out = append(out, u.summary)
		}
	}
	return out, nil
}

type relationRepo struct {
	store   *Store
	locking bool
}

func (r *relationRepo) Exists(ctx context.Context, actorID, targetID uuid.UUID, kind ledger.RelationKind) (bool, error) {
	defer lockIf(r.store, r.locking)()
	_, ok := r.store.st.relations[relKey{actorID, targetID, kind}]
	return ok, nil
}

func (r *relationRepo) Create(ctx context.Context, rel ledger.Relation) error {
	defer lockIf(r.store, r.locking)()
	if err := r.store.CreateRelationErr; err != nil {
		return err
	}
	key := relKey{rel.ActorID, rel.TargetID, rel.Kind}
	if _, ok := r.store.st.relations[key]; ok {
		return domain.ErrAlreadyExists
	}
	r.store.st.relations[key] = time.Now()
	return nil
}

func (r *relationRepo) Delete(ctx context.Context, actorID, targetID uuid.UUID, kind ledger.RelationKind) (bool, error) {
	defer lockIf(r.store, r.locking)()
	key := relKey{actorID, targetID, kind}
	if _, ok := r.store.st.relations[key]; !ok {
		return false, nil
	}
	delete(r.store.st.relations, key)
	return true, nil
}

func (r *relationRepo) ListActors(ctx context.Context, targetID uuid.UUID, kind ledger.RelationKind) ([]uuid.UUID, error) {
	defer lockIf(r.store, r.locking)()
	var ids []uuid.UUID
	for key := range r.store.st.relations {
		if key.target == targetID && key.kind == kind {
			ids = append(ids, key.actor)
		}
	}
	sortIDs(ids)
	return ids, nil
}

func (r *relationRepo) ListTargets(ctx context.Context, actorID uuid.UUID, kind ledger.RelationKind) ([]uuid.UUID, error) {
	defer lockIf(r.store, r.locking)()
	var ids []uuid.UUID
	for key := range r.store.st.relations {
		if key.actor == actorID && key.kind == kind {
			ids = append(ids, key.target)
		}
	}
	sortIDs(ids)
	return ids, nil
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}

type postRepo struct {
	store   *Store
	locking bool
}

func (r *postRepo) Get(ctx context.Context, postID uuid.UUID) (*ledger.Post, error) {
	defer lockIf(r.store, r.locking)()
	p, ok := r.store.st.posts[postID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *postRepo) Create(ctx context.Context, post *ledger.Post) error {
	defer lockIf(r.store, r.locking)()
	post.CreatedAt = time.Now()
	cp := *post
	r.store.st.posts[post.ID] = &cp
	return nil
}

func (r *postRepo) IncLikes(ctx context.Context, postID uuid.UUID, delta int64) error {
	defer lockIf(r.store, r.locking)()
	p, ok := r.store.st.posts[postID]
	if !ok {
		return domain.ErrNotFound
	}
	p.LikesCount += delta
	return nil
}

func (r *postRepo) IncViews(ctx context.Context, postID uuid.UUID, delta int64) error {
	defer lockIf(r.store, r.locking)()
	p, ok := r.store.st.posts[postID]
	if !ok {
		return domain.ErrNotFound
	}
	p.ViewsCount += delta
	return nil
}

type productRepo struct {
	store   *Store
	locking bool
}

func (r *productRepo) Get(ctx context.Context, productID uuid.UUID) (*ledger.Product, error) {
	defer lockIf(r.store, r.locking)()
	p, ok := r.store.st.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, productID uuid.UUID) (*ledger.Product, error) {
	return r.Get(ctx, productID)
}

func (r *productRepo) Create(ctx context.Context, product *ledger.Product) error {
	defer lockIf(r.store, r.locking)()
	product.CreatedAt = time.Now()
	cp := *product
	r.store.st.products[product.ID] = &cp
	return nil
}

func (r *productRepo) Update(ctx context.Context, productID uuid.UUID, update repo.ProductUpdate) (*ledger.Product, error) {
	defer lockIf(r.store, r.locking)()
	p, ok := r.store.st.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.ImageURL != nil {
		p.ImageURL = *update.ImageURL
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) Delete(ctx context.Context, productID uuid.UUID) error {
	defer lockIf(r.store, r.locking)()
	if _, ok := r.store.st.products[productID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.st.products, productID)
	return nil
}

func (r *productRepo) List(ctx context.Context) ([]ledger.Product, error) {
	defer lockIf(r.store, r.locking)()
	out := make([]ledger.Product, 0, len(r.store.st.products))
	for _, p := range r.store.st.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type purchaseRepo struct {
	store   *Store
	locking bool
}

func (r *purchaseRepo) CreateBatch(ctx context.Context, purchases []ledger.Purchase) error {
	defer lockIf(r.store, r.locking)()
	if err := r.store.CreatePurchasesErr; err != nil {
		return err
	}
	now := time.Now()
	for _, p := range purchases {
		p.CreatedAt = now
		r.store.st.purchases = append(r.store.st.purchases, p)
	}
	return nil
}

func (r *purchaseRepo) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]ledger.Purchase, error) {
	defer lockIf(r.store, r.locking)()
	var out []ledger.Purchase
	for _, p := range r.store.st.purchases {
		if p.BuyerID == buyerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
