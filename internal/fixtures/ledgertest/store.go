// Package ledgertest provides an in-memory ledger store for service
// tests. Do takes a process-wide lock and snapshots the state before
// running the transaction body, so it gives the same guarantees the
// real store does: operations serialize, and a failing transaction
// leaves no trace. Error fields let tests fail a specific operation
// deterministically mid-transaction.
package ledgertest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain/ledger"
	repo "github.com/sociomart/backend/pkg/repository"
)

type relKey struct {
	actor  uuid.UUID
	target uuid.UUID
	kind   ledger.RelationKind
}

type state struct {
	users     map[uuid.UUID]*userRow
	relations map[relKey]time.Time
	posts     map[uuid.UUID]*ledger.Post
	products  map[uuid.UUID]*ledger.Product
	purchases []ledger.Purchase
}

type userRow struct {
	summary ledger.UserSummary
	wallet  int64
}

func (st *state) clone() *state {
	cp := &state{
		users:     make(map[uuid.UUID]*userRow, len(st.users)),
		relations: make(map[relKey]time.Time, len(st.relations)),
		posts:     make(map[uuid.UUID]*ledger.Post, len(st.posts)),
		products:  make(map[uuid.UUID]*ledger.Product, len(st.products)),
		purchases: append([]ledger.Purchase(nil), st.purchases...),
	}
	for id, u := range st.users {
		row := *u
		cp.users[id] = &row
	}
	for k, v := range st.relations {
		cp.relations[k] = v
	}
	for id, p := range st.posts {
		post := *p
		cp.posts[id] = &post
	}
	for id, p := range st.products {
		product := *p
		cp.products[id] = &product
	}
	return cp
}

// Store is the in-memory repository.UnitOfWork.
type Store struct {
	mu sync.Mutex
	st *state

	// Failure injection: when set, the named operation returns the
	// error inside the transaction, which then rolls back.
	AdjustWalletErr    error
	CreateRelationErr  error
	CreatePurchasesErr error
}

// New creates an empty store.
func New() *Store {
	return &Store{st: &state{
		users:     make(map[uuid.UUID]*userRow),
		relations: make(map[relKey]time.Time),
		posts:     make(map[uuid.UUID]*ledger.Post),
		products:  make(map[uuid.UUID]*ledger.Product),
	}}
}

// Do runs fn under the store lock against a snapshot-backed session.
// If fn fails the pre-transaction state is restored.
func (s *Store) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.st.clone()
	if err := fn(&session{store: s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Users implements repo.UnitOfWork for direct (non-transactional) use.
func (s *Store) Users() repo.UserRepository { return &userRepo{store: s, locking: true} }

// Relations implements repo.UnitOfWork for direct use.
func (s *Store) Relations() repo.RelationRepository { return &relationRepo{store: s, locking: true} }

// Posts implements repo.UnitOfWork for direct use.
func (s *Store) Posts() repo.PostRepository { return &postRepo{store: s, locking: true} }

// Products implements repo.UnitOfWork for direct use.
func (s *Store) Products() repo.ProductRepository { return &productRepo{store: s, locking: true} }

// Purchases implements repo.UnitOfWork for direct use.
func (s *Store) Purchases() repo.PurchaseRepository { return &purchaseRepo{store: s, locking: true} }

// session is the transaction-scoped view handed to Do's fn. Its repos
// skip locking because Do already holds the store lock.
type session struct {
	store *Store
}

func (t *session) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return fn(t)
}

func (t *session) Users() repo.UserRepository         { return &userRepo{store: t.store} }
func (t *session) Relations() repo.RelationRepository { return &relationRepo{store: t.store} }
func (t *session) Posts() repo.PostRepository         { return &postRepo{store: t.store} }
func (t *session) Products() repo.ProductRepository   { return &productRepo{store: t.store} }
func (t *session) Purchases() repo.PurchaseRepository { return &purchaseRepo{store: t.store} }

// --- seeding and inspection helpers ---

// SeedUser adds a user with the given wallet and returns its id.
func (s *Store) SeedUser(name string, wallet int64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.st.users[id] = &userRow{
		summary: ledger.UserSummary{ID: id, Name: name, Email: name + "@example.com"},
		wallet:  wallet,
	}
	return id
}

// SeedPost adds a post by author and returns its id.
func (s *Store) SeedPost(authorID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.st.posts[id] = &ledger.Post{ID: id, AuthorID: authorID, CreatedAt: time.Now()}
	return id
}

// SeedProduct adds a product with the given price and returns its id.
func (s *Store) SeedProduct(name string, price int64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.st.products[id] = &ledger.Product{ID: id, Name: name, Price: price, CreatedAt: time.Now()}
	return id
}

// Wallet returns a user's current balance.
func (s *Store) Wallet(userID uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.st.users[userID]; ok {
		return u.wallet
	}
	return 0
}

// HasRelation reports whether the relation currently exists.
func (s *Store) HasRelation(actorID, targetID uuid.UUID, kind ledger.RelationKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.st.relations[relKey{actorID, targetID, kind}]
	return ok
}

// PostByID returns a copy of the stored post.
func (s *Store) PostByID(postID uuid.UUID) (ledger.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.st.posts[postID]; ok {
		return *p, true
	}
	return ledger.Post{}, false
}

// PurchaseCount returns how many purchase rows the buyer has.
func (s *Store) PurchaseCount(buyerID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.st.purchases {
		if p.BuyerID == buyerID {
			n++
		}
	}
	return n
}

// PostCount returns the total number of stored posts.
func (s *Store) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.posts)
}
