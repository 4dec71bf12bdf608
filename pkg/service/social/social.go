// Package social implements the toggle engine: idempotent on/off
// relations (follow, like), write-once views, and the comment reward.
// Each operation is one storage transaction; the relation write, the
// denormalized counters and the wallet movement commit together or not
// at all.
package social

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain"
	"github.com/sociomart/backend/pkg/domain/ledger"
	"github.com/sociomart/backend/pkg/repository"
	"github.com/sociomart/backend/pkg/reward"
)

// Service provides the social-side ledger operations.
type Service struct {
	uow    repository.UnitOfWork
	policy reward.Policy
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(uow repository.UnitOfWork, policy reward.Policy, logger *slog.Logger) *Service {
	return &Service{uow: uow, policy: policy, logger: logger}
}

// toggleOp describes one toggle: the relation key, who gets paid, and
// how much. recipient resolves the paid user inside the transaction
// (for likes that means reading the post's author there, not from an
// earlier request). Optional hooks run inside the same transaction
// right after the relation is created or deleted (used for post
// counters).
type toggleOp struct {
	kind      ledger.RelationKind
	actorID   uuid.UUID
	targetID  uuid.UUID
	recipient func(uow repository.UnitOfWork) (uuid.UUID, error)
	delta     int64
	onCreate  func(uow repository.UnitOfWork) error
	onDelete  func(uow repository.UnitOfWork) error
}

// toggle flips the relation and settles the paired wallet movement.
//
// The recipient's account row is locked first, so all toggles paying
// the same recipient serialize: the second of two concurrent toggles
// observes the state the first committed. The relation's unique key is
// the backstop for races the lock does not cover; losing that race
// surfaces as domain.ErrConcurrentConflict.
func (s *Service) toggle(ctx context.Context, op toggleOp) (active bool, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		recipientID, err := op.recipient(uow)
		if err != nil {
			return err
		}
		acct, err := uow.Users().GetForUpdate(ctx, recipientID)
		if err != nil {
			return err
		}

		exists, err := uow.Relations().Exists(ctx, op.actorID, op.targetID, op.kind)
		if err != nil {
			return err
		}

		if exists {
			deleted, err := uow.Relations().Delete(ctx, op.actorID, op.targetID, op.kind)
			if err != nil {
				return err
			}
			if !deleted {
				return domain.ErrConcurrentConflict
			}
			if op.onDelete != nil {
				if err := op.onDelete(uow); err != nil {
					return err
				}
			}
			if err := s.revoke(ctx, uow, op, recipientID, acct.Balance); err != nil {
				return err
			}
			active = false
			return nil
		}

		if err := uow.Relations().Create(ctx, ledger.Relation{
			ActorID:  op.actorID,
			TargetID: op.targetID,
			Kind:     op.kind,
		}); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return domain.ErrConcurrentConflict
			}
			return err
		}
		if op.onCreate != nil {
			if err := op.onCreate(uow); err != nil {
				return err
			}
		}
		if op.delta > 0 && op.actorID != recipientID {
			if _, err := uow.Users().AdjustWallet(ctx, recipientID, op.delta); err != nil {
				return err
			}
		}
		active = true
		return nil
	})
	if err != nil {
		return false, err
	}
	s.logger.Info("toggle settled",
		"kind", op.kind,
		"actor_id", op.actorID,
		"target_id", op.targetID,
		"active", active,
	)
	return active, nil
}

// revoke takes back the points granted when the relation was created.
// If the recipient already spent them the revoke floors at zero rather
// than failing; the balance invariant outranks exact symmetry here.
func (s *Service) revoke(ctx context.Context, uow repository.UnitOfWork, op toggleOp, recipientID uuid.UUID, balance int64) error {
	if op.delta <= 0 || op.actorID == recipientID {
		return nil
	}
	take := op.delta
	if take > balance {
		take = balance
	}
	if take == 0 {
		return nil
	}
	_, err := uow.Users().AdjustWallet(ctx, recipientID, -take)
	return err
}

// ToggleFollow follows userID if the actor does not follow them yet,
// unfollows otherwise, and credits or revokes the follow reward on the
// followed user. Returns the new following state.
func (s *Service) ToggleFollow(ctx context.Context, actorID, userID uuid.UUID) (bool, error) {
	if actorID == userID {
		return false, domain.ErrInvalidSelfReference
	}
	return s.toggle(ctx, toggleOp{
		kind:     ledger.RelationFollow,
		actorID:  actorID,
		targetID: userID,
		recipient: func(repository.UnitOfWork) (uuid.UUID, error) {
			return userID, nil
		},
		delta: s.policy.Delta(reward.ActionFollow),
	})
}

// ToggleLike likes or unlikes a post, keeps the post's likes counter in
// step, and credits or revokes the like reward on the post's author.
// Liking your own post is allowed but never moves a wallet. Returns the
// new liked state.
func (s *Service) ToggleLike(ctx context.Context, actorID, postID uuid.UUID) (bool, error) {
	return s.toggle(ctx, toggleOp{
		kind:     ledger.RelationLike,
		actorID:  actorID,
		targetID: postID,
		recipient: func(uow repository.UnitOfWork) (uuid.UUID, error) {
			post, err := uow.Posts().Get(ctx, postID)
			if err != nil {
				return uuid.Nil, err
			}
			return post.AuthorID, nil
		},
		delta: s.policy.Delta(reward.ActionLike),
		onCreate: func(uow repository.UnitOfWork) error {
			return uow.Posts().IncLikes(ctx, postID, 1)
		},
		onDelete: func(uow repository.UnitOfWork) error {
			return uow.Posts().IncLikes(ctx, postID, -1)
		},
	})
}

// RecordView records that the actor viewed a post. Views are
// write-once: the first view creates the relation and bumps the post's
// views counter, later views are no-ops, and an author viewing their
// own post records nothing. Views never move a wallet.
func (s *Service) RecordView(ctx context.Context, actorID, postID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		post, err := uow.Posts().Get(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID == actorID {
			return nil
		}
		exists, err := uow.Relations().Exists(ctx, actorID, postID, ledger.RelationView)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		if err := uow.Relations().Create(ctx, ledger.Relation{
			ActorID:  actorID,
			TargetID: postID,
			Kind:     ledger.RelationView,
		}); err != nil {
			// Two first views racing: the loser's view is already
			// recorded, which is the outcome it wanted.
			if errors.Is(err, domain.ErrAlreadyExists) {
				return nil
			}
			return err
		}
		return uow.Posts().IncViews(ctx, postID, 1)
	})
}

// CreatePostInput carries the fields for a new post or comment.
type CreatePostInput struct {
	AuthorID     uuid.UUID
	Content      string
	ImageURL     string
	ParentPostID *uuid.UUID
}

// CreatePost creates a post. When ParentPostID is set the post is a
// comment: the parent's views counter is bumped and the comment reward
// is credited to the parent's author, unless the commenter is that
// author. The comment row, the counter and the credit commit in one
// transaction.
func (s *Service) CreatePost(ctx context.Context, in CreatePostInput) (*ledger.Post, error) {
	post := &ledger.Post{
		ID:           uuid.New(),
		AuthorID:     in.AuthorID,
		ParentPostID: in.ParentPostID,
		Content:      in.Content,
		ImageURL:     in.ImageURL,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if in.ParentPostID == nil {
			return uow.Posts().Create(ctx, post)
		}
		parent, err := uow.Posts().Get(ctx, *in.ParentPostID)
		if err != nil {
			return err
		}
		if parent.AuthorID != in.AuthorID {
			if _, err := uow.Users().GetForUpdate(ctx, parent.AuthorID); err != nil {
				return err
			}
		}
		if err := uow.Posts().Create(ctx, post); err != nil {
			return err
		}
		if err := uow.Posts().IncViews(ctx, parent.ID, 1); err != nil {
			return err
		}
		if parent.AuthorID != in.AuthorID {
			delta := s.policy.Delta(reward.ActionComment)
			if _, err := uow.Users().AdjustWallet(ctx, parent.AuthorID, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("post created",
		"post_id", post.ID,
		"author_id", in.AuthorID,
		"is_comment", in.ParentPostID != nil,
	)
	return post, nil
}

// IsFollowing reports whether actorID currently follows userID.
func (s *Service) IsFollowing(ctx context.Context, actorID, userID uuid.UUID) (bool, error) {
	return s.relationExists(ctx, actorID, userID, ledger.RelationFollow)
}

// HasLiked reports whether actorID currently likes postID.
func (s *Service) HasLiked(ctx context.Context, actorID, postID uuid.UUID) (bool, error) {
	return s.relationExists(ctx, actorID, postID, ledger.RelationLike)
}

func (s *Service) relationExists(ctx context.Context, actorID, targetID uuid.UUID, kind ledger.RelationKind) (exists bool, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		exists, err = uow.Relations().Exists(ctx, actorID, targetID, kind)
		return err
	})
	return exists, err
}

// Followers returns the users following userID.
func (s *Service) Followers(ctx context.Context, userID uuid.UUID) ([]ledger.UserSummary, error) {
	var out []ledger.UserSummary
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ids, err := uow.Relations().ListActors(ctx, userID, ledger.RelationFollow)
		if err != nil {
			return err
		}
		out, err = uow.Users().ListByIDs(ctx, ids)
		return err
	})
	return out, err
}

// Following returns the users userID follows.
func (s *Service) Following(ctx context.Context, userID uuid.UUID) ([]ledger.UserSummary, error) {
	var out []ledger.UserSummary
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ids, err := uow.Relations().ListTargets(ctx, userID, ledger.RelationFollow)
		if err != nil {
			return err
		}
		out, err = uow.Users().ListByIDs(ctx, ids)
		return err
	})
	return out, err
}

// Balance returns the actor's current wallet balance.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Users().Get(ctx, userID)
		if err != nil {
			return err
		}
		balance = acct.Balance
		return nil
	})
	return balance, err
}
