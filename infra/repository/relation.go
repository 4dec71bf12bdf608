package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain/ledger"
	repo "github.com/sociomart/backend/pkg/repository"
	"gorm.io/gorm"
)

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a gorm-backed repo.RelationRepository.
func NewRelationRepository(db *gorm.DB) repo.RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Exists(ctx context.Context, actorID, targetID uuid.UUID, kind ledger.RelationKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Relation{}).
		Where("actor_id = ? AND target_id = ? AND kind = ?", actorID, targetID, string(kind)).
		Count(&count).Error
	if err != nil {
		return false, mapGormError(err)
	}
	return count > 0, nil
}

func (r *relationRepository) Create(ctx context.Context, rel ledger.Relation) error {
	return wrapError(func() error {
		return r.db.WithContext(ctx).Create(&Relation{
			ActorID:  rel.ActorID,
			TargetID: rel.TargetID,
			Kind:     string(rel.Kind),
		}).Error
	})
}

func (r *relationRepository) Delete(ctx context.Context, actorID, targetID uuid.UUID, kind ledger.RelationKind) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("actor_id = ? AND target_id = ? AND kind = ?", actorID, targetID, string(kind)).
		Delete(&Relation{})
	if res.Error != nil {
		return false, mapGormError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *relationRepository) ListActors(ctx context.Context, targetID uuid.UUID, kind ledger.RelationKind) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Relation{}).
		Where("target_id = ? AND kind = ?", targetID, string(kind)).
		Order("created_at DESC").
		Pluck("actor_id", &ids).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return ids, nil
}

func (r *relationRepository) ListTargets(ctx context.Context, actorID uuid.UUID, kind ledger.RelationKind) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Relation{}).
		Where("actor_id = ? AND kind = ?", actorID, string(kind)).
		Order("created_at DESC").
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, mapGormError(err)
	}
	return ids, nil
}
