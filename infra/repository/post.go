package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sociomart/backend/pkg/domain/ledger"
	repo "github.com/sociomart/backend/pkg/repository"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a gorm-backed repo.PostRepository.
func NewPostRepository(db *gorm.DB) repo.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Get(ctx context.Context, postID uuid.UUID) (*ledger.Post, error) {
	var p Post
	if err := r.db.WithContext(ctx).First(&p, "id = ?", postID).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapPostToDomain(&p), nil
}

func (r *postRepository) Create(ctx context.Context, post *ledger.Post) error {
	row := Post{
		ID:           post.ID,
		AuthorID:     post.AuthorID,
		ParentPostID: post.ParentPostID,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
	}
	if err := wrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	}); err != nil {
		return err
	}
	post.CreatedAt = row.CreatedAt
	return nil
}

func (r *postRepository) IncLikes(ctx context.Context, postID uuid.UUID, delta int64) error {
	return r.increment(ctx, postID, "likes_count", delta)
}

func (r *postRepository) IncViews(ctx context.Context, postID uuid.UUID, delta int64) error {
	return r.increment(ctx, postID, "views_count", delta)
}

func (r *postRepository) increment(ctx context.Context, postID uuid.UUID, column string, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return mapGormError(gorm.ErrRecordNotFound)
	}
	return nil
}

func mapPostToDomain(p *Post) *ledger.Post {
	return &ledger.Post{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		ParentPostID: p.ParentPostID,
		Content:      p.Content,
		ImageURL:     p.ImageURL,
		LikesCount:   p.LikesCount,
		ViewsCount:   p.ViewsCount,
		CreatedAt:    p.CreatedAt,
	}
}
