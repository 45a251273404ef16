package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ifnexus/internal/model"
)

// LikeRepository defines like persistence operations.
type LikeRepository interface {
	// LockProject takes the project row lock that serializes toggles.
	LockProject(ctx context.Context, projectID uint) error
	Exists(ctx context.Context, userID, projectID uint) (bool, error)
	Create(ctx context.Context, userID, projectID uint) error
	Delete(ctx context.Context, userID, projectID uint) error
	// SyncCounter stores the project's like count and returns it.
	SyncCounter(ctx context.Context, projectID uint) (int, error)
	LikedProjectIDs(ctx context.Context, userID uint, projectIDs []uint) (map[uint]bool, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo LikeRepository) error) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) LockProject(ctx context.Context, projectID uint) error {
	var project model.Project
	return forUpdate(r.db.WithContext(ctx)).Select("id").First(&project, projectID).Error
}

func (r *likeRepository) Exists(ctx context.Context, userID, projectID uint) (bool, error) {
	var like model.Like
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND projeto_id = ?", userID, projectID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *likeRepository) Create(ctx context.Context, userID, projectID uint) error {
	return r.db.WithContext(ctx).Create(&model.Like{UserID: userID, ProjectID: projectID}).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, projectID uint) error {
	return r.db.WithContext(ctx).
		Where("usuario_id = ? AND projeto_id = ?", userID, projectID).
		Delete(&model.Like{}).Error
}

func (r *likeRepository) SyncCounter(ctx context.Context, projectID uint) (int, error) {
	db := r.db.WithContext(ctx)
	if err := recountLikes(db, []uint{projectID}); err != nil {
		return 0, err
	}
	var project model.Project
	if err := db.Select("curtidas").First(&project, projectID).Error; err != nil {
		return 0, err
	}
	return project.Likes, nil
}

// LikedProjectIDs returns which of projectIDs the user liked.
func (r *likeRepository) LikedProjectIDs(ctx context.Context, userID uint, projectIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if userID == 0 || len(projectIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("usuario_id = ? AND projeto_id IN ?", userID, projectIDs).
		Pluck("projeto_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// WithTransaction executes a function within a database transaction.
func (r *likeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo LikeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &likeRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
