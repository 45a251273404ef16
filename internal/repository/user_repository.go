package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"ifnexus/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SearchByName(ctx context.Context, query string, limit int) ([]model.User, error)
	Delete(ctx context.Context, id uint) error
	// Account merge, used inside WithTransaction.
	ReassignComments(ctx context.Context, fromID, toID uint) error
	ReassignLikes(ctx context.Context, fromID, toID uint) error
	ReassignProjects(ctx context.Context, fromID, toID uint) error
	ReassignAuthors(ctx context.Context, fromID, toID uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchByName matches a case-insensitive substring of the user's name.
func (r *userRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.User, error) {
	var users []model.User
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(nome) LIKE ?", pattern).
		Order("nome").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) ReassignComments(ctx context.Context, fromID, toID uint) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("usuario_id = ?", fromID).
		Update("usuario_id", toID).Error
}

// ReassignLikes moves likes to toID. Likes on projects toID already liked are
// dropped, and the counters of every touched project are recomputed.
func (r *userRepository) ReassignLikes(ctx context.Context, fromID, toID uint) error {
	db := r.db.WithContext(ctx)

	var touched []uint
	if err := db.Model(&model.Like{}).Where("usuario_id = ?", fromID).Pluck("projeto_id", &touched).Error; err != nil {
		return err
	}
	if len(touched) == 0 {
		return nil
	}

	var alreadyLiked []uint
	if err := db.Model(&model.Like{}).Where("usuario_id = ?", toID).Pluck("projeto_id", &alreadyLiked).Error; err != nil {
		return err
	}
	if len(alreadyLiked) > 0 {
		if err := db.Where("usuario_id = ? AND projeto_id IN ?", fromID, alreadyLiked).Delete(&model.Like{}).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&model.Like{}).Where("usuario_id = ?", fromID).Update("usuario_id", toID).Error; err != nil {
		return err
	}
	return recountLikes(db, touched)
}

func (r *userRepository) ReassignProjects(ctx context.Context, fromID, toID uint) error {
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("usuario_id = ?", fromID).
		Update("usuario_id", toID).Error
}

// ReassignAuthors moves author rows to toID, dropping those on projects where
// toID is already an author.
func (r *userRepository) ReassignAuthors(ctx context.Context, fromID, toID uint) error {
	db := r.db.WithContext(ctx)

	var authored []uint
	if err := db.Model(&model.Author{}).Where("usuario_id = ?", toID).Pluck("projeto_id", &authored).Error; err != nil {
		return err
	}
	if len(authored) > 0 {
		if err := db.Where("usuario_id = ? AND projeto_id IN ?", fromID, authored).Delete(&model.Author{}).Error; err != nil {
			return err
		}
	}

	return db.Model(&model.Author{}).
		Where("usuario_id = ?", fromID).
		Update("usuario_id", toID).Error
}

// WithTransaction executes a function within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &userRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
