package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"ifnexus/internal/cache"
	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/model"
	"ifnexus/internal/repository"
	"ifnexus/internal/storage"
)

const (
	userCacheTTL     = 5 * time.Minute
	suggestionsLimit = 8
)

// UserService exposes the user pages.
type UserService interface {
	MyProjects(ctx context.Context, userID uint) ([]ProjectView, error)
	LikedProjects(ctx context.Context, userID uint) ([]ProjectView, error)
	Profile(ctx context.Context, id uint) (*model.User, error)
	ChangePhoto(ctx context.Context, userID uint, photo *storage.File) (*model.User, error)
	SearchUsers(ctx context.Context, query string) ([]UserSuggestion, error)
	ProfileCache
}

type userService struct {
	repo        repository.UserRepository
	projectRepo repository.ProjectRepository
	likeRepo    repository.LikeRepository
	store       storage.Store
	cache       *cache.Client
}

// NewUserService builds a UserService with repositories, upload storage and cache.
func NewUserService(
	repo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	likeRepo repository.LikeRepository,
	store storage.Store,
	cache *cache.Client,
) UserService {
	return &userService{
		repo:        repo,
		projectRepo: projectRepo,
		likeRepo:    likeRepo,
		store:       store,
		cache:       cache,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// ForgetProfiles drops the cached profiles of ids.
func (s *userService) ForgetProfiles(ctx context.Context, ids ...uint) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.cacheKey(id))
	}
	_ = s.cache.Delete(ctx, keys...)
}

// MyProjects lists projects the user owns or co-authors.
func (s *userService) MyProjects(ctx context.Context, userID uint) ([]ProjectView, error) {
	projects, err := s.projectRepo.ListByCollaborator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user projects: %w", err)
	}
	liked, err := s.likeRepo.LikedProjectIDs(ctx, userID, projectIDs(projects))
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	for i := range projects {
		projects[i].UserLiked = liked[projects[i].ID]
	}
	return newProjectViews(projects, s.store), nil
}

func (s *userService) LikedProjects(ctx context.Context, userID uint) ([]ProjectView, error) {
	projects, err := s.projectRepo.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked projects: %w", err)
	}
	for i := range projects {
		projects[i].UserLiked = true
	}
	return newProjectViews(projects, s.store), nil
}

func (s *userService) Profile(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	_ = s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

// ChangePhoto replaces the user's profile photo.
func (s *userService) ChangePhoto(ctx context.Context, userID uint, photo *storage.File) (*model.User, error) {
	if photo == nil || photo.Content == nil || photo.Name == "" {
		return nil, apperrors.ErrNoPhoto
	}
	mtype, err := storage.Detect(*photo)
	if err != nil {
		return nil, err
	}
	if !storage.IsImage(mtype) {
		return nil, apperrors.ErrInvalidImage
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	key := storage.UserPhotoKey(userID)
	if err := s.store.Put(ctx, key, photo.Content, mtype.String()); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	user.Photo = s.store.URL(key)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}

// SearchUsers backs the co-author picker. A blank query matches nobody.
func (s *userService) SearchUsers(ctx context.Context, query string) ([]UserSuggestion, error) {
	suggestions := []UserSuggestion{}
	query = strings.TrimSpace(query)
	if query == "" {
		return suggestions, nil
	}

	users, err := s.repo.SearchByName(ctx, query, suggestionsLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	for _, u := range users {
		suggestions = append(suggestions, UserSuggestion{ID: u.ID, Name: u.Name, Enrollment: u.Enrollment})
	}
	return suggestions, nil
}

func projectIDs(projects []model.Project) []uint {
	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}
