package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/metrics"
	"ifnexus/internal/model"
	"ifnexus/internal/repository"
)

// LikeState is the outcome of a like toggle.
type LikeState struct {
	Liked bool `json:"liked"`
	Likes int  `json:"curtidas"`
}

// InteractionService handles comments and likes.
type InteractionService interface {
	AddComment(ctx context.Context, userID, projectID uint, content string) (*model.Comment, error)
	ToggleLike(ctx context.Context, userID, projectID uint) (*LikeState, error)
}

type interactionService struct {
	projectRepo repository.ProjectRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	showcase    ShowcaseInvalidator
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewInteractionService creates a new interaction service.
func NewInteractionService(
	projectRepo repository.ProjectRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	showcase ShowcaseInvalidator,
	m *metrics.Metrics,
) InteractionService {
	return &interactionService{
		projectRepo: projectRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		showcase:    showcase,
		metrics:     m,
		logger:      log.With().Str("component", "interactions").Logger(),
	}
}

func (s *interactionService) AddComment(ctx context.Context, userID, projectID uint, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyComment
	}

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	comment := &model.Comment{
		Content:   content,
		UserID:    userID,
		ProjectID: projectID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.metrics.Comment()
	s.logger.Debug().Uint("project_id", projectID).Uint("user_id", userID).Msg("comment added")
	return comment, nil
}

// ToggleLike likes the project if the user has not yet, and unlikes it
// otherwise. The project row lock serializes concurrent toggles.
func (s *interactionService) ToggleLike(ctx context.Context, userID, projectID uint) (*LikeState, error) {
	var state LikeState
	err := s.likeRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.LikeRepository) error {
		if err := repo.LockProject(ctx, projectID); err != nil {
			return err
		}

		exists, err := repo.Exists(ctx, userID, projectID)
		if err != nil {
			return fmt.Errorf("check like: %w", err)
		}
		if exists {
			if err := repo.Delete(ctx, userID, projectID); err != nil {
				return fmt.Errorf("delete like: %w", err)
			}
		} else if err := repo.Create(ctx, userID, projectID); err != nil {
			return fmt.Errorf("create like: %w", err)
		}

		count, err := repo.SyncCounter(ctx, projectID)
		if err != nil {
			return fmt.Errorf("sync like counter: %w", err)
		}
		state = LikeState{Liked: !exists, Likes: count}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}

	s.metrics.Like(state.Liked)
	s.showcase.InvalidateShowcase(ctx)
	return &state, nil
}
