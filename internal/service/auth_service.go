package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"ifnexus/internal/auth"
	apperrors "ifnexus/internal/errors"
	"ifnexus/internal/metrics"
	"ifnexus/internal/model"
	"ifnexus/internal/repository"
	"ifnexus/internal/suap"
)

const bcryptCost = 10

// SUAPProvider is the part of the SUAP client the auth flow needs.
type SUAPProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (*suap.Profile, error)
}

// ProfileCache drops cached user profiles.
type ProfileCache interface {
	ForgetProfiles(ctx context.Context, ids ...uint)
}

// SessionToken is a signed session ready to be set as a cookie.
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password, confirm string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*SessionToken, *model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	SUAPAuthURL(state string) string
	// LoginWithSUAP finishes the SUAP flow. When currentUserID names a
	// different logged in account, that account is merged into the SUAP one.
	LoginWithSUAP(ctx context.Context, code string, currentUserID uint) (*SessionToken, *model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	suap       SUAPProvider
	profiles   ProfileCache
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	suapProvider SUAPProvider,
	profiles ProfileCache,
	m *metrics.Metrics,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		suap:       suapProvider,
		profiles:   profiles,
		metrics:    m,
		logger:     log.With().Str("component", "auth").Logger(),
	}
}

// Register creates a local account with role Visitante.
func (s *authService) Register(ctx context.Context, name, email, password, confirm string) (*model.User, error) {
	if password != confirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	email = strings.TrimSpace(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleGuest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login checks the password and issues a session. Unknown emails and wrong
// passwords fail the same way.
func (s *authService) Login(ctx context.Context, email, password string) (*SessionToken, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		s.metrics.Login("local", false)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.Login("local", false)
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	s.metrics.Login("local", true)
	return session, user, nil
}

// Logout revokes the session until it would have expired.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return nil
	}
	if err := s.tokenStore.RevokeSession(ctx, claims.ID, s.jwtService.Remaining(claims)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) SUAPAuthURL(state string) string {
	return s.suap.AuthCodeURL(state)
}

func (s *authService) LoginWithSUAP(ctx context.Context, code string, currentUserID uint) (*SessionToken, *model.User, error) {
	if code == "" {
		return nil, nil, apperrors.ErrSUAPNoCode
	}

	token, err := s.suap.Exchange(ctx, code)
	if err != nil {
		s.metrics.Login("suap", false)
		return nil, nil, err
	}
	profile, err := s.suap.FetchProfile(ctx, token)
	if err != nil {
		s.metrics.Login("suap", false)
		return nil, nil, err
	}

	user, err := s.findOrCreateFederated(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	if currentUserID != 0 && currentUserID != user.ID {
		if err := s.mergeInto(ctx, currentUserID, user.ID); err != nil {
			return nil, nil, err
		}
	}

	session, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	s.metrics.Login("suap", true)
	return session, user, nil
}

// findOrCreateFederated looks the profile up by email. SUAP attributes are
// only copied when the account is first created.
func (s *authService) findOrCreateFederated(ctx context.Context, profile *suap.Profile) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()+uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}

	user = &model.User{
		Name:         profile.DisplayName(),
		Email:        profile.Email,
		PasswordHash: string(placeholder),
		Enrollment:   profile.Enrollment,
		BirthDate:    profile.BirthDate,
		CPF:          profile.CPF,
		Role:         profile.Role,
		Campus:       profile.Campus,
		Photo:        profile.Photo,
	}
	if user.Role == "" {
		user.Role = model.RoleGuest
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create federated user: %w", err)
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("federated user created")
	return user, nil
}

// mergeInto moves everything fromID owns to toID and deletes fromID.
func (s *authService) mergeInto(ctx context.Context, fromID, toID uint) error {
	err := s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if _, err := repo.FindByID(ctx, fromID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := repo.ReassignComments(ctx, fromID, toID); err != nil {
			return fmt.Errorf("reassign comments: %w", err)
		}
		if err := repo.ReassignLikes(ctx, fromID, toID); err != nil {
			return fmt.Errorf("reassign likes: %w", err)
		}
		if err := repo.ReassignProjects(ctx, fromID, toID); err != nil {
			return fmt.Errorf("reassign projects: %w", err)
		}
		if err := repo.ReassignAuthors(ctx, fromID, toID); err != nil {
			return fmt.Errorf("reassign authors: %w", err)
		}
		if err := repo.Delete(ctx, fromID); err != nil {
			return fmt.Errorf("delete merged user: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("merge user %d into %d: %w", fromID, toID, err)
	}
	if s.profiles != nil {
		s.profiles.ForgetProfiles(ctx, fromID, toID)
	}

	s.logger.Info().Uint("from", fromID).Uint("to", toID).Msg("account merged into SUAP account")
	return nil
}

func (s *authService) issueSession(user *model.User) (*SessionToken, error) {
	_, token, expiresAt, err := s.jwtService.GenerateSessionToken(auth.Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	return &SessionToken{Token: token, ExpiresAt: expiresAt}, nil
}
