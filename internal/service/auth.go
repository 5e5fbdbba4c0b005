package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/storage"
)

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrRefreshTokenInvalid    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// AuthService drives the signup/login/refresh/logout state machine. Every
// token mutation runs under the per-user lock: load the record, transform the
// collection in memory, persist it whole.
type AuthService struct {
	tokens    *TokenService
	users     storage.UserRepository
	locks     storage.UserLocker
	hasher    PasswordHasher
	log       *zap.SugaredLogger
	maxTokens int
}

func NewAuthService(
	tokens *TokenService,
	users storage.UserRepository,
	locks storage.UserLocker,
	hasher PasswordHasher,
	log *zap.SugaredLogger,
	maxTokens int,
) *AuthService {
	return &AuthService{
		tokens:    tokens,
		users:     users,
		locks:     locks,
		hasher:    hasher,
		log:       log,
		maxTokens: maxTokens,
	}
}

func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.TokenPairResponse, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	pair.User = &summary
	return pair, nil
}

func (s *AuthService) LogIn(ctx context.Context, req models.LogInRequest) (*models.TokenPairResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	pair.User = &summary
	return pair, nil
}

// Refresh rotates a refresh token: the submitted token is consumed whether or
// not it is still valid, and a new pair is issued only for a live match.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*models.TokenPairResponse, error) {
	tokenHash := s.tokens.HashRefreshToken(rawToken)

	user, err := s.users.FindUserByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("find user by token hash: %w", err)
	}

	release, err := s.locks.LockUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	fresh, err := s.users.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}

	entry := FindByTokenHash(fresh.RefreshTokens, tokenHash)
	if entry == nil {
		// Consumed by a concurrent refresh after our lookup.
		s.log.Debugw("refresh token consumed concurrently", "userID", user.ID)
		return nil, ErrRefreshTokenInvalid
	}

	now := time.Now()
	entries, _ := RemoveByTokenHash(fresh.RefreshTokens, tokenHash)

	if !entry.ExpiresAt.After(now) {
		// Dead entry: drop it, along with anything else past expiry.
		if err := s.users.UpdateRefreshTokens(ctx, user.ID, PruneExpired(entries, now)); err != nil {
			return nil, fmt.Errorf("persist refresh tokens: %w", err)
		}
		return nil, ErrRefreshTokenExpired
	}

	pair, entries, err := s.mintPair(user.ID, PruneExpired(entries, now), now)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRefreshTokens(ctx, user.ID, entries); err != nil {
		return nil, fmt.Errorf("persist refresh tokens: %w", err)
	}
	return pair, nil
}

// LogOut removes the matching entry if one exists. It succeeds either way and
// does not reveal which case occurred.
func (s *AuthService) LogOut(ctx context.Context, rawToken string) error {
	tokenHash := s.tokens.HashRefreshToken(rawToken)

	user, err := s.users.FindUserByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("find user by token hash: %w", err)
	}

	release, err := s.locks.LockUser(ctx, user.ID)
	if err != nil {
		return err
	}
	defer release()

	fresh, err := s.users.GetUserByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("reload user: %w", err)
	}

	entries, removed := RemoveByTokenHash(fresh.RefreshTokens, tokenHash)
	if !removed {
		return nil
	}
	if err := s.users.UpdateRefreshTokens(ctx, user.ID, entries); err != nil {
		return fmt.Errorf("persist refresh tokens: %w", err)
	}
	return nil
}

// issueTokens runs a full prune → limit → attach issuance for the user under
// the per-user lock.
func (s *AuthService) issueTokens(ctx context.Context, userID string) (*models.TokenPairResponse, error) {
	release, err := s.locks.LockUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	fresh, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}

	now := time.Now()
	pair, entries, err := s.mintPair(userID, PruneExpired(fresh.RefreshTokens, now), now)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRefreshTokens(ctx, userID, entries); err != nil {
		return nil, fmt.Errorf("persist refresh tokens: %w", err)
	}
	return pair, nil
}

// mintPair transforms an already-pruned collection: evict down to capacity,
// attach the new entry, mint the access token. The collection stays within
// the configured maximum after the attach.
func (s *AuthService) mintPair(userID string, entries []models.RefreshTokenEntry, now time.Time) (*models.TokenPairResponse, []models.RefreshTokenEntry, error) {
	entries = EnforceLimit(entries, s.maxTokens-1)

	rawRefresh, err := s.tokens.NewRefreshTokenValue()
	if err != nil {
		return nil, nil, err
	}
	entries = Attach(entries, s.tokens.HashRefreshToken(rawRefresh), s.tokens.RefreshTTL(), now)

	accessToken, err := s.tokens.CreateAccessToken(userID, now)
	if err != nil {
		return nil, nil, err
	}

	return &models.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
	}, entries, nil
}
