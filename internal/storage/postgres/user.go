package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/storage"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db storage.DBTX
}

func NewUserRepository(db storage.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	tokens, err := json.Marshal(user.RefreshTokens)
	if err != nil {
		return nil, fmt.Errorf("marshal refresh tokens: %w", err)
	}

	query := `INSERT INTO users (id, name, email, password_hash, refresh_tokens)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, refresh_tokens, created_at`
	row := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, tokens)

	created, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, storage.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, refresh_tokens, created_at FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, refresh_tokens, created_at FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// FindUserByTokenHash uses jsonb containment so the GIN index on
// refresh_tokens is usable.
func (r *UserRepository) FindUserByTokenHash(ctx context.Context, tokenHash string) (*models.User, error) {
	probe, err := json.Marshal([]map[string]string{{"token_hash": tokenHash}})
	if err != nil {
		return nil, fmt.Errorf("marshal token probe: %w", err)
	}

	query := `SELECT id, name, email, password_hash, refresh_tokens, created_at FROM users WHERE refresh_tokens @> $1::jsonb`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, probe))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by token hash: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateRefreshTokens(ctx context.Context, userID string, tokens []models.RefreshTokenEntry) error {
	if tokens == nil {
		tokens = []models.RefreshTokenEntry{}
	}
	raw, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("marshal refresh tokens: %w", err)
	}

	query := `UPDATE users SET refresh_tokens = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, raw)
	if err != nil {
		return fmt.Errorf("update refresh tokens: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		user models.User
		raw  []byte
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &raw, &user.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &user.RefreshTokens); err != nil {
		return nil, fmt.Errorf("unmarshal refresh tokens: %w", err)
	}
	return &user, nil
}
