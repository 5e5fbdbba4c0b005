package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rtomilin/pennywise/internal/models"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGoalNotFound        = errors.New("savings goal not found")
)

type Storage interface {
	UserRepository
	TransactionRepository
	GoalRepository
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByTokenHash locates the user holding a refresh-token entry with
	// the given digest. Returns ErrUserNotFound when no user holds it.
	FindUserByTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	// UpdateRefreshTokens persists the whole refresh-token collection for the
	// user. Callers serialize per-user writes through a UserLocker.
	UpdateRefreshTokens(ctx context.Context, userID string, tokens []models.RefreshTokenEntry) error
}

// UserLocker serializes refresh-token mutations for a single user across
// concurrent requests (and across instances, for the Redis implementation).
// Lock blocks until the lock is held or ctx is done; the returned func
// releases it.
type UserLocker interface {
	LockUser(ctx context.Context, userID string) (func(), error)
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

type GoalRepository interface {
	CreateGoal(ctx context.Context, goal models.SavingsGoal) (*models.SavingsGoal, error)
	ListGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error)
	UpdateGoal(ctx context.Context, goal models.SavingsGoal) (*models.SavingsGoal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
}

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
