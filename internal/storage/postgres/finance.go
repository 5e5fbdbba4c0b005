package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/storage"
)

type TransactionRepository struct {
	db storage.DBTX
}

func NewTransactionRepository(db storage.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	query := `INSERT INTO transactions (id, user_id, title, amount, kind, category, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, tx.ID, tx.UserID, tx.Title, tx.Amount, tx.Kind, tx.Category, tx.OccurredAt).
		Scan(&tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return &tx, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `SELECT id, user_id, title, amount, kind, category, occurred_at, created_at
		FROM transactions WHERE user_id = $1 ORDER BY occurred_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Title, &tx.Amount, &tx.Kind, &tx.Category, &tx.OccurredAt, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	query := `UPDATE transactions
		SET title = $3, amount = $4, kind = $5, category = $6, occurred_at = $7
		WHERE id = $1 AND user_id = $2
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, tx.ID, tx.UserID, tx.Title, tx.Amount, tx.Kind, tx.Category, tx.OccurredAt).
		Scan(&tx.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return &tx, nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrTransactionNotFound
	}
	return nil
}

type GoalRepository struct {
	db storage.DBTX
}

func NewGoalRepository(db storage.DBTX) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) CreateGoal(ctx context.Context, goal models.SavingsGoal) (*models.SavingsGoal, error) {
	query := `INSERT INTO savings_goals (id, user_id, name, target_amount, saved_amount, deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.SavedAmount, goal.Deadline).
		Scan(&goal.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert savings goal: %w", err)
	}
	return &goal, nil
}

func (r *GoalRepository) ListGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	query := `SELECT id, user_id, name, target_amount, saved_amount, deadline, created_at
		FROM savings_goals WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		var goal models.SavingsGoal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.SavedAmount, &goal.Deadline, &goal.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) UpdateGoal(ctx context.Context, goal models.SavingsGoal) (*models.SavingsGoal, error) {
	query := `UPDATE savings_goals
		SET name = $3, target_amount = $4, saved_amount = $5, deadline = $6
		WHERE id = $1 AND user_id = $2
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.SavedAmount, goal.Deadline).
		Scan(&goal.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrGoalNotFound
		}
		return nil, fmt.Errorf("update savings goal: %w", err)
	}
	return &goal, nil
}

func (r *GoalRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrGoalNotFound
	}
	return nil
}
