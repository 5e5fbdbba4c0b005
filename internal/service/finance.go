package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/storage"
)

// FinanceService is thin glue over the transaction and goal repositories;
// every operation is scoped to the authenticated user.
type FinanceService struct {
	transactions storage.TransactionRepository
	goals        storage.GoalRepository
}

func NewFinanceService(transactions storage.TransactionRepository, goals storage.GoalRepository) *FinanceService {
	return &FinanceService{transactions: transactions, goals: goals}
}

func (s *FinanceService) CreateTransaction(ctx context.Context, userID string, req models.TransactionRequest) (*models.Transaction, error) {
	tx, err := s.transactions.CreateTransaction(ctx, models.Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      req.Title,
		Amount:     req.Amount,
		Kind:       req.Kind,
		Category:   req.Category,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

func (s *FinanceService) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.transactions.ListTransactions(ctx, userID)
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, userID, id string, req models.TransactionRequest) (*models.Transaction, error) {
	return s.transactions.UpdateTransaction(ctx, models.Transaction{
		ID:         id,
		UserID:     userID,
		Title:      req.Title,
		Amount:     req.Amount,
		Kind:       req.Kind,
		Category:   req.Category,
		OccurredAt: req.OccurredAt,
	})
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.transactions.DeleteTransaction(ctx, userID, id)
}

func (s *FinanceService) CreateGoal(ctx context.Context, userID string, req models.SavingsGoalRequest) (*models.SavingsGoal, error) {
	goal, err := s.goals.CreateGoal(ctx, models.SavingsGoal{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("create savings goal: %w", err)
	}
	return goal, nil
}

func (s *FinanceService) ListGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	return s.goals.ListGoals(ctx, userID)
}

func (s *FinanceService) UpdateGoal(ctx context.Context, userID, id string, req models.SavingsGoalRequest) (*models.SavingsGoal, error) {
	return s.goals.UpdateGoal(ctx, models.SavingsGoal{
		ID:           id,
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		Deadline:     req.Deadline,
	})
}

func (s *FinanceService) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.goals.DeleteGoal(ctx, userID, id)
}
