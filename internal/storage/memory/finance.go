package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/storage"
)

type InMemoryFinanceManager struct {
	mu           sync.RWMutex
	transactions map[string]models.Transaction
	goals        map[string]models.SavingsGoal
}

func NewFinanceRepository() *InMemoryFinanceManager {
	return &InMemoryFinanceManager{
		transactions: make(map[string]models.Transaction),
		goals:        make(map[string]models.SavingsGoal),
	}
}

func (m *InMemoryFinanceManager) CreateTransaction(_ context.Context, tx models.Transaction) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transactions[tx.ID] = tx
	return &tx, nil
}

func (m *InMemoryFinanceManager) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txs := []models.Transaction{}
	for _, tx := range m.transactions {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].OccurredAt.After(txs[j].OccurredAt) })
	return txs, nil
}

func (m *InMemoryFinanceManager) UpdateTransaction(_ context.Context, tx models.Transaction) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.transactions[tx.ID]
	if !ok || existing.UserID != tx.UserID {
		return nil, storage.ErrTransactionNotFound
	}
	tx.CreatedAt = existing.CreatedAt
	m.transactions[tx.ID] = tx
	return &tx, nil
}

func (m *InMemoryFinanceManager) DeleteTransaction(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.transactions[id]
	if !ok || existing.UserID != userID {
		return storage.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *InMemoryFinanceManager) CreateGoal(_ context.Context, goal models.SavingsGoal) (*models.SavingsGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.goals[goal.ID] = goal
	return &goal, nil
}

func (m *InMemoryFinanceManager) ListGoals(_ context.Context, userID string) ([]models.SavingsGoal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	goals := []models.SavingsGoal{}
	for _, goal := range m.goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].CreatedAt.Before(goals[j].CreatedAt) })
	return goals, nil
}

func (m *InMemoryFinanceManager) UpdateGoal(_ context.Context, goal models.SavingsGoal) (*models.SavingsGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return nil, storage.ErrGoalNotFound
	}
	goal.CreatedAt = existing.CreatedAt
	m.goals[goal.ID] = goal
	return &goal, nil
}

func (m *InMemoryFinanceManager) DeleteGoal(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.goals[id]
	if !ok || existing.UserID != userID {
		return storage.ErrGoalNotFound
	}
	delete(m.goals, id)
	return nil
}
