package models

import "time"

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

type Transaction struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Title      string    `json:"title"`
	Amount     float64   `json:"amount"`
	Kind       string    `json:"kind"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SavingsGoal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"-"`
	Name         string     `json:"name"`
	TargetAmount float64    `json:"targetAmount"`
	SavedAmount  float64    `json:"savedAmount"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type TransactionRequest struct {
	Title      string    `json:"title"`
	Amount     float64   `json:"amount"`
	Kind       string    `json:"kind"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurredAt"`
}

type SavingsGoalRequest struct {
	Name         string     `json:"name"`
	TargetAmount float64    `json:"targetAmount"`
	SavedAmount  float64    `json:"savedAmount"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}
