package postgres

import "database/sql"

type Storage struct {
	db *sql.DB
	*UserRepository
	*TransactionRepository
	*GoalRepository
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		GoalRepository:        NewGoalRepository(db),
	}
}
