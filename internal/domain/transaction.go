package domain

import "time"

type TransactionType string

const (
	TransactionExpense TransactionType = "EXPENSE"
	TransactionIncome  TransactionType = "INCOME"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// Transaction is a row in the external spend ledger. The monitoring core
// only ever reads it, through TransactionLedger.
type Transaction struct {
	ID          uint
	UserID      *uint
	GroupID     *uint
	AmountMinor int64
	Type        TransactionType
	Status      TransactionStatus
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
}
