package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")

	// ErrDuplicateAlert reports that an equivalent alert row already exists
	// for this period. Dispatchers treat it as "already sent", not a failure.
	ErrDuplicateAlert = errors.New("duplicate alert")
)

type BudgetRepository interface {
	GetByID(ctx context.Context, budgetID uint) (*Budget, error)
	ListActive(ctx context.Context) ([]Budget, error)
}

type GroupRepository interface {
	GetByID(ctx context.Context, groupID uint) (*Group, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, userID uint) (*User, error)
}

type AlertRepository interface {
	// Create inserts a new alert row. Returns ErrDuplicateAlert when the
	// (user, budget, channel, threshold, period) row already exists.
	Create(ctx context.Context, alert *Alert) error
	HasSentSince(ctx context.Context, budgetID uint, threshold int, since time.Time) (bool, error)
	ListByUser(ctx context.Context, userID uint, filter AlertFilter) ([]AlertView, error)
	Acknowledge(ctx context.Context, alertID, userID uint) (*Alert, error)
}

// TransactionLedger is the read-only query surface over the spend ledger.
type TransactionLedger interface {
	SumCompletedExpenses(ctx context.Context, filter ScopeFilter, period Period) (int64, error)
}

// RecipientResolver maps a budget to the people notified about it: the
// individual owner, or every current member of the owning group. Resolution
// happens at evaluation time so membership changes show up on the next check.
type RecipientResolver interface {
	RecipientsFor(ctx context.Context, budget *Budget) ([]Recipient, error)
}
