package db

import (
	"context"

	"github.com/finflow/budgetguard/internal/domain"
	"gorm.io/gorm"
)

// LedgerRepository is the read-only query surface over the transactions
// table. The monitoring core never writes transactions.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) SumCompletedExpenses(ctx context.Context, filter domain.ScopeFilter, period domain.Period) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&transactionModel{}).
		Where("type = ? AND status = ?", string(domain.TransactionExpense), string(domain.TransactionCompleted)).
		Where("occurred_at BETWEEN ? AND ?", period.Start, period.End)

	if userID, ok := filter.User(); ok {
		query = query.Where("user_id = ?", userID)
	} else if groupID, ok := filter.Group(); ok {
		query = query.Where("group_id = ?", groupID)
	} else {
		return 0, domain.ErrBadRequest
	}

	var total int64
	if err := query.Select("COALESCE(SUM(amount_minor), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
