package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/finflow/budgetguard/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrAlertNotFound  = errors.New("alert not found")
)

var oneHundred = decimal.NewFromInt(100)

// StatusUsecase aggregates period spend for a budget and derives its
// spend-to-limit status.
type StatusUsecase struct {
	budgets domain.BudgetRepository
	ledger  domain.TransactionLedger
	now     func() time.Time
}

func NewStatusUsecase(budgets domain.BudgetRepository, ledger domain.TransactionLedger) *StatusUsecase {
	return &StatusUsecase{budgets: budgets, ledger: ledger, now: time.Now}
}

func (u *StatusUsecase) GetStatus(ctx context.Context, budgetID uint) (domain.SpendStatus, error) {
	budget, err := u.budgets.GetByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SpendStatus{}, ErrBudgetNotFound
		}
		return domain.SpendStatus{}, err
	}
	return u.StatusFor(ctx, budget)
}

// StatusFor computes the status snapshot for an already-loaded budget.
// Inactive budgets report zero spend without touching the ledger.
func (u *StatusUsecase) StatusFor(ctx context.Context, budget *domain.Budget) (domain.SpendStatus, error) {
	if !budget.Active {
		return CalculateStatus(0, budget.LimitMinor), nil
	}

	filter, err := budget.Filter()
	if err != nil {
		return domain.SpendStatus{}, err
	}

	spent, err := u.ledger.SumCompletedExpenses(ctx, filter, domain.CurrentMonth(u.now()))
	if err != nil {
		return domain.SpendStatus{}, err
	}

	return CalculateStatus(spent, budget.LimitMinor), nil
}

// CalculateStatus derives the status snapshot from spend and limit, both in
// minor units. PercentUsed is clamped to [0,100] and rounded to two
// decimals; RemainingMinor and OverBudget come from the raw spend, so they
// stay truthful past the clamp.
func CalculateStatus(spentMinor, limitMinor int64) domain.SpendStatus {
	return domain.SpendStatus{
		SpentMinor:     spentMinor,
		LimitMinor:     limitMinor,
		RemainingMinor: limitMinor - spentMinor,
		OverBudget:     spentMinor > limitMinor,
		PercentUsed:    percentUsed(spentMinor, limitMinor, true),
	}
}

// percentUsed computes spend as a percentage of limit, rounded to two
// decimals. A zero or negative limit always reports zero.
func percentUsed(spentMinor, limitMinor int64, clamp bool) float64 {
	if limitMinor <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(spentMinor).Mul(oneHundred).Div(decimal.NewFromInt(limitMinor))
	if clamp && pct.GreaterThan(oneHundred) {
		pct = oneHundred
	}
	return pct.Round(2).InexactFloat64()
}
