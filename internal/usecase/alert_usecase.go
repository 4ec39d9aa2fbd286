package usecase

import (
	"context"
	"errors"

	"github.com/finflow/budgetguard/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

// AlertUsecase is the query surface over the alert ledger.
type AlertUsecase struct {
	alerts domain.AlertRepository
	users  domain.UserRepository
}

func NewAlertUsecase(alerts domain.AlertRepository, users domain.UserRepository) *AlertUsecase {
	return &AlertUsecase{alerts: alerts, users: users}
}

// ListAlerts returns the recipient's alerts, newest first. A missing or
// non-positive page size falls back to the default of 50.
func (u *AlertUsecase) ListAlerts(ctx context.Context, userID uint, filter domain.AlertFilter) ([]domain.AlertView, error) {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultAlertPageSize
	}
	return u.alerts.ListByUser(ctx, userID, filter)
}

// AcknowledgeAlert marks an alert as read. Only the owning recipient may
// acknowledge; anyone else gets ErrAlertNotFound, same as a missing row.
func (u *AlertUsecase) AcknowledgeAlert(ctx context.Context, alertID, userID uint) (*domain.Alert, error) {
	alert, err := u.alerts.Acknowledge(ctx, alertID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return alert, nil
}
