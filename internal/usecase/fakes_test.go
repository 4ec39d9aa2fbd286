package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/finflow/budgetguard/internal/domain"
)

type fakeBudgetRepo struct {
	budgets map[uint]domain.Budget
}

func newFakeBudgetRepo(budgets ...domain.Budget) *fakeBudgetRepo {
	repo := &fakeBudgetRepo{budgets: make(map[uint]domain.Budget)}
	for _, budget := range budgets {
		repo.budgets[budget.ID] = budget
	}
	return repo
}

func (f *fakeBudgetRepo) GetByID(_ context.Context, budgetID uint) (*domain.Budget, error) {
	budget, ok := f.budgets[budgetID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &budget, nil
}

func (f *fakeBudgetRepo) ListActive(_ context.Context) ([]domain.Budget, error) {
	var active []domain.Budget
	for _, budget := range f.budgets {
		if budget.Active {
			active = append(active, budget)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

type ledgerCall struct {
	filter domain.ScopeFilter
	period domain.Period
}

type fakeLedger struct {
	total int64
	err   error
	calls []ledgerCall
}

func (f *fakeLedger) SumCompletedExpenses(_ context.Context, filter domain.ScopeFilter, period domain.Period) (int64, error) {
	f.calls = append(f.calls, ledgerCall{filter: filter, period: period})
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

type fakeAlertRepo struct {
	alerts    []domain.Alert
	nextID    uint
	createErr error
	now       func() time.Time
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{now: time.Now}
}

func (f *fakeAlertRepo) Create(_ context.Context, alert *domain.Alert) error {
	if f.createErr != nil {
		return f.createErr
	}
	// Mirrors the storage layer's partial unique index: only SENT rows
	// participate in dedup.
	if alert.Status == domain.AlertSent {
		for _, existing := range f.alerts {
			if existing.Status == domain.AlertSent &&
				existing.UserID == alert.UserID &&
				existing.BudgetID == alert.BudgetID &&
				existing.Channel == alert.Channel &&
				existing.Threshold == alert.Threshold &&
				existing.PeriodKey == alert.PeriodKey {
				return domain.ErrDuplicateAlert
			}
		}
	}
	f.nextID++
	alert.ID = f.nextID
	alert.CreatedAt = f.now()
	f.alerts = append(f.alerts, *alert)
	return nil
}

func (f *fakeAlertRepo) HasSentSince(_ context.Context, budgetID uint, threshold int, since time.Time) (bool, error) {
	for _, alert := range f.alerts {
		if alert.BudgetID == budgetID &&
			alert.Threshold == threshold &&
			alert.Status == domain.AlertSent &&
			!alert.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAlertRepo) ListByUser(_ context.Context, userID uint, filter domain.AlertFilter) ([]domain.AlertView, error) {
	var views []domain.AlertView
	for _, alert := range f.alerts {
		if alert.UserID != userID {
			continue
		}
		if filter.BudgetID != nil && alert.BudgetID != *filter.BudgetID {
			continue
		}
		if filter.Status != nil && alert.Status != *filter.Status {
			continue
		}
		if filter.Threshold != nil && alert.Threshold != *filter.Threshold {
			continue
		}
		views = append(views, domain.AlertView{Alert: alert})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })
	if filter.Limit > 0 && len(views) > filter.Limit {
		views = views[:filter.Limit]
	}
	return views, nil
}

func (f *fakeAlertRepo) Acknowledge(_ context.Context, alertID, userID uint) (*domain.Alert, error) {
	for i, alert := range f.alerts {
		if alert.ID == alertID && alert.UserID == userID {
			f.alerts[i].Acknowledged = true
			acked := f.alerts[i]
			return &acked, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAlertRepo) byChannel(channel domain.AlertChannel) []domain.Alert {
	var matched []domain.Alert
	for _, alert := range f.alerts {
		if alert.Channel == channel {
			matched = append(matched, alert)
		}
	}
	return matched
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID uint) (*domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

type fakeResolver struct {
	recipients []domain.Recipient
	err        error
}

func (f *fakeResolver) RecipientsFor(_ context.Context, _ *domain.Budget) ([]domain.Recipient, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recipients, nil
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailSender) SendEmail(_ context.Context, address, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{To: address, Subject: subject, Body: body})
	return nil
}

type sentSMS struct {
	To      string
	Message string
}

type fakeSMSSender struct {
	sent []sentSMS
	err  error
}

func (f *fakeSMSSender) SendSMS(_ context.Context, phoneNumber, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentSMS{To: phoneNumber, Message: message})
	return nil
}
