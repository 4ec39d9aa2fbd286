package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finflow/budgetguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var checkTime = time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

type monitorFixture struct {
	monitor *Monitor
	budgets *fakeBudgetRepo
	ledger  *fakeLedger
	alerts  *fakeAlertRepo
	email   *fakeEmailSender
	sms     *fakeSMSSender
}

func newMonitorFixture(t *testing.T, budget domain.Budget, spent int64, recipients []domain.Recipient) *monitorFixture {
	t.Helper()

	budgets := newFakeBudgetRepo(budget)
	ledger := &fakeLedger{total: spent}
	alerts := newFakeAlertRepo()
	alerts.now = func() time.Time { return checkTime }
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}

	status := NewStatusUsecase(budgets, ledger)
	status.now = func() time.Time { return checkTime }

	monitor := NewMonitor(budgets, status, alerts, &fakeResolver{recipients: recipients}, email, sms, zap.NewNop())
	monitor.now = func() time.Time { return checkTime }

	return &monitorFixture{monitor: monitor, budgets: budgets, ledger: ledger, alerts: alerts, email: email, sms: sms}
}

func individualBudget(limit int64) domain.Budget {
	return domain.Budget{
		ID:         1,
		Scope:      domain.ScopeIndividual,
		UserID:     uintPtr(7),
		Name:       "Groceries",
		LimitMinor: limit,
		Active:     true,
	}
}

func TestCheckThresholds_FiresQualifyingThresholds(t *testing.T) {
	// $475.00 of $500.00 is 95%: 70 and 90 cross, 100 does not.
	recipient := domain.Recipient{UserID: 7, Name: "Ann", Email: "ann@example.com"}
	fx := newMonitorFixture(t, individualBudget(50000), 47500, []domain.Recipient{recipient})

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))

	require.Len(t, fx.alerts.alerts, 2)
	thresholds := []int{fx.alerts.alerts[0].Threshold, fx.alerts.alerts[1].Threshold}
	assert.ElementsMatch(t, []int{70, 90}, thresholds)
	for _, alert := range fx.alerts.alerts {
		assert.Equal(t, domain.AlertSent, alert.Status)
		assert.Equal(t, domain.ChannelEmail, alert.Channel)
		assert.NotNil(t, alert.SentAt)
		assert.Equal(t, int64(47500), alert.SpentMinor)
		assert.Equal(t, int64(50000), alert.LimitMinor)
		assert.InDelta(t, 95.00, alert.PercentUsed, 0.0001)
		assert.Equal(t, "2026-09", alert.PeriodKey)
	}
	assert.Len(t, fx.email.sent, 2)
	assert.Empty(t, fx.sms.sent)
}

func TestCheckThresholds_RepeatedCheckIsIdempotent(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Email: "ann@example.com"}
	fx := newMonitorFixture(t, individualBudget(50000), 47500, []domain.Recipient{recipient})

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))
	require.Len(t, fx.alerts.alerts, 2)

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))
	assert.Len(t, fx.alerts.alerts, 2, "unchanged spend must not produce new alerts")
	assert.Len(t, fx.email.sent, 2)
}

func TestCheckThresholds_AlreadySentThresholdSkipped(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Email: "ann@example.com"}
	fx := newMonitorFixture(t, individualBudget(50000), 47500, []domain.Recipient{recipient})

	sentAt := checkTime.Add(-24 * time.Hour)
	require.NoError(t, fx.alerts.Create(context.Background(), &domain.Alert{
		UserID:    7,
		BudgetID:  1,
		Channel:   domain.ChannelEmail,
		Threshold: 90,
		Status:    domain.AlertSent,
		SentAt:    &sentAt,
		PeriodKey: "2026-09",
	}))

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))

	require.Len(t, fx.alerts.alerts, 2)
	assert.Equal(t, 70, fx.alerts.alerts[1].Threshold, "only 70 is newly crossed")
}

func TestCheckThresholds_SentInPreviousPeriodDoesNotDedup(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Email: "ann@example.com"}
	fx := newMonitorFixture(t, individualBudget(50000), 47500, []domain.Recipient{recipient})

	// An August alert must not suppress September's crossings.
	fx.alerts.now = func() time.Time { return time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, fx.alerts.Create(context.Background(), &domain.Alert{
		UserID:    7,
		BudgetID:  1,
		Channel:   domain.ChannelEmail,
		Threshold: 90,
		Status:    domain.AlertSent,
		PeriodKey: "2026-08",
	}))
	fx.alerts.now = func() time.Time { return checkTime }

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))

	assert.Len(t, fx.alerts.alerts, 3, "both 70 and 90 fire fresh this period")
}

func TestCheckThresholds_OverBudgetFiresAllThresholds(t *testing.T) {
	// $620.00 of $500.00: 70, 90 and 100 all cross in one check.
	recipient := domain.Recipient{UserID: 7, Email: "ann@example.com"}
	fx := newMonitorFixture(t, individualBudget(50000), 62000, []domain.Recipient{recipient})

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))

	require.Len(t, fx.alerts.alerts, 3)
	var thresholds []int
	for _, alert := range fx.alerts.alerts {
		thresholds = append(thresholds, alert.Threshold)
	}
	assert.ElementsMatch(t, []int{70, 90, 100}, thresholds)

	require.Len(t, fx.email.sent, 3)
	last := fx.email.sent[2]
	assert.Contains(t, last.Subject, "exceeded")
	assert.Contains(t, last.Body, "has exceeded its monthly limit")
	assert.Contains(t, last.Body, "124.00% used")
	assert.Contains(t, last.Body, "Remaining: -$120.00")
}

func TestCheckThresholds_ChannelsAreIndependent(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Email: "ann@example.com", Phone: "+15550001111"}
	fx := newMonitorFixture(t, individualBudget(50000), 36000, []domain.Recipient{recipient})
	fx.sms.err = errors.New("gateway unreachable")

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))

	sent := fx.alerts.byChannel(domain.ChannelEmail)
	require.Len(t, sent, 1)
	assert.Equal(t, domain.AlertSent, sent[0].Status)
	assert.NotNil(t, sent[0].SentAt)

	failed := fx.alerts.byChannel(domain.ChannelSMS)
	require.Len(t, failed, 1)
	assert.Equal(t, domain.AlertFailed, failed[0].Status)
	assert.Equal(t, "gateway unreachable", failed[0].ErrorMessage)
	assert.Nil(t, failed[0].SentAt)
}

func TestCheckThresholds_FailedDeliveryRetriedNextCheck(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Phone: "+15550001111"}
	fx := newMonitorFixture(t, individualBudget(50000), 36000, []domain.Recipient{recipient})

	fx.sms.err = errors.New("gateway unreachable")
	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))
	require.Len(t, fx.alerts.alerts, 1)
	assert.Equal(t, domain.AlertFailed, fx.alerts.alerts[0].Status)

	// Gateway recovers; the threshold has no SENT row yet, so the next
	// check dispatches again and both attempts stay in the ledger.
	fx.sms.err = nil
	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))
	require.Len(t, fx.alerts.alerts, 2)
	assert.Equal(t, domain.AlertSent, fx.alerts.alerts[1].Status)
}

func TestCheckThresholds_GroupFanOut(t *testing.T) {
	groupID := uint(3)
	budget := domain.Budget{
		ID:         2,
		Scope:      domain.ScopeGroup,
		GroupID:    &groupID,
		Name:       "Household",
		LimitMinor: 100000,
		Active:     true,
	}
	recipients := []domain.Recipient{
		{UserID: 10, Email: "a@example.com"},
		{UserID: 11, Email: "b@example.com"},
		{UserID: 12, Email: "c@example.com"},
	}
	fx := newMonitorFixture(t, budget, 75000, recipients)

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 2))

	require.Len(t, fx.alerts.alerts, 3, "one row per member for threshold 70")
	for _, alert := range fx.alerts.alerts {
		assert.Equal(t, 70, alert.Threshold)
		assert.Equal(t, &groupID, alert.GroupID)
		assert.Equal(t, int64(75000), alert.SpentMinor)
		assert.Equal(t, int64(100000), alert.LimitMinor)
		assert.InDelta(t, 75.00, alert.PercentUsed, 0.0001)
	}
}

func TestCheckThresholds_NoAddressNoRow(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Name: "Unreachable"}
	fx := newMonitorFixture(t, individualBudget(50000), 47500, []domain.Recipient{recipient})

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))

	assert.Empty(t, fx.alerts.alerts, "missing addresses are a skip, not a failure")
	assert.Empty(t, fx.email.sent)
	assert.Empty(t, fx.sms.sent)
}

func TestCheckThresholds_UnderAllThresholds(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Email: "ann@example.com"}
	fx := newMonitorFixture(t, individualBudget(50000), 30000, []domain.Recipient{recipient})

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1))

	assert.Empty(t, fx.alerts.alerts)
}

func TestCheckThresholds_BudgetMissing(t *testing.T) {
	fx := newMonitorFixture(t, individualBudget(50000), 0, nil)

	err := fx.monitor.CheckThresholds(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestCheckThresholds_DuplicateInsertTreatedAsSent(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Email: "ann@example.com"}
	fx := newMonitorFixture(t, individualBudget(50000), 36000, []domain.Recipient{recipient})

	// Simulate a concurrent check having already claimed the row: the dedup
	// read said "not sent", but the insert hits the unique index.
	fx.alerts.createErr = domain.ErrDuplicateAlert

	require.NoError(t, fx.monitor.CheckThresholds(context.Background(), 1),
		"a lost insert race is not an error")
}

func TestCheckAll_SweepsActiveBudgets(t *testing.T) {
	recipient := domain.Recipient{UserID: 7, Email: "ann@example.com"}
	fx := newMonitorFixture(t, individualBudget(50000), 47500, []domain.Recipient{recipient})

	inactive := individualBudget(50000)
	inactive.ID = 5
	inactive.Active = false
	fx.budgets.budgets[5] = inactive

	fx.monitor.CheckAll(context.Background())

	require.Len(t, fx.alerts.alerts, 2)
	for _, alert := range fx.alerts.alerts {
		assert.Equal(t, uint(1), alert.BudgetID)
	}
}
