package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/finflow/budgetguard/internal/domain"
	"go.uber.org/zap"
)

// EmailSender delivers one message to one address. Implementations apply
// their own timeouts; a timeout is reported like any other failure.
type EmailSender interface {
	SendEmail(ctx context.Context, address, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

// Monitor evaluates a budget's thresholds against the alert ledger and fans
// notifications out to every recipient on every reachable channel.
type Monitor struct {
	budgets    domain.BudgetRepository
	status     *StatusUsecase
	alerts     domain.AlertRepository
	recipients domain.RecipientResolver
	email      EmailSender
	sms        SMSSender
	logger     *zap.Logger
	now        func() time.Time
}

func NewMonitor(
	budgets domain.BudgetRepository,
	status *StatusUsecase,
	alerts domain.AlertRepository,
	recipients domain.RecipientResolver,
	email EmailSender,
	sms SMSSender,
	logger *zap.Logger,
) *Monitor {
	return &Monitor{
		budgets:    budgets,
		status:     status,
		alerts:     alerts,
		recipients: recipients,
		email:      email,
		sms:        sms,
		logger:     logger,
		now:        time.Now,
	}
}

// CheckThresholds runs one monitoring pass for a budget. Every threshold at
// or below the current percentage that has no SENT alert this period is
// dispatched in the same pass, so a first check late in the month can fire
// 70, 90 and 100 together.
func (m *Monitor) CheckThresholds(ctx context.Context, budgetID uint) error {
	budget, err := m.budgets.GetByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrBudgetNotFound
		}
		return err
	}

	status, err := m.status.StatusFor(ctx, budget)
	if err != nil {
		return err
	}

	period := domain.CurrentMonth(m.now())

	var crossed []int
	for _, threshold := range domain.Thresholds {
		if status.PercentUsed < float64(threshold) {
			continue
		}
		sent, err := m.alerts.HasSentSince(ctx, budget.ID, threshold, period.Start)
		if err != nil {
			return err
		}
		if !sent {
			crossed = append(crossed, threshold)
		}
	}
	if len(crossed) == 0 {
		return nil
	}

	recipients, err := m.recipients.RecipientsFor(ctx, budget)
	if err != nil {
		return err
	}

	m.logger.Info("budget thresholds crossed",
		zap.Uint("budget_id", budget.ID),
		zap.Ints("thresholds", crossed),
		zap.Float64("percent_used", status.PercentUsed),
		zap.Int("recipients", len(recipients)),
	)

	for _, threshold := range crossed {
		for _, recipient := range recipients {
			m.dispatch(ctx, budget, recipient, threshold, status, period)
		}
	}
	return nil
}

// CheckAll sweeps every active budget. Per-budget failures are logged and
// never abort the sweep; the scheduler calls this on a fixed cadence.
func (m *Monitor) CheckAll(ctx context.Context) {
	budgets, err := m.budgets.ListActive(ctx)
	if err != nil {
		m.logger.Error("failed to list active budgets", zap.Error(err))
		return
	}
	for _, budget := range budgets {
		if err := m.CheckThresholds(ctx, budget.ID); err != nil {
			m.logger.Warn("budget check failed", zap.Uint("budget_id", budget.ID), zap.Error(err))
		}
	}
}

// dispatch attempts delivery to one recipient for one threshold. Channels
// are independent: each reachable channel gets its own attempt and its own
// ledger row, and a failure on one never blocks the other. A recipient with
// no address on a channel is skipped without a row.
func (m *Monitor) dispatch(ctx context.Context, budget *domain.Budget, recipient domain.Recipient, threshold int, status domain.SpendStatus, period domain.Period) {
	msg := renderAlertMessage(budget, threshold, status)

	if recipient.Email != "" {
		err := m.email.SendEmail(ctx, recipient.Email, msg.Subject, msg.Body)
		m.record(ctx, budget, recipient, domain.ChannelEmail, threshold, status, period, err)
	}
	if recipient.Phone != "" {
		err := m.sms.SendSMS(ctx, recipient.Phone, msg.Short)
		m.record(ctx, budget, recipient, domain.ChannelSMS, threshold, status, period, err)
	}
}

// record writes the terminal SENT or FAILED row for one channel attempt.
// A duplicate-key insert means a concurrent check already recorded this
// threshold for the period and is dropped silently.
func (m *Monitor) record(ctx context.Context, budget *domain.Budget, recipient domain.Recipient, channel domain.AlertChannel, threshold int, status domain.SpendStatus, period domain.Period, sendErr error) {
	alert := &domain.Alert{
		UserID:      recipient.UserID,
		BudgetID:    budget.ID,
		GroupID:     budget.GroupID,
		Channel:     channel,
		Threshold:   threshold,
		SpentMinor:  status.SpentMinor,
		LimitMinor:  status.LimitMinor,
		PercentUsed: status.PercentUsed,
		PeriodKey:   period.Key(),
	}

	if sendErr == nil {
		sentAt := m.now()
		alert.Status = domain.AlertSent
		alert.SentAt = &sentAt
	} else {
		alert.Status = domain.AlertFailed
		alert.ErrorMessage = sendErr.Error()
		m.logger.Warn("alert delivery failed",
			zap.Uint("budget_id", budget.ID),
			zap.Uint("user_id", recipient.UserID),
			zap.String("channel", string(channel)),
			zap.Int("threshold", threshold),
			zap.Error(sendErr),
		)
	}

	if err := m.alerts.Create(ctx, alert); err != nil {
		if errors.Is(err, domain.ErrDuplicateAlert) {
			m.logger.Debug("alert already recorded for period",
				zap.Uint("budget_id", budget.ID),
				zap.Uint("user_id", recipient.UserID),
				zap.String("channel", string(channel)),
				zap.Int("threshold", threshold),
			)
			return
		}
		m.logger.Error("failed to record alert",
			zap.Uint("budget_id", budget.ID),
			zap.Uint("user_id", recipient.UserID),
			zap.String("channel", string(channel)),
			zap.Int("threshold", threshold),
			zap.Error(err),
		)
	}
}
