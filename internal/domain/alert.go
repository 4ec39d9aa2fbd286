package domain

import "time"

type AlertChannel string

const (
	ChannelEmail AlertChannel = "EMAIL"
	ChannelSMS   AlertChannel = "SMS"
)

type AlertStatus string

const (
	AlertPending AlertStatus = "PENDING"
	AlertSent    AlertStatus = "SENT"
	AlertFailed  AlertStatus = "FAILED"
)

// Thresholds is the closed, ascending set of percentage-of-limit trip
// points. Each fires at most once per budget per period.
var Thresholds = []int{70, 90, 100}

// Alert is one delivery attempt on one channel to one recipient. It is the
// system of record for "threshold T was already notified this period": the
// evaluator deduplicates against SENT rows, not against any cache.
//
// Rows are immutable after creation except for the Acknowledged flag.
type Alert struct {
	ID           uint
	UserID       uint
	BudgetID     uint
	GroupID      *uint
	Channel      AlertChannel
	Threshold    int
	Status       AlertStatus
	SentAt       *time.Time
	ErrorMessage string

	// Snapshot of the status the check was evaluated against.
	SpentMinor  int64
	LimitMinor  int64
	PercentUsed float64

	// PeriodKey is the accounting month, formatted "2006-01". Together with
	// (user, budget, channel, threshold) it is unique among SENT rows, which
	// turns the check-then-insert dedup race into an idempotent insert while
	// leaving failed attempts free to retry.
	PeriodKey string

	Acknowledged bool
	CreatedAt    time.Time
}

// AlertView is an alert joined with the display names the UI needs, so
// listing does not require a second round trip per row.
type AlertView struct {
	Alert
	BudgetName  string
	BudgetScope BudgetScope
	GroupName   string
}

const DefaultAlertPageSize = 50

// AlertFilter narrows a recipient's alert listing. Nil fields match all.
type AlertFilter struct {
	BudgetID  *uint
	Status    *AlertStatus
	Threshold *int
	Limit     int
}
