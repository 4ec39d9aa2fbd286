package db

import (
	"time"

	"gorm.io/gorm"
)

type userModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:""`
	Phone     string `gorm:""`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (userModel) TableName() string { return "users" }

type groupModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	LimitMinor int64  `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (groupModel) TableName() string { return "groups" }

type membershipModel struct {
	ID       uint   `gorm:"primaryKey"`
	GroupID  uint   `gorm:"uniqueIndex:idx_memberships_group_user,priority:1;not null"`
	UserID   uint   `gorm:"uniqueIndex:idx_memberships_group_user,priority:2;not null"`
	Role     string `gorm:"not null"`
	JoinedAt time.Time
}

func (membershipModel) TableName() string { return "memberships" }

type budgetModel struct {
	ID         uint   `gorm:"primaryKey"`
	Scope      string `gorm:"not null"`
	UserID     *uint  `gorm:"index"`
	GroupID    *uint  `gorm:"index"`
	Name       string `gorm:"not null"`
	LimitMinor int64  `gorm:"not null"`
	Active     bool   `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (budgetModel) TableName() string { return "budgets" }

type transactionModel struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      *uint  `gorm:"index:idx_transactions_user_occurred,priority:1"`
	GroupID     *uint  `gorm:"index:idx_transactions_group_occurred,priority:1"`
	AmountMinor int64  `gorm:"not null"`
	Type        string `gorm:"not null"`
	Status      string `gorm:"not null"`
	Description string
	OccurredAt  time.Time `gorm:"index:idx_transactions_user_occurred,priority:2;index:idx_transactions_group_occurred,priority:2"`
	CreatedAt   time.Time
}

func (transactionModel) TableName() string { return "transactions" }

// alertModel's idx_alerts_dedup is a partial unique index over SENT rows:
// two overlapping checks of the same budget can both decide to send, but
// only one SENT row per (user, budget, channel, threshold, period) lands.
// FAILED rows stay outside the index so a failed delivery can be retried
// and every attempt keeps its own row.
type alertModel struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"uniqueIndex:idx_alerts_dedup,priority:1;not null"`
	BudgetID     uint   `gorm:"uniqueIndex:idx_alerts_dedup,priority:2;index:idx_alerts_budget_threshold,priority:1;not null"`
	Channel      string `gorm:"uniqueIndex:idx_alerts_dedup,priority:3;not null"`
	Threshold    int    `gorm:"uniqueIndex:idx_alerts_dedup,priority:4;index:idx_alerts_budget_threshold,priority:2;not null"`
	PeriodKey    string `gorm:"uniqueIndex:idx_alerts_dedup,priority:5,where:status = 'SENT';not null"`
	GroupID      *uint  `gorm:"index"`
	Status       string `gorm:"index:idx_alerts_budget_threshold,priority:3;not null"`
	SentAt       *time.Time
	ErrorMessage string
	SpentMinor   int64
	LimitMinor   int64
	PercentUsed  float64
	Acknowledged bool
	CreatedAt    time.Time `gorm:"index"`
}

func (alertModel) TableName() string { return "alerts" }
