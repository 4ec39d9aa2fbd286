package db

import (
	"context"
	"errors"
	"time"

	"github.com/finflow/budgetguard/internal/domain"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	model := mapAlertToModel(*alert)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateAlert
		}
		return err
	}
	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	return nil
}

func (r *AlertRepository) HasSentSince(ctx context.Context, budgetID uint, threshold int, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("budget_id = ? AND threshold = ? AND status = ? AND created_at >= ?",
			budgetID, threshold, string(domain.AlertSent), since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type alertViewRow struct {
	alertModel
	BudgetName  string
	BudgetScope string
	GroupName   *string
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID uint, filter domain.AlertFilter) ([]domain.AlertView, error) {
	query := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Select("alerts.*, budgets.name AS budget_name, budgets.scope AS budget_scope, groups.name AS group_name").
		Joins("JOIN budgets ON budgets.id = alerts.budget_id").
		Joins("LEFT JOIN groups ON groups.id = alerts.group_id").
		Where("alerts.user_id = ?", userID)

	if filter.BudgetID != nil {
		query = query.Where("alerts.budget_id = ?", *filter.BudgetID)
	}
	if filter.Status != nil {
		query = query.Where("alerts.status = ?", string(*filter.Status))
	}
	if filter.Threshold != nil {
		query = query.Where("alerts.threshold = ?", *filter.Threshold)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultAlertPageSize
	}

	var rows []alertViewRow
	if err := query.Order("alerts.created_at DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]domain.AlertView, 0, len(rows))
	for _, row := range rows {
		view := domain.AlertView{
			Alert:       mapAlertToDomain(row.alertModel),
			BudgetName:  row.BudgetName,
			BudgetScope: domain.BudgetScope(row.BudgetScope),
		}
		if row.GroupName != nil {
			view.GroupName = *row.GroupName
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *AlertRepository) Acknowledge(ctx context.Context, alertID, userID uint) (*domain.Alert, error) {
	result := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("acknowledged", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	var model alertModel
	if err := r.db.WithContext(ctx).First(&model, alertID).Error; err != nil {
		return nil, err
	}
	alert := mapAlertToDomain(model)
	return &alert, nil
}

func mapAlertToDomain(model alertModel) domain.Alert {
	return domain.Alert{
		ID:           model.ID,
		UserID:       model.UserID,
		BudgetID:     model.BudgetID,
		GroupID:      model.GroupID,
		Channel:      domain.AlertChannel(model.Channel),
		Threshold:    model.Threshold,
		Status:       domain.AlertStatus(model.Status),
		SentAt:       model.SentAt,
		ErrorMessage: model.ErrorMessage,
		SpentMinor:   model.SpentMinor,
		LimitMinor:   model.LimitMinor,
		PercentUsed:  model.PercentUsed,
		PeriodKey:    model.PeriodKey,
		Acknowledged: model.Acknowledged,
		CreatedAt:    model.CreatedAt,
	}
}

func mapAlertToModel(alert domain.Alert) alertModel {
	return alertModel{
		ID:           alert.ID,
		UserID:       alert.UserID,
		BudgetID:     alert.BudgetID,
		GroupID:      alert.GroupID,
		Channel:      string(alert.Channel),
		Threshold:    alert.Threshold,
		Status:       string(alert.Status),
		SentAt:       alert.SentAt,
		ErrorMessage: alert.ErrorMessage,
		SpentMinor:   alert.SpentMinor,
		LimitMinor:   alert.LimitMinor,
		PercentUsed:  alert.PercentUsed,
		PeriodKey:    alert.PeriodKey,
		Acknowledged: alert.Acknowledged,
		CreatedAt:    alert.CreatedAt,
	}
}
