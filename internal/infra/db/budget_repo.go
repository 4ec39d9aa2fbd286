package db

import (
	"context"

	"github.com/finflow/budgetguard/internal/domain"
	"gorm.io/gorm"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) GetByID(ctx context.Context, budgetID uint) (*domain.Budget, error) {
	var model budgetModel
	if err := r.db.WithContext(ctx).First(&model, budgetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	budget := mapBudgetToDomain(model)
	return &budget, nil
}

func (r *BudgetRepository) ListActive(ctx context.Context) ([]domain.Budget, error) {
	var models []budgetModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	budgets := make([]domain.Budget, 0, len(models))
	for _, model := range models {
		budgets = append(budgets, mapBudgetToDomain(model))
	}
	return budgets, nil
}

func mapBudgetToDomain(model budgetModel) domain.Budget {
	return domain.Budget{
		ID:         model.ID,
		Scope:      domain.BudgetScope(model.Scope),
		UserID:     model.UserID,
		GroupID:    model.GroupID,
		Name:       model.Name,
		LimitMinor: model.LimitMinor,
		Active:     model.Active,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
