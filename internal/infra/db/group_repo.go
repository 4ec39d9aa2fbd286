package db

import (
	"context"

	"github.com/finflow/budgetguard/internal/domain"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID uint) (*domain.Group, error) {
	var model groupModel
	if err := r.db.WithContext(ctx).First(&model, groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var memberships []membershipModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	group := &domain.Group{
		ID:         model.ID,
		Name:       model.Name,
		LimitMinor: model.LimitMinor,
		Members:    make([]domain.Membership, 0, len(memberships)),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
	for _, membership := range memberships {
		group.Members = append(group.Members, domain.Membership{
			UserID:   membership.UserID,
			Role:     domain.MemberRole(membership.Role),
			JoinedAt: membership.JoinedAt,
		})
	}
	return group, nil
}
