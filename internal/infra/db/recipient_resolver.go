package db

import (
	"context"
	"errors"

	"github.com/finflow/budgetguard/internal/domain"
)

// RecipientResolver loads the notification targets for a budget at
// evaluation time, so membership changes take effect on the next check.
type RecipientResolver struct {
	groups domain.GroupRepository
	users  domain.UserRepository
}

func NewRecipientResolver(groups domain.GroupRepository, users domain.UserRepository) *RecipientResolver {
	return &RecipientResolver{groups: groups, users: users}
}

func (r *RecipientResolver) RecipientsFor(ctx context.Context, budget *domain.Budget) ([]domain.Recipient, error) {
	switch budget.Scope {
	case domain.ScopeIndividual:
		if budget.UserID == nil {
			return nil, domain.ErrBadRequest
		}
		user, err := r.users.GetByID(ctx, *budget.UserID)
		if err != nil {
			return nil, err
		}
		return []domain.Recipient{mapRecipient(user)}, nil

	case domain.ScopeGroup:
		if budget.GroupID == nil {
			return nil, domain.ErrBadRequest
		}
		group, err := r.groups.GetByID(ctx, *budget.GroupID)
		if err != nil {
			return nil, err
		}
		recipients := make([]domain.Recipient, 0, len(group.Members))
		for _, member := range group.Members {
			user, err := r.users.GetByID(ctx, member.UserID)
			if err != nil {
				// A member deleted since the membership row was written is
				// skipped, not a resolution failure.
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return nil, err
			}
			recipients = append(recipients, mapRecipient(user))
		}
		return recipients, nil

	default:
		return nil, domain.ErrBadRequest
	}
}

func mapRecipient(user *domain.User) domain.Recipient {
	return domain.Recipient{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
	}
}
