package domain

import "time"

type BudgetScope string

const (
	ScopeIndividual BudgetScope = "INDIVIDUAL"
	ScopeGroup      BudgetScope = "GROUP"
)

// Budget caps monthly spend for one user or one group, depending on Scope.
// Exactly one of UserID/GroupID is set. Limits are integer minor currency
// units (cents); conversion to display units happens only at the edges.
type Budget struct {
	ID         uint
	Scope      BudgetScope
	UserID     *uint
	GroupID    *uint
	Name       string
	LimitMinor int64
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter returns the ledger scope filter matching the budget's owner.
func (b *Budget) Filter() (ScopeFilter, error) {
	switch b.Scope {
	case ScopeIndividual:
		if b.UserID == nil {
			return ScopeFilter{}, ErrBadRequest
		}
		return FilterByUser(*b.UserID), nil
	case ScopeGroup:
		if b.GroupID == nil {
			return ScopeFilter{}, ErrBadRequest
		}
		return FilterByGroup(*b.GroupID), nil
	default:
		return ScopeFilter{}, ErrBadRequest
	}
}

// ScopeFilter selects which side of the transaction ledger a query runs
// against: transactions owned by a user, or transactions owned by a group.
type ScopeFilter struct {
	userID  *uint
	groupID *uint
}

func FilterByUser(id uint) ScopeFilter {
	return ScopeFilter{userID: &id}
}

func FilterByGroup(id uint) ScopeFilter {
	return ScopeFilter{groupID: &id}
}

func (f ScopeFilter) User() (uint, bool) {
	if f.userID == nil {
		return 0, false
	}
	return *f.userID, true
}

func (f ScopeFilter) Group() (uint, bool) {
	if f.groupID == nil {
		return 0, false
	}
	return *f.groupID, true
}

// SpendStatus is the derived spend-to-limit snapshot for one budget in the
// current period. It is computed fresh on every request and never stored.
//
// PercentUsed is clamped to [0,100] for display; Remaining and OverBudget
// are computed on the unclamped spend, so a blown budget reports
// PercentUsed 100 together with OverBudget true and a negative Remaining.
type SpendStatus struct {
	SpentMinor     int64
	LimitMinor     int64
	RemainingMinor int64
	OverBudget     bool
	PercentUsed    float64
}

type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleMember MemberRole = "MEMBER"
	RoleViewer MemberRole = "VIEWER"
)

type Membership struct {
	UserID   uint
	Role     MemberRole
	JoinedAt time.Time
}

// Group is a shared-budget household. It always has at least one membership.
type Group struct {
	ID         uint
	Name       string
	LimitMinor int64
	Members    []Membership
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
