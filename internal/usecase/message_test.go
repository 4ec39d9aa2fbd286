package usecase

import (
	"testing"

	"github.com/finflow/budgetguard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinor(t *testing.T) {
	assert.Equal(t, "$475.00", FormatMinor(47500))
	assert.Equal(t, "$0.00", FormatMinor(0))
	assert.Equal(t, "$0.05", FormatMinor(5))
	assert.Equal(t, "-$120.00", FormatMinor(-12000))
	assert.Equal(t, "$1234.56", FormatMinor(123456))
}

func TestRenderAlertMessage_AtThreshold(t *testing.T) {
	budget := &domain.Budget{Name: "Groceries"}
	status := CalculateStatus(47500, 50000)

	msg := renderAlertMessage(budget, 90, status)

	assert.Equal(t, `Budget alert: Groceries at 90%`, msg.Subject)
	assert.Contains(t, msg.Body, `Budget "Groceries" has reached 90% of its monthly limit.`)
	assert.Contains(t, msg.Body, "Limit: $500.00")
	assert.Contains(t, msg.Body, "Spent: $475.00 (95.00% used)")
	assert.Contains(t, msg.Body, "Remaining: $25.00")
	assert.Contains(t, msg.Short, "95.00%")
}

func TestRenderAlertMessage_Exceeded(t *testing.T) {
	budget := &domain.Budget{Name: "Groceries"}
	status := CalculateStatus(62000, 50000)

	msg := renderAlertMessage(budget, 100, status)

	assert.Equal(t, "Budget alert: Groceries exceeded", msg.Subject)
	assert.Contains(t, msg.Body, `Budget "Groceries" has exceeded its monthly limit.`)
	// The body shows the unclamped percentage even though the status
	// snapshot clamps at 100.
	assert.Contains(t, msg.Body, "Spent: $620.00 (124.00% used)")
	assert.Contains(t, msg.Body, "Remaining: -$120.00")
	assert.InDelta(t, 100.00, status.PercentUsed, 0.0001)
}

func TestRenderAlertMessage_ExactlyAtLimit(t *testing.T) {
	budget := &domain.Budget{Name: "Groceries"}
	status := CalculateStatus(50000, 50000)

	msg := renderAlertMessage(budget, 100, status)

	assert.Contains(t, msg.Body, "has exceeded its monthly limit")
	assert.Contains(t, msg.Body, "Remaining: $0.00")
}
