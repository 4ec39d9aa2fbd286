package usecase

import (
	"fmt"
	"strings"

	"github.com/finflow/budgetguard/internal/domain"
	"github.com/shopspring/decimal"
)

type alertMessage struct {
	Subject string
	Body    string
	Short   string
}

// renderAlertMessage builds the notification text for one threshold
// crossing. The percentage shown is the unclamped figure, so a blown budget
// reads "124.00% used" even though the status snapshot clamps at 100, and
// remaining is shown as-is, negative when over.
func renderAlertMessage(budget *domain.Budget, threshold int, status domain.SpendStatus) alertMessage {
	exceeded := threshold == 100 && status.PercentUsed >= 100
	rawPct := percentUsed(status.SpentMinor, status.LimitMinor, false)

	var headline string
	if exceeded {
		headline = fmt.Sprintf("Budget %q has exceeded its monthly limit.", budget.Name)
	} else {
		headline = fmt.Sprintf("Budget %q has reached %d%% of its monthly limit.", budget.Name, threshold)
	}

	var b strings.Builder
	b.WriteString(headline)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Limit: %s\n", FormatMinor(status.LimitMinor))
	fmt.Fprintf(&b, "Spent: %s (%.2f%% used)\n", FormatMinor(status.SpentMinor), rawPct)
	fmt.Fprintf(&b, "Remaining: %s\n", FormatMinor(status.RemainingMinor))

	var subject string
	if exceeded {
		subject = fmt.Sprintf("Budget alert: %s exceeded", budget.Name)
	} else {
		subject = fmt.Sprintf("Budget alert: %s at %d%%", budget.Name, threshold)
	}

	short := fmt.Sprintf("%s Spent %s of %s (%.2f%%), remaining %s.",
		headline,
		FormatMinor(status.SpentMinor),
		FormatMinor(status.LimitMinor),
		rawPct,
		FormatMinor(status.RemainingMinor),
	)

	return alertMessage{Subject: subject, Body: b.String(), Short: short}
}

// FormatMinor renders an amount of minor units as a display string, e.g.
// 47500 -> "$475.00", -12000 -> "-$120.00".
func FormatMinor(minor int64) string {
	amount := decimal.NewFromInt(minor).Div(oneHundred)
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}
