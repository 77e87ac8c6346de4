package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Progress is the state of a budget within a period window.
type Progress struct {
	Spent            decimal.Decimal `json:"spent" example:"133.70"`           // Net amount spent on the budget's categories
	Remaining        decimal.Decimal `json:"remaining" example:"366.30"`       // Budget amount minus spent, can be negative
	Percentage       decimal.Decimal `json:"percentage" example:"26.74"`       // Spent in percent of the budget amount
	TransactionCount int             `json:"transactionCount" example:"12"`    // Number of transactions aggregated
}

// BudgetProgress calculates the net spend for a budget from the
// transactions within the period window.
//
// Net spend is the sum of expenses and transfers minus the sum of income
// on the budget's categories, floored at zero: refunds and income can
// offset spending, but never push it negative.
//
// Budgets with a non-positive amount are excluded from aggregation, the
// second return value is false for them.
func BudgetProgress(budget models.Budget, categoryIDs []uuid.UUID, transactions []models.Transaction, periodStart *time.Time, periodEnd *time.Time) (Progress, bool) {
	if !budget.Amount.IsPositive() {
		return Progress{}, false
	}

	categories := make(map[uuid.UUID]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		categories[id] = true
	}

	spent := decimal.Zero
	count := 0

	for _, t := range Filter(transactions, periodStart, periodEnd) {
		if t.CategoryID == nil || !categories[*t.CategoryID] {
			continue
		}

		count++

		switch t.Type {
		case models.TransactionExpense, models.TransactionTransfer:
			spent = spent.Add(t.Amount)
		case models.TransactionIncome:
			spent = spent.Sub(t.Amount)
		}
	}

	// Income on budgeted categories can exceed the spending, spend is
	// floored at zero then
	if spent.IsNegative() {
		spent = decimal.Zero
	}

	return Progress{
		Spent:            spent,
		Remaining:        budget.Amount.Sub(spent),
		Percentage:       spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)),
		TransactionCount: count,
	}, true
}

// CategorySpend is the net spending of a single category.
type CategorySpend struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // The category
	Spent      decimal.Decimal `json:"spent" example:"120"`                                       // Sum of expenses and outgoing transfers
	Received   decimal.Decimal `json:"received" example:"20"`                                     // Sum of income
	Net        decimal.Decimal `json:"net" example:"100"`                                         // Spent minus received
	Percentage decimal.Decimal `json:"percentage" example:"20"`                                   // Share of the total positive net spending
}

// CategorySpending breaks the net spending within the window down by
// category.
//
// The percentage of a category is its share of the total net spending.
// Only categories with positive net spending contribute to the total, so
// refunds in one category do not dilute the share of the others. When the
// total is not positive, all percentages are zero.
func CategorySpending(transactions []models.Transaction, periodStart *time.Time, periodEnd *time.Time) []CategorySpend {
	spends := make(map[uuid.UUID]*CategorySpend)
	order := []uuid.UUID{}

	for _, t := range Filter(transactions, periodStart, periodEnd) {
		if t.CategoryID == nil {
			continue
		}

		spend, ok := spends[*t.CategoryID]
		if !ok {
			spend = &CategorySpend{CategoryID: *t.CategoryID}
			spends[*t.CategoryID] = spend
			order = append(order, *t.CategoryID)
		}

		switch t.Type {
		case models.TransactionExpense, models.TransactionTransfer:
			spend.Spent = spend.Spent.Add(t.Amount)
		case models.TransactionIncome:
			spend.Received = spend.Received.Add(t.Amount)
		}
	}

	total := decimal.Zero
	for _, spend := range spends {
		spend.Net = spend.Spent.Sub(spend.Received)
		if spend.Net.IsPositive() {
			total = total.Add(spend.Net)
		}
	}

	result := make([]CategorySpend, 0, len(order))
	for _, id := range order {
		spend := spends[id]

		if spend.Net.IsPositive() && total.IsPositive() {
			spend.Percentage = spend.Net.Div(total).Mul(decimal.NewFromInt(100))
		}

		result = append(result, *spend)
	}

	return result
}
