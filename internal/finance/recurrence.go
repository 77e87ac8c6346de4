package finance

import (
	"github.com/hauskasse/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Factors to normalize a recurring amount to one month.
var monthlyFactors = map[models.RecurringInterval]decimal.Decimal{
	models.IntervalDaily:    decimal.NewFromFloat(30.44),
	models.IntervalWeekly:   decimal.NewFromFloat(4.33),
	models.IntervalBiweekly: decimal.NewFromFloat(2.17),
	models.IntervalMonthly:  decimal.NewFromInt(1),
}

// MonthlyAmount normalizes the amount of a recurring transaction to the
// equivalent amount per month.
func MonthlyAmount(interval models.RecurringInterval, amount decimal.Decimal) decimal.Decimal {
	if interval == models.IntervalYearly {
		return amount.Div(decimal.NewFromInt(12))
	}

	factor, ok := monthlyFactors[interval]
	if !ok {
		return decimal.Zero
	}

	return amount.Mul(factor)
}

// MonthlyRecurringTotal sums the normalized monthly amounts of all
// active recurring transactions, income counting positive and expenses
// negative.
func MonthlyRecurringTotal(recurring []models.RecurringTransaction) decimal.Decimal {
	total := decimal.Zero

	for _, r := range recurring {
		if !r.Active {
			continue
		}

		monthly := MonthlyAmount(r.Interval, r.Amount)
		if r.Type == models.TransactionIncome {
			total = total.Add(monthly)
		} else {
			total = total.Sub(monthly)
		}
	}

	return total
}
