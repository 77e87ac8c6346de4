package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceAt reconstructs the balance of the account set as of the start
// of the given date.
//
// It replays all transactions dated on or after the date in reverse:
// money that left the set is added back, money that entered it is
// subtracted from the current balance.
func BalanceAt(currentBalance decimal.Decimal, transactions []models.Transaction, accountIDs map[uuid.UUID]bool, date time.Time) decimal.Decimal {
	cutoff := startOfDay(date)
	balance := currentBalance

	for _, t := range transactions {
		if t.Date.Before(cutoff) {
			continue
		}

		switch classify(t, accountIDs) {
		case directionOut:
			balance = balance.Add(t.Amount)
		case directionIn:
			balance = balance.Sub(t.Amount)
		}
	}

	return balance
}

// PeriodSummary is the result of aggregating one budget period.
type PeriodSummary struct {
	Period       models.BudgetPeriod `json:"period"`
	Income       decimal.Decimal     `json:"income" example:"2310"`       // Money that entered the account set during the period
	Spent        decimal.Decimal     `json:"spent" example:"1922.50"`     // Money that left the account set during the period
	StartBalance decimal.Decimal     `json:"startBalance" example:"100"`  // Balance at the start of the period
	EndBalance   decimal.Decimal     `json:"endBalance" example:"487.50"` // Balance at the end of the period
}

// AccumulatePeriods aggregates the periods in order and carries the
// running balance forward: each period ends with
// start balance + income - spent, and the next period starts there.
//
// The periods must be sorted ascending by start date, startBalance is
// the balance at the start of the earliest period.
func AccumulatePeriods(periods []models.BudgetPeriod, transactions []models.Transaction, accountIDs map[uuid.UUID]bool, startBalance decimal.Decimal) []PeriodSummary {
	summaries := make([]PeriodSummary, 0, len(periods))
	runningBalance := startBalance

	for _, period := range periods {
		summary := PeriodSummary{
			Period:       period,
			StartBalance: runningBalance,
		}

		start := period.StartDate
		for _, t := range Filter(transactions, &start, period.EndDate) {
			switch classify(t, accountIDs) {
			case directionIn:
				summary.Income = summary.Income.Add(t.Amount)
			case directionOut:
				summary.Spent = summary.Spent.Add(t.Amount)
			}
		}

		summary.EndBalance = summary.StartBalance.Add(summary.Income).Sub(summary.Spent)
		runningBalance = summary.EndBalance

		summaries = append(summaries, summary)
	}

	return summaries
}
