package finance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Overview contains the overall ledger metrics for a set of accounts.
type Overview struct {
	TotalEarned      decimal.Decimal `json:"totalEarned" example:"2317.34"`     // All income plus transfers entering the account set
	TotalSpent       decimal.Decimal `json:"totalSpent" example:"1133.70"`      // All expenses plus transfers leaving the account set
	TotalTransferred decimal.Decimal `json:"totalTransferred" example:"500"`    // Transfers that stay inside the account set
	Balance          decimal.Decimal `json:"balance" example:"1183.64"`         // Earned minus spent
}

// OverviewFor reduces the transactions to the overall metrics for the
// account set.
//
// Transfers between two accounts of the set move money around without
// earning or spending it: they only count as transferred. Transfers
// crossing the boundary of the set count as spent or earned depending on
// their direction.
func OverviewFor(transactions []models.Transaction, accountIDs map[uuid.UUID]bool) Overview {
	var o Overview

	for _, t := range transactions {
		switch classify(t, accountIDs) {
		case directionIn:
			o.TotalEarned = o.TotalEarned.Add(t.Amount)
		case directionOut:
			o.TotalSpent = o.TotalSpent.Add(t.Amount)
		case directionInternal:
			o.TotalTransferred = o.TotalTransferred.Add(t.Amount)
		}
	}

	o.Balance = o.TotalEarned.Sub(o.TotalSpent)
	return o
}

// YearSummary is the earned and spent sums of a calendar year.
type YearSummary struct {
	Year   int             `json:"year" example:"2024"`
	Earned decimal.Decimal `json:"earned" example:"28000"`
	Spent  decimal.Decimal `json:"spent" example:"21000"`
}

// AnnualBreakdown groups the earned and spent sums of the account set by
// calendar year, oldest year first.
func AnnualBreakdown(transactions []models.Transaction, accountIDs map[uuid.UUID]bool) []YearSummary {
	years := make(map[int]*YearSummary)

	for _, t := range transactions {
		d := classify(t, accountIDs)
		if d != directionIn && d != directionOut {
			continue
		}

		year := t.Date.UTC().Year()
		summary, ok := years[year]
		if !ok {
			summary = &YearSummary{Year: year}
			years[year] = summary
		}

		if d == directionIn {
			summary.Earned = summary.Earned.Add(t.Amount)
		} else {
			summary.Spent = summary.Spent.Add(t.Amount)
		}
	}

	result := make([]YearSummary, 0, len(years))
	for _, summary := range years {
		result = append(result, *summary)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Year < result[j].Year
	})

	return result
}
