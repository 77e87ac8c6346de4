// Package finance implements the aggregation core of Hauskasse.
//
// All functions are pure: they operate on transactions that have already
// been loaded and never perform I/O themselves. This keeps the period and
// budget math deterministic and testable without a database.
package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
)

// direction describes how a transaction relates to a set of accounts.
type direction int

const (
	directionNone     direction = iota // does not touch the account set
	directionIn                        // money enters the account set
	directionOut                       // money leaves the account set
	directionInternal                  // money moves inside the account set
)

// classify determines the direction of a transaction relative to a set
// of accounts.
//
// Transfers where both legs are inside the set are internal: they move
// money around but neither earn nor spend it. A transfer with only one
// leg inside the set behaves like an expense or income for the set.
func classify(t models.Transaction, accountIDs map[uuid.UUID]bool) direction {
	from := accountIDs[t.AccountID]
	to := t.ToAccountID != nil && accountIDs[*t.ToAccountID]

	switch t.Type {
	case models.TransactionIncome:
		if from {
			return directionIn
		}
	case models.TransactionExpense:
		if from {
			return directionOut
		}
	case models.TransactionTransfer:
		if from && to {
			return directionInternal
		}
		if from {
			return directionOut
		}
		if to {
			return directionIn
		}
	}

	return directionNone
}

// inWindow reports whether the transaction date is within
// [start of day, end of day]. A nil end means "up to now".
func inWindow(t models.Transaction, start time.Time, end *time.Time) bool {
	from := startOfDay(start)

	until := time.Now().In(time.UTC)
	if end != nil {
		until = endOfDay(*end)
	}

	return !t.Date.Before(from) && !t.Date.After(until)
}

// Filter returns the transactions within the period window.
//
// A nil period start means there is no period to aggregate over: no
// transactions match, which is not an error.
func Filter(transactions []models.Transaction, start *time.Time, end *time.Time) []models.Transaction {
	matches := make([]models.Transaction, 0, len(transactions))

	if start == nil {
		return matches
	}

	for _, t := range transactions {
		if inWindow(t, *start, end) {
			matches = append(matches, t)
		}
	}

	return matches
}

// AccountSet builds the lookup set used to classify transfer directions.
func AccountSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	return set
}

func startOfDay(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}
