package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RecurringInterval is the cadence of a recurring transaction.
type RecurringInterval string

const (
	IntervalDaily    RecurringInterval = "daily"
	IntervalWeekly   RecurringInterval = "weekly"
	IntervalBiweekly RecurringInterval = "biweekly"
	IntervalMonthly  RecurringInterval = "monthly"
	IntervalYearly   RecurringInterval = "yearly"
)

var recurringIntervals = []RecurringInterval{IntervalDaily, IntervalWeekly, IntervalBiweekly, IntervalMonthly, IntervalYearly}

// RecurringTransaction is a template for a regularly recurring ledger
// entry, e.g. rent or a salary.
type RecurringTransaction struct {
	DefaultModel
	User       User      `json:"-"`
	UserID     uuid.UUID
	Account    Account   `json:"-"`
	AccountID  uuid.UUID
	Category   *Category `json:"-"`
	CategoryID *uuid.UUID
	Name       string
	Type       TransactionType
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Interval   RecurringInterval
	NextDate   time.Time
	Active     bool
}

// BeforeSave validates type, interval and amount and trims whitespace.
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)

	if r.Type == "" {
		r.Type = TransactionExpense
	}

	// Transfers do not recur, only income and expenses do
	if r.Type != TransactionIncome && r.Type != TransactionExpense {
		return ErrRecurringTypeInvalid
	}

	if r.Interval == "" {
		r.Interval = IntervalMonthly
	}

	if !slices.Contains(recurringIntervals, r.Interval) {
		return ErrRecurringIntervalInvalid
	}

	if !r.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

func (r *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	return r.checkIntegrity(tx)
}

// checkIntegrity verifies references to other resources
func (r *RecurringTransaction) checkIntegrity(tx *gorm.DB) error {
	err := tx.First(&User{}, r.UserID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Account{}, r.AccountID).Error
	if err != nil {
		return err
	}

	if r.CategoryID != nil {
		err = tx.First(&Category{}, r.CategoryID).Error
		if err != nil {
			return err
		}
	}

	return nil
}
