package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BudgetPeriod is a dated window over which a user's budgets apply.
//
// A period is open while Active is true and EndDate is unset. The partial
// unique index guarantees at most one open period per user, which the
// original JSON-array storage of the periods could not.
type BudgetPeriod struct {
	DefaultModel
	User      User       `json:"-"`
	UserID    uuid.UUID  `gorm:"index:budget_period_open,unique,where:active"`
	StartDate time.Time
	EndDate   *time.Time
	Active    bool      `gorm:"index:budget_period_open,unique,where:active"`
}

func (p *BudgetPeriod) AfterFind(tx *gorm.DB) (err error) {
	err = p.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	p.StartDate = p.StartDate.In(time.UTC)
	if p.EndDate != nil {
		*p.EndDate = p.EndDate.In(time.UTC)
	}

	return
}

// BeforeSave normalizes the dates to UTC midnight.
func (p *BudgetPeriod) BeforeSave(_ *gorm.DB) error {
	if p.StartDate.IsZero() {
		p.StartDate = time.Now().In(time.UTC)
	}
	p.StartDate = startOfDay(p.StartDate)

	if p.EndDate != nil {
		if p.EndDate.Before(p.StartDate) {
			return ErrPeriodEndBeforeStart
		}

		end := startOfDay(*p.EndDate)
		p.EndDate = &end
	}

	return nil
}

func (p *BudgetPeriod) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	return tx.First(&User{}, p.UserID).Error
}

// StartPeriod opens a new budget period for the user.
//
// Any period that is still open is closed the day before the new period
// starts. Both writes happen in a single database transaction.
func StartPeriod(db *gorm.DB, userID uuid.UUID, startDate time.Time) (BudgetPeriod, error) {
	period := BudgetPeriod{
		UserID:    userID,
		StartDate: startDate,
		Active:    true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Defensive: only one period should ever be open, but close all
		// that are
		var open []BudgetPeriod
		err := tx.Where(&BudgetPeriod{UserID: userID, Active: true}).Find(&open).Error
		if err != nil {
			return err
		}

		for _, o := range open {
			end := startOfDay(startDate).AddDate(0, 0, -1)
			if end.Before(o.StartDate) {
				end = o.StartDate
			}

			err = tx.Model(&o).Select("Active", "EndDate").Updates(BudgetPeriod{Active: false, EndDate: &end}).Error
			if err != nil {
				return err
			}
		}

		return tx.Create(&period).Error
	})
	if err != nil {
		return BudgetPeriod{}, err
	}

	return period, nil
}

// Close closes the budget period and opens the successor period starting
// the following day.
//
// Closing and opening the successor are one database transaction: either
// the period is closed and its successor exists, or nothing changed.
func (p *BudgetPeriod) Close(db *gorm.DB, endDate time.Time) (BudgetPeriod, error) {
	if p.EndDate != nil || !p.Active {
		return BudgetPeriod{}, ErrPeriodAlreadyClosed
	}

	end := startOfDay(endDate)
	if end.Before(p.StartDate) {
		return BudgetPeriod{}, ErrPeriodEndBeforeStart
	}

	successor := BudgetPeriod{
		UserID:    p.UserID,
		StartDate: end.AddDate(0, 0, 1),
		Active:    true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(p).Select("Active", "EndDate").Updates(BudgetPeriod{Active: false, EndDate: &end}).Error
		if err != nil {
			return err
		}

		return tx.Create(&successor).Error
	})
	if err != nil {
		return BudgetPeriod{}, err
	}

	return successor, nil
}

// ActivePeriod returns the open budget period of the user.
func ActivePeriod(db *gorm.DB, userID uuid.UUID) (BudgetPeriod, error) {
	var period BudgetPeriod

	err := db.Where(&BudgetPeriod{UserID: userID, Active: true}).First(&period).Error
	if err != nil {
		return BudgetPeriod{}, err
	}

	return period, nil
}

// Periods returns all budget periods of the user, oldest first.
func Periods(db *gorm.DB, userID uuid.UUID) ([]BudgetPeriod, error) {
	var periods []BudgetPeriod

	err := db.
		Where(&BudgetPeriod{UserID: userID}).
		Order(DateTimeSort(db, "budget_periods.start_date") + " ASC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}

	return periods, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
