package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
)

func (suite *TestSuiteStandard) TestStartPeriod() {
	user := suite.createTestUser(models.User{})

	period, err := models.StartPeriod(models.DB, user.ID, time.Date(2023, 5, 14, 13, 37, 0, 0, time.UTC))
	suite.Require().Nil(err)

	suite.Assert().True(period.Active)
	suite.Assert().Nil(period.EndDate)

	// Start dates are normalized to UTC midnight
	suite.Assert().True(period.StartDate.Equal(time.Date(2023, 5, 14, 0, 0, 0, 0, time.UTC)), "StartDate is %s", period.StartDate)
}

func (suite *TestSuiteStandard) TestStartPeriodUserMissing() {
	_, err := models.StartPeriod(models.DB, uuid.New(), time.Now())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestStartPeriodClosesOpenPeriod() {
	user := suite.createTestUser(models.User{})

	first, err := models.StartPeriod(models.DB, user.ID, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	second, err := models.StartPeriod(models.DB, user.ID, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	suite.Require().Nil(models.DB.First(&first, first.ID).Error)

	suite.Assert().False(first.Active)
	suite.Require().NotNil(first.EndDate)
	suite.Assert().True(first.EndDate.Equal(time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC)), "EndDate is %s", first.EndDate)

	suite.Assert().True(second.Active)
}

func (suite *TestSuiteStandard) TestClosePeriod() {
	user := suite.createTestUser(models.User{})

	period, err := models.StartPeriod(models.DB, user.ID, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	successor, err := period.Close(models.DB, time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	// The successor starts the day after the closed period ends
	suite.Assert().True(successor.Active)
	suite.Assert().True(successor.StartDate.Equal(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)), "StartDate is %s", successor.StartDate)

	suite.Require().Nil(models.DB.First(&period, period.ID).Error)
	suite.Assert().False(period.Active)
	suite.Require().NotNil(period.EndDate)
	suite.Assert().True(period.EndDate.Equal(time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC)), "EndDate is %s", period.EndDate)
}

func (suite *TestSuiteStandard) TestClosePeriodAlreadyClosed() {
	user := suite.createTestUser(models.User{})

	period, err := models.StartPeriod(models.DB, user.ID, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	_, err = period.Close(models.DB, time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	suite.Require().Nil(models.DB.First(&period, period.ID).Error)

	_, err = period.Close(models.DB, time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC))
	suite.Assert().ErrorIs(err, models.ErrPeriodAlreadyClosed)
}

func (suite *TestSuiteStandard) TestClosePeriodEndBeforeStart() {
	user := suite.createTestUser(models.User{})

	period, err := models.StartPeriod(models.DB, user.ID, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	_, err = period.Close(models.DB, time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC))
	suite.Assert().ErrorIs(err, models.ErrPeriodEndBeforeStart)
}

func (suite *TestSuiteStandard) TestActivePeriod() {
	user := suite.createTestUser(models.User{})

	_, err := models.ActivePeriod(models.DB, user.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	period, err := models.StartPeriod(models.DB, user.ID, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	active, err := models.ActivePeriod(models.DB, user.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(period.ID, active.ID)
}

func (suite *TestSuiteStandard) TestPeriodsOrder() {
	user := suite.createTestUser(models.User{})

	period, err := models.StartPeriod(models.DB, user.ID, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)

	for _, end := range []time.Time{
		time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
	} {
		suite.Require().Nil(models.DB.First(&period, period.ID).Error)
		period, err = period.Close(models.DB, end)
		suite.Require().Nil(err)
	}

	periods, err := models.Periods(models.DB, user.ID)
	suite.Require().Nil(err)
	suite.Require().Len(periods, 3)

	for i := 1; i < len(periods); i++ {
		suite.Assert().True(periods[i-1].StartDate.Before(periods[i].StartDate), "Periods are not sorted by start date")
	}

	// Exactly one period is open
	var open int
	for _, p := range periods {
		if p.Active {
			open++
		}
	}
	suite.Assert().Equal(1, open)
}

func (suite *TestSuiteStandard) TestPeriodEndBeforeStartOnSave() {
	user := suite.createTestUser(models.User{})

	end := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	err := models.DB.Create(&models.BudgetPeriod{
		UserID:    user.ID,
		StartDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrPeriodEndBeforeStart)
}
