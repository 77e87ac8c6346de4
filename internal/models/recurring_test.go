package models_test

import (
	"github.com/hauskasse/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestRecurringTransactionDefaults() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	recurring := suite.createTestRecurringTransaction(models.RecurringTransaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(1200),
	})

	suite.Assert().Equal(models.TransactionExpense, recurring.Type)
	suite.Assert().Equal(models.IntervalMonthly, recurring.Interval)
}

func (suite *TestSuiteStandard) TestRecurringTransactionTypeInvalid() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	// Transfers do not recur
	err := models.DB.Create(&models.RecurringTransaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(100),
		Type:      models.TransactionTransfer,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrRecurringTypeInvalid)
}

func (suite *TestSuiteStandard) TestRecurringTransactionIntervalInvalid() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	err := models.DB.Create(&models.RecurringTransaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(100),
		Interval:  "quarterly",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrRecurringIntervalInvalid)
}

func (suite *TestSuiteStandard) TestRecurringTransactionAmountNotPositive() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	err := models.DB.Create(&models.RecurringTransaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.Zero,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrTransactionAmountNotPositive)
}
