package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionTypeDefault() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(17.23),
	})

	suite.Assert().Equal(models.TransactionExpense, transaction.Type)
}

func (suite *TestSuiteStandard) TestTransactionAmountNotPositive() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	transaction := models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(-10),
	}

	err := models.DB.Create(&transaction).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionAmountNotPositive)

	transaction.Amount = decimal.Zero
	err = models.DB.Create(&transaction).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionAmountNotPositive)
}

func (suite *TestSuiteStandard) TestTransactionTypeInvalid() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	err := models.DB.Create(&models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(10),
		Type:      "donation",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestTransactionTransferValidation() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	checking := suite.createTestAccount(models.Account{GroupID: group.ID})
	savings := suite.createTestAccount(models.Account{GroupID: group.ID})

	// A transfer needs a destination
	err := models.DB.Create(&models.Transaction{
		Type:      models.TransactionTransfer,
		UserID:    user.ID,
		AccountID: checking.ID,
		Amount:    decimal.NewFromFloat(10),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrTransferDestinationMissing)

	// Source and destination must differ
	err = models.DB.Create(&models.Transaction{
		Type:        models.TransactionTransfer,
		UserID:      user.ID,
		AccountID:   checking.ID,
		ToAccountID: &checking.ID,
		Amount:      decimal.NewFromFloat(10),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrTransferAccountsIdentical)

	// Only transfers carry a destination
	err = models.DB.Create(&models.Transaction{
		Type:        models.TransactionExpense,
		UserID:      user.ID,
		AccountID:   checking.ID,
		ToAccountID: &savings.ID,
		Amount:      decimal.NewFromFloat(10),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrDestinationOnlyForTransfers)
}

func (suite *TestSuiteStandard) TestTransactionIntegrity() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	// Non-existing user
	err := models.DB.Create(&models.Transaction{
		UserID:    uuid.New(),
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(10),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	// Non-existing account
	err = models.DB.Create(&models.Transaction{
		UserID:    user.ID,
		AccountID: uuid.New(),
		Amount:    decimal.NewFromFloat(10),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	// Non-existing category
	categoryID := uuid.New()
	err = models.DB.Create(&models.Transaction{
		UserID:     user.ID,
		AccountID:  account.ID,
		CategoryID: &categoryID,
		Amount:     decimal.NewFromFloat(10),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionBalanceOnCreate() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	checking := suite.createTestAccount(models.Account{
		GroupID:        group.ID,
		InitialBalance: decimal.NewFromFloat(100),
	})
	savings := suite.createTestAccount(models.Account{GroupID: group.ID})

	suite.createTestTransaction(models.Transaction{
		Type:      models.TransactionIncome,
		UserID:    user.ID,
		AccountID: checking.ID,
		Amount:    decimal.NewFromFloat(250),
	})

	suite.createTestTransaction(models.Transaction{
		Type:      models.TransactionExpense,
		UserID:    user.ID,
		AccountID: checking.ID,
		Amount:    decimal.NewFromFloat(50),
	})

	suite.createTestTransaction(models.Transaction{
		Type:        models.TransactionTransfer,
		UserID:      user.ID,
		AccountID:   checking.ID,
		ToAccountID: &savings.ID,
		Amount:      decimal.NewFromFloat(120),
	})

	suite.Require().Nil(models.DB.First(&checking, checking.ID).Error)
	suite.Require().Nil(models.DB.First(&savings, savings.ID).Error)

	suite.Assert().True(checking.Balance.Equal(decimal.NewFromFloat(180)), "Balance is %s, should be 180", checking.Balance)
	suite.Assert().True(savings.Balance.Equal(decimal.NewFromFloat(120)), "Balance is %s, should be 120", savings.Balance)
}

func (suite *TestSuiteStandard) TestTransactionBalanceOnUpdate() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		Type:      models.TransactionExpense,
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(40),
	})

	transaction.Amount = decimal.NewFromFloat(15)
	suite.Require().Nil(models.DB.Save(&transaction).Error)

	suite.Require().Nil(models.DB.First(&account, account.ID).Error)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromFloat(-15)), "Balance is %s, should be -15", account.Balance)
}

func (suite *TestSuiteStandard) TestTransactionBalanceOnDelete() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		Type:      models.TransactionIncome,
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(500),
	})

	suite.Require().Nil(models.DB.Delete(&transaction).Error)

	suite.Require().Nil(models.DB.First(&account, account.ID).Error)
	suite.Assert().True(account.Balance.IsZero(), "Balance is %s, should be 0", account.Balance)
}

func (suite *TestSuiteStandard) TestTransactionDateDefault() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(10),
	})

	suite.Assert().False(transaction.Date.IsZero())
	suite.Assert().Equal(time.UTC, transaction.Date.Location())
}
