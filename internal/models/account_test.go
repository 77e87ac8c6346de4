package models_test

import (
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAccountTypeDefault() {
	account := suite.createTestAccount(models.Account{})
	suite.Assert().Equal(models.AccountTypeChecking, account.Type)
}

func (suite *TestSuiteStandard) TestAccountTypeInvalid() {
	group := suite.createTestGroup(models.Group{})

	err := models.DB.Create(&models.Account{
		GroupID: group.ID,
		Name:    "Sparschwein",
		Type:    "piggybank",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrAccountTypeInvalid)
}

func (suite *TestSuiteStandard) TestAccountGroupMissing() {
	err := models.DB.Create(&models.Account{
		GroupID: uuid.New(),
		Name:    "Girokonto",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAccountInitialBalance() {
	account := suite.createTestAccount(models.Account{
		InitialBalance: decimal.NewFromFloat(170.20),
	})

	suite.Assert().True(account.Balance.Equal(decimal.NewFromFloat(170.20)), "Balance is %s, should be 170.20", account.Balance)
}

func (suite *TestSuiteStandard) TestAccountNameUniquePerGroup() {
	group := suite.createTestGroup(models.Group{})
	suite.createTestAccount(models.Account{GroupID: group.ID, Name: "Girokonto"})

	err := models.DB.Create(&models.Account{GroupID: group.ID, Name: "Girokonto"}).Error
	suite.Assert().NotNil(err, "Account with duplicate name in the same group could be created")

	// The same name is fine in another group
	suite.createTestAccount(models.Account{Name: "Girokonto"})
}

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	account := suite.createTestAccount(models.Account{
		Name: " Girokonto ",
		Note: "  Gemeinsames Konto\t",
	})

	suite.Assert().Equal("Girokonto", account.Name)
	suite.Assert().Equal("Gemeinsames Konto", account.Note)
}

func (suite *TestSuiteStandard) TestAccountReplaceUsers() {
	group := suite.createTestGroup(models.Group{})
	alice := suite.createTestUser(models.User{GroupID: group.ID})
	bob := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	suite.Require().Nil(account.ReplaceUsers(models.DB, []uuid.UUID{alice.ID, bob.ID}))

	ids, err := account.UserIDs(models.DB)
	suite.Require().Nil(err)
	suite.Assert().ElementsMatch([]uuid.UUID{alice.ID, bob.ID}, ids)

	// Replacing with a single user removes the other
	suite.Require().Nil(account.ReplaceUsers(models.DB, []uuid.UUID{bob.ID}))

	ids, err = account.UserIDs(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal([]uuid.UUID{bob.ID}, ids)
}

func (suite *TestSuiteStandard) TestAccountReplaceUsersMissing() {
	account := suite.createTestAccount(models.Account{})

	err := account.ReplaceUsers(models.DB, []uuid.UUID{uuid.New()})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAccountTransactions() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	checking := suite.createTestAccount(models.Account{GroupID: group.ID})
	savings := suite.createTestAccount(models.Account{GroupID: group.ID})

	suite.createTestTransaction(models.Transaction{
		Type:      models.TransactionExpense,
		UserID:    user.ID,
		AccountID: checking.ID,
		Amount:    decimal.NewFromFloat(10),
	})

	suite.createTestTransaction(models.Transaction{
		Type:        models.TransactionTransfer,
		UserID:      user.ID,
		AccountID:   savings.ID,
		ToAccountID: &checking.ID,
		Amount:      decimal.NewFromFloat(20),
	})

	// Both directions count for the account
	transactions, err := checking.Transactions(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 2)

	transactions, err = savings.Transactions(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 1)
}
