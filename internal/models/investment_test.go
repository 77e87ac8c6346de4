package models_test

import (
	"time"

	"github.com/hauskasse/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestInvestmentSymbolNormalized() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID, Type: models.AccountTypeInvestment})

	investment := suite.createTestInvestment(models.Investment{
		UserID:        user.ID,
		AccountID:     account.ID,
		Symbol:        " vwce.de ",
		Shares:        decimal.NewFromFloat(12),
		PurchasePrice: decimal.NewFromFloat(98.71),
	})

	suite.Assert().Equal("VWCE.DE", investment.Symbol)
}

func (suite *TestSuiteStandard) TestInvestmentSharesNotPositive() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	err := models.DB.Create(&models.Investment{
		UserID:    user.ID,
		AccountID: account.ID,
		Symbol:    "VWCE.DE",
		Shares:    decimal.Zero,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrInvestmentSharesNotPositive)
}

func (suite *TestSuiteStandard) TestInvestmentPurchaseDateDefault() {
	group := suite.createTestGroup(models.Group{})
	user := suite.createTestUser(models.User{GroupID: group.ID})
	account := suite.createTestAccount(models.Account{GroupID: group.ID})

	investment := suite.createTestInvestment(models.Investment{
		UserID:        user.ID,
		AccountID:     account.ID,
		Symbol:        "VWCE.DE",
		Shares:        decimal.NewFromFloat(1),
		PurchasePrice: decimal.NewFromFloat(100),
	})

	suite.Assert().False(investment.PurchaseDate.IsZero())
	suite.Assert().Equal(time.UTC, investment.PurchaseDate.Location())
}
