package models_test

import (
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
)

func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	err := models.DB.First(&models.Group{}, uuid.New()).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no group matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestResourceNotFoundMessagePlural() {
	err := models.DB.First(&models.Category{}, uuid.New()).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no category matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestTimestampsUTC() {
	group := suite.createTestGroup(models.Group{})

	var read models.Group
	suite.Require().Nil(models.DB.First(&read, group.ID).Error)

	suite.Assert().Equal("UTC", read.CreatedAt.Location().String())
	suite.Assert().Equal("UTC", read.UpdatedAt.Location().String())
}
