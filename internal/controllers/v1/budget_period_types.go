package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
)

// BudgetPeriodEditable represents all user configurable parameters
type BudgetPeriodEditable struct {
	UserID    uuid.UUID `json:"userId" example:"d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"` // ID of the user the period belongs to
	StartDate time.Time `json:"startDate" example:"2022-07-01T00:00:00Z"`              // First day of the period. Normalized to UTC midnight.
}

type BudgetPeriodLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/budget-periods/27f33e0c-92d4-4f4f-92ad-cca8c2c9e43a"`        // The budget period itself
	Close string `json:"close" example:"https://example.com/api/v1/budget-periods/27f33e0c-92d4-4f4f-92ad-cca8c2c9e43a/close"` // Closes the budget period
}

// BudgetPeriod is the representation of a BudgetPeriod in API v1.
type BudgetPeriod struct {
	models.DefaultModel
	BudgetPeriodEditable
	EndDate *time.Time        `json:"endDate" example:"2022-07-31T00:00:00Z"` // Last day of the period, unset while the period is open
	Active  bool              `json:"active" example:"true"`                  // Is this the open period of the user?
	Links   BudgetPeriodLinks `json:"links"`
}

// newBudgetPeriod returns the API v1 representation of the resource
func newBudgetPeriod(c *gin.Context, model models.BudgetPeriod) BudgetPeriod {
	url := c.GetString(string(models.DBContextURL))

	return BudgetPeriod{
		DefaultModel: model.DefaultModel,
		BudgetPeriodEditable: BudgetPeriodEditable{
			UserID:    model.UserID,
			StartDate: model.StartDate,
		},
		EndDate: model.EndDate,
		Active:  model.Active,
		Links: BudgetPeriodLinks{
			Self:  fmt.Sprintf("%s/v1/budget-periods/%s", url, model.ID),
			Close: fmt.Sprintf("%s/v1/budget-periods/%s/close", url, model.ID),
		},
	}
}

type BudgetPeriodListResponse struct {
	Data       []BudgetPeriod `json:"data"`                                                          // List of budget periods
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type BudgetPeriodResponse struct {
	Data  *BudgetPeriod `json:"data"`                                                          // Data for the BudgetPeriod
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// BudgetPeriodCloseBody is the request body for closing a period.
type BudgetPeriodCloseBody struct {
	EndDate time.Time `json:"endDate" example:"2022-07-31T00:00:00Z"` // Last day of the period. Normalized to UTC midnight.
}

// BudgetPeriodCloseResponse contains the closed period and the
// successor period that was opened in the same transaction.
type BudgetPeriodCloseResponse struct {
	Data      *BudgetPeriod `json:"data"`                                                          // The closed period
	Successor *BudgetPeriod `json:"successor"`                                                     // The newly opened successor period
	Error     *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetPeriodQueryFilter struct {
	UserID hk_uuid.UUID `form:"user"`                       // By ID of the user
	Active bool         `form:"active"`                     // Is the period open?
	Offset uint         `form:"offset" filterField:"false"` // The offset of the first BudgetPeriod returned. Defaults to 0.
	Limit  int          `form:"limit" filterField:"false"`  // Maximum number of BudgetPeriods to return. Defaults to 50.
}

func (f BudgetPeriodQueryFilter) model() (models.BudgetPeriod, error) {
	return models.BudgetPeriod{
		UserID: f.UserID.UUID,
		Active: f.Active,
	}, nil
}
