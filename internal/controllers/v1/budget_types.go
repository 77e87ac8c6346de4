package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Name   string    `json:"name" example:"Food" default:""`                          // Name of the budget
	UserID uuid.UUID `json:"userId" example:"d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"`   // ID of the user owning the budget
	Note   string    `json:"note" example:"Groceries and eating out" default:""`      // Notes about the budget

	// The cap must be positive, swagger unfortunately rounds the maximum.
	Amount decimal.Decimal `json:"amount" example:"500.00" minimum:"0.00000001" maximum:"999999999999.99999999"` // The spending cap for one period

	Type        models.BudgetType `json:"type" example:"monthly" default:"monthly" enums:"monthly,annually"` // Recurrence of the cap
	CategoryIDs []uuid.UUID       `json:"categoryIds"`                                                       // IDs of the categories the budget covers
	Archived    bool              `json:"archived" example:"true" default:"false"`                           // Is the budget archived?
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		UserID:   editable.UserID,
		Name:     editable.Name,
		Note:     editable.Note,
		Amount:   editable.Amount,
		Type:     editable.Type,
		Archived: editable.Archived,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`              // The budget itself
	Progress string `json:"progress" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/progress"` // Progress of the budget in the open period
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, db *gorm.DB, model models.Budget) (Budget, error) {
	url := c.GetString(string(models.DBContextURL))

	categoryIDs, err := model.CategoryIDs(db)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			UserID:      model.UserID,
			Name:        model.Name,
			Note:        model.Note,
			Amount:      model.Amount,
			Type:        model.Type,
			CategoryIDs: categoryIDs,
			Archived:    model.Archived,
		},
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Progress: fmt.Sprintf("%s/v1/budgets/%s/progress", url, model.ID),
		},
	}, nil
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of the created Budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// BudgetProgress is the spending progress of a budget in the open
// budget period of its owner.
type BudgetProgress struct {
	Spent            decimal.Decimal `json:"spent" example:"120.00"`      // Net spending in the budget's categories, floored at zero
	Remaining        decimal.Decimal `json:"remaining" example:"380.00"`  // Amount minus spent, can be negative
	Percentage       decimal.Decimal `json:"percentage" example:"24"`     // Spent share of the cap in percent
	TransactionCount int             `json:"transactionCount" example:"7"` // Number of transactions contributing to spent
}

type BudgetProgressResponse struct {
	Data  *BudgetProgress `json:"data"`                                                          // The progress data
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	UserID   hk_uuid.UUID      `form:"user"`                       // By ID of the owning user
	Name     string            `form:"name" filterField:"false"`   // By name
	Note     string            `form:"note" filterField:"false"`   // By note
	Type     models.BudgetType `form:"type"`                       // By recurrence type
	Archived bool              `form:"archived"`                   // Is the Budget archived?
	Search   string            `form:"search" filterField:"false"` // By string in name or note
	Offset   uint              `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit    int               `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() (models.Budget, error) {
	return models.Budget{
		UserID:   f.UserID.UUID,
		Type:     f.Type,
		Archived: f.Archived,
	}, nil
}
