package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name     string    `json:"name" example:"Groceries" default:""`                     // Name of the category
	GroupID  uuid.UUID `json:"groupId" example:"9e364855-806a-4ed1-b1fb-5b2357bd9d4d"`  // ID of the group the category belongs to
	Note     string    `json:"note" example:"Everything edible" default:""`             // Notes about the category
	Archived bool      `json:"archived" example:"true" default:"false"`                 // Is the category archived?
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		GroupID:  editable.GroupID,
		Name:     editable.Name,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                  // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions in this category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			GroupID:  model.GroupID,
			Name:     model.Name,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	GroupID  hk_uuid.UUID `form:"group"`                      // By ID of the Group
	Name     string       `form:"name" filterField:"false"`   // By name
	Note     string       `form:"note" filterField:"false"`   // By note
	Archived bool         `form:"archived"`                   // Is the Category archived?
	Search   string       `form:"search" filterField:"false"` // By string in name or note
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() (models.Category, error) {
	return models.Category{
		GroupID:  f.GroupID.UUID,
		Archived: f.Archived,
	}, nil
}
