package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name    string    `json:"name" example:"Jonas" default:""`                          // Name of the user
	GroupID uuid.UUID `json:"groupId" example:"9e364855-806a-4ed1-b1fb-5b2357bd9d4d"`   // ID of the group the user belongs to
}

func (editable UserEditable) model() models.User {
	return models.User{
		GroupID: editable.GroupID,
		Name:    editable.Name,
	}
}

type UserLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/users/d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"`                 // The user itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?user=d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"` // Transactions of this user
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets?user=d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"`       // Budgets of this user
	Overview     string `json:"overview" example:"https://example.com/api/v1/overview?user=d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"`     // Overview metrics for this user
}

// User is the representation of a User in API v1.
type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`
}

// newUser returns the API v1 representation of the resource
func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			GroupID: model.GroupID,
			Name:    model.Name,
		},
		Links: UserLinks{
			Self:         fmt.Sprintf("%s/v1/users/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?user=%s", url, model.ID),
			Budgets:      fmt.Sprintf("%s/v1/budgets?user=%s", url, model.ID),
			Overview:     fmt.Sprintf("%s/v1/overview?user=%s", url, model.ID),
		},
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of users
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                                          // List of the created Users or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (u *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	u.Data = append(u.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the User
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UserQueryFilter struct {
	GroupID hk_uuid.UUID `form:"group"`                      // By ID of the Group
	Name    string       `form:"name" filterField:"false"`   // By name
	Search  string       `form:"search" filterField:"false"` // By string in the name
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first User returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of Users to return. Defaults to 50.
}

func (f UserQueryFilter) model() (models.User, error) {
	return models.User{
		GroupID: f.GroupID.UUID,
	}, nil
}
