package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hauskasse/backend/internal/models"
)

// GroupEditable represents all user configurable parameters
type GroupEditable struct {
	Name string `json:"name" example:"Waldweg 7" default:""`                 // Name of the group
	Note string `json:"note" example:"Shared flat on Waldweg" default:""`   // Notes about the group
}

func (editable GroupEditable) model() models.Group {
	return models.Group{
		Name: editable.Name,
		Note: editable.Note,
	}
}

type GroupLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/groups/9e364855-806a-4ed1-b1fb-5b2357bd9d4d"`         // The group itself
	Users    string `json:"users" example:"https://example.com/api/v1/users?group=9e364855-806a-4ed1-b1fb-5b2357bd9d4d"`   // Users of this group
	Accounts string `json:"accounts" example:"https://example.com/api/v1/accounts?group=9e364855-806a-4ed1-b1fb-5b2357bd9d4d"` // Accounts of this group
}

// Group is the representation of a Group in API v1.
type Group struct {
	models.DefaultModel
	GroupEditable
	Links GroupLinks `json:"links"`
}

// newGroup returns the API v1 representation of the resource
func newGroup(c *gin.Context, model models.Group) Group {
	url := c.GetString(string(models.DBContextURL))

	return Group{
		DefaultModel: model.DefaultModel,
		GroupEditable: GroupEditable{
			Name: model.Name,
			Note: model.Note,
		},
		Links: GroupLinks{
			Self:     fmt.Sprintf("%s/v1/groups/%s", url, model.ID),
			Users:    fmt.Sprintf("%s/v1/users?group=%s", url, model.ID),
			Accounts: fmt.Sprintf("%s/v1/accounts?group=%s", url, model.ID),
		},
	}
}

type GroupListResponse struct {
	Data       []Group     `json:"data"`                                                          // List of groups
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GroupCreateResponse struct {
	Data  []GroupResponse `json:"data"`                                                          // List of the created Groups or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GroupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GroupResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GroupResponse struct {
	Data  *Group  `json:"data"`                                                          // Data for the Group
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GroupQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Group returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Groups to return. Defaults to 50.
}

func (f GroupQueryFilter) model() (models.Group, error) {
	return models.Group{}, nil
}
