package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hauskasse/backend/internal/events"
	"github.com/hauskasse/backend/internal/httputil"
	"github.com/hauskasse/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterGroupRoutes registers the routes for groups with
// the RouterGroup that is passed.
func RegisterGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGroupList)
		r.GET("", GetGroups)
		r.POST("", CreateGroups)
	}

	// Group with ID
	{
		r.OPTIONS("/:id", OptionsGroupDetail)
		r.GET("/:id", GetGroup)
		r.PATCH("/:id", UpdateGroup)
		r.DELETE("/:id", DeleteGroup)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Router			/v1/groups [options]
func OptionsGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groups/{id} [options]
func OptionsGroupDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Group{})
}

// @Summary		Create group
// @Description	Creates a new group
// @Tags			Groups
// @Accept			json
// @Produce		json
// @Success		201		{object}	GroupCreateResponse
// @Failure		400		{object}	GroupCreateResponse
// @Failure		500		{object}	GroupCreateResponse
// @Param			groups	body		[]GroupEditable	true	"Groups"
// @Router			/v1/groups [post]
func CreateGroups(c *gin.Context) {
	var editables []GroupEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GroupCreateResponse{}

	for _, editable := range editables {
		group := editable.model()

		err := models.DB.Create(&group).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		events.Publish(c.Request.Context(), "group", group.ID.String(), "created")

		data := newGroup(c, group)
		r.Data = append(r.Data, GroupResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List groups
// @Description	Returns a list of groups
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	GroupListResponse
// @Failure		500	{object}	GroupListResponse
// @Router			/v1/groups [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first Group returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Groups to return. Defaults to 50."
func GetGroups(c *gin.Context) {
	var filter GroupQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, _ := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Groups and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var groups []models.Group
	err := q.Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Group, 0)
	for _, group := range groups {
		data = append(data, newGroup(c, group))
	}

	c.JSON(http.StatusOK, GroupListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get group
// @Description	Returns a specific group
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	GroupResponse
// @Failure		400	{object}	GroupResponse
// @Failure		404	{object}	GroupResponse
// @Failure		500	{object}	GroupResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groups/{id} [get]
func GetGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	data := newGroup(c, group)
	c.JSON(http.StatusOK, GroupResponse{Data: &data})
}

// @Summary		Update group
// @Description	Update an existing group. Only values to be updated need to be specified.
// @Tags			Groups
// @Accept			json
// @Produce		json
// @Success		200		{object}	GroupResponse
// @Failure		400		{object}	GroupResponse
// @Failure		404		{object}	GroupResponse
// @Failure		500		{object}	GroupResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			group	body		GroupEditable	true	"Group"
// @Router			/v1/groups/{id} [patch]
func UpdateGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GroupEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var data GroupEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&group).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	events.Publish(c.Request.Context(), "group", group.ID.String(), "updated")

	r := newGroup(c, group)
	c.JSON(http.StatusOK, GroupResponse{Data: &r})
}

// @Summary		Delete group
// @Description	Deletes a group
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groups/{id} [delete]
func DeleteGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&group).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Publish(c.Request.Context(), "group", group.ID.String(), "deleted")

	c.JSON(http.StatusNoContent, nil)
}
