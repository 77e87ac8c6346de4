package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hauskasse/backend/internal/events"
	"github.com/hauskasse/backend/internal/httputil"
	"github.com/hauskasse/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterBudgetPeriodRoutes registers the routes for budget periods
// with the RouterGroup that is passed.
func RegisterBudgetPeriodRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetPeriodList)
		r.GET("", GetBudgetPeriods)
		r.POST("", CreateBudgetPeriod)
	}

	// BudgetPeriod with ID
	{
		r.OPTIONS("/:id", OptionsBudgetPeriodDetail)
		r.GET("/:id", GetBudgetPeriod)
		r.POST("/:id/close", CloseBudgetPeriod)
		r.DELETE("/:id", DeleteBudgetPeriod)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			BudgetPeriods
// @Success		204
// @Router			/v1/budget-periods [options]
func OptionsBudgetPeriodList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			BudgetPeriods
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-periods/{id} [options]
func OptionsBudgetPeriodDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.BudgetPeriod{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Start budget period
// @Description	Opens a new budget period for a user. A period that is still open is closed the day before the new period starts.
// @Tags			BudgetPeriods
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetPeriodResponse
// @Failure		400		{object}	BudgetPeriodResponse
// @Failure		404		{object}	BudgetPeriodResponse
// @Failure		500		{object}	BudgetPeriodResponse
// @Param			period	body		BudgetPeriodEditable	true	"BudgetPeriod"
// @Router			/v1/budget-periods [post]
func CreateBudgetPeriod(c *gin.Context) {
	var editable BudgetPeriodEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetPeriodResponse{
			Error: &e,
		})
		return
	}

	period, err := models.StartPeriod(models.DB, editable.UserID, editable.StartDate)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetPeriodResponse{
			Error: &e,
		})
		return
	}

	events.Publish(c.Request.Context(), "budget-period", period.ID.String(), "created")

	data := newBudgetPeriod(c, period)
	c.JSON(http.StatusCreated, BudgetPeriodResponse{Data: &data})
}

// @Summary		List budget periods
// @Description	Returns a list of budget periods, oldest first
// @Tags			BudgetPeriods
// @Produce		json
// @Success		200	{object}	BudgetPeriodListResponse
// @Failure		500	{object}	BudgetPeriodListResponse
// @Router			/v1/budget-periods [get]
// @Param			user	query	string	false	"Filter by user ID"
// @Param			active	query	bool	false	"Is the period open?"
// @Param			offset	query	uint	false	"The offset of the first BudgetPeriod returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of BudgetPeriods to return. Defaults to 50."
func GetBudgetPeriods(c *gin.Context) {
	var filter BudgetPeriodQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, _ := filter.model()

	q := models.DB.
		Order(models.DateTimeSort(models.DB, "budget_periods.start_date") + " ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 BudgetPeriods and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var periods []models.BudgetPeriod
	err := q.Find(&periods).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetPeriodListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetPeriodListResponse{
			Error: &e,
		})
		return
	}

	data := make([]BudgetPeriod, 0)
	for _, period := range periods {
		data = append(data, newBudgetPeriod(c, period))
	}

	c.JSON(http.StatusOK, BudgetPeriodListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget period
// @Description	Returns a specific budget period
// @Tags			BudgetPeriods
// @Produce		json
// @Success		200	{object}	BudgetPeriodResponse
// @Failure		400	{object}	BudgetPeriodResponse
// @Failure		404	{object}	BudgetPeriodResponse
// @Failure		500	{object}	BudgetPeriodResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-periods/{id} [get]
func GetBudgetPeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetPeriodResponse{
			Error: &s,
		})
		return
	}

	var period models.BudgetPeriod
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetPeriodResponse{
			Error: &s,
		})
		return
	}

	data := newBudgetPeriod(c, period)
	c.JSON(http.StatusOK, BudgetPeriodResponse{Data: &data})
}

// @Summary		Close budget period
// @Description	Closes the budget period and opens the successor period starting the following day. Both happen in one database transaction.
// @Tags			BudgetPeriods
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetPeriodCloseResponse
// @Failure		400		{object}	BudgetPeriodCloseResponse
// @Failure		404		{object}	BudgetPeriodCloseResponse
// @Failure		500		{object}	BudgetPeriodCloseResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			close	body		BudgetPeriodCloseBody	true	"End date"
// @Router			/v1/budget-periods/{id}/close [post]
func CloseBudgetPeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetPeriodCloseResponse{
			Error: &s,
		})
		return
	}

	var period models.BudgetPeriod
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetPeriodCloseResponse{
			Error: &s,
		})
		return
	}

	var body BudgetPeriodCloseBody
	err = httputil.BindData(c, &body)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetPeriodCloseResponse{
			Error: &s,
		})
		return
	}

	successor, err := period.Close(models.DB, body.EndDate)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetPeriodCloseResponse{
			Error: &s,
		})
		return
	}

	// Re-read the closed period so the response reflects the stored state
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetPeriodCloseResponse{
			Error: &s,
		})
		return
	}

	events.Publish(c.Request.Context(), "budget-period", period.ID.String(), "updated")
	events.Publish(c.Request.Context(), "budget-period", successor.ID.String(), "created")

	closed := newBudgetPeriod(c, period)
	next := newBudgetPeriod(c, successor)
	c.JSON(http.StatusOK, BudgetPeriodCloseResponse{
		Data:      &closed,
		Successor: &next,
	})
}

// @Summary		Delete budget period
// @Description	Deletes a budget period
// @Tags			BudgetPeriods
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-periods/{id} [delete]
func DeleteBudgetPeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var period models.BudgetPeriod
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&period).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Publish(c.Request.Context(), "budget-period", period.ID.String(), "deleted")

	c.JSON(http.StatusNoContent, nil)
}
