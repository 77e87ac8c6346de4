package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hauskasse/backend/internal/events"
	"github.com/hauskasse/backend/internal/finance"
	"github.com/hauskasse/backend/internal/httputil"
	"github.com/hauskasse/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringTransactionList)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransactions)
	}

	// RecurringTransaction with ID
	{
		r.OPTIONS("/:id", OptionsRecurringTransactionDetail)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring-transactions [options]
func OptionsRecurringTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [options]
func OptionsRecurringTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecurringTransaction{})
}

// @Summary		Create recurring transaction
// @Description	Creates a new recurring transaction
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	RecurringTransactionCreateResponse
// @Failure		400			{object}	RecurringTransactionCreateResponse
// @Failure		404			{object}	RecurringTransactionCreateResponse
// @Failure		500			{object}	RecurringTransactionCreateResponse
// @Param			recurring	body		[]RecurringTransactionEditable	true	"RecurringTransactions"
// @Router			/v1/recurring-transactions [post]
func CreateRecurringTransactions(c *gin.Context) {
	var editables []RecurringTransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringTransactionCreateResponse{}

	for _, editable := range editables {
		recurring := editable.model()

		err := models.DB.Create(&recurring).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		events.Publish(c.Request.Context(), "recurring-transaction", recurring.ID.String(), "created")

		data := newRecurringTransaction(c, recurring, finance.MonthlyAmount(recurring.Interval, recurring.Amount))
		r.Data = append(r.Data, RecurringTransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List recurring transactions
// @Description	Returns a list of recurring transactions
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionListResponse
// @Failure		500	{object}	RecurringTransactionListResponse
// @Router			/v1/recurring-transactions [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			user		query	string	false	"Filter by user ID"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			type		query	string	false	"Filter by transaction type"
// @Param			interval	query	string	false	"Filter by recurrence interval"
// @Param			active		query	bool	false	"Is the recurrence active?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first RecurringTransaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of RecurringTransactions to return. Defaults to 50."
func GetRecurringTransactions(c *gin.Context) {
	var filter RecurringTransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, _ := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = nameFilters(q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 RecurringTransactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var recurring []models.RecurringTransaction
	err := q.Find(&recurring).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecurringTransaction, 0)
	for _, r := range recurring {
		data = append(data, newRecurringTransaction(c, r, finance.MonthlyAmount(r.Interval, r.Amount)))
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionResponse
// @Failure		400	{object}	RecurringTransactionResponse
// @Failure		404	{object}	RecurringTransactionResponse
// @Failure		500	{object}	RecurringTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [get]
func GetRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	data := newRecurringTransaction(c, recurring, finance.MonthlyAmount(recurring.Interval, recurring.Amount))
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Update recurring transaction
// @Description	Update an existing recurring transaction. Only values to be updated need to be specified.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	RecurringTransactionResponse
// @Failure		400			{object}	RecurringTransactionResponse
// @Failure		404			{object}	RecurringTransactionResponse
// @Failure		500			{object}	RecurringTransactionResponse
// @Param			id			path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recurring	body		RecurringTransactionEditable	true	"RecurringTransaction"
// @Router			/v1/recurring-transactions/{id} [patch]
func UpdateRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var data RecurringTransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	// If the amount set via the API request is not existent or
	// is 0, we use the old amount
	if data.Amount.IsZero() {
		data.Amount = recurring.Amount
	}

	err = models.DB.Model(&recurring).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	events.Publish(c.Request.Context(), "recurring-transaction", recurring.ID.String(), "updated")

	r := newRecurringTransaction(c, recurring, finance.MonthlyAmount(recurring.Interval, recurring.Amount))
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &r})
}

// @Summary		Delete recurring transaction
// @Description	Deletes a recurring transaction
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [delete]
func DeleteRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&recurring).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Publish(c.Request.Context(), "recurring-transaction", recurring.ID.String(), "deleted")

	c.JSON(http.StatusNoContent, nil)
}
