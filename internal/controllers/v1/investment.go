package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hauskasse/backend/internal/events"
	"github.com/hauskasse/backend/internal/httputil"
	"github.com/hauskasse/backend/internal/models"
	"github.com/hauskasse/backend/internal/quotes"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
	"golang.org/x/exp/slices"
)

// RegisterInvestmentRoutes registers the routes for investments with
// the RouterGroup that is passed.
func RegisterInvestmentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInvestmentList)
		r.GET("", GetInvestments)
		r.POST("", CreateInvestments)
	}

	r.GET("/valuation", GetInvestmentValuation)

	// Investment with ID
	{
		r.OPTIONS("/:id", OptionsInvestmentDetail)
		r.GET("/:id", GetInvestment)
		r.PATCH("/:id", UpdateInvestment)
		r.DELETE("/:id", DeleteInvestment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Investments
// @Success		204
// @Router			/v1/investments [options]
func OptionsInvestmentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Investments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/investments/{id} [options]
func OptionsInvestmentDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Investment{})
}

// @Summary		Create investment
// @Description	Creates a new investment position
// @Tags			Investments
// @Accept			json
// @Produce		json
// @Success		201			{object}	InvestmentCreateResponse
// @Failure		400			{object}	InvestmentCreateResponse
// @Failure		404			{object}	InvestmentCreateResponse
// @Failure		500			{object}	InvestmentCreateResponse
// @Param			investments	body		[]InvestmentEditable	true	"Investments"
// @Router			/v1/investments [post]
func CreateInvestments(c *gin.Context) {
	var editables []InvestmentEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvestmentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := InvestmentCreateResponse{}

	for _, editable := range editables {
		investment := editable.model()

		err := models.DB.Create(&investment).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		events.Publish(c.Request.Context(), "investment", investment.ID.String(), "created")

		data := newInvestment(c, investment)
		r.Data = append(r.Data, InvestmentResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List investments
// @Description	Returns a list of investment positions
// @Tags			Investments
// @Produce		json
// @Success		200	{object}	InvestmentListResponse
// @Failure		500	{object}	InvestmentListResponse
// @Router			/v1/investments [get]
// @Param			user	query	string	false	"Filter by user ID"
// @Param			account	query	string	false	"Filter by account ID"
// @Param			symbol	query	string	false	"Filter by ticker symbol"
// @Param			offset	query	uint	false	"The offset of the first Investment returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Investments to return. Defaults to 50."
func GetInvestments(c *gin.Context) {
	var filter InvestmentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, _ := filter.model()

	q := models.DB.
		Order("symbol ASC, " + models.DateTimeSort(models.DB, "investments.purchase_date") + " ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Investments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var investments []models.Investment
	err := q.Find(&investments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvestmentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Investment, 0)
	for _, investment := range investments {
		data = append(data, newInvestment(c, investment))
	}

	c.JSON(http.StatusOK, InvestmentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get investment valuation
// @Description	Returns the current valuation of all positions of the user. Prices come from the market data provider, positions without a price are valued at zero.
// @Tags			Investments
// @Produce		json
// @Success		200		{object}	InvestmentValuationResponse
// @Failure		400		{object}	InvestmentValuationResponse
// @Failure		404		{object}	InvestmentValuationResponse
// @Failure		500		{object}	InvestmentValuationResponse
// @Param			user	query		string	true	"ID of the user"
// @Router			/v1/investments/valuation [get]
func GetInvestmentValuation(c *gin.Context) {
	var query struct {
		UserID hk_uuid.UUID `form:"user"`
	}
	if err := c.Bind(&query); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, InvestmentValuationResponse{
			Error: &s,
		})
		return
	}

	if query.UserID == hk_uuid.Nil {
		s := errUserParameter.Error()
		c.JSON(http.StatusBadRequest, InvestmentValuationResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err := models.DB.First(&user, query.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentValuationResponse{
			Error: &s,
		})
		return
	}

	var investments []models.Investment
	err = models.DB.
		Where(&models.Investment{UserID: user.ID}).
		Order("symbol ASC, " + models.DateTimeSort(models.DB, "investments.purchase_date") + " ASC").
		Find(&investments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentValuationResponse{
			Error: &s,
		})
		return
	}

	symbols := make([]string, 0, len(investments))
	for _, investment := range investments {
		symbols = append(symbols, investment.Symbol)
	}

	prices := quotes.NewClient().LastCloses(c.Request.Context(), symbols)

	valuation := InvestmentValuation{
		Positions: make([]InvestmentPosition, 0, len(investments)),
	}

	for _, investment := range investments {
		lastClose := prices[investment.Symbol]
		purchaseValue := investment.Shares.Mul(investment.PurchasePrice)
		currentValue := investment.Shares.Mul(lastClose)

		valuation.Positions = append(valuation.Positions, InvestmentPosition{
			Investment:   newInvestment(c, investment),
			LastClose:    lastClose,
			CurrentValue: currentValue,
			GainLoss:     currentValue.Sub(purchaseValue),
		})

		valuation.PurchaseValue = valuation.PurchaseValue.Add(purchaseValue)
		valuation.CurrentValue = valuation.CurrentValue.Add(currentValue)
	}

	valuation.GainLoss = valuation.CurrentValue.Sub(valuation.PurchaseValue)

	c.JSON(http.StatusOK, InvestmentValuationResponse{Data: &valuation})
}

// @Summary		Get investment
// @Description	Returns a specific investment position
// @Tags			Investments
// @Produce		json
// @Success		200	{object}	InvestmentResponse
// @Failure		400	{object}	InvestmentResponse
// @Failure		404	{object}	InvestmentResponse
// @Failure		500	{object}	InvestmentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/investments/{id} [get]
func GetInvestment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentResponse{
			Error: &s,
		})
		return
	}

	var investment models.Investment
	err = models.DB.First(&investment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentResponse{
			Error: &s,
		})
		return
	}

	data := newInvestment(c, investment)
	c.JSON(http.StatusOK, InvestmentResponse{Data: &data})
}

// @Summary		Update investment
// @Description	Update an existing investment position. Only values to be updated need to be specified.
// @Tags			Investments
// @Accept			json
// @Produce		json
// @Success		200			{object}	InvestmentResponse
// @Failure		400			{object}	InvestmentResponse
// @Failure		404			{object}	InvestmentResponse
// @Failure		500			{object}	InvestmentResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			investment	body		InvestmentEditable	true	"Investment"
// @Router			/v1/investments/{id} [patch]
func UpdateInvestment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentResponse{
			Error: &s,
		})
		return
	}

	var investment models.Investment
	err = models.DB.First(&investment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, InvestmentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentResponse{
			Error: &s,
		})
		return
	}

	var data InvestmentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentResponse{
			Error: &s,
		})
		return
	}

	// If the shares set via the API request are not existent or
	// are 0, we use the old shares
	if data.Shares.IsZero() {
		data.Shares = investment.Shares
	}

	err = models.DB.Model(&investment).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InvestmentResponse{
			Error: &s,
		})
		return
	}

	events.Publish(c.Request.Context(), "investment", investment.ID.String(), "updated")

	r := newInvestment(c, investment)
	c.JSON(http.StatusOK, InvestmentResponse{Data: &r})
}

// @Summary		Delete investment
// @Description	Deletes an investment position
// @Tags			Investments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/investments/{id} [delete]
func DeleteInvestment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var investment models.Investment
	err = models.DB.First(&investment, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&investment).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Publish(c.Request.Context(), "investment", investment.ID.String(), "deleted")

	c.JSON(http.StatusNoContent, nil)
}
