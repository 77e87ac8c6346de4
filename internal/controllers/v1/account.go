package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hauskasse/backend/internal/events"
	"github.com/hauskasse/backend/internal/httputil"
	"github.com/hauskasse/backend/internal/models"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
	"golang.org/x/exp/slices"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", GetAccounts)
		r.POST("", CreateAccounts)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Router			/v1/accounts [options]
func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Account{})
}

// @Summary		Create account
// @Description	Creates a new account
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		201			{object}	AccountCreateResponse
// @Failure		400			{object}	AccountCreateResponse
// @Failure		404			{object}	AccountCreateResponse
// @Failure		500			{object}	AccountCreateResponse
// @Param			accounts	body		[]AccountEditable	true	"Accounts"
// @Router			/v1/accounts [post]
func CreateAccounts(c *gin.Context) {
	var editables []AccountEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AccountCreateResponse{}

	for _, editable := range editables {
		account := editable.model()

		err := models.DB.Create(&account).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		if len(editable.UserIDs) > 0 {
			err = account.ReplaceUsers(models.DB, editable.UserIDs)
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
		}

		data, err := newAccount(c, models.DB, account)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, AccountResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List accounts
// @Description	Returns a list of accounts
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountListResponse
// @Failure		500	{object}	AccountListResponse
// @Router			/v1/accounts [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			group		query	string	false	"Filter by group ID"
// @Param			type		query	string	false	"Filter by account type"
// @Param			user		query	string	false	"Filter by ID of a user sharing the account"
// @Param			archived	query	bool	false	"Is the account archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Account returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Accounts to return. Defaults to 50."
func GetAccounts(c *gin.Context) {
	var filter AccountQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, _ := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	if filter.User != hk_uuid.Nil {
		q = q.
			Joins("JOIN account_users ON account_users.account_id = accounts.id").
			Where("account_users.user_id = ?", filter.User)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Accounts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var accounts []models.Account
	err := q.Find(&accounts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Account, 0)
	for _, account := range accounts {
		apiResource, err := newAccount(c, models.DB, account)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AccountListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, AccountListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Failure		500	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	data, err := newAccount(c, models.DB, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Update account
// @Description	Update an existing account. Only values to be updated need to be specified.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	var data AccountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	// The user set is updated through its own association, remove it
	// from the fields updated on the account itself
	updateUsers := false
	fields := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		if field == "UserIDs" {
			updateUsers = true
			continue
		}
		fields = append(fields, field)
	}

	err = models.DB.Model(&account).Select("", fields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	if updateUsers {
		err = account.ReplaceUsers(models.DB, data.UserIDs)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AccountResponse{
				Error: &s,
			})
			return
		}
	}

	events.Publish(c.Request.Context(), "account", account.ID.String(), "updated")

	r, err := newAccount(c, models.DB, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &r})
}

// @Summary		Delete account
// @Description	Deletes an account
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&account).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Publish(c.Request.Context(), "account", account.ID.String(), "deleted")

	c.JSON(http.StatusNoContent, nil)
}
