package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recordkeep/customer-api/internal/api/metrics"
	"github.com/recordkeep/customer-api/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer record operations.
type CustomerHandler struct {
	service ports.CustomerService
	log     zerolog.Logger
}

func NewCustomerHandler(service ports.CustomerService, log zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, log: log}
}

// Create handles POST /v1/customers.
//
// @Summary      Create a customer record
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      customerRequest  true  "Customer details"
// @Success      201   {object}  customerResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	req, err := bindCustomerRequest(c)
	if err != nil {
		return err
	}
	input, err := toCustomerInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.CustomersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// Get handles GET /v1/customers/:id.
//
// @Summary      Get a customer by ID
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  customerResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// List handles GET /v1/customers.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  customerListResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	customers, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerListResponse{
		Customers: toCustomerResponses(customers),
		Page:      page,
		Limit:     limit,
	})
}

// Update handles PUT /v1/customers/:id.
//
// @Summary      Update a customer record
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Customer ID"
// @Param        body  body      customerRequest  true  "Customer details"
// @Success      200   {object}  customerResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	req, err := bindCustomerRequest(c)
	if err != nil {
		return err
	}
	input, err := toCustomerInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Delete handles DELETE /v1/customers/:id.
//
// @Summary      Delete a customer record
// @Tags         customers
// @Security     BearerAuth
// @Param        id  path  string  true  "Customer ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.log.Info().Str("customer_id", id).Str("deleted_by", username).Msg("customer deleted")
	return c.NoContent(http.StatusNoContent)
}

// AverageAge handles GET /v1/customers/average-age.
//
// @Summary      Average customer age
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  averageAgeResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/customers/average-age [get]
func (h *CustomerHandler) AverageAge(c echo.Context) error {
	avg, err := h.service.AverageAge(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.CustomerQueriesTotal.WithLabelValues("average_age").Inc()
	return c.JSON(http.StatusOK, averageAgeResponse{AverageAge: avg})
}

// AgeRange handles GET /v1/customers/age-range.
//
// @Summary      Customers within an age range
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        min_age  query     int  true  "Minimum age (inclusive)"
// @Param        max_age  query     int  true  "Maximum age (inclusive)"
// @Success      200      {array}   customerResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Router       /v1/customers/age-range [get]
func (h *CustomerHandler) AgeRange(c echo.Context) error {
	minAge, err := strconv.Atoi(c.QueryParam("min_age"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "min_age must be an integer")
	}
	maxAge, err := strconv.Atoi(c.QueryParam("max_age"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "max_age must be an integer")
	}

	customers, err := h.service.ByAgeRange(c.Request().Context(), minAge, maxAge)
	if err != nil {
		return err
	}
	metrics.CustomerQueriesTotal.WithLabelValues("age_range").Inc()
	return c.JSON(http.StatusOK, toCustomerResponses(customers))
}

func bindCustomerRequest(c echo.Context) (customerRequest, error) {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func queryInt(c echo.Context, name string, def int64) int64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return def
	}
	return v
}
