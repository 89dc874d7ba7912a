package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/query"
)

// DataHandler handles HTTP requests for Data records.
type DataHandler struct {
	service ports.DataService
}

func NewDataHandler(service ports.DataService) *DataHandler {
	return &DataHandler{service: service}
}

// List handles GET /api/data.
//
// @Summary      List data
// @Tags         data
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        per_page  query     int     false  "Page size (default 5, max 100)"
// @Param        search    query     string  false  "Name substring or age digits"
// @Success      200       {object}  dataListResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/data [get]
func (h *DataHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), query.ListParams{
		Page:    c.QueryParam("page"),
		PerPage: c.QueryParam("per_page"),
		Search:  c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDataListResponse(page))
}

// Export handles GET /api/data/export.
//
// @Summary      Export data
// @Description  Every record matching the search, without pagination.
// @Tags         data
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Name substring or age digits"
// @Success      200     {array}   domain.Data
// @Router       /api/data/export [get]
func (h *DataHandler) Export(c echo.Context) error {
	items, err := h.service.Export(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/data/:id.
//
// @Summary      Get data
// @Tags         data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Data ID"
// @Success      200  {object}  domain.Data
// @Failure      404  {object}  errorResponse
// @Router       /api/data/{id} [get]
func (h *DataHandler) Get(c echo.Context) error {
	id, err := pathID(c, domain.ResourceData)
	if err != nil {
		return err
	}
	d, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Create handles POST /api/data.
//
// @Summary      Create data
// @Tags         data
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dataRequest  true  "Name and age"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  validationErrorResponse
// @Router       /api/data [post]
func (h *DataHandler) Create(c echo.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	d, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "Data added successfully", Data: d})
}

// Update handles PUT /api/data/:id. Absent fields keep their value.
//
// @Summary      Update data
// @Tags         data
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Data ID"
// @Param        body  body      dataRequest  true  "Fields to change"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/data/{id} [put]
func (h *DataHandler) Update(c echo.Context) error {
	id, err := pathID(c, domain.ResourceData)
	if err != nil {
		return err
	}
	in, err := readInput(c)
	if err != nil {
		return err
	}
	d, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: fmt.Sprintf("Data %d updated successfully", id), Data: d})
}

// Delete handles DELETE /api/data/:id.
//
// @Summary      Delete data
// @Tags         data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Data ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/data/{id} [delete]
func (h *DataHandler) Delete(c echo.Context) error {
	id, err := pathID(c, domain.ResourceData)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Data %d deleted successfully", id)})
}
