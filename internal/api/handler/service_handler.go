package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/api/metrics"
	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

// ServiceHandler handles HTTP requests for Service records.
type ServiceHandler struct {
	service ports.CatalogService
}

func NewServiceHandler(service ports.CatalogService) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// List handles GET /api/service.
//
// @Summary      List services
// @Tags         service
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   serviceResponse
// @Router       /api/service [get]
func (h *ServiceHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]serviceResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toServiceResponse(s))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/service/:id.
//
// @Summary      Get service
// @Tags         service
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Service ID"
// @Success      200  {object}  serviceResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/service/{id} [get]
func (h *ServiceHandler) Get(c echo.Context) error {
	id, err := pathID(c, domain.ResourceService)
	if err != nil {
		return err
	}
	s, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toServiceResponse(s))
}

// Create handles POST /api/service. The image, when sent, is a multipart file
// field named "image".
//
// @Summary      Create service
// @Tags         service
// @Accept       multipart/form-data,json
// @Produce      json
// @Security     BearerAuth
// @Param        service  formData  string  true   "Service name"
// @Param        price    formData  number  true   "Price"
// @Param        image    formData  file    false  "png, jpg or jpeg, at most 2MB"
// @Success      201      {object}  serviceEnvelope
// @Failure      400      {object}  validationErrorResponse
// @Failure      409      {object}  errorResponse
// @Router       /api/service [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}
	image, closer, err := readImage(c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	s, err := h.service.Create(c.Request().Context(), in, image)
	observeUpload(image, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, serviceEnvelope{Status: "success", Service: toServiceResponse(s)})
}

// Update handles PUT /api/service/:id. Absent fields keep their value; a new
// image replaces the reference but the previous file stays on disk.
//
// @Summary      Update service
// @Tags         service
// @Accept       multipart/form-data,json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int     true   "Service ID"
// @Param        service  formData  string  false  "Service name"
// @Param        price    formData  number  false  "Price"
// @Param        image    formData  file    false  "png, jpg or jpeg, at most 2MB"
// @Success      200      {object}  serviceEnvelope
// @Failure      400      {object}  validationErrorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/service/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := pathID(c, domain.ResourceService)
	if err != nil {
		return err
	}
	in, err := readInput(c)
	if err != nil {
		return err
	}
	image, closer, err := readImage(c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	s, err := h.service.Update(c.Request().Context(), id, in, image)
	observeUpload(image, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceEnvelope{Status: "success", Service: toServiceResponse(s)})
}

// Delete handles DELETE /api/service/:id and returns the removed record.
//
// @Summary      Delete service
// @Tags         service
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Service ID"
// @Success      200  {object}  serviceEnvelope
// @Failure      404  {object}  errorResponse
// @Router       /api/service/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := pathID(c, domain.ResourceService)
	if err != nil {
		return err
	}
	s, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceEnvelope{
		Status:  "success",
		Message: "Service deleted successfully",
		Service: toServiceResponse(s),
	})
}

// observeUpload records the outcome of an image attached to a request.
// Failures unrelated to the image are not counted.
func observeUpload(image *ports.ImageUpload, err error) {
	if image == nil {
		return
	}
	metrics.UploadSizeBytes.Observe(float64(image.Size))

	switch {
	case err == nil:
		metrics.UploadsTotal.WithLabelValues("stored").Inc()
	case errors.Is(err, domain.ErrImageExtension):
		metrics.UploadsTotal.WithLabelValues("rejected_extension").Inc()
	case errors.Is(err, domain.ErrImageTooLarge):
		metrics.UploadsTotal.WithLabelValues("rejected_size").Inc()
	}
}
