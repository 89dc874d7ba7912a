package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/core/ports"
)

// UploadHandler serves stored service images.
type UploadHandler struct {
	images ports.ImageStore
}

func NewUploadHandler(images ports.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

// ServiceImage handles GET /uploads/services/:filename.
//
// @Summary      Service image
// @Tags         uploads
// @Produce      octet-stream
// @Param        filename  path  string  true  "Generated image name"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /uploads/services/{filename} [get]
func (h *UploadHandler) ServiceImage(c echo.Context) error {
	p, err := h.images.Path(c.Param("filename"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}
	return c.File(p)
}
