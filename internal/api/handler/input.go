package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

const imageField = "image"

var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")

// readInput decodes the request body into loosely typed fields. JSON bodies
// keep numbers as json.Number; form bodies keep the first value per key.
func readInput(c echo.Context) (validation.Input, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ct, echo.MIMEMultipartForm), strings.HasPrefix(ct, echo.MIMEApplicationForm):
		return readForm(c)
	default:
		return readJSON(c.Request().Body)
	}
}

func readJSON(body io.Reader) (validation.Input, error) {
	if body == nil {
		return validation.Input{}, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, errInvalidPayload
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return validation.Input{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	in := validation.Input{}
	if err := dec.Decode(&in); err != nil {
		return nil, errInvalidPayload
	}
	return in, nil
}

func readForm(c echo.Context) (validation.Input, error) {
	values, err := c.FormParams()
	if err != nil {
		return nil, errInvalidPayload
	}
	in := make(validation.Input, len(values))
	for k, v := range values {
		if len(v) > 0 {
			in[k] = v[0]
		}
	}
	return in, nil
}

// readImage returns the uploaded image file, or nil when none was attached.
// The caller owns closing the returned closer.
func readImage(c echo.Context) (*ports.ImageUpload, io.Closer, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil, nil
	}
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errInvalidPayload
	}
	if fh.Filename == "" {
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &ports.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: f}, f, nil
}

// pathID parses the :id route parameter. A non-integer id names a record
// that cannot exist.
func pathID(c echo.Context, resource string) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, resource+" "+raw+" not found")
	}
	return id, nil
}
