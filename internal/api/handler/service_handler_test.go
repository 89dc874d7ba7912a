package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

type stubCatalogService struct {
	createFn func(ctx context.Context, in validation.Input, image *ports.ImageUpload) (*domain.Service, error)
	getFn    func(ctx context.Context, id int64) (*domain.Service, error)
	listFn   func(ctx context.Context) ([]*domain.Service, error)
	updateFn func(ctx context.Context, id int64, in validation.Input, image *ports.ImageUpload) (*domain.Service, error)
	deleteFn func(ctx context.Context, id int64) (*domain.Service, error)
}

func (s *stubCatalogService) Create(ctx context.Context, in validation.Input, image *ports.ImageUpload) (*domain.Service, error) {
	return s.createFn(ctx, in, image)
}

func (s *stubCatalogService) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatalogService) List(ctx context.Context) ([]*domain.Service, error) {
	return s.listFn(ctx)
}

func (s *stubCatalogService) Update(ctx context.Context, id int64, in validation.Input, image *ports.ImageUpload) (*domain.Service, error) {
	return s.updateFn(ctx, id, in, image)
}

func (s *stubCatalogService) Delete(ctx context.Context, id int64) (*domain.Service, error) {
	return s.deleteFn(ctx, id)
}

func TestServiceHandler_Create_WithImage(t *testing.T) {
	now := time.Now()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, in validation.Input, image *ports.ImageUpload) (*domain.Service, error) {
			if image == nil || image.Filename != "photo.png" {
				t.Fatalf("expected image upload, got %+v", image)
			}
			if _, err := io.ReadAll(image.Content); err != nil {
				t.Fatalf("read image: %v", err)
			}
			name := "abc.png"
			return &domain.Service{ID: 1, Name: "Cleaning", Price: 150, Image: &name, CreatedAt: now, UpdatedAt: now}, nil
		},
	}
	handler := NewServiceHandler(stub)

	body, ct := newMultipart(t, map[string]string{"service": "Cleaning", "price": "150"}, "photo.png", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/api/service", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["status"] != "success" {
		t.Fatalf("unexpected status: %v", resp["status"])
	}
	svc, ok := resp["service"].(map[string]any)
	if !ok || svc["image"] != "/uploads/services/abc.png" || svc["service"] != "Cleaning" {
		t.Fatalf("unexpected service payload: %+v", resp["service"])
	}
	if _, ok := resp["message"]; ok {
		t.Fatalf("create response carries no message")
	}
}

func TestServiceHandler_Get_NullImage(t *testing.T) {
	stub := &stubCatalogService{
		getFn: func(ctx context.Context, id int64) (*domain.Service, error) {
			return &domain.Service{ID: id, Name: "Cleaning", Price: 150}, nil
		},
	}
	handler := NewServiceHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/service/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	img, present := resp["image"]
	if !present || img != nil {
		t.Fatalf("expected image null, got %v (present=%v)", img, present)
	}
}

func TestServiceHandler_Delete_ReturnsRecord(t *testing.T) {
	stub := &stubCatalogService{
		deleteFn: func(ctx context.Context, id int64) (*domain.Service, error) {
			return &domain.Service{ID: id, Name: "Cleaning", Price: 150}, nil
		},
	}
	handler := NewServiceHandler(stub)

	c, rec := newJSONContext(http.MethodDelete, "/api/service/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Service deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if svc, ok := resp["service"].(map[string]any); !ok || svc["id"] != float64(3) {
		t.Fatalf("unexpected service payload: %+v", resp["service"])
	}
}

func TestServiceHandler_Update_UploadRejected(t *testing.T) {
	rejected := &domain.UploadError{Reason: domain.ErrImageExtension, Message: "Invalid image format"}
	stub := &stubCatalogService{
		updateFn: func(ctx context.Context, id int64, in validation.Input, image *ports.ImageUpload) (*domain.Service, error) {
			return nil, rejected
		},
	}
	handler := NewServiceHandler(stub)

	body, ct := newMultipart(t, nil, "photo.bmp", []byte("img"))
	req := httptest.NewRequest(http.MethodPut, "/api/service/3", body)
	req.Header.Set(echo.HeaderContentType, ct)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Update(c); !errors.Is(err, domain.ErrImageExtension) {
		t.Fatalf("expected extension error, got %v", err)
	}
}

type stubImageStore struct {
	dir string
}

func (s *stubImageStore) Save(ctx context.Context, name string, r io.Reader) error {
	return errors.New("not used")
}

func (s *stubImageStore) Path(name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", errors.New("invalid name")
	}
	return filepath.Join(s.dir, name), nil
}

func TestUploadHandler_ServiceImage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "abc.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	e := echo.New()
	handler := NewUploadHandler(&stubImageStore{dir: dir})
	e.GET("/uploads/services/:filename", handler.ServiceImage)

	req := httptest.NewRequest(http.MethodGet, "/uploads/services/abc.png", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "png" {
		t.Fatalf("expected 200 png, got %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/uploads/services/missing.png", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
