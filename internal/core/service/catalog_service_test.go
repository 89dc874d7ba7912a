package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

type catalogFixture struct {
	svc    ports.CatalogService
	repo   *stubServiceRepo
	images *stubImageStore
}

func newCatalogFixture() catalogFixture {
	repo := newStubServiceRepo()
	images := newStubImageStore()
	lookup := &stubLookup{users: newStubUserRepo(), services: repo}
	svc := NewCatalogService(repo, lookup, NewImageUploader(images, 0), zerolog.Nop())
	return catalogFixture{svc: svc, repo: repo, images: images}
}

func pngUpload(size int) *ports.ImageUpload {
	return &ports.ImageUpload{Filename: "photo.PNG", Size: int64(size), Content: bytes.NewReader(make([]byte, size))}
}

func TestCatalogService_Create_WithImage(t *testing.T) {
	f := newCatalogFixture()

	s, err := f.svc.Create(context.Background(), validation.Input{"service": "Deep cleaning", "price": "250"}, pngUpload(1<<20))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if s.Image == nil {
		t.Fatalf("expected image to be recorded")
	}
	if _, ok := f.images.files[*s.Image]; !ok {
		t.Fatalf("expected image %s to be stored", *s.Image)
	}
	if url := s.ImageURL(); url == nil || *url != domain.ImageURLPrefix+*s.Image {
		t.Fatalf("unexpected image url: %v", url)
	}
}

func TestCatalogService_Create_InvalidSkipsUpload(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.Create(context.Background(), validation.Input{"service": "Bad", "price": "250"}, pngUpload(10))
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(f.images.files) != 0 {
		t.Fatalf("expected no image written, got %d", len(f.images.files))
	}
}

func TestCatalogService_Create_OversizedImage(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.Create(context.Background(), validation.Input{"service": "Deep cleaning", "price": "250"}, pngUpload(3<<20))
	if !errors.Is(err, domain.ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
	if len(f.repo.items) != 0 {
		t.Fatalf("expected no service stored")
	}
}

func TestCatalogService_Update_SelfExclusion(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	first, _ := f.svc.Create(ctx, validation.Input{"service": "Deep cleaning", "price": "250"}, nil)
	_, _ = f.svc.Create(ctx, validation.Input{"service": "Window washing", "price": "300"}, nil)

	updated, err := f.svc.Update(ctx, first.ID, validation.Input{"service": "Deep cleaning", "price": "400"}, nil)
	if err != nil {
		t.Fatalf("keeping own name should succeed, got %v", err)
	}
	if updated.Price != 400 {
		t.Fatalf("expected price 400, got %v", updated.Price)
	}

	_, err = f.svc.Update(ctx, first.ID, validation.Input{"service": "WINDOW WASHING"}, nil)
	var errs validation.Errors
	if !errors.As(err, &errs) || !errs.Has("service") {
		t.Fatalf("expected service name clash, got %v", err)
	}
}

func TestCatalogService_Update_ReplacesImage(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	s, _ := f.svc.Create(ctx, validation.Input{"service": "Deep cleaning", "price": "250"}, pngUpload(10))
	old := *s.Image

	updated, err := f.svc.Update(ctx, s.ID, validation.Input{}, pngUpload(20))
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if *updated.Image == old {
		t.Fatalf("expected a new image name")
	}
	if _, ok := f.images.files[old]; !ok {
		t.Fatalf("previous image should be left in place")
	}
}

func TestCatalogService_Delete_ReturnsRecord(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	s, _ := f.svc.Create(ctx, validation.Input{"service": "Deep cleaning", "price": "250"}, nil)
	removed, err := f.svc.Delete(ctx, s.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if removed.Name != "Deep cleaning" {
		t.Fatalf("unexpected removed record: %+v", removed)
	}
	if _, err := f.svc.Delete(ctx, s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
