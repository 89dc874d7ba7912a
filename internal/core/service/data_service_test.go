package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/query"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

func seedData(t *testing.T, repo *stubDataRepo, records ...domain.Data) {
	t.Helper()
	for _, d := range records {
		d := d
		if _, err := repo.Create(context.Background(), &d); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestDataService_Create(t *testing.T) {
	repo := newStubDataRepo()
	svc := NewDataService(repo, zerolog.Nop())

	d, err := svc.Create(context.Background(), validation.Input{"name": " Al ", "age": "30"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if d.ID != 1 || d.Name != "Al" || d.Age != 30 {
		t.Fatalf("unexpected record: %+v", d)
	}
}

func TestDataService_Create_Invalid(t *testing.T) {
	repo := newStubDataRepo()
	svc := NewDataService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), validation.Input{"name": "Al", "age": "130"})
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected nothing stored, got %d records", len(repo.items))
	}
}

func TestDataService_List_SearchAndPaging(t *testing.T) {
	repo := newStubDataRepo()
	seedData(t, repo,
		domain.Data{Name: "a", Age: 5}, domain.Data{Name: "b", Age: 15}, domain.Data{Name: "c", Age: 25},
		domain.Data{Name: "d", Age: 30}, domain.Data{Name: "e", Age: 50}, domain.Data{Name: "f", Age: 51},
	)
	svc := NewDataService(repo, zerolog.Nop())

	page, err := svc.List(context.Background(), query.ListParams{Page: "2", PerPage: "2", Search: "5"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.TotalItems != 5 {
		t.Fatalf("expected 5 matches, got %d", page.TotalItems)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 2 || page.Items[0].Age != 25 || page.Items[1].Age != 50 {
		t.Fatalf("unexpected page items: %+v", page.Items)
	}
}

func TestDataService_List_InvalidPage(t *testing.T) {
	svc := NewDataService(newStubDataRepo(), zerolog.Nop())

	if _, err := svc.List(context.Background(), query.ListParams{Page: "two"}); !errors.Is(err, domain.ErrInvalidPagination) {
		t.Fatalf("expected ErrInvalidPagination, got %v", err)
	}
}

func TestDataService_List_BeyondLastPage(t *testing.T) {
	repo := newStubDataRepo()
	seedData(t, repo, domain.Data{Name: "Al", Age: 30})
	svc := NewDataService(repo, zerolog.Nop())

	page, err := svc.List(context.Background(), query.ListParams{Page: "9"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", page.Items)
	}
	if page.TotalItems != 1 {
		t.Fatalf("expected total 1, got %d", page.TotalItems)
	}
}

func TestDataService_Export(t *testing.T) {
	repo := newStubDataRepo()
	seedData(t, repo, domain.Data{Name: "Alice", Age: 30}, domain.Data{Name: "Bob", Age: 40})
	svc := NewDataService(repo, zerolog.Nop())

	items, err := svc.Export(context.Background(), "ali")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Alice" {
		t.Fatalf("unexpected export: %+v", items)
	}

	none, err := svc.Export(context.Background(), "zzz")
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v, %v", none, err)
	}
}

func TestDataService_Update_Partial(t *testing.T) {
	repo := newStubDataRepo()
	seedData(t, repo, domain.Data{Name: "Al", Age: 30})
	svc := NewDataService(repo, zerolog.Nop())

	d, err := svc.Update(context.Background(), 1, validation.Input{"age": "31"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if d.Name != "Al" || d.Age != 31 {
		t.Fatalf("expected {Al 31}, got %+v", d)
	}
}

func TestDataService_Update_NotFound(t *testing.T) {
	svc := NewDataService(newStubDataRepo(), zerolog.Nop())

	_, err := svc.Update(context.Background(), 7, validation.Input{"age": "31"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "Data 7 not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDataService_Delete(t *testing.T) {
	repo := newStubDataRepo()
	seedData(t, repo, domain.Data{Name: "Al", Age: 30})
	svc := NewDataService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
