package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("get: %w", NewNotFound(ResourceData, 12))

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("not found must not match ErrConflict")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Error() != "Data 12 not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConflictError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewConflict(ResourceUser, "email"), "a user with this email already exists"},
		{NewConflict(ResourceService, ""), "a conflicting service already exists"},
		{NewConflict("", ""), "a conflicting record already exists"},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, ErrConflict) {
			t.Fatalf("%v: expected errors.Is ErrConflict", tt.err)
		}
		if tt.err.Error() != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, tt.err.Error())
		}
	}
}

func TestUploadErrorUnwraps(t *testing.T) {
	err := error(&UploadError{Reason: ErrImageTooLarge, Message: "Max 2MB allowed"})
	if !errors.Is(err, ErrImageTooLarge) || err.Error() != "Max 2MB allowed" {
		t.Fatalf("unexpected upload error: %v", err)
	}
}

func TestDataPatch(t *testing.T) {
	orig := Data{ID: 1, Name: "Al", Age: 30}
	if !(DataPatch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}
	if got := (DataPatch{}).Apply(orig); got != orig {
		t.Fatalf("empty patch changed record: %+v", got)
	}

	age := 31
	got := DataPatch{Age: &age}.Apply(orig)
	if got.Age != 31 || got.Name != "Al" || got.ID != 1 {
		t.Fatalf("unexpected patched record: %+v", got)
	}
}

func TestServicePatchAndImageURL(t *testing.T) {
	orig := Service{ID: 2, Name: "Cleaning", Price: 150}
	if orig.ImageURL() != nil {
		t.Fatal("expected nil image url")
	}

	img := "abc.png"
	price := 200.0
	got := ServicePatch{Price: &price, Image: &img}.Apply(orig)
	if got.Name != "Cleaning" || got.Price != 200 {
		t.Fatalf("unexpected patched service: %+v", got)
	}
	if url := got.ImageURL(); url == nil || *url != "/uploads/services/abc.png" {
		t.Fatalf("unexpected image url: %v", url)
	}
}
