package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("access denied")
	mapped := ToDomainError(original)
	if mapped.Code != "FORBIDDEN" || mapped.HTTPStatus != http.StatusForbidden {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading order: %w", NewNotFound("order", nil))
	mapped := ToDomainError(wrapped)
	if mapped.Code != "NOT_FOUND" {
		t.Fatalf("wrapped domain error lost: %+v", mapped)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(fmt.Errorf("query: %w", pgx.ErrNoRows))
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("connection refused"))
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
	if mapped.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", mapped.Message)
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if mapped := ToDomainError(nil); mapped != nil {
		t.Fatalf("expected nil, got %+v", mapped)
	}
}
