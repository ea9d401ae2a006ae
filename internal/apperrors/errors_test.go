package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestBodyHidesCauseForClientErrors(t *testing.T) {
	err := InvalidInput("No audio file provided").WithCause(errors.New("missing part"))
	body := err.Body()
	if body["error"] != "No audio file provided" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	if _, ok := body["details"]; ok {
		t.Fatal("client errors must not expose details")
	}
}

func TestBodyExposesCauseForServerErrors(t *testing.T) {
	err := Internal("Error processing interview response").WithCause(errors.New("boom"))
	body := err.Body()
	if body["details"] != "boom" {
		t.Fatalf("expected details boom, got %v", body["details"])
	}
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", err.HTTPStatus)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	base := ExternalService("languagetool", errors.New("dial tcp: refused"))
	wrapped := fmt.Errorf("check grammar: %w", base)

	appErr, ok := As(wrapped)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if appErr.Service != "languagetool" {
		t.Fatalf("expected service languagetool, got %q", appErr.Service)
	}
	if !IsCode(wrapped, ErrCodeExternalService) {
		t.Fatal("expected external service code")
	}
	if IsCode(wrapped, ErrCodeInternal) {
		t.Fatal("did not expect internal code")
	}
}

func TestFromError(t *testing.T) {
	if got := FromError(RateLimited(), "x"); got.Code != ErrCodeRateLimited {
		t.Fatalf("expected passthrough, got %s", got.Code)
	}
	got := FromError(errors.New("disk full"), "Error processing interview response")
	if got.Code != ErrCodeInternal || got.Message != "Error processing interview response" {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if !errors.Is(got, got.Cause) {
		t.Fatal("cause should be reachable through Unwrap")
	}
}
