package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestPipelineError_Message(t *testing.T) {
	err := NewPipelineError(ErrDataUnavailable, "market", "not enough data for %s", "AAPL")

	if err.Kind != ErrDataUnavailable {
		t.Errorf("unexpected kind: %s", err.Kind)
	}
	if got := err.Error(); got != "market: not enough data for AAPL" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestPipelineError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapPipelineError(ErrExternalService, "news", cause, "failed to fetch headlines for %s", "TSLA")

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}

	var pe *PipelineError
	wrapped := fmt.Errorf("pipeline: %w", err)
	if !errors.As(wrapped, &pe) {
		t.Fatal("expected errors.As to find PipelineError through wrapping")
	}
	if pe.Kind != ErrExternalService {
		t.Errorf("unexpected kind: %s", pe.Kind)
	}
}

func TestKindOf(t *testing.T) {
	if kind := KindOf(NewPipelineError(ErrValidation, "ticker", "no ticker")); kind != ErrValidation {
		t.Errorf("expected validation kind, got %s", kind)
	}

	// Non-pipeline errors default to external-service
	if kind := KindOf(errors.New("boom")); kind != ErrExternalService {
		t.Errorf("expected external-service default, got %s", kind)
	}
}
