package gkscairo

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorCategory_String(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     string
	}{
		{ErrorCategoryUnknown, "unknown"},
		{ErrorCategoryConfig, "config"},
		{ErrorCategoryLua, "lua"},
		{ErrorCategoryRender, "render"},
		{ErrorCategoryIO, "io"},
		{ErrorCategory(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.category.String(); got != tt.want {
				t.Errorf("ErrorCategory.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorSeverity_String(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{ErrorSeverity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("ErrorSeverity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategorizedError(t *testing.T) {
	base := errors.New("bad polyline")

	t.Run("Error method", func(t *testing.T) {
		err := NewCategorizedError(base, ErrorCategoryLua, SeverityError)
		if got, want := err.Error(), "[error/lua] bad polyline"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		err := NewCategorizedError(nil, ErrorCategoryIO, SeverityWarning)
		if !strings.Contains(err.Error(), "(no error)") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		err := NewCategorizedError(base, ErrorCategoryRender, SeverityError)
		if !errors.Is(err, base) {
			t.Error("errors.Is should see the wrapped error")
		}
	})

	t.Run("WithContext", func(t *testing.T) {
		err := (&CategorizedError{Err: base}).WithContext("script", "a.lua")
		if err.Context["script"] != "a.lua" {
			t.Errorf("Context = %v", err.Context)
		}
	})

	t.Run("Timestamp", func(t *testing.T) {
		err := NewCategorizedError(base, ErrorCategoryConfig, SeverityError)
		if err.Timestamp.IsZero() {
			t.Error("Timestamp not set")
		}
	})
}

func TestCategorize(t *testing.T) {
	if categorize(nil, ErrorCategoryLua, "a.lua") != nil {
		t.Error("categorize(nil) should be nil")
	}

	err := categorize(errors.New("boom"), ErrorCategoryIO, "a.lua")
	var ce *CategorizedError
	if !errors.As(err, &ce) {
		t.Fatalf("categorize returned %T", err)
	}
	if ce.Category != ErrorCategoryIO || ce.Context["script"] != "a.lua" {
		t.Errorf("unexpected error: %+v", ce)
	}

	again := categorize(err, ErrorCategoryLua, "b.lua")
	if again != err {
		t.Error("an already categorized error should be returned as is")
	}
}
