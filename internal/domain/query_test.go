package domain

import (
	"errors"
	"testing"
)

func TestNewTextQuery_TrimsAndDefaults(t *testing.T) {
	q := NewTextQuery("  pizza  ", 0)

	if q.Text() != "pizza" {
		t.Errorf("expected trimmed text %q, got %q", "pizza", q.Text())
	}
	if q.Limit() != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, q.Limit())
	}
	if q.Modality() != ModalityText {
		t.Errorf("expected modality %q, got %q", ModalityText, q.Modality())
	}
}

func TestValidate_TextTooShort(t *testing.T) {
	cases := []string{"", " ", "  \t ", "p", " p "}

	for _, text := range cases {
		t.Run("text="+text, func(t *testing.T) {
			q := NewTextQuery(text, 10)
			err := q.Validate()
			if !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestValidate_TextOK(t *testing.T) {
	if err := NewTextQuery("pizza", 10).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two characters is the lower bound.
	if err := NewTextQuery(" ok ", 10).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmptyImage(t *testing.T) {
	q := NewImageQuery("", 10)
	if !errors.Is(q.Validate(), ErrInvalidQuery) {
		t.Fatal("expected ErrInvalidQuery for empty image payload")
	}
}

func TestValidate_UnknownModality(t *testing.T) {
	var q SearchQuery
	if !errors.Is(q.Validate(), ErrInvalidQuery) {
		t.Fatal("expected ErrInvalidQuery for zero-value query")
	}
}

func TestTargetVector_ModalityExclusive(t *testing.T) {
	if got := NewTextQuery("pizza", 10).TargetVector(); got != TextVector {
		t.Errorf("text query: expected %q, got %q", TextVector, got)
	}
	if got := NewImageQuery("aGVsbG8=", 10).TargetVector(); got != ImageVector {
		t.Errorf("image query: expected %q, got %q", ImageVector, got)
	}
}
