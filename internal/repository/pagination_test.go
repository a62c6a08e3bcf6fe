package repository

import "testing"

func TestPageRequest(t *testing.T) {
	t.Run("Should create PageRequest with defaults", func(t *testing.T) {
		pageReq := NewPageRequest(0, "")
		if pageReq.GetEffectiveLimit() != DefaultPageSize {
			t.Errorf("Expected default limit %d, got %d", DefaultPageSize, pageReq.GetEffectiveLimit())
		}
		if pageReq.HasCursor() {
			t.Error("Expected HasCursor to be false for empty cursor")
		}
	})

	t.Run("Should enforce max page size", func(t *testing.T) {
		pageReq := NewPageRequest(999, "")
		if pageReq.GetEffectiveLimit() != DefaultPageSize {
			t.Errorf("Expected enforced limit %d, got %d", DefaultPageSize, pageReq.GetEffectiveLimit())
		}
	})

	t.Run("Should allow valid limits", func(t *testing.T) {
		pageReq := NewPageRequest(50, "")
		if pageReq.GetEffectiveLimit() != 50 {
			t.Errorf("Expected limit 50, got %d", pageReq.GetEffectiveLimit())
		}
	})

	t.Run("Should carry the continuation cursor opaquely", func(t *testing.T) {
		pageReq := NewPageRequest(20, "c1")
		if !pageReq.HasCursor() {
			t.Error("Expected HasCursor to be true")
		}
		if pageReq.Cursor != "c1" {
			t.Errorf("Expected cursor c1, got %s", pageReq.Cursor)
		}
	})
}
