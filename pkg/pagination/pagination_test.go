package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(0, 10); got != 0 {
		t.Fatalf("expected offset 0 for page 0, got %d", got)
	}
	if got := Offset(3, 10); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(21, 2, 10)
	if meta.Total != 21 {
		t.Fatalf("expected total 21, got %d", meta.Total)
	}
	if meta.Page != 2 || meta.Limit != 10 {
		t.Fatalf("unexpected page/limit %d/%d", meta.Page, meta.Limit)
	}
	if meta.PageCount != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.PageCount)
	}

	exact := BuildMeta(20, 1, 10)
	if exact.PageCount != 2 {
		t.Fatalf("expected 2 pages for exact division, got %d", exact.PageCount)
	}
}
