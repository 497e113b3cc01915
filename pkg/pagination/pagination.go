package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 100
)

// Meta describes one page of a listing result.
type Meta struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	PageCount int   `json:"page_count"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the page number to a 1-based value.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Offset computes the row offset for the normalized page/limit pair.
func Offset(page, limit int) int {
	return (NormalizePage(page) - 1) * NormalizeLimit(limit)
}

// BuildMeta assembles pagination metadata from a total row count.
func BuildMeta(total int64, page, limit int) Meta {
	normalizedLimit := NormalizeLimit(limit)
	pageCount := int(total) / normalizedLimit
	if int(total)%normalizedLimit != 0 {
		pageCount++
	}
	return Meta{
		Total:     total,
		Page:      NormalizePage(page),
		Limit:     normalizedLimit,
		PageCount: pageCount,
	}
}
