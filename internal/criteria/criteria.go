package criteria

import (
	"github.com/dmancera/shopstream-backend/pkg/pagination"
)

// Op identifies a filter comparison.
type Op string

const (
	OpEquals   Op = "equals"
	OpContains Op = "contains"
)

// Direction identifies a sort order.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Filter is a single field comparison. Filters combine as a conjunction.
type Filter struct {
	Field string `json:"field"`
	Op    Op     `json:"type"`
	Value any    `json:"value"`
}

// Sort orders the result set by a single field.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"order"`
}

// Criteria describes a listing query as supplied by the caller. Services may
// append further filters and sorts before the query runs.
type Criteria struct {
	Filters      []Filter `json:"filter"`
	Sorts        []Sort   `json:"sort"`
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
	Associations []string `json:"associations"`
}

// New returns an empty criteria with default pagination.
func New() *Criteria {
	return &Criteria{Page: 1, Limit: pagination.DefaultLimit}
}

// Equals builds an equality filter.
func Equals(field string, value any) Filter {
	return Filter{Field: field, Op: OpEquals, Value: value}
}

// AddFilter appends a filter. Existing filters on the same field are kept;
// the query conjoins all of them.
func (c *Criteria) AddFilter(f Filter) {
	c.Filters = append(c.Filters, f)
}

// AddSort appends a sort with lower precedence than existing sorts.
func (c *Criteria) AddSort(field string, dir Direction) {
	c.Sorts = append(c.Sorts, Sort{Field: field, Direction: dir})
}

// NormalizedPage returns the effective page number.
func (c *Criteria) NormalizedPage() int {
	return pagination.NormalizePage(c.Page)
}

// NormalizedLimit returns the effective page size.
func (c *Criteria) NormalizedLimit() int {
	return pagination.NormalizeLimit(c.Limit)
}

// Offset returns the row offset for the effective page.
func (c *Criteria) Offset() int {
	return pagination.Offset(c.NormalizedPage(), c.NormalizedLimit())
}
