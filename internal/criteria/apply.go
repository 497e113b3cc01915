package criteria

import (
	"fmt"

	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"gorm.io/gorm"
)

// Field maps an exposed criteria field onto a SQL column. Join, when set, is
// the JOIN clause the column requires; it is added to the query at most once.
type Field struct {
	Column string
	Join   string
}

// FieldMap is the whitelist of fields a repository accepts in criteria.
type FieldMap map[string]Field

// Apply adds the criteria's filters, associations, and sorts to the query.
// Fields outside the map are rejected so callers cannot reach arbitrary
// columns. Pagination is left to the repository.
func (c *Criteria) Apply(tx *gorm.DB, fields FieldMap) (*gorm.DB, error) {
	joined := map[string]bool{}
	tx, err := c.applyFilters(tx, fields, joined)
	if err != nil {
		return nil, err
	}
	for _, s := range c.Sorts {
		field, ok := fields[s.Field]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sort field %q", s.Field))
		}
		tx = join(tx, field, joined)
		dir := "ASC"
		if s.Direction == Descending {
			dir = "DESC"
		}
		tx = tx.Order(field.Column + " " + dir)
	}
	return tx, nil
}

// ApplyFilters adds only the filters and associations, without ordering.
// Count queries use this so ORDER BY never reaches the aggregate.
func (c *Criteria) ApplyFilters(tx *gorm.DB, fields FieldMap) (*gorm.DB, error) {
	return c.applyFilters(tx, fields, map[string]bool{})
}

func (c *Criteria) applyFilters(tx *gorm.DB, fields FieldMap, joined map[string]bool) (*gorm.DB, error) {
	for _, f := range c.Filters {
		field, ok := fields[f.Field]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown filter field %q", f.Field))
		}
		tx = join(tx, field, joined)
		switch f.Op {
		case OpEquals:
			tx = tx.Where(field.Column+" = ?", f.Value)
		case OpContains:
			val, ok := f.Value.(string)
			if !ok {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("contains filter on %q requires a string value", f.Field))
			}
			tx = tx.Where(field.Column+" LIKE ?", "%"+val+"%")
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported filter type %q", f.Op))
		}
	}
	for _, assoc := range c.Associations {
		field, ok := fields[assoc]
		if !ok || field.Join == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown association %q", assoc))
		}
		tx = join(tx, field, joined)
	}
	return tx, nil
}

func join(tx *gorm.DB, field Field, joined map[string]bool) *gorm.DB {
	if field.Join == "" || joined[field.Join] {
		return tx
	}
	joined[field.Join] = true
	return tx.Joins(field.Join)
}
