package criteria

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
)

// FromRequest builds a criteria from an incoming listing request. POST
// requests carry the criteria as a JSON body; GET requests carry it in query
// parameters (limit, page, sort, association, filter[field]=value). An empty
// body or query yields the default criteria.
func FromRequest(r *http.Request) (*Criteria, error) {
	if r.Method == http.MethodPost {
		return fromBody(r)
	}
	return fromQuery(r)
}

func fromBody(r *http.Request) (*Criteria, error) {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	c := New()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(c); err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid criteria body").WithDetails(map[string]any{"error": err.Error()})
	}
	for _, f := range c.Filters {
		if f.Field == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "filter field is required")
		}
		if f.Op == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "filter type is required")
		}
	}
	for i, s := range c.Sorts {
		if s.Field == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sort field is required")
		}
		if s.Direction == "" {
			c.Sorts[i].Direction = Ascending
		}
	}
	return c, nil
}

// fromQuery accepts sort values of the form "field" or "-field" for
// descending order, and equality filters as filter[field]=value.
func fromQuery(r *http.Request) (*Criteria, error) {
	c := New()
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit must be an integer")
		}
		c.Limit = limit
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "page must be an integer")
		}
		c.Page = page
	}
	for _, raw := range q["sort"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if field, ok := strings.CutPrefix(part, "-"); ok {
				c.AddSort(field, Descending)
				continue
			}
			c.AddSort(part, Ascending)
		}
	}
	c.Associations = append(c.Associations, q["association"]...)
	for key, values := range q {
		field, ok := filterField(key)
		if !ok {
			continue
		}
		if field == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "filter field is required")
		}
		for _, value := range values {
			c.AddFilter(Equals(field, value))
		}
	}
	return c, nil
}

// filterField extracts the field name from a filter[field] query key.
func filterField(key string) (string, bool) {
	inner, ok := strings.CutPrefix(key, "filter[")
	if !ok {
		return "", false
	}
	return strings.CutSuffix(inner, "]")
}
