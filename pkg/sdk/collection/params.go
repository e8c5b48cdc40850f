package collection

import (
	"fmt"
	"maps"
	"strconv"
	"time"
)

const DefaultPageSize int = 100

const (
	ViewCount    string = "count"
	ViewIDs      string = "ids"
	ViewExpanded string = "expanded"
)

// Query holds the constraints of a collection request
type Query struct {
	filters map[string]string
	search  string
	limit   int
	offset  int
	view    string
}

type QueryDecoratorFunc func(q *Query)

// Where adds equality filters. Values are formatted the way the API expects
// them in a query string.
func Where(filters map[string]any) QueryDecoratorFunc {
	return func(q *Query) {
		if q.filters == nil {
			q.filters = map[string]string{}
		}
		for k, v := range filters {
			q.filters[k] = formatFilter(v)
		}
	}
}

func Search(text string) QueryDecoratorFunc {
	return func(q *Query) {
		q.search = text
	}
}

// Limit caps the total number of items returned, not the page size
func Limit(count int) QueryDecoratorFunc {
	return func(q *Query) {
		q.limit = count
	}
}

func Offset(count int) QueryDecoratorFunc {
	return func(q *Query) {
		q.offset = count
	}
}

func View(view string) QueryDecoratorFunc {
	return func(q *Query) {
		q.view = view
	}
}

func (q Query) clone() Query {
	c := q
	if q.filters != nil {
		c.filters = maps.Clone(q.filters)
	}
	return c
}

func (q Query) Filtered() bool {
	return len(q.filters) > 0
}

func (q Query) Searching() bool {
	return q.search != ""
}

// Params returns the query string parameters for one page of the query
func (q Query) Params(limit, offset int) map[string]string {
	params := make(map[string]string, len(q.filters)+4)

	maps.Copy(params, q.filters)

	if q.search != "" {
		params["q"] = q.search
	}
	if q.view != "" {
		params["view"] = q.view
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	if offset > 0 {
		params["offset"] = strconv.Itoa(offset)
	}

	return params
}

func formatFilter(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return strconv.FormatInt(v.Unix(), 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
