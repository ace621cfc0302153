// Package query turns loosely-typed list parameters (page, limit, sortBy,
// sortOrder, search, per-field filters) into criteria, sort, and pagination
// values usable against any collection. Every list endpoint shares it so the
// allow-lists, defaults, and combination rules stay in one place.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultLimit applies when the caller omits or mangles the limit parameter.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Reserved parameter names consumed by the builder itself; they never become
// column filters.
var reservedParams = map[string]struct{}{
	"page":      {},
	"limit":     {},
	"sortBy":    {},
	"sortOrder": {},
	"search":    {},
}

// Definition describes how one endpoint exposes its collection: which columns
// free-text search may touch, which parameters map to filterable columns, and
// which sort keys are accepted. Parameter names outside these allow-lists are
// ignored so callers cannot reach arbitrary fields.
type Definition struct {
	// SearchColumns are OR-combined with case-insensitive partial matches
	// when a search term is present.
	SearchColumns []string
	// FilterColumns maps an exposed parameter name to the column it filters
	// on equality. Relation-valued parameters map to the reference id column.
	FilterColumns map[string]string
	// SortColumns maps an exposed sortBy value to the column it orders by.
	SortColumns map[string]string
	// DefaultSortColumn orders results when sortBy is absent or unknown.
	// Defaults to created_at when empty.
	DefaultSortColumn string
	// DefaultDescending selects the direction used when sortOrder is absent.
	DefaultDescending bool
	// DefaultLimit and MaxLimit override the package defaults when positive.
	DefaultLimit int
	MaxLimit     int
}

// Condition is one AND-ed equality criterion.
type Condition struct {
	Column string
	Value  string
}

// Options is the built, side-effect-free query description.
type Options struct {
	Page       int
	Limit      int
	Skip       int
	SortColumn string
	Descending bool
	Search     string
	// SearchColumns carries the endpoint allow-list into Apply.
	SearchColumns []string
	Conditions    []Condition
}

// Build derives Options from raw request parameters. Malformed pagination and
// sort values fall back to defaults rather than failing; unknown parameter
// names are dropped.
func (d Definition) Build(params map[string]string) Options {
	opts := Options{
		Page:          1,
		Limit:         d.limitDefault(),
		SortColumn:    d.sortDefault(),
		Descending:    d.DefaultDescending,
		SearchColumns: d.SearchColumns,
	}

	if page, err := strconv.Atoi(strings.TrimSpace(params["page"])); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(params["limit"])); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if max := d.limitMax(); opts.Limit > max {
		opts.Limit = max
	}
	opts.Skip = (opts.Page - 1) * opts.Limit

	if sortBy := strings.TrimSpace(params["sortBy"]); sortBy != "" {
		if column, ok := d.SortColumns[sortBy]; ok {
			opts.SortColumn = column
			opts.Descending = false
		}
	}
	switch strings.ToLower(strings.TrimSpace(params["sortOrder"])) {
	case "desc":
		opts.Descending = true
	case "asc":
		opts.Descending = false
	case "":
		// keep the default direction
	default:
		// anything unrecognised maps to ascending
		opts.Descending = false
	}

	opts.Search = strings.TrimSpace(params["search"])

	// Deterministic filter order keeps generated SQL (and cache keys) stable.
	names := make([]string, 0, len(d.FilterColumns))
	for name := range d.FilterColumns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, reserved := reservedParams[name]; reserved {
			continue
		}
		value := strings.TrimSpace(params[name])
		if value == "" {
			continue
		}
		opts.Conditions = append(opts.Conditions, Condition{Column: d.FilterColumns[name], Value: value})
	}

	return opts
}

// Apply adds the search and filter criteria to a GORM query. The combination
// rule is AND(OR(search clauses...), condition-1, condition-2, ...): column
// filters always narrow, search broadens within that narrowing. Sort and
// pagination are applied separately so the same criteria can feed a count.
func (o Options) Apply(db *gorm.DB) *gorm.DB {
	if o.Search != "" && len(o.SearchColumns) > 0 {
		like := "%" + strings.ToLower(o.Search) + "%"
		clauses := make([]string, 0, len(o.SearchColumns))
		args := make([]interface{}, 0, len(o.SearchColumns))
		for _, column := range o.SearchColumns {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column))
			args = append(args, like)
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	for _, condition := range o.Conditions {
		db = db.Where(fmt.Sprintf("%s = ?", condition.Column), condition.Value)
	}

	return db
}

// ApplyOrdered layers ordering and pagination on top of Apply.
func (o Options) ApplyOrdered(db *gorm.DB) *gorm.DB {
	return o.Apply(db).Order(o.OrderClause()).Offset(o.Skip).Limit(o.Limit)
}

// OrderClause renders the ORDER BY expression with a stable id tie-break.
func (o Options) OrderClause() string {
	direction := "ASC"
	if o.Descending {
		direction = "DESC"
	}
	if o.SortColumn == "id" {
		return fmt.Sprintf("id %s", direction)
	}
	return fmt.Sprintf("%s %s, id %s", o.SortColumn, direction, direction)
}

func (d Definition) limitDefault() int {
	if d.DefaultLimit > 0 {
		return d.DefaultLimit
	}
	return DefaultLimit
}

func (d Definition) limitMax() int {
	if d.MaxLimit > 0 {
		return d.MaxLimit
	}
	return MaxLimit
}

func (d Definition) sortDefault() string {
	if d.DefaultSortColumn != "" {
		return d.DefaultSortColumn
	}
	return "created_at"
}
