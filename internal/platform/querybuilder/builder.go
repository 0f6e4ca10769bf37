package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder selects how bound arguments are written.
type Placeholder int

const (
	// Dollar writes $1, $2 ... for lib/pq.
	Dollar Placeholder = iota
	// Question writes ? for SQLite.
	Question
)

// PlaceholderFor maps a database/sql driver name to its placeholder style.
func PlaceholderFor(driver string) Placeholder {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return Question
	default:
		return Dollar
	}
}

// statement accumulates SQL text and its bound arguments.
type statement struct {
	strings.Builder
	style Placeholder
	args  []any
}

func (s *statement) bind(v any) {
	s.args = append(s.args, v)
	if s.style == Question {
		s.WriteByte('?')
		return
	}
	s.WriteByte('$')
	s.WriteString(strconv.Itoa(len(s.args)))
}

// Condition is one AND-joined term of a WHERE clause.
type Condition interface {
	render(s *statement)
}

type conditionFunc func(s *statement)

func (f conditionFunc) render(s *statement) { f(s) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(s *statement) {
		s.WriteString(column)
		s.WriteString(" = ")
		s.bind(value)
	})
}

// In renders "column IN (...)". An empty list never matches.
func In[T any](column string, values []T) Condition {
	return conditionFunc(func(s *statement) {
		if len(values) == 0 {
			s.WriteString("1=0")
			return
		}
		s.WriteString(column)
		s.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				s.WriteString(", ")
			}
			s.bind(v)
		}
		s.WriteByte(')')
	})
}

func NotNull(column string) Condition {
	return conditionFunc(func(s *statement) {
		s.WriteString(column)
		s.WriteString(" IS NOT NULL")
	})
}

type SelectBuilder struct {
	style   Placeholder
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) Placeholders(style Placeholder) *SelectBuilder {
	b.style = style
	return b
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// Limit is written inline; zero or less means no limit.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select table is required")
	}

	s := &statement{style: b.style}
	fmt.Fprintf(s, "SELECT %s FROM %s", strings.Join(b.columns, ", "), b.table)
	for i, c := range b.where {
		if i == 0 {
			s.WriteString(" WHERE ")
		} else {
			s.WriteString(" AND ")
		}
		c.render(s)
	}
	if len(b.orderBy) > 0 {
		s.WriteString(" ORDER BY ")
		s.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.WriteString(" LIMIT ")
		s.WriteString(strconv.Itoa(b.limit))
	}

	return s.String(), s.args, nil
}

type InsertBuilder struct {
	style   Placeholder
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Placeholders(style Placeholder) *InsertBuilder {
	b.style = style
	return b
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL such as an ON CONFLICT clause. It takes no arguments.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	s := &statement{style: b.style, args: make([]any, 0, len(b.rows)*len(b.columns))}
	fmt.Fprintf(s, "INSERT INTO %s (%s) VALUES ", b.table, strings.Join(b.columns, ", "))
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteByte('(')
		for j, value := range row {
			if j > 0 {
				s.WriteString(", ")
			}
			s.bind(value)
		}
		s.WriteByte(')')
	}
	if b.suffix != "" {
		s.WriteByte(' ')
		s.WriteString(b.suffix)
	}

	return s.String(), s.args, nil
}
