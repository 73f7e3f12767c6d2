package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/vburojevic/cove/internal/domain"
)

// WhereClause represents a parsed --where condition
type WhereClause struct {
	Field    string
	Operator string
	Value    string
	regex    *regexp.Regexp // Compiled regex for ~ and !~ operators
}

// ParseWhereClause parses a where clause like "state=working" or "name~^api"
// Supported operators: =, !=, ~, !~, >=, <=, ^, $
func ParseWhereClause(clause string) (*WhereClause, error) {
	op, idx := splitOperator(clause)
	if op == "" {
		return nil, fmt.Errorf("no valid operator found in where clause: %s (use =, !=, ~, !~, >=, <=, ^, $)", clause)
	}

	field := strings.TrimSpace(clause[:idx])
	value := strings.TrimSpace(clause[idx+len(op):])

	if field == "" || value == "" {
		return nil, fmt.Errorf("invalid where clause: %s", clause)
	}

	wc := &WhereClause{
		Field:    field,
		Operator: op,
		Value:    value,
	}

	if op == "~" || op == "!~" {
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("invalid regex in where clause '%s': %w", clause, err)
		}
		wc.regex = re
	}

	if op == ">=" || op == "<=" {
		if _, err := strconv.Atoi(value); err != nil {
			return nil, fmt.Errorf("%s needs a number in where clause '%s'", op, clause)
		}
	}

	return wc, nil
}

// whereOperators lists two-character operators first so a tie at the same
// position resolves to the longer one.
var whereOperators = []string{"!~", ">=", "<=", "!=", "~", "=", "^", "$"}

// splitOperator finds the operator that starts earliest after the field name.
// Anything after it, operator characters included, belongs to the value.
func splitOperator(clause string) (string, int) {
	op, at := "", -1
	for _, candidate := range whereOperators {
		idx := strings.Index(clause[min(1, len(clause)):], candidate)
		if idx < 0 {
			continue
		}
		idx++
		if at < 0 || idx < at {
			op, at = candidate, idx
		}
	}
	return op, at
}

// Match checks if a window matches this where clause
func (wc *WhereClause) Match(w domain.WindowStatus) bool {
	fieldValue := w.Field(wc.Field)

	switch wc.Operator {
	case "=":
		return fieldValue == wc.Value
	case "!=":
		return fieldValue != wc.Value
	case "~":
		return wc.regex.MatchString(fieldValue)
	case "!~":
		return !wc.regex.MatchString(fieldValue)
	case "^":
		return strings.HasPrefix(fieldValue, wc.Value)
	case "$":
		return strings.HasSuffix(fieldValue, wc.Value)
	case ">=":
		return wc.compareNumber(fieldValue, true)
	case "<=":
		return wc.compareNumber(fieldValue, false)
	}

	return false
}

// compareNumber handles >= and <= on numeric fields such as index
func (wc *WhereClause) compareNumber(fieldValue string, greaterOrEqual bool) bool {
	have, err := strconv.Atoi(fieldValue)
	if err != nil {
		return false
	}
	want, _ := strconv.Atoi(wc.Value)

	if greaterOrEqual {
		return have >= want
	}
	return have <= want
}

// WhereFilter is a filter that applies multiple where clauses (AND logic)
type WhereFilter struct {
	clauses []*WhereClause
}

// NewWhereFilter creates a filter from multiple where clause strings
func NewWhereFilter(whereClauses []string) (*WhereFilter, error) {
	if len(whereClauses) == 0 {
		return nil, nil
	}

	filter := &WhereFilter{}
	for _, clause := range whereClauses {
		wc, err := ParseWhereClause(clause)
		if err != nil {
			return nil, err
		}
		filter.clauses = append(filter.clauses, wc)
	}

	return filter, nil
}

// Match returns true if the window matches ALL where clauses (AND logic).
// A nil filter matches everything.
func (f *WhereFilter) Match(w domain.WindowStatus) bool {
	if f == nil {
		return true
	}
	for _, clause := range f.clauses {
		if !clause.Match(w) {
			return false
		}
	}
	return true
}

// Apply keeps the windows that match
func (f *WhereFilter) Apply(windows []domain.WindowStatus) []domain.WindowStatus {
	return lo.Filter(windows, func(w domain.WindowStatus, _ int) bool { return f.Match(w) })
}
