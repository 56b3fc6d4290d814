package admin

import (
	"cmp"
	"fmt"
	"sort"
	"strings"
)

var subjectsCleaner = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")

// ParseSubjects turns the free-form subjects field into a list. It strips
// list punctuation, splits on commas and drops blank items. It never fails.
func ParseSubjects(raw string) []string {
	cleaned := subjectsCleaner.Replace(raw)
	parts := strings.Split(cleaned, ",")
	subjects := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			subjects = append(subjects, item)
		}
	}
	return subjects
}

// Row is one record flattened to field names.
type Row map[string]interface{}

// Project keeps only the view's list columns.
func (v ModelView) Project(row Row) Row {
	out := make(Row, len(v.Columns))
	for _, col := range v.Columns {
		out[col.Field] = row[col.Field]
	}
	return out
}

// Matches reports whether any searchable field contains q, ignoring case.
// An empty query matches everything.
func (v ModelView) Matches(row Row, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range v.Searchable {
		value, ok := row[field]
		if !ok || value == nil {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(value)), q) {
			return true
		}
	}
	return false
}

// SortRows orders rows by field. Unknown fields leave the order unchanged.
func (v ModelView) SortRows(rows []Row, field string, desc bool) {
	if !v.IsSortable(field) {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		order := compareValues(rows[i][field], rows[j][field])
		if desc {
			return order > 0
		}
		return order < 0
	})
}

func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	}
	return strings.Compare(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(b)))
}
