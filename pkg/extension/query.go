package extension

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ValuesFunc resolves a field name to its values on the object being matched
type ValuesFunc func(field string) ([]string, bool)

// Query is a field selector predicate
type Query interface {
	Matches(values ValuesFunc) bool
	// Fields lists every field the query references
	Fields() []string
	String() string
}

type equalQuery struct {
	field string
	value string
}

// Equal matches when any value of field equals value
func Equal(field, value string) Query {
	return equalQuery{field: field, value: value}
}

func (q equalQuery) Matches(values ValuesFunc) bool {
	vals, ok := values(q.field)
	return ok && slices.Contains(vals, q.value)
}

func (q equalQuery) Fields() []string { return []string{q.field} }

func (q equalQuery) String() string { return q.field + " = " + q.value }

type notEqualQuery struct {
	field string
	value string
}

// NotEqual matches when no value of field equals value. Objects without the field match.
func NotEqual(field, value string) Query {
	return notEqualQuery{field: field, value: value}
}

func (q notEqualQuery) Matches(values ValuesFunc) bool {
	vals, _ := values(q.field)
	return !slices.Contains(vals, q.value)
}

func (q notEqualQuery) Fields() []string { return []string{q.field} }

func (q notEqualQuery) String() string { return q.field + " != " + q.value }

type inQuery struct {
	field  string
	values []string
}

// In matches when any value of field is one of values
func In(field string, values ...string) Query {
	return inQuery{field: field, values: values}
}

func (q inQuery) Matches(values ValuesFunc) bool {
	vals, ok := values(q.field)
	if !ok {
		return false
	}
	for _, v := range vals {
		if slices.Contains(q.values, v) {
			return true
		}
	}
	return false
}

func (q inQuery) Fields() []string { return []string{q.field} }

func (q inQuery) String() string {
	return fmt.Sprintf("%s in (%s)", q.field, strings.Join(q.values, ","))
}

type containsQuery struct {
	field  string
	substr string
}

// Contains matches when any value of field contains substr, ignoring case
func Contains(field, substr string) Query {
	return containsQuery{field: field, substr: substr}
}

func (q containsQuery) Matches(values ValuesFunc) bool {
	vals, ok := values(q.field)
	if !ok {
		return false
	}
	needle := strings.ToLower(q.substr)
	for _, v := range vals {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func (q containsQuery) Fields() []string { return []string{q.field} }

func (q containsQuery) String() string { return q.field + " ~ " + q.substr }

type andQuery []Query

// And matches when every query matches
func And(queries ...Query) Query {
	return andQuery(queries)
}

func (q andQuery) Matches(values ValuesFunc) bool {
	for _, sub := range q {
		if !sub.Matches(values) {
			return false
		}
	}
	return true
}

func (q andQuery) Fields() []string { return collectFields(q) }

func (q andQuery) String() string { return joinQueries(q, " AND ") }

type orQuery []Query

// Or matches when at least one query matches
func Or(queries ...Query) Query {
	return orQuery(queries)
}

func (q orQuery) Matches(values ValuesFunc) bool {
	for _, sub := range q {
		if sub.Matches(values) {
			return true
		}
	}
	return false
}

func (q orQuery) Fields() []string { return collectFields(q) }

func (q orQuery) String() string { return joinQueries(q, " OR ") }

type notQuery struct {
	query Query
}

// Not negates a query
func Not(query Query) Query {
	return notQuery{query: query}
}

func (q notQuery) Matches(values ValuesFunc) bool { return !q.query.Matches(values) }

func (q notQuery) Fields() []string { return q.query.Fields() }

func (q notQuery) String() string { return "NOT (" + q.query.String() + ")" }

type allQuery struct{}

// All matches everything
func All() Query {
	return allQuery{}
}

func (allQuery) Matches(ValuesFunc) bool { return true }

func (allQuery) Fields() []string { return nil }

func (allQuery) String() string { return "*" }

func collectFields(queries []Query) []string {
	var fields []string
	for _, q := range queries {
		fields = append(fields, q.Fields()...)
	}
	return fields
}

func joinQueries(queries []Query, sep string) string {
	parts := make([]string, len(queries))
	for i, q := range queries {
		parts[i] = "(" + q.String() + ")"
	}
	return strings.Join(parts, sep)
}

// LabelSelector requires each listed label to carry the given value
type LabelSelector map[string]string

// Matches reports whether labels satisfy every requirement
func (s LabelSelector) Matches(labels map[string]string) bool {
	for k, v := range s {
		if got, ok := labels[k]; !ok || got != v {
			return false
		}
	}
	return true
}

func (s LabelSelector) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + s[k]
	}
	return strings.Join(parts, ",")
}

// ListOptions narrows a list operation
type ListOptions struct {
	FieldSelector Query
	LabelSelector LabelSelector
}

// Key returns a stable string form usable as a cache key
func (o ListOptions) Key() string {
	field := "*"
	if o.FieldSelector != nil {
		field = o.FieldSelector.String()
	}
	return "fields[" + field + "]labels[" + o.LabelSelector.String() + "]"
}
