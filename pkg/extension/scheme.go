package extension

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// FieldName is the built-in metadata.name field
	FieldName = "metadata.name"
	// FieldCreationTimestamp is the built-in metadata.creationTimestamp field
	FieldCreationTimestamp = "metadata.creationTimestamp"
	// labelFieldPrefix selects a single label value, e.g. metadata.labels.app
	labelFieldPrefix = "metadata.labels."
)

// Field is an indexed attribute of T that selectors and sorts can reference
type Field[T Object] struct {
	Name string
	// Values returns the field's string values. Multi-valued fields return more than one.
	Values func(T) []string
	// Compare orders two objects by this field. When nil the first value is compared as a string.
	Compare func(a, b T) int
}

// Type describes one extension kind
type Type[T Object] struct {
	Kind   string
	New    func() T
	Fields []Field[T]
}

func (t *Type[T]) builtin(name string) (Field[T], bool) {
	switch {
	case name == FieldName:
		return Field[T]{
			Name:   FieldName,
			Values: func(obj T) []string { return []string{obj.GetMetadata().Name} },
			Compare: func(a, b T) int {
				return strings.Compare(a.GetMetadata().Name, b.GetMetadata().Name)
			},
		}, true
	case name == FieldCreationTimestamp:
		return Field[T]{
			Name: FieldCreationTimestamp,
			Values: func(obj T) []string {
				return []string{obj.GetMetadata().CreationTimestamp.UTC().Format(time.RFC3339Nano)}
			},
			Compare: func(a, b T) int {
				return a.GetMetadata().CreationTimestamp.Compare(b.GetMetadata().CreationTimestamp)
			},
		}, true
	case strings.HasPrefix(name, labelFieldPrefix) && len(name) > len(labelFieldPrefix):
		key := strings.TrimPrefix(name, labelFieldPrefix)
		return Field[T]{
			Name: name,
			Values: func(obj T) []string {
				if v, ok := obj.GetMetadata().Labels[key]; ok {
					return []string{v}
				}
				return nil
			},
		}, true
	}
	return Field[T]{}, false
}

// Field looks up an indexed field by name
func (t *Type[T]) Field(name string) (Field[T], bool) {
	if f, ok := t.builtin(name); ok {
		return f, true
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Values returns the values of a field on obj
func (t *Type[T]) Values(obj T, field string) ([]string, bool) {
	f, ok := t.Field(field)
	if !ok {
		return nil, false
	}
	return f.Values(obj), true
}

// Matches reports whether obj satisfies the list options
func (t *Type[T]) Matches(obj T, opts ListOptions) bool {
	if !opts.LabelSelector.Matches(obj.GetMetadata().Labels) {
		return false
	}
	if opts.FieldSelector == nil {
		return true
	}
	return opts.FieldSelector.Matches(func(field string) ([]string, bool) {
		return t.Values(obj, field)
	})
}

// Comparator builds an ordering function for the given sort
func (t *Type[T]) Comparator(sort Sort) (func(a, b T) int, error) {
	fields := make([]Field[T], len(sort))
	for i, o := range sort {
		f, ok := t.Field(o.Field)
		if !ok {
			return nil, fmt.Errorf("%s sort on %q: %w", t.Kind, o.Field, ErrUnknownField)
		}
		fields[i] = f
	}

	return func(a, b T) int {
		for i, o := range sort {
			c := compareField(fields[i], a, b)
			if o.Direction == Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	}, nil
}

func compareField[T Object](f Field[T], a, b T) int {
	if f.Compare != nil {
		return f.Compare(a, b)
	}
	return cmp.Compare(first(f.Values(a)), first(f.Values(b)))
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Validate checks that every field referenced by opts and sort is known
func (t *Type[T]) Validate(opts ListOptions, sort Sort) error {
	if opts.FieldSelector != nil {
		for _, name := range opts.FieldSelector.Fields() {
			if _, ok := t.Field(name); !ok {
				return fmt.Errorf("%s selector on %q: %w", t.Kind, name, ErrUnknownField)
			}
		}
	}
	for _, o := range sort {
		if _, ok := t.Field(o.Field); !ok {
			return fmt.Errorf("%s sort on %q: %w", t.Kind, o.Field, ErrUnknownField)
		}
	}
	return nil
}

// Decode unmarshals a JSON document into a new T
func (t *Type[T]) Decode(data []byte) (T, error) {
	obj := t.New()
	if err := json.Unmarshal(data, obj); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode %s: %w", t.Kind, err)
	}
	return obj, nil
}

// Encode marshals obj to JSON
func (t *Type[T]) Encode(obj T) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", t.Kind, err)
	}
	return data, nil
}

// Clone returns a deep copy of obj
func (t *Type[T]) Clone(obj T) (T, error) {
	data, err := t.Encode(obj)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Decode(data)
}
