package schema

import (
	"strings"

	"github.com/wippyai/plainwire/errors"
)

// Field describes one named, typed field of a record.
type Field struct {
	Name string
	Kind Kind
}

// Schema is an ordered list of fields. Order is fixed at construction and the
// schema is never mutated afterwards, so it can be shared freely.
type Schema struct {
	index  map[string]int
	name   string
	fields []Field
}

// New builds a schema from fields in declaration order. Field names must be
// non-empty and unique. Kinds are not checked here; the layout planner rejects
// kinds it cannot lay out.
func New(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)

	for i, f := range s.fields {
		if f.Name == "" {
			return nil, errors.New(errors.PhaseCompile, errors.KindInvalidInput).
				Path(name).
				Detail("field %d has an empty name", i).
				Build()
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, errors.DuplicateField(errors.PhaseCompile, []string{name}, f.Name)
		}
		s.index[f.Name] = i
	}
	return s, nil
}

// MustNew is like New but panics on error. Intended for package-level schemas.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the record name given at construction.
func (s *Schema) Name() string {
	return s.name
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the i-th field in declaration order.
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup finds a field by name.
func (s *Schema) Lookup(name string) (Field, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, -1, false
	}
	return s.fields[i], i, true
}

// String renders the schema as name{field kind, ...}.
func (s *Schema) String() string {
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte(' ')
		b.WriteString(f.Kind.String())
	}
	b.WriteByte('}')
	return b.String()
}
