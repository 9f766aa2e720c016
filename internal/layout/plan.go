package layout

import (
	"strconv"
	"strings"

	"github.com/wippyai/plainwire/errors"
	"github.com/wippyai/plainwire/schema"
)

// LengthPrefixSize is the width of the u32 length that precedes string bytes.
const LengthPrefixSize = 4

// Offset is either Static with a known byte position, or Dynamic.
type Offset struct {
	pos    int
	static bool
}

// Static returns an offset fixed at pos bytes from the start of the record.
func Static(pos int) Offset {
	return Offset{pos: pos, static: true}
}

// Dynamic returns an offset that is only known at runtime.
func Dynamic() Offset {
	return Offset{}
}

func (o Offset) IsStatic() bool  { return o.static }
func (o Offset) IsDynamic() bool { return !o.static }

// Pos returns the static byte position. ok is false for Dynamic offsets.
func (o Offset) Pos() (pos int, ok bool) {
	return o.pos, o.static
}

func (o Offset) String() string {
	if o.static {
		return "static(" + strconv.Itoa(o.pos) + ")"
	}
	return "dynamic"
}

// FieldLayout places one schema field.
type FieldLayout struct {
	Field  schema.Field
	Offset Offset
	// Width is the fixed byte width, or 0 for strings.
	Width int
}

// Plan is the immutable layout of a schema. Field i of the plan is field i of
// the schema.
type Plan struct {
	schema       *schema.Schema
	fields       []FieldLayout
	staticSize   int
	firstDynamic int
	minSize      int
}

// Compute plans the layout of s. It fails with a compile-phase unsupported
// error if any field kind is not a fixed-width integer or string.
func Compute(s *schema.Schema) (*Plan, error) {
	if s == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Detail("schema is nil").
			Build()
	}

	p := &Plan{
		schema:       s,
		fields:       make([]FieldLayout, s.Len()),
		firstDynamic: s.Len(),
	}

	offset := 0
	dynamic := false
	for i := 0; i < s.Len(); i++ {
		f := s.Field(i)
		if !f.Kind.Supported() {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(s.Name(), f.Name).
				WireType(f.Kind.String()).
				Detail("only fixed-width integers and string can be laid out").
				Build()
		}

		fl := FieldLayout{Field: f, Width: f.Kind.Width()}
		switch {
		case !dynamic && f.Kind.IsFixed():
			fl.Offset = Static(offset)
			offset += fl.Width
		default:
			if !dynamic {
				dynamic = true
				p.firstDynamic = i
			}
			fl.Offset = Dynamic()
		}
		p.fields[i] = fl

		if fl.Width > 0 {
			p.minSize += fl.Width
		} else {
			p.minSize += LengthPrefixSize
		}
	}
	p.staticSize = offset
	return p, nil
}

// Schema returns the schema the plan was computed from.
func (p *Plan) Schema() *schema.Schema { return p.schema }

// Len returns the number of fields.
func (p *Plan) Len() int { return len(p.fields) }

// Field returns the layout of the i-th field.
func (p *Plan) Field(i int) FieldLayout { return p.fields[i] }

// Fields returns a copy of all field layouts in schema order.
func (p *Plan) Fields() []FieldLayout {
	out := make([]FieldLayout, len(p.fields))
	copy(out, p.fields)
	return out
}

// StaticSize is the number of bytes covered by the Static prefix. The first
// Dynamic field, if any, starts there.
func (p *Plan) StaticSize() int { return p.staticSize }

// FirstDynamic is the index of the first Dynamic field, or Len() if every
// field is Static.
func (p *Plan) FirstDynamic() int { return p.firstDynamic }

// MinSize is the length of the shortest possible encoding: every string empty.
func (p *Plan) MinSize() int { return p.minSize }

// FixedSize returns the exact encoded size when the record has no string.
func (p *Plan) FixedSize() (int, bool) {
	if p.firstDynamic < len(p.fields) {
		return 0, false
	}
	return p.staticSize, true
}

// Path returns the error path for field i.
func (p *Plan) Path(i int) []string {
	return []string{p.schema.Name(), p.fields[i].Field.Name}
}

func (p *Plan) String() string {
	var b strings.Builder
	b.WriteString(p.schema.Name())
	b.WriteByte('{')
	for i, fl := range p.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fl.Field.Name)
		b.WriteByte(' ')
		b.WriteString(fl.Field.Kind.String())
		b.WriteByte('@')
		b.WriteString(fl.Offset.String())
	}
	b.WriteByte('}')
	return b.String()
}
