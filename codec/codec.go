package codec

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/plainwire/errors"
	"github.com/wippyai/plainwire/schema"
)

// Codec encodes and decodes values of a Go struct type T through a layout
// plan. Field access uses offsets resolved once at construction; the bytes
// produced are identical to Encoder's for the same field values.
type Codec[T any] struct {
	compiled *CompiledRecord
}

// NewCodec binds T to plan using the package-wide compiler cache.
func NewCodec[T any](plan *LayoutPlan) (*Codec[T], error) {
	return NewCodecWithCompiler[T](defaultCompiler, plan)
}

func NewCodecWithCompiler[T any](c *Compiler, plan *LayoutPlan) (*Codec[T], error) {
	goType := reflect.TypeFor[T]()
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, nil, goType.String(), "record")
	}
	cr, err := c.Compile(plan, goType)
	if err != nil {
		return nil, err
	}
	return &Codec[T]{compiled: cr}, nil
}

// DeriveCodec derives the schema from T itself (see schema.FromStruct), plans
// it, and binds T to the plan.
func DeriveCodec[T any]() (*Codec[T], error) {
	s, err := schema.FromStruct(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	plan, err := PlanLayout(s)
	if err != nil {
		return nil, err
	}
	return NewCodec[T](plan)
}

// Plan returns the layout plan the codec uses.
func (c *Codec[T]) Plan() *LayoutPlan {
	return c.compiled.Plan
}

// Marshal encodes *v.
func (c *Codec[T]) Marshal(v *T) ([]byte, error) {
	return c.Append(nil, v)
}

// Append appends the encoding of *v to dst. On error dst is returned
// unchanged.
func (c *Codec[T]) Append(dst []byte, v *T) ([]byte, error) {
	if v == nil {
		return dst, errors.NilPointer(errors.PhaseEncode, []string{c.compiled.Plan.Schema().Name()}, "*"+c.compiled.GoType.String())
	}
	vals := make([]value, len(c.compiled.Fields))
	c.compiled.load(unsafe.Pointer(v), vals)
	return appendRecord(c.compiled.Plan, dst, vals)
}

// Unmarshal decodes one record from the start of data into *v. Trailing bytes
// are ignored. *v is left untouched unless every field decodes.
func (c *Codec[T]) Unmarshal(data []byte, v *T) error {
	_, err := c.UnmarshalPrefix(data, v)
	return err
}

// UnmarshalPrefix is like Unmarshal and also returns the number of bytes
// consumed.
func (c *Codec[T]) UnmarshalPrefix(data []byte, v *T) (int, error) {
	if v == nil {
		return 0, errors.NilPointer(errors.PhaseDecode, []string{c.compiled.Plan.Schema().Name()}, "*"+c.compiled.GoType.String())
	}
	vals := make([]value, len(c.compiled.Fields))
	n, err := readRecord(c.compiled.Plan, data, vals)
	if err != nil {
		return 0, err
	}
	c.compiled.store(unsafe.Pointer(v), vals)
	return n, nil
}
