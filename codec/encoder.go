package codec

import (
	"github.com/wippyai/plainwire/errors"
	"github.com/wippyai/plainwire/internal/abi"
)

// Encoder writes Records in the positional wire format of one layout plan.
// It holds no per-call state and is safe for concurrent use.
type Encoder struct {
	plan *LayoutPlan
}

func NewEncoder(plan *LayoutPlan) *Encoder {
	return &Encoder{plan: plan}
}

// Plan returns the layout plan the encoder writes.
func (e *Encoder) Plan() *LayoutPlan {
	return e.plan
}

// Encode returns the encoding of rec. Output length is exactly the sum of the
// field contributions; nothing is returned on error.
func (e *Encoder) Encode(rec Record) ([]byte, error) {
	return e.AppendEncode(nil, rec)
}

// AppendEncode appends the encoding of rec to dst. On error dst is returned
// unchanged.
func (e *Encoder) AppendEncode(dst []byte, rec Record) ([]byte, error) {
	vals, err := e.collect(rec)
	if err != nil {
		return dst, err
	}
	return appendRecord(e.plan, dst, vals)
}

// EncodedSize returns the number of bytes Encode would produce for rec.
func (e *Encoder) EncodedSize(rec Record) (int, error) {
	vals, err := e.collect(rec)
	if err != nil {
		return 0, err
	}
	return recordSize(e.plan, vals)
}

func (e *Encoder) collect(rec Record) ([]value, error) {
	p := e.plan
	vals := make([]value, p.Len())
	for i := 0; i < p.Len(); i++ {
		f := p.Field(i).Field
		raw, ok := rec[f.Name]
		if !ok {
			return nil, errors.FieldMissing(errors.PhaseEncode, []string{p.Schema().Name()}, f.Name)
		}
		v, ok := fromAny(f.Kind, raw)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseEncode, p.Path(i), abi.TypeName(raw), f.Kind.String())
		}
		vals[i] = v
	}
	return vals, nil
}

func appendRecord(p *LayoutPlan, dst []byte, vals []value) ([]byte, error) {
	size, err := recordSize(p, vals)
	if err != nil {
		return dst, err
	}
	start := len(dst)
	dst = abi.Grow(dst, size)
	writeRecord(p, dst[start:], vals)
	return dst, nil
}
