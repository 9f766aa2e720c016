package codec

import (
	"github.com/wippyai/plainwire/internal/layout"
	"github.com/wippyai/plainwire/schema"
	"go.uber.org/zap"
)

// LayoutPlan marks every field of a schema as Static (known byte offset) or
// Dynamic (located by a cursor at runtime).
type LayoutPlan = layout.Plan

// FieldLayout is the placement of one field within a LayoutPlan.
type FieldLayout = layout.FieldLayout

// Offset is Static(pos) or Dynamic.
type Offset = layout.Offset

// LengthPrefixSize is the width of the little-endian u32 that precedes the
// bytes of every string.
const LengthPrefixSize = layout.LengthPrefixSize

// PlanLayout derives the layout plan of s. Compute it once per record type and
// share it; plans are immutable.
func PlanLayout(s *schema.Schema) (*LayoutPlan, error) {
	p, err := layout.Compute(s)
	if err != nil {
		if s != nil {
			Logger().Debug("layout planning failed", zap.String("schema", s.Name()), zap.Error(err))
		}
		return nil, err
	}
	Logger().Debug("layout planned",
		zap.String("schema", s.Name()),
		zap.Int("fields", p.Len()),
		zap.Int("static_size", p.StaticSize()),
		zap.Int("first_dynamic", p.FirstDynamic()),
		zap.Int("min_size", p.MinSize()))
	return p, nil
}

// MustPlanLayout is like PlanLayout but panics on error.
func MustPlanLayout(s *schema.Schema) *LayoutPlan {
	p, err := PlanLayout(s)
	if err != nil {
		panic(err)
	}
	return p
}
