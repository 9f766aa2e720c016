package schema

import (
	"github.com/wippyai/plainwire/errors"
	"go.bytecodealliance.org/wit"
)

// FromWIT derives a schema from a WIT record type definition. Primitive field
// types map onto the matching Kind; nested types map onto KindRecord or
// KindList so that the planner can report them. Type aliases are followed.
func FromWIT(td *wit.TypeDef) (*Schema, error) {
	if td == nil {
		return nil, errors.NilPointer(errors.PhaseCompile, nil, "*wit.TypeDef")
	}

	name := ""
	if td.Name != nil {
		name = *td.Name
	}

	rec, ok := resolveAlias(td).Kind.(*wit.Record)
	if !ok {
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			Path(name).
			WireType("record").
			Detail("WIT type definition is %T, not a record", td.Kind).
			Build()
	}

	fields := make([]Field, 0, len(rec.Fields))
	for _, wf := range rec.Fields {
		kind, ok := witKind(wf.Type)
		if !ok {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(name, wf.Name).
				Detail("unsupported WIT type: %T", wf.Type).
				Build()
		}
		fields = append(fields, Field{Name: wf.Name, Kind: kind})
	}
	return New(name, fields...)
}

func resolveAlias(td *wit.TypeDef) *wit.TypeDef {
	for {
		alias, ok := td.Kind.(wit.Type)
		if !ok {
			return td
		}
		next, ok := alias.(*wit.TypeDef)
		if !ok {
			return td
		}
		td = next
	}
}

func witKind(t wit.Type) (Kind, bool) {
	switch typ := t.(type) {
	case wit.Bool:
		return KindBool, true
	case wit.U8:
		return KindU8, true
	case wit.S8:
		return KindS8, true
	case wit.U16:
		return KindU16, true
	case wit.S16:
		return KindS16, true
	case wit.U32:
		return KindU32, true
	case wit.S32:
		return KindS32, true
	case wit.U64:
		return KindU64, true
	case wit.S64:
		return KindS64, true
	case wit.F32:
		return KindF32, true
	case wit.F64:
		return KindF64, true
	case wit.Char:
		return KindChar, true
	case wit.String:
		return KindString, true
	case *wit.TypeDef:
		switch kind := typ.Kind.(type) {
		case *wit.Record:
			return KindRecord, true
		case *wit.List:
			return KindList, true
		case wit.Type:
			return witKind(kind)
		}
	}
	return 0, false
}
