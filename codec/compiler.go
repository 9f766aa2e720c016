package codec

import (
	"reflect"
	"strings"
	"sync"
	"unsafe"

	"github.com/wippyai/plainwire/errors"
	"github.com/wippyai/plainwire/schema"
	"go.uber.org/zap"
)

// CompiledRecord binds the fields of a layout plan to a Go struct type. Field
// i of Fields belongs to field i of the plan.
type CompiledRecord struct {
	Plan   *LayoutPlan
	GoType reflect.Type
	Fields []CompiledField
}

// CompiledField locates one plan field inside the Go struct.
type CompiledField struct {
	Name     string
	WireName string
	GoOffset uintptr
	Kind     schema.Kind
}

// Compiler binds plans to Go struct types once and caches the result.
type Compiler struct {
	cache sync.Map // cacheKey -> *CompiledRecord
}

type cacheKey struct {
	plan   *LayoutPlan
	goType reflect.Type
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

var defaultCompiler = NewCompiler()

// Compile binds every field of plan to an exported field of goType. Matching
// order: `wire` tag, case-insensitive Go name, then snake_case or kebab-case
// of the Go name. The Go field's kind must hold the field kind exactly.
func (c *Compiler) Compile(plan *LayoutPlan, goType reflect.Type) (*CompiledRecord, error) {
	if plan == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("layout plan cannot be nil").
			Build()
	}
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}
	if goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}

	key := cacheKey{plan: plan, goType: goType}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*CompiledRecord), nil
	}

	cr, err := c.compile(plan, goType)
	if err != nil {
		return nil, err
	}

	actual, _ := c.cache.LoadOrStore(key, cr)
	Logger().Debug("compiled record binding",
		zap.String("schema", plan.Schema().Name()),
		zap.Stringer("go_type", goType),
		zap.Int("fields", len(cr.Fields)))
	return actual.(*CompiledRecord), nil
}

func (c *Compiler) compile(plan *LayoutPlan, goType reflect.Type) (*CompiledRecord, error) {
	name := plan.Schema().Name()
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, []string{name}, goType.String(), "record")
	}

	fields := make([]CompiledField, plan.Len())
	for i := 0; i < plan.Len(); i++ {
		f := plan.Field(i).Field
		goField, found := findGoField(goType, f.Name)
		if !found {
			return nil, errors.FieldMissing(errors.PhaseCompile, []string{name, goType.String()}, f.Name)
		}
		if goField.Type.Kind() != f.Kind.GoKind() {
			return nil, errors.TypeMismatch(errors.PhaseCompile, plan.Path(i), goField.Type.String(), f.Kind.String())
		}
		fields[i] = CompiledField{
			Name:     goField.Name,
			WireName: f.Name,
			GoOffset: goField.Offset,
			Kind:     f.Kind,
		}
	}

	return &CompiledRecord{
		Plan:   plan,
		GoType: goType,
		Fields: fields,
	}, nil
}

func findGoField(goType reflect.Type, wireName string) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() {
			continue
		}

		if tag := field.Tag.Get(schema.TagName); tag != "" {
			if tag == wireName {
				return field, true
			}
			// An explicit tag, including "-", overrides name matching.
			continue
		}

		if strings.EqualFold(field.Name, wireName) {
			return field, true
		}

		snake := schema.ToSnakeCase(field.Name)
		if snake == wireName || strings.ReplaceAll(snake, "_", "-") == wireName {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

// load reads the struct at ptr into vals.
func (cr *CompiledRecord) load(ptr unsafe.Pointer, vals []value) {
	for i := range cr.Fields {
		f := &cr.Fields[i]
		vals[i] = loadField(unsafe.Add(ptr, f.GoOffset), f.Kind)
	}
}

// store writes vals into the struct at ptr.
func (cr *CompiledRecord) store(ptr unsafe.Pointer, vals []value) {
	for i := range cr.Fields {
		f := &cr.Fields[i]
		storeField(unsafe.Add(ptr, f.GoOffset), f.Kind, vals[i])
	}
}

func loadField(ptr unsafe.Pointer, k schema.Kind) value {
	switch k {
	case schema.KindU8:
		return value{bits: uint64(*(*uint8)(ptr))}
	case schema.KindS8:
		return value{bits: uint64(uint8(*(*int8)(ptr)))}
	case schema.KindU16:
		return value{bits: uint64(*(*uint16)(ptr))}
	case schema.KindS16:
		return value{bits: uint64(uint16(*(*int16)(ptr)))}
	case schema.KindU32:
		return value{bits: uint64(*(*uint32)(ptr))}
	case schema.KindS32:
		return value{bits: uint64(uint32(*(*int32)(ptr)))}
	case schema.KindU64:
		return value{bits: *(*uint64)(ptr)}
	case schema.KindS64:
		return value{bits: uint64(*(*int64)(ptr))}
	case schema.KindString:
		return value{str: *(*string)(ptr)}
	default:
		return value{}
	}
}

func storeField(ptr unsafe.Pointer, k schema.Kind, v value) {
	switch k {
	case schema.KindU8:
		*(*uint8)(ptr) = uint8(v.bits)
	case schema.KindS8:
		*(*int8)(ptr) = int8(uint8(v.bits))
	case schema.KindU16:
		*(*uint16)(ptr) = uint16(v.bits)
	case schema.KindS16:
		*(*int16)(ptr) = int16(uint16(v.bits))
	case schema.KindU32:
		*(*uint32)(ptr) = uint32(v.bits)
	case schema.KindS32:
		*(*int32)(ptr) = int32(uint32(v.bits))
	case schema.KindU64:
		*(*uint64)(ptr) = v.bits
	case schema.KindS64:
		*(*int64)(ptr) = int64(v.bits)
	case schema.KindString:
		*(*string)(ptr) = v.str
	}
}
