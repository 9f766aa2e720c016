package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	plainwire "github.com/wippyai/plainwire"
	"github.com/wippyai/plainwire/errors"
)

// WazeroAllocator implements plainwire.Allocator using the guest's exported
// allocation functions.
type WazeroAllocator struct {
	allocFn       api.Function
	freeFn        api.Function
	ctx           context.Context
	stackBuf      [4]uint64
	mu            sync.Mutex
	isSimpleAlloc bool
}

// NewWazeroAllocator looks up the allocator exports of mod. It fails if the
// guest exports no allocation function; a missing free function is allowed.
func NewWazeroAllocator(mod api.Module) (*WazeroAllocator, error) {
	a := &WazeroAllocator{ctx: context.Background()}

	defs := mod.ExportedFunctionDefinitions()
	for _, name := range allocNames {
		def := defs[name]
		if def == nil {
			continue
		}
		switch {
		case len(def.ParamTypes()) == 4 && len(def.ResultTypes()) == 1:
			a.isSimpleAlloc = false
		case len(def.ParamTypes()) == 1 && len(def.ResultTypes()) == 1:
			a.isSimpleAlloc = true
		default:
			return nil, errors.New(errors.PhaseMemory, errors.KindTypeMismatch).
				Path(mod.Name(), name).
				Detail("allocator has %d params and %d results", len(def.ParamTypes()), len(def.ResultTypes())).
				Build()
		}
		a.allocFn = mod.ExportedFunction(name)
		Logger().Debug("guest allocator found",
			zap.String("module", mod.Name()),
			zap.String("export", name),
			zap.Bool("simple", a.isSimpleAlloc))
		break
	}
	if a.allocFn == nil {
		return nil, errors.New(errors.PhaseMemory, errors.KindAllocation).
			Path(mod.Name()).
			Detail("guest exports no allocator (tried %v)", allocNames).
			Build()
	}

	for _, name := range freeNames {
		if def := defs[name]; def != nil && len(def.ParamTypes()) >= 1 {
			a.freeFn = mod.ExportedFunction(name)
			break
		}
	}
	return a, nil
}

// WithContext returns a copy of a whose guest calls run under ctx.
func (a *WazeroAllocator) WithContext(ctx context.Context) *WazeroAllocator {
	if ctx == nil {
		ctx = context.Background()
	}
	return &WazeroAllocator{
		allocFn:       a.allocFn,
		freeFn:        a.freeFn,
		ctx:           ctx,
		isSimpleAlloc: a.isSimpleAlloc,
	}
}

func (a *WazeroAllocator) Alloc(size, align uint32) (uint32, error) {
	if a == nil || a.allocFn == nil {
		return 0, errors.AllocationFailed(errors.PhaseMemory, size, align)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isSimpleAlloc {
		a.stackBuf[0] = uint64(size)
		if err := a.allocFn.CallWithStack(a.ctx, a.stackBuf[:1]); err != nil {
			return 0, err
		}
		return uint32(a.stackBuf[0]), nil
	}
	a.stackBuf[0] = 0
	a.stackBuf[1] = 0
	a.stackBuf[2] = uint64(align)
	a.stackBuf[3] = uint64(size)
	if err := a.allocFn.CallWithStack(a.ctx, a.stackBuf[:4]); err != nil {
		return 0, err
	}
	return uint32(a.stackBuf[0]), nil
}

// Free releases a region. Failures are logged.
func (a *WazeroAllocator) Free(ptr, size, align uint32) {
	if a == nil || a.freeFn == nil || ptr == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	params := len(a.freeFn.Definition().ParamTypes())
	a.stackBuf[0] = uint64(ptr)
	a.stackBuf[1] = uint64(size)
	a.stackBuf[2] = uint64(align)
	if params > 3 {
		params = 3
	}
	if err := a.freeFn.CallWithStack(a.ctx, a.stackBuf[:params]); err != nil {
		Logger().Warn("Free: guest deallocation failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}

// Compile-time check that WazeroAllocator implements plainwire.Allocator
var _ plainwire.Allocator = (*WazeroAllocator)(nil)
