package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/plainwire/errors"
)

// Config holds runtime settings for hosting guests.
type Config struct {
	// MemoryName is the memory export records are exchanged through.
	// Empty means DefaultMemoryName, falling back to the first exported
	// memory.
	MemoryName string

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32
}

// NewRuntime creates a wazero runtime configured by cfg, which may be nil.
func NewRuntime(ctx context.Context, cfg *Config) wazero.Runtime {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
}

// Guest is an instantiated module together with the memory and allocator
// records are exchanged through.
type Guest struct {
	module api.Module
	memory *WazeroMemory
	alloc  *WazeroAllocator
}

// Instantiate compiles and instantiates wasm in rt and wraps the result.
func Instantiate(ctx context.Context, rt wazero.Runtime, wasm []byte, cfg *Config) (*Guest, error) {
	mod, err := rt.Instantiate(ctx, wasm)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseMemory, errors.KindInvalidInput, err, "instantiate guest")
	}
	g, err := NewGuest(mod, cfg)
	if err != nil {
		_ = mod.Close(ctx)
		return nil, err
	}
	return g, nil
}

// NewGuest wraps an already instantiated module. The module must export a
// memory. An allocator is optional; without one Allocator returns nil.
func NewGuest(mod api.Module, cfg *Config) (*Guest, error) {
	name := DefaultMemoryName
	if cfg != nil && cfg.MemoryName != "" {
		name = cfg.MemoryName
	}

	mem := mod.ExportedMemory(name)
	if mem == nil && (cfg == nil || cfg.MemoryName == "") {
		mem = mod.Memory()
	}
	if mem == nil {
		return nil, errors.New(errors.PhaseMemory, errors.KindFieldMissing).
			Path(mod.Name()).
			Detail("no memory export %q", name).
			Build()
	}

	g := &Guest{module: mod, memory: NewWazeroMemory(mem)}
	if alloc, err := NewWazeroAllocator(mod); err == nil {
		g.alloc = alloc
	} else {
		Logger().Debug("guest has no usable allocator",
			zap.String("module", mod.Name()),
			zap.Error(err))
	}
	return g, nil
}

func (g *Guest) Module() api.Module { return g.module }

func (g *Guest) Memory() *WazeroMemory { return g.memory }

// Allocator returns the guest allocator, or nil if the guest exports none.
func (g *Guest) Allocator() *WazeroAllocator { return g.alloc }

func (g *Guest) Close(ctx context.Context) error {
	return g.module.Close(ctx)
}
