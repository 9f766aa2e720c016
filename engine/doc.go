// Package engine connects plain records to WebAssembly guests running under
// wazero.
//
// A record crosses the host/guest boundary as bytes in the guest's linear
// memory. This package supplies the two pieces the codec needs for that:
//
//	WazeroMemory     - codec Memory over a wazero api.Memory
//	WazeroAllocator  - codec Allocator over the guest's exported allocator
//
// Guest bundles both for one instantiated module.
//
// # Allocator Discovery
//
// The allocator is looked up by export name, in order:
//
//	cabi_realloc           (old_ptr, old_size, align, new_size) -> ptr
//	canonical_abi_realloc  same signature, pre-standardization name
//	allocate, alloc        (size) -> ptr
//
// Frees go to cabi_free, deallocate or free, whichever is exported first.
// A guest without a free function leaks its allocations until it is closed.
//
// # Example
//
//	rt := engine.NewRuntime(ctx, &engine.Config{MemoryLimitPages: 256})
//	defer rt.Close(ctx)
//
//	guest, err := engine.Instantiate(ctx, rt, wasmBytes, nil)
//	if err != nil {
//	    return err
//	}
//	ptr, size, err := enc.EncodeAlloc(rec, guest.Memory(), guest.Allocator())
package engine
