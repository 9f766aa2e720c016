package engine

const (
	CabiRealloc = "cabi_realloc"
	CabiFree    = "cabi_free"

	// Legacy names from pre-standardization component model implementations
	legacyRealloc = "canonical_abi_realloc"
	legacyAlloc   = "allocate"
	simpleAlloc   = "alloc"
	legacyDealloc = "deallocate"
	simpleFree    = "free"

	// DefaultMemoryName is the export most toolchains give linear memory.
	DefaultMemoryName = "memory"
)

var (
	allocNames = []string{CabiRealloc, legacyRealloc, legacyAlloc, simpleAlloc}
	freeNames  = []string{CabiFree, legacyDealloc, simpleFree}
)
