package alloc

// FactorAllocator adapts Buddy to the factor-allocator contract consumed
// by the assemble/front/tree packages: plain AllocReal/AllocInt slices
// with no per-block free, since front storage (Lcol, Perm) is the
// factorization's permanent output and lives until the caller is done
// with it entirely.
type FactorAllocator struct {
	buddy *Buddy
}

// NewFactorAllocator creates a FactorAllocator backed by a fresh Buddy
// allocator whose first page holds at least initialSize bytes.
func NewFactorAllocator(initialSize int) *FactorAllocator {
	return &FactorAllocator{buddy: NewBuddy(initialSize)}
}

// AllocReal reserves n zero-initialized float64s.
func (f *FactorAllocator) AllocReal(n int) []float64 {
	return f.buddy.AllocReal(n).Data
}

// AllocInt reserves n zero-initialized ints.
func (f *FactorAllocator) AllocInt(n int) []int {
	return f.buddy.AllocInt(n).Data
}
