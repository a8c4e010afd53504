package alloc

import "errors"

// ErrOutstandingAllocation is returned by Buddy.Close when any page still
// has blocks allocated from it. It mirrors the destructor check in the
// buddy allocator's teacher implementation, which throws rather than leak.
var ErrOutstandingAllocation = errors.New("alloc: outstanding allocations at teardown")

// ErrTooLarge names an allocation request larger than a page. No allocator
// in this package returns it: Buddy.AllocBytes answers an oversized
// request by growing the table with a page large enough to hold it.
var ErrTooLarge = errors.New("alloc: request exceeds maximum page size")

// ErrLIFOViolation is the value Stack.Free panics with when a caller frees
// a block that is not the most recently allocated, still-live block on its
// parity side.
var ErrLIFOViolation = errors.New("alloc: stack free out of LIFO order")
