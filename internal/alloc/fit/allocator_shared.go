package fit

import (
	"fmt"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/frame"
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
)

// Allocate runs one request through a: the chosen frame receives the page,
// or the request is recorded as unallocated and -1 is returned.
func Allocate(a Allocator, m *memory.Memory, req memory.Request) (int, error) {
	idx, err := a.Select(m, req.Size)
	if err != nil {
		return -1, err
	}
	if idx == -1 {
		m.Reject(req)
		return -1, nil
	}
	if err := m.Place(idx, req); err != nil {
		return -1, fmt.Errorf("[fit] [Allocate] %s picked F%d: %w", a.Strategy().Tag(), idx, err)
	}
	return idx, nil
}

// extremeFit scans every frame and keeps the qualifying one for which
// better(candidate, kept) holds. Ties keep the earlier frame.
func extremeFit(frames []*frame.Frame, size int, better func(candidate, kept int) bool) int {
	chosen := -1
	for i, f := range frames {
		if !f.Fits(size) {
			continue
		}
		if chosen == -1 || better(f.Free(), frames[chosen].Free()) {
			chosen = i
		}
	}
	return chosen
}
