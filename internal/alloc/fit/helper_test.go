package fit

import (
	"testing"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	"github.com/stretchr/testify/require"
)

// newTestMemory builds a memory with the listed frames marked unavailable.
func newTestMemory(t *testing.T, a Allocator, sizes []int, unavailable ...int) *memory.Memory {
	t.Helper()
	m := memory.New(a.Strategy().Tag(), sizes)
	for _, idx := range unavailable {
		require.NoError(t, m.MarkUnavailable(idx), "mark F%d", idx)
	}
	return m
}

// runPages feeds pages in order and returns the chosen frame per request.
func runPages(t *testing.T, a Allocator, m *memory.Memory, pages ...int) []int {
	t.Helper()
	out := make([]int, len(pages))
	for i, p := range pages {
		idx, err := Allocate(a, m, m.Issue(p))
		require.NoError(t, err, "allocate P%d", i)
		out[i] = idx
	}
	return out
}
