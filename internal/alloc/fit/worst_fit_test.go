package fit

import (
	"testing"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	"github.com/stretchr/testify/assert"
)

func TestWorstFit(t *testing.T) {
	a := WorstFit{}

	t.Run("LargestFrame", func(t *testing.T) {
		m := newTestMemory(t, a, []int{10, 20, 5})
		got := runPages(t, a, m, 8, 15, 3)
		assert.Equal(t, []int{1, -1, 1}, got)
		assert.Equal(t, []memory.Request{{Index: 1, Size: 15}}, m.Unallocated())
		f, _ := m.Frame(1)
		assert.Equal(t, 9, f.Free())
	})

	t.Run("TieKeepsFirst", func(t *testing.T) {
		m := newTestMemory(t, a, []int{7, 12, 12, 3})
		assert.Equal(t, []int{1, 2, 1}, runPages(t, a, m, 2, 2, 2))
	})

	t.Run("SkipsUnavailable", func(t *testing.T) {
		m := newTestMemory(t, a, []int{10, 40, 20}, 1)
		assert.Equal(t, []int{2}, runPages(t, a, m, 5))
	})
}
