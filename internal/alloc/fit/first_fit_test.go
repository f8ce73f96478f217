package fit

import (
	"testing"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	"github.com/stretchr/testify/assert"
)

func TestFirstFit(t *testing.T) {
	a := FirstFit{}

	t.Run("LowestIndexWins", func(t *testing.T) {
		m := newTestMemory(t, a, []int{10, 20, 5})
		got := runPages(t, a, m, 8, 15, 3)
		// F0 keeps 2 free after P0 so P2 lands in F1
		assert.Equal(t, []int{0, 1, 1}, got, "placements")
		assert.Empty(t, m.Unallocated(), "unallocated")
		assert.Equal(t, []string{
			"FF: P0 8 allocated to F0 10 (2 free).",
			"FF: P1 15 allocated to F1 20 (5 free).",
			"FF: P2 3 allocated to F1 20 (2 free).",
		}, m.Logs())
	})

	t.Run("SkipsUnavailable", func(t *testing.T) {
		m := newTestMemory(t, a, []int{10, 20, 5}, 0)
		got := runPages(t, a, m, 4)
		assert.Equal(t, []int{1}, got)
	})

	t.Run("Unallocated", func(t *testing.T) {
		m := newTestMemory(t, a, []int{5})
		got := runPages(t, a, m, 10)
		assert.Equal(t, []int{-1}, got)
		assert.Equal(t, []memory.Request{{Index: 0, Size: 10}}, m.Unallocated())
		assert.Equal(t, 0, m.Allocated(), "no frame changes")
	})

	t.Run("ContinuesAfterMiss", func(t *testing.T) {
		m := newTestMemory(t, a, []int{5, 3})
		got := runPages(t, a, m, 9, 3, 5)
		assert.Equal(t, []int{-1, 0, -1}, got)
		assert.Equal(t, []memory.Request{{Index: 0, Size: 9}, {Index: 2, Size: 5}}, m.Unallocated())
	})

	t.Run("NoFrames", func(t *testing.T) {
		m := newTestMemory(t, a, nil)
		assert.Equal(t, []int{-1}, runPages(t, a, m, 1))
	})
}
