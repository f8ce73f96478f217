package fit

import (
	"testing"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	"github.com/stretchr/testify/assert"
)

func TestNextFit(t *testing.T) {
	a := NextFit{}

	t.Run("ResumesAtLastPlacement", func(t *testing.T) {
		m := newTestMemory(t, a, []int{4, 10, 6})
		got := runPages(t, a, m, 3, 5, 2, 9, 1)
		// P4 would go to F0 under first-fit; next-fit resumes at F1
		assert.Equal(t, []int{0, 1, 1, -1, 1}, got)
		assert.Equal(t, 1, m.Cursor(), "cursor")
		assert.Equal(t, []memory.Request{{Index: 3, Size: 9}}, m.Unallocated())
	})

	t.Run("WrapsAround", func(t *testing.T) {
		m := newTestMemory(t, a, []int{4, 3, 8})
		got := runPages(t, a, m, 7, 3, 4)
		assert.Equal(t, []int{2, 0, -1}, got)
		assert.Equal(t, 0, m.Cursor(), "cursor unchanged by the miss")
	})

	t.Run("CursorUnchangedOnMiss", func(t *testing.T) {
		m := newTestMemory(t, a, []int{5, 5, 5})
		runPages(t, a, m, 5, 5)
		assert.Equal(t, 1, m.Cursor())
		runPages(t, a, m, 6)
		assert.Equal(t, 1, m.Cursor())
		assert.Equal(t, []int{2}, runPages(t, a, m, 5))
		assert.Equal(t, 2, m.Cursor())
	})

	t.Run("SkipsUnavailable", func(t *testing.T) {
		m := newTestMemory(t, a, []int{10, 10, 10}, 1)
		got := runPages(t, a, m, 8, 8, 8)
		assert.Equal(t, []int{0, 2, -1}, got)
	})

	t.Run("ScanStartFollowsPlacement", func(t *testing.T) {
		m := newTestMemory(t, a, []int{3, 7, 2, 9, 4})
		pages := []int{2, 6, 1, 8, 4, 3, 1, 9}
		for i, p := range pages {
			before := m.Cursor()
			idx, err := Allocate(a, m, m.Issue(p))
			assert.NoError(t, err)
			if idx == -1 {
				assert.Equal(t, before, m.Cursor(), "P%d miss keeps cursor", i)
				continue
			}
			assert.Equal(t, idx, m.Cursor(), "P%d moves cursor", i)
			// every frame between the start and the choice was skipped for a reason
			for k := before; k != idx; k = (k + 1) % m.Len() {
				f, _ := m.Frame(k)
				assert.False(t, f.Fits(p), "P%d skipped F%d that fits", i, k)
			}
		}
	})
}
