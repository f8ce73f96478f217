package mask

import (
	"fmt"
	"math"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// Source is the random permutation generator a mask is drawn from.
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Source interface {
	Perm(n int) []int
}

// Mask is the set of frames excluded from allocation for one run.
// It is immutable once built and may be shared between strategies.
type Mask struct {
	off []bool
}

// None returns a mask over n frames with every frame available.
func None(n int) Mask {
	return Mask{off: make([]bool, n)}
}

// New marks floor(n*fraction) of n frames unavailable, picked from src.
func New(n int, fraction float64, src Source) (Mask, error) {
	if fraction < 0 || fraction > 1 || math.IsNaN(fraction) {
		return Mask{}, fmt.Errorf("fraction %v: %w", fraction, util.ErrInvalidFraction)
	}
	m := None(n)
	k := int(math.Floor(float64(n) * fraction))
	if k == 0 {
		return m, nil
	}
	for _, idx := range src.Perm(n)[:k] {
		m.off[idx] = true
	}
	return m, nil
}

func (m Mask) Len() int { return len(m.off) }

func (m Mask) Unavailable(idx int) bool {
	return idx >= 0 && idx < len(m.off) && m.off[idx]
}

// Indexes lists unavailable frames in ascending order.
func (m Mask) Indexes() []int {
	out := []int{}
	for i, off := range m.off {
		if off {
			out = append(out, i)
		}
	}
	return out
}

// Apply marks the masked frames of mem unavailable.
func (m Mask) Apply(mem *memory.Memory) error {
	if mem.Len() != len(m.off) {
		return fmt.Errorf("mask of %d for %d frames: %w", len(m.off), mem.Len(), util.ErrMaskSizeMismatch)
	}
	for _, idx := range m.Indexes() {
		if err := mem.MarkUnavailable(idx); err != nil {
			return fmt.Errorf("[mask] [Apply] %w", err)
		}
	}
	return nil
}
