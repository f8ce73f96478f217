package fit

import (
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// NextFit is first-fit starting at the frame of the last successful
// placement and wrapping around once.
type NextFit struct{}

func (NextFit) Strategy() util.StrategyID { return util.NextFit }

func (NextFit) Select(m *memory.Memory, size int) (int, error) {
	frames := m.Frames()
	n := len(frames)
	for i := range n {
		j := (m.Cursor() + i) % n
		if frames[j].Fits(size) {
			return j, nil
		}
	}
	return -1, nil
}
