package fit

import (
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// FirstFit takes the lowest indexed frame with enough free space.
type FirstFit struct{}

func (FirstFit) Strategy() util.StrategyID { return util.FirstFit }

func (FirstFit) Select(m *memory.Memory, size int) (int, error) {
	for i, f := range m.Frames() {
		if f.Fits(size) {
			return i, nil
		}
	}
	return -1, nil
}
