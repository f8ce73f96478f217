package fit

import (
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// BestFit takes the qualifying frame with the least free space.
type BestFit struct{}

func (BestFit) Strategy() util.StrategyID { return util.BestFit }

func (BestFit) Select(m *memory.Memory, size int) (int, error) {
	return extremeFit(m.Frames(), size, func(candidate, kept int) bool { return candidate < kept }), nil
}
