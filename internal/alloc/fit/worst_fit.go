package fit

import (
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// WorstFit takes the qualifying frame with the most free space.
type WorstFit struct{}

func (WorstFit) Strategy() util.StrategyID { return util.WorstFit }

func (WorstFit) Select(m *memory.Memory, size int) (int, error) {
	return extremeFit(m.Frames(), size, func(candidate, kept int) bool { return candidate > kept }), nil
}
