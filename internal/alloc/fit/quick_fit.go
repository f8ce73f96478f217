package fit

import (
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// QuickFit is registered so it can be selected, but refuses every request.
type QuickFit struct{}

func (QuickFit) Strategy() util.StrategyID { return util.QuickFit }

func (QuickFit) Select(*memory.Memory, int) (int, error) {
	return -1, util.Unsupported(util.QuickFit)
}
