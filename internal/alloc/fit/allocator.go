package fit

import (
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// Allocator defines the contract for placement policies.
type Allocator interface {
	Strategy() util.StrategyID
	// Select returns the frame index chosen for a page of the given size,
	// or -1 when no frame qualifies. It does not mutate the memory.
	Select(m *memory.Memory, size int) (int, error)
}

// New returns the allocator registered for id.
func New(id util.StrategyID) (Allocator, error) {
	switch id {
	case util.FirstFit:
		return FirstFit{}, nil
	case util.NextFit:
		return NextFit{}, nil
	case util.BestFit:
		return BestFit{}, nil
	case util.WorstFit:
		return WorstFit{}, nil
	case util.QuickFit:
		return QuickFit{}, nil
	}
	return nil, util.InvalidInput(util.MsgUnknownStrategy, string(id))
}

// Implemented reports whether id selects frames rather than refusing every request.
func Implemented(id util.StrategyID) bool {
	switch id {
	case util.FirstFit, util.NextFit, util.BestFit, util.WorstFit:
		return true
	}
	return false
}
