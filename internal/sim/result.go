package sim

import (
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/frame"
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// Status tells whether a strategy ran or refused the run.
type Status string

const (
	StatusCompleted   Status = "completed"
	StatusUnsupported Status = "unsupported"
)

// Placement is the outcome of one request. FrameIndex is nil when the
// request could not be placed.
type Placement struct {
	RequestIndex int  `json:"requestIndex"`
	PageSize     int  `json:"pageSize"`
	FrameIndex   *int `json:"frameIndex"`
}

func (p Placement) Allocated() bool { return p.FrameIndex != nil }

// StrategyResult is the state of one strategy's memory.
type StrategyResult struct {
	Strategy    util.StrategyID  `json:"strategy"`
	Status      Status           `json:"status"`
	Error       string           `json:"error,omitempty"`
	Frames      []frame.State    `json:"frames"`
	Placements  []Placement      `json:"placements"`
	Unallocated []memory.Request `json:"unallocated"`
	Log         []string         `json:"log"`
	Size        int              `json:"size"`
	Free        int              `json:"free"`
	Allocated   int              `json:"allocated"`
}

// PlacedCount is the number of requests that received a frame.
func (r StrategyResult) PlacedCount() int {
	n := 0
	for _, p := range r.Placements {
		if p.Allocated() {
			n++
		}
	}
	return n
}

// RunResult holds every strategy of a session in canonical order.
type RunResult struct {
	PerStrategy []StrategyResult `json:"perStrategy"`
	Unavailable []int            `json:"unavailable"`
	Seed        *uint64          `json:"seed,omitempty"`
}

// Lookup returns the result for id.
func (r RunResult) Lookup(id util.StrategyID) (StrategyResult, bool) {
	for _, s := range r.PerStrategy {
		if s.Strategy == id {
			return s, true
		}
	}
	return StrategyResult{}, false
}

// Completed returns the results of strategies that actually ran.
func (r RunResult) Completed() []StrategyResult {
	out := []StrategyResult{}
	for _, s := range r.PerStrategy {
		if s.Status == StatusCompleted {
			out = append(out, s)
		}
	}
	return out
}
