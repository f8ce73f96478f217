package report

import (
	"fmt"

	"github.com/bietkhonhungvandi212/fitsim/internal/sim"
)

const (
	ColorAllocated   = "#D9E8FB"
	ColorFree        = "#FFFFFF"
	ColorUnavailable = "#dce2e6"
)

// Chart is a stacked bar chart: one bar per strategy, one stacked
// dataset per frame segment.
type Chart struct {
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string `json:"label"`
	Data            []int  `json:"data"`
	BackgroundColor string `json:"backgroundColor"`
}

// BuildChart draws the strategies that ran. Every memory shares the same
// frames and mask, so the first one names the datasets.
func BuildChart(res sim.RunResult) Chart {
	runs := res.Completed()
	c := Chart{Title: "Memory Paging Simulation", Labels: make([]string, len(runs)), Datasets: []Dataset{}}
	if len(runs) == 0 {
		return c
	}

	for i, r := range runs {
		placed := r.PlacedCount()
		c.Labels[i] = fmt.Sprintf("%s [%d/%d]", r.Strategy.Tag(), placed, placed+len(r.Unallocated))
	}

	series := func(pick func(sim.StrategyResult, int) int, idx int) []int {
		out := make([]int, len(runs))
		for i, r := range runs {
			out[i] = pick(r, idx)
		}
		return out
	}
	size := func(r sim.StrategyResult, idx int) int { return r.Frames[idx].Size }
	allocated := func(r sim.StrategyResult, idx int) int { return r.Frames[idx].Allocated }
	free := func(r sim.StrategyResult, idx int) int { return r.Frames[idx].Free }

	for idx, f := range runs[0].Frames {
		name := fmt.Sprintf("F%d %d", idx, f.Size)
		if f.Unavailable {
			c.Datasets = append(c.Datasets, Dataset{name + " - Unavailable", series(size, idx), ColorUnavailable})
			continue
		}
		c.Datasets = append(c.Datasets,
			Dataset{name + " - Allocated", series(allocated, idx), ColorAllocated},
			Dataset{name + " - Free", series(free, idx), ColorFree},
		)
	}
	return c
}
