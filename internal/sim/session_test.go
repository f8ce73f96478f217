package sim

import (
	"errors"
	"testing"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/frame"
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var implemented = []util.StrategyID{util.FirstFit, util.NextFit, util.BestFit, util.WorstFit}

func relaxed() Options {
	opts := DefaultOptions()
	opts.StrictFrames = false
	return opts
}

type fixedPerm []int

func (p fixedPerm) Perm(n int) []int { return p[:n] }

func frameIndexes(ps []Placement) []*int {
	out := make([]*int, len(ps))
	for i, p := range ps {
		out[i] = p.FrameIndex
	}
	return out
}

func TestRunExample(t *testing.T) {
	_, res, err := Run(RunRequest{
		Pages:      []int{8, 15, 3},
		Frames:     []int{10, 20, 5},
		Strategies: []util.StrategyID{util.BestFit, util.FirstFit},
	}, relaxed())
	require.NoError(t, err)
	require.Len(t, res.PerStrategy, 2)
	assert.Equal(t, util.FirstFit, res.PerStrategy[0].Strategy, "canonical order")
	assert.Empty(t, res.Unavailable)
	assert.Nil(t, res.Seed, "no mask, no seed")

	ff, ok := res.Lookup(util.FirstFit)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, ff.Status)
	assert.Equal(t, []*int{util.IntPtr(0), util.IntPtr(1), util.IntPtr(1)}, frameIndexes(ff.Placements))
	assert.Empty(t, ff.Unallocated)
	assert.Equal(t, []frame.State{
		{Size: 10, Pages: []int{8}, Free: 2, Allocated: 8},
		{Size: 20, Pages: []int{15, 3}, Free: 2, Allocated: 18},
		{Size: 5, Pages: []int{}, Free: 5, Allocated: 0},
	}, ff.Frames)
	assert.Equal(t, 35, ff.Size)
	assert.Equal(t, 26, ff.Allocated)
	assert.Equal(t, []string{
		"FF: Memory's total size: 35.",
		"FF: P0 8 allocated to F0 10 (2 free).",
		"FF: P1 15 allocated to F1 20 (5 free).",
		"FF: P2 3 allocated to F1 20 (2 free).",
		"FF: Unallocated: none.",
	}, ff.Log)

	bf, ok := res.Lookup(util.BestFit)
	require.True(t, ok)
	assert.Equal(t, []*int{util.IntPtr(0), util.IntPtr(1), util.IntPtr(1)}, frameIndexes(bf.Placements))

	_, ok = res.Lookup(util.NextFit)
	assert.False(t, ok)
}

func TestRunUnallocatable(t *testing.T) {
	_, res, err := Run(RunRequest{
		Pages:      []int{10},
		Frames:     []int{5},
		Strategies: implemented,
	}, relaxed())
	require.NoError(t, err)
	require.Len(t, res.PerStrategy, 4)
	for _, r := range res.PerStrategy {
		assert.Equal(t, []memory.Request{{Index: 0, Size: 10}}, r.Unallocated, "%s", r.Strategy)
		assert.Equal(t, 0, r.Allocated, "%s", r.Strategy)
		assert.Nil(t, r.Placements[0].FrameIndex)
		assert.Equal(t, 0, r.PlacedCount())
		assert.Contains(t, r.Log, r.Strategy.Tag()+": Unallocated: P0 10.")
	}
}

func TestRunQuickFitUnsupported(t *testing.T) {
	_, res, err := Run(RunRequest{
		Pages:      []int{1},
		Frames:     []int{10},
		Strategies: []util.StrategyID{util.QuickFit},
	}, relaxed())
	require.NoError(t, err)
	qf, ok := res.Lookup(util.QuickFit)
	require.True(t, ok)
	assert.Equal(t, StatusUnsupported, qf.Status)
	assert.Equal(t, "fitsim error [unsupported_strategy]: strategy QUICK_FIT is not implemented", qf.Error)
	assert.Empty(t, qf.Placements, "no placements")
	assert.Empty(t, qf.Unallocated, "not a silent unallocated run")
	assert.Empty(t, res.Completed())
}

func TestRunQuickFitAlongsideOthers(t *testing.T) {
	_, res, err := Run(RunRequest{
		Pages:      []int{1},
		Frames:     []int{10},
		Strategies: []util.StrategyID{util.QuickFit, util.WorstFit},
	}, relaxed())
	require.NoError(t, err)
	assert.Equal(t, []util.StrategyID{util.WorstFit, util.QuickFit},
		[]util.StrategyID{res.PerStrategy[0].Strategy, res.PerStrategy[1].Strategy})
	assert.Len(t, res.Completed(), 1)
}

func TestRunInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  RunRequest
		msg  string
	}{
		{"NoStrategy", RunRequest{Pages: []int{1}, Frames: []int{1, 2}}, "at least one algorithm must be enabled"},
		{"UnknownStrategy", RunRequest{Pages: []int{1}, Frames: []int{1, 2}, Strategies: []util.StrategyID{"BUDDY"}}, `unknown strategy "BUDDY"`},
		{"TooFewFrames", RunRequest{Pages: []int{1, 2}, Frames: []int{5, 5}, Strategies: implemented}, "frame count must be greater than page count"},
		{"BadPage", RunRequest{Pages: []int{1, 0}, Frames: []int{5, 5, 5}, Strategies: implemented}, "invalid page input at position 1"},
		{"BadFrame", RunRequest{Pages: []int{1}, Frames: []int{5, -5}, Strategies: implemented}, "invalid frame input at position 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, err := Run(tt.req, DefaultOptions())
			assert.Nil(t, s, "no partial session")
			assert.ErrorIs(t, err, util.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestRunUnavailableMask(t *testing.T) {
	opts := relaxed()
	opts.Source = fixedPerm{2, 0, 3, 1}
	_, res, err := Run(RunRequest{
		Pages:       []int{4, 4, 4},
		Frames:      []int{10, 10, 10, 10},
		Strategies:  implemented,
		Unavailable: true,
	}, opts)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, res.Unavailable)

	for _, r := range res.PerStrategy {
		assert.True(t, r.Frames[0].Unavailable, "%s shares the mask", r.Strategy)
		assert.True(t, r.Frames[2].Unavailable, "%s shares the mask", r.Strategy)
		assert.Equal(t, 40, r.Size, "unavailable frames count toward size")
		for _, p := range r.Placements {
			if p.FrameIndex != nil {
				assert.NotContains(t, res.Unavailable, *p.FrameIndex, "%s picked an unavailable frame", r.Strategy)
			}
		}
		assert.Equal(t, r.Strategy.Tag()+": F0 10 marked as unavailable.", r.Log[0])
		assert.Equal(t, r.Strategy.Tag()+": F2 10 marked as unavailable.", r.Log[1])
		assert.Equal(t, r.Strategy.Tag()+": Memory's total size: 40.", r.Log[2])
	}
}

func TestRunSeededMaskIsReproducible(t *testing.T) {
	seed := uint64(1234)
	req := RunRequest{
		Pages:       []int{3, 9, 1, 4, 7},
		Frames:      []int{5, 9, 2, 6, 10, 4, 8, 3},
		Strategies:  implemented,
		Unavailable: true,
		Seed:        &seed,
	}
	_, first, err := Run(req, DefaultOptions())
	require.NoError(t, err)
	_, second, err := Run(req, DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, first.Unavailable, 4, "half of eight frames")
	assert.Equal(t, first, second, "identical inputs yield identical results")
	require.NotNil(t, first.Seed)
	assert.Equal(t, seed, *first.Seed)
}

func TestRunParallelMatchesSequential(t *testing.T) {
	req := RunRequest{
		Pages:      []int{12, 3, 7, 7, 1, 20, 5},
		Frames:     []int{8, 13, 21, 5, 3, 9, 14, 6},
		Strategies: util.Strategies,
	}
	opts := DefaultOptions()
	_, sequential, err := Run(req, opts)
	require.NoError(t, err)

	opts.Parallel = true
	_, parallel, err := Run(req, opts)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}

func TestRunDoesNotMutateInput(t *testing.T) {
	pages := []int{8, 15, 3}
	frames := []int{10, 20, 5}
	_, _, err := Run(RunRequest{Pages: pages, Frames: frames, Strategies: implemented}, relaxed())
	require.NoError(t, err)
	assert.Equal(t, []int{8, 15, 3}, pages)
	assert.Equal(t, []int{10, 20, 5}, frames)
}

func TestAllocatedEqualsPlacedPages(t *testing.T) {
	pages := []int{6, 2, 9, 4, 4, 11, 1}
	_, res, err := Run(RunRequest{Pages: pages, Frames: []int{7, 3, 12, 5, 9}, Strategies: implemented}, relaxed())
	require.NoError(t, err)
	for _, r := range res.PerStrategy {
		placed := 0
		for _, p := range r.Placements {
			if p.Allocated() {
				placed += p.PageSize
			}
		}
		total := 0
		for _, f := range r.Frames {
			total += f.Allocated
		}
		assert.Equal(t, placed, total, "%s", r.Strategy)
		assert.Equal(t, placed, r.Allocated, "%s", r.Strategy)
		assert.Equal(t, len(pages), r.PlacedCount()+len(r.Unallocated), "%s", r.Strategy)
	}
}

func TestStep(t *testing.T) {
	t.Run("EmptySession", func(t *testing.T) {
		s, err := NewSession(RunRequest{Frames: []int{4}, Strategies: implemented}, DefaultOptions())
		require.NoError(t, err)
		p, err := s.Step(util.FirstFit, 3)
		require.NoError(t, err)
		assert.Equal(t, Placement{RequestIndex: 0, PageSize: 3, FrameIndex: util.IntPtr(0)}, p)
	})

	s, res, err := Run(RunRequest{
		Pages:      []int{3, 5},
		Frames:     []int{4, 10, 6},
		Strategies: []util.StrategyID{util.FirstFit, util.NextFit, util.QuickFit},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.PerStrategy, 3)

	t.Run("SingleStrategy", func(t *testing.T) {
		p, err := s.Step(util.NextFit, 1)
		require.NoError(t, err)
		assert.Equal(t, Placement{RequestIndex: 2, PageSize: 1, FrameIndex: util.IntPtr(1)}, p, "next-fit resumes at F1")

		p, err = s.Step(util.FirstFit, 1)
		require.NoError(t, err)
		assert.Equal(t, Placement{RequestIndex: 2, PageSize: 1, FrameIndex: util.IntPtr(0)}, p)

		p, err = s.Step(util.FirstFit, 50)
		require.NoError(t, err)
		assert.Nil(t, p.FrameIndex, "unallocated")
		assert.Equal(t, 3, p.RequestIndex)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := s.Step(util.QuickFit, 1)
		assert.ErrorIs(t, err, util.ErrUnsupportedStrategy)
	})

	t.Run("NotInSession", func(t *testing.T) {
		_, err := s.Step(util.BestFit, 1)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("InvalidPage", func(t *testing.T) {
		_, err := s.Step(util.FirstFit, 0)
		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})

	t.Run("All", func(t *testing.T) {
		out, err := s.StepAll(2)
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, StepResult{Strategy: util.FirstFit, Status: StatusCompleted,
			Placement: &Placement{RequestIndex: 4, PageSize: 2, FrameIndex: util.IntPtr(1)}}, out[0])
		assert.Equal(t, StepResult{Strategy: util.NextFit, Status: StatusCompleted,
			Placement: &Placement{RequestIndex: 3, PageSize: 2, FrameIndex: util.IntPtr(1)}}, out[1])
		assert.Equal(t, StepResult{Strategy: util.QuickFit, Status: StatusUnsupported}, out[2])

		_, err = s.StepAll(-1)
		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})

	t.Run("ResultIncludesSteps", func(t *testing.T) {
		ff, _ := s.Result().Lookup(util.FirstFit)
		assert.Len(t, ff.Placements, 5)
		assert.Equal(t, []memory.Request{{Index: 3, Size: 50}}, ff.Unallocated)
		assert.Equal(t, "FF: P4 2 allocated to F1 10 (3 free).", ff.Log[len(ff.Log)-1])
	})
}

func TestSessionIsolation(t *testing.T) {
	s, _, err := Run(RunRequest{Pages: []int{4}, Frames: []int{5, 5}, Strategies: implemented}, DefaultOptions())
	require.NoError(t, err)
	_, err = s.Step(util.BestFit, 5)
	require.NoError(t, err)

	res := s.Result()
	bf, _ := res.Lookup(util.BestFit)
	wf, _ := res.Lookup(util.WorstFit)
	assert.Equal(t, 9, bf.Allocated)
	assert.Equal(t, 4, wf.Allocated, "other strategies untouched")
	assert.Equal(t, []int{5, 5}, s.Frames())
	assert.Equal(t, implemented, s.Strategies())
}

func TestErrorsAreTyped(t *testing.T) {
	_, _, err := Run(RunRequest{Pages: []int{1}, Frames: []int{1}, Strategies: implemented}, DefaultOptions())
	var simErr *util.SimulationError
	require.True(t, errors.As(err, &simErr))
	assert.Equal(t, util.ErrTypeInvalidInput, simErr.Type)
	assert.Equal(t, []interface{}{1, 1}, simErr.Args)
}
