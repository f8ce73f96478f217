package sim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/fit"
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/frame"
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/mask"
	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	"github.com/bietkhonhungvandi212/fitsim/internal/input"
	"github.com/bietkhonhungvandi212/fitsim/internal/logger"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// RunRequest describes one simulation run.
type RunRequest struct {
	Pages       []int
	Frames      []int
	Strategies  []util.StrategyID
	Unavailable bool
	Seed        *uint64 // mask seed, drawn at random when nil
}

// Options tune how a run is validated and executed.
type Options struct {
	UnavailableFraction float64
	StrictFrames        bool
	Parallel            bool
	Source              mask.Source // when set it replaces the seeded generator
	Logger              *slog.Logger
}

func DefaultOptions() Options {
	return OptionsFrom(util.DefaultOptions(), nil)
}

func OptionsFrom(o util.Options, log *slog.Logger) Options {
	return Options{
		UnavailableFraction: o.UnavailableFraction,
		StrictFrames:        o.StrictFrames,
		Parallel:            o.Parallel,
		Logger:              log,
	}
}

// lane is one strategy's allocator and memory. Only one goroutine
// touches a lane at a time.
type lane struct {
	id          util.StrategyID
	allocator   fit.Allocator
	memory      *memory.Memory
	placements  []Placement
	unsupported error
}

// Session owns the per-strategy memories of one run. It is created by Run
// and extended with Step and StepAll. A Session is not safe for concurrent
// use; callers serialize access.
type Session struct {
	frames []int
	mask   mask.Mask
	seed   *uint64
	lanes  []*lane
	log    *slog.Logger
}

// NewSession validates req and prepares one memory per strategy without
// feeding any page.
func NewSession(req RunRequest, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NOP()
	}

	ids, err := canonicalStrategies(req.Strategies)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(req.Pages, req.Frames, opts.StrictFrames); err != nil {
		return nil, err
	}

	s := &Session{
		frames: clone(req.Frames),
		mask:   mask.None(len(req.Frames)),
		log:    log,
	}
	if req.Unavailable {
		src := opts.Source
		if src == nil {
			seed := drawSeed(req.Seed)
			s.seed = &seed
			src = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
		if s.mask, err = mask.New(len(req.Frames), opts.UnavailableFraction, src); err != nil {
			return nil, util.InvalidInput(util.MsgInvalidFraction, opts.UnavailableFraction)
		}
	}

	for _, id := range ids {
		a, err := fit.New(id)
		if err != nil {
			return nil, err
		}
		l := &lane{id: id, allocator: a, memory: memory.New(id.Tag(), req.Frames), placements: []Placement{}}
		if !fit.Implemented(id) {
			l.unsupported = util.Unsupported(id)
			l.memory.Logf("strategy %s is not implemented.", id)
			s.lanes = append(s.lanes, l)
			continue
		}
		if err := s.mask.Apply(l.memory); err != nil {
			return nil, fmt.Errorf("[sim] [NewSession] %s: %w", id.Tag(), err)
		}
		l.memory.Logf("Memory's total size: %d.", l.memory.Size())
		s.lanes = append(s.lanes, l)
	}
	return s, nil
}

// Run executes a batch run: every page is fed, in order, to every strategy.
func Run(req RunRequest, opts Options) (*Session, RunResult, error) {
	s, err := NewSession(req, opts)
	if err != nil {
		return nil, RunResult{}, err
	}

	feed := func(l *lane) error {
		if l.unsupported != nil {
			return nil
		}
		start := time.Now()
		for _, p := range req.Pages {
			if _, err := s.step(l, p); err != nil {
				return err
			}
		}
		l.memory.LogSummary()
		s.log.Debug("strategy finished", logger.Strategy(l.id), slog.Duration("elapsed", time.Since(start)),
			slog.Int("unallocated", len(l.memory.Unallocated())))
		return nil
	}

	if opts.Parallel {
		var g errgroup.Group
		for _, l := range s.lanes {
			g.Go(func() error { return feed(l) })
		}
		err = g.Wait()
	} else {
		for _, l := range s.lanes {
			if err = feed(l); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, RunResult{}, fmt.Errorf("[sim] [Run] %w", err)
	}

	res := s.Result()
	s.log.Info("simulation finished", slog.Int("pages", len(req.Pages)), slog.Int("frames", len(req.Frames)),
		slog.Int("strategies", len(s.lanes)), slog.Any("unavailable", res.Unavailable))
	return s, res, nil
}

// Step feeds one more page to a single strategy of the session.
func (s *Session) Step(id util.StrategyID, size int) (Placement, error) {
	if err := input.CheckSizes(input.FieldPages, []int{size}); err != nil {
		return Placement{}, err
	}
	l := s.lane(id)
	if l == nil {
		return Placement{}, util.NotFound(util.MsgStrategyNotInSession, id)
	}
	if l.unsupported != nil {
		return Placement{}, l.unsupported
	}
	return s.step(l, size)
}

// StepResult is one strategy's outcome of StepAll.
type StepResult struct {
	Strategy  util.StrategyID `json:"strategy"`
	Status    Status          `json:"status"`
	Placement *Placement      `json:"placement,omitempty"`
}

// StepAll feeds one more page to every strategy of the session.
func (s *Session) StepAll(size int) ([]StepResult, error) {
	if err := input.CheckSizes(input.FieldPages, []int{size}); err != nil {
		return nil, err
	}
	out := make([]StepResult, 0, len(s.lanes))
	for _, l := range s.lanes {
		if l.unsupported != nil {
			out = append(out, StepResult{Strategy: l.id, Status: StatusUnsupported})
			continue
		}
		p, err := s.step(l, size)
		if err != nil {
			return nil, fmt.Errorf("[sim] [StepAll] %w", err)
		}
		out = append(out, StepResult{Strategy: l.id, Status: StatusCompleted, Placement: &p})
	}
	return out, nil
}

func (s *Session) step(l *lane, size int) (Placement, error) {
	req := l.memory.Issue(size)
	idx, err := fit.Allocate(l.allocator, l.memory, req)
	if err != nil {
		return Placement{}, err
	}
	p := Placement{RequestIndex: req.Index, PageSize: req.Size}
	if idx >= 0 {
		p.FrameIndex = &idx
		s.log.Debug("page allocated", logger.Strategy(l.id), slog.Int("page", req.Index), slog.Int("size", size), slog.Int("frame", idx))
	} else {
		s.log.Debug("page unallocated", logger.Strategy(l.id), slog.Int("page", req.Index), slog.Int("size", size))
	}
	l.placements = append(l.placements, p)
	return p, nil
}

func (s *Session) lane(id util.StrategyID) *lane {
	for _, l := range s.lanes {
		if l.id == id {
			return l
		}
	}
	return nil
}

// Result snapshots every strategy of the session.
func (s *Session) Result() RunResult {
	res := RunResult{
		PerStrategy: make([]StrategyResult, 0, len(s.lanes)),
		Unavailable: s.mask.Indexes(),
		Seed:        s.seed,
	}
	for _, l := range s.lanes {
		r := StrategyResult{
			Strategy:    l.id,
			Status:      StatusCompleted,
			Frames:      []frame.State{},
			Placements:  append([]Placement{}, l.placements...),
			Unallocated: l.memory.Unallocated(),
			Log:         l.memory.Logs(),
		}
		if l.unsupported != nil {
			r.Status = StatusUnsupported
			r.Error = l.unsupported.Error()
		} else {
			r.Frames = l.memory.Snapshot()
			r.Size = l.memory.Size()
			r.Free = l.memory.Free()
			r.Allocated = l.memory.Allocated()
		}
		res.PerStrategy = append(res.PerStrategy, r)
	}
	return res
}

// Strategies lists the session's strategies in canonical order.
func (s *Session) Strategies() []util.StrategyID {
	out := make([]util.StrategyID, len(s.lanes))
	for i, l := range s.lanes {
		out[i] = l.id
	}
	return out
}

func (s *Session) Frames() []int { return clone(s.frames) }

func canonicalStrategies(ids []util.StrategyID) ([]util.StrategyID, error) {
	seen := make(map[util.StrategyID]bool, len(ids))
	for _, id := range ids {
		if id.Order() == len(util.Strategies) {
			return nil, util.InvalidInput(util.MsgUnknownStrategy, string(id))
		}
		seen[id] = true
	}
	if len(seen) == 0 {
		return nil, util.InvalidInput(util.MsgNoAlgorithm)
	}
	out := make([]util.StrategyID, 0, len(seen))
	for _, id := range util.Strategies {
		if seen[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func drawSeed(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return rand.Uint64()
}

func clone(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	return out
}
