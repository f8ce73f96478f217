package memory

import (
	"fmt"
	"strings"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/frame"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// Request is one page request, numbered in arrival order.
type Request struct {
	Index int `json:"requestIndex"`
	Size  int `json:"pageSize"`
}

func (r Request) String() string {
	return fmt.Sprintf("P%d %d", r.Index, r.Size)
}

// Memory is the whole addressable space of one strategy's run.
// It is not safe for concurrent use.
type Memory struct {
	tag         string
	frames      []*frame.Frame
	unallocated []Request
	logs        []string
	cursor      int // index of the last successful placement
	issued      int // requests handed out so far
}

func New(tag string, sizes []int) *Memory {
	m := &Memory{
		tag:         tag,
		frames:      make([]*frame.Frame, len(sizes)),
		unallocated: []Request{},
		logs:        []string{},
	}
	for i, size := range sizes {
		m.frames[i] = frame.New(size)
	}
	return m
}

func (m *Memory) Tag() string { return m.tag }

func (m *Memory) Len() int { return len(m.frames) }

// Frames exposes the frames in scan order for allocators. Read only.
func (m *Memory) Frames() []*frame.Frame { return m.frames }

// Frame returns the frame at idx. Callers must not keep it past the run.
func (m *Memory) Frame(idx int) (*frame.Frame, error) {
	if idx < 0 || idx >= len(m.frames) {
		return nil, fmt.Errorf("frame %d of %d: %w", idx, len(m.frames), util.ErrOutBoundOfFrame)
	}
	return m.frames[idx], nil
}

func (m *Memory) Size() int {
	total := 0
	for _, f := range m.frames {
		total += f.Size()
	}
	return total
}

func (m *Memory) Free() int {
	total := 0
	for _, f := range m.frames {
		total += f.Free()
	}
	return total
}

func (m *Memory) Allocated() int {
	return m.Size() - m.Free()
}

// Cursor is the index of the last successful placement, 0 before any.
func (m *Memory) Cursor() int { return m.cursor }

// Issue numbers the next request of this memory.
func (m *Memory) Issue(size int) Request {
	r := Request{Index: m.issued, Size: size}
	m.issued++
	return r
}

// Issued reports how many requests this memory has handed out.
func (m *Memory) Issued() int { return m.issued }

// Place records req in frame idx and moves the cursor there.
func (m *Memory) Place(idx int, req Request) error {
	f, err := m.Frame(idx)
	if err != nil {
		return err
	}
	if err := f.Place(req.Size); err != nil {
		return fmt.Errorf("[memory] [Place] %s into F%d: %w", req, idx, err)
	}
	m.cursor = idx
	m.Logf("%s allocated to F%d %d (%d free).", req, idx, f.Size(), f.Free())
	return nil
}

// Reject records req as unallocated. The cursor does not move.
func (m *Memory) Reject(req Request) {
	m.unallocated = append(m.unallocated, req)
	m.Logf("%s unallocated.", req)
}

// MarkUnavailable excludes frame idx from every later scan.
func (m *Memory) MarkUnavailable(idx int) error {
	f, err := m.Frame(idx)
	if err != nil {
		return err
	}
	if err := f.SetUnavailableFlag(); err != nil {
		return fmt.Errorf("F%d: %w", idx, err)
	}
	m.Logf("F%d %d marked as unavailable.", idx, f.Size())
	return nil
}

func (m *Memory) Unallocated() []Request {
	out := make([]Request, len(m.unallocated))
	copy(out, m.unallocated)
	return out
}

// Logf appends a narration line prefixed with the strategy tag.
func (m *Memory) Logf(format string, args ...interface{}) {
	m.logs = append(m.logs, m.tag+": "+fmt.Sprintf(format, args...))
}

// LogSummary appends the closing "Unallocated:" line of a batch run.
func (m *Memory) LogSummary() {
	if len(m.unallocated) == 0 {
		m.Logf("Unallocated: none.")
		return
	}
	parts := make([]string, len(m.unallocated))
	for i, r := range m.unallocated {
		parts[i] = r.String()
	}
	m.Logf("Unallocated: %s.", strings.Join(parts, ", "))
}

func (m *Memory) Logs() []string {
	out := make([]string, len(m.logs))
	copy(out, m.logs)
	return out
}

func (m *Memory) Snapshot() []frame.State {
	out := make([]frame.State, len(m.frames))
	for i, f := range m.frames {
		out[i] = f.State()
	}
	return out
}
