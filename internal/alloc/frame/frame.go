package frame

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// Frame is a fixed-capacity slot holding page sizes in arrival order.
type Frame struct {
	size        int
	used        int
	pages       []int
	unavailable bool
}

// State is a detached copy of a frame, safe to hand out to readers.
type State struct {
	Size        int   `json:"size"`
	Pages       []int `json:"pages"`
	Free        int   `json:"free"`
	Allocated   int   `json:"allocated"`
	Unavailable bool  `json:"unavailable"`
}

func New(size int) *Frame {
	if size <= 0 {
		panic(util.ErrInvalidFrameSize)
	}
	return &Frame{size: size, pages: []int{}}
}

func (f *Frame) Size() int { return f.size }

func (f *Frame) Free() int { return f.size - f.used }

func (f *Frame) Allocated() int { return f.used }

func (f *Frame) Pages() []int {
	out := make([]int, len(f.pages))
	copy(out, f.pages)
	return out
}

// Fits reports whether a page of the given size may be placed now.
// Unavailable frames never fit.
func (f *Frame) Fits(page int) bool {
	return !f.unavailable && f.Free() >= page
}

// Place appends a page. The frame is left untouched on error.
func (f *Frame) Place(page int) error {
	if page <= 0 {
		return fmt.Errorf("place %d: %w", page, util.ErrInvalidPageSize)
	}
	if f.unavailable {
		return util.ErrFrameUnavailable
	}
	if f.Free() < page {
		return fmt.Errorf("place %d into %d free: %w", page, f.Free(), util.ErrInsufficientSpace)
	}
	f.pages = append(f.pages, page)
	f.used += page
	return nil
}

/* UNAVAILABLE FLAG */
func (f *Frame) IsUnavailable() bool { return f.unavailable }

func (f *Frame) SetUnavailableFlag() error {
	if f.unavailable {
		return util.ErrFrameAlreadyUnavailable
	}
	f.unavailable = true
	return nil
}

func (f *Frame) State() State {
	return State{
		Size:        f.size,
		Pages:       f.Pages(),
		Free:        f.Free(),
		Allocated:   f.Allocated(),
		Unavailable: f.unavailable,
	}
}
