package util

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnsupportedStrategy     = errors.New("unsupported strategy")
	ErrNotFound                = errors.New("not found")
	ErrBodyTooLarge            = errors.New("request body too large")
	ErrInvalidFrameSize        = errors.New("frame size must be positive")
	ErrInvalidPageSize         = errors.New("page size must be positive")
	ErrInsufficientSpace       = errors.New("insufficient free space in frame")
	ErrFrameUnavailable        = errors.New("frame is unavailable")
	ErrFrameAlreadyUnavailable = errors.New("frame is already unavailable")
	ErrOutBoundOfFrame         = errors.New("frame idx out of bound")
	ErrInvalidFraction         = errors.New("unavailable fraction must be within [0, 1]")
	ErrMaskSizeMismatch        = errors.New("mask size does not match frame count")
)
