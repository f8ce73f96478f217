package util

import (
	"fmt"
	"strings"
	"time"
)

// StrategyID identifies a placement policy.
type StrategyID string

const (
	FirstFit StrategyID = "FIRST_FIT"
	NextFit  StrategyID = "NEXT_FIT"
	BestFit  StrategyID = "BEST_FIT"
	WorstFit StrategyID = "WORST_FIT"
	QuickFit StrategyID = "QUICK_FIT"
)

// Strategies lists every known strategy in canonical report order.
var Strategies = []StrategyID{FirstFit, NextFit, BestFit, WorstFit, QuickFit}

// Tag returns the two letter prefix used in narration logs and chart labels.
func (s StrategyID) Tag() string {
	switch s {
	case FirstFit:
		return "FF"
	case NextFit:
		return "NF"
	case BestFit:
		return "BF"
	case WorstFit:
		return "WF"
	case QuickFit:
		return "QF"
	}
	return strings.ToUpper(string(s))
}

// Order returns the position of s in Strategies, or len(Strategies) when unknown.
func (s StrategyID) Order() int {
	for i, id := range Strategies {
		if id == s {
			return i
		}
	}
	return len(Strategies)
}

func (s StrategyID) String() string {
	return string(s)
}

// ErrorType represents the category of a simulation error
type ErrorType int

const (
	ErrTypeInvalidInput ErrorType = iota
	ErrTypeUnsupportedStrategy
	ErrTypeNotFound
	ErrTypeBodyTooLarge
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidInput:
		return "invalid_input"
	case ErrTypeUnsupportedStrategy:
		return "unsupported_strategy"
	case ErrTypeNotFound:
		return "not_found"
	case ErrTypeBodyTooLarge:
		return "body_too_large"
	}
	return fmt.Sprintf("error_type_%d", int(t))
}

// SimulationError carries a message template and its arguments so the
// message can be rendered again in another language.
type SimulationError struct {
	Type   ErrorType
	Format string
	Args   []interface{}
	Cause  error
}

func (e *SimulationError) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("fitsim error [%s]: %s", e.Type, e.Message())
}

func (e *SimulationError) Unwrap() error {
	return e.Cause
}

// NewSimulationError creates a new simulation error
func NewSimulationError(errType ErrorType, cause error, format string, args ...interface{}) *SimulationError {
	return &SimulationError{
		Type:   errType,
		Format: format,
		Args:   args,
		Cause:  cause,
	}
}

func InvalidInput(format string, args ...interface{}) *SimulationError {
	return NewSimulationError(ErrTypeInvalidInput, ErrInvalidInput, format, args...)
}

func Unsupported(id StrategyID) *SimulationError {
	return NewSimulationError(ErrTypeUnsupportedStrategy, ErrUnsupportedStrategy, MsgStrategyNotSupported, id)
}

func NotFound(format string, args ...interface{}) *SimulationError {
	return NewSimulationError(ErrTypeNotFound, ErrNotFound, format, args...)
}

func BodyTooLarge(limit int64) *SimulationError {
	return NewSimulationError(ErrTypeBodyTooLarge, ErrBodyTooLarge, MsgBodyTooLarge, limit)
}

// Options represents simulator configuration options
type Options struct {
	ListenAddr          string
	UnavailableFraction float64
	StrictFrames        bool
	Parallel            bool
	RateLimit           float64 // requests per second per client, 0 disables limiting
	RateBurst           int
	MaxBodySize         int64
	MaxSessions         int
	SessionTTL          time.Duration // idle sessions older than this are dropped, 0 keeps them
}

// DefaultOptions returns default simulator options
func DefaultOptions() Options {
	return Options{
		ListenAddr:          ":4444",
		UnavailableFraction: 0.5,
		StrictFrames:        true,
		Parallel:            false,
		RateLimit:           10,
		RateBurst:           20,
		MaxBodySize:         64 * 1024,
		MaxSessions:         1000,
		SessionTTL:          30 * time.Minute,
	}
}
