package util

// User facing message templates. They double as catalog keys for the
// translations in internal/locale, so every SimulationError is built from
// one of these.
const (
	MsgInvalidPageInput     = "invalid page input at position %d: %q"
	MsgInvalidFrameInput    = "invalid frame input at position %d: %q"
	MsgPageTooLarge         = "page size at position %d exceeds %d"
	MsgFrameTooLarge        = "frame size at position %d exceeds %d"
	MsgEmptyPageInput       = "page input must not be empty"
	MsgEmptyFrameInput      = "frame input must not be empty"
	MsgTooFewFrames         = "frame count must be greater than page count: got %d pages and %d frames"
	MsgNoAlgorithm          = "at least one algorithm must be enabled"
	MsgUnknownStrategy      = "unknown strategy %q"
	MsgStrategyNotSupported = "strategy %s is not implemented"
	MsgStrategyNotInSession = "strategy %s is not part of this session"
	MsgInvalidHistory       = "invalid history selection: %d"
	MsgUnknownSession       = "unknown simulation session %s"
	MsgInvalidFraction      = "invalid unavailable fraction %v"
	MsgEmptyScenario        = "scenario is empty"
	MsgMalformedScenario    = "decoding scenario: %v"
	MsgMalformedBody        = "malformed request body"
	MsgBodyTooLarge         = "request body exceeds %d bytes"
	MsgRateLimited          = "too many requests"
)

// Messages lists every template above.
var Messages = []string{
	MsgInvalidPageInput, MsgInvalidFrameInput, MsgPageTooLarge, MsgFrameTooLarge,
	MsgEmptyPageInput, MsgEmptyFrameInput, MsgTooFewFrames, MsgNoAlgorithm,
	MsgUnknownStrategy, MsgStrategyNotSupported, MsgStrategyNotInSession,
	MsgInvalidHistory, MsgUnknownSession, MsgInvalidFraction, MsgEmptyScenario,
	MsgMalformedScenario, MsgMalformedBody, MsgBodyTooLarge, MsgRateLimited,
}
