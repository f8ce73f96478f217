package input

import (
	"math"
	"strconv"
	"strings"

	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// Field names the input list an error refers to.
type Field string

const (
	FieldPages  Field = "page"
	FieldFrames Field = "frame"
)

// MaxSize bounds a single page or frame size so that the sum over any
// memory stays far from integer overflow.
const MaxSize = math.MaxInt32

// ParseList parses a comma separated list of positive sizes, e.g. "8, 15,3".
func ParseList(field Field, raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, emptyList(field)
	}
	return ParseValues(field, strings.Split(raw, ","))
}

// ParseValues parses already split values, reporting the position of the
// first one that is not a positive integer within MaxSize.
func ParseValues(field Field, values []string) ([]int, error) {
	out := make([]int, len(values))
	for i, value := range values {
		value = strings.TrimSpace(value)
		v, err := strconv.Atoi(value)
		if err != nil || v <= 0 {
			return nil, invalidValue(field, i, value)
		}
		if err := checkValue(field, i, v); err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// CheckSizes validates sizes that arrived already numeric.
func CheckSizes(field Field, sizes []int) error {
	if len(sizes) == 0 {
		return emptyList(field)
	}
	for i, v := range sizes {
		if err := checkValue(field, i, v); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a run's inputs before any allocator runs. Pages may be
// empty so a session can start before its first step. In strict mode there
// must be more frames than pages, as the simulator UI always demanded.
func Validate(pages, frames []int, strict bool) error {
	for i, v := range pages {
		if err := checkValue(FieldPages, i, v); err != nil {
			return err
		}
	}
	if err := CheckSizes(FieldFrames, frames); err != nil {
		return err
	}
	if strict && len(pages) >= len(frames) {
		return util.InvalidInput(util.MsgTooFewFrames, len(pages), len(frames))
	}
	return nil
}

func checkValue(field Field, pos, v int) error {
	if v <= 0 {
		return invalidValue(field, pos, strconv.Itoa(v))
	}
	if v > MaxSize {
		if field == FieldFrames {
			return util.InvalidInput(util.MsgFrameTooLarge, pos, MaxSize)
		}
		return util.InvalidInput(util.MsgPageTooLarge, pos, MaxSize)
	}
	return nil
}

func invalidValue(field Field, pos int, value string) error {
	if field == FieldFrames {
		return util.InvalidInput(util.MsgInvalidFrameInput, pos, value)
	}
	return util.InvalidInput(util.MsgInvalidPageInput, pos, value)
}

func emptyList(field Field) error {
	if field == FieldFrames {
		return util.InvalidInput(util.MsgEmptyFrameInput)
	}
	return util.InvalidInput(util.MsgEmptyPageInput)
}

var strategyAliases = map[string]util.StrategyID{
	"firstfit": util.FirstFit,
	"nextfit":  util.NextFit,
	"bestfit":  util.BestFit,
	"worstfit": util.WorstFit,
	"quickfit": util.QuickFit,
	"ff":       util.FirstFit,
	"nf":       util.NextFit,
	"bf":       util.BestFit,
	"wf":       util.WorstFit,
	"qf":       util.QuickFit,
}

// ParseStrategy accepts FIRST_FIT, firstFit, first-fit or FF in any case.
func ParseStrategy(raw string) (util.StrategyID, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	if id, ok := strategyAliases[key]; ok {
		return id, nil
	}
	return "", util.InvalidInput(util.MsgUnknownStrategy, raw)
}

// ParseStrategies parses names, drops duplicates and returns canonical order.
// At least one strategy must be selected.
func ParseStrategies(raw []string) ([]util.StrategyID, error) {
	seen := make(map[util.StrategyID]bool, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		id, err := ParseStrategy(r)
		if err != nil {
			return nil, err
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
