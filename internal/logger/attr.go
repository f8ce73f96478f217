package logger

import (
	"encoding/json"
	"log/slog"

	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

/*
Log attribute key values. Generally shouldn't be used directly, use
appropriate "attribute constructor function" instead.
*/
const (
	ModuleKey   = "module"
	ErrorKey    = "err"
	StrategyKey = "strategy"
	SessionKey  = "session"
	DataKey     = "data"
)

/*
Error adds error to the log

	if err := f(); err != nil {
		log.Error("calling f", logger.Error(err))
	}
*/
func Error(err error) slog.Attr {
	return slog.Any(ErrorKey, err)
}

// Strategy adds the placement policy the message is about.
func Strategy(id util.StrategyID) slog.Attr {
	return slog.String(StrategyKey, id.String())
}

// Session adds the simulation session id.
func Session(id string) slog.Attr {
	return slog.String(SessionKey, id)
}

/*
Data adds additional data field to the message. In JSON format the value
is rendered as embedded JSON, in text format as its JSON string.
*/
func Data(d any) slog.Attr {
	return slog.Any(DataKey, d)
}

func formatDataAttrAsJSON(groups []string, a slog.Attr) slog.Attr {
	if a.Key == DataKey && a.Value.Kind() == slog.KindAny {
		if b, err := json.Marshal(a.Value.Any()); err == nil {
			a.Value = slog.StringValue(string(b))
		}
	}
	return a
}

func formatTimeAttr(format string) func(groups []string, a slog.Attr) slog.Attr {
	switch format {
	case "":
		return nil
	case "none":
		return func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
	default:
		return func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t := a.Value.Time(); !t.IsZero() {
					a.Value = slog.StringValue(t.Format(format))
				}
			}
			return a
		}
	}
}

/*
composeAttrFmt combines attribute formatters into single func.
nil values are discarded.
*/
func composeAttrFmt(f ...func(groups []string, a slog.Attr) slog.Attr) func(groups []string, a slog.Attr) slog.Attr {
	var fs []func(groups []string, a slog.Attr) slog.Attr
	for _, fn := range f {
		if fn != nil {
			fs = append(fs, fn)
		}
	}
	switch len(fs) {
	case 0:
		return nil
	case 1:
		return fs[0]
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		for _, fn := range fs {
			a = fn(groups, a)
		}
		return a
	}
}
