package helpers

import (
	"strconv"
	"strings"
	"time"

	"github.com/aymerick/raymond"
)

// Set is the helper registry handed to the template engine. Each renderer
// owns its own Set, so two renderers never share helper state.
type Set struct {
	now func() time.Time
}

type Option func(*Set)

// WithClock overrides the time source used by calculateDuration.
func WithClock(now func() time.Time) Option {
	return func(s *Set) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSet(opts ...Option) *Set {
	s := &Set{now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Funcs returns the engine-facing helpers keyed by the names templates
// use. A new map is built on every call.
func (s *Set) Funcs() map[string]interface{} {
	return map[string]interface{}{
		"isFrontend": func(skill interface{}) bool {
			return IsFrontend(toString(skill))
		},
		"isBackend": func(skill interface{}) bool {
			return IsBackend(toString(skill))
		},
		"isTool": func(skill interface{}) bool {
			return IsTool(toString(skill))
		},
		"ifExists": func(v interface{}, options *raymond.Options) interface{} {
			if Exists(v) {
				return options.Fn()
			}
			return options.Inverse()
		},
		"formatDate": func(v interface{}) string {
			return FormatDate(toString(v))
		},
		"isValidUrl": func(v interface{}) bool {
			return IsValidURL(toString(v))
		},
		"getUrlDisplay": func(u, display interface{}) string {
			return URLDisplay(toString(u), argString(display))
		},
		"extract": func(obj, path interface{}) interface{} {
			return Extract(obj, argString(path))
		},
		"join": func(v interface{}, options *raymond.Options) string {
			sep := DefaultSeparator
			if h := options.HashProp("sep"); h != nil {
				sep = toString(h)
			}
			return Join(v, sep)
		},
		"limit": func(v, n interface{}) []interface{} {
			return Limit(v, toInt(n))
		},
		"calculateDuration": func(start, end, current interface{}) string {
			return CalculateDuration(toString(start), argString(end), truthy(current), s.now())
		},
	}
}

// argString reads an optional trailing argument. When a template passes
// fewer arguments than the helper declares, raymond fills the next slot
// with its *Options.
func argString(v interface{}) string {
	if _, ok := v.(*raymond.Options); ok {
		return ""
	}
	return toString(v)
}

func toInt(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			return n
		}
	}
	return 0
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	}
	return false
}
