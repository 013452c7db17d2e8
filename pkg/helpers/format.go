package helpers

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DefaultSeparator is used by Join when the template does not pass one.
const DefaultSeparator = ", "

// Exists is the truthiness rule templates rely on: a string exists only
// with non-whitespace content, a list only when non-empty, anything else
// whenever it is non-nil.
func Exists(v interface{}) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	case reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// FormatDate turns "2023-01" into "Jan 2023". Anything that does not parse
// is returned unchanged so a bad date never breaks a render.
func FormatDate(yearMonth string) string {
	t, err := time.Parse("2006-01-02", yearMonth+"-01")
	if err != nil {
		return yearMonth
	}
	return t.Format("Jan 2006")
}

// IsValidURL accepts absolute http(s) URLs with a host. Its result gates
// every href a template emits.
func IsValidURL(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// URLDisplay picks the label shown for a link: the explicit display name,
// else the host without "www.", else the raw URL.
func URLDisplay(rawURL, displayName string) string {
	if d := strings.TrimSpace(displayName); d != "" {
		return d
	}
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}
	if u, err := url.Parse(s); err == nil && u.Hostname() != "" {
		return strings.TrimPrefix(u.Hostname(), "www.")
	}
	return s
}

// Extract walks a dotted path through maps and slices. Missing segments
// yield "".
func Extract(obj interface{}, path string) interface{} {
	if path == "" {
		return ""
	}
	cur := obj
	for _, seg := range strings.Split(path, ".") {
		next, ok := child(cur, seg)
		if !ok {
			return ""
		}
		cur = next
	}
	if cur == nil {
		return ""
	}
	return cur
}

func child(v interface{}, key string) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]interface{}); ok {
		out, found := m[key]
		return out, found
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !out.IsValid() {
			return nil, false
		}
		return out.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// Join renders list items separated by sep; non-lists render as "".
func Join(v interface{}, sep string) string {
	items, ok := toSlice(v)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, toString(it))
	}
	return strings.Join(parts, sep)
}

// Limit returns at most n leading items; non-lists yield an empty list.
func Limit(v interface{}, n int) []interface{} {
	items, ok := toSlice(v)
	if !ok {
		return []interface{}{}
	}
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]interface{}, n)
	copy(out, items[:n])
	return out
}

// CalculateDuration returns the whole months between start and end (or
// now when current or end is missing) as "2 yrs 3 mos". Both dates are
// "YYYY-MM" strings; an unusable start yields "".
func CalculateDuration(start, end string, current bool, now time.Time) string {
	sy, sm, ok := parseYearMonth(start)
	if !ok {
		return ""
	}
	ey, em := now.Year(), int(now.Month())
	if !current {
		if y, m, ok := parseYearMonth(end); ok {
			ey, em = y, m
		}
	}
	months := (ey-sy)*12 + (em - sm)
	if months < 0 {
		months = 0
	}
	return formatMonths(months)
}

func parseYearMonth(s string) (int, int, bool) {
	s = strings.TrimSpace(s)
	switch {
	case len(s) >= 7:
		t, err := time.Parse("2006-01", s[:7])
		if err != nil {
			return 0, 0, false
		}
		return t.Year(), int(t.Month()), true
	case len(s) == 4:
		y, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, false
		}
		return y, 1, true
	}
	return 0, 0, false
}

func formatMonths(total int) string {
	years, months := total/12, total%12
	parts := make([]string, 0, 2)
	if years > 0 {
		parts = append(parts, plural(years, "yr"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "mo"))
	}
	if len(parts) == 0 {
		return plural(0, "mo")
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func toSlice(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.([]interface{}); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
