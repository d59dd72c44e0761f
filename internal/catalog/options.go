package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Options maps upper-cased placeholder names to their replacement values.
type Options map[string]string

// DefaultOptions builds the per-run defaults: TIME_ZONE, DOAS, NOW (epoch
// milliseconds) and NOWLESSMIN (NOW minus one minute).
func DefaultOptions(timeZone, doAs string, now time.Time) Options {
	nowMillis := now.UnixMilli()
	return Options{
		"TIME_ZONE":  timeZone,
		"DOAS":       doAs,
		"NOW":        strconv.FormatInt(nowMillis, 10),
		"NOWLESSMIN": strconv.FormatInt(nowMillis-60000, 10),
	}
}

// ParseOptions parses a --testoptions value ("KEY=value,KEY2=value2").
// Keys are upper-cased and both sides are trimmed; a value may itself
// contain '='.
func ParseOptions(raw string) (Options, error) {
	opts := Options{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		key = strings.ToUpper(strings.TrimSpace(key))
		if !ok || key == "" {
			return nil, configErrorf("invalid test option %q (format: KEY=value,KEY2=value2)", entry)
		}
		opts[key] = strings.TrimSpace(value)
	}
	if len(opts) == 0 {
		return nil, configErrorf("--testoptions given but no KEY=value pairs found in %q", raw)
	}
	return opts, nil
}

// ResolveOptions returns the options for a run. When overrides is non-nil it
// replaces the defaults entirely; nothing from the defaults is merged in.
func ResolveOptions(defaults, overrides Options) Options {
	if overrides != nil {
		return overrides
	}
	return defaults
}

// Lookup finds a value by placeholder name, ignoring case and underscores,
// so {TIMEZONE} resolves TIME_ZONE.
func (o Options) Lookup(name string) (string, bool) {
	if o == nil {
		return "", false
	}
	if v, ok := o[strings.ToUpper(name)]; ok {
		return v, true
	}
	want := canonicalKey(name)
	for k, v := range o {
		if canonicalKey(k) == want {
			return v, true
		}
	}
	return "", false
}

// Keys returns the option names sorted, for logging.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func canonicalKey(name string) string {
	return strings.ReplaceAll(strings.ToUpper(name), "_", "")
}
