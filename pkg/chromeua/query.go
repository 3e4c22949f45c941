package chromeua

import (
	"encoding"
	"fmt"
	"maps"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// QueryOption narrows or extends a header request.
type QueryOption func(*queryArgs)

type queryArgs struct {
	platform      any
	chromeVersion any
	osVersion     any
	extraHeaders  any
}

// Platform restricts selection to "mac" or "win". A nil value means no filter.
func Platform(v any) QueryOption {
	return func(a *queryArgs) { a.platform = v }
}

// ChromeVersion restricts selection to a Chrome major version. Numbers are
// accepted and converted to their decimal string form.
func ChromeVersion(v any) QueryOption {
	return func(a *queryArgs) { a.chromeVersion = v }
}

// OSVersion restricts selection to an exact OS version token,
// e.g. "Mac OS X 14_0" or "Windows NT 10.0; Win64; x64".
func OSVersion(v any) QueryOption {
	return func(a *queryArgs) { a.osVersion = v }
}

// ExtraHeaders merges additional headers into the result, overriding defaults
// on collision. Accepted values are map[string]string, Headers, http.Header
// and maps with string keys and string-convertible values.
func ExtraHeaders(v any) QueryOption {
	return func(a *queryArgs) { a.extraHeaders = v }
}

// query is the coerced form of queryArgs.
type query struct {
	platform      string
	chromeVersion string
	osVersion     string
	hasPlatform   bool
	hasVersion    bool
	hasOS         bool

	extra    map[string]string
	extraErr error
}

// cacheKey canonicalizes the query for memoization.
type cacheKey struct {
	platform, chromeVersion, osVersion string
	hasPlatform, hasVersion, hasOS     bool
	extra                              string
}

func buildQuery(opts []QueryOption) (query, error) {
	var args queryArgs
	for _, opt := range opts {
		opt(&args)
	}

	var (
		q   query
		err error
	)
	if q.platform, q.hasPlatform, err = coerce("platform", args.platform); err != nil {
		return query{}, err
	}
	if q.chromeVersion, q.hasVersion, err = coerce("chrome_version", args.chromeVersion); err != nil {
		return query{}, err
	}
	if q.osVersion, q.hasOS, err = coerce("os_version", args.osVersion); err != nil {
		return query{}, err
	}
	if args.extraHeaders != nil {
		q.extra, q.extraErr = toHeaderMap(args.extraHeaders)
	}
	return q, nil
}

func (q query) key() cacheKey {
	k := cacheKey{
		platform:      q.platform,
		chromeVersion: q.chromeVersion,
		osVersion:     q.osVersion,
		hasPlatform:   q.hasPlatform,
		hasVersion:    q.hasVersion,
		hasOS:         q.hasOS,
	}
	if len(q.extra) > 0 {
		var b strings.Builder
		for _, name := range slices.Sorted(maps.Keys(q.extra)) {
			writeField(&b, name)
			writeField(&b, q.extra[name])
		}
		k.extra = b.String()
	}
	return k
}

// writeField appends s with a length prefix so that no two header sets
// share an encoding.
func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// coerce turns a caller-supplied filter into a string. Any failure of the
// conversion itself is reported as ErrValue.
func coerce(name string, v any) (string, bool, error) {
	if v == nil {
		return "", false, nil
	}
	s, err := toString(v)
	if err != nil {
		return "", false, &Error{
			Kind:  ErrValue,
			Msg:   fmt.Sprintf("Invalid %s value: %v", name, err),
			Cause: err,
		}
	}
	return s, true, nil
}

func toString(v any) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("string conversion panicked: %v", r)
		}
	}()

	switch t := v.(type) {
	case string:
		return t, nil
	case encoding.TextMarshaler:
		b, merr := t.MarshalText()
		if merr != nil {
			return "", merr
		}
		return string(b), nil
	case fmt.Stringer:
		return t.String(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func toHeaderMap(v any) (map[string]string, error) {
	switch t := v.(type) {
	case map[string]string:
		return maps.Clone(t), nil
	case Headers:
		return maps.Clone(t), nil
	case http.Header:
		out := make(map[string]string, len(t))
		for k, vals := range t {
			out[k] = strings.Join(vals, ", ")
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("extra headers of type %T cannot be merged into a header mapping", v)
	}
	out := make(map[string]string, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, ok := stringValue(iter.Key())
		if !ok {
			return nil, fmt.Errorf("extra header name %v is not a string", iter.Key())
		}
		val, err := toString(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("extra header %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

// filter narrows the snapshot's agents to those matching q.
func (s *snapshot) filter(q query) ([]Agent, error) {
	if q.hasPlatform && !validPlatform(q.platform) {
		return nil, newError(ErrValue, "Platform must be 'mac' or 'win'")
	}
	if q.hasVersion && !s.isKnownVersion(q.chromeVersion) {
		return nil, newError(ErrValue, "Chrome version must be one of %s", strings.Join(s.knownVersions(), ", "))
	}

	candidates := s.agents
	if q.hasPlatform {
		candidates = matching(candidates, func(a Agent) bool { return a.Platform == q.platform })
		if len(candidates) == 0 {
			return nil, newError(ErrValue, "No matching user-agent found for platform '%s'", q.platform)
		}
	}
	if q.hasVersion {
		candidates = matching(candidates, func(a Agent) bool { return a.ChromeVersion == q.chromeVersion })
		if len(candidates) == 0 {
			return nil, newError(ErrValue, "No matching user-agent found for Chrome version '%s'", q.chromeVersion)
		}
	}
	if q.hasOS {
		candidates = matching(candidates, func(a Agent) bool { return a.OSVersion == q.osVersion })
		if len(candidates) == 0 {
			return nil, newError(ErrValue, "No matching user-agent found for OS version '%s'", q.osVersion)
		}
	}

	if len(candidates) == 0 {
		return nil, newError(ErrValue, "No matching user-agent found.")
	}
	return candidates, nil
}

func matching(agents []Agent, keep func(Agent) bool) []Agent {
	var out []Agent
	for _, a := range agents {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
