package chromeua

import (
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// proposal is a candidate registry state that has not been committed yet.
// Unset fields fall back to the live snapshot.
type proposal struct {
	agents    []Agent
	agentsSet bool
	secUA     map[string]string
	secUASet  bool
}

// normalizeAgents converts an untyped agent list into []Agent.
// Accepted shapes are any slice or array whose elements are Agent values or
// 4-element slices/arrays of strings, which covers decoded YAML and JSON.
func normalizeAgents(raw any) ([]Agent, error) {
	if agents, ok := raw.([]Agent); ok {
		if err := checkPlatforms(agents); err != nil {
			return nil, err
		}
		return slices.Clone(agents), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, newError(ErrType, "agents must be a list or None")
	}

	agents := make([]Agent, 0, rv.Len())
	for i := range rv.Len() {
		a, err := agentAt(i, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func agentAt(i int, raw any) (Agent, error) {
	var fields [4]string

	switch v := raw.(type) {
	case Agent:
		fields = [4]string{v.Platform, v.OSVersion, v.ChromeVersion, v.UserAgent}
	default:
		rv := reflect.ValueOf(raw)
		if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() != 4 {
			return Agent{}, newError(ErrValue, "Agent at index %d must be a 4-element tuple", i)
		}
		for j := range 4 {
			s, ok := stringValue(rv.Index(j))
			if !ok {
				return Agent{}, newError(ErrType, "All elements in agent tuple at index %d must be strings", i)
			}
			fields[j] = s
		}
	}

	if !validPlatform(fields[0]) {
		return Agent{}, newError(ErrValue, "Platform at index %d must be 'mac' or 'win'", i)
	}
	return Agent{
		Platform:      fields[0],
		OSVersion:     fields[1],
		ChromeVersion: fields[2],
		UserAgent:     fields[3],
	}, nil
}

// normalizeSecUA converts an untyped mapping into a sec-ch-ua table and
// checks that it is usable on its own.
func normalizeSecUA(raw any) (map[string]string, error) {
	if secUA, ok := raw.(map[string]string); ok {
		if err := checkSecUA(secUA); err != nil {
			return nil, err
		}
		return maps.Clone(secUA), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, newError(ErrType, "sec_ua must be a dictionary")
	}
	if rv.Len() == 0 {
		return nil, newError(ErrValue, "sec_ua dictionary cannot be empty")
	}

	secUA := make(map[string]string, rv.Len())
	var badValues []string
	iter := rv.MapRange()
	for iter.Next() {
		key, ok := keyValue(iter.Key())
		if !ok {
			return nil, newError(ErrType, "sec_ua keys must be strings")
		}
		val, ok := stringValue(iter.Value())
		if !ok {
			badValues = append(badValues, key)
			continue
		}
		secUA[key] = val
	}
	if len(badValues) > 0 {
		slices.Sort(badValues)
		return nil, newError(ErrType, "sec_ua values must be strings for Chrome versions: %s", strings.Join(badValues, ", "))
	}

	if err := checkSecUA(secUA); err != nil {
		return nil, err
	}
	return secUA, nil
}

// stringValue unwraps interfaces and reports whether v holds a string.
func stringValue(v reflect.Value) (string, bool) {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.String {
		return "", false
	}
	return v.String(), true
}

// keyValue is stringValue that also accepts integer keys, which is how
// unquoted versions in YAML decode.
func keyValue(v reflect.Value) (string, bool) {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	}
	return stringValue(v)
}

func checkPlatforms(agents []Agent) error {
	for i, a := range agents {
		if !validPlatform(a.Platform) {
			return newError(ErrValue, "Platform at index %d must be 'mac' or 'win'", i)
		}
	}
	return nil
}

func checkSecUA(secUA map[string]string) error {
	if len(secUA) == 0 {
		return newError(ErrValue, "sec_ua dictionary cannot be empty")
	}
	if _, ok := secUA[DefaultChromeVersion]; !ok {
		return newError(ErrKey, "Default Chrome version '%s' must exist", DefaultChromeVersion)
	}
	return nil
}

// stage validates p against the live snapshot cur and returns the snapshot
// to publish. cur is never modified.
func stage(cur *snapshot, p proposal) (*snapshot, error) {
	agents, secUA := cur.agents, cur.secUA
	if p.agentsSet {
		if err := checkPlatforms(p.agents); err != nil {
			return nil, err
		}
		agents = slices.Clone(p.agents)
	}
	if p.secUASet {
		if err := checkSecUA(p.secUA); err != nil {
			return nil, err
		}
		secUA = maps.Clone(p.secUA)
	}

	var missing []string
	seen := make(map[string]struct{})
	for _, a := range agents {
		if _, ok := secUA[a.ChromeVersion]; ok {
			continue
		}
		if _, ok := seen[a.ChromeVersion]; ok {
			continue
		}
		seen[a.ChromeVersion] = struct{}{}
		missing = append(missing, a.ChromeVersion)
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, newError(ErrValue, "sec_ua is missing entries for Chrome versions: %s", strings.Join(missing, ", "))
	}

	if agents == nil {
		agents = []Agent{}
	}
	return newSnapshot(agents, secUA), nil
}
