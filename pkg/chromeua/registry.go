package chromeua

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// snapshot is one committed registry state. It is never modified after
// construction; updates build a new snapshot and swap the pointer.
type snapshot struct {
	agents   []Agent
	secUA    map[string]string
	known    map[string]struct{}
	revision string
}

// newSnapshot takes ownership of agents and secUA.
func newSnapshot(agents []Agent, secUA map[string]string) *snapshot {
	known := make(map[string]struct{}, len(secUA)+len(agents))
	for v := range secUA {
		known[v] = struct{}{}
	}
	for _, a := range agents {
		known[a.ChromeVersion] = struct{}{}
	}
	return &snapshot{
		agents:   agents,
		secUA:    secUA,
		known:    known,
		revision: uuid.NewString(),
	}
}

// secUAFor returns the sec-ch-ua value for version, falling back to the
// DefaultChromeVersion entry when the version has none.
func (s *snapshot) secUAFor(version string) string {
	if v, ok := s.secUA[version]; ok {
		return v
	}
	return s.secUA[DefaultChromeVersion]
}

func (s *snapshot) isKnownVersion(v string) bool {
	_, ok := s.known[v]
	return ok
}

// knownVersions lists every version accepted by the Chrome version filter.
func (s *snapshot) knownVersions() []string {
	return slices.Sorted(maps.Keys(s.known))
}

func (s *snapshot) versions() []string {
	return distinctSorted(s.agents, func(a Agent) string { return a.ChromeVersion })
}

func (s *snapshot) platforms() []string {
	return distinctSorted(s.agents, func(a Agent) string { return a.Platform })
}

// osVersions keeps the first-seen order of OS versions per platform.
func (s *snapshot) osVersions() map[string][]string {
	out := make(map[string][]string)
	seen := make(map[Agent]struct{})
	for _, a := range s.agents {
		key := Agent{Platform: a.Platform, OSVersion: a.OSVersion}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out[a.Platform] = append(out[a.Platform], a.OSVersion)
	}
	return out
}

func distinctSorted(agents []Agent, field func(Agent) string) []string {
	set := make(map[string]struct{})
	for _, a := range agents {
		set[field(a)] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// compareVersions orders Chrome versions numerically by their dotted parts,
// falling back to string order for anything that is not a number.
func compareVersions(a, b string) int {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := range max(len(pa), len(pb)) {
		var x, y string
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		nx, errx := strconv.Atoi(x)
		ny, erry := strconv.Atoi(y)
		switch {
		case errx == nil && erry == nil:
			if nx != ny {
				return nx - ny
			}
		case errx == nil:
			return 1
		case erry == nil:
			return -1
		default:
			if c := strings.Compare(x, y); c != 0 {
				return c
			}
		}
	}
	return 0
}
