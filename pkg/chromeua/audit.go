package chromeua

import (
	"fmt"

	"github.com/dmitrymomot/macwinua/pkg/useragent"
)

// Finding describes an agent whose User-Agent string disagrees with its
// declared fields.
type Finding struct {
	Index   int
	Agent   Agent
	Problem string
}

func (f Finding) String() string {
	return fmt.Sprintf("agent %d: %s", f.Index, f.Problem)
}

// Audit parses every stored User-Agent string and reports agents whose
// platform, OS version or Chrome version do not match what the string says.
// Update does not require this consistency, so Audit is how curated data
// gets checked.
func (c *ChromeUA) Audit() []Finding {
	var findings []Finding
	for i, a := range c.current().agents {
		report := func(format string, args ...any) {
			findings = append(findings, Finding{Index: i, Agent: a, Problem: fmt.Sprintf(format, args...)})
		}

		parsed, err := useragent.Parse(a.UserAgent)
		if err != nil {
			report("unparseable user-agent: %v", err)
			continue
		}
		if parsed.Platform() != a.Platform {
			report("platform %q does not match user-agent platform %q", a.Platform, parsed.Platform())
		}
		if parsed.OSVersion() != a.OSVersion {
			report("os version %q does not match user-agent os version %q", a.OSVersion, parsed.OSVersion())
		}
		if parsed.MajorVersion() != a.ChromeVersion {
			report("chrome version %q does not match user-agent version %q", a.ChromeVersion, parsed.MajorVersion())
		}
	}
	return findings
}
