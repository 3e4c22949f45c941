package chromeua

import "maps"

// Supported platforms.
const (
	PlatformMac     = "mac"
	PlatformWindows = "win"
)

// DefaultChromeVersion is the sec-ch-ua entry used when a selected agent's
// version has no entry of its own. Every sec-ch-ua table must contain it.
const DefaultChromeVersion = "136"

// Header names set on every result.
const (
	HeaderUserAgent       = "User-Agent"
	HeaderSecChUa         = "sec-ch-ua"
	HeaderSecChUaPlatform = "sec-ch-ua-platform"
	HeaderSecChUaMobile   = "sec-ch-ua-mobile"
)

// Agent is one curated browser identity.
type Agent struct {
	Platform      string `json:"platform" yaml:"platform"`
	OSVersion     string `json:"os_version" yaml:"os_version"`
	ChromeVersion string `json:"chrome_version" yaml:"chrome_version"`
	UserAgent     string `json:"user_agent" yaml:"user_agent"`
}

func validPlatform(p string) bool {
	return p == PlatformMac || p == PlatformWindows
}

// platformHint renders the sec-ch-ua-platform value for p.
func platformHint(p string) string {
	if p == PlatformMac {
		return `"macOS"`
	}
	return `"Windows"`
}

// Headers maps header names to values.
//
// Results served from the cache are shared between callers: treat them as
// read-only and use Clone before modifying.
type Headers map[string]string

// Clone returns a copy that is safe to modify.
func (h Headers) Clone() Headers {
	return maps.Clone(h)
}
