package useragent

// Platform identifiers, matching the values used by the chromeua registry.
const (
	// PlatformMac identifies Chrome on macOS
	PlatformMac = "mac"

	// PlatformWindows identifies Chrome on Windows
	PlatformWindows = "win"
)

// Browser name identifiers
const (
	BrowserChrome = "chrome"
	BrowserEdge   = "edge"
	BrowserOpera  = "opera"
)
