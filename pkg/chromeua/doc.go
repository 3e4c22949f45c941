// Package chromeua generates realistic desktop Chrome request headers for
// macOS and Windows.
//
// A ChromeUA holds a registry of curated agents (platform, OS version, Chrome
// major version and the full User-Agent string) plus a table of sec-ch-ua
// client hint values keyed by Chrome version. GetHeaders picks a random agent
// matching the given filters and returns a header set in which User-Agent,
// sec-ch-ua, sec-ch-ua-platform and sec-ch-ua-mobile agree with each other.
//
// # Basic Usage
//
//	headers, err := chromeua.GetHeaders(
//	    chromeua.Platform("mac"),
//	    chromeua.ChromeVersion(137),
//	)
//	if err != nil {
//	    return err
//	}
//	req.Header.Set("User-Agent", headers["User-Agent"])
//
// GetChromeHeaders does the same with the platform as the first argument, and
// Default returns the shared instance behind both. The Chrome, Mac, Windows,
// Latest and Random methods return a single User-Agent string.
//
// # Caching
//
// Results are memoized per distinct combination of filters and extra headers.
// Repeated calls return the same Headers value until the registry changes, so
// a given filter set keeps presenting one identity. Treat cached results as
// read-only; Clone them before modifying.
//
// # Updating the Registry
//
// Update replaces the agent list, the sec-ch-ua table, or both. The new state
// is validated as a whole and published atomically; on any error nothing
// changes. Every successful update clears the cache.
//
//	err := ua.Update(
//	    chromeua.WithAgents(agents),
//	    chromeua.WithSecUA(secUA),
//	)
//
// UpdateRaw accepts untyped data such as decoded YAML or JSON, and
// UpdateFromFile and NewWatcher load it from disk.
//
// # Errors
//
// Query and update errors are *Error values whose Msg is a fixed
// human-readable message and which match exactly one of ErrType, ErrValue,
// ErrKey or ErrIndex with errors.Is. Failures while assembling headers are reported as ErrValue with
// the message prefix "Failed to generate headers: ".
//
// # HTTP
//
// NewHandler serves headers and registry views as JSON, and Transport adds
// generated headers to outgoing requests of an http.Client.
package chromeua
