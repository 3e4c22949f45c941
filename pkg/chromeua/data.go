package chromeua

import (
	"maps"
	"slices"
)

var builtinAgents = []Agent{
	// macOS
	{PlatformMac, "Mac OS X 10_15_7", "135", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"},
	{PlatformMac, "Mac OS X 10_15_7", "136", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"},
	{PlatformMac, "Mac OS X 10_15_7", "137", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"},
	{PlatformMac, "Mac OS X 13_5_2", "135", "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5_2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"},
	{PlatformMac, "Mac OS X 13_5_2", "136", "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5_2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"},
	{PlatformMac, "Mac OS X 13_5_2", "137", "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5_2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"},
	{PlatformMac, "Mac OS X 14_0", "135", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"},
	{PlatformMac, "Mac OS X 14_0", "136", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"},
	{PlatformMac, "Mac OS X 14_0", "137", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"},

	// Windows
	{PlatformWindows, "Windows NT 10.0; Win64; x64", "135", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"},
	{PlatformWindows, "Windows NT 10.0; Win64; x64", "136", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"},
	{PlatformWindows, "Windows NT 10.0; Win64; x64", "137", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"},
}

// GREASE brand order and version rotate per Chrome major, so each entry is
// copied from the real browser rather than generated.
var builtinSecUA = map[string]string{
	"135": `"Google Chrome";v="135", "Not-A.Brand";v="8", "Chromium";v="135"`,
	"136": `"Chromium";v="136", "Google Chrome";v="136", "Not.A/Brand";v="99"`,
	"137": `"Google Chrome";v="137", "Chromium";v="137", "Not/A)Brand";v="24"`,
}

var defaultHeaders = Headers{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
	"Accept-Language":           "en-US,en;q=0.9",
	"Accept-Encoding":           "gzip, deflate, br, zstd",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-User":            "?1",
	"Sec-Fetch-Dest":            "document",
}

// BuiltinAgents returns a copy of the built-in agent table.
func BuiltinAgents() []Agent {
	return slices.Clone(builtinAgents)
}

// BuiltinSecUA returns a copy of the built-in sec-ch-ua table.
func BuiltinSecUA() map[string]string {
	return maps.Clone(builtinSecUA)
}

// DefaultHeaders returns a copy of the browser headers merged into every
// result unless replaced with WithDefaultHeaders.
func DefaultHeaders() Headers {
	return maps.Clone(defaultHeaders)
}
