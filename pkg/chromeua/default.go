package chromeua

import "sync"

var defaultInstance = sync.OnceValue(func() *ChromeUA { return New() })

// Default returns the process-wide instance, created on first use with the
// built-in agent table.
func Default() *ChromeUA {
	return defaultInstance()
}

// GetHeaders calls GetHeaders on the default instance.
func GetHeaders(opts ...QueryOption) (Headers, error) {
	return Default().GetHeaders(opts...)
}

// GetChromeHeaders is GetHeaders on the default instance with the platform
// given positionally. A nil platform means any.
func GetChromeHeaders(platform any, opts ...QueryOption) (Headers, error) {
	return Default().GetHeaders(append([]QueryOption{Platform(platform)}, opts...)...)
}
