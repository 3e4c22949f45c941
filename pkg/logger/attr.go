package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Platform records an agent platform ("mac" or "win").
func Platform(p string) slog.Attr {
	return slog.String("platform", p)
}

// ChromeVersion records a Chrome major version.
func ChromeVersion(v string) slog.Attr {
	return slog.String("chrome_version", v)
}

// OSVersion records an OS version token.
func OSVersion(v string) slog.Attr {
	return slog.String("os_version", v)
}

// Revision records a registry snapshot revision.
func Revision(id string) slog.Attr {
	return slog.String("revision", id)
}

// Path records a file path.
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Count records a size or count under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
