// Package useragent inspects desktop Chrome User-Agent strings.
//
// Parse extracts the platform ("mac" or "win"), the OS token as it appears
// inside the parentheses (for example "Mac OS X 14_0" or
// "Windows NT 10.0; Win64; x64"), and the Chrome major and full versions.
// Chromium derivatives that append their own product token (Edge, Opera) are
// rejected, as are non-desktop platforms.
//
//	ua, err := useragent.Parse("Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36")
//	if err != nil {
//	    // ErrEmptyUserAgent, ErrMalformedUserAgent, ErrUnsupportedBrowser, ErrUnsupportedOS
//	}
//	ua.Platform()      // "mac"
//	ua.OSVersion()     // "Mac OS X 14_0"
//	ua.MajorVersion()  // "137"
//
// All errors are sentinel values usable with errors.Is.
package useragent
