package useragent

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// UserAgent contains the parsed information from a Chrome desktop user agent string
type UserAgent struct {
	userAgent    string
	platform     string
	osVersion    string
	majorVersion string
	fullVersion  string
}

// String returns the user agent as a string
func (ua UserAgent) String() string { return ua.userAgent }

// Platform returns "mac" or "win"
func (ua UserAgent) Platform() string { return ua.platform }

// OSVersion returns the OS token, e.g. "Mac OS X 14_0"
func (ua UserAgent) OSVersion() string { return ua.osVersion }

// MajorVersion returns the Chrome major version, e.g. "137"
func (ua UserAgent) MajorVersion() string { return ua.majorVersion }

// FullVersion returns the dotted Chrome version, e.g. "137.0.0.0"
func (ua UserAgent) FullVersion() string { return ua.fullVersion }

// keywordSet optimizes keyword lookups using map structure
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[word] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

var (
	edgeKeywords  = newKeywordSet("edg/", "edge/", "edga/", "edgios/")
	operaKeywords = newKeywordSet("opr/", "opera")
	mobileTokens  = newKeywordSet("mobile", "android", "iphone", "ipad")
)

var (
	// first parenthesized comment holds the platform description
	platformComment = regexp.MustCompile(`\(([^)]*)\)`)
	chromeToken     = regexp.MustCompile(`Chrome/(\d+)((?:\.\d+)*)`)
)

const macPrefix = "Macintosh; Intel "

// Parse extracts platform, OS token and Chrome version from ua.
func Parse(ua string) (UserAgent, error) {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return UserAgent{}, ErrEmptyUserAgent
	}

	lower := strings.ToLower(ua)
	if edgeKeywords.contains(lower) {
		return UserAgent{}, errors.Join(ErrUnsupportedBrowser, fmt.Errorf("browser %q", BrowserEdge))
	}
	if operaKeywords.contains(lower) {
		return UserAgent{}, errors.Join(ErrUnsupportedBrowser, fmt.Errorf("browser %q", BrowserOpera))
	}

	version := chromeToken.FindStringSubmatch(ua)
	if version == nil {
		return UserAgent{}, ErrUnsupportedBrowser
	}

	comment := platformComment.FindStringSubmatch(ua)
	if comment == nil {
		return UserAgent{}, ErrMalformedUserAgent
	}
	if mobileTokens.contains(lower) {
		return UserAgent{}, ErrUnsupportedOS
	}

	platform, osVersion, err := parsePlatform(comment[1])
	if err != nil {
		return UserAgent{}, err
	}

	return UserAgent{
		userAgent:    ua,
		platform:     platform,
		osVersion:    osVersion,
		majorVersion: version[1],
		fullVersion:  version[1] + version[2],
	}, nil
}

func parsePlatform(comment string) (platform, osVersion string, err error) {
	switch {
	case strings.HasPrefix(comment, macPrefix):
		return PlatformMac, strings.TrimPrefix(comment, macPrefix), nil
	case strings.HasPrefix(comment, "Macintosh;"):
		return PlatformMac, strings.TrimSpace(strings.TrimPrefix(comment, "Macintosh;")), nil
	case strings.HasPrefix(comment, "Windows NT"):
		return PlatformWindows, comment, nil
	default:
		return "", "", ErrUnsupportedOS
	}
}
