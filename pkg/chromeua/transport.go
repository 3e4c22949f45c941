package chromeua

import "net/http"

// Transport is an http.RoundTripper that adds browser headers from a
// ChromeUA to outgoing requests. Headers already set on a request are kept.
type Transport struct {
	// Base performs the request. http.DefaultTransport is used when nil.
	Base http.RoundTripper
	// UA supplies the headers. Default() is used when nil.
	UA *ChromeUA
	// Options are passed to GetHeaders for every request.
	Options []QueryOption
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ua := t.UA
	if ua == nil {
		ua = Default()
	}

	headers, err := ua.GetHeaders(t.Options...)
	if err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}

	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	for name, value := range headers {
		if r.Header.Get(name) == "" {
			r.Header.Set(name, value)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}
