package chromeua_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/macwinua/pkg/chromeua"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestTransport(t *testing.T) {
	t.Parallel()

	received := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: &chromeua.Transport{
		UA:      chromeua.New(),
		Options: []chromeua.QueryOption{chromeua.Platform("win")},
	}}

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "de-DE")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	got := <-received
	assert.Contains(t, got.Get("User-Agent"), "Windows NT 10.0")
	assert.Equal(t, `"Windows"`, got.Get("Sec-Ch-Ua-Platform"))
	assert.Equal(t, "?0", got.Get("Sec-Ch-Ua-Mobile"))
	assert.Equal(t, "de-DE", got.Get("Accept-Language"))

	// The caller's request is left untouched.
	assert.Empty(t, req.Header.Get("User-Agent"))
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	called := false
	base := roundTripFunc(func(*http.Request) (*http.Response, error) {
		called = true
		return nil, nil
	})
	tr := &chromeua.Transport{
		Base:    base,
		UA:      chromeua.New(),
		Options: []chromeua.QueryOption{chromeua.Platform("linux")},
	}

	body := &trackingBody{Reader: strings.NewReader("payload")}
	req := httptest.NewRequest(http.MethodPost, "http://example.test/", body)

	resp, err := tr.RoundTrip(req)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, chromeua.ErrValue)
	assert.False(t, called)
	assert.True(t, body.closed)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
