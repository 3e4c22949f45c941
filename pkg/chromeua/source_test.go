package chromeua_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/macwinua/pkg/chromeua"
)

const tupleData = `
agents:
  - [mac, "Mac OS X 14_0", "138", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"]
  - [win, "Windows NT 10.0; Win64; x64", "138", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"]
sec_ua:
  "136": '"Chromium";v="136", "Google Chrome";v="136", "Not.A/Brand";v="99"'
  "138": '"Not)A;Brand";v="8", "Chromium";v="138", "Google Chrome";v="138"'
`

const mappingData = `
agents:
  - platform: win
    os_version: "Windows NT 10.0; Win64; x64"
    chrome_version: "136"
    user_agent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/136.0.0.0"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseData(t *testing.T) {
	t.Parallel()

	t.Run("tuples", func(t *testing.T) {
		t.Parallel()
		d, err := chromeua.ParseData([]byte(tupleData))
		require.NoError(t, err)

		ua := chromeua.New()
		require.NoError(t, ua.UpdateRaw(d.Agents, d.SecUA))
		assert.Equal(t, []string{"138"}, ua.AvailableVersions())
		assert.Equal(t, []string{"mac", "win"}, ua.AvailablePlatforms())

		h, err := ua.GetHeaders(chromeua.Platform("mac"))
		require.NoError(t, err)
		assert.Contains(t, h["sec-ch-ua"], `v="138"`)
	})

	t.Run("mappings", func(t *testing.T) {
		t.Parallel()
		d, err := chromeua.ParseData([]byte(mappingData))
		require.NoError(t, err)
		assert.Nil(t, d.SecUA)

		ua := chromeua.New()
		require.NoError(t, ua.UpdateRaw(d.Agents, d.SecUA))
		s, err := ua.Windows()
		require.NoError(t, err)
		assert.Equal(t, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/136.0.0.0", s)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		d, err := chromeua.ParseData([]byte(`{"sec_ua": {"135": "a", "136": "b", "137": "c"}}`))
		require.NoError(t, err)
		assert.Nil(t, d.Agents)

		ua := chromeua.New()
		require.NoError(t, ua.UpdateRaw(d.Agents, d.SecUA))
		assert.Equal(t, map[string]string{"135": "a", "136": "b", "137": "c"}, ua.SecUA())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := chromeua.ParseData(nil)
		assert.ErrorIs(t, err, chromeua.ErrReadData)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		_, err := chromeua.ParseData([]byte("agents: [unclosed"))
		require.Error(t, err)
		assert.ErrorIs(t, err, chromeua.ErrReadData)
	})

	t.Run("validation errors come from the registry", func(t *testing.T) {
		t.Parallel()
		d, err := chromeua.ParseData([]byte("agents: not a list\n"))
		require.NoError(t, err)

		err = chromeua.New().UpdateRaw(d.Agents, d.SecUA)
		assert.ErrorIs(t, err, chromeua.ErrType)
		assert.EqualError(t, err, "agents must be a list or None")
	})

	t.Run("non-string sec-ch-ua values", func(t *testing.T) {
		t.Parallel()
		d, err := chromeua.ParseData([]byte("sec_ua:\n  \"136\": 1\n"))
		require.NoError(t, err)

		err = chromeua.New().UpdateRaw(d.Agents, d.SecUA)
		assert.ErrorIs(t, err, chromeua.ErrType)
		assert.EqualError(t, err, "sec_ua values must be strings for Chrome versions: 136")
	})

	t.Run("mapping values must be strings", func(t *testing.T) {
		t.Parallel()
		d, err := chromeua.ParseData([]byte(`
agents:
  - platform: mac
    os_version: "Mac OS X 14_0"
    chrome_version: 137
    user_agent: UA
`))
		require.NoError(t, err)

		ua := chromeua.New()
		err = ua.UpdateRaw(d.Agents, d.SecUA)
		assert.ErrorIs(t, err, chromeua.ErrType)
		assert.EqualError(t, err, "All elements in agent tuple at index 0 must be strings")
		assert.Equal(t, len(chromeua.BuiltinAgents()), ua.Len())
	})

	t.Run("mapping keys must be exact", func(t *testing.T) {
		t.Parallel()
		for name, doc := range map[string]string{
			"misspelled": "agents:\n  - {platform: mac, os_version: a, chrome_verison: \"137\", user_agent: b}\n",
			"missing":    "agents:\n  - {platform: mac, os_version: a, user_agent: b}\n",
			"extra":      "agents:\n  - {platform: mac, os_version: a, chrome_version: \"137\", user_agent: b, mobile: \"?0\"}\n",
		} {
			_, err := chromeua.ParseData([]byte(doc))
			require.Error(t, err, name)
			assert.ErrorIs(t, err, chromeua.ErrValue, name)
			assert.EqualError(t, err, "Agent at index 0 must have exactly the keys platform, os_version, chrome_version, user_agent", name)
		}
	})

	t.Run("mapping platform is validated", func(t *testing.T) {
		t.Parallel()
		d, err := chromeua.ParseData([]byte("agents:\n  - {platform: linux, os_version: a, chrome_version: \"136\", user_agent: b}\n"))
		require.NoError(t, err)

		err = chromeua.New().UpdateRaw(d.Agents, d.SecUA)
		assert.EqualError(t, err, "Platform at index 0 must be 'mac' or 'win'")
	})

	t.Run("unquoted version keys", func(t *testing.T) {
		t.Parallel()
		d, err := chromeua.ParseData([]byte("sec_ua:\n  136: a\n  137: b\n"))
		require.NoError(t, err)

		ua := chromeua.New()
		require.NoError(t, ua.UpdateRaw(d.Agents, d.SecUA))
		assert.Equal(t, map[string]string{"136": "a", "137": "b"}, ua.SecUA())
	})
}

func TestUpdateFromFile(t *testing.T) {
	t.Parallel()

	t.Run("applies the file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "agents.yaml")
		writeFile(t, path, tupleData)

		ua := chromeua.New()
		require.NoError(t, ua.UpdateFromFile(path))
		assert.Equal(t, 2, ua.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		ua := chromeua.New()
		rev := ua.Revision()

		err := ua.UpdateFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, chromeua.ErrReadData)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, rev, ua.Revision())
	})
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "agents.yaml")
	writeFile(t, path, mappingData)

	ua := chromeua.New()
	reloads := make(chan error, 16)
	w, err := chromeua.NewWatcher(ua, path, chromeua.WithReloadHook(func(err error) {
		select {
		case reloads <- err:
		default:
		}
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, 1, ua.Len())

	t.Run("reloads on write", func(t *testing.T) {
		writeFile(t, path, tupleData)
		require.Eventually(t, func() bool {
			return ua.Len() == 2
		}, 5*time.Second, 20*time.Millisecond)
		assert.Equal(t, []string{"138"}, ua.AvailableVersions())
	})

	t.Run("keeps state on invalid content", func(t *testing.T) {
		for len(reloads) > 0 {
			<-reloads
		}

		writeFile(t, path, "sec_ua: {}\n")

		select {
		case err := <-reloads:
			require.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("no reload attempt observed")
		}
		assert.Equal(t, 2, ua.Len())
		assert.Equal(t, []string{"138"}, ua.AvailableVersions())
	})

	t.Run("ignores other files", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "other.yaml"), mappingData)
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, 2, ua.Len())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		require.NoError(t, w.Close())
		assert.NoError(t, w.Close())
	})
}

func TestNewWatcherRejectsBadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "agents.yaml")
	writeFile(t, path, "agents: 123\n")

	w, err := chromeua.NewWatcher(chromeua.New(), path)
	require.Error(t, err)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, chromeua.ErrType)
}

func TestDefaultInstance(t *testing.T) {
	t.Parallel()

	assert.Same(t, chromeua.Default(), chromeua.Default())

	h, err := chromeua.GetChromeHeaders("win")
	require.NoError(t, err)
	assert.Contains(t, h["sec-ch-ua-platform"], "Windows")

	h, err = chromeua.GetChromeHeaders("mac",
		chromeua.OSVersion("Mac OS X 14_0"),
		chromeua.ExtraHeaders(map[string]string{"X-Test": "Value"}),
	)
	require.NoError(t, err)
	assert.Contains(t, h["sec-ch-ua-platform"], "macOS")
	assert.Contains(t, h["User-Agent"], "Mac OS X 14_0")
	assert.Equal(t, "Value", h["X-Test"])

	h, err = chromeua.GetChromeHeaders(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, h["User-Agent"])

	first, err := chromeua.GetHeaders(chromeua.Platform("mac"), chromeua.ChromeVersion("136"))
	require.NoError(t, err)
	second, err := chromeua.Default().GetHeaders(chromeua.Platform("mac"), chromeua.ChromeVersion("136"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
