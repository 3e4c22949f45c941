package chromeua

import (
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/macwinua/pkg/cache"
	"github.com/dmitrymomot/macwinua/pkg/logger"
)

// DefaultCacheSize bounds the number of memoized header sets per instance.
const DefaultCacheSize = 1024

// ChromeUA holds an agent registry and synthesizes headers from it.
// It is safe for concurrent use. Reads work on an immutable snapshot that
// Update replaces wholesale, so readers never observe a partial update.
type ChromeUA struct {
	snap atomic.Pointer[snapshot]
	mu   sync.Mutex // serializes writers

	memo *cache.Memo[cacheKey, Headers]

	logger         *slog.Logger
	metrics        *Metrics
	cacheSize      int
	defaultHeaders Headers
	pick           func(n int) int
}

// Option configures a ChromeUA.
type Option func(*ChromeUA)

// WithLogger sets the logger. Nil keeps the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(c *ChromeUA) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *ChromeUA) { c.metrics = m }
}

// WithCacheSize bounds the header cache. Zero or less makes it unbounded.
func WithCacheSize(n int) Option {
	return func(c *ChromeUA) { c.cacheSize = n }
}

// WithDefaultHeaders replaces the browser headers merged into every result.
func WithDefaultHeaders(h map[string]string) Option {
	return func(c *ChromeUA) { c.defaultHeaders = maps.Clone(h) }
}

// WithPicker replaces the source of random indexes. pick(n) must return a
// value in [0, n). A panic inside pick is reported as a synthesis error.
func WithPicker(pick func(n int) int) Option {
	return func(c *ChromeUA) {
		if pick != nil {
			c.pick = pick
		}
	}
}

// New returns an instance loaded with the built-in agent table.
func New(opts ...Option) *ChromeUA {
	c := &ChromeUA{
		logger:         logger.NewNop(),
		cacheSize:      DefaultCacheSize,
		defaultHeaders: DefaultHeaders(),
		pick:           rand.IntN,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.memo = cache.NewMemo[cacheKey, Headers](
		cache.WithCapacity(c.cacheSize),
		cache.WithHitHook(c.metrics.cacheHit),
		cache.WithMissHook(c.metrics.cacheMiss),
		cache.WithEvictHook(c.metrics.cacheEvict),
	)

	s := newSnapshot(BuiltinAgents(), BuiltinSecUA())
	c.snap.Store(s)
	c.metrics.setAgents(len(s.agents))
	return c
}

func (c *ChromeUA) current() *snapshot {
	return c.snap.Load()
}

// UpdateOption supplies replacement registry data to Update.
type UpdateOption func(*proposal)

// WithAgents replaces the agent list. An empty list is allowed.
func WithAgents(agents []Agent) UpdateOption {
	return func(p *proposal) {
		p.agents = agents
		p.agentsSet = true
	}
}

// WithSecUA replaces the sec-ch-ua table. It must contain DefaultChromeVersion.
func WithSecUA(secUA map[string]string) UpdateOption {
	return func(p *proposal) {
		p.secUA = secUA
		p.secUASet = true
	}
}

// Update validates the supplied data together with whatever it does not
// replace and commits it only if everything is consistent. On error the
// registry is left exactly as it was.
func (c *ChromeUA) Update(opts ...UpdateOption) error {
	var p proposal
	for _, opt := range opts {
		opt(&p)
	}
	return c.commit(p)
}

// UpdateRaw is Update for untyped input such as decoded YAML or JSON.
// A nil argument leaves that part of the registry unchanged. agents may be
// any slice of Agent values or of 4-element string tuples; secUA may be any
// map with string keys and values.
func (c *ChromeUA) UpdateRaw(agents, secUA any) error {
	var p proposal
	if agents != nil {
		a, err := normalizeAgents(agents)
		if err != nil {
			return c.reject(err)
		}
		p.agents, p.agentsSet = a, true
	}
	if secUA != nil {
		s, err := normalizeSecUA(secUA)
		if err != nil {
			return c.reject(err)
		}
		p.secUA, p.secUASet = s, true
	}
	return c.commit(p)
}

func (c *ChromeUA) commit(p proposal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := stage(c.current(), p)
	if err != nil {
		return c.reject(err)
	}

	// Publish first, then invalidate: a reader that computed from the old
	// snapshot started before the Clear and is not stored.
	c.snap.Store(next)
	c.memo.Clear()

	c.metrics.updated(true)
	c.metrics.setAgents(len(next.agents))
	c.logger.Debug("chromeua registry updated",
		logger.Revision(next.revision),
		logger.Count("agents", len(next.agents)),
		logger.Count("sec_ua", len(next.secUA)),
	)
	return nil
}

func (c *ChromeUA) reject(err error) error {
	c.metrics.updated(false)
	c.logger.Warn("chromeua registry update rejected", logger.Error(err))
	return err
}

// GetHeaders returns a consistent header set for one agent picked at random
// among those matching the filters.
//
// Results are memoized per distinct set of arguments: repeated calls return
// the same Headers value until the next successful Update. Do not modify it;
// use Clone.
func (c *ChromeUA) GetHeaders(opts ...QueryOption) (Headers, error) {
	q, err := buildQuery(opts)
	if err != nil {
		return nil, err
	}

	compute := func() (Headers, error) {
		s := c.current()
		candidates, err := s.filter(q)
		if err != nil {
			return nil, err
		}
		return c.synthesize(s, candidates, q)
	}

	if q.extraErr != nil {
		return compute()
	}
	return c.memo.Do(q.key(), compute)
}

func (c *ChromeUA) synthesize(s *snapshot, candidates []Agent, q query) (Headers, error) {
	if q.extraErr != nil {
		return nil, c.synthesisFailed(q, q.extraErr)
	}

	i, err := c.choose(len(candidates))
	if err != nil {
		return nil, c.synthesisFailed(q, err)
	}
	a := candidates[i]

	h := make(Headers, len(c.defaultHeaders)+4+len(q.extra))
	maps.Copy(h, c.defaultHeaders)
	h[HeaderUserAgent] = a.UserAgent
	h[HeaderSecChUa] = s.secUAFor(a.ChromeVersion)
	h[HeaderSecChUaPlatform] = platformHint(a.Platform)
	h[HeaderSecChUaMobile] = "?0"
	maps.Copy(h, q.extra)
	return h, nil
}

func (c *ChromeUA) synthesisFailed(q query, cause error) error {
	err := synthesisError(cause)
	c.metrics.synthesisFailed()
	c.logger.Warn("chromeua header synthesis failed",
		logger.Platform(q.platform),
		logger.ChromeVersion(q.chromeVersion),
		logger.OSVersion(q.osVersion),
		logger.Error(err),
	)
	return err
}

// choose returns a random index in [0, n), converting a misbehaving picker
// into an error.
func (c *ChromeUA) choose(n int) (i int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	i = c.pick(n)
	if i < 0 || i >= n {
		return 0, fmt.Errorf("picker returned index %d for %d candidates", i, n)
	}
	return i, nil
}

// pickUserAgent returns the User-Agent of a random agent accepted by keep.
func (c *ChromeUA) pickUserAgent(keep func(Agent) bool) (string, error) {
	candidates := c.current().agents
	if keep != nil {
		candidates = matching(candidates, keep)
	}
	if len(candidates) == 0 {
		return "", newError(ErrIndex, "Cannot choose from an empty sequence")
	}
	i, err := c.choose(len(candidates))
	if err != nil {
		return "", &Error{Kind: ErrValue, Msg: "Failed to pick user-agent: " + err.Error(), Cause: err}
	}
	return candidates[i].UserAgent, nil
}

// Chrome returns a random User-Agent from any platform.
func (c *ChromeUA) Chrome() (string, error) {
	return c.pickUserAgent(nil)
}

// Random is an alias for Chrome.
func (c *ChromeUA) Random() (string, error) {
	return c.pickUserAgent(nil)
}

// Mac returns a random macOS User-Agent.
func (c *ChromeUA) Mac() (string, error) {
	return c.pickUserAgent(func(a Agent) bool { return a.Platform == PlatformMac })
}

// Windows returns a random Windows User-Agent.
func (c *ChromeUA) Windows() (string, error) {
	return c.pickUserAgent(func(a Agent) bool { return a.Platform == PlatformWindows })
}

// Latest returns a random User-Agent among those with the newest Chrome version.
func (c *ChromeUA) Latest() (string, error) {
	var newest string
	for _, a := range c.current().agents {
		if newest == "" || compareVersions(a.ChromeVersion, newest) > 0 {
			newest = a.ChromeVersion
		}
	}
	return c.pickUserAgent(func(a Agent) bool { return a.ChromeVersion == newest })
}

// AvailableVersions lists the distinct Chrome versions of the stored agents, sorted.
func (c *ChromeUA) AvailableVersions() []string {
	return c.current().versions()
}

// AvailablePlatforms lists the distinct platforms of the stored agents, sorted.
func (c *ChromeUA) AvailablePlatforms() []string {
	return c.current().platforms()
}

// AvailableOSVersions maps each platform to its distinct OS versions in
// registry order.
func (c *ChromeUA) AvailableOSVersions() map[string][]string {
	return c.current().osVersions()
}

// Agents returns a copy of the stored agents.
func (c *ChromeUA) Agents() []Agent {
	return slices.Clone(c.current().agents)
}

// SecUA returns a copy of the stored sec-ch-ua table.
func (c *ChromeUA) SecUA() map[string]string {
	return maps.Clone(c.current().secUA)
}

// Len returns the number of stored agents.
func (c *ChromeUA) Len() int {
	return len(c.current().agents)
}

// Revision identifies the committed registry state. It changes on every
// successful Update.
func (c *ChromeUA) Revision() string {
	return c.current().revision
}
