package challenge

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-sitegen/pkg/dom"
)

// Defaults applied when the corresponding option is omitted.
const (
	DefaultBreakpoint    = 410
	DefaultBaseDelay     = 500 * time.Millisecond
	DefaultMaxAttempts   = 5
	DefaultResizeQuiet   = 120 * time.Millisecond
	DefaultViewportWidth = 1024
)

// User-visible messages written into the placeholder's container.
const (
	loadFailedMessage  = "We couldn't load the verification widget. Check your network connection or ad blocker, then reload the page."
	expiredMessage     = "The verification expired. Please complete it again."
	widgetErrorMessage = "Something went wrong with the verification widget. Retrying shortly."
)

// widgetState tracks one placeholder. Access is guarded by Coordinator.mu.
type widgetState struct {
	id          string
	placeholder *dom.Element
	callbacks   Callbacks

	generation uint64
	handle     Handle
	rendered   bool
	size       Size
	attempts   int
}

// Option customises the coordinator configuration.
type Option func(*Coordinator)

// WithLogger injects a logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock injects the clock backing retry timers and the resize debouncer.
func WithClock(clock Clock) Option {
	return func(c *Coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSiteKey sets the site key used when a placeholder does not carry one.
func WithSiteKey(key string) Option {
	return func(c *Coordinator) {
		c.siteKey = key
	}
}

// WithTheme sets the widget theme used when a placeholder does not carry one.
func WithTheme(theme Theme) Option {
	return func(c *Coordinator) {
		c.theme = theme
	}
}

// WithBreakpoint overrides the viewport width below which the compact widget
// is rendered.
func WithBreakpoint(width int) Option {
	return func(c *Coordinator) {
		if width > 0 {
			c.breakpoint = width
		}
	}
}

// WithBaseDelay overrides the first retry delay; later retries double it.
func WithBaseDelay(delay time.Duration) Option {
	return func(c *Coordinator) {
		if delay > 0 {
			c.baseDelay = delay
		}
	}
}

// WithMaxAttempts overrides the retry ceiling.
func WithMaxAttempts(attempts int) Option {
	return func(c *Coordinator) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithViewportWidth seeds the viewport width used before any resize event
// arrives.
func WithViewportWidth(width int) Option {
	return func(c *Coordinator) {
		if width > 0 {
			c.width = width
		}
	}
}

// WithResizeQuiet overrides the debounce quiet period for resize handling.
func WithResizeQuiet(quiet time.Duration) Option {
	return func(c *Coordinator) {
		if quiet > 0 {
			c.resizeQuiet = quiet
		}
	}
}

// Coordinator owns every placeholder it has been attached to: render
// attempts, backoff retries, and responsive re-rendering. All mutation goes
// through the scheduler and the internal lock so a failure callback can never
// recurse into an unbounded render loop.
type Coordinator struct {
	mu        sync.Mutex
	api       API
	readiness *Readiness
	scheduler *RetryScheduler
	resize    *Debouncer
	clock     Clock
	logger    *zap.Logger

	states map[string]*widgetState

	siteKey     string
	theme       Theme
	breakpoint  int
	baseDelay   time.Duration
	maxAttempts int
	resizeQuiet time.Duration
	width       int
}

// New constructs a coordinator bound to the supplied widget API.
func New(api API, options ...Option) (*Coordinator, error) {
	if api == nil {
		return nil, fmt.Errorf("challenge: widget api is required")
	}

	c := &Coordinator{
		api:         api,
		clock:       SystemClock(),
		logger:      zap.NewNop(),
		states:      make(map[string]*widgetState),
		theme:       ThemeLight,
		breakpoint:  DefaultBreakpoint,
		baseDelay:   DefaultBaseDelay,
		maxAttempts: DefaultMaxAttempts,
		resizeQuiet: DefaultResizeQuiet,
		width:       DefaultViewportWidth,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	c.readiness = NewReadiness(c.logger)
	c.scheduler = NewRetryScheduler(c.clock)
	c.resize = NewDebouncer(c.clock, c.resizeQuiet)
	return c, nil
}

// Readiness exposes the load-signal latch so hosts can wire the widget
// script's load callback to MarkReady.
func (c *Coordinator) Readiness() *Readiness {
	return c.readiness
}

// MarkReady latches the widget script's load signal.
func (c *Coordinator) MarkReady() {
	c.readiness.MarkReady()
}

// SizeFor returns the widget size for a viewport width.
func (c *Coordinator) SizeFor(width int) Size {
	if width < c.breakpoint {
		return SizeCompact
	}
	return SizeNormal
}

// Attach registers a placeholder and performs the initial render attempt. It
// assigns a stable identifier, written onto the element, that keys all
// further operations. Attaching an element that already carries a known
// identifier only updates its callbacks.
func (c *Coordinator) Attach(placeholder *dom.Element, callbacks Callbacks) (string, error) {
	if placeholder == nil || placeholder.Node() == nil {
		return "", fmt.Errorf("challenge: placeholder element is required")
	}

	c.mu.Lock()
	if id, ok := placeholder.Attr(AttrWidgetID); ok {
		if state, exists := c.states[id]; exists {
			state.callbacks = callbacks
			c.mu.Unlock()
			return id, nil
		}
	}

	id := uuid.NewString()
	placeholder.SetAttr(AttrWidgetID, id)
	c.states[id] = &widgetState{
		id:          id,
		placeholder: placeholder,
		callbacks:   callbacks,
	}
	c.mu.Unlock()

	c.logger.Debug("challenge: placeholder attached", zap.String("widget", id))
	c.RenderAttempt(id)
	return id, nil
}

// Detach forgets a placeholder and cancels any pending retry. Pending timers
// that already fired no-op against the missing state.
func (c *Coordinator) Detach(id string) {
	c.scheduler.Cancel(id)
	c.mu.Lock()
	delete(c.states, id)
	c.mu.Unlock()
}

// Rendered reports whether the placeholder currently holds a live widget.
func (c *Coordinator) Rendered(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.states[id]
	return state != nil && state.rendered
}

// Container returns the element wrapping the placeholder, used for
// visibility toggling and inline messages. Falls back to the placeholder's
// parent when no ancestor carries the container class.
func (c *Coordinator) Container(id string) *dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.states[id]
	if state == nil {
		return nil
	}
	return containerOf(state.placeholder)
}

// Response reads the current solved token for a placeholder, or "" when the
// widget is unrendered, unsolved, or the API call fails.
func (c *Coordinator) Response(id string) string {
	c.mu.Lock()
	state := c.states[id]
	if state == nil || !state.rendered {
		c.mu.Unlock()
		return ""
	}
	handle := state.handle
	c.mu.Unlock()

	token, err := c.api.Response(handle)
	if err != nil {
		c.logger.Warn("challenge: response read failed", zap.String("widget", id), zap.Error(err))
		return ""
	}
	return token
}

// Reset returns the rendered widget to its unsolved state.
func (c *Coordinator) Reset(id string) error {
	c.mu.Lock()
	state := c.states[id]
	if state == nil || !state.rendered {
		c.mu.Unlock()
		return fmt.Errorf("challenge: widget %s is not rendered", id)
	}
	handle := state.handle
	c.mu.Unlock()

	if err := c.api.Reset(handle); err != nil {
		return fmt.Errorf("challenge: reset widget %s: %w", id, err)
	}
	return nil
}

// ReportWidgetError routes a widget-level error (the errored callback) back
// into the render/backoff path: the widget may need re-establishing.
func (c *Coordinator) ReportWidgetError(id string) {
	c.mu.Lock()
	state := c.states[id]
	if state == nil {
		c.mu.Unlock()
		return
	}
	state.rendered = false
	state.handle = nil
	c.showMessageLocked(state, widgetErrorMessage)
	c.scheduleRetryLocked(state)
	c.mu.Unlock()
}

// HandleResize records the viewport width and, after the quiet period,
// re-renders every placeholder whose bound size no longer matches.
func (c *Coordinator) HandleResize(width int) {
	c.mu.Lock()
	c.width = width
	c.mu.Unlock()
	c.resize.Trigger(c.applyViewport)
}

// RenderAttempt replaces the placeholder node and renders a fresh widget into
// it. Failures route into the backoff scheduler; when the widget script has
// not loaded yet a readiness callback is registered as well, with the backoff
// timer kept as a safety net in case the load signal never fires.
func (c *Coordinator) RenderAttempt(id string) {
	c.mu.Lock()
	state := c.states[id]
	if state == nil {
		c.mu.Unlock()
		return
	}

	if !c.readiness.Ready() {
		c.scheduleRetryLocked(state)
		c.mu.Unlock()
		c.readiness.WhenReady(func() { c.retryFired(id) })
		return
	}

	fresh, err := c.replacePlaceholderLocked(state)
	if err != nil {
		c.logger.Warn("challenge: placeholder replace failed", zap.String("widget", id), zap.Error(err))
		c.showMessageLocked(state, widgetErrorMessage)
		c.scheduleRetryLocked(state)
		c.mu.Unlock()
		return
	}

	state.generation++
	generation := state.generation
	desired := c.sizeForLocked()
	fresh.SetAttr(AttrSize, string(desired))
	params := c.renderParamsLocked(state, fresh, desired, generation)
	c.mu.Unlock()

	handle, renderErr := c.api.Render(fresh, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	state = c.states[id]
	if state == nil || state.generation != generation {
		// A newer render superseded this one while the API call ran.
		return
	}

	if renderErr != nil {
		c.logger.Warn("challenge: render rejected", zap.String("widget", id), zap.Error(renderErr))
		c.showMessageLocked(state, widgetErrorMessage)
		c.scheduleRetryLocked(state)
		return
	}

	state.handle = handle
	state.rendered = true
	state.size = desired
	state.attempts = 0
	if container := containerOf(state.placeholder); container != nil {
		dom.ClearInlineMessage(container, ErrorClass)
	}
	c.logger.Debug("challenge: widget rendered",
		zap.String("widget", id), zap.String("size", string(desired)))
}

// replacePlaceholderLocked swaps the current placeholder for a fresh node
// carrying the same marker attributes. The widget API rejects rendering twice
// into the same node, so a replacement precedes every attempt.
func (c *Coordinator) replacePlaceholderLocked(state *widgetState) (*dom.Element, error) {
	old := state.placeholder
	fresh := dom.NewElement(old.Tag())
	if class, ok := old.Attr("class"); ok {
		fresh.SetAttr("class", class)
	}
	for name, value := range old.AttrsWithPrefix(AttrPrefix) {
		fresh.SetAttr(name, value)
	}
	if err := old.ReplaceWith(fresh); err != nil {
		return nil, err
	}
	state.placeholder = fresh
	state.rendered = false
	state.handle = nil
	return fresh, nil
}

func (c *Coordinator) renderParamsLocked(state *widgetState, el *dom.Element, size Size, generation uint64) RenderParams {
	siteKey := c.siteKey
	if value, ok := el.Attr(AttrSiteKey); ok && value != "" {
		siteKey = value
	}
	theme := c.theme
	if value, ok := el.Attr(AttrTheme); ok && value != "" {
		theme = Theme(value)
	}

	id := state.id
	hooks := state.callbacks
	return RenderParams{
		SiteKey: siteKey,
		Theme:   theme,
		Size:    size,
		Callbacks: Callbacks{
			OnSolved: func(token string) {
				if c.currentGeneration(id) != generation {
					c.logger.Debug("challenge: stale solved callback dropped", zap.String("widget", id))
					return
				}
				if hooks.OnSolved != nil {
					hooks.OnSolved(token)
				}
			},
			OnExpired: func() {
				if c.currentGeneration(id) != generation {
					return
				}
				if hooks.OnExpired != nil {
					hooks.OnExpired()
				}
			},
			OnErrored: func() {
				if c.currentGeneration(id) != generation {
					return
				}
				if hooks.OnErrored != nil {
					hooks.OnErrored()
				}
			},
		},
	}
}

func (c *Coordinator) currentGeneration(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.states[id]
	if state == nil {
		return 0
	}
	return state.generation
}

// scheduleRetryLocked arms the next backoff timer for state, or surfaces the
// terminal failure message once the ceiling is reached. The attempt counter
// advances when a retry is scheduled, not when it fires.
func (c *Coordinator) scheduleRetryLocked(state *widgetState) {
	if state.attempts >= c.maxAttempts {
		c.logger.Warn("challenge: giving up after retry ceiling",
			zap.String("widget", state.id), zap.Int("attempts", state.attempts))
		c.showMessageLocked(state, loadFailedMessage)
		return
	}

	delay := c.baseDelay << state.attempts
	id := state.id
	if c.scheduler.Schedule(id, delay, func() { c.retryFired(id) }) {
		state.attempts++
		c.logger.Debug("challenge: retry scheduled",
			zap.String("widget", id),
			zap.Duration("delay", delay),
			zap.Int("attempt", state.attempts))
	}
}

// retryFired re-checks the placeholder before attempting another render so a
// timer armed before a successful render is a no-op.
func (c *Coordinator) retryFired(id string) {
	c.mu.Lock()
	state := c.states[id]
	if state == nil || state.rendered {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.RenderAttempt(id)
}

func (c *Coordinator) applyViewport() {
	c.mu.Lock()
	desired := c.sizeForLocked()
	var stale []string
	for id, state := range c.states {
		if state.rendered && state.size != desired {
			stale = append(stale, id)
		}
	}
	c.mu.Unlock()

	for _, id := range stale {
		c.RenderAttempt(id)
	}
}

func (c *Coordinator) sizeForLocked() Size {
	if c.width < c.breakpoint {
		return SizeCompact
	}
	return SizeNormal
}

func (c *Coordinator) showMessageLocked(state *widgetState, message string) {
	container := containerOf(state.placeholder)
	if container == nil {
		return
	}
	if _, err := dom.SetInlineMessage(container, ErrorClass, message); err != nil {
		c.logger.Warn("challenge: inline message failed", zap.String("widget", state.id), zap.Error(err))
	}
}

func containerOf(placeholder *dom.Element) *dom.Element {
	if placeholder == nil {
		return nil
	}
	if container := placeholder.Closest(ContainerClass); container != nil {
		return container
	}
	return placeholder.Parent()
}
