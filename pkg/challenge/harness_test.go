package challenge

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-sitegen/pkg/dom"
)

// fakeClock drives timers manually. Advance fires due timers in scheduling
// order outside the clock lock so callbacks may arm follow-up timers.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
	delays  []time.Duration
}

type fakeTimer struct {
	clock   *fakeClock
	seq     int
	when    time.Time
	fn      func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	timer := &fakeTimer{clock: c, seq: c.seq, when: c.now.Add(d), fn: fn}
	c.pending = append(c.pending, timer)
	c.delays = append(c.delays, d)
	return timer
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	for i, pending := range t.clock.pending {
		if pending == t {
			t.clock.pending = append(t.clock.pending[:i], t.clock.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward and fires every timer that becomes due,
// including timers armed by the fired callbacks.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due *fakeTimer
		for _, timer := range c.pending {
			if timer.when.After(c.now) {
				continue
			}
			if due == nil || timer.seq < due.seq {
				due = timer
			}
		}
		if due == nil {
			c.mu.Unlock()
			return
		}
		for i, timer := range c.pending {
			if timer == due {
				c.pending = append(c.pending[:i], c.pending[i+1:]...)
				break
			}
		}
		c.mu.Unlock()
		due.fn()
	}
}

func (c *fakeClock) pendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// createdDelays returns every AfterFunc delay in creation order.
func (c *fakeClock) createdDelays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.delays...)
}

// scriptedAPI is a scripted widget API double.
type scriptedAPI struct {
	mu           sync.Mutex
	failNext     int
	handleSeq    int
	renderCount  int
	lastTarget   *dom.Element
	lastParams   RenderParams
	tokens       map[Handle]string
	resetCount   int
	renderTraces []RenderParams
}

func newScriptedAPI() *scriptedAPI {
	return &scriptedAPI{tokens: make(map[Handle]string)}
}

func (a *scriptedAPI) Render(target *dom.Element, params RenderParams) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.renderCount++
	a.lastTarget = target
	a.lastParams = params
	a.renderTraces = append(a.renderTraces, params)
	if a.failNext > 0 {
		a.failNext--
		return nil, errors.New("render rejected")
	}
	a.handleSeq++
	handle := fmt.Sprintf("handle-%d", a.handleSeq)
	a.tokens[handle] = ""
	return handle, nil
}

func (a *scriptedAPI) Reset(handle Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.tokens[handle]; !ok {
		return errors.New("unknown handle")
	}
	a.resetCount++
	a.tokens[handle] = ""
	return nil
}

func (a *scriptedAPI) Response(handle Handle) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	token, ok := a.tokens[handle]
	if !ok {
		return "", errors.New("unknown handle")
	}
	return token, nil
}

func (a *scriptedAPI) solve(token string) {
	a.mu.Lock()
	handle := fmt.Sprintf("handle-%d", a.handleSeq)
	a.tokens[handle] = token
	a.mu.Unlock()
}

func (a *scriptedAPI) renders() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderCount
}

func (a *scriptedAPI) callbacks() Callbacks {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastParams.Callbacks
}

// recordingSubmitter counts native submissions.
type recordingSubmitter struct {
	mu    sync.Mutex
	forms []*dom.Element
	err   error
}

func (s *recordingSubmitter) Submit(form *dom.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms = append(s.forms, form)
	return s.err
}

func (s *recordingSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

const fixtureMarkup = `<div class="page">` +
	`<form id="contact-form"><input type="text" name="email"/></form>` +
	`<div class="challenge-container hidden">` +
	`<div class="challenge-placeholder" data-sitegen-sitekey="site-key-1"></div>` +
	`</div>` +
	`</div>`

type fixture struct {
	page        *dom.Element
	form        *dom.Element
	container   *dom.Element
	placeholder *dom.Element
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	elements, err := dom.ParseFragment(fixtureMarkup)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	page := elements[0]
	f := &fixture{
		page:      page,
		form:      page.FindByID("contact-form"),
		container: page.FindByClass(ContainerClass)[0],
	}
	f.placeholder = page.FindByClass(PlaceholderClass)[0]
	if f.form == nil {
		t.Fatal("fixture form missing")
	}
	return f
}

// currentPlaceholder re-queries the page because render attempts replace the
// placeholder node.
func (f *fixture) currentPlaceholder(t *testing.T) *dom.Element {
	t.Helper()
	placeholders := f.page.FindByClass(PlaceholderClass)
	if len(placeholders) != 1 {
		t.Fatalf("expected one placeholder, got %d", len(placeholders))
	}
	return placeholders[0]
}

func (f *fixture) errorMessages() []*dom.Element {
	return f.container.FindByClass(ErrorClass)
}

func newTestCoordinator(t *testing.T, api API, clock Clock, options ...Option) *Coordinator {
	t.Helper()
	base := []Option{WithClock(clock), WithBaseDelay(100 * time.Millisecond)}
	coordinator, err := New(api, append(base, options...)...)
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	return coordinator
}
