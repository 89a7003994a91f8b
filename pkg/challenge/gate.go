package challenge

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-sitegen/pkg/dom"
)

// GateState names the phases of one submission cycle.
type GateState string

const (
	GateIdle     GateState = "idle"
	GateAwaiting GateState = "awaiting-challenge"
	GateSolved   GateState = "solved"
)

// DefaultTokenField is the hidden input name carrying the solved token.
const DefaultTokenField = "challenge-token"

// GateOption customises the submission gate.
type GateOption func(*SubmissionGate)

// WithTokenField overrides the hidden input name the solved token is written
// to.
func WithTokenField(name string) GateOption {
	return func(g *SubmissionGate) {
		if name != "" {
			g.tokenField = name
		}
	}
}

// WithGateLogger injects a logger. A nil logger is ignored.
func WithGateLogger(logger *zap.Logger) GateOption {
	return func(g *SubmissionGate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithScroll injects the host's scroll-into-view behaviour, invoked with the
// challenge container when a submission is deferred. Defaults to a no-op.
func WithScroll(scroll func(*dom.Element)) GateOption {
	return func(g *SubmissionGate) {
		if scroll != nil {
			g.scroll = scroll
		}
	}
}

// SubmissionGate decides, at submission time, whether a form may submit
// natively or must wait for a solved challenge. At most one submission is
// pending at a time; a solved challenge resubmits it exactly once.
type SubmissionGate struct {
	mu          sync.Mutex
	coordinator *Coordinator
	submitter   Submitter
	logger      *zap.Logger
	tokenField  string
	scroll      func(*dom.Element)

	state       GateState
	form        *dom.Element
	widgetID    string
	preApproved bool
}

// NewSubmissionGate constructs a gate over the coordinator and the host's
// native submitter.
func NewSubmissionGate(coordinator *Coordinator, submitter Submitter, options ...GateOption) (*SubmissionGate, error) {
	if coordinator == nil {
		return nil, fmt.Errorf("challenge: coordinator is required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("challenge: submitter is required")
	}

	g := &SubmissionGate{
		coordinator: coordinator,
		submitter:   submitter,
		logger:      zap.NewNop(),
		tokenField:  DefaultTokenField,
		scroll:      func(*dom.Element) {},
		state:       GateIdle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g, nil
}

// Bind associates the gate with a form and its challenge placeholder. The
// placeholder is attached to the coordinator with the gate's lifecycle hooks,
// which also triggers the initial render attempt.
func (g *SubmissionGate) Bind(form, placeholder *dom.Element) error {
	if form == nil || form.Node() == nil {
		return fmt.Errorf("challenge: form element is required")
	}

	id, err := g.coordinator.Attach(placeholder, Callbacks{
		OnSolved:  g.onSolved,
		OnExpired: g.onExpired,
		OnErrored: g.onErrored,
	})
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.form = form
	g.widgetID = id
	g.mu.Unlock()
	return nil
}

// State returns the gate's current phase.
func (g *SubmissionGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Reset returns the gate to idle, dropping any pending submission. A fresh
// page load reaches the same condition implicitly.
func (g *SubmissionGate) Reset() {
	g.mu.Lock()
	g.state = GateIdle
	g.preApproved = false
	g.mu.Unlock()
}

// HandleSubmit is the gate's submit-event hook. It reports whether the
// native submission went through; false means the submission was intercepted
// and deferred until the challenge is solved.
func (g *SubmissionGate) HandleSubmit() (bool, error) {
	g.mu.Lock()
	if g.form == nil {
		g.mu.Unlock()
		return false, fmt.Errorf("challenge: gate is not bound to a form")
	}
	form := g.form
	widgetID := g.widgetID

	// A solved callback pre-approves exactly one pass through the gate so
	// the programmatic resubmission cannot loop back into interception.
	if g.preApproved {
		g.preApproved = false
		g.state = GateIdle
		g.mu.Unlock()
		return true, g.submitter.Submit(form)
	}
	g.mu.Unlock()

	if token := g.coordinator.Response(widgetID); token != "" {
		// Still-valid token from an earlier interaction: no interception.
		return true, g.submitter.Submit(form)
	}

	g.mu.Lock()
	g.state = GateAwaiting
	g.mu.Unlock()

	if container := g.coordinator.Container(widgetID); container != nil {
		container.RemoveClass(HiddenClass)
		g.scroll(container)
	}
	if !g.coordinator.Rendered(widgetID) {
		g.coordinator.RenderAttempt(widgetID)
	}
	g.logger.Debug("challenge: submission deferred", zap.String("widget", widgetID))
	return false, nil
}

func (g *SubmissionGate) onSolved(token string) {
	g.mu.Lock()
	if g.state != GateAwaiting {
		g.mu.Unlock()
		g.logger.Debug("challenge: solved token outside submission cycle ignored")
		return
	}
	form := g.form
	g.mu.Unlock()

	if _, err := dom.UpsertHiddenInput(form, g.tokenField, token); err != nil {
		g.logger.Error("challenge: token injection failed", zap.Error(err))
		return
	}

	g.mu.Lock()
	g.state = GateSolved
	g.preApproved = true
	g.mu.Unlock()

	if _, err := g.HandleSubmit(); err != nil {
		g.logger.Error("challenge: deferred submission failed", zap.Error(err))
	}
}

func (g *SubmissionGate) onExpired() {
	g.mu.Lock()
	widgetID := g.widgetID
	awaiting := g.state == GateAwaiting
	g.mu.Unlock()

	if err := g.coordinator.Reset(widgetID); err != nil {
		g.logger.Warn("challenge: reset after expiry failed", zap.Error(err))
	}
	if !awaiting {
		return
	}
	if container := g.coordinator.Container(widgetID); container != nil {
		if _, err := dom.SetInlineMessage(container, ErrorClass, expiredMessage); err != nil {
			g.logger.Warn("challenge: expiry message failed", zap.Error(err))
		}
	}
}

func (g *SubmissionGate) onErrored() {
	g.mu.Lock()
	widgetID := g.widgetID
	g.mu.Unlock()
	g.coordinator.ReportWidgetError(widgetID)
}
