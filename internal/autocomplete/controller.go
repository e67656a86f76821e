package autocomplete

import (
	"github.com/go-logr/logr"
)

// Submitter receives committed queries. It stands in for the search form.
type Submitter interface {
	Submit(query string)
}

// SubmitFunc adapts a plain function to Submitter.
type SubmitFunc func(query string)

// Submit calls f(query).
func (f SubmitFunc) Submit(query string) { f(query) }

// Request identifies one suggestion fetch issued by the controller.
type Request struct {
	Seq   uint64
	Query string
}

// Response is the outcome of a fetch. Suggestions == nil means the endpoint
// returned nothing usable; Err != nil means the fetch itself failed.
type Response struct {
	Seq         uint64
	Query       string
	Suggestions []string
	Err         error
}

// Effect tells the host what a key press did.
type Effect struct {
	// PreventDefault is set when the host must not apply the key to the input.
	PreventDefault bool
	// Submitted is set when the key committed a rendered item.
	Submitted bool
	// Query is the query text after the key was handled.
	Query string
}

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitter sets where committed queries go.
func WithSubmitter(s Submitter) Option {
	return func(c *Controller) { c.submitter = s }
}

// WithSequenceGuard drops responses older than the latest issued request.
// Off by default: the latest response to arrive wins.
func WithSequenceGuard(enabled bool) Option {
	return func(c *Controller) { c.guard = enabled }
}

// WithLogger sets the logger used for swallowed fetch failures.
func WithLogger(log logr.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// Controller synchronizes the query text, fetched suggestions, the rendered
// dropdown and the keyboard focus cursor. One controller lives for the whole
// search bar; it is not safe for concurrent use and is expected to be driven
// from a single event loop.
type Controller struct {
	query       string
	original    string
	suggestions []string
	items       []Item
	focus       int
	state       UIState

	issued uint64
	guard  bool

	submitter Submitter
	log       logr.Logger
}

// New builds a controller with an empty query and a closed dropdown.
func New(opts ...Option) *Controller {
	c := &Controller{
		focus: -1,
		state: StateClosed,
		log:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns the live query text.
func (c *Controller) Query() string { return c.query }

// SetQuery records text the user typed. It does not touch Original Search;
// that only happens when the host reports a non-navigation key.
func (c *Controller) SetQuery(text string) { c.query = text }

// Original returns the Original Search snapshot.
func (c *Controller) Original() string { return c.original }

// Suggestions returns the last suggestion list, or nil when absent.
func (c *Controller) Suggestions() []string { return c.suggestions }

// Items returns the rendered items.
func (c *Controller) Items() []Item { return c.items }

// Focus returns the focus cursor (-1 when nothing is focused).
func (c *Controller) Focus() int { return c.focus }

// Active reports whether item i carries the active state.
func (c *Controller) Active(i int) bool {
	return i >= 0 && i == c.focus && i < len(c.items)
}

// State returns the dropdown state.
func (c *Controller) State() UIState { return c.state }

// Visual returns the input decoration for the current state.
func (c *Controller) Visual() Visual { return VisualFor(c.state) }

// SequenceGuard reports whether stale responses are dropped.
func (c *Controller) SequenceGuard() bool { return c.guard }

// RequestSuggestions registers a fetch for text. The host performs the fetch
// and hands the outcome back through ApplyResponse with the same Seq.
func (c *Controller) RequestSuggestions(text string) Request {
	c.issued++
	return Request{Seq: c.issued, Query: text}
}

// ApplyResponse installs a fetch outcome and rebuilds the rendered list.
// Failures leave the current list untouched and are only logged. It returns
// true when the response was applied.
func (c *Controller) ApplyResponse(r Response) bool {
	if r.Err != nil {
		c.log.V(1).Info("suggestion fetch failed", "seq", r.Seq, "query", r.Query, "error", r.Err.Error())
		return false
	}
	if c.guard && r.Seq < c.issued {
		c.log.V(1).Info("dropping stale suggestions", "seq", r.Seq, "latest", c.issued, "query", r.Query)
		return false
	}
	c.suggestions = r.Suggestions
	c.Rebuild()
	return true
}

// Rebuild filters the suggestion list against Original Search, replaces the
// rendered items, sets the dropdown state and resets the focus cursor. It
// returns false when nothing is rendered.
func (c *Controller) Rebuild() bool {
	c.focus = -1
	if c.original == "" || c.suggestions == nil {
		c.items = nil
		c.state = StateClosed
		return false
	}
	c.items = Match(c.original, c.suggestions)
	if len(c.items) == 0 {
		c.state = StateClosed
		return false
	}
	c.state = StateOpen
	return true
}

// KeyDown runs the focus state machine for one key press.
func (c *Controller) KeyDown(k Key) Effect {
	switch k {
	case KeyDown:
		c.moveFocus(1)
		return Effect{PreventDefault: true, Query: c.query}
	case KeyUp:
		c.moveFocus(-1)
		return Effect{PreventDefault: true, Query: c.query}
	case KeyCommit:
		eff := Effect{PreventDefault: true}
		if c.focus >= 0 {
			_, eff.Submitted = c.Activate(c.focus)
		}
		eff.Query = c.query
		return eff
	default:
		c.original = c.query
		return Effect{Query: c.query}
	}
}

func (c *Controller) moveFocus(delta int) {
	c.focus += delta
	switch {
	case c.focus < 0:
		c.focus = -1
		c.query = c.original
		return
	case len(c.items) == 0:
		c.focus = -1
		return
	case c.focus >= len(c.items):
		if delta > 0 {
			c.focus = 0
		} else {
			c.focus = len(c.items) - 1
		}
	}
	c.query = Preview(c.items[c.focus].Value)
}

// Activate is the commit action of rendered item i, shared by Enter and a
// pointer click: the full suggestion becomes the query, the dropdown closes
// and the query is submitted once.
func (c *Controller) Activate(i int) (string, bool) {
	if i < 0 || i >= len(c.items) {
		return "", false
	}
	value := c.items[i].Value
	c.query = value
	c.original = value
	c.clear()
	if c.submitter != nil {
		c.submitter.Submit(value)
	}
	return value, true
}

// ClearOnOutsideActivity closes the dropdown after activity outside it.
// Calling it on an already closed dropdown changes nothing.
func (c *Controller) ClearOnOutsideActivity() {
	c.clear()
}

func (c *Controller) clear() {
	c.items = nil
	c.focus = -1
	c.state = StateClosed
}
