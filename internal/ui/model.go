package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
	"github.com/oakwood-commons/searchbar/internal/search"
	"github.com/oakwood-commons/searchbar/internal/suggest"
	"github.com/oakwood-commons/searchbar/pkg/logger"
)

// ErrNoSearchField is returned when the search bar has nothing to attach to:
// no suggestion source or no search form.
var ErrNoSearchField = errors.New("search bar: no search field to attach to")

const (
	defaultWidth      = 60
	minInnerWidth     = 20
	defaultMaxVisible = 8
)

// Options configure a search bar.
type Options struct {
	Fetcher suggest.Fetcher
	Form    *search.Form

	// Query pre-fills the input and fetches suggestions for it.
	Query       string
	Prompt      string
	Placeholder string

	Theme   *Theme
	Keys    *KeyMap
	NoColor bool

	DisableSuggestions bool
	SequenceGuard      bool
	// Debounce delays fetches until typing pauses. 0 fetches on every edit.
	Debounce time.Duration
	// Timeout bounds a single fetch. 0 relies on the fetcher's own limit.
	Timeout    time.Duration
	MaxVisible int

	Logger *logr.Logger

	// ProgramOptions are passed through to tea.NewProgram by Run.
	ProgramOptions []tea.ProgramOption
}

// suggestionsMsg carries a finished fetch back into Update.
type suggestionsMsg struct {
	Response autocomplete.Response
}

// debounceMsg fires when a debounce timer runs out. Only the newest tag fetches.
type debounceMsg struct {
	Tag   int
	Query string
}

// Model is the Bubble Tea model of the search bar. The controller owns the
// query/suggestion state; the text input mirrors Controller.Query.
type Model struct {
	ctx        context.Context
	input      textinput.Model
	controller *autocomplete.Controller
	fetcher    suggest.Fetcher
	form       *search.Form
	spinner    spinner.Model
	keys       KeyMap
	styles     styles
	log        logr.Logger

	noColor     bool
	suggestions bool
	debounce    time.Duration
	timeout     time.Duration
	maxVisible  int

	width       int
	height      int
	windowStart int
	inFlight    int
	debounceTag int
	initial     string
	lastRequest autocomplete.Request

	submission *search.Submission
	cancelled  bool
}

// NewModel builds a search bar model. It declines with ErrNoSearchField when
// there is no fetcher or form.
func NewModel(ctx context.Context, opts Options) (*Model, error) {
	if opts.Fetcher == nil || opts.Form == nil {
		return nil, ErrNoSearchField
	}
	if ctx == nil {
		ctx = context.Background()
	}

	lgr := logger.FromContext(ctx)
	if opts.Logger != nil {
		lgr = opts.Logger
	}

	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	maxVisible := opts.MaxVisible
	if maxVisible <= 0 {
		maxVisible = defaultMaxVisible
	}

	st := theme.styles(opts.NoColor)

	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 0
	ti.SetWidth(defaultWidth - 2 - len([]rune(opts.Prompt)))
	ti.SetValue(opts.Query)
	ti.CursorEnd()
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.spinner

	m := &Model{
		ctx:   ctx,
		input: ti,
		controller: autocomplete.New(
			autocomplete.WithSubmitter(opts.Form),
			autocomplete.WithSequenceGuard(opts.SequenceGuard),
			autocomplete.WithLogger(*lgr),
		),
		fetcher:     opts.Fetcher,
		form:        opts.Form,
		spinner:     sp,
		keys:        keys,
		styles:      st,
		log:         *lgr,
		noColor:     opts.NoColor,
		suggestions: !opts.DisableSuggestions,
		debounce:    opts.Debounce,
		timeout:     opts.Timeout,
		maxVisible:  maxVisible,
		width:       defaultWidth,
		initial:     opts.Query,
	}
	m.controller.SetQuery(opts.Query)
	m.controller.KeyDown(autocomplete.KeyOther)
	return m, nil
}

// Controller exposes the autocomplete state, mainly for tests and embedders.
func (m *Model) Controller() *autocomplete.Controller { return m.controller }

// Submission returns the committed search, or nil when the bar was left
// without one.
func (m *Model) Submission() *search.Submission { return m.submission }

// Cancelled reports whether the user quit without searching.
func (m *Model) Cancelled() bool { return m.cancelled }

// Fetching reports whether a suggestion request is outstanding.
func (m *Model) Fetching() bool { return m.inFlight > 0 }

// Init starts the cursor blink and fetches for a pre-filled query.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initial != "" && m.suggestions {
		cmds = append(cmds, m.fetch(m.initial))
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the controller and the text input.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(m.innerWidth() - len([]rune(m.input.Prompt)) - 1)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		return m.editInput(msg)

	case tea.MouseClickMsg:
		return m.handleClick(msg.Mouse())

	case debounceMsg:
		if msg.Tag != m.debounceTag {
			return m, nil
		}
		return m, m.fetch(msg.Query)

	case suggestionsMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		if m.controller.ApplyResponse(msg.Response) {
			m.windowStart = 0
		}
		return m, nil

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.controller.KeyDown(autocomplete.KeyDown)
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.controller.KeyDown(autocomplete.KeyUp)
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		eff := m.controller.KeyDown(autocomplete.KeyCommit)
		m.syncInput()
		if eff.Submitted {
			return m.finish()
		}
		// Nothing focused: the form submits the typed text itself.
		if strings.TrimSpace(m.controller.Query()) == "" {
			return m, nil
		}
		m.controller.ClearOnOutsideActivity()
		m.form.Submit(m.controller.Query())
		return m.finish()

	case key.Matches(msg, m.keys.Dismiss):
		m.controller.ClearOnOutsideActivity()
		return m, nil
	}
	return m.editInput(msg)
}

// editInput applies a typed key or a paste to the text input, snapshots the
// new text as Original Search and fetches when the text changed.
func (m *Model) editInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	after := m.input.Value()

	m.controller.SetQuery(after)
	m.controller.KeyDown(autocomplete.KeyOther)
	if after == before || !m.suggestions {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.requestSuggestions(after))
}

// handleClick activates the clicked dropdown row; any other click is
// activity outside the dropdown.
func (m *Model) handleClick(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if i, ok := m.rowAt(mouse.X, mouse.Y); ok && mouse.Button == tea.MouseLeft {
		if _, submitted := m.controller.Activate(i); submitted {
			m.syncInput()
			return m.finish()
		}
		return m, nil
	}
	m.controller.ClearOnOutsideActivity()
	return m, nil
}

func (m *Model) finish() (tea.Model, tea.Cmd) {
	if sub, ok := m.form.Last(); ok {
		m.submission = &sub
		m.log.V(1).Info("search submitted", logger.QueryKey, sub.Query, "url", sub.URL)
	}
	return m, tea.Quit
}

// requestSuggestions fetches now, or arms the debounce timer.
func (m *Model) requestSuggestions(query string) tea.Cmd {
	if query == "" {
		// Nothing can match an empty Original Search.
		m.controller.Rebuild()
		return nil
	}
	if m.debounce <= 0 {
		return m.fetch(query)
	}
	m.debounceTag++
	tag := m.debounceTag
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{Tag: tag, Query: query}
	})
}

// fetch registers a request with the controller and performs it off the
// event loop.
func (m *Model) fetch(query string) tea.Cmd {
	req := m.controller.RequestSuggestions(query)
	m.lastRequest = req
	m.inFlight++
	m.log.V(1).Info("requesting suggestions", logger.SeqKey, req.Seq, logger.QueryKey, req.Query)

	parent, fetcher, timeout, log := m.ctx, m.fetcher, m.timeout, m.log
	cmd := func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}
		return suggestionsMsg{Response: suggest.Resolve(ctx, log, fetcher, req)}
	}
	if m.inFlight == 1 {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// syncInput copies the controller's query into the text input.
func (m *Model) syncInput() {
	if m.input.Value() == m.controller.Query() {
		return
	}
	m.input.SetValue(m.controller.Query())
	m.input.CursorEnd()
}
