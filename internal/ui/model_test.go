package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/searchbar/internal/autocomplete"
	"github.com/oakwood-commons/searchbar/internal/config"
	"github.com/oakwood-commons/searchbar/internal/search"
	"github.com/oakwood-commons/searchbar/internal/suggest"
)

var cities = suggest.Static{Suggestions: []string{
	"Paris (France)",
	"Panama",
	"Parma (Italy)",
	"Lisbon",
}}

func newTestModel(t *testing.T, fetcher suggest.Fetcher, mutate ...func(*Options)) *Model {
	t.Helper()
	form, err := search.NewForm("http://search.test", "")
	require.NoError(t, err)
	opts := Options{Fetcher: fetcher, Form: form, NoColor: true, Prompt: "> "}
	for _, fn := range mutate {
		fn(&opts)
	}
	m, err := NewModel(context.Background(), opts)
	require.NoError(t, err)
	return m
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(m *Model, code rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// resolve completes the most recent fetch the model issued.
func resolve(m *Model) {
	resp := suggest.Resolve(context.Background(), logr.Discard(), m.fetcher, m.lastRequest)
	m.Update(suggestionsMsg{Response: resp})
}

func itemValues(items []autocomplete.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Value)
	}
	return out
}

func viewText(m *Model) string {
	return ansi.Strip(fmt.Sprint(m.View().Content))
}

func TestNewModelRequiresSearchField(t *testing.T) {
	form, err := search.NewForm("http://search.test", "")
	require.NoError(t, err)

	_, err = NewModel(context.Background(), Options{Form: form})
	assert.ErrorIs(t, err, ErrNoSearchField)

	_, err = NewModel(context.Background(), Options{Fetcher: cities})
	assert.ErrorIs(t, err, ErrNoSearchField)

	_, err = Run(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrNoSearchField)
}

func TestTypingOpensDropdown(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "pa")
	assert.True(t, m.Fetching())
	resolve(m)

	c := m.Controller()
	assert.Equal(t, autocomplete.StateOpen, c.State())
	assert.Len(t, c.Items(), 3)
	assert.Equal(t, "pa", c.Original())
	assert.Equal(t, "pa", c.Query())
}

func TestArrowNavigationPreviewsAndRestores(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "pa")
	resolve(m)

	press(m, tea.KeyDown)
	assert.Equal(t, "Paris ", m.input.Value())
	press(m, tea.KeyDown)
	assert.Equal(t, "Panama", m.input.Value())

	press(m, tea.KeyUp)
	press(m, tea.KeyUp)
	assert.Equal(t, "pa", m.input.Value())
	assert.Equal(t, -1, m.Controller().Focus())
}

func TestEnterOnFocusedItemSubmitsFullValue(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "par")
	resolve(m)
	press(m, tea.KeyDown)
	require.Equal(t, "Paris ", m.input.Value())

	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	sub := m.Submission()
	require.NotNil(t, sub)
	assert.Equal(t, "Paris (France)", sub.Query)
	assert.Equal(t, "http://search.test/search?q=Paris+%28France%29", sub.URL)
	assert.Len(t, m.form.Submissions(), 1)
	assert.Equal(t, autocomplete.StateClosed, m.Controller().State())
}

func TestEnterWithoutFocusSubmitsTypedText(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "pa")
	resolve(m)

	press(m, tea.KeyEnter)
	sub := m.Submission()
	require.NotNil(t, sub)
	assert.Equal(t, "pa", sub.Query)
	assert.Len(t, m.form.Submissions(), 1)
}

func TestEnterOnBlankQueryDoesNothing(t *testing.T) {
	m := newTestModel(t, cities)
	cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Nil(t, m.Submission())
}

func TestEscapeIsOutsideActivity(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "pa")
	resolve(m)
	press(m, tea.KeyDown)

	press(m, tea.KeyEscape)
	c := m.Controller()
	assert.Empty(t, c.Items())
	assert.Equal(t, autocomplete.StateClosed, c.State())
	assert.Equal(t, -1, c.Focus())

	press(m, tea.KeyEscape)
	assert.Equal(t, autocomplete.StateClosed, c.State())
}

func TestCtrlCQuitsWithoutSubmission(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "pa")
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Cancelled())
	assert.Nil(t, m.Submission())
}

func TestEmacsKeysNavigate(t *testing.T) {
	km := EmacsKeyMap()
	m := newTestModel(t, cities, func(o *Options) { o.Keys = &km })
	typeText(m, "pa")
	resolve(m)

	m.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	assert.Equal(t, 0, m.Controller().Focus())
	m.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	assert.Equal(t, -1, m.Controller().Focus())
}

func TestClickOnRowActivatesIt(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "pa")
	resolve(m)

	_, cmd := m.Update(tea.MouseClickMsg{X: 4, Y: firstDropdownRow + 1, Button: tea.MouseLeft})
	require.NotNil(t, cmd)
	sub := m.Submission()
	require.NotNil(t, sub)
	assert.Equal(t, "Panama", sub.Query)
	assert.Equal(t, "Panama", m.input.Value())
	assert.Len(t, m.form.Submissions(), 1)
}

func TestClickElsewhereClearsDropdown(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "pa")
	resolve(m)

	m.Update(tea.MouseClickMsg{X: 4, Y: 0, Button: tea.MouseLeft})
	assert.Equal(t, autocomplete.StateClosed, m.Controller().State())
	assert.Nil(t, m.Submission())

	// Again, with nothing open.
	m.Update(tea.MouseClickMsg{X: 4, Y: 30, Button: tea.MouseLeft})
	assert.Equal(t, autocomplete.StateClosed, m.Controller().State())
}

func TestFetchErrorKeepsList(t *testing.T) {
	fail := false
	fetcher := suggest.FetcherFunc(func(ctx context.Context, q string) ([]string, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return cities.Fetch(ctx, q)
	})
	m := newTestModel(t, fetcher)
	typeText(m, "pa")
	resolve(m)
	require.Len(t, m.Controller().Items(), 3)

	fail = true
	typeText(m, "r")
	resolve(m)
	assert.Len(t, m.Controller().Items(), 3)
}

func TestSpinnerStopsWhenFetchesSettle(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "p")
	require.True(t, m.Fetching())
	assert.Contains(t, viewText(m), "⣾")

	resolve(m)
	assert.False(t, m.Fetching())
	_, cmd := m.Update(m.spinner.Tick())
	assert.Nil(t, cmd, "no further ticks once idle")
}

func TestDeletingToEmptyClosesWithoutFetch(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "p")
	resolve(m)
	require.Equal(t, autocomplete.StateOpen, m.Controller().State())
	before := m.lastRequest

	press(m, tea.KeyBackspace)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, autocomplete.StateClosed, m.Controller().State())
	assert.Equal(t, before, m.lastRequest)
}

func TestDebounceDropsSupersededTimers(t *testing.T) {
	m := newTestModel(t, cities, func(o *Options) { o.Debounce = 50 * time.Millisecond })
	typeText(m, "pa")
	assert.False(t, m.Fetching(), "debounced typing does not fetch immediately")
	require.Equal(t, 2, m.debounceTag)

	_, cmd := m.Update(debounceMsg{Tag: 1, Query: "p"})
	assert.Nil(t, cmd)
	assert.False(t, m.Fetching())

	_, cmd = m.Update(debounceMsg{Tag: 2, Query: "pa"})
	assert.NotNil(t, cmd)
	assert.True(t, m.Fetching())
	assert.Equal(t, "pa", m.lastRequest.Query)
}

func TestSequenceGuardOption(t *testing.T) {
	m := newTestModel(t, cities, func(o *Options) { o.SequenceGuard = true })
	assert.True(t, m.Controller().SequenceGuard())
}

func TestDisableSuggestions(t *testing.T) {
	m := newTestModel(t, cities, func(o *Options) { o.DisableSuggestions = true })
	typeText(m, "pa")
	assert.False(t, m.Fetching())
	assert.Equal(t, uint64(0), m.lastRequest.Seq)
}

func TestInitialQueryFetches(t *testing.T) {
	m := newTestModel(t, cities, func(o *Options) { o.Query = "pa" })
	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, "pa", m.lastRequest.Query)
	assert.Equal(t, "pa", m.Controller().Original())
}

func TestViewClosedAndOpen(t *testing.T) {
	m := newTestModel(t, cities)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})

	closed := strings.Split(viewText(m), "\n")
	require.GreaterOrEqual(t, len(closed), 3)
	assert.True(t, strings.HasPrefix(closed[0], "╭"))
	assert.True(t, strings.HasPrefix(closed[2], "╰"))

	typeText(m, "pa")
	resolve(m)
	press(m, tea.KeyDown)

	open := strings.Split(viewText(m), "\n")
	assert.True(t, strings.HasPrefix(open[0], "╭"))
	assert.Contains(t, open[firstDropdownRow], "Paris (France)")
	assert.Contains(t, open[firstDropdownRow+1], "Panama")
	assert.Contains(t, open[firstDropdownRow+2], "Parma (Italy)")
	assert.True(t, strings.HasPrefix(open[firstDropdownRow+3], "╰"))
	for _, line := range open[:firstDropdownRow+4] {
		assert.Equal(t, 40, ansi.StringWidth(line), line)
	}
}

func TestViewWindowsLongLists(t *testing.T) {
	many := make([]string, 20)
	for i := range many {
		many[i] = fmt.Sprintf("item %02d", i)
	}
	m := newTestModel(t, suggest.Static{Suggestions: many}, func(o *Options) { o.MaxVisible = 5 })
	typeText(m, "it")
	resolve(m)

	for i := 0; i < 7; i++ {
		press(m, tea.KeyDown)
	}
	lines := strings.Split(viewText(m), "\n")
	assert.Contains(t, lines[firstDropdownRow], "item 02")
	assert.Contains(t, lines[firstDropdownRow+4], "item 06")
	assert.Contains(t, lines[len(lines)-1], "3-7 of 20")

	// Clicking the last visible row activates the item under the pointer.
	m.Update(tea.MouseClickMsg{X: 2, Y: firstDropdownRow + 4, Button: tea.MouseLeft})
	require.NotNil(t, m.Submission())
	assert.Equal(t, "item 06", m.Submission().Query)
}

func TestKeyMapFor(t *testing.T) {
	_, err := KeyMapFor("")
	assert.NoError(t, err)
	km, err := KeyMapFor("Emacs")
	require.NoError(t, err)
	assert.Contains(t, km.Down.Keys(), "ctrl+n")
	_, err = KeyMapFor("vim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default, emacs")

	for _, name := range []string{"", "default", "emacs", " Emacs "} {
		_, err := KeyMapFor(name)
		assert.Equal(t, config.ValidKeymap(name), err == nil, name)
	}
}

func TestCommitHelpNamesTypedSearch(t *testing.T) {
	h := DefaultKeyMap().Commit.Help()
	assert.Equal(t, "enter", h.Key)
	assert.Equal(t, "search typed or picked", h.Desc)
}

func TestPasteUpdatesQueryAndFetches(t *testing.T) {
	m := newTestModel(t, cities)
	_, cmd := m.Update(tea.PasteMsg{Content: "pa"})
	require.NotNil(t, cmd)

	c := m.Controller()
	assert.Equal(t, "pa", m.input.Value())
	assert.Equal(t, "pa", c.Query())
	assert.Equal(t, "pa", c.Original())
	assert.True(t, m.Fetching())
	assert.Equal(t, "pa", m.lastRequest.Query)

	resolve(m)
	assert.Equal(t, []string{"Paris (France)", "Panama", "Parma (Italy)"}, itemValues(c.Items()))

	press(m, tea.KeyEnter)
	require.NotNil(t, m.Submission())
	assert.Equal(t, "pa", m.Submission().Query)
	assert.Equal(t, "pa", m.input.Value())
}

func TestPasteAppendsToTypedText(t *testing.T) {
	m := newTestModel(t, cities)
	typeText(m, "p")
	m.Update(tea.PasteMsg{Content: "ar"})
	assert.Equal(t, "par", m.Controller().Query())
	assert.Equal(t, "par", m.lastRequest.Query)

	m.Update(tea.PasteMsg{})
	assert.Equal(t, "par", m.lastRequest.Query, "an empty paste changes nothing")
}

func TestLongCommittedValueIsNotTruncated(t *testing.T) {
	long := "pa" + strings.Repeat("x", 700)
	m := newTestModel(t, suggest.Static{Suggestions: []string{long}})
	typeText(m, "pa")
	resolve(m)

	press(m, tea.KeyDown)
	press(m, tea.KeyEnter)
	require.NotNil(t, m.Submission())
	assert.Equal(t, long, m.Submission().Query)
	assert.Equal(t, long, m.input.Value())
}
