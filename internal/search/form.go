// Package search turns a committed query into a results-page submission.
package search

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultPath and DefaultParam match the search service's results route.
const (
	DefaultPath  = "/search"
	DefaultParam = "q"
)

// Submission is one submitted search.
type Submission struct {
	Query string `json:"query" yaml:"query"`
	URL   string `json:"url" yaml:"url"`
}

// Form builds results URLs and remembers what was submitted. It satisfies
// autocomplete.Submitter.
type Form struct {
	BaseURL string
	Path    string
	Param   string

	submissions []Submission
}

// NewForm validates baseURL and returns a form targeting path (DefaultPath when empty).
func NewForm(baseURL, path string) (*Form, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("search form: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("search form: base url %q must be absolute", baseURL)
	}
	if path == "" {
		path = DefaultPath
	}
	return &Form{BaseURL: u.String(), Path: path, Param: DefaultParam}, nil
}

// URL returns the results URL for query.
func (f *Form) URL(query string) string {
	u, err := url.Parse(f.BaseURL)
	if err != nil {
		return ""
	}
	u = u.JoinPath(f.Path)
	param := f.Param
	if param == "" {
		param = DefaultParam
	}
	u.RawQuery = url.Values{param: {query}}.Encode()
	return u.String()
}

// Submit records a submission for query.
func (f *Form) Submit(query string) {
	f.submissions = append(f.submissions, Submission{Query: query, URL: f.URL(query)})
}

// Submissions returns everything submitted so far, oldest first.
func (f *Form) Submissions() []Submission { return f.submissions }

// Last returns the most recent submission, if any.
func (f *Form) Last() (Submission, bool) {
	if len(f.submissions) == 0 {
		return Submission{}, false
	}
	return f.submissions[len(f.submissions)-1], true
}
