package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{name: "valid limit only", cfg: Config{Limit: 10}},
		{name: "valid offset only", cfg: Config{Offset: 5}},
		{name: "valid limit and offset", cfg: Config{Limit: 10, Offset: 5}},
		{name: "tail ignores offset (valid)", cfg: Config{Tail: 10, Offset: 5}},
		{name: "limit and tail mutually exclusive", cfg: Config{Limit: 10, Tail: 5}, wantErr: true, errMsg: "mutually exclusive"},
		{name: "negative limit invalid", cfg: Config{Limit: -1}, wantErr: true, errMsg: "non-negative"},
		{name: "negative offset invalid", cfg: Config{Offset: -1}, wantErr: true, errMsg: "non-negative"},
		{name: "negative tail invalid", cfg: Config{Tail: -2}, wantErr: true, errMsg: "non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{name: "inactive returns input", cfg: Config{}, want: items},
		{name: "limit", cfg: Config{Limit: 2}, want: []string{"a", "b"}},
		{name: "offset", cfg: Config{Offset: 3}, want: []string{"d", "e"}},
		{name: "offset and limit", cfg: Config{Offset: 1, Limit: 2}, want: []string{"b", "c"}},
		{name: "limit past end", cfg: Config{Offset: 4, Limit: 10}, want: []string{"e"}},
		{name: "offset past end", cfg: Config{Offset: 9}, want: []string{}},
		{name: "tail", cfg: Config{Tail: 2}, want: []string{"d", "e"}},
		{name: "tail larger than input", cfg: Config{Tail: 9}, want: items},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.cfg, items))
		})
	}
}

func TestApplyEmpty(t *testing.T) {
	assert.Empty(t, Apply(Config{Limit: 3}, []int(nil)))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                           string
		length, size, focus, prevStart int
		wantStart, wantEnd             int
	}{
		{name: "fits", length: 3, size: 8, focus: 2, wantStart: 0, wantEnd: 3},
		{name: "no focus keeps start", length: 20, size: 5, focus: -1, prevStart: 4, wantStart: 4, wantEnd: 9},
		{name: "focus inside", length: 20, size: 5, focus: 6, prevStart: 4, wantStart: 4, wantEnd: 9},
		{name: "focus below scrolls down", length: 20, size: 5, focus: 10, prevStart: 4, wantStart: 6, wantEnd: 11},
		{name: "focus above scrolls up", length: 20, size: 5, focus: 1, prevStart: 4, wantStart: 1, wantEnd: 6},
		{name: "wrap to top", length: 20, size: 5, focus: 0, prevStart: 15, wantStart: 0, wantEnd: 5},
		{name: "stale start clamped", length: 6, size: 5, focus: -1, prevStart: 10, wantStart: 1, wantEnd: 6},
		{name: "zero size shows all", length: 4, size: 0, focus: 1, wantStart: 0, wantEnd: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.length, tt.size, tt.focus, tt.prevStart)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
