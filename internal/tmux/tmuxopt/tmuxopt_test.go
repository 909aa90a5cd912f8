package tmuxopt

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhinav/tmux-sessions/internal/tmux"
	"github.com/abhinav/tmux-sessions/internal/tmux/tmuxtest"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		give    []byte   // tmux response
		options []string // string options to request
		want    []string // values for those options in-order
	}{
		{
			desc: "empty",
			want: []string{},
		},
		{
			desc: "empty value",
			give: unlines(
				"foo ",
			),
			options: []string{"foo"},
			want:    []string{""},
		},
		{
			desc: "simple values",
			give: unlines(
				"foo bar",
				"baz qux",
				"qux quux",
			),
			options: []string{"foo", "qux"},
			want:    []string{"bar", "quux"},
		},
		{
			desc: "skip bad lines",
			give: unlines(
				"a b",
				"",
				"cde",
				"f g",
			),
			options: []string{"a", "c", "f"},
			want:    []string{"b", "", "g"},
		},
		{
			desc: "unquote/double quote",
			give: unlines(
				`@sessions-file "/home/user/my sessions.json"`,
			),
			options: []string{"@sessions-file"},
			want:    []string{"/home/user/my sessions.json"},
		},
		{
			desc: "unquote/escape",
			give: unlines(
				`foo "bar \" baz"`,
			),
			options: []string{"foo"},
			want:    []string{`bar " baz`},
		},
		{
			desc: "unquote/single quote",
			give: unlines(
				`foo '"hello"'`,
			),
			options: []string{"foo"},
			want:    []string{`"hello"`},
		},
		{
			desc: "unquote/single quote/escaped backslash",
			give: unlines(
				`foo 'foo \\" bar'`,
			),
			options: []string{"foo"},
			want:    []string{`foo \" bar`},
		},
		{
			desc: "unquote/unbalanced",
			give: unlines(
				`foo "bar`,
			),
			options: []string{"foo"},
			want:    []string{`"bar`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			require.Len(t, tt.want, len(tt.options), "invalid test")

			ctrl := gomock.NewController(t)
			mockTmux := tmuxtest.NewMockDriver(ctrl)

			loader := Loader{Tmux: mockTmux}
			got := make([]string, len(tt.options))
			for i, opt := range tt.options {
				loader.StringVar(&got[i], opt)
			}

			mockTmux.EXPECT().
				ShowOptions(gomock.Any()).
				Return(tt.give, nil).
				AnyTimes()

			err := loader.Load(tmux.ShowOptionsRequest{})
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
		})
	}
}

type failValue struct{ err error }

func (v failValue) Set(string) error { return v.err }

func TestLoaderValueErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockTmux := tmuxtest.NewMockDriver(ctrl)

	loader := Loader{Tmux: mockTmux}
	loader.Var(failValue{errors.New("bad foo")}, "foo")
	loader.Var(failValue{errors.New("bad bar")}, "bar")

	mockTmux.EXPECT().
		ShowOptions(gomock.Any()).
		Return(unlines("foo 1", "bar 2"), nil)

	err := loader.Load(tmux.ShowOptionsRequest{})
	require.Error(t, err)
	assert.ErrorContains(t, err, `load option "foo": bad foo`)
	assert.ErrorContains(t, err, `load option "bar": bad bar`)
}

func TestLoaderShowOptionsError(t *testing.T) {
	t.Parallel()

	giveErr := errors.New("no server running")

	ctrl := gomock.NewController(t)
	mockTmux := tmuxtest.NewMockDriver(ctrl)

	loader := Loader{Tmux: mockTmux}
	var file string
	loader.StringVar(&file, "@sessions-file")

	mockTmux.EXPECT().
		ShowOptions(tmux.ShowOptionsRequest{Global: true, Quiet: true}).
		Return(nil, giveErr)

	err := loader.Load(tmux.ShowOptionsRequest{Global: true, Quiet: true})
	assert.ErrorIs(t, err, giveErr)
	assert.Empty(t, file)
}

func TestLoaderNoValues(t *testing.T) {
	t.Parallel()

	// No expectations: tmux must not be called.
	ctrl := gomock.NewController(t)
	loader := Loader{Tmux: tmuxtest.NewMockDriver(ctrl)}
	assert.NoError(t, loader.Load(tmux.ShowOptionsRequest{}))
}

func unlines(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}
