package main

import (
	"testing"

	"github.com/abhinav/tmux-sessions/internal/tmux"
	"github.com/abhinav/tmux-sessions/internal/tmux/tmuxopt"
	"github.com/abhinav/tmux-sessions/internal/tmux/tmuxtest"
	"github.com/golang/mock/gomock"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		args []string
		want config
	}{
		{desc: "empty"},
		{
			desc: "file",
			args: []string{"--file", "/tmp/sessions.json"},
			want: config{File: "/tmp/sessions.json"},
		},
		{
			desc: "tmux",
			args: []string{"--tmux", "tmux -L work"},
			want: config{Tmux: "tmux -L work"},
		},
		{
			desc: "log and verbose",
			args: []string{"--log", "out.log", "-v"},
			want: config{LogFile: "out.log", Verbose: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var got config
			flag := pflag.NewFlagSet(t.Name(), pflag.ContinueOnError)
			got.RegisterFlags(flag)
			require.NoError(t, flag.Parse(tt.args))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFillFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give config
		from config
		want config
	}{
		{
			desc: "empty",
			from: _defaultConfig,
			want: config{Tmux: "tmux"},
		},
		{
			desc: "keeps set values",
			give: config{File: "a.json", Tmux: "tmux -L a", LogFile: "a.log"},
			from: config{File: "b.json", Tmux: "tmux", LogFile: "b.log", Verbose: true},
			want: config{File: "a.json", Tmux: "tmux -L a", LogFile: "a.log", Verbose: true},
		},
		{
			desc: "verbose is sticky",
			give: config{Verbose: true},
			want: config{Verbose: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got := tt.give
			got.FillFrom(&tt.from)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigTmuxCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		give    string
		want    []string
		wantErr string
	}{
		{desc: "default", give: "tmux", want: []string{"tmux"}},
		{
			desc: "socket",
			give: "tmux -L work",
			want: []string{"tmux", "-L", "work"},
		},
		{
			desc: "quoted path",
			give: `"/opt/my tools/tmux" -S /tmp/sock`,
			want: []string{"/opt/my tools/tmux", "-S", "/tmp/sock"},
		},
		{desc: "empty", give: "  ", wantErr: "empty tmux command"},
		{desc: "bad quoting", give: "tmux 'foo", wantErr: "parse tmux command"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := (&config{Tmux: tt.give}).TmuxCommand()
			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockTmux := tmuxtest.NewMockDriver(ctrl)
	mockTmux.EXPECT().
		ShowOptions(tmux.ShowOptionsRequest{Global: true}).
		Return([]byte(
			"status on\n"+
				`@sessions-file "~/tmux/my sessions.json"`+"\n",
		), nil)

	var cfg config
	loader := tmuxopt.Loader{Tmux: mockTmux}
	cfg.RegisterOptions(&loader)
	require.NoError(t, loader.Load(tmux.ShowOptionsRequest{Global: true}))
	assert.Equal(t, config{File: "~/tmux/my sessions.json"}, cfg)
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give      string
		want      string
		needsHome bool
	}{
		{give: "~", want: "/home/user", needsHome: true},
		{give: "~/sessions.json", want: "/home/user/sessions.json", needsHome: true},
		{give: "~/a/../b.json", want: "/home/user/b.json", needsHome: true},
		{give: "/etc/sessions.json", want: "/etc/sessions.json"},
		{give: "relative.json", want: "relative.json"},
		{give: "~other/sessions.json", want: "~other/sessions.json"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.needsHome, needsHome(tt.give), "needsHome(%q)", tt.give)
		assert.Equal(t, tt.want, expandHome(tt.give, "/home/user"), "expandHome(%q)", tt.give)
	}
}
