package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "tilde with path",
			input: "~/logs/hearth.log",
			want:  filepath.Join(home, "logs/hearth.log"),
		},
		{
			name:  "standalone tilde",
			input: "~",
			want:  home,
		},
		{
			name:  "absolute path unchanged",
			input: "/var/log/hearth.log",
			want:  "/var/log/hearth.log",
		},
		{
			name:  "tilde mid-path unchanged",
			input: "/data/~/x",
			want:  "/data/~/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTilde(tt.input))
		})
	}
}

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USER", "bram")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "home variable",
			input: "${HOME}/logs/hearth.log",
			want:  home + "/logs/hearth.log",
		},
		{
			name:  "user variable",
			input: "/home/${USER}/hearth.log",
			want:  "/home/bram/hearth.log",
		},
		{
			name:  "tilde expanded",
			input: "~/hearth.log",
			want:  filepath.Join(home, "hearth.log"),
		},
		{
			name:  "no variables",
			input: "/tmp/hearth.log",
			want:  "/tmp/hearth.log",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.input))
		})
	}
}
