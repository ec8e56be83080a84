package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"deal", "layout", "render", "print", "board", "serve", "config", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("root.Find(%q) = %v, %v", name, cmd, err)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root has no --config flag")
	}
}

func TestSkipConfig(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"config", "show"}, true},
		{[]string{"config", "path"}, true},
		{[]string{"completion"}, true},
		{[]string{"render"}, false},
		{[]string{"cache", "path"}, false},
	}
	for _, tt := range tests {
		cmd, _, err := root.Find(tt.args)
		if err != nil {
			t.Fatalf("Find(%v) error: %v", tt.args, err)
		}
		if got := skipConfig(cmd); got != tt.want {
			t.Errorf("skipConfig(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nameplate", "config.toml")
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	root.SetArgs([]string{"--config", path, "config", "init"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[board]", "[render]", `style = "paper"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config show output missing %q:\n%s", want, out.String())
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	output := filepath.Join(t.TempDir(), "board.json")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"layout", "--seed", "9", "--strategy", "spiral", "--width", "900", "--height", "700", "-o", output, "Ada", "Grace", "Alan"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read board: %v", err)
	}
	for _, want := range []string{`"strategy": "spiral"`, `"seed": 9`, `"width": 900`, "Grace"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("board.json missing %q", want)
		}
	}
}
