package config

import (
	"flag"
	"io"
	"strings"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := Config{
		Title:       "Oxy Viewer",
		Width:       1280,
		Height:      720,
		PresentMode: "vsync",
		MSAA:        4,
		Shadows:     true,
		MinWidth:    320,
		MinHeight:   200,
	}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
	if got := len(cfg.RendererOptions()); got != 4 {
		t.Fatalf("renderer options = %d, want 4", got)
	}
	if got := len(cfg.WindowOptions()); got != 4 {
		t.Fatalf("window options = %d, want 4", got)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("OXY_VIEWER_WIDTH", "1920")
	t.Setenv("OXY_VIEWER_MSAA", "8")
	t.Setenv("OXY_VIEWER_PRESENT_MODE", "uncapped")

	cfg, err := ParseConfig(newFlagSet(), []string{"-msaa", "1", "-title", "demo", "-shadows=false"})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Width != 1920 || cfg.PresentMode != "uncapped" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.MSAA != 1 || cfg.Title != "demo" || cfg.Shadows {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{"bad env", map[string]string{"OXY_VIEWER_HEIGHT": "tall"}, nil, "parse env:"},
		{"unknown flag", nil, []string{"-fullscreen"}, "parse flags:"},
		{"present mode", nil, []string{"-present-mode", "mailbox"}, "present mode"},
		{"msaa", nil, []string{"-msaa", "2"}, "MSAA"},
		{"size", nil, []string{"-width", "0"}, "window size"},
		{"limits", map[string]string{"OXY_VIEWER_MAX_WIDTH": "-1"}, nil, "size limits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := ParseConfig(newFlagSet(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
